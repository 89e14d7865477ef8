// Package dates provides the date helpers used for episode scheduling.
//
// Dates are plain YYYY-MM-DD strings with no time-of-day or timezone. They
// show up in episode frontmatter, in CLI flags, and in the release schedule
// that proposes the next episode's date.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical layout for episode dates.
const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return time.Parse(DateLayout, s)
}

// ParseDateArg parses a CLI date argument which can be:
// - "today", "yesterday", "tomorrow" (relative dates)
// - "YYYY-MM-DD" format (absolute date)
// - Empty string defaults to today
//
// The result is always formatted as YYYY-MM-DD.
func ParseDateArg(arg string, now time.Time) (string, error) {
	dateArg := strings.ToLower(strings.TrimSpace(arg))
	switch dateArg {
	case "", "today":
		return now.Format(DateLayout), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(DateLayout), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(DateLayout), nil
	}
	if _, err := ParseDate(dateArg); err != nil {
		return "", fmt.Errorf("%w '%s', use YYYY-MM-DD or today/yesterday/tomorrow", ErrInvalidDate, arg)
	}
	return dateArg, nil
}

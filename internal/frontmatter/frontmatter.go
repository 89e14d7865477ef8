// Package frontmatter reads and writes the YAML header of vault notes.
package frontmatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/comic/internal/dates"
)

const delimiter = "---"

// Frontmatter represents a parsed note header.
type Frontmatter struct {
	// Fields holds the decoded YAML mapping.
	Fields map[string]interface{}

	// Body is the note content after the closing delimiter.
	Body string

	// Present is false when the note has no (closed) header.
	Present bool
}

// Field is one key/value line of a rendered header.
type Field struct {
	Key   string
	Value string
}

// Bounds returns the index of the closing delimiter line.
// It only detects frontmatter when the first line is '---'.
func Bounds(lines []string) (endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return -1, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			return i, true
		}
	}
	return -1, false
}

// Parse splits content into its YAML header and body.
// Content without a header yields an empty, non-present Frontmatter.
func Parse(content string) (*Frontmatter, error) {
	lines := strings.Split(content, "\n")

	endLine, ok := Bounds(lines)
	if !ok {
		return &Frontmatter{Fields: map[string]interface{}{}, Body: content}, nil
	}

	var data map[string]interface{}
	raw := strings.Join(lines[1:endLine], "\n")
	if err := yaml.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter as YAML: %w", err)
	}
	// An empty header decodes to a nil map.
	if data == nil {
		data = map[string]interface{}{}
	}

	return &Frontmatter{
		Fields:  data,
		Body:    strings.Join(lines[endLine+1:], "\n"),
		Present: true,
	}, nil
}

// Int returns a numeric field. Whole floats and numeric strings are accepted.
func (f *Frontmatter) Int(key string) (int, bool) {
	if f == nil {
		return 0, false
	}
	return ToInt(f.Fields[key])
}

// String returns a field rendered as text. Dates decoded by YAML are
// formatted as YYYY-MM-DD.
func (f *Frontmatter) String(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	return ToString(f.Fields[key])
}

// ToInt converts a decoded YAML value to an int.
func ToInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// ToString converts a decoded YAML value to text.
func ToString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case time.Time:
		return s.Format(dates.DateLayout), true
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(s), true
	}
	return "", false
}

// Render writes a header with fields in the given order, followed by body.
func Render(fields []Field, body string) string {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(quote(f.Value))
		b.WriteString("\n")
	}
	b.WriteString(delimiter + "\n")
	b.WriteString(body)
	return b.String()
}

// quote wraps values that YAML would otherwise misread.
func quote(value string) string {
	if value == "" {
		return value
	}
	needs := strings.ContainsAny(value, "\n\"'#") ||
		strings.Contains(value, ": ") ||
		strings.HasSuffix(value, ":") ||
		strings.ContainsAny(value[:1], "-?[]{}!&*|>%@`,") ||
		value != strings.TrimSpace(value)
	if !needs {
		return value
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(value) + `"`
}

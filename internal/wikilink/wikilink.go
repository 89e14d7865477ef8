// Package wikilink parses and formats the [[wikilinks]] that chain plot events.
//
// Wikilink grammar:
//
//	[[target]]
//	[[target|display text]]
//
// A plot event points at the event that follows it with a line of the form
// "next: [[target]]".
package wikilink

import (
	"regexp"
	"strings"
)

// NextKey is the field name of a forward plot link.
const NextKey = "next"

// Match represents a wikilink found in a single line.
type Match struct {
	Target      string
	DisplayText *string
	Start       int
	End         int
	Literal     string
}

// re matches [[target]] or [[target|display]].
// The target cannot contain [ or ] to avoid matching [[[ref]]].
var re = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// Format renders target as a wikilink literal.
func Format(target string) string {
	return "[[" + strings.TrimSpace(target) + "]]"
}

// NextLine renders the line that links an event to the one after it.
func NextLine(target string) string {
	return NextKey + ": " + Format(target)
}

// ParseExact parses a string that is exactly a wikilink literal, returning its target and optional display text.
func ParseExact(s string) (target string, display *string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") {
		return "", nil, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "[["), "]]")
	parts := strings.SplitN(inner, "|", 2)
	target = strings.TrimSpace(parts[0])
	if target == "" {
		return "", nil, false
	}
	if len(parts) == 2 {
		d := strings.TrimSpace(parts[1])
		display = &d
	}
	return target, display, true
}

// FindAllInLine finds wikilinks in a single line. Matches preceded by '[' are skipped.
func FindAllInLine(line string) []Match {
	var out []Match

	for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
		start, end := m[0], m[1]
		if start > 0 && line[start-1] == '[' {
			continue
		}

		target := strings.TrimSpace(line[m[2]:m[3]])
		if target == "" {
			continue
		}

		var display *string
		if m[4] >= 0 && m[5] >= 0 {
			d := strings.TrimSpace(line[m[4]:m[5]])
			display = &d
		}

		out = append(out, Match{
			Target:      target,
			DisplayText: display,
			Start:       start,
			End:         end,
			Literal:     line[start:end],
		})
	}

	return out
}

// NextTargets returns the targets of every "next: [[...]]" line in content,
// in document order. Targets carrying a heading or block suffix
// ("event#scene") are reduced to the note part.
func NextTargets(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		key, rest, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok || strings.TrimSpace(key) != NextKey {
			continue
		}
		for _, m := range FindAllInLine(rest) {
			target, _, _ := strings.Cut(m.Target, "#")
			if target = strings.TrimSpace(target); target != "" {
				out = append(out, target)
			}
		}
	}
	return out
}

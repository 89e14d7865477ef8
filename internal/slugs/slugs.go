// Package slugs turns user-entered titles into note file names.
//
// Two strategies are supported:
//   - Plain names keep the title as typed (so the wikilink basename matches
//     the title) and only strip characters that cannot appear in a file name.
//   - Slug names, built on gosimple/slug, lower-case and dash-join the title.
//
// Which one is used is controlled by the vault's slugFilenames setting.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// forbidden lists characters that break paths or wikilinks.
const forbidden = `/\:*?"<>|[]#^`

// PlainName strips characters that cannot appear in a note file name and
// collapses surrounding whitespace.
func PlainName(title string) string {
	title = strings.TrimSuffix(strings.TrimSpace(title), ".md")
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbidden, r) {
			return -1
		}
		return r
	}, title)
	return strings.Join(strings.Fields(cleaned), " ")
}

// SlugName converts a title to a URL-safe slug.
func SlugName(title string) string {
	title = strings.TrimSuffix(strings.TrimSpace(title), ".md")
	slugged := goslug.Make(title)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(PlainName(title), " ", "-"))
	}
	return slugged
}

// FileName picks the file name for a title using the configured strategy.
func FileName(title string, slugged bool) string {
	if slugged {
		return SlugName(title)
	}
	return PlainName(title)
}

// Package templates renders the content of newly created comic notes.
package templates

import (
	"strconv"
	"strings"

	"github.com/aidanlsb/comic/internal/frontmatter"
	"github.com/aidanlsb/comic/internal/wikilink"
)

// PaletteShade is the fixed second color of every character palette.
const PaletteShade = "#2e2e2e"

// PaletteAliases names the palette entries for the palette renderer.
const PaletteAliases = `{"aliases": ["accent", "hair"]}`

// CharacterSections are the headings every character note starts with.
var CharacterSections = []string{
	"aura",
	"good traits",
	"controversial traits",
	"bad traits",
	"quirks",
	"history",
	"relationships",
}

// Episode holds the header values of an episode note.
type Episode struct {
	No         int
	Chapter    int
	Date       string
	Pages      int
	Status     string
	Transcript string
}

// Character holds the header values of a character note.
type Character struct {
	Gender   string
	Color    string
	Location string
	Weapon   string
}

// RenderEpisode returns the full content of an episode note.
func RenderEpisode(e Episode) string {
	return frontmatter.Render([]frontmatter.Field{
		{Key: "no", Value: strconv.Itoa(e.No)},
		{Key: "chapter", Value: strconv.Itoa(e.Chapter)},
		{Key: "date", Value: e.Date},
		{Key: "pages", Value: strconv.Itoa(e.Pages)},
		{Key: "status", Value: e.Status},
	}, e.Transcript)
}

// RenderCharacter returns the full content of a character note.
func RenderCharacter(c Character) string {
	var body strings.Builder
	body.WriteString("```palette\n")
	body.WriteString(c.Color + "\n")
	body.WriteString(PaletteShade + "\n")
	body.WriteString(PaletteAliases + "\n")
	body.WriteString("```\n")
	for i, section := range CharacterSections {
		body.WriteString("\n## " + section)
		if i < len(CharacterSections)-1 {
			body.WriteString("\n")
		}
	}

	return frontmatter.Render([]frontmatter.Field{
		{Key: "gender", Value: c.Gender},
		{Key: "location", Value: c.Location},
		{Key: "weapon", Value: c.Weapon},
	}, body.String())
}

// PlotLink returns the text appended to an event to point at the next one.
func PlotLink(basename string) string {
	return "\n\n" + wikilink.NextLine(basename)
}

package comic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/aidanlsb/comic/internal/frontmatter"
	"github.com/aidanlsb/comic/internal/ui"
	"github.com/aidanlsb/comic/internal/vault"
)

// paletteLanguage is the info string of palette code blocks.
const paletteLanguage = "palette"

// Palette is the color block of a character note.
type Palette struct {
	Note    vault.Note `json:"note"`
	Colors  []string   `json:"colors"`
	Aliases []string   `json:"aliases,omitempty"`
}

// Palette reads the palette block of the character a reference points at.
func (s *Service) Palette(ref string) (*Palette, error) {
	note, err := vault.Resolve(s.Store, ref, s.Config.CharacterFolder)
	if err != nil {
		return nil, err
	}
	content, err := s.Store.Read(note.Path)
	if err != nil {
		return nil, err
	}

	body := content
	if fm, err := frontmatter.Parse(content); err == nil && fm.Present {
		body = fm.Body
	}
	p, ok := ParsePalette([]byte(body))
	if !ok {
		return nil, fmt.Errorf("%s has no palette block", note.Path)
	}
	p.Note = *note
	return p, nil
}

// ParsePalette extracts the first ```palette block of a markdown body.
// Lines holding #rrggbb colors become Colors; a JSON object line supplies
// Aliases.
func ParsePalette(source []byte) (*Palette, bool) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var block *ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if string(fenced.Language(source)) == paletteLanguage {
			block = fenced
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	})
	if block == nil {
		return nil, false
	}

	p := &Palette{Colors: []string{}}
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimSpace(string(seg.Value(source)))
		switch {
		case ui.IsHexColor(line):
			p.Colors = append(p.Colors, strings.ToLower(line))
		case strings.HasPrefix(line, "{"):
			var meta struct {
				Aliases []string `json:"aliases"`
			}
			if err := json.Unmarshal([]byte(line), &meta); err == nil {
				p.Aliases = meta.Aliases
			}
		}
	}
	return p, true
}

package comic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aidanlsb/comic/internal/slugs"
	"github.com/aidanlsb/comic/internal/templates"
	"github.com/aidanlsb/comic/internal/ui"
	"github.com/aidanlsb/comic/internal/vault"
)

// Genders are the accepted character gender marks.
var Genders = []string{"♀", "♂"}

// DefaultColor is the palette color offered for a new character.
const DefaultColor = "#000000"

// CharacterInput is a submitted new-character form.
type CharacterInput struct {
	Name     string
	Gender   string
	Color    string
	Location string
	Weapon   string
}

// Validate checks a new-character form. Every field is required.
func (in CharacterInput) Validate() error {
	var empty []string
	for _, f := range []struct{ name, value string }{
		{"name", slugs.PlainName(in.Name)},
		{"gender", in.Gender},
		{"color", in.Color},
		{"location", in.Location},
		{"weapon", in.Weapon},
	} {
		if strings.TrimSpace(f.value) == "" {
			empty = append(empty, f.name)
		}
	}
	if len(empty) > 0 {
		return missing(empty)
	}

	if !isGender(in.Gender) {
		return fmt.Errorf("%w: gender must be one of %s, got %q", ErrInvalidField, strings.Join(Genders, " "), in.Gender)
	}
	if !ui.IsHexColor(in.Color) {
		return fmt.Errorf("%w: color must be #rrggbb, got %q", ErrInvalidField, in.Color)
	}
	return nil
}

// NewCharacter creates a character note in the character folder.
func (s *Service) NewCharacter(in CharacterInput) (*vault.Note, error) {
	if err := in.Validate(); err != nil {
		if errors.Is(err, ErrMissingField) {
			s.UI.Notify("there are unentered fields")
		}
		return nil, err
	}

	content := templates.RenderCharacter(templates.Character{
		Gender:   in.Gender,
		Color:    strings.ToLower(in.Color),
		Location: strings.TrimSpace(in.Location),
		Weapon:   strings.TrimSpace(in.Weapon),
	})
	note, err := s.Store.Create(s.notePath(s.Config.CharacterFolder, in.Name), content)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	s.logger("new-character").Info("created character", "path", note.Path)
	return note, nil
}

// Characters returns the notes under the character folder sorted by path.
func (s *Service) Characters() ([]vault.Note, error) {
	return s.notesUnder(s.Config.CharacterFolder)
}

func isGender(g string) bool {
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

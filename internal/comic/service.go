// Package comic implements the comic-authoring operations: templated
// episode and character notes and the linking of plot events.
package comic

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aidanlsb/comic/internal/config"
	"github.com/aidanlsb/comic/internal/frontmatter"
	"github.com/aidanlsb/comic/internal/index"
	"github.com/aidanlsb/comic/internal/log"
	"github.com/aidanlsb/comic/internal/paths"
	"github.com/aidanlsb/comic/internal/slugs"
	"github.com/aidanlsb/comic/internal/ui"
	"github.com/aidanlsb/comic/internal/vault"
)

var (
	// ErrMissingField is returned when a required field was left empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is returned when a field value is out of range.
	ErrInvalidField = errors.New("invalid field value")
	// ErrNoActiveNote is returned by plot commands when there is no current note.
	ErrNoActiveNote = errors.New("current file does not exist")
	// ErrNotPlotEvent is returned when the current note is outside the plot folder.
	ErrNotPlotEvent = errors.New("only create plot links for events")
	// ErrSelfLink is returned when linking an event to itself.
	ErrSelfLink = errors.New("cannot link an event to itself")
	// ErrCancelled is returned when the user dismisses a picker.
	ErrCancelled = errors.New("cancelled")
)

// Service runs comic operations against one vault. The CLI builds it per
// command; nothing in it is global.
type Service struct {
	Config *config.ComicConfig
	Store  vault.Store

	// Cache serves frontmatter lookups. When nil, notes are parsed directly.
	Cache *index.Database

	UI ui.Prompter

	synced bool
}

// New returns a service. A nil prompter drops notices.
func New(cfg *config.ComicConfig, store vault.Store, cache *index.Database, prompter ui.Prompter) *Service {
	if cfg == nil {
		cfg = config.DefaultComicConfig()
	}
	if prompter == nil {
		prompter = ui.Defaults{}
	}
	return &Service{Config: cfg, Store: store, Cache: cache, UI: prompter}
}

func (s *Service) logger(op string) *slog.Logger {
	return log.WithOperation(log.WithComponent("comic"), op)
}

// notify shows msg and returns err, so call sites can abort in one line.
func (s *Service) notify(err error, msg string) error {
	s.UI.Notify(msg)
	return err
}

// metaEntry is a note with its frontmatter fields.
type metaEntry struct {
	vault.Note
	Fields map[string]interface{}
}

// entriesUnder returns notes under folder with their frontmatter, through the
// index when one is attached.
func (s *Service) entriesUnder(folder string) ([]metaEntry, error) {
	if s.Cache != nil {
		if err := s.syncCache(); err != nil {
			return nil, err
		}
		entries, err := s.Cache.EntriesUnder(folder)
		if err != nil {
			return nil, err
		}
		out := make([]metaEntry, len(entries))
		for i, e := range entries {
			out[i] = metaEntry{Note: e.Note, Fields: e.Fields}
		}
		return out, nil
	}

	notes, err := s.Store.List(folder)
	if err != nil {
		return nil, err
	}
	out := make([]metaEntry, 0, len(notes))
	for _, n := range notes {
		content, err := s.Store.Read(n.Path)
		if err != nil {
			return nil, err
		}
		fields := map[string]interface{}{}
		if fm, err := frontmatter.Parse(content); err == nil && fm.Present {
			fields = fm.Fields
		} else if err != nil {
			s.logger("scan").Debug("skipping unparsable frontmatter", "path", n.Path, "error", err)
		}
		out = append(out, metaEntry{Note: n, Fields: fields})
	}
	return out, nil
}

// notesUnder lists the notes under folder, through the index when one is
// attached.
func (s *Service) notesUnder(folder string) ([]vault.Note, error) {
	if s.Cache != nil {
		if err := s.syncCache(); err != nil {
			return nil, err
		}
		return s.Cache.NotesUnder(folder)
	}
	return s.Store.List(folder)
}

// NoteFields returns the header fields of the note at relPath, from the
// index when one is attached.
func (s *Service) NoteFields(relPath string) (map[string]interface{}, error) {
	if s.Cache != nil {
		if err := s.syncCache(); err != nil {
			return nil, err
		}
		return s.Cache.Frontmatter(relPath)
	}
	content, err := s.Store.Read(relPath)
	if err != nil {
		return nil, err
	}
	fm, err := frontmatter.Parse(content)
	if err != nil {
		return nil, err
	}
	return fm.Fields, nil
}

// syncCache refreshes the index once per service or after a write.
func (s *Service) syncCache() error {
	if s.synced {
		return nil
	}
	if _, err := s.Cache.Sync(s.Store); err != nil {
		return err
	}
	s.synced = true
	return nil
}

// invalidate forces the next lookup to resync the index.
func (s *Service) invalidate() {
	s.synced = false
}

func (s *Service) notePath(folder, title string) string {
	return paths.NotePath(folder, slugs.FileName(title, s.Config.SlugFilenames))
}

func missing(names []string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(names, ", "))
}

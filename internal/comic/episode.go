package comic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aidanlsb/comic/internal/dates"
	"github.com/aidanlsb/comic/internal/frontmatter"
	"github.com/aidanlsb/comic/internal/slugs"
	"github.com/aidanlsb/comic/internal/templates"
	"github.com/aidanlsb/comic/internal/vault"
)

// Episode page limits and defaults.
const (
	MinPages     = 2
	MaxPages     = 5
	DefaultPages = 3
)

// Statuses lists the episode statuses in workflow order.
var Statuses = []string{"sketched", "buffer", "published"}

// DefaultStatus is the status of a new episode.
const DefaultStatus = "sketched"

// Episode is an episode note with its header values.
type Episode struct {
	vault.Note
	No      int    `json:"no"`
	Chapter int    `json:"chapter"`
	Date    string `json:"date,omitempty"`
	Pages   int    `json:"pages"`
	Status  string `json:"status,omitempty"`
}

// EpisodeDraft carries the suggested values for a new episode.
type EpisodeDraft struct {
	No      int    `json:"no"`
	Chapter int    `json:"chapter"`
	Date    string `json:"date"`
	Pages   int    `json:"pages"`
	Status  string `json:"status"`

	// Last is the episode the suggestions were derived from, if any.
	Last *Episode `json:"last,omitempty"`
}

// EpisodeInput is a submitted new-episode form.
type EpisodeInput struct {
	Title      string
	No         int
	Chapter    int
	Date       string
	Pages      int
	Status     string
	Transcript string
}

// Episodes returns the notes under the episode folder sorted by number.
// Notes without a number sort last, by path.
func (s *Service) Episodes() ([]Episode, error) {
	entries, err := s.entriesUnder(s.Config.EpisodeFolder)
	if err != nil {
		return nil, err
	}

	episodes := make([]Episode, 0, len(entries))
	for _, e := range entries {
		fm := &frontmatter.Frontmatter{Fields: e.Fields}
		ep := Episode{Note: e.Note}
		ep.No, _ = fm.Int("no")
		ep.Chapter, _ = fm.Int("chapter")
		ep.Pages, _ = fm.Int("pages")
		ep.Date, _ = fm.String("date")
		ep.Status, _ = fm.String("status")
		episodes = append(episodes, ep)
	}

	sort.SliceStable(episodes, func(i, j int) bool {
		a, b := episodes[i], episodes[j]
		if (a.No > 0) != (b.No > 0) {
			return a.No > 0
		}
		if a.No != b.No {
			return a.No < b.No
		}
		return a.Path < b.Path
	})
	return episodes, nil
}

// EpisodeDefaults suggests values for the next episode from the one with the
// largest number.
func (s *Service) EpisodeDefaults() (*EpisodeDraft, error) {
	episodes, err := s.Episodes()
	if err != nil {
		return nil, err
	}

	draft := &EpisodeDraft{No: 1, Pages: DefaultPages, Status: DefaultStatus}

	var last *Episode
	for i := range episodes {
		if episodes[i].No > 0 && (last == nil || episodes[i].No > last.No) {
			last = &episodes[i]
		}
	}
	if last == nil {
		return draft, nil
	}

	draft.Last = last
	draft.No = last.No + 1
	draft.Chapter = last.Chapter
	if last.Date != "" {
		next, err := dates.Advance(last.Date, s.Config.UpdateSchedule)
		switch {
		case err != nil:
			s.logger("episode-defaults").Warn("cannot advance last episode date",
				"path", last.Path, "date", last.Date, "error", err)
		case !dates.IsValidDate(next):
			// Advance resolves a single month boundary, so a long schedule
			// can land past the end of the following month.
			s.logger("episode-defaults").Warn("advanced date is not a calendar date, leaving it empty",
				"path", last.Path, "date", last.Date, "schedule", s.Config.UpdateSchedule, "next", next)
		default:
			draft.Date = next
		}
	}
	return draft, nil
}

// Validate checks a new-episode form.
func (in EpisodeInput) Validate() error {
	if slugs.PlainName(in.Title) == "" {
		return missing([]string{"title"})
	}
	if in.No < 0 || in.Chapter < 0 {
		return fmt.Errorf("%w: no and chapter must not be negative", ErrInvalidField)
	}
	if in.Pages < MinPages || in.Pages > MaxPages {
		return fmt.Errorf("%w: pages must be between %d and %d, got %d", ErrInvalidField, MinPages, MaxPages, in.Pages)
	}
	if !isStatus(in.Status) {
		return fmt.Errorf("%w: status must be one of %s, got %q", ErrInvalidField, strings.Join(Statuses, ", "), in.Status)
	}
	if in.Date != "" && !dates.IsValidDate(in.Date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidField, in.Date)
	}
	return nil
}

// NewEpisode creates an episode note in the episode folder.
func (s *Service) NewEpisode(in EpisodeInput) (*vault.Note, error) {
	if err := in.Validate(); err != nil {
		if errors.Is(err, ErrMissingField) {
			s.UI.Notify("enter title")
		}
		return nil, err
	}

	content := templates.RenderEpisode(templates.Episode{
		No:         in.No,
		Chapter:    in.Chapter,
		Date:       in.Date,
		Pages:      in.Pages,
		Status:     in.Status,
		Transcript: in.Transcript,
	})
	note, err := s.Store.Create(s.notePath(s.Config.EpisodeFolder, in.Title), content)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	s.logger("new-episode").Info("created episode", "path", note.Path, "no", in.No)
	return note, nil
}

func isStatus(status string) bool {
	for _, st := range Statuses {
		if st == status {
			return true
		}
	}
	return false
}

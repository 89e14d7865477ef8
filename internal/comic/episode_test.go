package comic

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/aidanlsb/comic/internal/vault"
)

var episodeFiles = map[string]string{
	"publishing/episodes/Pilot.md": "---\nno: 1\nchapter: 1\ndate: 2024-01-06\npages: 3\nstatus: published\n---\n",
	"publishing/episodes/Rain.md":  "---\nno: 2\nchapter: 2\ndate: 2024-01-20\npages: 4\nstatus: buffer\n---\nPanel 1.",
	"publishing/episodes/Notes.md": "scratch notes, no header",
	"plot/Not an episode.md":       "---\nno: 99\n---\n",
}

func TestEpisodeDefaults(t *testing.T) {
	for _, indexed := range []bool{false, true} {
		v := newTestVault(t, episodeFiles)
		if indexed {
			v.withIndex(t)
		}

		draft, err := v.svc.EpisodeDefaults()
		if err != nil {
			t.Fatalf("EpisodeDefaults (indexed=%v): %v", indexed, err)
		}
		got := EpisodeDraft{No: draft.No, Chapter: draft.Chapter, Date: draft.Date, Pages: draft.Pages, Status: draft.Status}
		want := EpisodeDraft{No: 3, Chapter: 2, Date: "2024-02-03", Pages: 3, Status: "sketched"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("draft mismatch (indexed=%v) (-want +got):\n%s", indexed, diff)
		}
		if draft.Last == nil || draft.Last.Basename != "Rain" {
			t.Fatalf("expected last episode Rain, got %+v", draft.Last)
		}
	}
}

func TestEpisodeDefaultsEmptyVault(t *testing.T) {
	v := newTestVault(t, nil)
	draft, err := v.svc.EpisodeDefaults()
	if err != nil {
		t.Fatal(err)
	}
	want := &EpisodeDraft{No: 1, Pages: 3, Status: "sketched"}
	if diff := cmp.Diff(want, draft); diff != "" {
		t.Fatalf("draft mismatch (-want +got):\n%s", diff)
	}
}

func TestEpisodeDefaultsUsesUpdateSchedule(t *testing.T) {
	v := newTestVault(t, episodeFiles)
	v.svc.Config.UpdateSchedule = 7
	draft, err := v.svc.EpisodeDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if draft.Date != "2024-01-27" {
		t.Fatalf("Date = %q, want 2024-01-27", draft.Date)
	}
}

func TestEpisodeDefaultsSkipsBadDate(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"publishing/episodes/Odd.md": "---\nno: 5\nchapter: 1\ndate: soon\n---\n",
	})
	draft, err := v.svc.EpisodeDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if draft.No != 6 || draft.Date != "" {
		t.Fatalf("expected no=6 and empty date, got %+v", draft)
	}
}

func TestEpisodeDefaultsDropsOverflowedDate(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"publishing/episodes/Pilot.md": "---\nno: 1\nchapter: 1\ndate: 2024-01-31\n---\n",
	})
	v.svc.Config.UpdateSchedule = 30
	draft, err := v.svc.EpisodeDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if draft.No != 2 || draft.Chapter != 1 || draft.Date != "" {
		t.Fatalf("expected no=2 chapter=1 and empty date, got %+v", draft)
	}
}

func TestEpisodeDefaultsNonASCIIFolder(t *testing.T) {
	for _, indexed := range []bool{false, true} {
		v := newTestVault(t, map[string]string{
			"épisodes/Pilote.md": "---\nno: 4\nchapter: 2\ndate: 2024-01-20\n---\n",
		})
		v.svc.Config.EpisodeFolder = "épisodes"
		if indexed {
			v.withIndex(t)
		}
		draft, err := v.svc.EpisodeDefaults()
		if err != nil {
			t.Fatalf("EpisodeDefaults (indexed=%v): %v", indexed, err)
		}
		if draft.No != 5 || draft.Chapter != 2 || draft.Date != "2024-02-03" {
			t.Fatalf("indexed=%v: got no=%d chapter=%d date=%q", indexed, draft.No, draft.Chapter, draft.Date)
		}
	}
}

func TestEpisodesSortedByNumber(t *testing.T) {
	v := newTestVault(t, episodeFiles)
	eps, err := v.svc.Episodes()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range eps {
		names = append(names, e.Basename)
	}
	if diff := cmp.Diff([]string{"Pilot", "Rain", "Notes"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEpisode(t *testing.T) {
	v := newTestVault(t, episodeFiles).withIndex(t)

	// Prime the index so creation must invalidate it.
	if _, err := v.svc.EpisodeDefaults(); err != nil {
		t.Fatal(err)
	}

	note, err := v.svc.NewEpisode(EpisodeInput{
		Title:      "Harbor",
		No:         3,
		Chapter:    2,
		Date:       "2024-02-03",
		Pages:      5,
		Status:     "sketched",
		Transcript: "Panel 1: docks.",
	})
	if err != nil {
		t.Fatalf("NewEpisode: %v", err)
	}
	if note.Path != "publishing/episodes/Harbor.md" {
		t.Fatalf("Path = %q", note.Path)
	}
	want := "---\nno: 3\nchapter: 2\ndate: 2024-02-03\npages: 5\nstatus: sketched\n---\nPanel 1: docks."
	if got := v.read(t, note.Path); got != want {
		t.Fatalf("content = %q", got)
	}

	draft, err := v.svc.EpisodeDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if draft.No != 4 || draft.Date != "2024-02-17" {
		t.Fatalf("expected defaults to follow the new episode, got %+v", draft)
	}
}

func TestNewEpisodeSlugFilenames(t *testing.T) {
	v := newTestVault(t, nil)
	v.svc.Config.SlugFilenames = true
	note, err := v.svc.NewEpisode(EpisodeInput{Title: "The Big Rain", No: 1, Pages: 3, Status: "sketched"})
	if err != nil {
		t.Fatal(err)
	}
	if note.Path != "publishing/episodes/the-big-rain.md" {
		t.Fatalf("Path = %q", note.Path)
	}
}

func TestNewEpisodeValidation(t *testing.T) {
	valid := EpisodeInput{Title: "Rain", No: 1, Chapter: 1, Pages: 3, Status: "sketched"}

	tests := []struct {
		name   string
		mutate func(*EpisodeInput)
		want   error
	}{
		{"missing title", func(in *EpisodeInput) { in.Title = "  " }, ErrMissingField},
		{"title of only forbidden characters", func(in *EpisodeInput) { in.Title = "[[]]" }, ErrMissingField},
		{"too few pages", func(in *EpisodeInput) { in.Pages = 1 }, ErrInvalidField},
		{"too many pages", func(in *EpisodeInput) { in.Pages = 6 }, ErrInvalidField},
		{"unknown status", func(in *EpisodeInput) { in.Status = "drafted" }, ErrInvalidField},
		{"bad date", func(in *EpisodeInput) { in.Date = "2024-13-01" }, ErrInvalidField},
		{"negative number", func(in *EpisodeInput) { in.No = -1 }, ErrInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVault(t, nil)
			in := valid
			tt.mutate(&in)
			_, err := v.svc.NewEpisode(in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			notes, _ := v.svc.Store.List("")
			if len(notes) != 0 {
				t.Fatalf("nothing should be created, got %v", notes)
			}
		})
	}

	v := newTestVault(t, nil)
	in := valid
	in.Title = ""
	_, _ = v.svc.NewEpisode(in)
	if v.ui.lastNotice() != "enter title" {
		t.Fatalf("expected title notice, got %q", v.ui.notices)
	}
}

func TestNewEpisodeExisting(t *testing.T) {
	v := newTestVault(t, episodeFiles)
	_, err := v.svc.NewEpisode(EpisodeInput{Title: "Rain", No: 9, Pages: 3, Status: "buffer"})
	if !errors.Is(err, vault.ErrNoteExists) {
		t.Fatalf("expected ErrNoteExists, got %v", err)
	}
	if got := v.read(t, "publishing/episodes/Rain.md"); got != episodeFiles["publishing/episodes/Rain.md"] {
		t.Fatalf("existing episode was modified: %q", got)
	}
}

func TestEpisodeJSONFields(t *testing.T) {
	v := newTestVault(t, episodeFiles)
	eps, err := v.svc.Episodes()
	if err != nil {
		t.Fatal(err)
	}
	want := Episode{
		Note:    vault.Note{Path: "publishing/episodes/Rain.md", Basename: "Rain"},
		No:      2,
		Chapter: 2,
		Date:    "2024-01-20",
		Pages:   4,
		Status:  "buffer",
	}
	if diff := cmp.Diff(want, eps[1], cmpopts.IgnoreFields(vault.Note{}, "Mtime")); diff != "" {
		t.Fatalf("episode mismatch (-want +got):\n%s", diff)
	}
}

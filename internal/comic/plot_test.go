package comic

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var plotFiles = map[string]string{
	"plot/Arrival.md":      "They arrive.",
	"plot/The Heist.md":    "The vault job.",
	"plot/Escape.md":       "Run.",
	"characters/Mira.md":   "---\ngender: ♀\n---\n",
	"plot/arcs/Reunion.md": "Later.",
}

func TestCanLinkPlot(t *testing.T) {
	v := newTestVault(t, nil)
	tests := []struct {
		path string
		want bool
	}{
		{"plot/Arrival.md", true},
		{"plot/arcs/Reunion.md", true},
		{"characters/Mira.md", false},
		{"subplot/Arrival.md", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := v.svc.CanLinkPlot(tt.path); got != tt.want {
			t.Errorf("CanLinkPlot(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestActiveEventErrors(t *testing.T) {
	v := newTestVault(t, plotFiles)

	if _, err := v.svc.ActiveEvent(""); !errors.Is(err, ErrNoActiveNote) {
		t.Fatalf("expected ErrNoActiveNote, got %v", err)
	}
	if !strings.Contains(v.ui.lastNotice(), "current file does not exist") {
		t.Fatalf("notice = %q", v.ui.lastNotice())
	}

	if _, err := v.svc.ActiveEvent("plot/Deleted.md"); !errors.Is(err, ErrNoActiveNote) {
		t.Fatalf("expected ErrNoActiveNote for missing note, got %v", err)
	}

	if _, err := v.svc.ActiveEvent("characters/Mira.md"); !errors.Is(err, ErrNotPlotEvent) {
		t.Fatalf("expected ErrNotPlotEvent, got %v", err)
	}
	if v.ui.lastNotice() != "only create plot links for events" {
		t.Fatalf("notice = %q", v.ui.lastNotice())
	}
}

func TestConnectPrevious(t *testing.T) {
	v := newTestVault(t, plotFiles)
	active, err := v.svc.ActiveEvent("plot/The Heist.md")
	if err != nil {
		t.Fatal(err)
	}
	chosen, err := v.svc.ResolveEvent("Arrival")
	if err != nil {
		t.Fatal(err)
	}

	link, err := v.svc.ConnectPrevious(active, chosen)
	if err != nil {
		t.Fatalf("ConnectPrevious: %v", err)
	}
	if link.From.Basename != "Arrival" || link.To.Basename != "The Heist" {
		t.Fatalf("link = %+v", link)
	}
	if got := v.read(t, "plot/Arrival.md"); got != "They arrive.\n\nnext: [[The Heist]]" {
		t.Fatalf("Arrival content = %q", got)
	}
	if got := v.read(t, "plot/The Heist.md"); got != "The vault job." {
		t.Fatalf("active note should be untouched, got %q", got)
	}
	if want := `added link from "Arrival" to "The Heist".`; v.ui.lastNotice() != want {
		t.Fatalf("notice = %q, want %q", v.ui.lastNotice(), want)
	}
}

func TestConnectNext(t *testing.T) {
	v := newTestVault(t, plotFiles)
	active, _ := v.svc.ActiveEvent("plot/The Heist.md")
	chosen, _ := v.svc.ResolveEvent("escape")

	if _, err := v.svc.ConnectNext(active, chosen); err != nil {
		t.Fatalf("ConnectNext: %v", err)
	}
	if got := v.read(t, "plot/The Heist.md"); got != "The vault job.\n\nnext: [[Escape]]" {
		t.Fatalf("Heist content = %q", got)
	}
	if want := `added link from "The Heist" to "Escape"`; v.ui.lastNotice() != want {
		t.Fatalf("notice = %q, want %q", v.ui.lastNotice(), want)
	}
}

func TestConnectRejectsSelfAndOutsiders(t *testing.T) {
	v := newTestVault(t, plotFiles)
	active, _ := v.svc.ActiveEvent("plot/Escape.md")

	if _, err := v.svc.ConnectNext(active, active); !errors.Is(err, ErrSelfLink) {
		t.Fatalf("expected ErrSelfLink, got %v", err)
	}

	mira, err := v.svc.Store.Stat("characters/Mira.md")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.svc.ConnectPrevious(mira, active); !errors.Is(err, ErrNotPlotEvent) {
		t.Fatalf("expected ErrNotPlotEvent, got %v", err)
	}
	if got := v.read(t, "plot/Escape.md"); got != "Run." {
		t.Fatalf("no link should be written, got %q", got)
	}
}

func TestPickEvent(t *testing.T) {
	for _, indexed := range []bool{false, true} {
		v := newTestVault(t, plotFiles)
		if indexed {
			v.withIndex(t)
		}
		v.ui.pick = 1

		note, err := v.svc.PickEvent("next event", "plot/Arrival.md")
		if err != nil {
			t.Fatalf("PickEvent (indexed=%v): %v", indexed, err)
		}
		want := []string{"Escape", "The Heist", "Reunion"}
		if diff := cmp.Diff(want, v.ui.items); diff != "" {
			t.Fatalf("picker items (indexed=%v) (-want +got):\n%s", indexed, diff)
		}
		if note.Basename != "The Heist" {
			t.Fatalf("picked %q", note.Basename)
		}

		v.ui.cancel = true
		if _, err := v.svc.PickEvent("next event", ""); !errors.Is(err, ErrCancelled) {
			t.Fatalf("expected ErrCancelled, got %v", err)
		}
	}
}

func TestPlotCandidatesNonASCIIFolder(t *testing.T) {
	files := map[string]string{
		"プロット/到着.md": "",
		"プロット/襲撃.md": "",
		"plot/Ab.md": "",
	}
	for _, indexed := range []bool{false, true} {
		v := newTestVault(t, files)
		v.svc.Config.PlotFolder = "プロット"
		if indexed {
			v.withIndex(t)
		}
		notes, err := v.svc.PlotCandidates()
		if err != nil {
			t.Fatalf("PlotCandidates (indexed=%v): %v", indexed, err)
		}
		var got []string
		for _, n := range notes {
			got = append(got, n.Basename)
		}
		if diff := cmp.Diff([]string{"到着", "襲撃"}, got); diff != "" {
			t.Fatalf("candidates (indexed=%v) (-want +got):\n%s", indexed, diff)
		}
	}
}

func TestPickerLabelsDisambiguate(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"plot/Fight.md":      "",
		"plot/arcs/Fight.md": "",
	})
	if _, err := v.svc.PickEvent("x", ""); err != nil {
		t.Fatal(err)
	}
	want := []string{"plot/Fight.md", "plot/arcs/Fight.md"}
	if diff := cmp.Diff(want, v.ui.items); diff != "" {
		t.Fatalf("labels (-want +got):\n%s", diff)
	}
}

func TestPlotChain(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"plot/A.md": "start\n\nnext: [[B]]",
		"plot/B.md": "middle\n\nnext: [[C#scene 2]]",
		"plot/C.md": "end",
	})
	chain, err := v.svc.PlotChain("A")
	if err != nil {
		t.Fatal(err)
	}
	if got := chainNames(chain); !cmp.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("chain = %v", got)
	}
	if chain.Cycle || chain.Dangling != "" {
		t.Fatalf("unexpected stop reason: %+v", chain)
	}
}

func TestPlotChainStops(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"plot/A.md": "next: [[B]]",
		"plot/B.md": "next: [[A]]",
		"plot/X.md": "next: [[Nowhere]]",
	})

	chain, err := v.svc.PlotChain("A")
	if err != nil {
		t.Fatal(err)
	}
	if !chain.Cycle || !cmp.Equal(chainNames(chain), []string{"A", "B"}) {
		t.Fatalf("expected cycle after A,B; got %+v", chain)
	}

	chain, err = v.svc.PlotChain("X")
	if err != nil {
		t.Fatal(err)
	}
	if chain.Dangling != "Nowhere" || len(chain.Events) != 1 {
		t.Fatalf("expected dangling link, got %+v", chain)
	}
}

func TestPlotEvents(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"plot/A.md": "next: [[B]]\n\nnext: [[C]]",
		"plot/B.md": "",
	})
	events, err := v.svc.PlotEvents()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %+v", events)
	}
	if diff := cmp.Diff([]string{"B", "C"}, events[0].Next); diff != "" {
		t.Fatalf("next (-want +got):\n%s", diff)
	}
	if events[1].Next == nil || len(events[1].Next) != 0 {
		t.Fatalf("expected empty next list, got %#v", events[1].Next)
	}
}

func chainNames(c *Chain) []string {
	var out []string
	for _, n := range c.Events {
		out = append(out, n.Basename)
	}
	return out
}

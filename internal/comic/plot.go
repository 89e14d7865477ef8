package comic

import (
	"errors"
	"fmt"

	"github.com/aidanlsb/comic/internal/paths"
	"github.com/aidanlsb/comic/internal/templates"
	"github.com/aidanlsb/comic/internal/vault"
	"github.com/aidanlsb/comic/internal/wikilink"
)

// Link is a "next" link written from one event to another.
type Link struct {
	From vault.Note `json:"from"`
	To   vault.Note `json:"to"`
}

// PlotEvent is a plot note with the targets of its next links.
type PlotEvent struct {
	vault.Note
	Next []string `json:"next"`
}

// Chain is the run of events reached by following next links.
type Chain struct {
	Events []vault.Note `json:"events"`

	// Cycle is set when the walk came back to an event already in Events.
	Cycle bool `json:"cycle"`

	// Dangling names a next target that matches no plot note.
	Dangling string `json:"dangling,omitempty"`
}

// CanLinkPlot reports whether the note at activePath is a plot event.
func (s *Service) CanLinkPlot(activePath string) bool {
	return activePath != "" && paths.InFolder(paths.NormalizeRel(activePath), s.Config.PlotFolder)
}

// ActiveEvent checks that the current note exists and is a plot event.
func (s *Service) ActiveEvent(activePath string) (*vault.Note, error) {
	if activePath == "" {
		return nil, s.notify(ErrNoActiveNote, "oops, current file does not exist")
	}
	note, err := s.Store.Stat(activePath)
	if err != nil {
		if errors.Is(err, vault.ErrNoteNotFound) {
			return nil, s.notify(fmt.Errorf("%w: %s", ErrNoActiveNote, activePath), "oops, current file does not exist")
		}
		return nil, err
	}
	if !s.CanLinkPlot(note.Path) {
		return nil, s.notify(fmt.Errorf("%w: %s is outside %s", ErrNotPlotEvent, note.Path, paths.NormalizeFolder(s.Config.PlotFolder)),
			"only create plot links for events")
	}
	return note, nil
}

// PlotCandidates returns the notes under the plot folder sorted by path.
func (s *Service) PlotCandidates() ([]vault.Note, error) {
	return s.notesUnder(s.Config.PlotFolder)
}

// ResolveEvent finds the plot note a reference points at.
func (s *Service) ResolveEvent(ref string) (*vault.Note, error) {
	return vault.Resolve(s.Store, ref, s.Config.PlotFolder)
}

// PickEvent asks the user to pick a plot event other than exclude.
func (s *Service) PickEvent(prompt, exclude string) (*vault.Note, error) {
	candidates, err := s.PlotCandidates()
	if err != nil {
		return nil, err
	}
	var notes []vault.Note
	for _, n := range candidates {
		if n.Path != exclude {
			notes = append(notes, n)
		}
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("%w: no other events under %s", vault.ErrNoteNotFound, paths.NormalizeFolder(s.Config.PlotFolder))
	}

	idx, ok, err := s.UI.Pick(prompt, pickerLabels(notes))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCancelled
	}
	return &notes[idx], nil
}

// pickerLabels shows basenames, falling back to the path where two events
// share a basename.
func pickerLabels(notes []vault.Note) []string {
	seen := make(map[string]int, len(notes))
	for _, n := range notes {
		seen[n.Basename]++
	}
	labels := make([]string, len(notes))
	for i, n := range notes {
		labels[i] = n.Basename
		if seen[n.Basename] > 1 {
			labels[i] = n.Path
		}
	}
	return labels
}

// ConnectPrevious makes chosen point at active by appending a next link to
// chosen.
func (s *Service) ConnectPrevious(active, chosen *vault.Note) (*Link, error) {
	if err := s.checkLink(active, chosen); err != nil {
		return nil, err
	}
	if err := s.Store.Append(chosen.Path, templates.PlotLink(active.Basename)); err != nil {
		return nil, err
	}
	s.invalidate()
	s.UI.Notify(fmt.Sprintf("added link from %q to %q.", chosen.Basename, active.Basename))
	s.logger("connect-prev").Info("linked events", "from", chosen.Path, "to", active.Path)
	return &Link{From: *chosen, To: *active}, nil
}

// ConnectNext makes active point at chosen by appending a next link to
// active.
func (s *Service) ConnectNext(active, chosen *vault.Note) (*Link, error) {
	if err := s.checkLink(active, chosen); err != nil {
		return nil, err
	}
	if err := s.Store.Append(active.Path, templates.PlotLink(chosen.Basename)); err != nil {
		return nil, err
	}
	s.invalidate()
	s.UI.Notify(fmt.Sprintf("added link from %q to %q", active.Basename, chosen.Basename))
	s.logger("connect-next").Info("linked events", "from", active.Path, "to", chosen.Path)
	return &Link{From: *active, To: *chosen}, nil
}

func (s *Service) checkLink(active, chosen *vault.Note) error {
	if active == nil {
		return s.notify(ErrNoActiveNote, "oops, current file does not exist")
	}
	if !s.CanLinkPlot(active.Path) {
		return s.notify(fmt.Errorf("%w: %s", ErrNotPlotEvent, active.Path), "only create plot links for events")
	}
	if chosen == nil {
		return ErrCancelled
	}
	if chosen.Path == active.Path {
		return fmt.Errorf("%w: %s", ErrSelfLink, active.Path)
	}
	return nil
}

// PlotEvents lists the plot notes with their next targets.
func (s *Service) PlotEvents() ([]PlotEvent, error) {
	notes, err := s.PlotCandidates()
	if err != nil {
		return nil, err
	}
	events := make([]PlotEvent, 0, len(notes))
	for _, n := range notes {
		content, err := s.Store.Read(n.Path)
		if err != nil {
			return nil, err
		}
		next := wikilink.NextTargets(content)
		if next == nil {
			next = []string{}
		}
		events = append(events, PlotEvent{Note: n, Next: next})
	}
	return events, nil
}

// PlotChain follows next links forward from the event start points at.
// When an event has several next links the first one is followed. The walk
// stops at an event without links, a link back into the chain, or a link
// to a missing note.
func (s *Service) PlotChain(start string) (*Chain, error) {
	note, err := s.ResolveEvent(start)
	if err != nil {
		return nil, err
	}

	chain := &Chain{}
	visited := map[string]bool{}
	for note != nil {
		if visited[note.Path] {
			chain.Cycle = true
			break
		}
		visited[note.Path] = true
		chain.Events = append(chain.Events, *note)

		content, err := s.Store.Read(note.Path)
		if err != nil {
			return nil, err
		}
		targets := wikilink.NextTargets(content)
		if len(targets) == 0 {
			break
		}

		next, err := s.ResolveEvent(targets[0])
		switch {
		case errors.Is(err, vault.ErrNoteNotFound):
			chain.Dangling = targets[0]
			note = nil
		case err != nil:
			return nil, err
		default:
			note = next
		}
	}
	return chain, nil
}

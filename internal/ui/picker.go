package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"
)

// pickerLimit caps the built-in picker's result list.
const pickerLimit = 15

var (
	fzfLookPath         = exec.LookPath
	fzfStdinIsTerminal  = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
	fzfStdoutIsTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }
)

// HasFZF reports whether fzf is on PATH.
func HasFZF() bool {
	_, err := fzfLookPath("fzf")
	return err == nil
}

// CanUseFZF reports whether fzf is installed and both ends are terminals.
func CanUseFZF() bool {
	if !fzfStdinIsTerminal() || !fzfStdoutIsTerminal() {
		return false
	}
	return HasFZF()
}

func pickWithFZF(prompt string, items []string) (int, bool, error) {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = strconv.Itoa(i) + "\t" + item
	}

	args := []string{
		"--layout=reverse",
		"--height=60%",
		"--border",
		"--exit-0",
		"--delimiter", "\t",
		"--with-nth", "2..",
	}
	if strings.TrimSpace(prompt) != "" {
		args = append(args, "--prompt", prompt+"> ")
	}

	cmd := exec.Command("fzf", args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code == 1 || code == 130 {
				return -1, false, nil
			}
		}
		return -1, false, fmt.Errorf("run fzf selector: %w", err)
	}
	return parseFZFSelection(stdout.String(), len(items))
}

func parseFZFSelection(out string, n int) (int, bool, error) {
	selection := strings.TrimSpace(out)
	if selection == "" {
		return -1, false, nil
	}
	idxText, _, _ := strings.Cut(selection, "\t")
	idx, err := strconv.Atoi(idxText)
	if err != nil || idx < 0 || idx >= n {
		return -1, false, fmt.Errorf("unexpected fzf selection %q", selection)
	}
	return idx, true, nil
}

// FuzzyFilter ranks items against query. An empty query keeps every item
// in its original order.
func FuzzyFilter(query string, items []string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]int, len(items))
		for i := range items {
			out[i] = i
		}
		return out
	}
	matches := fuzzy.Find(query, items)
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}

// pickBuiltin asks for a filter, lists the best matches and reads a number.
func (p *TerminalPrompter) pickBuiltin(prompt string, items []string) (int, bool, error) {
	query, err := p.Ask(prompt+" (filter, empty for all)", "")
	if err != nil {
		return -1, false, err
	}
	ranked := FuzzyFilter(query, items)
	if len(ranked) == 0 {
		p.Notify(fmt.Sprintf("no match for %q", query))
		return -1, false, nil
	}
	if len(ranked) > pickerLimit {
		ranked = ranked[:pickerLimit]
	}
	if len(ranked) == 1 {
		return ranked[0], true, nil
	}

	for i, idx := range ranked {
		fmt.Fprintf(p.out, "  %s %s\n", Muted.Render(fmt.Sprintf("%2d", i+1)), items[idx])
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		answer, err := p.Ask("number", "")
		if err != nil {
			return -1, false, err
		}
		if answer == "" {
			return -1, false, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(ranked) {
			return ranked[n-1], true, nil
		}
		fmt.Fprintln(p.out, Warningf("enter a number between 1 and %d", len(ranked)))
	}
	return -1, false, ErrInvalidChoice
}

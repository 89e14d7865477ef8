package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrInvalidChoice is returned when a prompt keeps receiving answers
// outside its options.
var ErrInvalidChoice = errors.New("invalid choice")

// maxAttempts bounds re-prompting on invalid answers.
const maxAttempts = 3

// Prompter is the user-interaction surface used by the comic commands.
type Prompter interface {
	// Ask reads a free-text answer. An empty answer yields def.
	Ask(label, def string) (string, error)

	// AskText reads free text verbatim. It may span several lines.
	AskText(label string) (string, error)

	// Choose reads one of options. An empty answer yields def.
	Choose(label string, options []string, def string) (string, error)

	// Pick lets the user fuzzy-select one of items and returns its index.
	// ok is false when the user cancels.
	Pick(prompt string, items []string) (index int, ok bool, err error)

	// Notify shows a transient message.
	Notify(msg string)
}

// TerminalPrompter prompts on a terminal: questions and notices go to Out,
// answers come from In.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer

	// UseFZF decides whether Pick hands off to fzf.
	UseFZF func() bool
}

// NewTerminalPrompter returns a prompter reading from in and writing to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:     bufio.NewReader(in),
		out:    out,
		UseFZF: CanUseFZF,
	}
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func (p *TerminalPrompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s %s: ", label, Hint("["+def+"]"))
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskText reads lines until an empty line or end of input. Lines are kept
// as typed; only the line breaks typed to finish them are dropped.
func (p *TerminalPrompter) AskText(label string) (string, error) {
	fmt.Fprintf(p.out, "%s %s\n", label, Hint("(finish with an empty line)"))
	var lines []string
	for {
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (p *TerminalPrompter) Choose(label string, options []string, def string) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		answer, err := p.Ask(fmt.Sprintf("%s (%s)", label, strings.Join(options, "/")), def)
		if err != nil {
			return "", err
		}
		for _, opt := range options {
			if strings.EqualFold(answer, opt) {
				return opt, nil
			}
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		fmt.Fprintln(p.out, Warningf("choose one of %s", strings.Join(options, ", ")))
	}
	return "", fmt.Errorf("%w for %s", ErrInvalidChoice, label)
}

func (p *TerminalPrompter) Pick(prompt string, items []string) (int, bool, error) {
	if len(items) == 0 {
		return -1, false, nil
	}
	if p.UseFZF != nil && p.UseFZF() {
		return pickWithFZF(prompt, items)
	}
	return p.pickBuiltin(prompt, items)
}

func (p *TerminalPrompter) Notify(msg string) {
	fmt.Fprintln(p.out, Info(msg))
}

// readLine returns the next trimmed line. EOF counts as an empty answer.
func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Defaults is a Prompter for non-interactive runs: every question takes its
// default, picks are cancelled and notices go to Out when set.
type Defaults struct {
	Out io.Writer
}

func (d Defaults) Ask(_ string, def string) (string, error) { return def, nil }

func (d Defaults) AskText(string) (string, error) { return "", nil }

func (d Defaults) Choose(_ string, _ []string, def string) (string, error) { return def, nil }

func (d Defaults) Pick(string, []string) (int, bool, error) { return -1, false, nil }

func (d Defaults) Notify(msg string) {
	if d.Out != nil {
		fmt.Fprintln(d.Out, Info(msg))
	}
}

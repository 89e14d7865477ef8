package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/comic/internal/comic"
	"github.com/aidanlsb/comic/internal/ui"
)

// formValue returns the flag value when set, otherwise asks with def.
func formValue(fs *pflag.FlagSet, p ui.Prompter, name, label, def string) (string, error) {
	if fs.Changed(name) {
		v, err := fs.GetString(name)
		return strings.TrimSpace(v), err
	}
	if !interactive() {
		return def, nil
	}
	v, err := p.Ask(label, def)
	return strings.TrimSpace(v), err
}

// formText reads free text kept verbatim: the flag value as given, or
// multi-line input on a terminal.
func formText(fs *pflag.FlagSet, p ui.Prompter, name, label string) (string, error) {
	if fs.Changed(name) {
		return fs.GetString(name)
	}
	if !interactive() {
		return "", nil
	}
	return p.AskText(label)
}

// formInt is formValue for integer fields.
func formInt(fs *pflag.FlagSet, p ui.Prompter, name, label string, def int) (int, error) {
	if fs.Changed(name) {
		return fs.GetInt(name)
	}
	if !interactive() {
		return def, nil
	}
	raw, err := p.Ask(label, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", comic.ErrInvalidField, label, raw)
	}
	return n, nil
}

// formChoice is formValue restricted to options.
func formChoice(fs *pflag.FlagSet, p ui.Prompter, name, label string, options []string, def string) (string, error) {
	if fs.Changed(name) {
		return fs.GetString(name)
	}
	if !interactive() {
		return def, nil
	}
	return p.Choose(label, options, def)
}

// requiredValue reads a required field, re-asking while the answer is empty.
func requiredValue(fs *pflag.FlagSet, p ui.Prompter, name, label, current string) (string, error) {
	if current = strings.TrimSpace(current); current != "" {
		return current, nil
	}
	if fs.Lookup(name) != nil && fs.Changed(name) {
		v, err := fs.GetString(name)
		return strings.TrimSpace(v), err
	}
	if !interactive() {
		return "", nil
	}
	for attempt := 0; attempt < 3; attempt++ {
		v, err := p.Ask(label, "")
		if err != nil {
			return "", err
		}
		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
		p.Notify("enter " + label)
	}
	return "", nil
}

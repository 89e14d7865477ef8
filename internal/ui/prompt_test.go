package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestPrompter(input string) (*TerminalPrompter, *bytes.Buffer) {
	var out bytes.Buffer
	p := NewTerminalPrompter(strings.NewReader(input), &out)
	p.UseFZF = func() bool { return false }
	return p, &out
}

func TestAskUsesDefaultOnEmptyAnswer(t *testing.T) {
	p, out := newTestPrompter("\nRain\n")

	got, err := p.Ask("chapter", "3")
	if err != nil || got != "3" {
		t.Fatalf("Ask = %q, %v; want default", got, err)
	}
	got, err = p.Ask("title", "")
	if err != nil || got != "Rain" {
		t.Fatalf("Ask = %q, %v; want typed answer", got, err)
	}
	if !strings.Contains(out.String(), "chapter") {
		t.Fatalf("expected label in output, got %q", out.String())
	}
}

func TestAskTreatsEOFAsEmpty(t *testing.T) {
	p, _ := newTestPrompter("")
	got, err := p.Ask("pages", "3")
	if err != nil || got != "3" {
		t.Fatalf("Ask = %q, %v", got, err)
	}
}

func TestAskTextKeepsLinesVerbatim(t *testing.T) {
	p, out := newTestPrompter("  Panel 1: docks.\n\tMira: Hold it!  \r\n\nnext answer\n")
	got, err := p.AskText("transcript")
	if err != nil {
		t.Fatal(err)
	}
	if want := "  Panel 1: docks.\n\tMira: Hold it!  "; got != want {
		t.Fatalf("AskText = %q, want %q", got, want)
	}
	if !strings.Contains(out.String(), "transcript") {
		t.Fatalf("expected label in output, got %q", out.String())
	}

	next, _ := p.Ask("title", "")
	if next != "next answer" {
		t.Fatalf("AskText consumed past the empty line, next Ask = %q", next)
	}
}

func TestAskTextEndsAtEOF(t *testing.T) {
	p, _ := newTestPrompter("only line")
	got, err := p.AskText("transcript")
	if err != nil || got != "only line" {
		t.Fatalf("AskText = %q, %v", got, err)
	}
	p, _ = newTestPrompter("")
	if got, _ := p.AskText("transcript"); got != "" {
		t.Fatalf("AskText on empty input = %q", got)
	}
}

func TestChoose(t *testing.T) {
	options := []string{"sketched", "buffer", "published"}

	t.Run("matches case-insensitively", func(t *testing.T) {
		p, _ := newTestPrompter("BUFFER\n")
		got, err := p.Choose("status", options, "sketched")
		if err != nil || got != "buffer" {
			t.Fatalf("Choose = %q, %v", got, err)
		}
	})

	t.Run("accepts option number", func(t *testing.T) {
		p, _ := newTestPrompter("3\n")
		got, _ := p.Choose("status", options, "sketched")
		if got != "published" {
			t.Fatalf("Choose = %q", got)
		}
	})

	t.Run("re-prompts then gives up", func(t *testing.T) {
		p, out := newTestPrompter("x\ny\nz\n")
		_, err := p.Choose("status", options, "sketched")
		if !errors.Is(err, ErrInvalidChoice) {
			t.Fatalf("expected ErrInvalidChoice, got %v", err)
		}
		if strings.Count(out.String(), SymbolWarning) != 3 {
			t.Fatalf("expected three warnings, got %q", out.String())
		}
	})
}

func TestPickBuiltin(t *testing.T) {
	items := []string{"The Heist", "Harbor Fight", "Escape"}

	t.Run("single match is selected directly", func(t *testing.T) {
		p, _ := newTestPrompter("heist\n")
		idx, ok, err := p.Pick("previous event", items)
		if err != nil || !ok || idx != 0 {
			t.Fatalf("Pick = %d, %v, %v", idx, ok, err)
		}
	})

	t.Run("numbered choice from full list", func(t *testing.T) {
		p, out := newTestPrompter("\n3\n")
		idx, ok, err := p.Pick("next event", items)
		if err != nil || !ok || idx != 2 {
			t.Fatalf("Pick = %d, %v, %v", idx, ok, err)
		}
		if !strings.Contains(out.String(), "Harbor Fight") {
			t.Fatalf("expected listing, got %q", out.String())
		}
	})

	t.Run("empty number cancels", func(t *testing.T) {
		p, _ := newTestPrompter("\n\n")
		_, ok, err := p.Pick("next event", items)
		if err != nil || ok {
			t.Fatalf("expected cancel, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("no match notifies", func(t *testing.T) {
		p, out := newTestPrompter("zzz\n")
		_, ok, _ := p.Pick("next event", items)
		if ok || !strings.Contains(out.String(), "no match") {
			t.Fatalf("expected no-match notice, got %q", out.String())
		}
	})

	t.Run("no items", func(t *testing.T) {
		p, _ := newTestPrompter("")
		if _, ok, err := p.Pick("x", nil); ok || err != nil {
			t.Fatalf("expected cancel for empty list")
		}
	})
}

func TestDefaultsPrompter(t *testing.T) {
	var out bytes.Buffer
	d := Defaults{Out: &out}
	if got, _ := d.Ask("no", "4"); got != "4" {
		t.Fatalf("Ask = %q", got)
	}
	if got, _ := d.Choose("status", []string{"a", "b"}, "b"); got != "b" {
		t.Fatalf("Choose = %q", got)
	}
	if _, ok, _ := d.Pick("x", []string{"a"}); ok {
		t.Fatalf("Defaults.Pick should cancel")
	}
	d.Notify("hello")
	if out.String() != "ℹ hello\n" {
		t.Fatalf("Notify wrote %q", out.String())
	}
	Defaults{}.Notify("dropped")
}

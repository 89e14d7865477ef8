package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "warn", Console: &buf})
	t.Cleanup(func() { Init(Options{Console: &bytes.Buffer{}}) })

	l := WithComponent("vault")
	l.Info("hidden")
	l.Warn("comic.yaml is corrupted", slog.String("path", "my vault/comic.yaml"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered at warn level:\n%s", out)
	}
	if !strings.Contains(out, "WRN comic.yaml is corrupted") {
		t.Fatalf("missing warning line:\n%s", out)
	}
	if !strings.Contains(out, `component=vault`) || !strings.Contains(out, `path="my vault/comic.yaml"`) {
		t.Fatalf("missing attrs:\n%s", out)
	}
	if strings.Contains(out, "app=") {
		t.Fatalf("static attrs should not be printed on console:\n%s", out)
	}
}

func TestFileLoggingWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comic.log")
	Init(Options{Level: "debug", File: path, Console: &bytes.Buffer{}})
	t.Cleanup(func() {
		_ = Close()
		Init(Options{Console: &bytes.Buffer{}})
	})

	WithOperation(WithComponent("plot"), "connect-next").Debug("linked", slog.String("to", "Heist"))
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var last string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			last = s
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal json log %q: %v", last, err)
	}
	for key, want := range map[string]string{"app": "comic", "component": "plot", "op": "connect-next", "msg": "linked", "to": "Heist"} {
		if m[key] != want {
			t.Fatalf("%s = %v, want %q", key, m[key], want)
		}
	}
}

func TestOptionsMerge(t *testing.T) {
	got := Options{Level: "debug"}.Merge(Options{Level: "warn", Format: "json", File: "x.log"})
	if got.Level != "debug" || got.Format != "json" || got.File != "x.log" {
		t.Fatalf("Merge = %+v", got)
	}
}

func TestLayeredPrecedence(t *testing.T) {
	t.Setenv("COMIC_LOG_LEVEL", "info")
	t.Setenv("COMIC_LOG_FORMAT", "")
	t.Setenv("COMIC_LOG_FILE", "")

	got := Layered(Options{}, Options{Level: "error", Format: "json"})
	if got.Level != "info" || got.Format != "json" {
		t.Fatalf("env should beat config: %+v", got)
	}

	got = Layered(Options{Level: "debug"}, Options{Level: "error"})
	if got.Level != "debug" {
		t.Fatalf("explicit should beat env: %+v", got)
	}

	t.Setenv("COMIC_LOG_LEVEL", "")
	got = Layered(Options{}, Options{})
	if got.Level != "warn" || got.Format != "console" {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "error": slog.LevelError, "": slog.LevelWarn, "bogus": slog.LevelWarn}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

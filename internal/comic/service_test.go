package comic

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/comic/internal/config"
	"github.com/aidanlsb/comic/internal/frontmatter"
	"github.com/aidanlsb/comic/internal/index"
	"github.com/aidanlsb/comic/internal/vault"
)

// fakePrompter records notices and answers picks with a fixed index.
type fakePrompter struct {
	notices []string
	items   []string
	pick    int
	cancel  bool
}

func (f *fakePrompter) Ask(_ string, def string) (string, error) { return def, nil }

func (f *fakePrompter) AskText(string) (string, error) { return "", nil }

func (f *fakePrompter) Choose(_ string, _ []string, def string) (string, error) { return def, nil }

func (f *fakePrompter) Pick(_ string, items []string) (int, bool, error) {
	f.items = items
	if f.cancel {
		return -1, false, nil
	}
	return f.pick, true, nil
}

func (f *fakePrompter) Notify(msg string) { f.notices = append(f.notices, msg) }

func (f *fakePrompter) lastNotice() string {
	if len(f.notices) == 0 {
		return ""
	}
	return f.notices[len(f.notices)-1]
}

type testVault struct {
	root string
	svc  *Service
	ui   *fakePrompter
}

func newTestVault(t *testing.T, files map[string]string) *testVault {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		writeNote(t, root, rel, content)
	}
	p := &fakePrompter{}
	return &testVault{
		root: root,
		svc:  New(config.DefaultComicConfig(), vault.NewFSStore(root), nil, p),
		ui:   p,
	}
}

// withIndex attaches an in-memory index to the service.
func (v *testVault) withIndex(t *testing.T) *testVault {
	t.Helper()
	db, err := index.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	v.svc.Cache = db
	return v
}

func (v *testVault) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(v.root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func writeNote(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewFillsDefaults(t *testing.T) {
	svc := New(nil, vault.NewFSStore(t.TempDir()), nil, nil)
	if svc.Config.PlotFolder != config.DefaultPlotFolder {
		t.Fatalf("expected default config, got %+v", svc.Config)
	}
	svc.UI.Notify("ignored")
}

func TestNoteFields(t *testing.T) {
	files := map[string]string{
		"publishing/episodes/Pilot.md": "---\nno: 1\nstatus: published\n---\nPanel 1.",
	}
	for _, indexed := range []bool{false, true} {
		v := newTestVault(t, files)
		if indexed {
			v.withIndex(t)
		}
		fields, err := v.svc.NoteFields("publishing/episodes/Pilot.md")
		if err != nil {
			t.Fatalf("NoteFields (indexed=%v): %v", indexed, err)
		}
		fm := &frontmatter.Frontmatter{Fields: fields}
		no, _ := fm.Int("no")
		status, _ := fm.String("status")
		if no != 1 || status != "published" {
			t.Fatalf("indexed=%v: no=%d status=%q", indexed, no, status)
		}
	}

	v := newTestVault(t, files).withIndex(t)
	if _, err := v.svc.NoteFields("plot/Missing.md"); !errors.Is(err, index.ErrNotIndexed) {
		t.Fatalf("expected ErrNotIndexed, got %v", err)
	}
}

package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/comic/internal/ui"
)

// scriptedPrompter answers prompts from queues and records notices.
type scriptedPrompter struct {
	answers []string
	picks   []int
	notices []string
}

func (p *scriptedPrompter) next(def string) string {
	if len(p.answers) == 0 {
		return def
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	if a == "" {
		return def
	}
	return a
}

func (p *scriptedPrompter) Ask(_ string, def string) (string, error) { return p.next(def), nil }

func (p *scriptedPrompter) AskText(string) (string, error) {
	if len(p.answers) == 0 {
		return "", nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *scriptedPrompter) Choose(_ string, _ []string, def string) (string, error) {
	return p.next(def), nil
}

func (p *scriptedPrompter) Pick(_ string, items []string) (int, bool, error) {
	if len(p.picks) == 0 {
		return -1, false, nil
	}
	idx := p.picks[0]
	p.picks = p.picks[1:]
	return idx, idx >= 0 && idx < len(items), nil
}

func (p *scriptedPrompter) Notify(msg string) { p.notices = append(p.notices, msg) }

type cliEnv struct {
	vault     string
	configDir string
	prompter  ui.Prompter
	tty       bool
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv("EDITOR", "")
	t.Setenv("COMIC_LOG_LEVEL", "error")
	return &cliEnv{vault: t.TempDir(), configDir: t.TempDir()}
}

// run executes the root command against the env's vault and returns stdout.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	full := append([]string{
		"--config", filepath.Join(e.configDir, "config.toml"),
		"--state", filepath.Join(e.configDir, "state.toml"),
		"--vault-path", e.vault,
	}, args...)
	return execute(t, e.prompter, e.tty, full...)
}

// runCLI executes the root command without a vault.
func runCLI(t *testing.T, _ string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	full := append([]string{
		"--config", filepath.Join(dir, "config.toml"),
		"--state", filepath.Join(dir, "state.toml"),
	}, args...)
	return execute(t, nil, false, full...)
}

func execute(t *testing.T, p ui.Prompter, tty bool, args ...string) (string, error) {
	t.Helper()
	resetCommandFlags(rootCmd)

	prevStdout, prevPrompter, prevInteractive := stdout, newPrompter, interactive
	t.Cleanup(func() {
		stdout, newPrompter, interactive = prevStdout, prevPrompter, prevInteractive
	})

	var buf bytes.Buffer
	stdout = func() io.Writer { return &buf }
	if p == nil {
		p = ui.Defaults{}
	}
	newPrompter = func() ui.Prompter { return p }
	interactive = func() bool { return tty }

	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetCommandFlags restores every flag to its default; cobra keeps parsed
// values between Execute calls.
func resetCommandFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetCommandFlags(c)
	}
}

func writeVaultFile(t *testing.T, vaultPath, rel, content string) {
	t.Helper()
	full := filepath.Join(vaultPath, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readVaultFile(t *testing.T, vaultPath, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(vaultPath, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

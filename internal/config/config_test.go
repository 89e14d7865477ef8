package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigGetVaultPath(t *testing.T) {
	cfg := &Config{
		DefaultVault: "main",
		Vaults: map[string]string{
			"main":  "/comics/main",
			"zines": "/comics/zines",
		},
	}

	t.Run("named vault", func(t *testing.T) {
		path, err := cfg.GetVaultPath("zines")
		if err != nil || path != "/comics/zines" {
			t.Fatalf("got %q, %v", path, err)
		}
	})

	t.Run("default vault", func(t *testing.T) {
		path, err := cfg.GetDefaultVaultPath()
		if err != nil || path != "/comics/main" {
			t.Fatalf("got %q, %v", path, err)
		}
	})

	t.Run("unknown vault", func(t *testing.T) {
		if _, err := cfg.GetVaultPath("missing"); err == nil {
			t.Fatalf("expected error for unknown vault")
		}
	})

	t.Run("no default", func(t *testing.T) {
		if _, err := (&Config{}).GetDefaultVaultPath(); err == nil {
			t.Fatalf("expected error without default vault")
		}
	})
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	in := &Config{
		DefaultVault: "main",
		Vaults:       map[string]string{"main": "/comics/main"},
		Editor:       "  nvim ",
		UI:           UIConfig{Accent: "39"},
		Log:          LogConfig{Level: "debug"},
	}
	if err := SaveTo(path, in); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	out, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if out.DefaultVault != "main" || out.Vaults["main"] != "/comics/main" {
		t.Fatalf("vaults not round-tripped: %+v", out)
	}
	if out.Editor != "nvim" {
		t.Fatalf("editor = %q, want trimmed nvim", out.Editor)
	}
	if out.UI.Accent != "39" || out.Log.Level != "debug" {
		t.Fatalf("tables not round-tripped: %+v", out)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "state_file") {
		t.Fatalf("empty keys should be omitted:\n%s", data)
	}
}

func TestGetEditorFallsBackToEnv(t *testing.T) {
	t.Setenv("EDITOR", "vim")
	if got := (&Config{}).GetEditor(); got != "vim" {
		t.Fatalf("GetEditor = %q", got)
	}
	if got := (&Config{Editor: "code"}).GetEditor(); got != "code" {
		t.Fatalf("GetEditor = %q", got)
	}
}


package cli

import (
	"errors"
	"os"

	"github.com/aidanlsb/comic/internal/comic"
	"github.com/aidanlsb/comic/internal/config"
	"github.com/aidanlsb/comic/internal/index"
	"github.com/aidanlsb/comic/internal/log"
	"github.com/aidanlsb/comic/internal/ui"
	"github.com/aidanlsb/comic/internal/vault"
)

// newPrompter picks the interaction surface for this run. Tests replace it.
var newPrompter = func() ui.Prompter {
	if isJSONOutput() {
		return ui.Defaults{}
	}
	if ui.IsInteractive() {
		return ui.NewTerminalPrompter(os.Stdin, os.Stderr)
	}
	return ui.Defaults{Out: os.Stderr}
}

// interactive reports whether missing values should be prompted for.
var interactive = func() bool {
	return !isJSONOutput() && ui.IsInteractive()
}

// loadComicConfig reads comic.yaml, falling back to defaults with a warning
// when it is corrupt.
func loadComicConfig(vaultPath string) *config.ComicConfig {
	comicCfg, err := config.LoadComicConfig(vaultPath)
	if err != nil {
		log.WithComponent("cli").Warn("using default comic settings", "error", err)
		if errors.Is(err, config.ErrComicConfigCorrupt) && !isJSONOutput() {
			newPrompter().Notify("comic.yaml could not be read; using defaults")
		}
	}
	return comicCfg
}

// openService builds the comic service for the resolved vault. The returned
// func releases the index.
func openService() (*comic.Service, func()) {
	vaultPath := getVaultPath()
	store := vault.NewFSStore(vaultPath)

	db, err := index.Open(vaultPath)
	if err != nil {
		log.WithComponent("cli").Warn("index unavailable, reading notes directly", "error", err)
		db = nil
	}
	svc := comic.New(loadComicConfig(vaultPath), store, db, newPrompter())
	return svc, func() {
		if db != nil {
			_ = db.Close()
		}
	}
}

// activeNotePath returns the --from override or the vault's active note.
func activeNotePath(from string) (string, error) {
	if from != "" {
		n, err := vault.Resolve(vault.NewFSStore(getVaultPath()), from, "")
		if err != nil {
			return "", err
		}
		return n.Path, nil
	}
	state, err := config.LoadState(resolvedStatePath)
	if err != nil {
		return "", err
	}
	return state.ActiveNote(getVaultPath()), nil
}

// setActiveNote records relPath as the vault's active note. An empty path
// clears it.
func setActiveNote(relPath string) error {
	state, err := config.LoadState(resolvedStatePath)
	if err != nil {
		return err
	}
	state.SetActiveNote(getVaultPath(), relPath)
	return config.SaveState(resolvedStatePath, state)
}

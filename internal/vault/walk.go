package vault

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/comic/internal/paths"
)

// skipDirs are vault folders that never hold user notes.
var skipDirs = map[string]bool{
	".comic": true,
	".trash": true,
	".git":   true,
}

// Walk calls fn for every markdown note in the vault in lexical path order.
// It skips internal folders and anything that resolves outside the vault.
func Walk(vaultPath string, fn func(Note) error) error {
	return filepath.WalkDir(vaultPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped; the root itself must exist.
			if path == vaultPath {
				return err
			}
			return nil
		}

		if d.IsDir() {
			if path != vaultPath && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		if err := paths.ValidateWithinVault(vaultPath, path); err != nil {
			if errors.Is(err, paths.ErrPathOutsideVault) {
				return nil
			}
			return err
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(vaultPath, path)
		if err != nil {
			return nil
		}
		return fn(*newNote(filepath.ToSlash(rel), info.ModTime()))
	})
}

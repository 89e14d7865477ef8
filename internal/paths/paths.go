// Package paths provides canonical helpers for vault-relative note paths
// (e.g. "plot/act-one/the-heist.md") and the folder prefixes that scope
// episodes, characters and plot events.
package paths

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrPathOutsideVault is returned when a path resolves outside the vault root.
var ErrPathOutsideVault = errors.New("path is outside vault")

// NormalizeFolder normalizes a folder prefix to have:
// - forward slashes
// - no leading slash
// - exactly one trailing slash (unless empty)
//
// Examples:
// - "/plot/"               -> "plot/"
// - "publishing\\episodes" -> "publishing/episodes/"
// - ""                     -> ""
func NormalizeFolder(folder string) string {
	folder = strings.ReplaceAll(folder, "\\", "/")
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return ""
	}
	return folder + "/"
}

// NormalizeRel normalizes a vault-relative path-like value:
// - converts OS separators to '/'
// - trims leading "./" and leading "/"
// - collapses repeated '/'
func NormalizeRel(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// InFolder reports whether a vault-relative path lies under folder.
// An empty folder matches every path.
func InFolder(relPath, folder string) bool {
	folder = NormalizeFolder(folder)
	if folder == "" {
		return true
	}
	return strings.HasPrefix(NormalizeRel(relPath), folder)
}

// NotePath joins a folder and a note name into a markdown file path.
func NotePath(folder, name string) string {
	name = strings.TrimSuffix(name, ".md")
	return NormalizeFolder(folder) + name + ".md"
}

// Basename returns the note name without folder or ".md" extension.
func Basename(relPath string) string {
	base := NormalizeRel(relPath)
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".md")
}

// ValidateWithinVault checks that target is inside vaultPath once both are
// made absolute and cleaned.
func ValidateWithinVault(vaultPath, target string) error {
	absVault, err := filepath.Abs(vaultPath)
	if err != nil {
		return err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if absTarget == absVault || strings.HasPrefix(absTarget, absVault+string(filepath.Separator)) {
		return nil
	}
	return ErrPathOutsideVault
}

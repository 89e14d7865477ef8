// Package vault is the document store: a directory of markdown notes.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aidanlsb/comic/internal/atomicfile"
	"github.com/aidanlsb/comic/internal/paths"
)

var (
	// ErrNoteExists is returned when creating a note that is already present.
	ErrNoteExists = errors.New("note already exists")
	// ErrNoteNotFound is returned when a note cannot be found.
	ErrNoteNotFound = errors.New("note not found")
	// ErrAmbiguousRef is returned when a reference matches several notes.
	ErrAmbiguousRef = errors.New("reference matches more than one note")
)

// Note identifies a markdown note in the vault.
type Note struct {
	// Path is the vault-relative path with forward slashes (e.g. "plot/heist.md").
	Path string `json:"path"`

	// Basename is the file name without folder or ".md"; it is what
	// wikilinks point at.
	Basename string `json:"basename"`

	// Mtime is the modification time as Unix nanoseconds.
	Mtime int64 `json:"-"`
}

// Store is the set of document operations the comic commands need.
type Store interface {
	// Create writes a new note. It fails with ErrNoteExists when the
	// path is taken and creates missing parent folders.
	Create(relPath, content string) (*Note, error)

	// Append adds text to the end of an existing note.
	Append(relPath, text string) error

	// Read returns a note's full content.
	Read(relPath string) (string, error)

	// List returns the notes under a folder prefix sorted by path.
	// An empty folder lists every note.
	List(folder string) ([]Note, error)

	// Stat returns the note at relPath.
	Stat(relPath string) (*Note, error)
}

// FSStore implements Store over a vault directory.
type FSStore struct {
	root string
}

// NewFSStore returns a store rooted at vaultPath.
func NewFSStore(vaultPath string) *FSStore {
	return &FSStore{root: vaultPath}
}

// AbsPath maps a vault-relative path to a file path, refusing paths that
// escape the vault.
func (s *FSStore) AbsPath(relPath string) (string, error) {
	rel := paths.NormalizeRel(relPath)
	if rel == "" {
		return "", fmt.Errorf("note path is required")
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := paths.ValidateWithinVault(s.root, full); err != nil {
		return "", fmt.Errorf("%s: %w", relPath, err)
	}
	return full, nil
}

func (s *FSStore) Create(relPath, content string) (*Note, error) {
	full, err := s.AbsPath(relPath)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(full, ".md") {
		return nil, fmt.Errorf("note path must end in .md: %s", relPath)
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoteExists, paths.NormalizeRel(relPath))
		}
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write note: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write note: %w", err)
	}

	return s.Stat(relPath)
}

func (s *FSStore) Append(relPath, text string) error {
	full, err := s.AbsPath(relPath)
	if err != nil {
		return err
	}
	if err := atomicfile.AppendFile(full, []byte(text)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNoteNotFound, paths.NormalizeRel(relPath))
		}
		return fmt.Errorf("failed to append to note: %w", err)
	}
	return nil
}

func (s *FSStore) Read(relPath string) (string, error) {
	full, err := s.AbsPath(relPath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNoteNotFound, paths.NormalizeRel(relPath))
		}
		return "", fmt.Errorf("failed to read note: %w", err)
	}
	return string(data), nil
}

func (s *FSStore) Stat(relPath string) (*Note, error) {
	full, err := s.AbsPath(relPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, paths.NormalizeRel(relPath))
	}
	return newNote(paths.NormalizeRel(relPath), info.ModTime()), nil
}

func (s *FSStore) List(folder string) ([]Note, error) {
	var notes []Note
	err := Walk(s.root, func(n Note) error {
		if paths.InFolder(n.Path, folder) {
			notes = append(notes, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func newNote(relPath string, mtime time.Time) *Note {
	return &Note{
		Path:     relPath,
		Basename: paths.Basename(relPath),
		Mtime:    mtime.UnixNano(),
	}
}

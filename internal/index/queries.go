package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aidanlsb/comic/internal/paths"
	"github.com/aidanlsb/comic/internal/vault"
)

// Entry is an indexed note with its decoded frontmatter.
type Entry struct {
	vault.Note
	Fields     map[string]interface{}
	ParseError string
}

// IndexStats summarizes the index contents.
type IndexStats struct {
	Notes       int `json:"notes"`
	ParseErrors int `json:"parse_errors"`
}

// Frontmatter returns the cached frontmatter of a note.
func (d *Database) Frontmatter(path string) (map[string]interface{}, error) {
	var raw string
	err := d.db.QueryRow(`SELECT frontmatter FROM notes WHERE path = ?`, paths.NormalizeRel(path)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotIndexed, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query frontmatter: %w", err)
	}
	return decodeFields(raw)
}

// EntriesUnder returns indexed notes under a folder prefix sorted by path.
func (d *Database) EntriesUnder(folder string) ([]Entry, error) {
	folder = paths.NormalizeFolder(folder)
	rows, err := d.db.Query(`
		SELECT path, basename, mtime, frontmatter, COALESCE(parse_error, '')
		FROM notes
		WHERE substr(path, 1, length(?)) = ?
		ORDER BY path`, folder, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var raw string
		if err := rows.Scan(&e.Path, &e.Basename, &e.Mtime, &raw, &e.ParseError); err != nil {
			return nil, err
		}
		if e.Fields, err = decodeFields(raw); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// NotesUnder returns indexed notes under a folder prefix sorted by path.
func (d *Database) NotesUnder(folder string) ([]vault.Note, error) {
	entries, err := d.EntriesUnder(folder)
	if err != nil {
		return nil, err
	}
	notes := make([]vault.Note, len(entries))
	for i, e := range entries {
		notes[i] = e.Note
	}
	return notes, nil
}

// Stats returns counts for the index.
func (d *Database) Stats() (*IndexStats, error) {
	var s IndexStats
	err := d.db.QueryRow(`SELECT COUNT(*), COUNT(parse_error) FROM notes`).Scan(&s.Notes, &s.ParseErrors)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	return &s, nil
}

func decodeFields(raw string) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("corrupt frontmatter cache: %w", err)
	}
	return fields, nil
}

package index

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aidanlsb/comic/internal/dates"
	"github.com/aidanlsb/comic/internal/frontmatter"
	"github.com/aidanlsb/comic/internal/log"
	"github.com/aidanlsb/comic/internal/vault"
)

// SyncResult reports what a Sync changed.
type SyncResult struct {
	Indexed int `json:"indexed"`
	Removed int `json:"removed"`
	Errors  int `json:"errors"`
	Total   int `json:"total"`
}

// Sync brings the index in line with the store: notes whose mtime changed
// are reparsed and notes that no longer exist are dropped.
func (d *Database) Sync(store vault.Store) (*SyncResult, error) {
	logger := log.WithComponent("index")

	notes, err := store.List("")
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	known, err := d.mtimes()
	if err != nil {
		return nil, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res := &SyncResult{Total: len(notes)}
	seen := make(map[string]bool, len(notes))
	now := time.Now().Unix()

	for _, n := range notes {
		seen[n.Path] = true
		if mtime, ok := known[n.Path]; ok && mtime == n.Mtime {
			continue
		}

		fields := map[string]interface{}{}
		var parseErr interface{}
		content, err := store.Read(n.Path)
		if err != nil {
			return nil, err
		}
		if fm, err := frontmatter.Parse(content); err != nil {
			logger.Warn("skipping invalid frontmatter", "path", n.Path, "error", err)
			parseErr = err.Error()
			res.Errors++
		} else {
			fields = jsonSafe(fm.Fields)
		}

		data, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("failed to encode frontmatter for %s: %w", n.Path, err)
		}

		_, err = tx.Exec(`
			INSERT INTO notes (path, basename, mtime, frontmatter, parse_error, indexed_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				basename = excluded.basename,
				mtime = excluded.mtime,
				frontmatter = excluded.frontmatter,
				parse_error = excluded.parse_error,
				indexed_at = excluded.indexed_at`,
			n.Path, n.Basename, n.Mtime, string(data), parseErr, now)
		if err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", n.Path, err)
		}
		res.Indexed++
	}

	for path := range known {
		if seen[path] {
			continue
		}
		if _, err := tx.Exec(`DELETE FROM notes WHERE path = ?`, path); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		res.Removed++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit index: %w", err)
	}

	logger.Debug("index synced", "indexed", res.Indexed, "removed", res.Removed, "total", res.Total)
	return res, nil
}

func (d *Database) mtimes() (map[string]int64, error) {
	rows, err := d.db.Query(`SELECT path, mtime FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		out[path] = mtime
	}
	return out, rows.Err()
}

// jsonSafe converts YAML-decoded values into JSON-encodable ones.
// Dates become YYYY-MM-DD strings and nested maps get string keys.
func jsonSafe(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = jsonValue(v)
	}
	return out
}

func jsonValue(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return t.Format(dates.DateLayout)
	case map[string]interface{}:
		return jsonSafe(t)
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonValue(val)
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = jsonValue(val)
		}
		return out
	default:
		return v
	}
}

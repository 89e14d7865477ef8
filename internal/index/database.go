// Package index keeps a SQLite cache of note frontmatter so episode and plot
// lookups do not reparse every note on each command.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// CurrentDBVersion is the current database schema version.
const CurrentDBVersion = 1

// DirName is the vault-relative folder holding the cache.
const DirName = ".comic"

// ErrNotIndexed indicates the requested note is not in the index.
var ErrNotIndexed = errors.New("note not in index")

// Database is the SQLite database handle.
type Database struct {
	db *sql.DB
}

// Open opens or creates <vault>/.comic/index.db.
func Open(vaultPath string) (*Database, error) {
	dbDir := filepath.Join(vaultPath, DirName)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", DirName, err)
	}
	return open(filepath.Join(dbDir, "index.db"))
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	return open(":memory:")
}

func open(dsn string) (*Database, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases alive across calls.
	db.SetMaxOpenConns(1)

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

// initialize creates the schema, dropping tables from other schema versions.
func (d *Database) initialize() error {
	if _, err := d.db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	var version int
	err := d.db.QueryRow(`SELECT CAST(value AS INTEGER) FROM meta WHERE key = 'version'`).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read database version: %w", err)
	}
	if version != 0 && version != CurrentDBVersion {
		if _, err := d.db.Exec(`DROP TABLE IF EXISTS notes`); err != nil {
			return fmt.Errorf("failed to reset index: %w", err)
		}
	}

	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		-- One row per markdown note
		CREATE TABLE IF NOT EXISTS notes (
			path TEXT PRIMARY KEY,          -- vault-relative, forward slashes
			basename TEXT NOT NULL,         -- wikilink target
			mtime INTEGER NOT NULL,         -- file mtime, Unix nanoseconds
			frontmatter TEXT NOT NULL DEFAULT '{}',
			parse_error TEXT,               -- set when the header is not valid YAML
			indexed_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notes_basename ON notes(basename);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	_, err = d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", CurrentDBVersion))
	if err != nil {
		return fmt.Errorf("failed to set database version: %w", err)
	}
	return nil
}

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound reports a lookup that matched nothing.
	ErrNotFound = errors.New("store: not found")

	// ErrName reports a sounding with an empty name.
	ErrName = errors.New("store: sounding needs a name")

	// ErrRun reports a run missing its sounding name or kind.
	ErrRun = errors.New("store: run needs a sounding name and kind")
)

const schema = `
CREATE TABLE IF NOT EXISTS soundings (
	name       TEXT PRIMARY KEY,
	array      TEXT    NOT NULL,
	points     INTEGER NOT NULL,
	data       TEXT    NOT NULL,
	created_at TEXT    NOT NULL,
	updated_at TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	sounding_name TEXT    NOT NULL REFERENCES soundings(name),
	kind          TEXT    NOT NULL,
	config        TEXT    NOT NULL,
	model         TEXT    NOT NULL,
	phi_d         REAL    NOT NULL,
	rms_percent   REAL    NOT NULL,
	iterations    INTEGER NOT NULL,
	converged     INTEGER NOT NULL,
	created_at    TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_sounding ON runs(sounding_name);
`

// Store is a project database handle. Safe for concurrent use; the
// underlying *sql.DB pools connections.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path, creating parent
// directories and applying the schema. Opening an existing database is
// a no-op beyond the idempotent schema check.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	// foreign_keys must ride the DSN: plain PRAGMAs apply to a single
	// pooled connection only.
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// nowUTC timestamps rows as ISO 8601 with full precision.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339Nano) }

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

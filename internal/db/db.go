// ABOUTME: Database connection and schema management for the build history.
// ABOUTME: Handles XDG paths, SQLite initialization, and migrations.

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS builds (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    production INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    error TEXT NOT NULL DEFAULT '',
    started_at DATETIME NOT NULL,
    finished_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);

CREATE TABLE IF NOT EXISTS build_tags (
    build_id TEXT REFERENCES builds(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    tag TEXT NOT NULL,
    slug TEXT NOT NULL,
    path TEXT NOT NULL,
    post_count INTEGER NOT NULL,
    PRIMARY KEY (build_id, position)
);
`

func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Enable foreign keys for this connection
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return db, nil
}

func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "tagpages", "history.db")
}

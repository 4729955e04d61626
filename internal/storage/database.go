// Package storage persists kept chunks and drop decisions to a sqlite
// audit database, so runs can be compared and chunk ID uniqueness can
// be verified after the fact.
package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a sqlite database at the given path. Use ":memory:" for
// tests.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in sqlite).
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the audit schema. Idempotent.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			options TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			chunk_id TEXT NOT NULL,
			run_id TEXT NOT NULL,
			pack_id TEXT NOT NULL,
			section_title TEXT,
			page INTEGER NOT NULL,
			language TEXT NOT NULL,
			content TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);`,
		`CREATE TABLE IF NOT EXISTS drops (
			chunk_id TEXT NOT NULL,
			run_id TEXT NOT NULL,
			pack_id TEXT NOT NULL,
			section_title TEXT,
			page INTEGER NOT NULL,
			language TEXT NOT NULL,
			content TEXT NOT NULL,
			reason TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_id ON chunks(chunk_id);`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_language ON chunks(language);`,
		`CREATE INDEX IF NOT EXISTS idx_drops_reason ON drops(reason);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

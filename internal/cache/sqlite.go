package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS responses (
	url  TEXT PRIMARY KEY,
	body TEXT NOT NULL
)`

// SQLiteStore keeps the cache in a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens or creates the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createEntriesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating responses table: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads every stored response.
func (s *SQLiteStore) Load() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT url, body FROM responses`)
	if err != nil {
		return nil, fmt.Errorf("querying responses: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var url, body string
		if err := rows.Scan(&url, &body); err != nil {
			return nil, fmt.Errorf("scanning response: %w", err)
		}
		entries[url] = body
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating responses: %w", err)
	}

	return entries, nil
}

// Save replaces the table contents with entries in one transaction.
func (s *SQLiteStore) Save(entries map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(`DELETE FROM responses`); err != nil {
		return fmt.Errorf("clearing responses: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO responses (url, body) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for url, body := range entries {
		if _, err := stmt.Exec(url, body); err != nil {
			return fmt.Errorf("inserting %s: %w", url, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing responses: %w", err)
	}
	return nil
}

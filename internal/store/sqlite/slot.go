// Package sqlite provides a history slot stored as one row of a SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS slots (
	name       TEXT PRIMARY KEY,
	blob       TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Open opens the database at path, creating the file, its directory and the
// slots table as needed. ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across calls and
	// serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

// Slot reads and writes the row keyed by name.
type Slot struct {
	db   *sql.DB
	name string
}

// New creates a Slot for name in db. The caller owns db and must close it.
func New(db *sql.DB, name string) *Slot {
	return &Slot{db: db, name: name}
}

func (s *Slot) Read(ctx context.Context) (string, bool, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT blob FROM slots WHERE name = ?`, s.name).Scan(&blob)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	return blob, true, nil
}

func (s *Slot) Write(ctx context.Context, blob string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (name, blob, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		s.name, blob)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", s.name, err)
	}
	return nil
}

func (s *Slot) Remove(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, s.name); err != nil {
		return fmt.Errorf("remove slot %s: %w", s.name, err)
	}
	return nil
}

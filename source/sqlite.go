package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite serves spectra stored in a single-table SQLite catalogue.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the catalogue at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "spectra.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("source: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("source: open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS spectra (
		category TEXT NOT NULL,
		file     TEXT NOT NULL,
		body     TEXT NOT NULL,
		PRIMARY KEY (category, file)
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("source: create spectra table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// Put stores content at key, replacing any previous content.
func (s *SQLite) Put(ctx context.Context, key, content string) error {
	category, file, err := splitKey(key)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO spectra(category, file, body) VALUES(?, ?, ?)
		 ON CONFLICT(category, file) DO UPDATE SET body = excluded.body`,
		category, file, content)
	if err != nil {
		return fmt.Errorf("source: upsert %s: %w", key, err)
	}
	return nil
}

// Open implements Source.
func (s *SQLite) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	category, file, err := splitKey(key)
	if err != nil {
		return nil, err
	}
	var body string
	err = s.db.QueryRowContext(ctx,
		`SELECT body FROM spectra WHERE category = ? AND file = ?`, category, file).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("source: select %s: %w", key, err)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

// List implements Source.
func (s *SQLite) List(ctx context.Context, category string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file FROM spectra WHERE category = ? ORDER BY file`, category)
	if err != nil {
		return nil, fmt.Errorf("source: list %s: %w", category, err)
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var file string
		if err := rows.Scan(&file); err != nil {
			return nil, fmt.Errorf("source: scan: %w", err)
		}
		out = append(out, file)
	}
	return out, rows.Err()
}

// splitKey maps "<category>/<file>" to its parts; a key without a slash
// (such as [SetsKey]) has an empty category.
func splitKey(key string) (category, file string, err error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", "", err
	}
	if i := strings.LastIndex(k, "/"); i >= 0 {
		return k[:i], k[i+1:], nil
	}
	return "", k, nil
}

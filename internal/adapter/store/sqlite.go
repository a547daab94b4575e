package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS uploaded_media (
	media_id    TEXT PRIMARY KEY,
	uploaded_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);`

const (
	keyBackupImages = "backup_images"
	keyWifiOnly     = "wifi_only"
)

// SQLite persists the uploaded-media ledger and the user settings. The path
// can be ":memory:" for tests.
type SQLite struct {
	db *sql.DB
}

func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Contains reports whether the media identifier is already in the ledger.
func (s *SQLite) Contains(ctx context.Context, mediaID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM uploaded_media WHERE media_id = ?", mediaID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query ledger: %w", err)
	}
	return true, nil
}

// Add appends the media identifier to the ledger. Re-adding an existing
// identifier is a no-op, so the ledger never holds duplicates.
func (s *SQLite) Add(ctx context.Context, mediaID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO uploaded_media (media_id, uploaded_at) VALUES (?, ?) ON CONFLICT(media_id) DO NOTHING",
		mediaID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to append to ledger: %w", err)
	}
	return nil
}

// Count returns the number of ledger entries.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM uploaded_media").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}
	return n, nil
}

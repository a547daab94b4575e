package store

import (
	"context"
	"fmt"

	"github.com/semmidev/mediasafe/internal/domain"
)

// Get reads the current settings. Missing keys read as false, so a fresh
// database starts with backup opted out.
func (s *SQLite) Get(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings

	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("failed to scan setting: %w", err)
		}
		switch key {
		case keyBackupImages:
			settings.BackupImages = value != 0
		case keyWifiOnly:
			settings.WifiOnly = value != 0
		}
	}
	if err := rows.Err(); err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	return settings, nil
}

func (s *SQLite) SetBackupImages(ctx context.Context, enabled bool) error {
	return s.setFlag(ctx, keyBackupImages, enabled)
}

func (s *SQLite) SetWifiOnly(ctx context.Context, enabled bool) error {
	return s.setFlag(ctx, keyWifiOnly, enabled)
}

func (s *SQLite) setFlag(ctx context.Context, key string, enabled bool) error {
	value := 0
	if enabled {
		value = 1
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("failed to persist setting %s: %w", key, err)
	}
	return nil
}

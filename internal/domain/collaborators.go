package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by RemoteStorage.StatByPath when no entry
	// exists at the given path.
	ErrNotFound = errors.New("remote entry not found")

	// ErrQuotaExceeded marks an upload rejected because the remote storage
	// is out of capacity. Adapters map their provider's quota signal
	// (HTTP 413) onto this error.
	ErrQuotaExceeded = errors.New("remote storage quota exceeded")

	// ErrSessionActive is returned when a backup session is requested while
	// another one is still running. At most one session may be in flight.
	ErrSessionActive = errors.New("a backup session is already active")
)

// MediaSource is the device media library: enumeration, authorization, and
// the default remote folder name for its media.
type MediaSource interface {
	ListMedia(ctx context.Context) ([]MediaItem, error)
	IsAuthorized(ctx context.Context) bool
	// RequestAuthorization may surface a system prompt. It reports whether
	// access was granted.
	RequestAuthorization(ctx context.Context) (bool, error)
	DefaultBackupFolderName() string
}

// RemoteStorage is the backup destination.
type RemoteStorage interface {
	// EnsureDirectory resolves or creates the remote directory for the
	// given path and returns its stable id. Creating an existing directory
	// is a no-op.
	EnsureDirectory(ctx context.Context, path string) (string, error)
	// StatByPath reports whether an entry exists at path: nil when present,
	// ErrNotFound (or any other error) when it cannot be confirmed.
	StatByPath(ctx context.Context, path string) error
	// Upload transfers one item into the directory identified by dirID.
	// A capacity rejection is reported as ErrQuotaExceeded.
	Upload(ctx context.Context, dirID string, item MediaItem) error
	// MarkSyncCompleted records that a sync pass finished.
	MarkSyncCompleted(ctx context.Context) error
}

// NetworkStatus classifies the current connectivity.
type NetworkStatus interface {
	IsOnUnrestrictedNetwork() bool
}

// SettingsStore persists the user's backup preferences.
type SettingsStore interface {
	Get(ctx context.Context) (Settings, error)
	SetBackupImages(ctx context.Context, enabled bool) error
	SetWifiOnly(ctx context.Context, enabled bool) error
}

// Ledger is the durable record of media identifiers confirmed present in
// remote storage. It only grows; each identifier is added at most once.
type Ledger interface {
	Contains(ctx context.Context, mediaID string) (bool, error)
	Add(ctx context.Context, mediaID string) error
}

// Diagnostics receives non-user-facing failure reports for post-hoc
// investigation. Report must not block the backup flow on delivery errors.
type Diagnostics interface {
	Report(message string, context map[string]string)
}

// BackgroundUpdater is told whether automatic backup is currently enabled,
// so periodic sessions can be started or stopped accordingly.
type BackgroundUpdater interface {
	SetEnabled(enabled bool)
}

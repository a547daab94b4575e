package domain

import "time"

// MediaItem is one piece of media found in the device library. Values are
// produced fresh by the media source each session and are immutable for the
// duration of the session. FileName is the remote dedup key; ID is the
// stable, device-assigned identifier recorded in the ledger.
type MediaItem struct {
	ID        string
	FileName  string
	TakenAt   time.Time
	LocalPath string
	Size      int64
}

// Settings holds the user-facing backup preferences. BackupImages is the
// opt-in for automatic backup; WifiOnly restricts automatic backup to
// unrestricted networks. The core only ever writes BackupImages, and only
// to disable it after a denied authorization.
type Settings struct {
	BackupImages bool
	WifiOnly     bool
}

type BackupMode int

const (
	// ModeAutomatic requires the opt-in setting and never prompts for
	// authorization.
	ModeAutomatic BackupMode = iota
	// ModeManual is user-initiated: it may prompt and proceeds without the
	// opt-in setting.
	ModeManual
)

func (m BackupMode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "automatic"
}

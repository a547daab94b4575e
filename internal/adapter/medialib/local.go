package medialib

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/semmidev/mediasafe/internal/domain"
)

var mediaExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".heic": true,
	".webp": true,
	".mp4":  true,
	".mov":  true,
	".m4a":  true,
	".mp3":  true,
}

// LocalLibrary exposes a directory of media files as the device library.
// Identifiers are derived from the file path so they stay stable across
// sessions; enumeration order is capture (modification) time.
type LocalLibrary struct {
	basePath   string
	folderName string
}

func NewLocalLibrary(basePath, folderName string) *LocalLibrary {
	return &LocalLibrary{basePath: basePath, folderName: folderName}
}

func (l *LocalLibrary) ListMedia(ctx context.Context) ([]domain.MediaItem, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read media directory: %w", err)
	}

	var items []domain.MediaItem
	for _, entry := range entries {
		if entry.IsDir() || !mediaExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		items = append(items, domain.MediaItem{
			ID:        mediaID(filepath.Join(l.basePath, entry.Name())),
			FileName:  entry.Name(),
			TakenAt:   info.ModTime(),
			LocalPath: filepath.Join(l.basePath, entry.Name()),
			Size:      info.Size(),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].TakenAt.Before(items[j].TakenAt)
	})

	return items, nil
}

// IsAuthorized reports whether the library directory is readable.
func (l *LocalLibrary) IsAuthorized(ctx context.Context) bool {
	f, err := os.Open(l.basePath)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// RequestAuthorization has no system prompt to show for a filesystem
// library: it creates the directory if missing and re-checks access.
func (l *LocalLibrary) RequestAuthorization(ctx context.Context) (bool, error) {
	if err := os.MkdirAll(l.basePath, 0755); err != nil {
		return false, fmt.Errorf("failed to create media directory: %w", err)
	}
	return l.IsAuthorized(ctx), nil
}

func (l *LocalLibrary) DefaultBackupFolderName() string {
	return l.folderName
}

func mediaID(path string) string {
	sum := sha1.Sum([]byte(path))
	return hex.EncodeToString(sum[:])
}

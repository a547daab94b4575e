package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	appconfig "github.com/semmidev/mediasafe/internal/config"
	"github.com/semmidev/mediasafe/internal/domain"
)

const folderMimeType = "application/vnd.google-apps.folder"

type GDriveStorage struct {
	service *drive.Service
	rootID  string

	mu      sync.Mutex
	folders map[string]string // path -> folder id
}

func NewGDrive(cfg *appconfig.RemoteTarget) (*GDriveStorage, error) {
	ctx := context.Background()

	service, err := drive.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &GDriveStorage{
		service: service,
		rootID:  cfg.FolderID,
		folders: make(map[string]string),
	}, nil
}

// EnsureDirectory resolves the folder for the given path, creating missing
// components under the configured root. Resolution is idempotent: an
// existing folder is reused by name.
func (g *GDriveStorage) EnsureDirectory(ctx context.Context, dirPath string) (string, error) {
	cleaned := strings.Trim(dirPath, "/")
	if cleaned == "" {
		return g.rootID, nil
	}

	parentID := g.rootID
	current := ""
	for _, name := range strings.Split(cleaned, "/") {
		current = path.Join(current, name)

		id, err := g.findByName(ctx, parentID, name, true)
		if errors.Is(err, domain.ErrNotFound) {
			folder, createErr := g.service.Files.Create(&drive.File{
				Name:     name,
				MimeType: folderMimeType,
				Parents:  []string{parentID},
			}).Fields("id").Context(ctx).Do()
			if createErr != nil {
				return "", fmt.Errorf("failed to create folder %q: %w", name, createErr)
			}
			id = folder.Id
		} else if err != nil {
			return "", err
		}

		g.rememberFolder(current, id)
		parentID = id
	}

	return parentID, nil
}

// StatByPath reports whether a file exists at "folder/name". Folders are
// resolved from the cache when warm and looked up by name otherwise.
func (g *GDriveStorage) StatByPath(ctx context.Context, remotePath string) error {
	dir, name := path.Split(strings.Trim(remotePath, "/"))

	parentID, err := g.resolveFolder(ctx, strings.Trim(dir, "/"))
	if err != nil {
		return err
	}

	_, err = g.findByName(ctx, parentID, name, false)
	return err
}

// resolveFolder walks the folder path component by component without
// creating anything, caching ids as it goes. A missing component reads as
// ErrNotFound.
func (g *GDriveStorage) resolveFolder(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		return g.rootID, nil
	}
	if id, ok := g.lookupFolder(dir); ok {
		return id, nil
	}

	parentID := g.rootID
	current := ""
	for _, name := range strings.Split(dir, "/") {
		current = path.Join(current, name)

		id, ok := g.lookupFolder(current)
		if !ok {
			found, err := g.findByName(ctx, parentID, name, true)
			if err != nil {
				return "", err
			}
			g.rememberFolder(current, found)
			id = found
		}
		parentID = id
	}

	return parentID, nil
}

func (g *GDriveStorage) Upload(ctx context.Context, dirID string, item domain.MediaItem) error {
	file, err := os.Open(item.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	_, err = g.service.Files.Create(&drive.File{
		Name:    item.FileName,
		Parents: []string{dirID},
	}).
		Media(file).
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusRequestEntityTooLarge {
			return fmt.Errorf("upload rejected: %w", domain.ErrQuotaExceeded)
		}
		return fmt.Errorf("failed to upload to gdrive: %w", err)
	}

	return nil
}

// MarkSyncCompleted stores the sync timestamp in a marker file under the
// root folder, updating it in place when it already exists.
func (g *GDriveStorage) MarkSyncCompleted(ctx context.Context) error {
	stamp := strings.NewReader(time.Now().UTC().Format(time.RFC3339))

	id, err := g.findByName(ctx, g.rootID, lastSyncKey, false)
	if errors.Is(err, domain.ErrNotFound) {
		_, err = g.service.Files.Create(&drive.File{
			Name:    lastSyncKey,
			Parents: []string{g.rootID},
		}).Media(stamp).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to create sync marker: %w", err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	_, err = g.service.Files.Update(id, &drive.File{}).Media(stamp).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update sync marker: %w", err)
	}
	return nil
}

func (g *GDriveStorage) findByName(ctx context.Context, parentID, name string, folder bool) (string, error) {
	query := fmt.Sprintf("'%s' in parents and name='%s' and trashed=false",
		parentID, strings.ReplaceAll(name, "'", `\'`))
	if folder {
		query += fmt.Sprintf(" and mimeType='%s'", folderMimeType)
	}

	fileList, err := g.service.Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to list files: %w", err)
	}

	if len(fileList.Files) == 0 {
		return "", domain.ErrNotFound
	}
	return fileList.Files[0].Id, nil
}

func (g *GDriveStorage) rememberFolder(path, id string) {
	g.mu.Lock()
	g.folders[path] = id
	g.mu.Unlock()
}

func (g *GDriveStorage) lookupFolder(path string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.folders[path]
	return id, ok
}

package usecase

import (
	"context"
	"sync"

	"github.com/semmidev/mediasafe/internal/domain"
)

type fakeMedia struct {
	items          []domain.MediaItem
	authorized     bool
	grantOnRequest bool
	folderName     string

	listCalls    int
	requestCalls int
}

func (f *fakeMedia) ListMedia(ctx context.Context) ([]domain.MediaItem, error) {
	f.listCalls++
	return f.items, nil
}

func (f *fakeMedia) IsAuthorized(ctx context.Context) bool { return f.authorized }

func (f *fakeMedia) RequestAuthorization(ctx context.Context) (bool, error) {
	f.requestCalls++
	if f.grantOnRequest {
		f.authorized = true
	}
	return f.grantOnRequest, nil
}

func (f *fakeMedia) DefaultBackupFolderName() string { return f.folderName }

type fakeRemote struct {
	existing   map[string]bool  // remote path -> present
	uploadErr  map[string]error // media id -> error to return
	uploadHook func(item domain.MediaItem)

	uploaded    []string // media ids, in transfer order
	ensureCalls int
	syncCalls   int
}

func (f *fakeRemote) EnsureDirectory(ctx context.Context, path string) (string, error) {
	f.ensureCalls++
	return "dir-" + path, nil
}

func (f *fakeRemote) StatByPath(ctx context.Context, path string) error {
	if f.existing[path] {
		return nil
	}
	return domain.ErrNotFound
}

func (f *fakeRemote) Upload(ctx context.Context, dirID string, item domain.MediaItem) error {
	if f.uploadHook != nil {
		f.uploadHook(item)
	}
	if err := f.uploadErr[item.ID]; err != nil {
		return err
	}
	f.uploaded = append(f.uploaded, item.ID)
	return nil
}

func (f *fakeRemote) MarkSyncCompleted(ctx context.Context) error {
	f.syncCalls++
	return nil
}

type fakeNetwork struct{ unrestricted bool }

func (f *fakeNetwork) IsOnUnrestrictedNetwork() bool { return f.unrestricted }

type fakeSettings struct {
	mu       sync.Mutex
	settings domain.Settings
	writes   []bool // values passed to SetBackupImages
}

func (f *fakeSettings) Get(ctx context.Context) (domain.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, nil
}

func (f *fakeSettings) SetBackupImages(ctx context.Context, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings.BackupImages = enabled
	f.writes = append(f.writes, enabled)
	return nil
}

func (f *fakeSettings) SetWifiOnly(ctx context.Context, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings.WifiOnly = enabled
	return nil
}

type fakeLedger struct {
	ids   map[string]bool
	order []string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{ids: make(map[string]bool)}
}

func (f *fakeLedger) Contains(ctx context.Context, mediaID string) (bool, error) {
	return f.ids[mediaID], nil
}

func (f *fakeLedger) Add(ctx context.Context, mediaID string) error {
	if !f.ids[mediaID] {
		f.ids[mediaID] = true
		f.order = append(f.order, mediaID)
	}
	return nil
}

type fakeDiagnostics struct {
	mu      sync.Mutex
	reports []string
}

func (f *fakeDiagnostics) Report(message string, context map[string]string) {
	f.mu.Lock()
	f.reports = append(f.reports, message)
	f.mu.Unlock()
}

func (f *fakeDiagnostics) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reports...)
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordingSink) Emit(e domain.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recordingSink) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]domain.EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

type nopLogger struct{}

func (nopLogger) Infof(template string, args ...interface{})  {}
func (nopLogger) Errorf(template string, args ...interface{}) {}
func (nopLogger) Warnf(template string, args ...interface{})  {}

type fakeUpdater struct {
	states []bool
}

func (f *fakeUpdater) SetEnabled(enabled bool) {
	f.states = append(f.states, enabled)
}

type fixture struct {
	media    *fakeMedia
	remote   *fakeRemote
	network  *fakeNetwork
	settings *fakeSettings
	ledger   *fakeLedger
	diag     *fakeDiagnostics
	sink     *recordingSink
	uc       *Backup
}

func newFixture(items ...domain.MediaItem) *fixture {
	f := &fixture{
		media: &fakeMedia{
			items:      items,
			authorized: true,
			folderName: "Photos from my device",
		},
		remote: &fakeRemote{
			existing:  make(map[string]bool),
			uploadErr: make(map[string]error),
		},
		network:  &fakeNetwork{unrestricted: true},
		settings: &fakeSettings{settings: domain.Settings{BackupImages: true}},
		ledger:   newFakeLedger(),
		diag:     &fakeDiagnostics{},
		sink:     &recordingSink{},
	}
	f.uc = NewBackup(f.media, f.remote, f.network, f.settings, f.ledger, f.diag, f.sink, nopLogger{}, 0)
	return f
}

func item(id, fileName string) domain.MediaItem {
	return domain.MediaItem{ID: id, FileName: fileName, LocalPath: "/library/" + fileName}
}

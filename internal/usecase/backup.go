package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/semmidev/mediasafe/internal/domain"
)

// DefaultWatchdogCeiling bounds how long a single transfer may run before
// the watchdog reports it. The watchdog observes only; it never interrupts
// the transfer (see uploadItem).
const DefaultWatchdogCeiling = 5 * time.Minute

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// Backup drives one media backup session end to end: authorization and
// network gating, candidate filtering against the ledger, and the strictly
// sequential upload loop.
type Backup struct {
	media       domain.MediaSource
	remote      domain.RemoteStorage
	network     domain.NetworkStatus
	settings    domain.SettingsStore
	ledger      domain.Ledger
	diagnostics domain.Diagnostics
	events      domain.EventSink
	logger      Logger

	watchdogCeiling time.Duration

	// active enforces the single-flight contract: at most one session may
	// run at a time, concurrent starts are rejected with ErrSessionActive.
	active sync.Mutex
}

func NewBackup(
	media domain.MediaSource,
	remote domain.RemoteStorage,
	network domain.NetworkStatus,
	settings domain.SettingsStore,
	ledger domain.Ledger,
	diagnostics domain.Diagnostics,
	events domain.EventSink,
	logger Logger,
	watchdogCeiling time.Duration,
) *Backup {
	if watchdogCeiling <= 0 {
		watchdogCeiling = DefaultWatchdogCeiling
	}
	return &Backup{
		media:           media,
		remote:          remote,
		network:         network,
		settings:        settings,
		ledger:          ledger,
		diagnostics:     diagnostics,
		events:          events,
		logger:          logger,
		watchdogCeiling: watchdogCeiling,
	}
}

// StartMediaBackup runs one session against targetFolder. It returns
// ErrSessionActive when another session is in flight; any other error means
// the session could not proceed past its setup steps. Item-level failures
// never surface here, they are reported to diagnostics and skipped.
func (uc *Backup) StartMediaBackup(ctx context.Context, sess *Session, targetFolder string, mode domain.BackupMode) error {
	if !uc.active.TryLock() {
		return domain.ErrSessionActive
	}
	defer uc.active.Unlock()

	sess.reset()
	uc.emit(domain.Event{Type: domain.EventBackupStarted, SessionID: sess.id})
	defer uc.emit(domain.Event{Type: domain.EventBackupEnded, SessionID: sess.id})

	uc.logger.Infof("[%s] Starting %s backup to %q", sess.id, mode, targetFolder)

	if !uc.media.IsAuthorized(ctx) {
		granted := uc.ensureAuthorization(ctx, mode == domain.ModeManual)
		if !granted {
			// A manual request cannot proceed without authorization.
			mode = domain.ModeAutomatic
			uc.disableOptInAfterDenial(ctx)
		}
	}

	if !uc.canBackupNow(ctx, mode) {
		uc.logger.Infof("[%s] Backup not permitted now, aborting", sess.id)
		uc.emit(domain.Event{Type: domain.EventBackupAborted, SessionID: sess.id})
		return nil
	}

	if err := uc.runUploads(ctx, sess, targetFolder, mode); err != nil {
		return err
	}

	if err := uc.remote.MarkSyncCompleted(ctx); err != nil {
		uc.logger.Warnf("[%s] Failed to mark sync completed: %v", sess.id, err)
	}
	return nil
}

func (uc *Backup) runUploads(ctx context.Context, sess *Session, targetFolder string, mode domain.BackupMode) error {
	items, err := uc.media.ListMedia(ctx)
	if err != nil {
		return fmt.Errorf("list media: %w", err)
	}

	candidates, err := uc.filterCandidates(ctx, items)
	if err != nil {
		return err
	}
	uc.logger.Infof("[%s] %d item(s) on device, %d to upload", sess.id, len(items), len(candidates))
	if len(candidates) == 0 {
		return nil
	}

	dirID, err := uc.remote.EnsureDirectory(ctx, targetFolder)
	if err != nil {
		return fmt.Errorf("ensure remote directory %q: %w", targetFolder, err)
	}

	total := len(candidates)
	for index, item := range candidates {
		// Cancellation, quota, and the gating predicate are all sampled at
		// the iteration boundary: no new transfer starts once any trips.
		if sess.CancelRequested() || sess.QuotaReached() || !uc.canBackupNow(ctx, mode) {
			uc.logger.Infof("[%s] Stopping after %d of %d item(s)", sess.id, index, total)
			break
		}

		sess.setProgress(index, total)
		uc.emit(domain.Event{
			Type:      domain.EventCurrentUpload,
			SessionID: sess.id,
			Item:      &candidates[index],
			Progress:  &domain.Progress{Index: index, Total: total},
		})

		uc.uploadItem(ctx, sess, targetFolder, dirID, item)
	}
	return nil
}

// filterCandidates drops items already in the ledger, preserving device
// enumeration order.
func (uc *Backup) filterCandidates(ctx context.Context, items []domain.MediaItem) ([]domain.MediaItem, error) {
	candidates := make([]domain.MediaItem, 0, len(items))
	for _, item := range items {
		uploaded, err := uc.ledger.Contains(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("ledger lookup for %s: %w", item.ID, err)
		}
		if !uploaded {
			candidates = append(candidates, item)
		}
	}
	return candidates, nil
}

// ensureAuthorization wraps the media source's authorization request so that
// automatic backups never surface a system prompt: without shouldPrompt it
// reports denial immediately.
func (uc *Backup) ensureAuthorization(ctx context.Context, shouldPrompt bool) bool {
	if !shouldPrompt {
		return false
	}
	granted, err := uc.media.RequestAuthorization(ctx)
	if err != nil {
		uc.logger.Warnf("Authorization request failed: %v", err)
		return false
	}
	return granted
}

// disableOptInAfterDenial persists BackupImages=false when the user had
// opted in but authorization was denied. The setting is never re-enabled by
// the core.
func (uc *Backup) disableOptInAfterDenial(ctx context.Context) {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Warnf("Failed to read settings after denied authorization: %v", err)
		return
	}
	if !settings.BackupImages {
		return
	}
	if err := uc.settings.SetBackupImages(ctx, false); err != nil {
		uc.logger.Errorf("Failed to disable automatic backup after denied authorization: %v", err)
	}
}

// canBackupNow is the gating predicate. It re-reads settings and network
// state on every call because both can change mid-session.
func (uc *Backup) canBackupNow(ctx context.Context, mode domain.BackupMode) bool {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Warnf("Failed to read settings, treating backup as not permitted: %v", err)
		return false
	}

	optedIn := mode == domain.ModeManual || settings.BackupImages
	networkOK := !settings.WifiOnly || uc.network.IsOnUnrestrictedNetwork()
	return optedIn && networkOK
}

// CancelMediaBackup flags the session for cooperative cancellation and
// notifies event consumers.
func (uc *Backup) CancelMediaBackup(sess *Session) {
	sess.RequestCancel()
	uc.emit(domain.Event{Type: domain.EventCancelRequested, SessionID: sess.id})
}

func (uc *Backup) emit(e domain.Event) {
	if uc.events != nil {
		uc.events.Emit(e)
	}
}

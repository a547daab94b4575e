package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/semmidev/mediasafe/internal/domain"
)

// uploadItem performs the dedup-check-then-transfer flow for a single item.
// Item-level failures never abort the session: a quota rejection flags the
// session so the loop stops, anything else is reported to diagnostics and
// the item is retried on a later session (it is not added to the ledger).
func (uc *Backup) uploadItem(ctx context.Context, sess *Session, targetFolder, dirID string, item domain.MediaItem) {
	remotePath := path.Join(targetFolder, item.FileName)

	// The dedup check is advisory and fail-open: any error, including "not
	// found", means we proceed to upload. Re-attempting an upload is
	// preferred over silently skipping an item.
	if err := uc.remote.StatByPath(ctx, remotePath); err == nil {
		uc.logger.Infof("[%s] %s already present at %s, skipping transfer", sess.id, item.ID, remotePath)
		uc.recordSuccess(ctx, sess, item)
		return
	}

	watchdog := time.AfterFunc(uc.watchdogCeiling, func() {
		// Observational only: the transfer keeps running, the report exists
		// so stalled uploads show up in diagnostics.
		uc.diagnostics.Report(
			fmt.Sprintf("backup duration exceeded %s", uc.watchdogCeiling),
			map[string]string{"media_id": item.ID, "file_name": item.FileName, "session_id": sess.id},
		)
	})
	defer watchdog.Stop()

	if err := uc.remote.Upload(ctx, dirID, item); err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			uc.logger.Warnf("[%s] Remote quota reached while uploading %s", sess.id, item.ID)
			sess.markQuotaReached()
			uc.emit(domain.Event{Type: domain.EventQuotaReached, SessionID: sess.id})
			return
		}

		uc.logger.Errorf("[%s] Upload failed for %s: %v", sess.id, item.ID, err)
		uc.diagnostics.Report(
			"backup error: "+err.Error(),
			map[string]string{"media_id": item.ID, "file_name": item.FileName, "session_id": sess.id},
		)
		return
	}

	uc.recordSuccess(ctx, sess, item)
}

// recordSuccess appends the item to the ledger and emits UPLOAD_SUCCESS.
// The ledger write happens first so an identifier is only ever announced
// after it is durably recorded.
func (uc *Backup) recordSuccess(ctx context.Context, sess *Session, item domain.MediaItem) {
	if err := uc.ledger.Add(ctx, item.ID); err != nil {
		uc.logger.Errorf("[%s] Failed to record %s in ledger: %v", sess.id, item.ID, err)
		uc.diagnostics.Report(
			"ledger write failed: "+err.Error(),
			map[string]string{"media_id": item.ID, "session_id": sess.id},
		)
		return
	}
	uc.emit(domain.Event{Type: domain.EventUploadSuccess, SessionID: sess.id, MediaID: item.ID})
}

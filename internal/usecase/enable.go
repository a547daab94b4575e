package usecase

import (
	"context"
	"fmt"

	"github.com/semmidev/mediasafe/internal/domain"
)

// SetBackupImages toggles the automatic-backup opt-in. Enabling requests
// media authorization and rolls the setting back when access is denied; the
// background updater is always told the effective status. When the toggle
// lands enabled, an automatic session is started immediately against the
// media source's default folder.
//
// It returns the effective value of the setting after the call.
func (uc *Backup) SetBackupImages(ctx context.Context, updater domain.BackgroundUpdater, enabled bool) (bool, error) {
	if err := uc.settings.SetBackupImages(ctx, enabled); err != nil {
		return false, fmt.Errorf("persist backup opt-in: %w", err)
	}

	if enabled {
		granted := uc.media.IsAuthorized(ctx) || uc.ensureAuthorization(ctx, true)
		if !granted {
			enabled = false
			if err := uc.settings.SetBackupImages(ctx, false); err != nil {
				return false, fmt.Errorf("roll back backup opt-in: %w", err)
			}
		}
	}

	if updater != nil {
		updater.SetEnabled(enabled)
	}

	if enabled {
		sess := uc.NewSession()
		folder := uc.media.DefaultBackupFolderName()
		if err := uc.StartMediaBackup(ctx, sess, folder, domain.ModeAutomatic); err != nil {
			uc.logger.Errorf("Backup after enabling opt-in failed: %v", err)
		}
	}

	return enabled, nil
}

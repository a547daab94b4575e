package app

import (
	"github.com/semmidev/mediasafe/internal/domain"
	"github.com/semmidev/mediasafe/internal/infrastructure/logger"
)

// eventLogger surfaces session lifecycle events in the application log.
// A UI layer would install its own sink here instead.
type eventLogger struct {
	logger *logger.Logger
}

func newEventLogger(log *logger.Logger) *eventLogger {
	return &eventLogger{logger: log}
}

func (e *eventLogger) Emit(ev domain.Event) {
	switch ev.Type {
	case domain.EventCurrentUpload:
		e.logger.Infof("[%s] Uploading %s (%d of %d)",
			ev.SessionID, ev.Item.FileName, ev.Progress.Index+1, ev.Progress.Total)
	case domain.EventUploadSuccess:
		e.logger.Infof("[%s] Uploaded %s", ev.SessionID, ev.MediaID)
	case domain.EventQuotaReached:
		e.logger.Warnf("[%s] Remote storage quota reached", ev.SessionID)
	case domain.EventBackupAborted:
		e.logger.Warnf("[%s] Backup aborted", ev.SessionID)
	default:
		e.logger.Infof("[%s] %s", ev.SessionID, ev.Type)
	}
}

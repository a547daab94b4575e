package domain

type EventType string

const (
	EventBackupStarted   EventType = "BACKUP_STARTED"
	EventCurrentUpload   EventType = "CURRENT_UPLOAD"
	EventUploadSuccess   EventType = "UPLOAD_SUCCESS"
	EventQuotaReached    EventType = "QUOTA_REACHED"
	EventBackupAborted   EventType = "BACKUP_ABORTED"
	EventBackupEnded     EventType = "BACKUP_ENDED"
	EventCancelRequested EventType = "CANCEL_REQUESTED"
)

// Progress is the transient position within a session, for UI consumption.
type Progress struct {
	Index int
	Total int
}

// Event is a lifecycle notification emitted by the orchestrator, in strict
// session order. Item and Progress are set for EventCurrentUpload; MediaID
// is set for EventUploadSuccess.
type Event struct {
	Type      EventType
	SessionID string
	Item      *MediaItem
	Progress  *Progress
	MediaID   string
}

// EventSink receives session events. Emit is called from the single session
// flow, one event fully delivered before the next is produced.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(Event)

func (f EventSinkFunc) Emit(e Event) { f(e) }

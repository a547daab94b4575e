package usecase

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/semmidev/mediasafe/internal/domain"
)

// Session carries the mutable state of one backup invocation: the
// cancellation and quota flags plus transient progress. A fresh Session is
// minted per invocation so concurrent callers (and tests) never share
// flags; only the durable ledger outlives it.
type Session struct {
	id string

	cancelRequested atomic.Bool
	quotaReached    atomic.Bool

	mu       sync.Mutex
	progress domain.Progress
}

// NewSession mints a session for one StartMediaBackup invocation. The
// caller keeps the handle to request cancellation and observe progress.
func (uc *Backup) NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

func (s *Session) ID() string { return s.id }

// RequestCancel asks the session to stop. Cancellation is cooperative: the
// in-flight item always completes before the loop honors the flag.
func (s *Session) RequestCancel() {
	s.cancelRequested.Store(true)
}

func (s *Session) CancelRequested() bool { return s.cancelRequested.Load() }

func (s *Session) markQuotaReached() {
	s.quotaReached.Store(true)
}

// QuotaReached reports whether the remote storage signalled capacity
// exhaustion during this session.
func (s *Session) QuotaReached() bool { return s.quotaReached.Load() }

func (s *Session) setProgress(index, total int) {
	s.mu.Lock()
	s.progress = domain.Progress{Index: index, Total: total}
	s.mu.Unlock()
}

func (s *Session) Progress() domain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// reset clears the per-session flags at the start of each invocation so a
// reused Session value behaves like a fresh one.
func (s *Session) reset() {
	s.cancelRequested.Store(false)
	s.quotaReached.Store(false)
	s.setProgress(0, 0)
}

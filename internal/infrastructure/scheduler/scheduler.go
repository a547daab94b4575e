package scheduler

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler drives periodic automatic backup sessions. It also implements
// the background updater contract: toggling the backup opt-in starts or
// stops the cron loop.
type Scheduler struct {
	cron *cron.Cron

	mu      sync.Mutex
	running bool
}

func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
	}
}

// AddJob registers a job on the cron spec. Jobs own their error reporting:
// a returned error is dropped here and must not be the job's only record of
// the failure.
func (s *Scheduler) AddJob(spec string, job func(context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx := context.Background()
		_ = job(ctx)
	})
	return err
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
}

// SetEnabled implements the background updater contract consumed by the
// backup opt-in flow.
func (s *Scheduler) SetEnabled(enabled bool) {
	if enabled {
		s.Start()
	} else {
		s.Stop()
	}
}

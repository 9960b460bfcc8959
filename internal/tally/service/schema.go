package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/store"
)

// SchemaService applies store migrations in the background, retrying until
// one attempt succeeds. This lets the process start before its database is
// reachable and still end up with the unique username index in place.
type SchemaService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Timeout  time.Duration

	started atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewSchemaService creates the worker. Non-positive interval or timeout
// default to 30s and 5s.
func NewSchemaService(st store.Store, logger *slog.Logger, interval, timeout time.Duration) *SchemaService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &SchemaService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Timeout:  timeout,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the worker. It is non-blocking; call Stop to end it.
func (s *SchemaService) Start() {
	if s.started.CompareAndSwap(false, true) {
		go s.run()
	}
}

// Stop ends the worker and waits for an in-flight attempt to finish.
// Safe to call after the worker already exited, or if it never started.
func (s *SchemaService) Stop() {
	if !s.started.Load() {
		return
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	<-s.doneCh
}

// Done is closed once the worker has exited.
func (s *SchemaService) Done() <-chan struct{} { return s.doneCh }

func (s *SchemaService) run() {
	defer close(s.doneCh)

	if s.apply() {
		return
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if s.apply() {
				return
			}
		case <-s.stopCh:
			return
		}
	}
}

// apply makes one attempt and reports whether the schema is now current.
func (s *SchemaService) apply() bool {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.Logger.Warn("store unreachable, will retry migrations", "error", err, "retry_in", s.Interval)
		return false
	}

	if err := s.Store.ApplyMigrations(); err != nil {
		s.Logger.Error("failed to apply store migrations, will retry", "error", err, "retry_in", s.Interval)
		return false
	}

	s.Logger.Info("store migrations applied")
	return true
}

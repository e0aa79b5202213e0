package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper removes sessions that have been idle too long
type Sweeper interface {
	SweepIdle(ctx context.Context) int
}

// SessionSweeper periodically evicts idle sessions, which also cancels
// their pending timers
type SessionSweeper struct {
	sessions Sweeper
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(sessions Sweeper, interval time.Duration, logger *slog.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep
func (w *SessionSweeper) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info("session sweeper started", "interval", w.interval)

	go w.run(ctx)
	return nil
}

// Stop stops the background sweep
func (w *SessionSweeper) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("session sweeper stopped")
	return nil
}

func (w *SessionSweeper) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce runs a single sweep and returns the number of evicted sessions
func (w *SessionSweeper) RunOnce(ctx context.Context) int {
	start := time.Now()
	n := w.sessions.SweepIdle(ctx)
	if n > 0 {
		w.logger.Info("swept idle sessions", "evicted", n, "duration", time.Since(start))
	} else {
		w.logger.Debug("sweep found no idle sessions")
	}
	return n
}

// IsRunning returns whether the sweeper is currently running
func (w *SessionSweeper) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

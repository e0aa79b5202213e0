package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/atomic"
)

type countingSweeper struct {
	calls atomic.Int64
}

func (s *countingSweeper) SweepIdle(context.Context) int {
	s.calls.Inc()
	return 2
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnce(t *testing.T) {
	s := &countingSweeper{}
	w := NewSessionSweeper(s, time.Hour, discard())

	if n := w.RunOnce(context.Background()); n != 2 {
		t.Errorf("expected 2 evicted, got %d", n)
	}
	if s.calls.Load() != 1 {
		t.Errorf("expected one sweep, got %d", s.calls.Load())
	}
}

func TestStartStop(t *testing.T) {
	s := &countingSweeper{}
	w := NewSessionSweeper(s, 5*time.Millisecond, discard())

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal("second start should be a no-op")
	}
	if !w.IsRunning() {
		t.Fatal("expected running sweeper")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweeper never ran")
		}
		time.Sleep(time.Millisecond)
	}

	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}
	if w.IsRunning() {
		t.Error("expected stopped sweeper")
	}
	if err := w.Stop(); err != nil {
		t.Error("second stop should be a no-op")
	}
}

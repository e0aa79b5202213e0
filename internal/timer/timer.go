// Package timer provides delayed callbacks whose lifetime is tied to a
// screen. Tests drive time through Manual instead of sleeping.
package timer

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Real schedules on the runtime timer
type Real struct{}

// AfterFunc wraps time.AfterFunc
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Group owns the timers scheduled during one screen's lifetime.
// Closing the group stops every pending timer; callbacks that already
// fired but have not yet run see the group closed and do nothing.
type Group struct {
	sched  Scheduler
	mu     sync.Mutex
	timers map[uint64]Timer
	nextID uint64
	closed bool
}

// NewGroup creates a timer group on sched. A nil scheduler uses Real.
func NewGroup(sched Scheduler) *Group {
	if sched == nil {
		sched = Real{}
	}
	return &Group{
		sched:  sched,
		timers: make(map[uint64]Timer),
	}
}

// After schedules f after d and returns a cancel func. A zero delay
// still goes through the scheduler. After on a closed group is a no-op.
func (g *Group) After(d time.Duration, f func()) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return func() {}
	}

	g.nextID++
	id := g.nextID
	g.timers[id] = g.sched.AfterFunc(d, func() {
		g.mu.Lock()
		_, live := g.timers[id]
		delete(g.timers, id)
		closed := g.closed
		g.mu.Unlock()

		if live && !closed {
			f()
		}
	})

	return func() { g.cancel(id) }
}

func (g *Group) cancel(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t, ok := g.timers[id]; ok {
		t.Stop()
		delete(g.timers, id)
	}
}

// Pending returns the number of timers that have not fired
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.timers)
}

// Close stops all pending timers. It is safe to call more than once.
func (g *Group) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	for id, t := range g.timers {
		t.Stop()
		delete(g.timers, id)
	}
}

// Closed reports whether Close was called
func (g *Group) Closed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

// Manual is a Scheduler whose clock only moves on Advance
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	m       *Manual
	at      time.Duration
	seq     uint64
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewManual creates a manual clock at zero
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc registers f to run when the clock passes d from now
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, at: m.now + d, seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward by d, running due callbacks in order.
// Callbacks run without the clock lock held and may schedule new timers,
// which also run if they fall due within the same advance.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		next.stopped = true
		m.now = next.at
		m.mu.Unlock()

		next.f()
	}
}

// nextDue pops the earliest live timer due at or before target
func (m *Manual) nextDue(target time.Duration) *manualTimer {
	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.pending = live

	sort.Slice(m.pending, func(i, j int) bool {
		if m.pending[i].at == m.pending[j].at {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].at < m.pending[j].at
	})

	if len(m.pending) == 0 || m.pending[0].at > target {
		return nil
	}
	t := m.pending[0]
	m.pending = m.pending[1:]
	return t
}

// Pending counts timers that have neither fired nor been stopped
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

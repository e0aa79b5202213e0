// Package prediction implements the select, submit, reveal and reset
// cycle shared by the cricket widget, race prediction and daily trivia.
package prediction

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/timer"
)

// State of a prediction round
type State string

const (
	StateIdle      State = "idle"
	StateSelected  State = "selected"
	StateSubmitted State = "submitted"
	StateRevealed  State = "revealed"
)

const (
	DefaultRevealDelay = 3 * time.Second
	DefaultResetDelay  = 3 * time.Second

	// NoReset keeps the round revealed forever
	NoReset time.Duration = -1
)

var (
	ErrNoSelection   = errors.New("no option selected")
	ErrLocked        = errors.New("prediction locked until reset")
	ErrUnknownOption = errors.New("unknown option")
	ErrClosed        = errors.New("prediction machine closed")
)

// OutcomeSource decides the revealed outcome of a round
type OutcomeSource interface {
	Outcome(options []domain.PredictionChoice) string
}

// OutcomeFunc adapts a function to OutcomeSource
type OutcomeFunc func(options []domain.PredictionChoice) string

func (f OutcomeFunc) Outcome(options []domain.PredictionChoice) string {
	return f(options)
}

// RandomOutcome draws uniformly from the options
func RandomOutcome() OutcomeSource {
	return OutcomeFunc(func(options []domain.PredictionChoice) string {
		if len(options) == 0 {
			return ""
		}
		return options[rand.IntN(len(options))].Value
	})
}

// FixedOutcome always reveals value
func FixedOutcome(value string) OutcomeSource {
	return OutcomeFunc(func([]domain.PredictionChoice) string {
		return value
	})
}

// Config parametrizes a Machine
type Config struct {
	Options     []domain.PredictionChoice
	RevealDelay time.Duration // zero reveals inside Submit
	ResetDelay  time.Duration // NoReset disables reset
	Outcome     OutcomeSource
	Correct     func(selection, outcome string) bool
	Scheduler   timer.Scheduler
}

// Snapshot is a point-in-time copy of the machine
type Snapshot struct {
	State     State  `json:"state"`
	Selection string `json:"selection,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
	Correct   bool   `json:"correct"`
	Round     int    `json:"round"`
}

// Transition is delivered to listeners after the machine lock is released
type Transition struct {
	From     State
	To       State
	Snapshot Snapshot
}

// Machine is a single-choice prediction round
type Machine struct {
	cfg    Config
	timers *timer.Group
	closed atomic.Bool

	mu        sync.Mutex
	state     State
	selection string
	outcome   string
	correct   bool
	round     int
	listeners []func(Transition)
}

// New creates a machine in the idle state
func New(cfg Config) *Machine {
	if cfg.Outcome == nil {
		cfg.Outcome = RandomOutcome()
	}
	if cfg.Correct == nil {
		cfg.Correct = func(selection, outcome string) bool { return selection == outcome }
	}
	return &Machine{
		cfg:    cfg,
		timers: timer.NewGroup(cfg.Scheduler),
		state:  StateIdle,
		round:  1,
	}
}

// OnTransition registers a listener for state changes
func (m *Machine) OnTransition(fn func(Transition)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Options returns the choices of the round
func (m *Machine) Options() []domain.PredictionChoice {
	return m.cfg.Options
}

// Select records a choice. Selecting again while selected replaces it.
func (m *Machine) Select(value string) error {
	if m.closed.Load() {
		return ErrClosed
	}

	m.mu.Lock()
	switch m.state {
	case StateSubmitted, StateRevealed:
		m.mu.Unlock()
		return ErrLocked
	}
	if !m.hasOption(value) {
		m.mu.Unlock()
		return ErrUnknownOption
	}
	from := m.state
	m.selection = value
	m.state = StateSelected
	events := []Transition{m.transitionLocked(from)}
	listeners := m.listeners
	m.mu.Unlock()

	emit(listeners, events)
	return nil
}

// Submit locks in the selection and schedules the reveal
func (m *Machine) Submit() error {
	if m.closed.Load() {
		return ErrClosed
	}

	m.mu.Lock()
	switch m.state {
	case StateSubmitted, StateRevealed:
		m.mu.Unlock()
		return ErrLocked
	}
	if m.selection == "" {
		m.mu.Unlock()
		return ErrNoSelection
	}

	from := m.state
	m.state = StateSubmitted
	events := []Transition{m.transitionLocked(from)}
	if m.cfg.RevealDelay <= 0 {
		events = append(events, m.revealLocked())
	} else {
		m.timers.After(m.cfg.RevealDelay, m.reveal)
	}
	listeners := m.listeners
	m.mu.Unlock()

	emit(listeners, events)
	return nil
}

// Snapshot returns the current state
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Close cancels pending reveal and reset timers
func (m *Machine) Close() {
	m.closed.Store(true)
	m.timers.Close()
}

// Closed reports whether Close was called
func (m *Machine) Closed() bool {
	return m.closed.Load()
}

func (m *Machine) reveal() {
	if m.closed.Load() {
		return
	}
	m.mu.Lock()
	if m.state != StateSubmitted {
		m.mu.Unlock()
		return
	}
	events := []Transition{m.revealLocked()}
	listeners := m.listeners
	m.mu.Unlock()

	emit(listeners, events)
}

func (m *Machine) revealLocked() Transition {
	from := m.state
	m.outcome = m.cfg.Outcome.Outcome(m.cfg.Options)
	m.correct = m.cfg.Correct(m.selection, m.outcome)
	m.state = StateRevealed
	if m.cfg.ResetDelay >= 0 {
		m.timers.After(m.cfg.ResetDelay, m.reset)
	}
	return m.transitionLocked(from)
}

func (m *Machine) reset() {
	if m.closed.Load() {
		return
	}
	m.mu.Lock()
	if m.state != StateRevealed {
		m.mu.Unlock()
		return
	}
	from := m.state
	m.state = StateIdle
	m.selection = ""
	m.outcome = ""
	m.correct = false
	m.round++
	events := []Transition{m.transitionLocked(from)}
	listeners := m.listeners
	m.mu.Unlock()

	emit(listeners, events)
}

func (m *Machine) hasOption(value string) bool {
	for _, o := range m.cfg.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (m *Machine) snapshotLocked() Snapshot {
	return Snapshot{
		State:     m.state,
		Selection: m.selection,
		Outcome:   m.outcome,
		Correct:   m.correct,
		Round:     m.round,
	}
}

func (m *Machine) transitionLocked(from State) Transition {
	return Transition{From: from, To: m.state, Snapshot: m.snapshotLocked()}
}

func emit(listeners []func(Transition), events []Transition) {
	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}

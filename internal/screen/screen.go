// Package screen holds the per-screen state and actions of a session.
//
// A screen is mounted when its path becomes current and closed when the
// session navigates away. Timers scheduled by a screen belong to its
// lifetime and never fire after Close.
package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/prediction"
	"github.com/predict-win/internal/route"
	"github.com/predict-win/internal/source"
	"github.com/predict-win/internal/timer"
)

// Screen is a mounted screen instance
type Screen interface {
	Name() route.Screen
	View() any
	Close()
}

// Result is the outcome of a synchronous action
type Result struct {
	Notice   *domain.Notice
	Redirect string
}

func notice(level domain.NoticeLevel, id string, data map[string]any) Result {
	return Result{Notice: domain.NewNotice(level, id, data)}
}

// Timing holds the simulated delays
type Timing struct {
	Splash       time.Duration
	Reveal       time.Duration
	Reset        time.Duration
	OTPSend      time.Duration
	OTPVerify    time.Duration
	ProfileSetup time.Duration
}

// DefaultTiming matches the prototype delays
func DefaultTiming() Timing {
	return Timing{
		Splash:       2500 * time.Millisecond,
		Reveal:       prediction.DefaultRevealDelay,
		Reset:        prediction.DefaultResetDelay,
		OTPSend:      1500 * time.Millisecond,
		OTPVerify:    1500 * time.Millisecond,
		ProfileSetup: 1500 * time.Millisecond,
	}
}

// Hooks connect a screen to its session. They may be called from timer
// goroutines and are never called with the screen lock held.
type Hooks struct {
	// Navigate moves the session if this screen is still current
	Navigate func(path string)
	// Notify queues a notice for the session
	Notify func(n *domain.Notice)
	// Update pushes a state change of the screen
	Update func(kind string, data any)
	// Publish records an activity event
	Publish func(eventType string, payload map[string]any)
}

func (h Hooks) navigate(path string) {
	if h.Navigate != nil {
		h.Navigate(path)
	}
}

func (h Hooks) notify(n *domain.Notice) {
	if h.Notify != nil {
		h.Notify(n)
	}
}

func (h Hooks) update(kind string, data any) {
	if h.Update != nil {
		h.Update(kind, data)
	}
}

func (h Hooks) publish(eventType string, payload map[string]any) {
	if h.Publish != nil {
		h.Publish(eventType, payload)
	}
}

// Env is everything a screen needs to mount
type Env struct {
	Sources          source.Sources
	Timing           Timing
	Scheduler        timer.Scheduler
	Outcome          prediction.OutcomeSource
	LeaderboardLimit int
	Hooks            Hooks
	Logger           *slog.Logger
}

// Mount creates the screen for a resolved route
func Mount(ctx context.Context, m route.Match, env Env) (Screen, error) {
	if env.Logger == nil {
		env.Logger = slog.Default()
	}

	var (
		s   Screen
		err error
	)
	switch m.Route.Screen {
	case route.ScreenSplash:
		s = NewSplash(env)
	case route.ScreenOnboarding:
		s = NewOnboarding(env)
	case route.ScreenLogin:
		s = NewLogin(env)
	case route.ScreenProfileSetup:
		s = NewProfileSetup(env)
	case route.ScreenHome:
		s, err = NewHome(ctx, env)
	case route.ScreenProfile:
		s, err = NewProfile(ctx, env)
	case route.ScreenLeaderboard:
		s, err = NewLeaderboard(ctx, env)
	case route.ScreenRewards:
		s, err = NewRewards(ctx, env)
	case route.ScreenRacing:
		s, err = NewRacing(ctx, env)
	case route.ScreenRacePrediction:
		s, err = NewRacePrediction(ctx, env, m.Param("id"))
	case route.ScreenNotifications:
		s, err = NewNotifications(ctx, env)
	case route.ScreenSettings:
		s = NewSettings(env)
	case route.ScreenStats:
		s, err = NewStats(ctx, env)
	case route.ScreenHelp:
		s = NewHelp(env)
	case route.ScreenMore:
		s = NewMore(env)
	default:
		s = NewNotFound(m.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("mounting %s: %w", m.Route.Screen, err)
	}
	return s, nil
}

// base carries the lock, lifetime and timers shared by every screen
type base struct {
	mu     sync.Mutex
	closed bool
	timers *timer.Group
	env    Env
}

func (b *base) init(env Env) {
	b.env = env
	b.timers = timer.NewGroup(env.Scheduler)
}

// Close stops the screen's timers
func (b *base) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.timers.Close()
}

// after runs f under the screen lock once d has passed, unless the screen
// was closed meanwhile. The func returned by f runs after the lock is
// released and is where hooks get called.
func (b *base) after(d time.Duration, f func() func()) {
	b.timers.After(d, func() {
		b.mu.Lock()
		if b.closed {
			b.mu.Unlock()
			return
		}
		then := f()
		b.mu.Unlock()
		if then != nil {
			then()
		}
	})
}

// predictionError maps machine errors onto user-facing validation errors
func predictionError(err error, noSelection *domain.ValidationError) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, prediction.ErrNoSelection):
		return noSelection
	case errors.Is(err, prediction.ErrLocked):
		return domain.ErrPredictionLocked
	case errors.Is(err, prediction.ErrUnknownOption):
		return domain.ErrUnknownOption
	case errors.Is(err, prediction.ErrClosed):
		return domain.ErrScreenInactive
	default:
		return err
	}
}

// PredictionView is the rendered state of a prediction widget
type PredictionView struct {
	Options  []domain.PredictionChoice `json:"options"`
	Snapshot prediction.Snapshot       `json:"snapshot"`
}

func predictionView(m *prediction.Machine) *PredictionView {
	if m == nil {
		return nil
	}
	return &PredictionView{Options: m.Options(), Snapshot: m.Snapshot()}
}

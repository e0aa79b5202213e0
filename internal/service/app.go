package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/locale"
	"github.com/predict-win/internal/prediction"
	"github.com/predict-win/internal/route"
	"github.com/predict-win/internal/screen"
	"github.com/predict-win/internal/source"
	"github.com/predict-win/internal/timer"
)

const navigateTimeout = 5 * time.Second

// Options tune an AppService
type Options struct {
	Timing              screen.Timing
	IdleTTL             time.Duration
	LeaderboardLimit    int
	LeaderboardMaxLimit int
	Scheduler           timer.Scheduler
	Outcome             prediction.OutcomeSource
	Pusher              Pusher
	Publisher           Publisher
	Feed                NotificationSink
	Now                 func() time.Time
}

// AppService owns the UI sessions and routes intents to their screens
type AppService struct {
	table      *route.Table
	sources    source.Sources
	translator *locale.Translator
	opts       Options
	logger     *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	created atomic.Int64
	evicted atomic.Int64
}

// NewAppService creates a new app service
func NewAppService(
	table *route.Table,
	sources source.Sources,
	translator *locale.Translator,
	opts Options,
	logger *slog.Logger,
) *AppService {
	if opts.Scheduler == nil {
		opts.Scheduler = timer.Real{}
	}
	if opts.Pusher == nil {
		opts.Pusher = nopPusher{}
	}
	if opts.Publisher == nil {
		opts.Publisher = nopPublisher{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.LeaderboardLimit <= 0 {
		opts.LeaderboardLimit = 10
	}
	if opts.LeaderboardMaxLimit < opts.LeaderboardLimit {
		opts.LeaderboardMaxLimit = opts.LeaderboardLimit
	}
	return &AppService{
		table:      table,
		sources:    sources,
		translator: translator,
		opts:       opts,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
}

// CreateSession starts a session on the splash screen. lang is an explicit
// language choice and acceptLanguage the request header; either may be empty.
func (s *AppService) CreateSession(ctx context.Context, lang, acceptLanguage string) (*SessionView, error) {
	id := uuid.New().String()
	sess := newSession(
		id,
		s.translator.Negotiate(lang, acceptLanguage),
		screen.NewTrivia(s.sources.Content.Trivia(), s.opts.Scheduler),
		s.opts.Now(),
	)

	sess.mu.Lock()
	err := s.mountLocked(ctx, sess, route.PathSplash)
	sess.mu.Unlock()
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	s.created.Inc()

	s.logger.Info("session created", "session_id", id, "language", sess.lang)
	s.publish(sess, route.ScreenSplash, domain.EventSessionCreated, nil)
	return s.render(sess, nil), nil
}

// View renders the session, draining its queued notices
func (s *AppService) View(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.render(sess, nil), nil
}

// DeleteSession ends a session and cancels its timers
func (s *AppService) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.close()
	s.logger.Info("session deleted", "session_id", sessionID)
	return nil
}

// Navigate mounts the screen for path, closing the current one
func (s *AppService) Navigate(ctx context.Context, sessionID, path string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	err = s.mountLocked(ctx, sess, path)
	sess.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.render(sess, nil), nil
}

// ToggleMenu opens or closes the overflow menu
func (s *AppService) ToggleMenu(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withMenu(sessionID, func(m *route.Menu) { m.Toggle() })
}

// DismissMenu closes the overflow menu
func (s *AppService) DismissMenu(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.withMenu(sessionID, func(m *route.Menu) { m.Dismiss() })
}

// ChooseMenu closes the overflow menu and navigates to the chosen item
func (s *AppService) ChooseMenu(ctx context.Context, sessionID, path string) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	target, err := sess.menu.Choose(path)
	if err == nil {
		err = s.mountLocked(ctx, sess, target)
	}
	sess.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("choosing %q: %w", path, err)
	}
	return s.render(sess, nil), nil
}

func (s *AppService) withMenu(sessionID string, fn func(m *route.Menu)) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	fn(&sess.menu)
	sess.mu.Unlock()
	return s.render(sess, nil), nil
}

// TriviaAct runs an action on the session's trivia dialog
func (s *AppService) TriviaAct(ctx context.Context, sessionID string, fn func(t *screen.Trivia) (screen.Result, error)) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	_, gen := sess.current()
	res, err := fn(sess.trivia)
	return s.finish(ctx, sess, gen, res, err)
}

// Act runs fn on the session's current screen when it is a T
func Act[T screen.Screen](ctx context.Context, s *AppService, sessionID string, fn func(T) (screen.Result, error)) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	cur, gen := sess.current()
	target, ok := cur.(T)
	if !ok {
		name := route.Screen("none")
		if cur != nil {
			name = cur.Name()
		}
		return nil, fmt.Errorf("%w: current screen is %s", domain.ErrScreenInactive, name)
	}

	res, err := fn(target)
	return s.finish(ctx, sess, gen, res, err)
}

// finish turns an action outcome into a view. Validation failures become
// error notices rather than errors.
func (s *AppService) finish(ctx context.Context, sess *Session, gen uint64, res screen.Result, err error) (*SessionView, error) {
	var immediate []*domain.Notice
	if err != nil {
		v, ok := domain.AsValidationError(err)
		if !ok {
			return nil, err
		}
		immediate = append(immediate, domain.NewNotice(domain.NoticeError, v.MessageID, v.Data))
	} else {
		if res.Notice != nil {
			immediate = append(immediate, res.Notice)
		}
		if res.Redirect != "" {
			if err := s.navigateIfCurrent(ctx, sess, gen, res.Redirect); err != nil {
				return nil, err
			}
		}
	}
	return s.render(sess, immediate), nil
}

// navigateIfCurrent navigates only while generation gen is still mounted
func (s *AppService) navigateIfCurrent(ctx context.Context, sess *Session, gen uint64, path string) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed || sess.gen != gen {
		s.logger.Debug("stale navigation ignored",
			"session_id", sess.id, "path", path, "generation", gen, "current", sess.gen)
		return nil
	}
	return s.mountLocked(ctx, sess, path)
}

// mountLocked replaces the current screen. The caller holds sess.mu.
func (s *AppService) mountLocked(ctx context.Context, sess *Session, path string) error {
	if sess.closed {
		return domain.ErrSessionNotFound
	}

	m := s.table.Resolve(path)
	gen := sess.gen + 1
	next, err := screen.Mount(ctx, m, s.env(sess, gen, m))
	if err != nil {
		s.logger.Error("failed to mount screen",
			"session_id", sess.id, "path", m.Path, "screen", m.Route.Screen, "error", err)
		return err
	}

	prev := sess.screen
	sess.screen = next
	sess.match = m
	sess.gen = gen
	sess.menu.Dismiss()
	if prev != nil {
		prev.Close()
	}

	s.logger.Debug("screen mounted",
		"session_id", sess.id, "path", m.Path, "screen", m.Route.Screen, "generation", gen)
	s.opts.Pusher.SendToSession(sess.id, MessageScreenChanged, map[string]any{
		"path": m.Path, "screen": m.Route.Screen, "generation": gen,
	})
	return nil
}

// env binds a screen's hooks to its session and generation
func (s *AppService) env(sess *Session, gen uint64, m route.Match) screen.Env {
	name := m.Route.Screen
	return screen.Env{
		Sources:          s.sources,
		Timing:           s.opts.Timing,
		Scheduler:        s.opts.Scheduler,
		Outcome:          s.opts.Outcome,
		LeaderboardLimit: s.opts.LeaderboardLimit,
		Logger:           s.logger.With("session_id", sess.id, "screen", name),
		Hooks: screen.Hooks{
			Navigate: func(path string) {
				ctx, cancel := context.WithTimeout(context.Background(), navigateTimeout)
				defer cancel()
				if err := s.navigateIfCurrent(ctx, sess, gen, path); err != nil {
					s.logger.Warn("timed navigation failed", "session_id", sess.id, "path", path, "error", err)
				}
			},
			Notify: func(n *domain.Notice) {
				sess.queueNotice(n)
				pushed := *n
				s.translator.Localize(sess.lang, &pushed)
				s.opts.Pusher.SendToSession(sess.id, MessageNotice, pushed)
			},
			Update: func(kind string, data any) {
				s.opts.Pusher.SendToSession(sess.id, kind, data)
			},
			Publish: func(eventType string, payload map[string]any) {
				s.publish(sess, name, eventType, payload)
			},
		},
	}
}

func (s *AppService) publish(sess *Session, name route.Screen, eventType string, payload map[string]any) {
	event := domain.ActivityEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		SessionID: sess.id,
		Screen:    string(name),
		Payload:   payload,
		Timestamp: s.opts.Now().UTC(),
	}
	if err := s.opts.Publisher.Publish(context.Background(), event); err != nil {
		s.logger.Warn("failed to publish activity event",
			"session_id", sess.id, "type", eventType, "error", err)
	}
}

// render builds the session view. Queued notices are drained and shown
// before the immediate ones.
func (s *AppService) render(sess *Session, immediate []*domain.Notice) *SessionView {
	sess.mu.Lock()
	m := sess.match
	scr := sess.screen
	gen := sess.gen
	menuOpen := sess.menu.Open()
	sess.mu.Unlock()

	v := &SessionView{
		SessionID:  sess.id,
		Language:   sess.lang,
		Path:       m.Path,
		Screen:     m.Route.Screen,
		Generation: gen,
		ShowNav:    m.Route.ShowNav,
		Notices:    []domain.Notice{},
	}
	if scr != nil {
		v.View = scr.View()
	}
	if m.Route.ShowNav {
		nav := route.RenderNav(m.Path, menuOpen)
		v.Nav = &nav
	}
	if tv := sess.trivia.View(); tv.Open {
		v.Trivia = &tv
	}

	for _, n := range append(sess.drainNotices(), immediate...) {
		out := *n
		s.translator.Localize(sess.lang, &out)
		v.Notices = append(v.Notices, out)
	}
	return v
}

func (s *AppService) session(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	sess.touch(s.opts.Now())
	return sess, nil
}

// SweepIdle closes sessions idle for longer than the configured TTL and
// returns how many were removed
func (s *AppService) SweepIdle(ctx context.Context) int {
	now := s.opts.Now()

	s.mu.Lock()
	var stale []*Session
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.opts.IdleTTL {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.close()
		s.logger.Info("session expired", "session_id", sess.id)
	}
	s.evicted.Add(int64(len(stale)))
	return len(stale)
}

// DeliverNotification adds a live notification to the feed, refreshes any
// open notifications screen and pushes it to every session
func (s *AppService) DeliverNotification(n domain.Notification) {
	if s.opts.Feed != nil {
		s.opts.Feed.Push(n)
	}

	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()

	for _, sess := range sessions {
		if open, ok := sessionScreen[*screen.Notifications](sess); ok {
			open.Deliver(n)
		}
		s.opts.Pusher.SendToSession(sess.id, MessageNotification, n)
	}
}

func sessionScreen[T screen.Screen](sess *Session) (T, bool) {
	cur, _ := sess.current()
	t, ok := cur.(T)
	return t, ok
}

// Close ends every session
func (s *AppService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}

// Stats summarizes session activity
type Stats struct {
	Active  int   `json:"active"`
	Created int64 `json:"created"`
	Evicted int64 `json:"evicted"`
}

// Stats returns session counters
func (s *AppService) Stats() Stats {
	s.mu.RLock()
	active := len(s.sessions)
	s.mu.RUnlock()
	return Stats{Active: active, Created: s.created.Load(), Evicted: s.evicted.Load()}
}

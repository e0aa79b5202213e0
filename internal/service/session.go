package service

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
	"github.com/predict-win/internal/screen"
)

const maxQueuedNotices = 20

// Session is one visitor's UI state
type Session struct {
	id   string
	lang string

	// mu guards the mounted screen, its generation and the menu
	mu     sync.Mutex
	match  route.Match
	screen screen.Screen
	gen    uint64
	menu   route.Menu
	closed bool

	trivia *screen.Trivia

	// noticeMu is never held while taking another lock
	noticeMu sync.Mutex
	notices  []*domain.Notice

	lastSeen atomic.Int64
}

func newSession(id, lang string, trivia *screen.Trivia, now time.Time) *Session {
	s := &Session{id: id, lang: lang, trivia: trivia}
	s.touch(now)
	return s
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// current returns the mounted screen and its generation
func (s *Session) current() (screen.Screen, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen, s.gen
}

func (s *Session) queueNotice(n *domain.Notice) {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()
	s.notices = append(s.notices, n)
	if len(s.notices) > maxQueuedNotices {
		s.notices = s.notices[len(s.notices)-maxQueuedNotices:]
	}
}

func (s *Session) drainNotices() []*domain.Notice {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

// close unmounts the screen and releases the trivia round
func (s *Session) close() {
	s.mu.Lock()
	scr := s.screen
	s.screen = nil
	s.closed = true
	s.mu.Unlock()

	if scr != nil {
		scr.Close()
	}
	s.trivia.Close()
}

// SessionView is the rendered state of a session
type SessionView struct {
	SessionID  string             `json:"session_id"`
	Language   string             `json:"language"`
	Path       string             `json:"path"`
	Screen     route.Screen       `json:"screen"`
	Generation uint64             `json:"generation"`
	ShowNav    bool               `json:"show_nav"`
	Nav        *route.NavView     `json:"nav,omitempty"`
	View       any                `json:"view"`
	Trivia     *screen.TriviaView `json:"trivia,omitempty"`
	Notices    []domain.Notice    `json:"notices"`
}

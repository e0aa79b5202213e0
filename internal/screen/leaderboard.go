package screen

import (
	"context"
	"fmt"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/leaderboard"
	"github.com/predict-win/internal/route"
)

// Leaderboard shows one scope of the rankings at a time
type Leaderboard struct {
	base
	scope domain.Scope
	board leaderboard.Board
}

// LeaderboardView is the rendered leaderboard screen
type LeaderboardView struct {
	Scope  domain.Scope   `json:"scope"`
	Scopes []domain.Scope `json:"scopes"`
	leaderboard.Board
}

// NewLeaderboard opens the board on the today scope
func NewLeaderboard(ctx context.Context, env Env) (*Leaderboard, error) {
	l := &Leaderboard{}
	l.init(env)
	if err := l.load(ctx, domain.ScopeToday); err != nil {
		return nil, err
	}
	return l, nil
}

// Name returns the screen id
func (l *Leaderboard) Name() route.Screen { return route.ScreenLeaderboard }

// View implements Screen
func (l *Leaderboard) View() any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LeaderboardView{Scope: l.scope, Scopes: domain.Scopes, Board: l.board}
}

// SetScope switches tabs and reloads the rankings
func (l *Leaderboard) SetScope(ctx context.Context, scope string) (Result, error) {
	sc, err := domain.ParseScope(scope)
	if err != nil {
		return Result{}, domain.ErrUnknownTab
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return Result{}, domain.ErrScreenInactive
	}
	return Result{}, l.load(ctx, sc)
}

func (l *Leaderboard) load(ctx context.Context, scope domain.Scope) error {
	entries, self, err := l.env.Sources.Leaderboards.Leaderboard(ctx, scope, l.env.LeaderboardLimit)
	if err != nil {
		return fmt.Errorf("loading %s leaderboard: %w", scope, err)
	}
	l.scope = scope
	l.board = leaderboard.Render(entries, self, leaderboard.ShowsPodium(scope))
	return nil
}

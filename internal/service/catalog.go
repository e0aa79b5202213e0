package service

import (
	"context"
	"fmt"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/leaderboard"
	"github.com/predict-win/internal/route"
)

// Routes returns the route table
func (s *AppService) Routes() []route.Route {
	return s.table.Routes()
}

// Nav renders the navigation bar for path with the menu closed
func (s *AppService) Nav(path string) (route.NavView, bool) {
	m := s.table.Resolve(path)
	return route.RenderNav(m.Path, false), m.Route.ShowNav
}

// Matches returns the home match cards
func (s *AppService) Matches(ctx context.Context) ([]domain.MatchSummary, error) {
	return s.sources.Matches.Matches(ctx)
}

// Races returns the race list
func (s *AppService) Races(ctx context.Context) ([]domain.Race, error) {
	return s.sources.Matches.Races(ctx)
}

// RaceDetail is a race with its field
type RaceDetail struct {
	Race   domain.Race    `json:"race"`
	Horses []domain.Horse `json:"horses"`
}

// Race returns one race and its horses
func (s *AppService) Race(ctx context.Context, id string) (*RaceDetail, error) {
	race, err := s.sources.Matches.Race(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting race %s: %w", id, err)
	}
	horses, err := s.sources.Matches.Horses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting horses of %s: %w", id, err)
	}
	return &RaceDetail{Race: race, Horses: horses}, nil
}

// LeaderboardResponse is a rendered scope
type LeaderboardResponse struct {
	Scope domain.Scope `json:"scope"`
	leaderboard.Board
}

// Leaderboard renders one scope. limit is clamped to the configured range.
func (s *AppService) Leaderboard(ctx context.Context, scope string, limit int) (*LeaderboardResponse, error) {
	sc, err := domain.ParseScope(scope)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.opts.LeaderboardLimit
	}
	limit = min(limit, s.opts.LeaderboardMaxLimit)

	entries, self, err := s.sources.Leaderboards.Leaderboard(ctx, sc, limit)
	if err != nil {
		return nil, fmt.Errorf("getting %s leaderboard: %w", sc, err)
	}
	return &LeaderboardResponse{
		Scope: sc,
		Board: leaderboard.Render(entries, self, leaderboard.ShowsPodium(sc)),
	}, nil
}

// Rewards returns the reward catalog
func (s *AppService) Rewards(ctx context.Context) (domain.RewardCatalog, error) {
	return s.sources.Rewards.Rewards(ctx)
}

// Notifications returns the notification list
func (s *AppService) Notifications(ctx context.Context) ([]domain.Notification, error) {
	return s.sources.Notifications.Notifications(ctx)
}

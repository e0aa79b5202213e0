// Package source defines the data capabilities screens read from.
package source

import (
	"context"

	"github.com/predict-win/internal/domain"
)

// MatchSource serves the home cards and race catalog
type MatchSource interface {
	Matches(ctx context.Context) ([]domain.MatchSummary, error)
	Races(ctx context.Context) ([]domain.Race, error)
	Race(ctx context.Context, id string) (domain.Race, error)
	Horses(ctx context.Context, raceID string) ([]domain.Horse, error)
}

// LeaderboardSource serves ranked entries for a scope and the viewing
// user's own entry
type LeaderboardSource interface {
	Leaderboard(ctx context.Context, scope domain.Scope, limit int) ([]domain.LeaderboardEntry, domain.LeaderboardEntry, error)
}

// RewardSource serves the reward catalog
type RewardSource interface {
	Rewards(ctx context.Context) (domain.RewardCatalog, error)
}

// NotificationSource serves the notification list
type NotificationSource interface {
	Notifications(ctx context.Context) ([]domain.Notification, error)
}

// ProfileSource serves the viewing user's read-only data
type ProfileSource interface {
	CurrentUser(ctx context.Context) (domain.UserProfile, error)
	History(ctx context.Context) ([]domain.HistoryItem, error)
	Badges(ctx context.Context) ([]domain.Badge, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// ContentSource serves static copy
type ContentSource interface {
	Slides() []domain.Slide
	FAQ() []domain.FAQItem
	MoreMenu() []domain.MenuItem
	BallOptions() []domain.PredictionChoice
	Trivia() domain.TriviaQuestion
}

// Sources bundles every capability
type Sources struct {
	Matches       MatchSource
	Leaderboards  LeaderboardSource
	Rewards       RewardSource
	Notifications NotificationSource
	Profiles      ProfileSource
	Content       ContentSource
}

package source

import (
	"context"
	"errors"
	"log/slog"

	"github.com/predict-win/internal/domain"
)

// WithMatchFallback serves from primary and falls back on error or on an
// empty match or race list. Not-found errors are returned as is, except for
// the default race, which is always served along with its horses.
func WithMatchFallback(primary, backup MatchSource, logger *slog.Logger) MatchSource {
	return &fallbackMatches{primary: primary, backup: backup, logger: logger}
}

type fallbackMatches struct {
	primary, backup MatchSource
	logger          *slog.Logger
}

func (f *fallbackMatches) Matches(ctx context.Context) ([]domain.MatchSummary, error) {
	out, err := f.primary.Matches(ctx)
	if err != nil || len(out) == 0 {
		warn(f.logger, "matches", orEmpty(err))
		return f.backup.Matches(ctx)
	}
	return out, nil
}

func (f *fallbackMatches) Races(ctx context.Context) ([]domain.Race, error) {
	out, err := f.primary.Races(ctx)
	if err != nil || len(out) == 0 {
		warn(f.logger, "races", orEmpty(err))
		return f.backup.Races(ctx)
	}
	return out, nil
}

func (f *fallbackMatches) Race(ctx context.Context, id string) (domain.Race, error) {
	out, err := f.primary.Race(ctx, id)
	if f.useBackup(id, err) {
		warn(f.logger, "race", err, "race_id", id)
		return f.backup.Race(ctx, id)
	}
	return out, err
}

func (f *fallbackMatches) Horses(ctx context.Context, raceID string) ([]domain.Horse, error) {
	out, err := f.primary.Horses(ctx, raceID)
	if err == nil && (len(out) > 0 || raceID != domain.DefaultRaceID) {
		return out, nil
	}
	if err != nil && !f.useBackup(raceID, err) {
		return out, err
	}
	warn(f.logger, "horses", orEmpty(err), "race_id", raceID)
	return f.backup.Horses(ctx, raceID)
}

// useBackup reports whether a race lookup error should be retried on the
// backup. Unknown races stay not-found unless they are the default race.
func (f *fallbackMatches) useBackup(raceID string, err error) bool {
	if err == nil {
		return false
	}
	if domain.IsNotFoundError(err) {
		return raceID == domain.DefaultRaceID
	}
	return true
}

// WithLeaderboardFallback serves from primary and falls back on error
func WithLeaderboardFallback(primary, backup LeaderboardSource, logger *slog.Logger) LeaderboardSource {
	return &fallbackLeaderboard{primary: primary, backup: backup, logger: logger}
}

type fallbackLeaderboard struct {
	primary, backup LeaderboardSource
	logger          *slog.Logger
}

func (f *fallbackLeaderboard) Leaderboard(ctx context.Context, scope domain.Scope, limit int) ([]domain.LeaderboardEntry, domain.LeaderboardEntry, error) {
	entries, self, err := f.primary.Leaderboard(ctx, scope, limit)
	if err != nil {
		warn(f.logger, "leaderboard", err, "scope", scope)
		return f.backup.Leaderboard(ctx, scope, limit)
	}
	return entries, self, nil
}

// WithRewardFallback serves from primary and falls back on error
func WithRewardFallback(primary, backup RewardSource, logger *slog.Logger) RewardSource {
	return &fallbackRewards{primary: primary, backup: backup, logger: logger}
}

type fallbackRewards struct {
	primary, backup RewardSource
	logger          *slog.Logger
}

func (f *fallbackRewards) Rewards(ctx context.Context) (domain.RewardCatalog, error) {
	out, err := f.primary.Rewards(ctx)
	if err != nil {
		warn(f.logger, "rewards", err)
		return f.backup.Rewards(ctx)
	}
	return out, nil
}

// WithNotificationFallback serves from primary and falls back on error
func WithNotificationFallback(primary, backup NotificationSource, logger *slog.Logger) NotificationSource {
	return &fallbackNotifications{primary: primary, backup: backup, logger: logger}
}

type fallbackNotifications struct {
	primary, backup NotificationSource
	logger          *slog.Logger
}

func (f *fallbackNotifications) Notifications(ctx context.Context) ([]domain.Notification, error) {
	out, err := f.primary.Notifications(ctx)
	if err != nil {
		warn(f.logger, "notifications", err)
		return f.backup.Notifications(ctx)
	}
	return out, nil
}

var errEmpty = errors.New("empty result")

func orEmpty(err error) error {
	if err == nil {
		return errEmpty
	}
	return err
}

func warn(logger *slog.Logger, what string, err error, args ...any) {
	if errors.Is(err, context.Canceled) {
		return
	}
	logger.Warn("data source failed, using mock catalog",
		append([]any{"source", what, "error", err}, args...)...)
}

// Package mock serves the literal catalog every screen renders from.
package mock

import (
	"context"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/source"
)

// Catalog implements every source capability from in-memory literals.
// Each call returns fresh copies, so callers may mutate the results.
type Catalog struct{}

var (
	_ source.MatchSource        = Catalog{}
	_ source.LeaderboardSource  = Catalog{}
	_ source.RewardSource       = Catalog{}
	_ source.NotificationSource = Catalog{}
	_ source.ProfileSource      = Catalog{}
	_ source.ContentSource      = Catalog{}
)

// New returns the mock catalog
func New() Catalog {
	return Catalog{}
}

// Sources wires the catalog into every capability
func Sources() source.Sources {
	c := New()
	return source.Sources{
		Matches:       c,
		Leaderboards:  c,
		Rewards:       c,
		Notifications: c,
		Profiles:      c,
		Content:       c,
	}
}

func (Catalog) Matches(context.Context) ([]domain.MatchSummary, error) {
	out := make([]domain.MatchSummary, len(matches))
	for i, m := range matches {
		if m.Teams != nil {
			t := *m.Teams
			m.Teams = &t
		}
		if m.Race != nil {
			r := *m.Race
			m.Race = &r
		}
		out[i] = m
	}
	return out, nil
}

func (Catalog) Races(context.Context) ([]domain.Race, error) {
	return clone(races), nil
}

func (Catalog) Race(_ context.Context, id string) (domain.Race, error) {
	for _, r := range races {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Race{}, domain.ErrRaceNotFound
}

// Horses returns the field. Every mock race runs the same horses.
func (c Catalog) Horses(ctx context.Context, raceID string) ([]domain.Horse, error) {
	if _, err := c.Race(ctx, raceID); err != nil {
		return nil, err
	}
	return clone(horses), nil
}

// Leaderboard returns the scope's entries. Weekly shares the global data.
func (Catalog) Leaderboard(_ context.Context, scope domain.Scope, limit int) ([]domain.LeaderboardEntry, domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	var self domain.LeaderboardEntry
	switch scope {
	case domain.ScopeToday:
		entries, self = todayBoard, todaySelf
	case domain.ScopeWeekly, domain.ScopeGlobal:
		entries, self = globalBoard, globalSelf
	default:
		return nil, domain.LeaderboardEntry{}, domain.ErrUnknownScope
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return clone(entries), self, nil
}

func (Catalog) Rewards(context.Context) (domain.RewardCatalog, error) {
	return Rewards(), nil
}

func (Catalog) Notifications(context.Context) ([]domain.Notification, error) {
	return clone(notifications), nil
}

func (Catalog) CurrentUser(context.Context) (domain.UserProfile, error) {
	return user, nil
}

func (Catalog) History(context.Context) ([]domain.HistoryItem, error) {
	return clone(history), nil
}

func (Catalog) Badges(context.Context) ([]domain.Badge, error) {
	return clone(badges), nil
}

func (Catalog) Stats(context.Context) (domain.Stats, error) {
	s := stats
	s.Weekly = clone(stats.Weekly)
	s.Monthly = clone(stats.Monthly)
	s.Sports = clone(stats.Sports)
	s.Predictions = clone(stats.Predictions)
	return s, nil
}

func (Catalog) Slides() []domain.Slide { return clone(slides) }

func (Catalog) FAQ() []domain.FAQItem { return clone(faq) }

func (Catalog) MoreMenu() []domain.MenuItem { return clone(moreMenu) }

func (Catalog) BallOptions() []domain.PredictionChoice { return clone(ballOptions) }

func (Catalog) Trivia() domain.TriviaQuestion {
	q := trivia
	q.Options = clone(trivia.Options)
	return q
}

// Rewards returns a copy of the reward catalog
func Rewards() domain.RewardCatalog {
	return domain.RewardCatalog{
		Milestones: clone(rewards.Milestones),
		Claimables: clone(rewards.Claimables),
		History:    clone(rewards.History),
	}
}

// Matches, races, horses and boards for seeding external stores

func AllMatches() []domain.MatchSummary {
	out, _ := Catalog{}.Matches(context.Background())
	return out
}

func AllRaces() []domain.Race { return clone(races) }

func AllHorses() []domain.Horse { return clone(horses) }

func AllNotifications() []domain.Notification { return clone(notifications) }

// Board returns the entries and self row of a scope
func Board(scope domain.Scope) ([]domain.LeaderboardEntry, domain.LeaderboardEntry) {
	entries, self, _ := Catalog{}.Leaderboard(context.Background(), scope, 0)
	return entries, self
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

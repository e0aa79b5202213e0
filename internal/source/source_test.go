package source_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/mock"
	"github.com/predict-win/internal/source"
)

var errDown = errors.New("connection refused")

type brokenStore struct{}

func (brokenStore) Matches(context.Context) ([]domain.MatchSummary, error) { return nil, errDown }
func (brokenStore) Races(context.Context) ([]domain.Race, error)           { return nil, errDown }
func (brokenStore) Race(context.Context, string) (domain.Race, error) {
	return domain.Race{}, errDown
}
func (brokenStore) Horses(context.Context, string) ([]domain.Horse, error) { return nil, errDown }
func (brokenStore) Leaderboard(context.Context, domain.Scope, int) ([]domain.LeaderboardEntry, domain.LeaderboardEntry, error) {
	return nil, domain.LeaderboardEntry{}, errDown
}
func (brokenStore) Rewards(context.Context) (domain.RewardCatalog, error) {
	return domain.RewardCatalog{}, errDown
}
func (brokenStore) Notifications(context.Context) ([]domain.Notification, error) {
	return nil, errDown
}

type missingRaceStore struct{ brokenStore }

func (missingRaceStore) Race(context.Context, string) (domain.Race, error) {
	return domain.Race{}, domain.ErrRaceNotFound
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFallbackOnFailure(t *testing.T) {
	ctx := context.Background()
	backup := mock.New()

	matches := source.WithMatchFallback(brokenStore{}, backup, discard())
	ms, err := matches.Matches(ctx)
	if err != nil || len(ms) != 4 {
		t.Fatalf("matches = %d, %v", len(ms), err)
	}
	r, err := matches.Race(ctx, "race4")
	if err != nil || r.Name != "Grand National" {
		t.Fatalf("race = %+v, %v", r, err)
	}

	boards := source.WithLeaderboardFallback(brokenStore{}, backup, discard())
	entries, self, err := boards.Leaderboard(ctx, domain.ScopeGlobal, 10)
	if err != nil || len(entries) != 5 || self.Rank != 24 {
		t.Fatalf("leaderboard = %d, %+v, %v", len(entries), self, err)
	}

	rewards := source.WithRewardFallback(brokenStore{}, backup, discard())
	if cat, err := rewards.Rewards(ctx); err != nil || len(cat.Claimables) != 3 {
		t.Fatalf("rewards = %+v, %v", cat, err)
	}

	ns := source.WithNotificationFallback(brokenStore{}, backup, discard())
	if list, err := ns.Notifications(ctx); err != nil || len(list) != 5 {
		t.Fatalf("notifications = %d, %v", len(list), err)
	}
}

func TestFallbackKeepsNotFound(t *testing.T) {
	matches := source.WithMatchFallback(missingRaceStore{}, mock.New(), discard())
	if _, err := matches.Race(context.Background(), "race4"); !errors.Is(err, domain.ErrRaceNotFound) {
		t.Fatalf("error = %v, want ErrRaceNotFound", err)
	}
}

// emptyStore is a reachable database that was never seeded
type emptyStore struct{}

func (emptyStore) Matches(context.Context) ([]domain.MatchSummary, error) { return nil, nil }
func (emptyStore) Races(context.Context) ([]domain.Race, error)           { return nil, nil }
func (emptyStore) Race(context.Context, string) (domain.Race, error) {
	return domain.Race{}, domain.ErrRaceNotFound
}
func (emptyStore) Horses(context.Context, string) ([]domain.Horse, error) {
	return nil, domain.ErrRaceNotFound
}

func TestFallbackServesDefaultRaceFromBackup(t *testing.T) {
	ctx := context.Background()
	matches := source.WithMatchFallback(emptyStore{}, mock.New(), discard())

	r, err := matches.Race(ctx, domain.DefaultRaceID)
	if err != nil || r.Name != "Sprinter Cup" {
		t.Fatalf("race = %+v, %v", r, err)
	}
	horses, err := matches.Horses(ctx, domain.DefaultRaceID)
	if err != nil || len(horses) != 8 {
		t.Fatalf("horses = %d, %v", len(horses), err)
	}

	if _, err := matches.Race(ctx, "race4"); !errors.Is(err, domain.ErrRaceNotFound) {
		t.Errorf("race4 error = %v, want ErrRaceNotFound", err)
	}
}

func TestFallbackOnEmptyLists(t *testing.T) {
	ctx := context.Background()
	matches := source.WithMatchFallback(emptyStore{}, mock.New(), discard())

	if ms, err := matches.Matches(ctx); err != nil || len(ms) != 4 {
		t.Errorf("matches = %d, %v", len(ms), err)
	}
	if rs, err := matches.Races(ctx); err != nil || len(rs) != 6 {
		t.Errorf("races = %d, %v", len(rs), err)
	}
}

func TestNotificationFeed(t *testing.T) {
	ctx := context.Background()
	feed := source.NewNotificationFeed(mock.New())

	feed.Push(domain.Notification{ID: "k1", Category: domain.CategoryMatch, Title: "Toss"})
	feed.Push(domain.Notification{ID: "k2", Category: domain.CategoryReward, Title: "Bonus"})
	feed.Push(domain.Notification{ID: "k1", Category: domain.CategoryMatch, Title: "Toss won"})

	list, err := feed.Notifications(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 7 {
		t.Fatalf("len = %d, want 7", len(list))
	}
	if list[0].ID != "k1" || list[0].Title != "Toss won" || list[1].ID != "k2" || list[2].ID != "n1" {
		t.Errorf("order = %s %s %s", list[0].ID, list[1].ID, list[2].ID)
	}
}

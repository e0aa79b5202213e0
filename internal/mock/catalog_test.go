package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/predict-win/internal/domain"
)

func TestRaceLookup(t *testing.T) {
	ctx := context.Background()
	c := New()

	r, err := c.Race(ctx, DefaultRaceID)
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "Sprinter Cup" || r.Status != domain.StatusLive {
		t.Errorf("default race = %+v", r)
	}

	if _, err := c.Race(ctx, "race99"); !errors.Is(err, domain.ErrRaceNotFound) {
		t.Errorf("unknown race error = %v", err)
	}
	if _, err := c.Horses(ctx, "race99"); !errors.Is(err, domain.ErrRaceNotFound) {
		t.Errorf("unknown race horses error = %v", err)
	}
}

func TestLeaderboardScopes(t *testing.T) {
	ctx := context.Background()
	c := New()

	today, self, err := c.Leaderboard(ctx, domain.ScopeToday, 0)
	if err != nil {
		t.Fatal(err)
	}
	if today[0].Username != "SportsPundit" || self.Rank != 12 {
		t.Errorf("today = %v self = %+v", today[0], self)
	}

	weekly, _, _ := c.Leaderboard(ctx, domain.ScopeWeekly, 0)
	global, self, _ := c.Leaderboard(ctx, domain.ScopeGlobal, 3)
	if weekly[0] != global[0] {
		t.Error("weekly should share global data")
	}
	if len(global) != 3 || self.Rank != 24 {
		t.Errorf("global limited = %d, self rank %d", len(global), self.Rank)
	}

	if _, _, err := c.Leaderboard(ctx, "monthly", 0); !errors.Is(err, domain.ErrUnknownScope) {
		t.Errorf("unknown scope error = %v", err)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := New()

	ns, _ := c.Notifications(ctx)
	ns[0].IsRead = true
	again, _ := c.Notifications(ctx)
	if again[0].IsRead {
		t.Fatal("mutation leaked into the catalog")
	}

	ms, _ := c.Matches(ctx)
	ms[0].Teams.AScore = "0/0"
	again2, _ := c.Matches(ctx)
	if again2[0].Teams.AScore != "120/3" {
		t.Fatal("team mutation leaked into the catalog")
	}
}

func TestRewardCatalog(t *testing.T) {
	r := Rewards()
	if len(r.Milestones) != 3 || len(r.Claimables) != 3 || len(r.History) != 2 {
		t.Fatalf("catalog sizes = %d/%d/%d", len(r.Milestones), len(r.Claimables), len(r.History))
	}
	if r.Claimables[0].PointsCost != 1000 {
		t.Errorf("claim1 cost = %d", r.Claimables[0].PointsCost)
	}
}

func TestUnreadCount(t *testing.T) {
	ns, _ := New().Notifications(context.Background())
	if got := domain.UnreadCount(ns); got != 2 {
		t.Errorf("unread = %d, want 2", got)
	}
}

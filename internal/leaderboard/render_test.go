package leaderboard

import (
	"testing"

	"github.com/predict-win/internal/domain"
)

func entries() []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{
		{ID: "u1", Rank: 1, Username: "CricketMaster", Points: 4250},
		{ID: "u2", Rank: 2, Username: "PredictionKing", Points: 3890},
		{ID: "u3", Rank: 3, Username: "SportsPundit", Points: 3780},
		{ID: "u4", Rank: 4, Username: "MSDhoni_Fan", Points: 3550},
		{ID: "u5", Rank: 5, Username: "CricketWiz", Points: 3420},
	}
}

var me = domain.LeaderboardEntry{ID: "current", Rank: 24, Username: "You", Points: 1850}

func TestRenderAppendsSelfOnce(t *testing.T) {
	b := Render(entries(), me, false)

	if len(b.Rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(b.Rows))
	}
	last := b.Rows[5]
	if !last.Appended || !last.IsCurrentUser || last.Rank != 24 {
		t.Errorf("last row = %+v", last)
	}

	appended := 0
	for _, r := range b.Rows {
		if r.Appended {
			appended++
		}
	}
	if appended != 1 {
		t.Errorf("appended rows = %d, want 1", appended)
	}
}

func TestRenderSelfPresent(t *testing.T) {
	list := entries()
	list[3].ID = "current"

	b := Render(list, me, false)
	if len(b.Rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(b.Rows))
	}
	for _, r := range b.Rows {
		if r.Appended {
			t.Fatal("self row appended although present")
		}
	}
	if !b.Rows[3].IsCurrentUser {
		t.Error("self row not flagged")
	}
}

func TestRenderSelfFlaggedByEntry(t *testing.T) {
	list := entries()
	list[1].IsCurrentUser = true
	b := Render(list, domain.LeaderboardEntry{Rank: 2}, true)
	for _, r := range b.Rows {
		if r.Appended {
			t.Fatal("self row appended although present on podium")
		}
	}
}

func TestRenderSkipsUnrankedSelf(t *testing.T) {
	tests := []struct {
		name   string
		list   []domain.LeaderboardEntry
		podium bool
		rows   int
	}{
		{"rows", entries(), false, 5},
		{"podium", entries(), true, 2},
		{"empty", nil, true, 0},
	}
	unranked := domain.LeaderboardEntry{ID: "current"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Render(tt.list, unranked, tt.podium)
			if len(b.Rows) != tt.rows {
				t.Fatalf("rows = %d, want %d", len(b.Rows), tt.rows)
			}
			for _, r := range b.Rows {
				if r.Appended || r.Rank == 0 {
					t.Errorf("unranked self row rendered: %+v", r)
				}
			}
		})
	}
}

func TestRenderPodium(t *testing.T) {
	b := Render(entries(), me, true)

	if len(b.Podium) != 3 {
		t.Fatalf("podium = %d", len(b.Podium))
	}
	wantRanks := []int64{2, 1, 3}
	wantMedals := []string{MedalSilver, MedalGold, MedalBronze}
	for i, p := range b.Podium {
		if p.Rank != wantRanks[i] || p.Medal != wantMedals[i] {
			t.Errorf("podium[%d] = rank %d medal %q", i, p.Rank, p.Medal)
		}
	}
	if len(b.Rows) != 3 || b.Rows[0].Rank != 4 || !b.Rows[2].Appended {
		t.Errorf("rows = %+v", b.Rows)
	}
}

func TestRenderShortPodium(t *testing.T) {
	b := Render(entries()[:2], me, true)
	if len(b.Podium) != 2 || b.Podium[0].Rank != 2 || b.Podium[1].Rank != 1 {
		t.Errorf("podium = %+v", b.Podium)
	}

	b = Render(nil, me, true)
	if len(b.Podium) != 0 || len(b.Rows) != 1 || !b.Rows[0].Appended {
		t.Errorf("empty board = %+v", b)
	}
}

func TestMedalFor(t *testing.T) {
	tests := map[int64]string{1: MedalGold, 2: MedalSilver, 3: MedalBronze, 4: "", 24: ""}
	for rank, want := range tests {
		if got := MedalFor(rank); got != want {
			t.Errorf("MedalFor(%d) = %q, want %q", rank, got, want)
		}
	}
}

func TestShowsPodium(t *testing.T) {
	if ShowsPodium(domain.ScopeToday) || ShowsPodium(domain.ScopeWeekly) || !ShowsPodium(domain.ScopeGlobal) {
		t.Error("podium only on global")
	}
}

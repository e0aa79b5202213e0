package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/prediction"
	"github.com/predict-win/internal/route"
)

func newHome(t *testing.T, outcome string) (*Home, Env, *recorder, func()) {
	t.Helper()
	env, clock, rec := testEnv(outcome)
	h, err := NewHome(context.Background(), env)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Close)
	return h, env, rec, func() { clock.Advance(env.Timing.Reveal) }
}

func TestHomeView(t *testing.T) {
	h, _, _, _ := newHome(t, "4")
	v := h.View().(HomeView)

	if v.User.Name != "Rahul" || v.User.Points != 1850 || v.User.Rank != 24 {
		t.Errorf("user = %+v", v.User)
	}
	if len(v.Live) != 2 || len(v.Upcoming) != 2 {
		t.Errorf("live/upcoming = %d/%d", len(v.Live), len(v.Upcoming))
	}
	if v.Live[0].Badge != "LIVE" || v.Live[0].Action != "Play Now" {
		t.Errorf("live card = %+v", v.Live[0])
	}
	if v.Upcoming[0].Badge != "Starts in 2h" || v.Upcoming[0].Action != "Pre-Match Quiz" {
		t.Errorf("upcoming card = %+v", v.Upcoming[0])
	}
	if v.Reward.Remaining != 150 || v.Reward.Percent != 93 {
		t.Errorf("reward progress = %+v", v.Reward)
	}
	if v.Prediction != nil {
		t.Error("widget open on mount")
	}
}

func TestHomeCricketPrediction(t *testing.T) {
	h, _, rec, reveal := newHome(t, "4")

	if _, err := h.SelectPrediction("4"); !errors.Is(err, domain.ErrScreenInactive) {
		t.Fatalf("select without widget: %v", err)
	}

	if _, err := h.ToggleMatch("match1"); err != nil {
		t.Fatal(err)
	}
	v := h.View().(HomeView)
	if v.Prediction == nil || v.Prediction.MatchID != "match1" || len(v.Prediction.Options) != 8 {
		t.Fatalf("widget = %+v", v.Prediction)
	}

	_, err := h.SubmitPrediction()
	wantValidation(t, err, domain.ErrSelectPrediction)

	if _, err := h.SelectPrediction("4"); err != nil {
		t.Fatal(err)
	}
	res, err := h.SubmitPrediction()
	if err != nil || res.Notice == nil || res.Notice.MessageID != "PredictionSubmitted" {
		t.Fatalf("submit = %+v, %v", res, err)
	}

	reveal()
	if rec.lastNotice() != "PredictionCorrect" {
		t.Errorf("notice = %q", rec.lastNotice())
	}
	snap := h.View().(HomeView).Prediction.Snapshot
	if snap.State != prediction.StateRevealed || !snap.Correct {
		t.Errorf("snapshot = %+v", snap)
	}
	want := []string{domain.EventPredictionSubmitted, domain.EventPredictionRevealed}
	if len(rec.events) != 2 || rec.events[0] != want[0] || rec.events[1] != want[1] {
		t.Errorf("events = %v", rec.events)
	}
}

func TestHomeWrongPrediction(t *testing.T) {
	h, _, rec, reveal := newHome(t, "wicket")
	_, _ = h.ToggleMatch("match1")
	_, _ = h.SelectPrediction("6")
	_, _ = h.SubmitPrediction()
	reveal()
	if rec.lastNotice() != "PredictionWrong" {
		t.Errorf("notice = %q", rec.lastNotice())
	}
}

func TestHomeToggleUnmountCancelsReveal(t *testing.T) {
	h, _, rec, reveal := newHome(t, "4")
	_, _ = h.ToggleMatch("match1")
	_, _ = h.SelectPrediction("4")
	_, _ = h.SubmitPrediction()

	if _, err := h.ToggleMatch("match1"); err != nil {
		t.Fatal(err)
	}
	if h.View().(HomeView).Prediction != nil {
		t.Fatal("widget still open")
	}
	reveal()
	if rec.lastNotice() != "" {
		t.Fatalf("unmounted widget revealed: %q", rec.lastNotice())
	}
}

func TestHomeCloseCancelsReveal(t *testing.T) {
	env, clock, rec := testEnv("4")
	h, err := NewHome(context.Background(), env)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = h.ToggleMatch("match1")
	_, _ = h.SelectPrediction("4")
	_, _ = h.SubmitPrediction()
	h.Close()

	clock.Advance(env.Timing.Reveal + env.Timing.Reset)
	if rec.lastNotice() != "" {
		t.Fatalf("closed screen revealed: %q", rec.lastNotice())
	}
}

func TestHomeRaceCardRedirects(t *testing.T) {
	h, _, _, _ := newHome(t, "4")

	res, err := h.ToggleMatch("match2")
	if err != nil || res.Redirect != route.PathRacing+"/race3" {
		t.Fatalf("race card = %+v, %v", res, err)
	}
	if _, err := h.ToggleMatch("nope"); !errors.Is(err, domain.ErrMatchNotFound) {
		t.Fatalf("unknown match: %v", err)
	}
}

func TestRacePredictionFallsBackToDefaultRace(t *testing.T) {
	env, _, _ := testEnv("3")
	for _, id := range []string{"", "race99"} {
		r, err := NewRacePrediction(context.Background(), env, id)
		if err != nil {
			t.Fatal(err)
		}
		v := r.View().(RacePredictionView)
		if v.Race.ID != domain.DefaultRaceID || v.Tag != "LIVE" || len(v.Horses) != 8 {
			t.Errorf("race %q view = %+v", id, v.Race)
		}
		r.Close()
	}

	r, err := NewRacePrediction(context.Background(), env, "race5")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if v := r.View().(RacePredictionView); v.Race.Name != "Classic Mile" {
		t.Errorf("race5 = %+v", v.Race)
	}
}

func TestRacePredictionRound(t *testing.T) {
	env, clock, rec := testEnv("3")
	r, err := NewRacePrediction(context.Background(), env, "race3")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	_, err = r.Submit()
	wantValidation(t, err, domain.ErrSelectHorse)

	if _, err := r.Select("3"); err != nil {
		t.Fatal(err)
	}
	res, err := r.Submit()
	if err != nil || res.Notice.MessageID != "RacePredictionSubmitted" {
		t.Fatalf("submit = %+v, %v", res, err)
	}
	_, err = r.Select("1")
	wantValidation(t, err, domain.ErrPredictionLocked)

	clock.Advance(env.Timing.Reveal)
	rec.mu.Lock()
	last := rec.notices[len(rec.notices)-1]
	rec.mu.Unlock()
	if last.MessageID != "RaceWon" || last.Data["Points"] != 600 || last.Data["Horse"] != "Midnight Star" {
		t.Errorf("notice = %+v", last)
	}

	v := r.View().(RacePredictionView)
	if !v.Horses[2].Winner || !v.Horses[2].Selected || v.Horses[0].OddsDisplay != "3.5x" || v.Horses[0].WinAmount != "350 pts" {
		t.Errorf("horses = %+v", v.Horses[:3])
	}

	clock.Advance(env.Timing.Reset)
	if v := r.View().(RacePredictionView); v.Prediction.State != prediction.StateIdle || v.Prediction.Round != 2 {
		t.Errorf("after reset = %+v", v.Prediction)
	}
}

func TestRacingList(t *testing.T) {
	env, _, _ := testEnv("3")
	r, err := NewRacing(context.Background(), env)
	if err != nil {
		t.Fatal(err)
	}
	v := r.View().(RacingView)
	if len(v.Races) != 6 || v.Venue != "Mumbai Race Course" {
		t.Fatalf("view = %+v", v)
	}
	wantTags := []string{"COMPLETED", "LOCKED", "LIVE", "20m", "1h 35m", "2h 50m"}
	for i, race := range v.Races {
		if race.Tag != wantTags[i] {
			t.Errorf("race %s tag = %q, want %q", race.ID, race.Tag, wantTags[i])
		}
	}
	if v.Races[2].Action != "Predict Now" || v.Races[2].Path != "/racing/race3" {
		t.Errorf("live race card = %+v", v.Races[2])
	}
}

func TestLeaderboardScopes(t *testing.T) {
	env, _, _ := testEnv("3")
	l, err := NewLeaderboard(context.Background(), env)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	v := l.View().(LeaderboardView)
	if v.Scope != domain.ScopeToday || len(v.Podium) != 0 || len(v.Rows) != 6 {
		t.Fatalf("today = %+v", v)
	}
	if last := v.Rows[5]; !last.Appended || last.Rank != 12 {
		t.Errorf("self row = %+v", last)
	}

	if _, err := l.SetScope(context.Background(), "global"); err != nil {
		t.Fatal(err)
	}
	v = l.View().(LeaderboardView)
	if len(v.Podium) != 3 || v.Podium[1].Username != "CricketMaster" || len(v.Rows) != 3 {
		t.Fatalf("global = %+v", v)
	}

	_, err = l.SetScope(context.Background(), "monthly")
	wantValidation(t, err, domain.ErrUnknownTab)
	if got := l.View().(LeaderboardView).Scope; got != domain.ScopeGlobal {
		t.Errorf("scope changed to %s", got)
	}
}

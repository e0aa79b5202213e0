package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
	"github.com/predict-win/internal/timer"
)

func TestNotificationsMarkRead(t *testing.T) {
	env, _, _ := testEnv("dot")
	n, err := NewNotifications(context.Background(), env)
	if err != nil {
		t.Fatal(err)
	}
	defer n.Close()

	if n.Unread() != 2 {
		t.Fatalf("unread = %d", n.Unread())
	}
	if _, err := n.MarkRead("n1"); err != nil {
		t.Fatal(err)
	}
	v := n.View().(NotificationsView)
	if v.Unread != 1 || !v.Items[0].IsRead || v.Items[1].IsRead {
		t.Fatalf("after mark n1: unread=%d items=%+v", v.Unread, v.Items[:2])
	}

	if _, err := n.MarkRead("n9"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Errorf("unknown id: %v", err)
	}

	res, _ := n.MarkAllRead()
	if n.Unread() != 0 || res.Notice == nil {
		t.Errorf("after mark all: unread=%d notice=%+v", n.Unread(), res.Notice)
	}
	for _, item := range n.View().(NotificationsView).Items {
		if !item.IsRead {
			t.Errorf("%s still unread", item.ID)
		}
	}
}

func TestNotificationsTabs(t *testing.T) {
	env, _, _ := testEnv("dot")
	n, _ := NewNotifications(context.Background(), env)
	defer n.Close()

	tests := map[string]int{TabAll: 5, TabMatch: 2, TabReward: 2}
	for tab, want := range tests {
		if _, err := n.SetTab(tab); err != nil {
			t.Fatal(err)
		}
		if got := len(n.View().(NotificationsView).Items); got != want {
			t.Errorf("tab %s = %d items, want %d", tab, got, want)
		}
	}

	_, err := n.SetTab("system")
	wantValidation(t, err, domain.ErrUnknownTab)
}

func TestNotificationsDeliver(t *testing.T) {
	env, _, _ := testEnv("dot")
	n, _ := NewNotifications(context.Background(), env)
	defer n.Close()

	n.Deliver(domain.Notification{ID: "k1", Category: domain.CategoryMatch, Title: "Toss"})
	v := n.View().(NotificationsView)
	if v.Items[0].ID != "k1" || v.Unread != 3 {
		t.Fatalf("after deliver: %+v", v.Items[0])
	}
}

func TestSettings(t *testing.T) {
	env, _, _ := testEnv("dot")
	s := NewSettings(env)
	defer s.Close()

	res, err := s.Update(domain.GroupPreferences, domain.KeyLanguage, "hindi")
	if err != nil || res.Notice.MessageID != "SettingsUpdated" {
		t.Fatalf("update = %+v, %v", res, err)
	}
	if _, err := s.Update(domain.GroupNotifications, domain.KeyMarketingEmails, "true"); err != nil {
		t.Fatal(err)
	}

	_, err = s.Update(domain.GroupPreferences, domain.KeyTheme, "neon")
	wantValidation(t, err, domain.ErrInvalidSettingValue)
	_, err = s.Update(domain.GroupPrivacy, "share_location", "true")
	wantValidation(t, err, domain.ErrUnknownSetting)
	_, err = s.Update(domain.GroupPrivacy, domain.KeyPublicProfile, "maybe")
	wantValidation(t, err, domain.ErrInvalidSettingValue)

	v := s.View().(SettingsView)
	if v.Preferences.Language != "hindi" || v.Preferences.Theme != "light" || !v.Notifications.MarketingEmails || !v.Privacy.PublicProfile {
		t.Errorf("settings = %+v", v.Settings)
	}

	_, err = s.DeleteAccount()
	wantValidation(t, err, domain.ErrAccountDeletionBlocked)
	if res, _ := s.Logout(); res.Notice.MessageID != "LoggedOut" {
		t.Errorf("logout notice = %+v", res.Notice)
	}
}

func TestStats(t *testing.T) {
	env, _, _ := testEnv("dot")
	s, err := NewStats(context.Background(), env)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	v := s.View().(StatsView)
	if v.Period != PeriodWeek || len(v.Series) != 7 || len(v.Predictions) != 5 || v.Summary.Accuracy != 68 {
		t.Fatalf("default view = %+v", v)
	}

	for _, p := range []string{PeriodMonth, PeriodYear} {
		_, _ = s.SetPeriod(p)
		if got := len(s.View().(StatsView).Series); got != 4 {
			t.Errorf("%s series = %d", p, got)
		}
	}
	_, err = s.SetPeriod("decade")
	wantValidation(t, err, domain.ErrUnknownPeriod)

	_, _ = s.SetHistoryTab(HistoryCorrect)
	for _, p := range s.View().(StatsView).Predictions {
		if !p.IsCorrect {
			t.Errorf("%s shown on correct tab", p.ID)
		}
	}
	if got := len(s.View().(StatsView).Predictions); got != 3 {
		t.Errorf("correct predictions = %d", got)
	}
}

func TestHelp(t *testing.T) {
	env, _, rec := testEnv("dot")
	h := NewHelp(env)
	defer h.Close()

	res, _ := h.Search("  POINTS ")
	if res.Notice == nil || res.Notice.Data["Query"] != "POINTS" {
		t.Errorf("search notice = %+v", res.Notice)
	}
	v := h.View().(HelpView)
	if len(v.FAQ) == 0 || len(v.FAQ) == 6 {
		t.Errorf("filtered faq = %d", len(v.FAQ))
	}

	res, _ = h.Search("")
	if res.Notice != nil || len(h.View().(HelpView).FAQ) != 6 {
		t.Error("empty query should reset the filter")
	}

	_, err := h.SendSupport("   ")
	wantValidation(t, err, domain.ErrEmptySupportMessage)

	res, err = h.SendSupport("My points are missing")
	if err != nil || res.Notice.MessageID != "SupportMessageSent" {
		t.Fatalf("support = %+v, %v", res, err)
	}
	if len(rec.events) != 1 || rec.events[0] != domain.EventSupportTicket {
		t.Errorf("events = %v", rec.events)
	}
}

func TestTrivia(t *testing.T) {
	env, _, _ := testEnv("dot")
	tr := NewTrivia(env.Sources.Content.Trivia(), timer.NewManual())
	defer tr.Close()

	if _, err := tr.Select("1"); !errors.Is(err, domain.ErrScreenInactive) {
		t.Fatalf("select while closed: %v", err)
	}

	_, _ = tr.Open()
	_, err := tr.Submit()
	wantValidation(t, err, domain.ErrSelectAnswer)

	_, _ = tr.Select("1")
	res, err := tr.Submit()
	if err != nil || res.Notice.MessageID != "TriviaCorrect" || res.Notice.Data["Points"] != 50 {
		t.Fatalf("submit = %+v, %v", res, err)
	}
	if v := tr.View(); !v.Answered || !v.Snapshot.Correct {
		t.Errorf("view = %+v", v)
	}

	_, err = tr.Select("2")
	wantValidation(t, err, domain.ErrPredictionLocked)

	res, _ = tr.Continue()
	if res.Redirect != route.PathHome || tr.IsOpen() {
		t.Errorf("continue = %+v open=%v", res, tr.IsOpen())
	}

	_, _ = tr.Open()
	if !tr.View().Answered {
		t.Error("answer lost after reopening")
	}
}

func TestTriviaWrongAnswer(t *testing.T) {
	env, _, _ := testEnv("dot")
	tr := NewTrivia(env.Sources.Content.Trivia(), timer.NewManual())
	defer tr.Close()

	_, _ = tr.Open()
	_, _ = tr.Select("0")
	res, _ := tr.Submit()
	if res.Notice.MessageID != "TriviaWrong" || res.Notice.Level != domain.NoticeError {
		t.Errorf("notice = %+v", res.Notice)
	}
}

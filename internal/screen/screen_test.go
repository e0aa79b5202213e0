package screen

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/mock"
	"github.com/predict-win/internal/prediction"
	"github.com/predict-win/internal/route"
	"github.com/predict-win/internal/timer"
)

type recorder struct {
	mu          sync.Mutex
	navigations []string
	notices     []*domain.Notice
	events      []string
	updates     int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		Navigate: func(path string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.navigations = append(r.navigations, path)
		},
		Notify: func(n *domain.Notice) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.notices = append(r.notices, n)
		},
		Update: func(string, any) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.updates++
		},
		Publish: func(eventType string, _ map[string]any) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, eventType)
		},
	}
}

func (r *recorder) lastNotice() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return ""
	}
	return r.notices[len(r.notices)-1].MessageID
}

func (r *recorder) navigated() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.navigations...)
}

func testEnv(outcome string) (Env, *timer.Manual, *recorder) {
	clock := timer.NewManual()
	rec := &recorder{}
	env := Env{
		Sources:          mock.Sources(),
		Timing:           DefaultTiming(),
		Scheduler:        clock,
		Outcome:          prediction.FixedOutcome(outcome),
		LeaderboardLimit: 10,
		Hooks:            rec.hooks(),
	}
	return env, clock, rec
}

func wantValidation(t *testing.T, err error, want *domain.ValidationError) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("error = %v, want %s", err, want.MessageID)
	}
}

func TestMountEveryRoute(t *testing.T) {
	env, _, _ := testEnv("dot")
	table := route.DefaultTable()

	paths := []string{"/", "/onboarding", "/login", "/profile-setup", "/home", "/profile",
		"/leaderboard", "/rewards", "/racing", "/racing/race4", "/notifications",
		"/settings", "/stats", "/help", "/more", "/missing"}
	for _, p := range paths {
		m := table.Resolve(p)
		s, err := Mount(context.Background(), m, env)
		if err != nil {
			t.Fatalf("Mount(%s): %v", p, err)
		}
		if s.Name() != m.Route.Screen {
			t.Errorf("Mount(%s) = %s, want %s", p, s.Name(), m.Route.Screen)
		}
		if s.View() == nil {
			t.Errorf("Mount(%s) has no view", p)
		}
		s.Close()
	}
}

func TestNotFoundEchoesPath(t *testing.T) {
	v := NewNotFound("/nowhere").View().(NotFoundView)
	if v.Path != "/nowhere" {
		t.Errorf("path = %q", v.Path)
	}
}

func TestSplashNavigatesAfterDelay(t *testing.T) {
	env, clock, rec := testEnv("dot")
	s := NewSplash(env)
	defer s.Close()

	clock.Advance(env.Timing.Splash / 2)
	if len(rec.navigated()) != 0 {
		t.Fatal("navigated early")
	}
	clock.Advance(env.Timing.Splash / 2)
	if got := rec.navigated(); len(got) != 1 || got[0] != route.PathOnboarding {
		t.Fatalf("navigations = %v", got)
	}
}

func TestSplashClosedBeforeDelay(t *testing.T) {
	env, clock, rec := testEnv("dot")
	s := NewSplash(env)
	s.Close()

	clock.Advance(env.Timing.Splash * 2)
	if got := rec.navigated(); len(got) != 0 {
		t.Fatalf("closed splash navigated to %v", got)
	}
}

func TestOnboarding(t *testing.T) {
	env, _, _ := testEnv("dot")
	o := NewOnboarding(env)

	for i := 0; i < 2; i++ {
		res, err := o.Next()
		if err != nil || res.Redirect != "" {
			t.Fatalf("Next() #%d = %+v, %v", i, res, err)
		}
	}
	v := o.View().(OnboardingView)
	if !v.IsLast || v.Button != "Get Started" || v.CanSkip {
		t.Fatalf("last slide view = %+v", v)
	}
	res, _ := o.Next()
	if res.Redirect != route.PathLogin {
		t.Fatalf("Next() on last slide = %+v", res)
	}

	res, _ = NewOnboarding(env).Skip()
	if res.Redirect != route.PathLogin {
		t.Fatalf("Skip() = %+v", res)
	}
}

func TestLoginFlow(t *testing.T) {
	env, clock, rec := testEnv("dot")
	l := NewLogin(env)
	defer l.Close()

	_, err := l.SendOTP("98765", true)
	wantValidation(t, err, domain.ErrInvalidPhone)
	_, err = l.SendOTP("9876543210", false)
	wantValidation(t, err, domain.ErrTermsNotAccepted)
	_, err = l.Verify("1234")
	wantValidation(t, err, domain.ErrInvalidOTP)

	if _, err := l.SendOTP("9876543210", true); err != nil {
		t.Fatal(err)
	}
	if v := l.View().(LoginView); !v.Loading || v.Step != StepPhone {
		t.Fatalf("while sending: %+v", v)
	}
	_, err = l.SendOTP("9876543210", true)
	wantValidation(t, err, domain.ErrRequestInFlight)

	clock.Advance(env.Timing.OTPSend)
	if v := l.View().(LoginView); v.Loading || v.Step != StepOTP {
		t.Fatalf("after send: %+v", v)
	}
	if rec.lastNotice() != "OTPSent" {
		t.Errorf("notice = %q", rec.lastNotice())
	}

	_, err = l.Verify("12")
	wantValidation(t, err, domain.ErrInvalidOTP)

	if _, err := l.Verify("1234"); err != nil {
		t.Fatal(err)
	}
	clock.Advance(env.Timing.OTPVerify)
	if got := rec.navigated(); len(got) != 1 || got[0] != route.PathProfileSetup {
		t.Fatalf("navigations = %v", got)
	}
}

func TestLoginChangePhone(t *testing.T) {
	env, clock, _ := testEnv("dot")
	l := NewLogin(env)
	defer l.Close()

	_, _ = l.SendOTP("9876543210", true)
	_, err := l.ChangePhone()
	wantValidation(t, err, domain.ErrRequestInFlight)

	clock.Advance(env.Timing.OTPSend)
	if _, err := l.ChangePhone(); err != nil {
		t.Fatal(err)
	}
	if v := l.View().(LoginView); v.Step != StepPhone {
		t.Fatalf("step = %s", v.Step)
	}
}

func TestProfileSetup(t *testing.T) {
	env, clock, rec := testEnv("dot")
	p := NewProfileSetup(env)
	defer p.Close()

	_, err := p.Submit("   ", "cricket", "india")
	wantValidation(t, err, domain.ErrNameRequired)
	_, err = p.Submit("Rahul", "chess", "")
	wantValidation(t, err, domain.ErrUnknownSport)

	if _, err := p.Submit("Rahul", "football", "india"); err != nil {
		t.Fatal(err)
	}
	v := p.View().(ProfileSetupView)
	if v.FavoriteTeam != "" || !v.Loading {
		t.Fatalf("view = %+v", v)
	}

	clock.Advance(env.Timing.ProfileSetup)
	if rec.lastNotice() != "ProfileCreated" {
		t.Errorf("notice = %q", rec.lastNotice())
	}
	if got := rec.navigated(); len(got) != 1 || got[0] != route.PathHome {
		t.Fatalf("navigations = %v", got)
	}
}

func TestProfileSetupKeepsCricketTeam(t *testing.T) {
	env, _, _ := testEnv("dot")
	p := NewProfileSetup(env)
	defer p.Close()

	if _, err := p.Submit("Rahul", "cricket", "india"); err != nil {
		t.Fatal(err)
	}
	v := p.View().(ProfileSetupView)
	if v.FavoriteTeam != "india" || len(v.Teams) != len(Teams) {
		t.Fatalf("view = %+v", v)
	}
}

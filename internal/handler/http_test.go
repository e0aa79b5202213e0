package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/predict-win/internal/locale"
	"github.com/predict-win/internal/mock"
	"github.com/predict-win/internal/prediction"
	"github.com/predict-win/internal/route"
	"github.com/predict-win/internal/screen"
	"github.com/predict-win/internal/service"
	"github.com/predict-win/internal/timer"
	"github.com/predict-win/internal/websocket"
)

type testServer struct {
	handler *Handler
	router  http.Handler
	clock   *timer.Manual
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tr, err := locale.New("en")
	if err != nil {
		t.Fatal(err)
	}

	clock := timer.NewManual()
	hub := websocket.NewHub(nil, logger)
	app := service.NewAppService(route.DefaultTable(), mock.Sources(), tr, service.Options{
		Timing:              screen.DefaultTiming(),
		IdleTTL:             time.Hour,
		LeaderboardLimit:    10,
		LeaderboardMaxLimit: 100,
		Scheduler:           clock,
		Outcome:             prediction.FixedOutcome("dot"),
		Pusher:              hub,
	}, logger)
	t.Cleanup(app.Close)

	h := NewHandler(app, hub, []string{"http://localhost:3000"}, logger)
	return &testServer{handler: h, router: h.Router(), clock: clock}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type sessionBody struct {
	SessionID string       `json:"session_id"`
	Language  string       `json:"language"`
	Path      string       `json:"path"`
	Screen    route.Screen `json:"screen"`
	ShowNav   bool         `json:"show_nav"`
	Nav       *struct {
		MenuOpen bool `json:"menu_open"`
	} `json:"nav"`
	View    json.RawMessage `json:"view"`
	Notices []struct {
		Level     string `json:"level"`
		MessageID string `json:"message_id"`
		Text      string `json:"text"`
	} `json:"notices"`
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding %s %s response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, env
}

func decodeSession(t *testing.T, env envelope) sessionBody {
	t.Helper()
	var v sessionBody
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	return v
}

func (s *testServer) createSession(t *testing.T) string {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/v1/sessions", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, env.Error)
	}
	return decodeSession(t, env).SessionID
}

func (s *testServer) navigate(t *testing.T, id, path string) sessionBody {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/navigate", map[string]string{"path": path})
	if rec.Code != http.StatusOK {
		t.Fatalf("navigate %s: %d %s", path, rec.Code, env.Error)
	}
	return decodeSession(t, env)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Errorf("unexpected health response %d", rec.Code)
	}
}

func TestReadyCheck(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/ready", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}

	s.handler.AddReadinessCheck("redis", func(context.Context) error { return errors.New("down") })
	rec, env := s.do(t, http.MethodGet, "/ready", nil)
	if rec.Code != http.StatusServiceUnavailable || env.Success {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/routes", http.StatusOK},
		{"/api/v1/nav?path=/racing/race3", http.StatusOK},
		{"/api/v1/matches", http.StatusOK},
		{"/api/v1/races", http.StatusOK},
		{"/api/v1/races/race3", http.StatusOK},
		{"/api/v1/races/race99", http.StatusNotFound},
		{"/api/v1/leaderboards/global?limit=3", http.StatusOK},
		{"/api/v1/leaderboards/monthly", http.StatusBadRequest},
		{"/api/v1/rewards", http.StatusOK},
		{"/api/v1/notifications", http.StatusOK},
		{"/api/v1/ws/stats", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, env := s.do(t, http.MethodGet, tt.path, nil)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d (%s)", tt.want, rec.Code, env.Error)
			}
			if env.Success != (tt.want == http.StatusOK) {
				t.Errorf("unexpected success flag %v", env.Success)
			}
		})
	}
}

func TestNavEndpoint(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodGet, "/api/v1/nav?path=/racing/race3", nil)
	var got struct {
		ShowNav bool `json:"show_nav"`
		Nav     struct {
			Tabs []struct {
				Path   string `json:"path"`
				Active bool   `json:"active"`
			} `json:"tabs"`
		} `json:"nav"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if !got.ShowNav {
		t.Error("race prediction shows the nav bar")
	}
	for _, tab := range got.Nav.Tabs {
		if tab.Active != (tab.Path == route.PathRacing) {
			t.Errorf("tab %s active=%v", tab.Path, tab.Active)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/sessions", map[string]string{"language": "hi"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	created := decodeSession(t, env)
	if created.Screen != route.ScreenSplash || created.Language != "hi" {
		t.Errorf("unexpected session %+v", created)
	}

	s.clock.Advance(3 * time.Second)
	_, env = s.do(t, http.MethodGet, "/api/v1/sessions/"+created.SessionID, nil)
	if got := decodeSession(t, env); got.Screen != route.ScreenOnboarding {
		t.Errorf("expected onboarding after splash, got %s", got.Screen)
	}

	rec, _ = s.do(t, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/onboarding/skip", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("skip: %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/sessions/"+created.SessionID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}
	rec, _ = s.do(t, http.MethodGet, "/api/v1/sessions/"+created.SessionID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestAcceptLanguage(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/api/v1/sessions", nil, "Accept-Language", "hi-IN,hi;q=0.9")
	if got := decodeSession(t, env); got.Language != "hi" {
		t.Errorf("expected hi, got %s", got.Language)
	}
}

func TestScreenActionStatusCodes(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/rewards/claim", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for inactive screen, got %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodPost, "/api/v1/sessions/missing/rewards/claim", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", rec.Code)
	}

	s.navigate(t, id, route.PathLogin)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/login/otp", bytes.NewBufferString("{"))
	raw := httptest.NewRecorder()
	s.router.ServeHTTP(raw, req)
	if raw.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad body, got %d", raw.Code)
	}
}

func TestValidationNotice(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)
	s.navigate(t, id, route.PathLogin)

	rec, env := s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/login/otp", map[string]any{"phone": "98765", "agreed": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("validation failures are 200, got %d", rec.Code)
	}
	got := decodeSession(t, env)
	if len(got.Notices) != 1 || got.Notices[0].Level != "error" || got.Notices[0].MessageID != "InvalidPhone" {
		t.Errorf("unexpected notices %+v", got.Notices)
	}
}

func TestRewardClaimFlow(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)
	s.navigate(t, id, "/rewards")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/rewards/nothing/open", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown reward, got %d", rec.Code)
	}

	rewards := mock.Rewards()
	var target string
	for _, r := range rewards.Claimables {
		if r.PointsCost <= 1850 {
			target = r.ID
			break
		}
	}
	if target == "" {
		t.Fatal("no affordable reward in catalog")
	}

	if rec, env := s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/rewards/"+target+"/open", nil); rec.Code != http.StatusOK {
		t.Fatalf("open: %d %s", rec.Code, env.Error)
	}
	_, env := s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/rewards/claim", nil)
	got := decodeSession(t, env)
	if len(got.Notices) != 1 || got.Notices[0].MessageID != "RewardClaimed" {
		t.Errorf("unexpected notices %+v", got.Notices)
	}
}

func TestSettingsUpdate(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)
	s.navigate(t, id, "/settings")

	_, env := s.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/settings/preferences/theme", map[string]string{"value": "dark"})
	got := decodeSession(t, env)
	if len(got.Notices) != 1 || got.Notices[0].MessageID != "SettingsUpdated" {
		t.Errorf("unexpected notices %+v", got.Notices)
	}

	_, env = s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/settings/delete-account", nil)
	got = decodeSession(t, env)
	if len(got.Notices) != 1 || got.Notices[0].MessageID != "AccountDeletionDisabled" {
		t.Errorf("unexpected notices %+v", got.Notices)
	}
}

func TestMenuEndpoints(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)
	s.navigate(t, id, route.PathHome)

	_, env := s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/nav/more/toggle", nil)
	if got := decodeSession(t, env); got.Nav == nil || !got.Nav.MenuOpen {
		t.Fatal("expected open menu")
	}

	_, env = s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/nav/more/choose", map[string]string{"path": "/help"})
	if got := decodeSession(t, env); got.Screen != route.ScreenHelp || got.Nav.MenuOpen {
		t.Errorf("expected help with closed menu, got %+v", got)
	}

	rec, _ := s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/nav/more/choose", map[string]string{"path": "/rewards"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-menu path, got %d", rec.Code)
	}
}

func TestTriviaEndpoints(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)
	s.navigate(t, id, route.PathHome)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/trivia/select", map[string]string{"option": "0"})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 with closed dialog, got %d", rec.Code)
	}

	s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/trivia/open", nil)
	s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/trivia/select", map[string]string{"option": "0"})
	_, env := s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/trivia/submit", nil)
	got := decodeSession(t, env)
	if len(got.Notices) != 1 || got.Notices[0].MessageID != "TriviaWrong" {
		t.Errorf("unexpected notices %+v", got.Notices)
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/matches", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow origin, got %q", got)
	}
}

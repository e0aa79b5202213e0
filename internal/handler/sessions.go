package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/screen"
	"github.com/predict-win/internal/service"
)

type createSessionRequest struct {
	Language string `json:"language"`
}

type pathRequest struct {
	Path string `json:"path"`
}

type valueRequest struct {
	Value string `json:"value"`
}

type optionRequest struct {
	Option string `json:"option"`
}

type sendOTPRequest struct {
	Phone  string `json:"phone"`
	Agreed bool   `json:"agreed"`
}

type verifyOTPRequest struct {
	OTP string `json:"otp"`
}

type profileSetupRequest struct {
	Name          string `json:"name"`
	FavoriteSport string `json:"favorite_sport"`
	FavoriteTeam  string `json:"favorite_team"`
}

type scopeRequest struct {
	Scope string `json:"scope"`
}

type tabRequest struct {
	Tab string `json:"tab"`
}

type periodRequest struct {
	Period string `json:"period"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type messageRequest struct {
	Message string `json:"message"`
}

func (h *Handler) sessionRoutes(r chi.Router) {
	r.Post("/", h.CreateSession)

	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.DeleteSession)
		r.Post("/navigate", h.Navigate)

		r.Post("/nav/more/toggle", h.ToggleMenu)
		r.Post("/nav/more/dismiss", h.DismissMenu)
		r.Post("/nav/more/choose", h.ChooseMenu)

		r.Post("/trivia/open", h.trivia(func(t *screen.Trivia) (screen.Result, error) { return t.Open() }))
		r.Post("/trivia/close", h.trivia(func(t *screen.Trivia) (screen.Result, error) { return t.CloseDialog() }))
		r.Post("/trivia/submit", h.trivia(func(t *screen.Trivia) (screen.Result, error) { return t.Submit() }))
		r.Post("/trivia/continue", h.trivia(func(t *screen.Trivia) (screen.Result, error) { return t.Continue() }))
		r.Post("/trivia/select", h.SelectTrivia)

		r.Post("/onboarding/next", screenAction(h, func(_ *http.Request, o *screen.Onboarding) (screen.Result, error) {
			return o.Next()
		}))
		r.Post("/onboarding/skip", screenAction(h, func(_ *http.Request, o *screen.Onboarding) (screen.Result, error) {
			return o.Skip()
		}))

		r.Post("/login/otp", screenBodyAction(h, func(_ *http.Request, l *screen.Login, body sendOTPRequest) (screen.Result, error) {
			return l.SendOTP(body.Phone, body.Agreed)
		}))
		r.Post("/login/verify", screenBodyAction(h, func(_ *http.Request, l *screen.Login, body verifyOTPRequest) (screen.Result, error) {
			return l.Verify(body.OTP)
		}))
		r.Post("/login/change-phone", screenAction(h, func(_ *http.Request, l *screen.Login) (screen.Result, error) {
			return l.ChangePhone()
		}))

		r.Post("/profile-setup", screenBodyAction(h, func(_ *http.Request, p *screen.ProfileSetup, body profileSetupRequest) (screen.Result, error) {
			return p.Submit(body.Name, body.FavoriteSport, body.FavoriteTeam)
		}))

		r.Post("/home/matches/{matchID}/toggle", screenAction(h, func(r *http.Request, home *screen.Home) (screen.Result, error) {
			return home.ToggleMatch(chi.URLParam(r, "matchID"))
		}))
		r.Post("/home/prediction/select", screenBodyAction(h, func(_ *http.Request, home *screen.Home, body valueRequest) (screen.Result, error) {
			return home.SelectPrediction(body.Value)
		}))
		r.Post("/home/prediction/submit", screenAction(h, func(_ *http.Request, home *screen.Home) (screen.Result, error) {
			return home.SubmitPrediction()
		}))

		r.Post("/leaderboard/scope", screenBodyAction(h, func(r *http.Request, l *screen.Leaderboard, body scopeRequest) (screen.Result, error) {
			return l.SetScope(r.Context(), body.Scope)
		}))

		r.Post("/race/select", screenBodyAction(h, func(_ *http.Request, race *screen.RacePrediction, body valueRequest) (screen.Result, error) {
			return race.Select(body.Value)
		}))
		r.Post("/race/submit", screenAction(h, func(_ *http.Request, race *screen.RacePrediction) (screen.Result, error) {
			return race.Submit()
		}))

		r.Post("/rewards/claim", screenAction(h, func(_ *http.Request, rw *screen.Rewards) (screen.Result, error) {
			return rw.Claim()
		}))
		r.Post("/rewards/close", screenAction(h, func(_ *http.Request, rw *screen.Rewards) (screen.Result, error) {
			return rw.CloseDialog()
		}))
		r.Post("/rewards/{rewardID}/open", screenAction(h, func(r *http.Request, rw *screen.Rewards) (screen.Result, error) {
			return rw.Open(chi.URLParam(r, "rewardID"))
		}))

		r.Post("/notifications/read-all", screenAction(h, func(_ *http.Request, n *screen.Notifications) (screen.Result, error) {
			return n.MarkAllRead()
		}))
		r.Post("/notifications/tab", screenBodyAction(h, func(_ *http.Request, n *screen.Notifications, body tabRequest) (screen.Result, error) {
			return n.SetTab(body.Tab)
		}))
		r.Post("/notifications/{notificationID}/read", screenAction(h, func(r *http.Request, n *screen.Notifications) (screen.Result, error) {
			return n.MarkRead(chi.URLParam(r, "notificationID"))
		}))

		r.Put("/settings/{group}/{key}", screenBodyAction(h, func(r *http.Request, s *screen.Settings, body valueRequest) (screen.Result, error) {
			return s.Update(chi.URLParam(r, "group"), chi.URLParam(r, "key"), body.Value)
		}))
		r.Post("/settings/logout", screenAction(h, func(_ *http.Request, s *screen.Settings) (screen.Result, error) {
			return s.Logout()
		}))
		r.Post("/settings/delete-account", screenAction(h, func(_ *http.Request, s *screen.Settings) (screen.Result, error) {
			return s.DeleteAccount()
		}))

		r.Post("/stats/period", screenBodyAction(h, func(_ *http.Request, s *screen.Stats, body periodRequest) (screen.Result, error) {
			return s.SetPeriod(body.Period)
		}))
		r.Post("/stats/history-tab", screenBodyAction(h, func(_ *http.Request, s *screen.Stats, body tabRequest) (screen.Result, error) {
			return s.SetHistoryTab(body.Tab)
		}))

		r.Post("/help/search", screenBodyAction(h, func(_ *http.Request, help *screen.Help, body queryRequest) (screen.Result, error) {
			return help.Search(body.Query)
		}))
		r.Post("/help/support", screenBodyAction(h, func(_ *http.Request, help *screen.Help, body messageRequest) (screen.Result, error) {
			return help.SendSupport(body.Message)
		}))
	})
}

// decodeBody decodes a JSON body. An empty body leaves v at its zero value.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return domain.ErrInvalidRequest
	}
	return nil
}

// screenAction runs fn on the session's screen when it is a T
func screenAction[T screen.Screen](h *Handler, fn func(r *http.Request, s T) (screen.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := service.Act(r.Context(), h.app, chi.URLParam(r, "sessionID"), func(s T) (screen.Result, error) {
			return fn(r, s)
		})
		h.writeView(w, r, view, err)
	}
}

// screenBodyAction is screenAction with a decoded request body
func screenBodyAction[T screen.Screen, B any](h *Handler, fn func(r *http.Request, s T, body B) (screen.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body B
		if err := decodeBody(r, &body); err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
		view, err := service.Act(r.Context(), h.app, chi.URLParam(r, "sessionID"), func(s T) (screen.Result, error) {
			return fn(r, s, body)
		})
		h.writeView(w, r, view, err)
	}
}

func (h *Handler) trivia(fn func(t *screen.Trivia) (screen.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := h.app.TriviaAct(r.Context(), chi.URLParam(r, "sessionID"), fn)
		h.writeView(w, r, view, err)
	}
}

func (h *Handler) writeView(w http.ResponseWriter, r *http.Request, view *service.SessionView, err error) {
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeSuccess(w, view)
}

// CreateSession starts a session on the splash screen
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := h.app.CreateSession(r.Context(), req.Language, r.Header.Get("Accept-Language"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    view,
	})
}

// GetSession renders the session and drains its notices
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.app.View(r.Context(), chi.URLParam(r, "sessionID"))
	h.writeView(w, r, view, err)
}

// DeleteSession ends a session
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.app.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeSuccess(w, map[string]string{"status": "deleted"})
}

// Navigate moves the session to a path
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := decodeBody(r, &req); err != nil || req.Path == "" {
		h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
		return
	}
	view, err := h.app.Navigate(r.Context(), chi.URLParam(r, "sessionID"), req.Path)
	h.writeView(w, r, view, err)
}

// ToggleMenu opens or closes the overflow menu
func (h *Handler) ToggleMenu(w http.ResponseWriter, r *http.Request) {
	view, err := h.app.ToggleMenu(r.Context(), chi.URLParam(r, "sessionID"))
	h.writeView(w, r, view, err)
}

// DismissMenu closes the overflow menu
func (h *Handler) DismissMenu(w http.ResponseWriter, r *http.Request) {
	view, err := h.app.DismissMenu(r.Context(), chi.URLParam(r, "sessionID"))
	h.writeView(w, r, view, err)
}

// ChooseMenu navigates to an overflow menu item
func (h *Handler) ChooseMenu(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := h.app.ChooseMenu(r.Context(), chi.URLParam(r, "sessionID"), req.Path)
	h.writeView(w, r, view, err)
}

// SelectTrivia picks an answer in the trivia dialog
func (h *Handler) SelectTrivia(w http.ResponseWriter, r *http.Request) {
	var req optionRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := h.app.TriviaAct(r.Context(), chi.URLParam(r, "sessionID"), func(t *screen.Trivia) (screen.Result, error) {
		return t.Select(req.Option)
	})
	h.writeView(w, r, view, err)
}

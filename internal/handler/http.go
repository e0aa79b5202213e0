package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
	"github.com/predict-win/internal/service"
	"github.com/predict-win/internal/websocket"
)

// ReadinessCheck reports whether a dependency is reachable
type ReadinessCheck func(ctx context.Context) error

// Handler provides the HTTP API of the app
type Handler struct {
	app            *service.AppService
	hub            *websocket.Hub
	allowedOrigins []string
	checks         map[string]ReadinessCheck
	logger         *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(app *service.AppService, hub *websocket.Hub, allowedOrigins []string, logger *slog.Logger) *Handler {
	return &Handler{
		app:            app,
		hub:            hub,
		allowedOrigins: allowedOrigins,
		checks:         make(map[string]ReadinessCheck),
		logger:         logger,
	}
}

// AddReadinessCheck registers a dependency checked by /ready
func (h *Handler) AddReadinessCheck(name string, check ReadinessCheck) {
	h.checks[name] = check
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Router creates and configures the HTTP router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(h.corsMiddleware)

	r.Get("/health", h.HealthCheck)
	r.Get("/ready", h.ReadyCheck)
	r.Get("/ws", h.HandleWebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/routes", h.GetRoutes)
		r.Get("/nav", h.GetNav)
		r.Get("/matches", h.GetMatches)
		r.Get("/races", h.GetRaces)
		r.Get("/races/{raceID}", h.GetRace)
		r.Get("/leaderboards/{scope}", h.GetLeaderboard)
		r.Get("/rewards", h.GetRewards)
		r.Get("/notifications", h.GetNotifications)
		r.Get("/ws/stats", h.GetStats)

		r.Route("/sessions", h.sessionRoutes)
	})

	return r
}

// corsMiddleware adds CORS headers for allowed origins
func (h *Handler) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := h.corsOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Accept-Language, Authorization, Content-Type, X-Request-ID")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) corsOrigin(origin string) string {
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if origin != "" && allowed == origin {
			return origin
		}
	}
	return ""
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeSuccess writes a successful JSON response
func (h *Handler) writeSuccess(w http.ResponseWriter, data any) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeError writes an error JSON response
func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// writeServiceError maps a service error onto a status code
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsNotFoundError(err):
		h.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrScreenInactive):
		h.writeError(w, http.StatusConflict, err)
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrUnknownScope),
		errors.Is(err, route.ErrUnknownMenuItem):
		h.writeError(w, http.StatusBadRequest, err)
	default:
		h.logger.Error("request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)
		h.writeError(w, http.StatusInternalServerError, domain.ErrInternalError)
	}
}

// HandleWebSocket handles WebSocket upgrade requests
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWs(w, r)
}

// GetStats returns session and WebSocket statistics
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]any{
		"sessions":  h.app.Stats(),
		"websocket": h.hub.Stats(),
	})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]string{"status": "healthy"})
}

// ReadyCheck pings the registered dependencies
func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks)+1)
	ready := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("readiness check failed", "check", name, "error", err)
			status[name] = "unavailable"
			ready = false
			continue
		}
		status[name] = "ok"
	}

	if !ready {
		status["status"] = "degraded"
		h.writeJSON(w, http.StatusServiceUnavailable, APIResponse{Success: false, Data: status, Error: "not ready"})
		return
	}
	status["status"] = "ready"
	h.writeSuccess(w, status)
}

// GetRoutes returns the route table
func (h *Handler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, h.app.Routes())
}

// GetNav renders the navigation bar for ?path=
func (h *Handler) GetNav(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	nav, show := h.app.Nav(path)
	h.writeSuccess(w, map[string]any{
		"path":     route.Normalize(path),
		"show_nav": show,
		"nav":      nav,
	})
}

// GetMatches returns the home match cards
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.app.Matches(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeSuccess(w, matches)
}

// GetRaces returns the race list
func (h *Handler) GetRaces(w http.ResponseWriter, r *http.Request) {
	races, err := h.app.Races(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeSuccess(w, races)
}

// GetRace returns one race with its horses
func (h *Handler) GetRace(w http.ResponseWriter, r *http.Request) {
	race, err := h.app.Race(r.Context(), chi.URLParam(r, "raceID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeSuccess(w, race)
}

// GetLeaderboard renders one leaderboard scope
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	board, err := h.app.Leaderboard(r.Context(), chi.URLParam(r, "scope"), limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeSuccess(w, board)
}

// GetRewards returns the reward catalog
func (h *Handler) GetRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.app.Rewards(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeSuccess(w, rewards)
}

// GetNotifications returns the notification list
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.app.Notifications(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeSuccess(w, items)
}

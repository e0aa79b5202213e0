// Package route maps application paths to screens.
package route

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Screen identifies a screen kind
type Screen string

const (
	ScreenSplash         Screen = "splash"
	ScreenOnboarding     Screen = "onboarding"
	ScreenLogin          Screen = "login"
	ScreenProfileSetup   Screen = "profile_setup"
	ScreenHome           Screen = "home"
	ScreenProfile        Screen = "profile"
	ScreenLeaderboard    Screen = "leaderboard"
	ScreenRewards        Screen = "rewards"
	ScreenRacing         Screen = "racing"
	ScreenRacePrediction Screen = "race_prediction"
	ScreenNotifications  Screen = "notifications"
	ScreenSettings       Screen = "settings"
	ScreenStats          Screen = "stats"
	ScreenHelp           Screen = "help"
	ScreenMore           Screen = "more"
	ScreenNotFound       Screen = "not_found"
)

// Well-known paths
const (
	PathSplash       = "/"
	PathOnboarding   = "/onboarding"
	PathLogin        = "/login"
	PathProfileSetup = "/profile-setup"
	PathHome         = "/home"
	PathRacing       = "/racing"
)

// Route binds a path pattern to a screen
type Route struct {
	Pattern string `json:"pattern"`
	Screen  Screen `json:"screen"`
	ShowNav bool   `json:"show_nav"`
}

// Match is the result of resolving a path
type Match struct {
	Route  Route             `json:"route"`
	Path   string            `json:"path"`
	Params map[string]string `json:"params,omitempty"`
}

// Param returns a path parameter or ""
func (m Match) Param(name string) string {
	return m.Params[name]
}

// DefaultRoutes is the application route table
func DefaultRoutes() []Route {
	return []Route{
		{Pattern: "/", Screen: ScreenSplash},
		{Pattern: "/onboarding", Screen: ScreenOnboarding},
		{Pattern: "/login", Screen: ScreenLogin},
		{Pattern: "/profile-setup", Screen: ScreenProfileSetup},
		{Pattern: "/home", Screen: ScreenHome, ShowNav: true},
		{Pattern: "/profile", Screen: ScreenProfile, ShowNav: true},
		{Pattern: "/leaderboard", Screen: ScreenLeaderboard, ShowNav: true},
		{Pattern: "/rewards", Screen: ScreenRewards, ShowNav: true},
		{Pattern: "/racing", Screen: ScreenRacing, ShowNav: true},
		{Pattern: "/racing/{id}", Screen: ScreenRacePrediction, ShowNav: true},
		{Pattern: "/notifications", Screen: ScreenNotifications, ShowNav: true},
		{Pattern: "/settings", Screen: ScreenSettings, ShowNav: true},
		{Pattern: "/stats", Screen: ScreenStats, ShowNav: true},
		{Pattern: "/help", Screen: ScreenHelp, ShowNav: true},
		{Pattern: "/more", Screen: ScreenMore, ShowNav: true},
	}
}

// NotFound is the fallback route
var NotFound = Route{Pattern: "*", Screen: ScreenNotFound}

// Table resolves paths against a chi routing tree built once
type Table struct {
	routes    []Route
	mux       *chi.Mux
	byPattern map[string]Route
}

// NewTable builds a table from routes
func NewTable(routes []Route) *Table {
	t := &Table{
		routes:    routes,
		mux:       chi.NewRouter(),
		byPattern: make(map[string]Route, len(routes)),
	}
	noop := func(http.ResponseWriter, *http.Request) {}
	for _, r := range routes {
		t.mux.Get(r.Pattern, noop)
		t.byPattern[r.Pattern] = r
	}
	return t
}

// DefaultTable builds the application route table
func DefaultTable() *Table {
	return NewTable(DefaultRoutes())
}

// Routes returns the declared routes
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Resolve maps a path to its route. Unknown paths resolve to NotFound.
func (t *Table) Resolve(path string) Match {
	path = Normalize(path)

	rctx := chi.NewRouteContext()
	if !t.mux.Match(rctx, http.MethodGet, path) {
		return Match{Route: NotFound, Path: path}
	}

	r, ok := t.byPattern[rctx.RoutePattern()]
	if !ok {
		return Match{Route: NotFound, Path: path}
	}

	m := Match{Route: r, Path: path}
	if n := len(rctx.URLParams.Keys); n > 0 {
		m.Params = make(map[string]string, n)
		for i, k := range rctx.URLParams.Keys {
			m.Params[k] = rctx.URLParams.Values[i]
		}
	}
	return m
}

// Normalize drops query and fragment, ensures a leading slash and trims
// trailing slashes except for the root.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if u, err := url.PathUnescape(path); err == nil {
		path = u
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

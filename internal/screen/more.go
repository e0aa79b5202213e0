package screen

import (
	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

// More lists secondary destinations
type More struct {
	items []domain.MenuItem
}

// MoreView is the rendered more screen
type MoreView struct {
	Items []domain.MenuItem `json:"items"`
}

// NewMore lists the secondary destinations
func NewMore(env Env) *More {
	return &More{items: env.Sources.Content.MoreMenu()}
}

// Name implements Screen
func (m *More) Name() route.Screen { return route.ScreenMore }

// View returns a snapshot for the client
func (m *More) View() any { return MoreView{Items: m.items} }

// Close is a no-op; the screen owns no timers
func (m *More) Close() {}

// NotFound echoes an unknown path
type NotFound struct {
	path string
}

// NotFoundView is the rendered not-found screen
type NotFoundView struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Home    string `json:"home"`
}

// NewNotFound is shown for paths outside the route table
func NewNotFound(path string) *NotFound {
	return &NotFound{path: path}
}

// Name returns the screen id
func (n *NotFound) Name() route.Screen { return route.ScreenNotFound }

// View implements Screen
func (n *NotFound) View() any {
	return NotFoundView{Path: n.path, Message: "Oops! Page not found", Home: route.PathSplash}
}

// Close is a no-op; the screen owns no timers
func (n *NotFound) Close() {}

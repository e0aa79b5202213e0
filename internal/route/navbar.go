package route

import (
	"errors"
	"strings"
)

var ErrUnknownMenuItem = errors.New("unknown menu item")

// Tab is a navigation bar entry
type Tab struct {
	Label string
	Path  string
	Icon  string
	Exact bool
}

// Tabs of the bottom navigation bar
var Tabs = []Tab{
	{Label: "Home", Path: "/home", Icon: "home", Exact: true},
	{Label: "Racing", Path: "/racing", Icon: "flag"},
	{Label: "Rewards", Path: "/rewards", Icon: "award"},
	{Label: "Profile", Path: "/profile", Icon: "user"},
}

// MoreItems are the entries of the overflow menu
var MoreItems = []Tab{
	{Label: "Stats", Path: "/stats", Icon: "bar-chart"},
	{Label: "Notifications", Path: "/notifications", Icon: "bell"},
	{Label: "Settings", Path: "/settings", Icon: "settings"},
	{Label: "Help", Path: "/help", Icon: "help-circle"},
}

// IsActive reports whether tab is highlighted for path
func (t Tab) IsActive(path string) bool {
	path = Normalize(path)
	if t.Exact {
		return path == t.Path
	}
	return path == t.Path || strings.HasPrefix(path, t.Path+"/")
}

// TabView is a rendered tab
type TabView struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// NavView is the rendered navigation bar
type NavView struct {
	Tabs       []TabView `json:"tabs"`
	MoreActive bool      `json:"more_active"`
	MenuOpen   bool      `json:"menu_open"`
	MenuItems  []TabView `json:"menu_items,omitempty"`
}

// Menu is the open/closed state of the overflow menu
type Menu struct {
	open bool
}

// Open reports whether the menu is shown
func (m *Menu) Open() bool { return m.open }

// Toggle flips the menu
func (m *Menu) Toggle() { m.open = !m.open }

// Dismiss closes the menu, as a click on the overlay does
func (m *Menu) Dismiss() { m.open = false }

// Choose closes the menu and returns the path to navigate to
func (m *Menu) Choose(path string) (string, error) {
	path = Normalize(path)
	for _, item := range MoreItems {
		if item.Path == path {
			m.open = false
			return path, nil
		}
	}
	return "", ErrUnknownMenuItem
}

// RenderNav renders the bar for path
func RenderNav(path string, menuOpen bool) NavView {
	v := NavView{MenuOpen: menuOpen}
	for _, t := range Tabs {
		v.Tabs = append(v.Tabs, TabView{Label: t.Label, Path: t.Path, Icon: t.Icon, Active: t.IsActive(path)})
	}
	subActive := false
	for _, item := range MoreItems {
		active := item.IsActive(path)
		subActive = subActive || active
		if menuOpen {
			v.MenuItems = append(v.MenuItems, TabView{Label: item.Label, Path: item.Path, Icon: item.Icon, Active: active})
		}
	}
	v.MoreActive = menuOpen || subActive
	return v
}

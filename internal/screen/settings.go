package screen

import (
	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

// Settings edits preferences held only by this screen
type Settings struct {
	base
	settings domain.Settings
}

// SettingsView is the rendered settings screen
type SettingsView struct {
	domain.Settings
	Languages []string `json:"languages"`
	Themes    []string `json:"themes"`
}

// NewSettings starts from the default settings
func NewSettings(env Env) *Settings {
	s := &Settings{settings: domain.DefaultSettings()}
	s.init(env)
	return s
}

// Name implements Screen
func (s *Settings) Name() route.Screen { return route.ScreenSettings }

// View returns a snapshot for the client
func (s *Settings) View() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SettingsView{Settings: s.settings, Languages: domain.Languages, Themes: domain.Themes}
}

// Update sets one value. Unknown keys and invalid values change nothing.
func (s *Settings) Update(group, key, value string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.settings.Apply(group, key, value)
	if err != nil {
		return Result{}, err
	}
	s.settings = next
	return notice(domain.NoticeSuccess, "SettingsUpdated", nil), nil
}

// Logout only acknowledges; there is no real account
func (s *Settings) Logout() (Result, error) {
	return notice(domain.NoticeSuccess, "LoggedOut", nil), nil
}

// DeleteAccount is always refused in demo mode
func (s *Settings) DeleteAccount() (Result, error) {
	return Result{}, domain.ErrAccountDeletionBlocked
}

package screen

import (
	"context"
	"fmt"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

// Profile shows the viewing user's stats, history and badges
type Profile struct {
	view ProfileView
}

// ProfileView is the rendered profile screen
type ProfileView struct {
	User    domain.UserProfile   `json:"user"`
	Initial string               `json:"initial"`
	History []domain.HistoryItem `json:"history"`
	Badges  []domain.Badge       `json:"badges"`
}

// NewProfile loads the profile card and recent activity
func NewProfile(ctx context.Context, env Env) (*Profile, error) {
	src := env.Sources.Profiles
	user, err := src.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	history, err := src.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	badges, err := src.Badges(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading badges: %w", err)
	}
	return &Profile{view: ProfileView{User: user, Initial: user.Initial(), History: history, Badges: badges}}, nil
}

// Name returns the screen id
func (p *Profile) Name() route.Screen { return route.ScreenProfile }

// View implements Screen
func (p *Profile) View() any { return p.view }

// Close is a no-op; the screen owns no timers
func (p *Profile) Close() {}

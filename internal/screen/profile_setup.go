package screen

import (
	"slices"
	"strings"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

var (
	Sports = []string{"cricket", "horse-racing", "football", "basketball"}
	Teams  = []string{"india", "australia", "england", "south-africa", "new-zealand"}
)

// ProfileSetup collects a display name and favorites. Nothing is stored.
type ProfileSetup struct {
	base
	name    string
	sport   string
	team    string
	loading bool
}

// ProfileSetupView is the rendered profile setup screen
type ProfileSetupView struct {
	Name          string   `json:"name"`
	FavoriteSport string   `json:"favorite_sport,omitempty"`
	FavoriteTeam  string   `json:"favorite_team,omitempty"`
	Sports        []string `json:"sports"`
	Teams         []string `json:"teams,omitempty"`
	Loading       bool     `json:"loading"`
}

// NewProfileSetup starts an empty profile form
func NewProfileSetup(env Env) *ProfileSetup {
	p := &ProfileSetup{}
	p.init(env)
	return p
}

// Name identifies the screen
func (p *ProfileSetup) Name() route.Screen { return route.ScreenProfileSetup }

// View renders the screen state
func (p *ProfileSetup) View() any {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := ProfileSetupView{
		Name:          p.name,
		FavoriteSport: p.sport,
		FavoriteTeam:  p.team,
		Sports:        Sports,
		Loading:       p.loading,
	}
	// the team picker only exists for cricket
	if p.sport == "cricket" {
		v.Teams = Teams
	}
	return v
}

// Submit validates the form and continues home after a delay
func (p *ProfileSetup) Submit(name, sport, team string) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loading {
		return Result{}, domain.ErrRequestInFlight
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Result{}, domain.ErrNameRequired
	}
	if sport != "" && !slices.Contains(Sports, sport) {
		return Result{}, domain.ErrUnknownSport
	}
	if sport != "cricket" {
		team = ""
	}
	if team != "" && !slices.Contains(Teams, team) {
		return Result{}, domain.ErrUnknownOption
	}

	p.name, p.sport, p.team = name, sport, team
	p.loading = true
	p.after(p.env.Timing.ProfileSetup, func() func() {
		p.loading = false
		return func() {
			p.env.Hooks.notify(domain.NewNotice(domain.NoticeSuccess, "ProfileCreated", nil))
			p.env.Hooks.navigate(route.PathHome)
		}
	})
	return Result{}, nil
}

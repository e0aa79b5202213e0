package screen

import (
	"context"
	"fmt"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

// Racing lists the day's races
type Racing struct {
	races []RaceCard
}

// RaceCard is a rendered race
type RaceCard struct {
	domain.Race
	Tag    string `json:"tag"`
	Action string `json:"action"`
	Path   string `json:"path"`
}

// RacingView is the rendered racing screen
type RacingView struct {
	Venue string     `json:"venue,omitempty"`
	Races []RaceCard `json:"races"`
}

// NewRacing loads the race list
func NewRacing(ctx context.Context, env Env) (*Racing, error) {
	races, err := env.Sources.Matches.Races(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading races: %w", err)
	}
	r := &Racing{races: make([]RaceCard, 0, len(races))}
	for _, race := range races {
		r.races = append(r.races, RaceCard{
			Race:   race,
			Tag:    race.Tag(),
			Action: race.Action(),
			Path:   route.PathRacing + "/" + race.ID,
		})
	}
	return r, nil
}

// Name returns the screen id
func (r *Racing) Name() route.Screen { return route.ScreenRacing }

// View implements Screen
func (r *Racing) View() any {
	v := RacingView{Races: r.races}
	if len(r.races) > 0 {
		v.Venue = r.races[0].Venue
	}
	return v
}

// Close is a no-op; the screen owns no timers
func (r *Racing) Close() {}

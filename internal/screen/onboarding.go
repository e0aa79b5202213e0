package screen

import (
	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

// Onboarding walks through the intro slides
type Onboarding struct {
	base
	slides  []domain.Slide
	current int
}

// OnboardingView is the rendered onboarding screen
type OnboardingView struct {
	Slides  []domain.Slide `json:"slides"`
	Current int            `json:"current"`
	IsLast  bool           `json:"is_last"`
	Button  string         `json:"button"`
	CanSkip bool           `json:"can_skip"`
}

// NewOnboarding starts at the first slide
func NewOnboarding(env Env) *Onboarding {
	o := &Onboarding{slides: env.Sources.Content.Slides()}
	o.init(env)
	return o
}

// Name implements Screen
func (o *Onboarding) Name() route.Screen { return route.ScreenOnboarding }

// View returns a snapshot for the client
func (o *Onboarding) View() any {
	o.mu.Lock()
	defer o.mu.Unlock()

	last := o.isLast()
	button := "Next"
	if last {
		button = "Get Started"
	}
	return OnboardingView{
		Slides:  o.slides,
		Current: o.current,
		IsLast:  last,
		Button:  button,
		CanSkip: !last,
	}
}

// Next advances one slide, or leaves for login from the last one
func (o *Onboarding) Next() (Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.isLast() {
		return Result{Redirect: route.PathLogin}, nil
	}
	o.current++
	return Result{}, nil
}

// Skip leaves for login
func (o *Onboarding) Skip() (Result, error) {
	return Result{Redirect: route.PathLogin}, nil
}

func (o *Onboarding) isLast() bool {
	return o.current >= len(o.slides)-1
}

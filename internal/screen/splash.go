package screen

import "github.com/predict-win/internal/route"

const tagline = "Predict Ball-by-Ball. Win Real Rewards."

// Splash forwards to onboarding after a delay
type Splash struct {
	base
}

// SplashView is the rendered splash screen
type SplashView struct {
	Title   string `json:"title"`
	Tagline string `json:"tagline"`
}

// NewSplash mounts the splash screen and starts its timer
func NewSplash(env Env) *Splash {
	s := &Splash{}
	s.init(env)
	s.mu.Lock()
	s.after(env.Timing.Splash, func() func() {
		return func() { s.env.Hooks.navigate(route.PathOnboarding) }
	})
	s.mu.Unlock()
	return s
}

// Name returns the screen id
func (s *Splash) Name() route.Screen { return route.ScreenSplash }

// View implements Screen
func (s *Splash) View() any {
	return SplashView{Title: "Predict & Win", Tagline: tagline}
}

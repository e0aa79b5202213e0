package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/prediction"
	"github.com/predict-win/internal/route"
)

const (
	ballPoints     = 10
	rewardTarget   = 2000
	rewardTargetID = "₹100 reward"
)

// Home lists matches and hosts the ball-by-ball prediction widget
type Home struct {
	base
	user    domain.UserProfile
	matches []domain.MatchSummary
	trivia  domain.TriviaQuestion
	options []domain.PredictionChoice
	active  string
	machine *prediction.Machine
}

// MatchCard is a rendered match
type MatchCard struct {
	domain.MatchSummary
	Badge  string `json:"badge"`
	Action string `json:"action"`
	Open   bool   `json:"open"`
}

// HomeUser is the header of the home screen
type HomeUser struct {
	Name   string `json:"name"`
	Points int64  `json:"points"`
	Rank   int64  `json:"rank"`
	Avatar string `json:"avatar,omitempty"`
}

// RewardProgress tracks the points left to the next reward
type RewardProgress struct {
	Points    int64  `json:"points"`
	Target    int64  `json:"target"`
	Remaining int64  `json:"remaining"`
	Percent   int    `json:"percent"`
	Label     string `json:"label"`
}

// TriviaTeaser advertises the daily trivia
type TriviaTeaser struct {
	Question string `json:"question"`
	Points   int    `json:"points"`
}

// HomeView is the rendered home screen
type HomeView struct {
	User       HomeUser        `json:"user"`
	Live       []MatchCard     `json:"live"`
	Upcoming   []MatchCard     `json:"upcoming"`
	Prediction *HomePrediction `json:"prediction,omitempty"`
	Trivia     TriviaTeaser    `json:"trivia"`
	Reward     RewardProgress  `json:"reward"`
}

// HomePrediction is the open ball-by-ball widget
type HomePrediction struct {
	MatchID string `json:"match_id"`
	Title   string `json:"title"`
	PredictionView
}

// NewHome loads the match list and the user summary for the home screen
func NewHome(ctx context.Context, env Env) (*Home, error) {
	user, err := env.Sources.Profiles.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	matches, err := env.Sources.Matches.Matches(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading matches: %w", err)
	}

	h := &Home{
		user:    user,
		matches: matches,
		trivia:  env.Sources.Content.Trivia(),
		options: env.Sources.Content.BallOptions(),
	}
	h.init(env)
	return h, nil
}

// Name implements Screen
func (h *Home) Name() route.Screen { return route.ScreenHome }

// View returns a snapshot for the client
func (h *Home) View() any {
	h.mu.Lock()
	defer h.mu.Unlock()

	v := HomeView{
		User: HomeUser{
			Name:   firstName(h.user.Name),
			Points: h.user.Points,
			Rank:   h.user.Rank,
			Avatar: h.user.Avatar,
		},
		Live:     []MatchCard{},
		Upcoming: []MatchCard{},
		Trivia:   TriviaTeaser{Question: h.trivia.Question, Points: h.trivia.Points},
		Reward:   progress(h.user.Points),
	}
	for _, m := range h.matches {
		card := MatchCard{MatchSummary: m, Badge: m.Badge(), Action: m.Action(), Open: m.ID == h.active}
		switch m.Status {
		case domain.StatusLive:
			v.Live = append(v.Live, card)
		case domain.StatusUpcoming:
			v.Upcoming = append(v.Upcoming, card)
		}
	}
	if h.machine != nil {
		m, _ := h.find(h.active)
		v.Prediction = &HomePrediction{MatchID: m.ID, Title: m.Title, PredictionView: *predictionView(h.machine)}
	}
	return v
}

// ToggleMatch opens the prediction widget for a cricket match, or closes it
// when it is already open. Race cards lead to the race prediction screen.
func (h *Home) ToggleMatch(matchID string) (Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.find(matchID)
	if !ok {
		return Result{}, domain.ErrMatchNotFound
	}
	if m.Sport == domain.SportRacing && m.Race != nil {
		return Result{Redirect: fmt.Sprintf("%s/race%d", route.PathRacing, m.Race.Number)}, nil
	}

	wasOpen := h.active == matchID
	h.closeWidget()
	if !wasOpen {
		h.openWidget(m)
	}
	return Result{}, nil
}

// SelectPrediction picks a ball outcome in the open widget
func (h *Home) SelectPrediction(value string) (Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.machine == nil {
		return Result{}, domain.ErrScreenInactive
	}
	return Result{}, predictionError(h.machine.Select(value), domain.ErrSelectPrediction)
}

// SubmitPrediction locks in the ball outcome
func (h *Home) SubmitPrediction() (Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.machine == nil {
		return Result{}, domain.ErrScreenInactive
	}
	if err := h.machine.Submit(); err != nil {
		return Result{}, predictionError(err, domain.ErrSelectPrediction)
	}
	return notice(domain.NoticeSuccess, "PredictionSubmitted", nil), nil
}

// Close unmounts the widget with the screen
func (h *Home) Close() {
	h.base.Close()
	h.mu.Lock()
	h.closeWidget()
	h.mu.Unlock()
}

func (h *Home) openWidget(m domain.MatchSummary) {
	h.active = m.ID
	h.machine = prediction.New(prediction.Config{
		Options:     h.options,
		RevealDelay: h.env.Timing.Reveal,
		ResetDelay:  h.env.Timing.Reset,
		Outcome:     h.env.Outcome,
		Scheduler:   h.env.Scheduler,
	})

	hooks := h.env.Hooks
	matchID := m.ID
	h.machine.OnTransition(func(tr prediction.Transition) {
		hooks.update("prediction_update", map[string]any{"match_id": matchID, "snapshot": tr.Snapshot})
		switch tr.To {
		case prediction.StateSubmitted:
			hooks.publish(domain.EventPredictionSubmitted, map[string]any{
				"match_id": matchID, "selection": tr.Snapshot.Selection, "round": tr.Snapshot.Round,
			})
		case prediction.StateRevealed:
			hooks.publish(domain.EventPredictionRevealed, map[string]any{
				"match_id": matchID, "selection": tr.Snapshot.Selection,
				"outcome": tr.Snapshot.Outcome, "correct": tr.Snapshot.Correct,
			})
			if tr.Snapshot.Correct {
				hooks.notify(domain.NewNotice(domain.NoticeSuccess, "PredictionCorrect", map[string]any{"Points": ballPoints}))
			} else {
				hooks.notify(domain.NewNotice(domain.NoticeError, "PredictionWrong", nil))
			}
		}
	})
}

func (h *Home) closeWidget() {
	if h.machine != nil {
		h.machine.Close()
	}
	h.machine = nil
	h.active = ""
}

func (h *Home) find(id string) (domain.MatchSummary, bool) {
	for _, m := range h.matches {
		if m.ID == id {
			return m, true
		}
	}
	return domain.MatchSummary{}, false
}

func progress(points int64) RewardProgress {
	remaining := max(rewardTarget-points, 0)
	return RewardProgress{
		Points:    points,
		Target:    rewardTarget,
		Remaining: remaining,
		Percent:   percent(points, rewardTarget),
		Label:     fmt.Sprintf("%d points to %s", remaining, rewardTargetID),
	}
}

// percent is min(100, round(points/target*100))
func percent(points, target int64) int {
	if target <= 0 {
		return 100
	}
	p := (points*100 + target/2) / target
	return int(min(p, 100))
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return name
}

package screen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/prediction"
	"github.com/predict-win/internal/route"
)

// RacePrediction picks the winner of one race
type RacePrediction struct {
	base
	race    domain.Race
	horses  []domain.Horse
	machine *prediction.Machine
}

// HorseCard is a rendered runner
type HorseCard struct {
	domain.Horse
	OddsDisplay string `json:"odds_display"`
	WinAmount   string `json:"win_amount"`
	Selected    bool   `json:"selected"`
	Winner      bool   `json:"winner"`
}

// RacePredictionView is the rendered race prediction screen
type RacePredictionView struct {
	Race       domain.Race         `json:"race"`
	Tag        string              `json:"tag"`
	Horses     []HorseCard         `json:"horses"`
	Prediction prediction.Snapshot `json:"prediction"`
}

// NewRacePrediction mounts the screen for raceID. An empty or unknown id
// shows the default race.
func NewRacePrediction(ctx context.Context, env Env, raceID string) (*RacePrediction, error) {
	matches := env.Sources.Matches
	if raceID == "" {
		raceID = domain.DefaultRaceID
	}
	race, err := matches.Race(ctx, raceID)
	if errors.Is(err, domain.ErrRaceNotFound) && raceID != domain.DefaultRaceID {
		env.Logger.Debug("unknown race, showing default", "race_id", raceID)
		raceID = domain.DefaultRaceID
		race, err = matches.Race(ctx, raceID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading race %s: %w", raceID, err)
	}
	horses, err := matches.Horses(ctx, race.ID)
	if err != nil {
		return nil, fmt.Errorf("loading horses of %s: %w", race.ID, err)
	}

	options := make([]domain.PredictionChoice, len(horses))
	for i, h := range horses {
		options[i] = domain.PredictionChoice{Value: strconv.Itoa(h.ID), Label: h.Name, Probability: h.Odds}
	}

	r := &RacePrediction{race: race, horses: horses}
	r.init(env)
	r.machine = prediction.New(prediction.Config{
		Options:     options,
		RevealDelay: env.Timing.Reveal,
		ResetDelay:  env.Timing.Reset,
		Outcome:     env.Outcome,
		Scheduler:   env.Scheduler,
	})
	r.machine.OnTransition(r.onTransition)
	return r, nil
}

// Name implements Screen
func (r *RacePrediction) Name() route.Screen { return route.ScreenRacePrediction }

// View returns a snapshot for the client
func (r *RacePrediction) View() any {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.machine.Snapshot()
	v := RacePredictionView{
		Race:       r.race,
		Tag:        r.race.Tag(),
		Horses:     make([]HorseCard, len(r.horses)),
		Prediction: snap,
	}
	for i, h := range r.horses {
		id := strconv.Itoa(h.ID)
		v.Horses[i] = HorseCard{
			Horse:       h,
			OddsDisplay: h.OddsDisplay(),
			WinAmount:   h.WinAmount(),
			Selected:    snap.Selection == id,
			Winner:      snap.State == prediction.StateRevealed && snap.Outcome == id,
		}
	}
	return v
}

// Select picks a horse by id
func (r *RacePrediction) Select(value string) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Result{}, predictionError(r.machine.Select(value), domain.ErrSelectHorse)
}

// Submit locks in the pick. A submitted pick cannot be edited.
func (r *RacePrediction) Submit() (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.machine.Submit(); err != nil {
		return Result{}, predictionError(err, domain.ErrSelectHorse)
	}
	return notice(domain.NoticeSuccess, "RacePredictionSubmitted", nil), nil
}

// Close stops the reveal timers
func (r *RacePrediction) Close() {
	r.base.Close()
	r.machine.Close()
}

// onTransition runs without the screen lock; race and horses never change
// after mount.
func (r *RacePrediction) onTransition(tr prediction.Transition) {
	hooks := r.env.Hooks
	hooks.update("prediction_update", map[string]any{"race_id": r.race.ID, "snapshot": tr.Snapshot})

	switch tr.To {
	case prediction.StateSubmitted:
		hooks.publish(domain.EventPredictionSubmitted, map[string]any{
			"race_id": r.race.ID, "horse_id": tr.Snapshot.Selection,
		})
	case prediction.StateRevealed:
		hooks.publish(domain.EventPredictionRevealed, map[string]any{
			"race_id": r.race.ID, "horse_id": tr.Snapshot.Selection,
			"winner_id": tr.Snapshot.Outcome, "correct": tr.Snapshot.Correct,
		})
		winner := r.horse(tr.Snapshot.Outcome)
		if tr.Snapshot.Correct {
			hooks.notify(domain.NewNotice(domain.NoticeSuccess, "RaceWon", map[string]any{
				"Horse": winner.Name, "Points": int(math.Round(100 * winner.Odds)),
			}))
		} else {
			hooks.notify(domain.NewNotice(domain.NoticeError, "RaceLost", map[string]any{"Horse": winner.Name}))
		}
	}
}

func (r *RacePrediction) horse(id string) domain.Horse {
	for _, h := range r.horses {
		if strconv.Itoa(h.ID) == id {
			return h
		}
	}
	return domain.Horse{}
}

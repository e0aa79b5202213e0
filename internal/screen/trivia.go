package screen

import (
	"strconv"
	"sync"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/prediction"
	"github.com/predict-win/internal/route"
	"github.com/predict-win/internal/timer"
)

// Trivia is the daily question dialog. It belongs to the session rather
// than a screen, so its answer survives navigation. There is one round
// per day and it never resets.
type Trivia struct {
	mu       sync.Mutex
	question domain.TriviaQuestion
	open     bool
	machine  *prediction.Machine
}

// TriviaView is the rendered dialog
type TriviaView struct {
	Open     bool                      `json:"open"`
	Question string                    `json:"question"`
	Options  []domain.PredictionChoice `json:"options"`
	Points   int                       `json:"points"`
	Snapshot prediction.Snapshot       `json:"snapshot"`
	Answered bool                      `json:"answered"`
}

// NewTrivia prepares the dialog for q, closed
func NewTrivia(q domain.TriviaQuestion, sched timer.Scheduler) *Trivia {
	options := make([]domain.PredictionChoice, len(q.Options))
	for i, o := range q.Options {
		options[i] = domain.PredictionChoice{Value: strconv.Itoa(i), Label: o}
	}
	return &Trivia{
		question: q,
		machine: prediction.New(prediction.Config{
			Options:     options,
			RevealDelay: 0,
			ResetDelay:  prediction.NoReset,
			Outcome:     prediction.FixedOutcome(strconv.Itoa(q.CorrectAnswer)),
			Scheduler:   sched,
		}),
	}
}

// View returns a snapshot for the client
func (t *Trivia) View() TriviaView {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.machine.Snapshot()
	return TriviaView{
		Open:     t.open,
		Question: t.question.Question,
		Options:  t.machine.Options(),
		Points:   t.question.Points,
		Snapshot: snap,
		Answered: snap.State == prediction.StateRevealed,
	}
}

// IsOpen reports whether the dialog is shown
func (t *Trivia) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// Open shows the dialog
func (t *Trivia) Open() (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = true
	return Result{}, nil
}

// CloseDialog hides the dialog, keeping any answer
func (t *Trivia) CloseDialog() (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = false
	return Result{}, nil
}

// Select picks an answer by option index
func (t *Trivia) Select(option string) (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return Result{}, domain.ErrScreenInactive
	}
	return Result{}, predictionError(t.machine.Select(option), domain.ErrSelectAnswer)
}

// Submit reveals the answer immediately
func (t *Trivia) Submit() (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return Result{}, domain.ErrScreenInactive
	}
	if err := t.machine.Submit(); err != nil {
		return Result{}, predictionError(err, domain.ErrSelectAnswer)
	}
	if t.machine.Snapshot().Correct {
		return notice(domain.NoticeSuccess, "TriviaCorrect", map[string]any{"Points": t.question.Points}), nil
	}
	return notice(domain.NoticeError, "TriviaWrong", nil), nil
}

// Continue closes the dialog and goes home
func (t *Trivia) Continue() (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = false
	return Result{Redirect: route.PathHome}, nil
}

// Close releases the machine when the session ends
func (t *Trivia) Close() {
	t.machine.Close()
}

package screen

import (
	"context"
	"fmt"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

// Stats periods and history tabs
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"

	HistoryAll     = "all"
	HistoryCorrect = "correct"
)

// Stats shows prediction analytics
type Stats struct {
	base
	stats   domain.Stats
	period  string
	history string
}

// StatsView is the rendered stats screen
type StatsView struct {
	Period      string                    `json:"period"`
	HistoryTab  string                    `json:"history_tab"`
	Summary     domain.StatsSummary       `json:"summary"`
	Series      []domain.SeriesPoint      `json:"series"`
	Sports      []domain.SportBreakdown   `json:"sports"`
	Predictions []domain.PredictionRecord `json:"predictions"`
}

// NewStats loads the user statistics
func NewStats(ctx context.Context, env Env) (*Stats, error) {
	stats, err := env.Sources.Profiles.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stats: %w", err)
	}
	s := &Stats{stats: stats, period: PeriodWeek, history: HistoryAll}
	s.init(env)
	return s, nil
}

// Name identifies the screen
func (s *Stats) Name() route.Screen { return route.ScreenStats }

// View renders the screen state
func (s *Stats) View() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := StatsView{
		Period:      s.period,
		HistoryTab:  s.history,
		Summary:     s.stats.Summary,
		Series:      s.stats.Monthly,
		Sports:      s.stats.Sports,
		Predictions: []domain.PredictionRecord{},
	}
	// week shows the daily series, longer periods the weekly one
	if s.period == PeriodWeek {
		v.Series = s.stats.Weekly
	}
	for _, p := range s.stats.Predictions {
		if s.history == HistoryAll || p.IsCorrect {
			v.Predictions = append(v.Predictions, p)
		}
	}
	return v
}

// SetPeriod switches the chart period
func (s *Stats) SetPeriod(period string) (Result, error) {
	switch period {
	case PeriodWeek, PeriodMonth, PeriodYear:
	default:
		return Result{}, domain.ErrUnknownPeriod
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.period = period
	return Result{}, nil
}

// SetHistoryTab switches between all and correct-only predictions
func (s *Stats) SetHistoryTab(tab string) (Result, error) {
	if tab != HistoryAll && tab != HistoryCorrect {
		return Result{}, domain.ErrUnknownTab
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = tab
	return Result{}, nil
}

package domain

// StatsSummary is the header block of the stats screen
type StatsSummary struct {
	TotalPredictions   int   `json:"total_predictions"`
	CorrectPredictions int   `json:"correct_predictions"`
	TotalPoints        int64 `json:"total_points"`
	Accuracy           int   `json:"accuracy"`
	BestStreak         int   `json:"best_streak"`
	CurrentStreak      int   `json:"current_streak"`
}

// SeriesPoint is one bar or point of a chart
type SeriesPoint struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// SportBreakdown is the per-sport accuracy chart row
type SportBreakdown struct {
	Sport       string `json:"sport"`
	Accuracy    int    `json:"accuracy"`
	Predictions int    `json:"predictions"`
}

// PredictionRecord is a past prediction shown in the history tab
type PredictionRecord struct {
	ID         string `json:"id"`
	Match      string `json:"match"`
	Question   string `json:"question"`
	Prediction string `json:"prediction"`
	Result     string `json:"result"`
	IsCorrect  bool   `json:"is_correct"`
	Points     int    `json:"points"`
	Date       string `json:"date"`
}

// Stats bundles the stats screen data
type Stats struct {
	Summary     StatsSummary       `json:"summary"`
	Weekly      []SeriesPoint      `json:"weekly"`
	Monthly     []SeriesPoint      `json:"monthly"`
	Sports      []SportBreakdown   `json:"sports"`
	Predictions []PredictionRecord `json:"predictions"`
}

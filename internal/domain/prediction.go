package domain

// PredictionChoice is one selectable outcome of a prediction round
type PredictionChoice struct {
	Value       string  `json:"value"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// TriviaQuestion is the daily trivia question
type TriviaQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Points        int      `json:"points"`
}

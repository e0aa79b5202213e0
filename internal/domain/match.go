package domain

import "fmt"

// Sport identifies the kind of event a card represents
type Sport string

const (
	SportCricket Sport = "cricket"
	SportRacing  Sport = "racing"
)

// MatchStatus represents where a match or race is in its lifecycle
type MatchStatus string

const (
	StatusLive      MatchStatus = "live"
	StatusUpcoming  MatchStatus = "upcoming"
	StatusCompleted MatchStatus = "completed"
	StatusLocked    MatchStatus = "locked"
)

// TeamInfo holds the two sides of a cricket match
type TeamInfo struct {
	AName  string `json:"a_name"`
	BName  string `json:"b_name"`
	ALogo  string `json:"a_logo,omitempty"`
	BLogo  string `json:"b_logo,omitempty"`
	AScore string `json:"a_score,omitempty"`
	BScore string `json:"b_score,omitempty"`
}

// RaceInfo holds race metadata shown on a match card
type RaceInfo struct {
	Number int    `json:"number"`
	Venue  string `json:"venue"`
}

// MatchSummary is a card on the home screen
type MatchSummary struct {
	ID        string      `json:"id"`
	Sport     Sport       `json:"sport"`
	Title     string      `json:"title"`
	Status    MatchStatus `json:"status"`
	Time      string      `json:"time"`
	Countdown string      `json:"countdown,omitempty"`
	Progress  string      `json:"progress,omitempty"`
	Teams     *TeamInfo   `json:"teams,omitempty"`
	Race      *RaceInfo   `json:"race,omitempty"`
}

// Badge returns the status badge text of the card
func (m MatchSummary) Badge() string {
	switch m.Status {
	case StatusLive:
		return "LIVE"
	case StatusUpcoming:
		if m.Countdown != "" {
			return fmt.Sprintf("Starts in %s", m.Countdown)
		}
		return "Upcoming"
	default:
		return ""
	}
}

// Action returns the call to action of the card
func (m MatchSummary) Action() string {
	switch m.Status {
	case StatusLive:
		return "Play Now"
	case StatusUpcoming:
		return "Pre-Match Quiz"
	default:
		return "View Results"
	}
}

// DefaultRaceID is shown when a race id is absent or unknown
const DefaultRaceID = "race3"

// Race is a horse race on the racing screen
type Race struct {
	ID          string      `json:"id"`
	Number      int         `json:"number"`
	Name        string      `json:"name"`
	Venue       string      `json:"venue"`
	Time        string      `json:"time"`
	Status      MatchStatus `json:"status"`
	TimeToStart string      `json:"time_to_start,omitempty"`
}

// Tag returns the status tag shown next to the race
func (r Race) Tag() string {
	switch r.Status {
	case StatusLive:
		return "LIVE"
	case StatusLocked:
		return "LOCKED"
	case StatusCompleted:
		return "COMPLETED"
	case StatusUpcoming:
		return r.TimeToStart
	default:
		return ""
	}
}

// Action returns the race call to action
func (r Race) Action() string {
	switch r.Status {
	case StatusLive:
		return "Predict Now"
	case StatusUpcoming:
		return "View Details"
	case StatusCompleted:
		return "View Results"
	case StatusLocked:
		return "Locked"
	default:
		return ""
	}
}

// HorseTag marks notable runners
type HorseTag string

const (
	HorseFavorite HorseTag = "favorite"
	HorseUnderdog HorseTag = "underdog"
)

// Horse is a runner in a race
type Horse struct {
	ID     int      `json:"id"`
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Jockey string   `json:"jockey"`
	Odds   float64  `json:"odds"`
	Tag    HorseTag `json:"tag,omitempty"`
}

// OddsDisplay formats odds as "3.5x"
func (h Horse) OddsDisplay() string {
	return fmt.Sprintf("%.1fx", h.Odds)
}

// WinAmount formats the points a correct pick would show
func (h Horse) WinAmount() string {
	return fmt.Sprintf("%.0f pts", 100*h.Odds)
}

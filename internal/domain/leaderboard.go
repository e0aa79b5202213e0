package domain

// Scope selects which leaderboard is shown
type Scope string

const (
	ScopeToday  Scope = "today"
	ScopeWeekly Scope = "weekly"
	ScopeGlobal Scope = "global"
)

// Scopes lists the leaderboard tabs in display order
var Scopes = []Scope{ScopeToday, ScopeWeekly, ScopeGlobal}

// ParseScope validates a scope name
func ParseScope(s string) (Scope, error) {
	for _, scope := range Scopes {
		if string(scope) == s {
			return scope, nil
		}
	}
	return "", ErrUnknownScope
}

// LeaderboardEntry represents a single entry in the leaderboard
type LeaderboardEntry struct {
	ID            string `json:"id"`
	Rank          int64  `json:"rank"`
	Username      string `json:"username"`
	Points        int64  `json:"points"`
	Avatar        string `json:"avatar,omitempty"`
	IsCurrentUser bool   `json:"is_current_user,omitempty"`
}

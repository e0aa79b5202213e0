package domain

// UserProfile holds read-only mock values for the viewing user
type UserProfile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	Points        int64  `json:"points"`
	Rank          int64  `json:"rank"`
	Accuracy      int    `json:"accuracy"`
	Matches       int    `json:"matches"`
	NextMilestone int64  `json:"next_milestone"`
	Joined        string `json:"joined,omitempty"`
}

// Initial returns the first letter of the name for avatar fallbacks
func (u UserProfile) Initial() string {
	for _, r := range u.Name {
		return string(r)
	}
	return ""
}

// HistoryItem is a past match on the profile screen
type HistoryItem struct {
	ID      string `json:"id"`
	Match   string `json:"match"`
	Date    string `json:"date"`
	Points  int    `json:"points"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// Badge is an achievement on the profile screen
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

package domain

// Category groups notifications into tabs
type Category string

const (
	CategoryMatch  Category = "match"
	CategoryReward Category = "reward"
	CategorySystem Category = "system"
)

// Notification is an entry on the notifications screen
type Notification struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Time     string   `json:"time"`
	IsRead   bool     `json:"is_read"`
}

// UnreadCount counts notifications that have not been read
func UnreadCount(ns []Notification) int {
	count := 0
	for _, n := range ns {
		if !n.IsRead {
			count++
		}
	}
	return count
}

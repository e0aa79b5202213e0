package domain

// Slide is an onboarding slide
type Slide struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// FAQItem is a question on the help screen
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// MenuItem is an entry of the More screen
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}

package screen

import (
	"strings"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

// Help shows the FAQ and a support form
type Help struct {
	base
	faq   []domain.FAQItem
	query string
}

// HelpView is the rendered help screen
type HelpView struct {
	Query string           `json:"query"`
	FAQ   []domain.FAQItem `json:"faq"`
}

// NewHelp opens the help centre with the full FAQ
func NewHelp(env Env) *Help {
	h := &Help{faq: env.Sources.Content.FAQ()}
	h.init(env)
	return h
}

// Name identifies the screen
func (h *Help) Name() route.Screen { return route.ScreenHelp }

// View renders the screen state
func (h *Help) View() any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HelpView{Query: h.query, FAQ: filterFAQ(h.faq, h.query)}
}

// Search filters the FAQ by a case-insensitive substring of the question
// or answer. An empty query shows everything.
func (h *Help) Search(query string) (Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.query = strings.TrimSpace(query)
	if h.query == "" {
		return Result{}, nil
	}
	return notice(domain.NoticeInfo, "SearchingFor", map[string]any{"Query": h.query}), nil
}

// SendSupport files a support ticket
func (h *Help) SendSupport(message string) (Result, error) {
	if strings.TrimSpace(message) == "" {
		return Result{}, domain.ErrEmptySupportMessage
	}
	h.env.Hooks.publish(domain.EventSupportTicket, map[string]any{"message": message})
	return notice(domain.NoticeSuccess, "SupportMessageSent", nil), nil
}

func filterFAQ(items []domain.FAQItem, query string) []domain.FAQItem {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := []domain.FAQItem{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Question), q) || strings.Contains(strings.ToLower(item.Answer), q) {
			out = append(out, item)
		}
	}
	return out
}

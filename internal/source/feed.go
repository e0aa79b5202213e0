package source

import (
	"context"
	"sync"

	"github.com/predict-win/internal/domain"
)

const maxPushed = 50

// NotificationFeed overlays pushed notifications on a base source.
// Pushed entries come first, newest first.
type NotificationFeed struct {
	base NotificationSource

	mu     sync.RWMutex
	pushed []domain.Notification
}

// NewNotificationFeed creates a feed over base
func NewNotificationFeed(base NotificationSource) *NotificationFeed {
	return &NotificationFeed{base: base}
}

// Push adds a notification. A notification with an id already pushed
// replaces the earlier one.
func (f *NotificationFeed) Push(n domain.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := make([]domain.Notification, 0, len(f.pushed)+1)
	kept = append(kept, n)
	for _, p := range f.pushed {
		if p.ID != n.ID {
			kept = append(kept, p)
		}
	}
	if len(kept) > maxPushed {
		kept = kept[:maxPushed]
	}
	f.pushed = kept
}

// Notifications returns pushed entries followed by the base list
func (f *NotificationFeed) Notifications(ctx context.Context) ([]domain.Notification, error) {
	base, err := f.base.Notifications(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	seen := make(map[string]bool, len(f.pushed))
	out := make([]domain.Notification, 0, len(f.pushed)+len(base))
	for _, p := range f.pushed {
		seen[p.ID] = true
		out = append(out, p)
	}
	for _, n := range base {
		if !seen[n.ID] {
			out = append(out, n)
		}
	}
	return out, nil
}

package screen

import (
	"context"
	"fmt"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

// Notification tabs
const (
	TabAll    = "all"
	TabMatch  = "match"
	TabReward = "reward"
)

// Notifications lists notifications. Read flags live only on this screen.
type Notifications struct {
	base
	items []domain.Notification
	tab   string
}

// NotificationsView is the rendered notifications screen
type NotificationsView struct {
	Tab    string                `json:"tab"`
	Tabs   []string              `json:"tabs"`
	Unread int                   `json:"unread"`
	Items  []domain.Notification `json:"items"`
}

// NewNotifications loads the inbox on the "all" tab
func NewNotifications(ctx context.Context, env Env) (*Notifications, error) {
	items, err := env.Sources.Notifications.Notifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading notifications: %w", err)
	}
	n := &Notifications{items: items, tab: TabAll}
	n.init(env)
	return n, nil
}

// Name identifies the screen
func (n *Notifications) Name() route.Screen { return route.ScreenNotifications }

// View renders the screen state
func (n *Notifications) View() any {
	n.mu.Lock()
	defer n.mu.Unlock()

	v := NotificationsView{
		Tab:    n.tab,
		Tabs:   []string{TabAll, TabMatch, TabReward},
		Unread: domain.UnreadCount(n.items),
		Items:  []domain.Notification{},
	}
	for _, item := range n.items {
		if n.tab == TabAll || string(item.Category) == n.tab {
			v.Items = append(v.Items, item)
		}
	}
	return v
}

// Unread returns the number of unread notifications
func (n *Notifications) Unread() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return domain.UnreadCount(n.items)
}

// MarkRead flags a single notification as read
func (n *Notifications) MarkRead(id string) (Result, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].IsRead = true
			return Result{}, nil
		}
	}
	return Result{}, domain.ErrNotificationNotFound
}

// MarkAllRead flags every notification as read
func (n *Notifications) MarkAllRead() (Result, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := range n.items {
		n.items[i].IsRead = true
	}
	return notice(domain.NoticeSuccess, "AllNotificationsRead", nil), nil
}

// SetTab filters the list by category
func (n *Notifications) SetTab(tab string) (Result, error) {
	switch tab {
	case TabAll, TabMatch, TabReward:
	default:
		return Result{}, domain.ErrUnknownTab
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tab = tab
	return Result{}, nil
}

// Deliver adds a notification pushed while the screen is open
func (n *Notifications) Deliver(item domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := range n.items {
		if n.items[i].ID == item.ID {
			n.items[i] = item
			return
		}
	}
	n.items = append([]domain.Notification{item}, n.items...)
}

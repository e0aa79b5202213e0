package service

import (
	"context"

	"github.com/predict-win/internal/domain"
)

// Live message types
const (
	MessageScreenChanged    = "screen_changed"
	MessagePredictionUpdate = "prediction_update"
	MessageNotice           = "notice"
	MessageNotification     = "notification"
)

// Pusher delivers live updates to the subscribers of a session
type Pusher interface {
	SendToSession(sessionID, msgType string, data any)
}

// Publisher records activity events
type Publisher interface {
	Publish(ctx context.Context, event domain.ActivityEvent) error
}

// NotificationSink receives notifications from the live feed
type NotificationSink interface {
	Push(n domain.Notification)
}

type nopPusher struct{}

func (nopPusher) SendToSession(string, string, any) {}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.ActivityEvent) error { return nil }

package domain

import "time"

// NoticeLevel is the severity of a transient notice
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a toast-like message. Text is filled in by the localizer.
type Notice struct {
	Level     NoticeLevel    `json:"level"`
	MessageID string         `json:"message_id"`
	Data      map[string]any `json:"data,omitempty"`
	Text      string         `json:"text"`
}

// NewNotice creates a notice for an i18n message id
func NewNotice(level NoticeLevel, id string, data map[string]any) *Notice {
	return &Notice{Level: level, MessageID: id, Data: data}
}

// ActivityEvent types
const (
	EventPredictionSubmitted = "prediction_submitted"
	EventPredictionRevealed  = "prediction_revealed"
	EventRewardClaimed       = "reward_claimed"
	EventSupportTicket       = "support_ticket"
	EventSessionCreated      = "session_created"
)

// ActivityEvent is published to the activity topic. It is never read back.
type ActivityEvent struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	SessionID string         `json:"session_id"`
	Screen    string         `json:"screen"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

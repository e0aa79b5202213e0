package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Message types sent by clients
const (
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
	MessageTypeError       = "error"
)

// Message represents a WebSocket message
type Message struct {
	Type      string    `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and routes session updates to
// the clients subscribed to that session
type Hub struct {
	// Subscribed clients by session ID
	sessions map[string]map[*Client]bool

	// All connected clients
	allClients map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	outbound    chan *Message
	subscribe   chan *subscriptionRequest
	unsubscribe chan *subscriptionRequest

	mu sync.RWMutex

	sent    atomic.Int64
	dropped atomic.Int64

	allowedOrigins []string
	logger         *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

type subscriptionRequest struct {
	client    *Client
	sessionID string
}

// NewHub creates a new Hub. An empty allowedOrigins accepts any origin.
func NewHub(allowedOrigins []string, logger *slog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		sessions:       make(map[string]map[*Client]bool),
		allClients:     make(map[*Client]bool),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		outbound:       make(chan *Message, 256),
		subscribe:      make(chan *subscriptionRequest, 64),
		unsubscribe:    make(chan *subscriptionRequest, 64),
		allowedOrigins: allowedOrigins,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	h.logger.Info("WebSocket hub started")
	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info("WebSocket hub stopping")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.allClients[client] = true
			h.mu.Unlock()
			h.logger.Debug("client registered", "client_id", client.id)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.allClients[client]; ok {
				delete(h.allClients, client)
				for sessionID, clients := range h.sessions {
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.sessions, sessionID)
					}
				}
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("client unregistered", "client_id", client.id)

		case req := <-h.subscribe:
			h.mu.Lock()
			if _, ok := h.allClients[req.client]; ok {
				if _, ok := h.sessions[req.sessionID]; !ok {
					h.sessions[req.sessionID] = make(map[*Client]bool)
				}
				h.sessions[req.sessionID][req.client] = true
			}
			h.mu.Unlock()
			h.logger.Debug("client subscribed", "client_id", req.client.id, "session_id", req.sessionID)

		case req := <-h.unsubscribe:
			h.mu.Lock()
			if clients, ok := h.sessions[req.sessionID]; ok {
				delete(clients, req.client)
				if len(clients) == 0 {
					delete(h.sessions, req.sessionID)
				}
			}
			h.mu.Unlock()
			h.logger.Debug("client unsubscribed", "client_id", req.client.id, "session_id", req.sessionID)

		case message := <-h.outbound:
			h.deliver(message)
		}
	}
}

// Stop stops the hub
func (h *Hub) Stop() {
	h.cancel()
}

// deliver sends a message to the clients subscribed to its session
func (h *Hub) deliver(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.sessions[message.SessionID]
	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal message", "error", err, "type", message.Type)
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
			h.sent.Inc()
		default:
			h.dropped.Inc()
			h.logger.Warn("client buffer full, skipping", "client_id", client.id)
		}
	}
}

// SendToSession queues a message for the subscribers of a session. It
// never blocks; messages are dropped when the hub is saturated.
func (h *Hub) SendToSession(sessionID, msgType string, data any) {
	message := &Message{
		Type:      msgType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now(),
	}

	select {
	case h.outbound <- message:
	default:
		h.dropped.Inc()
		h.logger.Warn("outbound channel full, dropping message", "session_id", sessionID, "type", msgType)
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Subscribe attaches a client to a session's updates
func (h *Hub) Subscribe(client *Client, sessionID string) {
	h.subscribe <- &subscriptionRequest{client: client, sessionID: sessionID}
}

// Unsubscribe detaches a client from a session's updates
func (h *Hub) Unsubscribe(client *Client, sessionID string) {
	h.unsubscribe <- &subscriptionRequest{client: client, sessionID: sessionID}
}

// GetSubscriberCount returns the number of subscribers for a session
func (h *Hub) GetSubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// GetTotalConnections returns the total number of connected clients
func (h *Hub) GetTotalConnections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.allClients)
}

// HubStats reports delivery counters
type HubStats struct {
	Connections int   `json:"connections"`
	Sent        int64 `json:"sent"`
	Dropped     int64 `json:"dropped"`
}

// Stats returns the hub's counters
func (h *Hub) Stats() HubStats {
	return HubStats{
		Connections: h.GetTotalConnections(),
		Sent:        h.sent.Load(),
		Dropped:     h.dropped.Load(),
	}
}

func (h *Hub) originAllowed(origin string) bool {
	if len(h.allowedOrigins) == 0 || origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected clients and fans notifications out to them
type Hub struct {
	// Connected clients
	clients map[*Client]bool

	// Channel for outbound notifications
	broadcast chan *Notification

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to the clients set
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Notification represents an ephemeral message pushed to connected clients
type Notification struct {
	// Type of notification: "upcoming-meeting", "new-meeting"
	Type string `json:"type"`

	// Human-readable notification text
	Message string `json:"message"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Notification),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.Subscribe(client)

		case client := <-h.unregister:
			h.Unsubscribe(client)

		case notification := <-h.broadcast:
			h.deliver(notification)
		}
	}
}

// Subscribe adds a client to the hub. Subscribing an already present
// client is a no-op.
func (h *Hub) Subscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client] {
		return
	}
	h.clients[client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Int("clientCount", len(h.clients)).
		Msg("Client subscribed")
}

// Unsubscribe removes a client from the hub and closes its send channel.
// Unsubscribing an absent client is a no-op.
func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	h.logger.Info().
		Int64("userID", client.userID).
		Int("clientCount", len(h.clients)).
		Msg("Client unsubscribed")
}

// Broadcast queues a notification for delivery to every connected client
func (h *Hub) Broadcast(notification *Notification) {
	h.broadcast <- notification
}

// deliver serializes a notification once and sends it to every open client.
// Closed clients are skipped, not removed; removal happens on the
// connection-close path. A slow or full client never blocks the others.
func (h *Hub) deliver(notification *Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		h.logger.Debug().
			Str("type", notification.Type).
			Msg("No clients connected for broadcast")
		return
	}

	data, err := json.Marshal(notification)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("type", notification.Type).
			Msg("Failed to marshal notification for broadcast")
		return
	}

	delivered := 0
	for client := range h.clients {
		if !client.isOpen() {
			continue
		}
		select {
		case client.send <- data:
			delivered++
		default:
			// Client's send buffer is full, skip it for this notification
			h.logger.Warn().
				Int64("userID", client.userID).
				Msg("Skipped slow client during broadcast")
		}
	}

	h.logger.Debug().
		Str("type", notification.Type).
		Int("clientCount", delivered).
		Msg("Notification broadcasted")
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/welldanyogia/inboxzero/internal/models"
)

// EventType names a live update pushed to clients
type EventType string

const (
	EventEmailUpdated  EventType = "email_updated"
	EventEmailReceived EventType = "email_received"
)

// Event is the JSON frame written to a client
type Event struct {
	Type  EventType     `json:"type"`
	Email *models.Email `json:"email"`
}

type broadcastMessage struct {
	userID  uint
	message []byte
}

// Hub maintains the set of active clients per user and fans events out to them
type Hub struct {
	// Connected clients: userID -> set of clients
	clients map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMessage

	// Closed when Run returns
	done chan struct{}

	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMessage, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub's main loop. It returns when ctx is cancelled, closing every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for userID, set := range h.clients {
				for client := range set {
					close(client.send)
				}
				delete(h.clients, userID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()
			h.logger.Debug("client registered",
				slog.Uint64("user_id", uint64(client.userID)),
				slog.Int("connections", h.ClientCount(client.userID)))

		case client := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.clients[client.userID]; ok && set[client] {
				delete(set, client)
				close(client.send)
				if len(set) == 0 {
					delete(h.clients, client.userID)
				}
			}
			h.mu.Unlock()
			h.logger.Debug("client unregistered",
				slog.Uint64("user_id", uint64(client.userID)),
				slog.Int("connections", h.ClientCount(client.userID)))

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients[msg.userID] {
				select {
				case client.send <- msg.message:
				default:
					// Client buffer full, skip
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of live connections for userID
func (h *Hub) ClientCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// NotifyEmail queues an event for every connection of userID.
// It never blocks: when the queue is full the event is dropped.
func (h *Hub) NotifyEmail(userID uint, event string, email *models.Email) {
	data, err := json.Marshal(Event{Type: EventType(event), Email: email})
	if err != nil {
		h.logger.Error("failed to marshal event", slog.Any("error", err))
		return
	}

	select {
	case h.broadcast <- &broadcastMessage{userID: userID, message: data}:
	default:
		h.logger.Warn("event queue full, dropping event",
			slog.String("event", event),
			slog.Uint64("user_id", uint64(userID)))
	}
}

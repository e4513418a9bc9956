package websocket

import (
	"sync"

	"homework-ai-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub tracks the live chat connections. The chat channel carries no
// conversation state, so the hub is a plain registry used for connection
// accounting and teardown.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Chat client registered", map[string]interface{}{
				"client_id": client.ID,
				"user_id":   client.UserID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				h.logger.Info("Hub", "Chat client unregistered", map[string]interface{}{
					"client_id": client.ID,
				})
			}
			h.mu.Unlock()
		}
	}
}

// Count reports the number of live chat connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs wires an upgraded connection into the hub and runs its pumps.
// Blocks until the connection closes.
func ServeWs(hub *Hub, c *websocket.Conn, userID string, relay RelayFunc, relayTimeout time.Duration) {
	client := &Client{
		Hub:          hub,
		Conn:         c,
		ID:           uuid.New(),
		UserID:       userID,
		relay:        relay,
		relayTimeout: relayTimeout,
		Send:         make(chan []byte, 256),
		done:         make(chan struct{}),
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in the handler goroutine
}

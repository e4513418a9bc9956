package websocket

import (
	"context"
	"encoding/json"
	"time"

	"homework-ai-be/internal/constant"
	"homework-ai-be/internal/dto"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// RelayFunc forwards one free-text message to the completion API and
// returns its reply. Each inbound message gets exactly one call.
type RelayFunc func(ctx context.Context, message string) (string, error)

// Client is a middleman between one websocket connection and the relay.
// Messages are relayed independently, each in its own goroutine; replies go
// out through Send in whatever order the relay calls complete.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	ID     uuid.UUID
	UserID string

	relay        RelayFunc
	relayTimeout time.Duration

	// Buffered channel of outbound messages.
	Send chan []byte

	// done is closed when the connection goes away; in-flight relay
	// goroutines drop their replies instead of blocking forever.
	done chan struct{}
}

// readPump pumps messages from the websocket connection into relay calls.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		close(c.done)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("ChatClient", "Read error", map[string]interface{}{
					"client_id": c.ID,
					"error":     err.Error(),
				})
			}
			break
		}
		go c.handleMessage(string(message))
	}
}

// handleMessage performs one relay round trip and queues the single reply.
func (c *Client) handleMessage(message string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.relayTimeout)
	defer cancel()

	reply := dto.ChatReply{Type: dto.ChatReplyTypeAI}
	content, err := c.relay(ctx, message)
	if err != nil {
		reply.Type = dto.ChatReplyTypeError
		reply.Content = constant.MsgChatRelayFailed
	} else {
		reply.Content = content
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return
	}

	select {
	case c.Send <- data:
	case <-c.done:
		// Connection closed while the relay was outstanding.
	}
}

// writePump pumps queued replies out to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"homework-ai-be/internal/constant"
	"homework-ai-be/internal/dto"
	"homework-ai-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(relay RelayFunc) *Client {
	return &Client{
		ID:           uuid.New(),
		UserID:       "user-1",
		relay:        relay,
		relayTimeout: time.Second,
		Send:         make(chan []byte, 8),
		done:         make(chan struct{}),
	}
}

func receiveReply(t *testing.T, c *Client) dto.ChatReply {
	t.Helper()
	select {
	case data := <-c.Send:
		var reply dto.ChatReply
		require.NoError(t, json.Unmarshal(data, &reply))
		return reply
	case <-time.After(time.Second):
		t.Fatal("no reply queued")
		return dto.ChatReply{}
	}
}

func TestHandleMessage(t *testing.T) {
	t.Run("successful relay queues an ai reply", func(t *testing.T) {
		c := newTestClient(func(ctx context.Context, message string) (string, error) {
			assert.Equal(t, "hello", message)
			return "hi there", nil
		})

		c.handleMessage("hello")

		reply := receiveReply(t, c)
		assert.Equal(t, dto.ChatReplyTypeAI, reply.Type)
		assert.Equal(t, "hi there", reply.Content)
	})

	t.Run("failed relay queues the fixed error reply", func(t *testing.T) {
		c := newTestClient(func(ctx context.Context, message string) (string, error) {
			return "", errors.New("upstream down")
		})

		c.handleMessage("hello")

		reply := receiveReply(t, c)
		assert.Equal(t, dto.ChatReplyTypeError, reply.Type)
		assert.Equal(t, constant.MsgChatRelayFailed, reply.Content)
	})

	t.Run("replies go out in relay completion order", func(t *testing.T) {
		slowRelease := make(chan struct{})
		c := newTestClient(func(ctx context.Context, message string) (string, error) {
			if message == "slow" {
				<-slowRelease
			}
			return "reply to " + message, nil
		})

		go c.handleMessage("slow")
		go c.handleMessage("fast")

		first := receiveReply(t, c)
		assert.Equal(t, "reply to fast", first.Content)

		close(slowRelease)
		second := receiveReply(t, c)
		assert.Equal(t, "reply to slow", second.Content)
	})

	t.Run("relay resolving after disconnect drops the reply", func(t *testing.T) {
		c := newTestClient(func(ctx context.Context, message string) (string, error) {
			return "too late", nil
		})
		c.Send = make(chan []byte) // unbuffered, nobody reading
		close(c.done)

		finished := make(chan struct{})
		go func() {
			c.handleMessage("hello")
			close(finished)
		}()

		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("handleMessage blocked on a dead connection")
		}
	})

	t.Run("relay sees the configured deadline", func(t *testing.T) {
		c := newTestClient(func(ctx context.Context, message string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})
		c.relayTimeout = 10 * time.Millisecond

		c.handleMessage("hello")

		reply := receiveReply(t, c)
		assert.Equal(t, dto.ChatReplyTypeError, reply.Type)
		assert.Equal(t, constant.MsgChatRelayFailed, reply.Content)
	})
}

func TestHub(t *testing.T) {
	hub := NewHub(logger.NewNop())
	go hub.Run()

	a := &Client{ID: uuid.New(), UserID: "user-a", Hub: hub}
	b := &Client{ID: uuid.New(), UserID: "user-b", Hub: hub}

	hub.register <- a
	hub.register <- b
	assert.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 5*time.Millisecond)

	hub.unregister <- a
	assert.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	// Unregistering twice is harmless.
	hub.unregister <- a
	assert.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)
}

package handler

import (
	"time"

	"homework-ai-be/internal/pkg/identity"
	"homework-ai-be/internal/pkg/logger"
	"homework-ai-be/internal/pkg/serverutils"
	"homework-ai-be/internal/service"
	internalWS "homework-ai-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatHandler upgrades authenticated connections onto the chat relay
// channel.
type ChatHandler struct {
	homeworkService service.IHomeworkService
	verifier        identity.TokenVerifier
	hub             *internalWS.Hub
	logger          logger.ILogger
	relayTimeout    time.Duration
}

func NewChatHandler(
	homeworkService service.IHomeworkService,
	verifier identity.TokenVerifier,
	hub *internalWS.Hub,
	log logger.ILogger,
	relayTimeout time.Duration,
) *ChatHandler {
	return &ChatHandler{
		homeworkService: homeworkService,
		verifier:        verifier,
		hub:             hub,
		logger:          log,
		relayTimeout:    relayTimeout,
	}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	router := r.Group("/homework/v1")
	router.Get("ws", h.ServeWs)
}

// ServeWs handles the websocket handshake. Browsers can't set headers on
// websocket requests, so the token is accepted from the 'token' query param
// as well as the Authorization header.
func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr = serverutils.BearerToken(c)
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusForbidden).
			JSON(serverutils.FailureResponse(fiber.StatusForbidden, "No token provided"))
	}

	userID, err := h.verifier.Verify(c.Context(), tokenStr)
	if err != nil {
		h.logger.Warn("ChatHandler", "Invalid token in WS handshake", map[string]interface{}{
			"error": err.Error(),
		})
		return c.Status(fiber.StatusForbidden).
			JSON(serverutils.FailureResponse(fiber.StatusForbidden, "Invalid token"))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			internalWS.ServeWs(h.hub, conn, userID, h.homeworkService.RelayChat, h.relayTimeout)
		})(c)
	}

	return fiber.ErrUpgradeRequired
}

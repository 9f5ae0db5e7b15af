package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	wshub "taskhub/infrastructure/websocket"
	"taskhub/pkg/logger"
	"taskhub/pkg/utils"
)

type WebSocketHandler struct {
	hub *wshub.Hub
}

func NewWebSocketHandler(hub *wshub.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleWebSocket registers the authenticated caller and reads until the client goes away.
// The route is behind Protected, so the caller is always present.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	user, ok := c.Locals(utils.UserLocalsKey).(*utils.UserContext)
	if !ok {
		_ = c.Close()
		return
	}

	h.hub.Register(c, user.ID)
	defer h.hub.Unregister(c)

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("WebSocket read ended", "user_id", user.ID, "error", err)
			return
		}
		h.hub.HandleClientMessage(c, message)
	}
}

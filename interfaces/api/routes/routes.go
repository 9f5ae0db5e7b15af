package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/interfaces/api/handlers"
	websocketHandler "taskhub/interfaces/api/websocket"
)

// SetupRoutes mounts every route. protected resolves the caller from the bearer token.
func SetupRoutes(app *fiber.App, h *handlers.Handlers, protected fiber.Handler, ws *websocketHandler.WebSocketHandler) {
	SetupHealthRoutes(app, h)

	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h, protected)
	SetupUserRoutes(api, h, protected)
	SetupTaskRoutes(api, h, protected)
	SetupNotificationRoutes(api, h, protected)

	if ws != nil {
		SetupWebSocketRoutes(app, ws, protected)
	}
}

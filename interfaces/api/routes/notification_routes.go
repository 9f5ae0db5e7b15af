package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/interfaces/api/handlers"
)

func SetupNotificationRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	notifications := api.Group("/notifications", protected)

	notifications.Get("/", h.NotificationHandler.ListNotifications)
	notifications.Patch("/:nid", h.NotificationHandler.MarkAsRead)
	notifications.Delete("/:nid", h.NotificationHandler.DeleteNotification)
}

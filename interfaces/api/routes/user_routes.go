package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/interfaces/api/handlers"
)

func SetupUserRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	users := api.Group("/users")

	users.Get("/", protected, h.UserHandler.ListUsers)
	users.Get("/:uid/profile", protected, h.UserHandler.GetProfile)
	users.Patch("/:uid/profile", protected, h.UserHandler.UpdateProfile)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/interfaces/api/handlers"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	users := api.Group("/users")

	users.Post("/signup", h.AuthHandler.Signup)
	users.Post("/login", h.AuthHandler.Login)
	users.Post("/logout", protected, h.AuthHandler.Logout)
}

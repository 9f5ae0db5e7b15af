package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/interfaces/api/handlers"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	tasks := api.Group("/tasks", protected)

	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Post("/member", h.TaskHandler.CreateIndividualTask)
	tasks.Post("/admin", h.TaskHandler.CreateAdminTask)
	tasks.Get("/:tid", h.TaskHandler.GetTask)
	tasks.Patch("/:tid", h.TaskHandler.UpdateTask)
	tasks.Patch("/:tid/status", h.TaskHandler.UpdateTaskStatus)
	tasks.Delete("/:tid", h.TaskHandler.DeleteTask)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/domain/dto"
	"taskhub/domain/services"
	"taskhub/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateIndividualTask creates a task owned by the caller alone.
func (h *TaskHandler) CreateIndividualTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.CreateIndividualTaskRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	task, err := h.taskService.CreateIndividualTask(ctx, user.ID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

// CreateAdminTask creates a task the caller assigns to a group of users.
func (h *TaskHandler) CreateAdminTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.CreateAdminTaskRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	task, err := h.taskService.CreateAdminTask(ctx, user.ID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var filter dto.TaskFilterRequest
	if err := parseQuery(c, &filter); err != nil {
		return utils.HandleError(c, err)
	}

	items, err := h.taskService.ListTasksForUser(c.UserContext(), user.ID, &filter)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, items)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	taskID, err := parseIDParam(c, "tid", "task")
	if err != nil {
		return utils.HandleError(c, err)
	}

	task, err := h.taskService.GetTask(c.UserContext(), user.ID, taskID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

// UpdateTask changes due date, timeline and notes. Other fields are fixed at creation.
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	taskID, err := parseIDParam(c, "tid", "task")
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.UpdateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	task, err := h.taskService.UpdateTaskFields(ctx, user.ID, taskID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToFieldsResponse(task))
}

func (h *TaskHandler) UpdateTaskStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	taskID, err := parseIDParam(c, "tid", "task")
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.UpdateTaskStatusRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	task, err := h.taskService.UpdateTaskStatus(ctx, user.ID, taskID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	taskID, err := parseIDParam(c, "tid", "task")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := h.taskService.DeleteTask(ctx, user.ID, taskID); err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, dto.MessageResponse{Message: "Task deleted successfully."})
}

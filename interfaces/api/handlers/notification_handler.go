package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/domain/dto"
	"taskhub/domain/services"
	"taskhub/pkg/utils"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	notifications, err := h.notificationService.ListNotifications(c.UserContext(), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, notifications)
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	id, err := parseIDParam(c, "nid", "notification")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := h.notificationService.MarkAsRead(c.UserContext(), user.ID, id); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.MessageResponse{Message: "Notification marked as read."})
}

func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	id, err := parseIDParam(c, "nid", "notification")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := h.notificationService.DeleteNotification(c.UserContext(), user.ID, id); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.MessageResponse{Message: "Notification deleted."})
}

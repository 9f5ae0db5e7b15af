package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/domain/dto"
	"taskhub/domain/services"
	"taskhub/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, dto.UsersToSummaries(users))
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "uid", "user")
	if err != nil {
		return utils.HandleError(c, err)
	}

	profile, err := h.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	userID, err := parseIDParam(c, "uid", "user")
	if err != nil {
		return utils.HandleError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	resp, err := h.userService.UpdateProfile(ctx, user.ID, userID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, resp)
}

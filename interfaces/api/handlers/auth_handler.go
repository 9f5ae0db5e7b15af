package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/domain/dto"
	"taskhub/domain/services"
	"taskhub/pkg/logger"
	"taskhub/pkg/utils"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.SignupRequest
	if err := parseBody(c, &req); err != nil {
		logger.WarnContext(ctx, "Invalid signup body")
		return utils.HandleError(c, err)
	}

	resp, err := h.userService.Signup(ctx, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.CreatedResponse(c, resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	resp, err := h.userService.Login(ctx, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, resp)
}

// Logout revokes the token the request was authenticated with.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := currentUser(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := h.userService.Logout(ctx, user.TokenID, user.ExpiresAt); err != nil {
		return utils.HandleError(c, err)
	}

	logger.InfoContext(ctx, "User logged out", "user_id", user.ID)
	return utils.SuccessResponse(c, dto.LogoutResponse{Message: "Logged out successfully."})
}

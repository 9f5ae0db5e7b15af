package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskhub/pkg/apperror"
	"taskhub/pkg/utils"
)

func parseIDParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid "+label+" id", map[string]string{name: "must be a valid id"})
	}
	return id, nil
}

func currentUser(c *fiber.Ctx) (*utils.UserContext, error) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	return user, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}
	return nil
}

func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return apperror.Validation("Invalid query parameters", nil)
	}
	return nil
}

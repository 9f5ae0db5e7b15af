package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskhub/pkg/logger"
	"taskhub/pkg/utils"
)

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker func(ctx context.Context, tokenID string) (bool, error)

// Protected validates the bearer token and stores the caller in fiber locals.
// The token may also come from the "token" query parameter, which browsers need for /ws.
func Protected(jwtSecret string, isRevoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		token := utils.ExtractTokenFromHeader(c.Get("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization token")
		}

		userCtx, err := utils.ValidateToken(token, jwtSecret)
		if err != nil {
			logger.WarnContext(ctx, "Token validation failed", "error", err)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrMissingToken):
				return utils.UnauthorizedResponse(c, "Missing token")
			default:
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
		}

		if isRevoked != nil && userCtx.TokenID != "" {
			revoked, err := isRevoked(ctx, userCtx.TokenID)
			if err != nil {
				logger.ErrorContext(ctx, "Token revocation check failed", "error", err)
				return utils.InternalServerErrorResponse(c)
			}
			if revoked {
				return utils.UnauthorizedResponse(c, "Token has been revoked")
			}
		}

		utils.SetUserInContext(c, userCtx)
		c.SetUserContext(logger.ContextWithUserID(ctx, userCtx.ID.String()))

		return c.Next()
	}
}

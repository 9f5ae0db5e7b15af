package serviceimpl

import (
	"context"
	"errors"

	"taskhub/domain/repositories"
	"taskhub/pkg/apperror"
	"taskhub/pkg/logger"
	"taskhub/pkg/utils"
)

// validateRequest runs the request's validate tags.
func validateRequest(ctx context.Context, req any) error {
	if err := utils.ValidateStruct(req); err != nil {
		details := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", details)
		return apperror.Validation("Validation failed", details)
	}
	return nil
}

// storeError turns a repository error into an application error. ErrNotFound becomes
// NotFound(notFoundMsg); application errors pass through; anything else is logged
// and reported as internal.
func storeError(ctx context.Context, op string, err error, notFoundMsg string) error {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repositories.ErrNotFound) && notFoundMsg != "":
		return apperror.NotFound(notFoundMsg)
	default:
		logger.ErrorContext(ctx, "Store operation failed", "op", op, "error", err)
		return apperror.Internal("Internal server error", err)
	}
}

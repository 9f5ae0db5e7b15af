package repositories

import (
	"context"

	"github.com/google/uuid"
	"taskhub/domain/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs returns the users that exist; missing ids are skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	// Update writes name, email and password hash.
	Update(ctx context.Context, user *models.User) error

	// AddTaskRef adds taskID to the user's task list once. ErrNotFound if the user is gone.
	AddTaskRef(ctx context.Context, userID, taskID uuid.UUID) error
	// RemoveTaskRef pulls taskID from every user's task list.
	RemoveTaskRef(ctx context.Context, taskID uuid.UUID) error
}

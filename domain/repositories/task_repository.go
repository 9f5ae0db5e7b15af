package repositories

import (
	"context"

	"github.com/google/uuid"
	"taskhub/domain/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// ListByParticipant returns tasks the user created or is assigned to, newest first.
	ListByParticipant(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error)
	UpdateFields(ctx context.Context, id uuid.UUID, update models.TaskFieldsUpdate) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountForUser(ctx context.Context, userID uuid.UUID) (models.TaskCounts, error)
}

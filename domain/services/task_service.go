package services

import (
	"context"

	"github.com/google/uuid"

	"taskhub/domain/dto"
	"taskhub/domain/models"
)

type TaskService interface {
	CreateIndividualTask(ctx context.Context, callerID uuid.UUID, req *dto.CreateIndividualTaskRequest) (*models.Task, error)
	CreateAdminTask(ctx context.Context, callerID uuid.UUID, req *dto.CreateAdminTaskRequest) (*models.Task, error)
	ListTasksForUser(ctx context.Context, callerID uuid.UUID, req *dto.TaskFilterRequest) ([]dto.TaskListItem, error)
	GetTask(ctx context.Context, callerID, taskID uuid.UUID) (*models.Task, error)
	UpdateTaskFields(ctx context.Context, callerID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, callerID, taskID uuid.UUID, req *dto.UpdateTaskStatusRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error
}

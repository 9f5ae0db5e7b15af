package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskhub/domain/dto"
	"taskhub/domain/models"
)

type NotificationService interface {
	// NotifyTaskCompleted records that memberID finished task. It must be called
	// with the context of the transaction that changed the task status.
	NotifyTaskCompleted(ctx context.Context, task *models.Task, memberID uuid.UUID) (*models.Notification, error)
	// Publish pushes a committed notification to its recipient. Failures are logged only.
	Publish(ctx context.Context, notification *models.Notification, task *models.Task)

	ListNotifications(ctx context.Context, callerID uuid.UUID) ([]dto.NotificationResponse, error)
	MarkAsRead(ctx context.Context, callerID, notificationID uuid.UUID) error
	DeleteNotification(ctx context.Context, callerID, notificationID uuid.UUID) error
	PurgeReadNotifications(ctx context.Context, olderThan time.Duration) (int64, error)
}

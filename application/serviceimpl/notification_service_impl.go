package serviceimpl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"taskhub/domain/dto"
	"taskhub/domain/models"
	"taskhub/domain/policy"
	"taskhub/domain/ports"
	"taskhub/domain/repositories"
	"taskhub/domain/services"
	"taskhub/pkg/logger"
)

const msgNotificationNotFound = "Notification not found."

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	taskRepo         repositories.TaskRepository
	userRepo         repositories.UserRepository
	publisher        ports.NotificationPublisherPort // nil disables live push
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	publisher ports.NotificationPublisherPort,
) services.NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		taskRepo:         taskRepo,
		userRepo:         userRepo,
		publisher:        publisher,
	}
}

func (s *NotificationServiceImpl) NotifyTaskCompleted(ctx context.Context, task *models.Task, memberID uuid.UUID) (*models.Notification, error) {
	notification := models.NewTaskCompletedNotification(task.ID, task.CreatorID, memberID)
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, storeError(ctx, "notifications.Create", err, "")
	}

	logger.InfoContext(ctx, "Completion notification created",
		"notification_id", notification.ID,
		"task_id", task.ID,
		"admin_id", task.CreatorID,
		"member_id", memberID,
	)
	return notification, nil
}

func (s *NotificationServiceImpl) Publish(ctx context.Context, notification *models.Notification, task *models.Task) {
	if s.publisher == nil {
		return
	}

	event := &ports.NotificationEvent{
		NotificationID: notification.ID.String(),
		TaskID:         notification.TaskID.String(),
		AdminID:        notification.AdminID.String(),
		MemberID:       notification.MemberID.String(),
		Message:        notification.Message,
		CreatedAt:      notification.CreatedAt,
	}
	if task != nil {
		event.TaskTitle = task.Title
	}
	if member, err := s.userRepo.GetByID(ctx, notification.MemberID); err == nil {
		event.MemberName = member.Name
	}

	if err := s.publisher.PublishNotification(ctx, event); err != nil {
		logger.WarnContext(ctx, "Live notification push failed",
			"notification_id", notification.ID,
			"admin_id", notification.AdminID,
			"error", err,
		)
	}
}

func (s *NotificationServiceImpl) ListNotifications(ctx context.Context, callerID uuid.UUID) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListByAdmin(ctx, callerID)
	if err != nil {
		return nil, storeError(ctx, "notifications.ListByAdmin", err, "")
	}

	tasks := make(map[uuid.UUID]*models.Task)
	var memberIDs []uuid.UUID
	for _, n := range notifications {
		memberIDs = append(memberIDs, n.MemberID)
		if _, seen := tasks[n.TaskID]; seen {
			continue
		}
		task, err := s.taskRepo.GetByID(ctx, n.TaskID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, storeError(ctx, "tasks.GetByID", err, "")
		}
		tasks[n.TaskID] = task
	}

	members, err := s.userRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, storeError(ctx, "users.GetByIDs", err, "")
	}
	byID := make(map[uuid.UUID]*models.User, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.NotificationToResponse(n, tasks[n.TaskID], byID[n.MemberID]))
	}
	return out, nil
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, callerID, notificationID uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return storeError(ctx, "notifications.GetByID", err, msgNotificationNotFound)
	}
	if err := policy.CanReadNotification(notification, callerID); err != nil {
		logger.WarnContext(ctx, "Notification update denied", "notification_id", notificationID, "user_id", callerID)
		return err
	}
	if notification.IsRead {
		return nil
	}

	if err := s.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		return storeError(ctx, "notifications.MarkRead", err, msgNotificationNotFound)
	}
	return nil
}

func (s *NotificationServiceImpl) DeleteNotification(ctx context.Context, callerID, notificationID uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return storeError(ctx, "notifications.GetByID", err, msgNotificationNotFound)
	}
	if err := policy.CanDeleteNotification(notification, callerID); err != nil {
		logger.WarnContext(ctx, "Notification deletion denied", "notification_id", notificationID, "user_id", callerID)
		return err
	}

	if err := s.notificationRepo.Delete(ctx, notificationID); err != nil {
		return storeError(ctx, "notifications.Delete", err, msgNotificationNotFound)
	}

	logger.InfoContext(ctx, "Notification deleted", "notification_id", notificationID, "user_id", callerID)
	return nil
}

func (s *NotificationServiceImpl) PurgeReadNotifications(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	deleted, err := s.notificationRepo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, storeError(ctx, "notifications.DeleteReadBefore", err, "")
	}
	return deleted, nil
}

package serviceimpl

import (
	"context"
	"time"

	"taskhub/domain/services"
	"taskhub/pkg/logger"
	"taskhub/pkg/scheduler"
)

const notificationCleanupJobID = "notification_cleanup"

type NotificationCleanupConfig struct {
	RetentionDays int    // read notifications older than this are purged; 0 disables the job
	CleanupCron   string // default "0 4 * * *"
}

// NotificationCleanupService purges read notifications on a schedule.
type NotificationCleanupService struct {
	config        NotificationCleanupConfig
	notifications services.NotificationService
	scheduler     scheduler.EventScheduler
}

func NewNotificationCleanupService(
	config NotificationCleanupConfig,
	notifications services.NotificationService,
	eventScheduler scheduler.EventScheduler,
) *NotificationCleanupService {
	if config.CleanupCron == "" {
		config.CleanupCron = "0 4 * * *"
	}
	return &NotificationCleanupService{
		config:        config,
		notifications: notifications,
		scheduler:     eventScheduler,
	}
}

func (s *NotificationCleanupService) Enabled() bool {
	return s.config.RetentionDays > 0
}

// RegisterCleanupJob adds the purge job to the scheduler. It is a no-op when retention is disabled.
func (s *NotificationCleanupService) RegisterCleanupJob() error {
	if !s.Enabled() {
		logger.Info("Notification cleanup disabled")
		return nil
	}
	if err := scheduler.ValidateCronExpression(s.config.CleanupCron); err != nil {
		return err
	}
	return s.scheduler.AddJob(notificationCleanupJobID, s.config.CleanupCron, func() {
		s.RunCleanup(context.Background())
	})
}

func (s *NotificationCleanupService) RunCleanup(ctx context.Context) {
	retention := time.Duration(s.config.RetentionDays) * 24 * time.Hour

	deleted, err := s.notifications.PurgeReadNotifications(ctx, retention)
	if err != nil {
		logger.ErrorContext(ctx, "Notification cleanup failed", "error", err)
		return
	}
	logger.InfoContext(ctx, "Notification cleanup completed", "deleted", deleted, "retention_days", s.config.RetentionDays)
}

package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repositories.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *models.Notification) error {
	return translateError(conn(ctx, r.db).Create(newNotificationRecord(notification)).Error)
}

func (r *NotificationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var rec notificationRecord
	if err := conn(ctx, r.db).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translateError(err)
	}
	return rec.toModel(), nil
}

func (r *NotificationRepositoryImpl) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]*models.Notification, error) {
	var recs []notificationRecord
	if err := conn(ctx, r.db).Where("admin_id = ?", adminID).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]*models.Notification, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toModel())
	}
	return out, nil
}

func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Model(&notificationRecord{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&notificationRecord{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := conn(ctx, r.db).Where("is_read = ? AND created_at < ?", true, cutoff).Delete(&notificationRecord{})
	return result.RowsAffected, translateError(result.Error)
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

type NotificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) repositories.NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	defer r.store.lock(ctx)()
	if err := r.store.fault("notifications.Create"); err != nil {
		return err
	}
	r.store.notifications[notification.ID] = notification.Clone()
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	defer r.store.lock(ctx)()
	n, ok := r.store.notifications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return n.Clone(), nil
}

func (r *NotificationRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]*models.Notification, error) {
	defer r.store.lock(ctx)()
	out := make([]*models.Notification, 0)
	for _, n := range r.store.notifications {
		if n.AdminID == adminID {
			out = append(out, n.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	defer r.store.lock(ctx)()
	n, ok := r.store.notifications[id]
	if !ok {
		return repositories.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.notifications[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.notifications, id)
	return nil
}

func (r *NotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	defer r.store.lock(ctx)()
	var deleted int64
	for id, n := range r.store.notifications {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			delete(r.store.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

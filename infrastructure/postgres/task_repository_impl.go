package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return translateError(conn(ctx, r.db).Create(newTaskRecord(task)).Error)
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var rec taskRecord
	if err := conn(ctx, r.db).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translateError(err)
	}
	return rec.toModel(), nil
}

func (r *TaskRepositoryImpl) ListByParticipant(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	query := conn(ctx, r.db).
		Where("(creator_id = ? OR ? = ANY(assigned_users))", userID, userID.String())
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.GroupSlug != "" {
		query = query.Where("group_slug = ?", filter.GroupSlug)
	}

	var recs []taskRecord
	if err := query.Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, translateError(err)
	}

	tasks := make([]*models.Task, 0, len(recs))
	for i := range recs {
		tasks = append(tasks, recs[i].toModel())
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, update models.TaskFieldsUpdate) error {
	values := map[string]any{"updated_at": time.Now().UTC()}
	if update.DueDate != nil {
		values["due_date"] = *update.DueDate
	}
	if update.Timeline != nil {
		values["timeline"] = *update.Timeline
	}
	if update.Notes != nil {
		values["notes"] = *update.Notes
	}
	return r.updateColumns(ctx, id, values)
}

func (r *TaskRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) error {
	return r.updateColumns(ctx, id, map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	})
}

func (r *TaskRepositoryImpl) updateColumns(ctx context.Context, id uuid.UUID, values map[string]any) error {
	result := conn(ctx, r.db).Model(&taskRecord{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&taskRecord{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) CountForUser(ctx context.Context, userID uuid.UUID) (models.TaskCounts, error) {
	var counts models.TaskCounts
	db := conn(ctx, r.db)

	if err := db.Model(&taskRecord{}).Where("creator_id = ?", userID).Count(&counts.Created).Error; err != nil {
		return counts, translateError(err)
	}
	err := db.Model(&taskRecord{}).
		Where("creator_id <> ? AND ? = ANY(assigned_users)", userID, userID.String()).
		Count(&counts.Assigned).Error
	return counts, translateError(err)
}

package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	return translateError(conn(ctx, r.db).Create(newUserRecord(user)).Error)
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var rec userRecord
	if err := conn(ctx, r.db).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translateError(err)
	}
	return rec.toModel(), nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var rec userRecord
	if err := conn(ctx, r.db).Where("email = ?", email).First(&rec).Error; err != nil {
		return nil, translateError(err)
	}
	return rec.toModel(), nil
}

func (r *UserRepositoryImpl) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	ids = models.UniqueIDs(ids)
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	var recs []userRecord
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&recs).Error; err != nil {
		return nil, translateError(err)
	}

	byID := make(map[uuid.UUID]*models.User, len(recs))
	for i := range recs {
		byID[recs[i].ID] = recs[i].toModel()
	}
	users := make([]*models.User, 0, len(recs))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]*models.User, error) {
	var recs []userRecord
	if err := conn(ctx, r.db).Order("name ASC").Find(&recs).Error; err != nil {
		return nil, translateError(err)
	}
	users := make([]*models.User, 0, len(recs))
	for i := range recs {
		users = append(users, recs[i].toModel())
	}
	return users, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	result := conn(ctx, r.db).Model(&userRecord{}).Where("id = ?", user.ID).Updates(map[string]any{
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"updated_at":    time.Now().UTC(),
	})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) AddTaskRef(ctx context.Context, userID, taskID uuid.UUID) error {
	db := conn(ctx, r.db)
	tid := taskID.String()

	result := db.Model(&userRecord{}).
		Where("id = ? AND NOT (? = ANY(tasks))", userID, tid).
		Update("tasks", gorm.Expr("array_append(tasks, ?)", tid))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing changed: either the reference is already there or the user is gone.
	var count int64
	if err := db.Model(&userRecord{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) RemoveTaskRef(ctx context.Context, taskID uuid.UUID) error {
	tid := taskID.String()
	return translateError(conn(ctx, r.db).Model(&userRecord{}).
		Where("? = ANY(tasks)", tid).
		Update("tasks", gorm.Expr("array_remove(tasks, ?)", tid)).Error)
}

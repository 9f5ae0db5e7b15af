package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repositories.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer r.store.lock(ctx)()
	if err := r.store.fault("users.Create"); err != nil {
		return err
	}
	if r.emailTaken(user.Email, uuid.Nil) {
		return repositories.ErrDuplicateKey
	}
	r.store.users[user.ID] = user.Clone()
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	defer r.store.lock(ctx)()
	u, ok := r.store.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer r.store.lock(ctx)()
	for _, u := range r.store.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	defer r.store.lock(ctx)()
	users := make([]*models.User, 0, len(ids))
	for _, id := range models.UniqueIDs(ids) {
		if u, ok := r.store.users[id]; ok {
			users = append(users, u.Clone())
		}
	}
	return users, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	defer r.store.lock(ctx)()
	users := make([]*models.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	defer r.store.lock(ctx)()
	if err := r.store.fault("users.Update"); err != nil {
		return err
	}
	existing, ok := r.store.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return repositories.ErrDuplicateKey
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.PasswordHash = user.PasswordHash
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) AddTaskRef(ctx context.Context, userID, taskID uuid.UUID) error {
	defer r.store.lock(ctx)()
	if err := r.store.fault("users.AddTaskRef"); err != nil {
		return err
	}
	u, ok := r.store.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	if !u.HasTask(taskID) {
		u.Tasks = append(u.Tasks, taskID)
	}
	return nil
}

func (r *UserRepository) RemoveTaskRef(ctx context.Context, taskID uuid.UUID) error {
	defer r.store.lock(ctx)()
	if err := r.store.fault("users.RemoveTaskRef"); err != nil {
		return err
	}
	for _, u := range r.store.users {
		kept := u.Tasks[:0]
		for _, id := range u.Tasks {
			if id != taskID {
				kept = append(kept, id)
			}
		}
		u.Tasks = kept
	}
	return nil
}

func (r *UserRepository) emailTaken(email string, except uuid.UUID) bool {
	for _, u := range r.store.users {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}

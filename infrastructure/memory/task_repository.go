package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) repositories.TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	defer r.store.lock(ctx)()
	if err := r.store.fault("tasks.Create"); err != nil {
		return err
	}
	if _, ok := r.store.tasks[task.ID]; ok {
		return repositories.ErrDuplicateKey
	}
	r.store.tasks[task.ID] = task.Clone()
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	defer r.store.lock(ctx)()
	t, ok := r.store.tasks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return t.Clone(), nil
}

func (r *TaskRepository) ListByParticipant(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	defer r.store.lock(ctx)()
	tasks := make([]*models.Task, 0)
	for _, t := range r.store.tasks {
		if !t.IsParticipant(userID) {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.GroupSlug != "" && (t.Assignment == nil || t.Assignment.GroupSlug != filter.GroupSlug) {
			continue
		}
		tasks = append(tasks, t.Clone())
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

func (r *TaskRepository) UpdateFields(ctx context.Context, id uuid.UUID, update models.TaskFieldsUpdate) error {
	defer r.store.lock(ctx)()
	if err := r.store.fault("tasks.UpdateFields"); err != nil {
		return err
	}
	t, ok := r.store.tasks[id]
	if !ok {
		return repositories.ErrNotFound
	}
	t.ApplyFields(update)
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) error {
	defer r.store.lock(ctx)()
	if err := r.store.fault("tasks.UpdateStatus"); err != nil {
		return err
	}
	t, ok := r.store.tasks[id]
	if !ok {
		return repositories.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.lock(ctx)()
	if err := r.store.fault("tasks.Delete"); err != nil {
		return err
	}
	if _, ok := r.store.tasks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.store.tasks, id)
	return nil
}

func (r *TaskRepository) CountForUser(ctx context.Context, userID uuid.UUID) (models.TaskCounts, error) {
	defer r.store.lock(ctx)()
	var counts models.TaskCounts
	for _, t := range r.store.tasks {
		switch {
		case t.IsCreator(userID):
			counts.Created++
		case t.IsAssigned(userID):
			counts.Assigned++
		}
	}
	return counts, nil
}

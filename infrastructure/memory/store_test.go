package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

func newUser(email string) *models.User {
	now := time.Now().UTC()
	return &models.User{ID: uuid.New(), Name: email, Email: email, CreatedAt: now, UpdatedAt: now}
}

func newTask(creator uuid.UUID) *models.Task {
	return models.NewIndividualTask(creator, models.TaskDetails{
		Title: "t", Description: "d", Priority: models.TaskPriorityLow,
		DueDate: time.Now(), Timeline: "1w", Notes: "n",
	})
}

func TestTransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUserRepository(store)
	tasks := NewTaskRepository(store)
	tx := NewTransactor(store)

	user := newUser("a@example.com")
	require.NoError(t, users.Create(ctx, user))

	boom := errors.New("boom")
	store.FailOn("users.AddTaskRef", boom)

	task := newTask(user.ID)
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := tasks.Create(ctx, task); err != nil {
			return err
		}
		return users.AddTaskRef(ctx, user.ID, task.ID)
	})
	assert.ErrorIs(t, err, boom)

	_, err = tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	store.FailOn("users.AddTaskRef", nil)
	require.NoError(t, tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := tasks.Create(ctx, task); err != nil {
			return err
		}
		return users.AddTaskRef(ctx, user.ID, task.ID)
	}))

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{task.ID}, got.Tasks)
}

func TestNestedTransactionJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUserRepository(store)
	tx := NewTransactor(store)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return users.Create(ctx, newUser("a@example.com"))
		})
	})
	require.NoError(t, err)

	n, _, _ := store.Counts()
	assert.Equal(t, 1, n)
}

func TestUserRepositoryTaskRefs(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUserRepository(store)

	a, b := newUser("a@example.com"), newUser("b@example.com")
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))

	taskID := uuid.New()
	require.NoError(t, users.AddTaskRef(ctx, a.ID, taskID))
	require.NoError(t, users.AddTaskRef(ctx, a.ID, taskID))
	require.NoError(t, users.AddTaskRef(ctx, b.ID, taskID))
	assert.ErrorIs(t, users.AddTaskRef(ctx, uuid.New(), taskID), repositories.ErrNotFound)

	got, err := users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 1)

	require.NoError(t, users.RemoveTaskRef(ctx, taskID))
	for _, id := range []uuid.UUID{a.ID, b.ID} {
		got, err := users.GetByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, got.HasTask(taskID))
	}
}

func TestUserRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(NewStore())

	a := newUser("a@example.com")
	require.NoError(t, users.Create(ctx, a))
	assert.ErrorIs(t, users.Create(ctx, newUser("a@example.com")), repositories.ErrDuplicateKey)

	b := newUser("b@example.com")
	require.NoError(t, users.Create(ctx, b))
	b.Email = "a@example.com"
	assert.ErrorIs(t, users.Update(ctx, b), repositories.ErrDuplicateKey)
}

func TestTaskRepositoryListAndCount(t *testing.T) {
	ctx := context.Background()
	tasks := NewTaskRepository(NewStore())

	a, b := uuid.New(), uuid.New()
	own := newTask(a)
	own.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, tasks.Create(ctx, own))

	assigned, err := models.NewAdminTask(b, own.TaskDetails, "Ops", []uuid.UUID{a})
	require.NoError(t, err)
	require.NoError(t, tasks.Create(ctx, assigned))
	require.NoError(t, tasks.Create(ctx, newTask(b)))

	list, err := tasks.ListByParticipant(ctx, a, models.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, assigned.ID, list[0].ID)

	list, err = tasks.ListByParticipant(ctx, a, models.TaskFilter{GroupSlug: "ops"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	counts, err := tasks.CountForUser(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, models.TaskCounts{Created: 1, Assigned: 1}, counts)
}

func TestDeleteReadBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(NewStore())

	old := models.NewTaskCompletedNotification(uuid.New(), uuid.New(), uuid.New())
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	old.IsRead = true
	unread := models.NewTaskCompletedNotification(uuid.New(), uuid.New(), uuid.New())
	unread.CreatedAt = old.CreatedAt
	fresh := models.NewTaskCompletedNotification(uuid.New(), uuid.New(), uuid.New())
	fresh.IsRead = true

	for _, n := range []*models.Notification{old, unread, fresh} {
		require.NoError(t, repo.Create(ctx, n))
	}

	deleted, err := repo.DeleteReadBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

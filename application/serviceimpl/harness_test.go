package serviceimpl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"taskhub/domain/dto"
	"taskhub/domain/models"
	"taskhub/domain/ports"
	"taskhub/domain/repositories"
	"taskhub/domain/services"
	"taskhub/infrastructure/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*ports.NotificationEvent
	err    error
}

func (p *recordingPublisher) PublishNotification(_ context.Context, event *ports.NotificationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) published() []*ports.NotificationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*ports.NotificationEvent(nil), p.events...)
}

type harness struct {
	ctx           context.Context
	store         *memory.Store
	users         repositories.UserRepository
	tasks         repositories.TaskRepository
	notifications repositories.NotificationRepository
	publisher     *recordingPublisher

	taskService         services.TaskService
	notificationService services.NotificationService
	userService         services.UserService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	h := &harness{
		ctx:           context.Background(),
		store:         store,
		users:         memory.NewUserRepository(store),
		tasks:         memory.NewTaskRepository(store),
		notifications: memory.NewNotificationRepository(store),
		publisher:     &recordingPublisher{},
	}
	h.notificationService = NewNotificationService(h.notifications, h.tasks, h.users, h.publisher)
	h.taskService = NewTaskService(h.tasks, h.users, memory.NewTransactor(store), h.notificationService)
	h.userService = NewUserService(h.users, h.tasks, memory.NewTokenBlacklist(), "test-secret", time.Hour)
	return h
}

// addUser stores a user directly, skipping password hashing.
func (h *harness) addUser(t *testing.T, name string) *models.User {
	t.Helper()
	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     name + "@example.com",
		Tasks:     []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, h.users.Create(h.ctx, user))
	return user
}

func (h *harness) user(t *testing.T, id uuid.UUID) *models.User {
	t.Helper()
	u, err := h.users.GetByID(h.ctx, id)
	require.NoError(t, err)
	return u
}

func individualRequest(title string) *dto.CreateIndividualTaskRequest {
	return &dto.CreateIndividualTaskRequest{
		Title:       title,
		Description: "Quarterly numbers",
		Priority:    "high",
		DueDate:     time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Timeline:    "2 weeks",
		Notes:       "Ask finance",
	}
}

func adminRequest(title, group string, assignees ...uuid.UUID) *dto.CreateAdminTaskRequest {
	ids := make([]string, 0, len(assignees))
	for _, id := range assignees {
		ids = append(ids, id.String())
	}
	return &dto.CreateAdminTaskRequest{
		CreateIndividualTaskRequest: *individualRequest(title),
		GroupName:                   group,
		AssignedUsers:               ids,
	}
}

func statusRequest(status models.TaskStatus) *dto.UpdateTaskStatusRequest {
	return &dto.UpdateTaskStatusRequest{Status: string(status)}
}

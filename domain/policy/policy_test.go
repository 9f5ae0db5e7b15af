package policy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/domain/models"
	"taskhub/pkg/apperror"
)

type fixture struct {
	creator, member, outsider uuid.UUID
	individual, admin         *models.Task
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{creator: uuid.New(), member: uuid.New(), outsider: uuid.New()}
	details := models.TaskDetails{
		Title: "t", Description: "d", Priority: models.TaskPriorityLow,
		DueDate: time.Now(), Timeline: "1w", Notes: "n",
	}
	f.individual = models.NewIndividualTask(f.creator, details)
	admin, err := models.NewAdminTask(f.creator, details, "Ops", []uuid.UUID{f.member})
	require.NoError(t, err)
	f.admin = admin
	return f
}

func TestTaskAccess(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		check   func(*models.Task, uuid.UUID) error
		task    *models.Task
		caller  uuid.UUID
		allowed bool
	}{
		{"creator views", CanViewTask, f.admin, f.creator, true},
		{"member views", CanViewTask, f.admin, f.member, true},
		{"outsider views", CanViewTask, f.admin, f.outsider, false},
		{"member edits fields", CanEditTaskFields, f.admin, f.member, true},
		{"outsider edits fields", CanEditTaskFields, f.individual, f.outsider, false},
		{"member changes status", CanChangeTaskStatus, f.admin, f.member, true},
		{"outsider changes status", CanChangeTaskStatus, f.admin, f.outsider, false},
		{"creator deletes", CanDeleteTask, f.admin, f.creator, true},
		{"member deletes", CanDeleteTask, f.admin, f.member, false},
		{"outsider deletes individual", CanDeleteTask, f.individual, f.outsider, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.task, tt.caller)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		})
	}
}

func TestShouldNotifyCompletion(t *testing.T) {
	f := newFixture(t)

	assert.True(t, ShouldNotifyCompletion(f.admin, models.TaskStatusDone, f.member))
	assert.False(t, ShouldNotifyCompletion(f.admin, models.TaskStatusDone, f.creator))
	assert.False(t, ShouldNotifyCompletion(f.admin, models.TaskStatusInProgress, f.member))
	assert.False(t, ShouldNotifyCompletion(f.individual, models.TaskStatusDone, f.creator))
	assert.False(t, ShouldNotifyCompletion(f.individual, models.TaskStatusDone, f.outsider))
}

func TestNotificationAccess(t *testing.T) {
	admin, member := uuid.New(), uuid.New()
	n := models.NewTaskCompletedNotification(uuid.New(), admin, member)

	assert.NoError(t, CanReadNotification(n, admin))
	assert.NoError(t, CanDeleteNotification(n, admin))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanReadNotification(n, member)))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanDeleteNotification(n, member)))
}

func TestCanEditProfile(t *testing.T) {
	id := uuid.New()
	assert.NoError(t, CanEditProfile(id, id))
	assert.Error(t, CanEditProfile(id, uuid.New()))
}

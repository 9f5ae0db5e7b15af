package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDetails() TaskDetails {
	return TaskDetails{
		Title:       "Write report",
		Description: "Quarterly numbers",
		Priority:    TaskPriorityHigh,
		DueDate:     time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		Timeline:    "2 weeks",
		Notes:       "Ask finance",
	}
}

func TestNewIndividualTask(t *testing.T) {
	creator := uuid.New()
	task := NewIndividualTask(creator, sampleDetails())

	assert.Equal(t, TaskRoleIndividual, task.Role())
	assert.Equal(t, TaskStatusTodo, task.Status)
	assert.Nil(t, task.AssignedUsers())
	assert.Empty(t, task.GroupName())
	assert.Equal(t, []uuid.UUID{creator}, task.ReferenceHolders())
	assert.True(t, task.IsParticipant(creator))
	assert.False(t, task.IsParticipant(uuid.New()))
}

func TestNewAdminTask(t *testing.T) {
	creator, b, c := uuid.New(), uuid.New(), uuid.New()

	task, err := NewAdminTask(creator, sampleDetails(), "Ops Team", []uuid.UUID{b, c, b, uuid.Nil})
	require.NoError(t, err)

	assert.Equal(t, TaskRoleAdmin, task.Role())
	assert.Equal(t, "ops-team", task.Assignment.GroupSlug)
	assert.Equal(t, []uuid.UUID{b, c}, task.AssignedUsers())
	assert.True(t, task.IsAssigned(b))
	assert.False(t, task.IsAssigned(creator))
	assert.ElementsMatch(t, []uuid.UUID{creator, b, c}, task.ReferenceHolders())
}

func TestNewAdminTaskRejectsInvalidVariant(t *testing.T) {
	creator := uuid.New()

	_, err := NewAdminTask(creator, sampleDetails(), "", []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrMissingGroupName)

	_, err = NewAdminTask(creator, sampleDetails(), "!!!", []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidGroupName)

	_, err = NewAdminTask(creator, sampleDetails(), "Ops", nil)
	assert.ErrorIs(t, err, ErrNoAssignees)

	_, err = NewAdminTask(creator, sampleDetails(), "Ops", []uuid.UUID{uuid.Nil})
	assert.ErrorIs(t, err, ErrNoAssignees)
}

func TestReferenceHoldersCollapseCreatorAssignee(t *testing.T) {
	creator := uuid.New()
	task, err := NewAdminTask(creator, sampleDetails(), "Ops", []uuid.UUID{creator})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{creator}, task.ReferenceHolders())
}

func TestApplyFields(t *testing.T) {
	task := NewIndividualTask(uuid.New(), sampleDetails())
	due := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	notes := "updated"

	update := TaskFieldsUpdate{DueDate: &due, Notes: &notes}
	assert.False(t, update.IsEmpty())
	task.ApplyFields(update)

	assert.Equal(t, due, task.DueDate)
	assert.Equal(t, "updated", task.Notes)
	assert.Equal(t, "2 weeks", task.Timeline)
	assert.True(t, TaskFieldsUpdate{}.IsEmpty())
}

func TestCloneIsDeep(t *testing.T) {
	task, err := NewAdminTask(uuid.New(), sampleDetails(), "Ops", []uuid.UUID{uuid.New()})
	require.NoError(t, err)

	clone := task.Clone()
	clone.Assignment.Members[0] = uuid.New()

	assert.NotEqual(t, task.Assignment.Members[0], clone.Assignment.Members[0])
}

func TestStatusAndPriorityValid(t *testing.T) {
	assert.True(t, TaskStatusInProgress.Valid())
	assert.False(t, TaskStatus("in progress").Valid())
	assert.True(t, TaskPriorityMedium.Valid())
	assert.False(t, TaskPriority("urgent").Valid())
}

func TestGroupSlug(t *testing.T) {
	assert.Equal(t, "ops-team", GroupSlug("Ops Team"))
	assert.Equal(t, "ops-team", GroupSlug("ops-team"))
	assert.Empty(t, GroupSlug("!!!"))
}

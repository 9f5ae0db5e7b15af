package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inProgress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// TaskRole tells an individually-owned task from one an admin assigned to a group.
type TaskRole string

const (
	TaskRoleIndividual TaskRole = "individual"
	TaskRoleAdmin      TaskRole = "admin"
)

var (
	ErrMissingGroupName = errors.New("group name is required for admin-assigned tasks")
	ErrNoAssignees      = errors.New("at least one user must be assigned to the task")
	ErrInvalidGroupName = errors.New("group name must contain letters or digits")
)

// TaskDetails are the fields shared by both task variants.
type TaskDetails struct {
	Title       string
	Description string
	Priority    TaskPriority
	DueDate     time.Time
	Timeline    string
	Notes       string
}

// Assignment is only present on admin-assigned tasks.
type Assignment struct {
	GroupName string
	GroupSlug string
	Members   []uuid.UUID
}

// Task is either individual (Assignment == nil) or admin-assigned.
// Build new tasks with NewIndividualTask or NewAdminTask.
type Task struct {
	ID uuid.UUID
	TaskDetails
	Status     TaskStatus
	CreatorID  uuid.UUID
	Assignment *Assignment
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewIndividualTask(creatorID uuid.UUID, details TaskDetails) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:          uuid.New(),
		TaskDetails: details,
		Status:      TaskStatusTodo,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewAdminTask builds an admin-assigned task. Duplicate member ids are collapsed.
func NewAdminTask(creatorID uuid.UUID, details TaskDetails, groupName string, members []uuid.UUID) (*Task, error) {
	if groupName == "" {
		return nil, ErrMissingGroupName
	}
	groupSlug := GroupSlug(groupName)
	if groupSlug == "" {
		return nil, ErrInvalidGroupName
	}
	members = UniqueIDs(members)
	if len(members) == 0 {
		return nil, ErrNoAssignees
	}

	task := NewIndividualTask(creatorID, details)
	task.Assignment = &Assignment{
		GroupName: groupName,
		GroupSlug: groupSlug,
		Members:   members,
	}
	return task, nil
}

func (t *Task) Role() TaskRole {
	if t.Assignment != nil {
		return TaskRoleAdmin
	}
	return TaskRoleIndividual
}

func (t *Task) IsAdminAssigned() bool {
	return t.Assignment != nil
}

func (t *Task) IsCreator(userID uuid.UUID) bool {
	return t.CreatorID == userID
}

func (t *Task) IsAssigned(userID uuid.UUID) bool {
	if t.Assignment == nil {
		return false
	}
	for _, id := range t.Assignment.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// IsParticipant reports whether userID is the creator or an assignee.
func (t *Task) IsParticipant(userID uuid.UUID) bool {
	return t.IsCreator(userID) || t.IsAssigned(userID)
}

// AssignedUsers returns the assignee ids, empty for individual tasks.
func (t *Task) AssignedUsers() []uuid.UUID {
	if t.Assignment == nil {
		return nil
	}
	return t.Assignment.Members
}

func (t *Task) GroupName() string {
	if t.Assignment == nil {
		return ""
	}
	return t.Assignment.GroupName
}

// ReferenceHolders lists every user whose task list must hold this task's id.
func (t *Task) ReferenceHolders() []uuid.UUID {
	return UniqueIDs(append([]uuid.UUID{t.CreatorID}, t.AssignedUsers()...))
}

// TaskFieldsUpdate is the allow-listed partial update. Nil fields are left alone.
type TaskFieldsUpdate struct {
	DueDate  *time.Time
	Timeline *string
	Notes    *string
}

func (u TaskFieldsUpdate) IsEmpty() bool {
	return u.DueDate == nil && u.Timeline == nil && u.Notes == nil
}

func (t *Task) ApplyFields(u TaskFieldsUpdate) {
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.Timeline != nil {
		t.Timeline = *u.Timeline
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
}

// GroupSlug is the filter key for a group name. Slugs map to themselves.
func GroupSlug(groupName string) string {
	return slug.Make(groupName)
}

// TaskFilter narrows a caller's task list.
type TaskFilter struct {
	Status    TaskStatus
	GroupSlug string
}

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	c := *t
	if t.Assignment != nil {
		a := *t.Assignment
		a.Members = append([]uuid.UUID(nil), t.Assignment.Members...)
		c.Assignment = &a
	}
	return &c
}

// UniqueIDs drops nil and repeated ids, keeping first-seen order.
func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

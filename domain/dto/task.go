package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateIndividualTaskRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"required,min=1,max=2000"`
	Priority    string    `json:"priority" validate:"required,oneof=low medium high"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Timeline    string    `json:"timeline" validate:"required,min=1,max=200"`
	Notes       string    `json:"notes" validate:"required,min=1,max=2000"`
}

type CreateAdminTaskRequest struct {
	CreateIndividualTaskRequest
	GroupName     string   `json:"groupName" validate:"required,min=1,max=100"`
	AssignedUsers []string `json:"assignedUsers" validate:"required,min=1,dive,uuid"`
}

// UpdateTaskRequest only carries the fields a participant may edit. Nil means unchanged.
type UpdateTaskRequest struct {
	DueDate  *time.Time `json:"dueDate"`
	Timeline *string    `json:"timeline" validate:"omitempty,max=200"`
	Notes    *string    `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo inProgress done"`
}

type TaskFilterRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=todo inProgress done"`
	Group  string `query:"group" validate:"omitempty,max=100"`
}

type TaskResponse struct {
	ID            uuid.UUID   `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Priority      string      `json:"priority"`
	DueDate       time.Time   `json:"dueDate"`
	Timeline      string      `json:"timeline"`
	Notes         string      `json:"notes"`
	Status        string      `json:"status"`
	Role          string      `json:"role"`
	CreatedBy     uuid.UUID   `json:"createdBy"`
	GroupName     string      `json:"groupName,omitempty"`
	GroupSlug     string      `json:"groupSlug,omitempty"`
	AssignedUsers []uuid.UUID `json:"assignedUsers"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// TaskListItem is a task as seen by one caller in their list.
type TaskListItem struct {
	TaskResponse
	CreatorName  string        `json:"creatorName"`
	CreatorEmail string        `json:"creatorEmail"`
	UserRole     string        `json:"userRole"` // creator | assigned
	Assignees    []UserSummary `json:"assignees"`
}

type TaskFieldsResponse struct {
	ID       uuid.UUID `json:"id"`
	DueDate  time.Time `json:"dueDate"`
	Timeline string    `json:"timeline"`
	Notes    string    `json:"notes"`
}

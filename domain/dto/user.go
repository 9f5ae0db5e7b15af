package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserSummary is the public view of a user used in lists and task assignees.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type ProfileResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	CreatedTasksCount  int64     `json:"createdTasksCount"`
	AssignedTasksCount int64     `json:"assignedTasksCount"`
	TotalTasksCount    int64     `json:"totalTasksCount"`
	CreatedAt          time.Time `json:"createdAt"`
}

// UpdateProfileRequest changes name and email. The password changes only when
// both OldPassword and NewPassword are sent.
type UpdateProfileRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	OldPassword string `json:"oldPassword" validate:"omitempty,max=72"`
	NewPassword string `json:"newPassword" validate:"omitempty,min=6,max=72"`
}

type UpdateProfileResponse struct {
	Profile ProfileResponse `json:"profile"`
	Token   string          `json:"token"`
}

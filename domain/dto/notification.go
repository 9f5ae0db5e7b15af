package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID         uuid.UUID `json:"id"`
	TaskID     uuid.UUID `json:"taskId"`
	TaskTitle  string    `json:"taskTitle"`
	MemberID   uuid.UUID `json:"memberId"`
	MemberName string    `json:"memberName"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

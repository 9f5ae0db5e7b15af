package models

import (
	"time"

	"github.com/google/uuid"
)

const TaskCompletedMessage = "A member has completed their assigned task."

// Notification tells a task's creator (Admin) that an assignee (Member) finished it.
type Notification struct {
	ID        uuid.UUID
	TaskID    uuid.UUID
	AdminID   uuid.UUID
	MemberID  uuid.UUID
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

func NewTaskCompletedNotification(taskID, adminID, memberID uuid.UUID) *Notification {
	return &Notification{
		ID:        uuid.New(),
		TaskID:    taskID,
		AdminID:   adminID,
		MemberID:  memberID,
		Message:   TaskCompletedMessage,
		CreatedAt: time.Now().UTC(),
	}
}

func (n *Notification) Clone() *Notification {
	c := *n
	return &c
}

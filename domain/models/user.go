package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	// Tasks holds back-references to tasks the user created or was assigned.
	Tasks     []uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) HasTask(taskID uuid.UUID) bool {
	for _, id := range u.Tasks {
		if id == taskID {
			return true
		}
	}
	return false
}

func (u *User) Clone() *User {
	c := *u
	c.Tasks = append([]uuid.UUID(nil), u.Tasks...)
	return &c
}

// TaskCounts backs the profile view.
type TaskCounts struct {
	Created  int64
	Assigned int64 // assigned to the user but created by someone else
}

func (c TaskCounts) Total() int64 {
	return c.Created + c.Assigned
}

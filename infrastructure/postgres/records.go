package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"taskhub/domain/models"
)

type userRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name         string         `gorm:"not null"`
	Email        string         `gorm:"uniqueIndex;not null"`
	PasswordHash string         `gorm:"not null"`
	Tasks        pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

type taskRecord struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title         string         `gorm:"not null"`
	Description   string         `gorm:"not null"`
	Priority      string         `gorm:"not null"`
	DueDate       time.Time      `gorm:"not null"`
	Timeline      string         `gorm:"not null"`
	Notes         string         `gorm:"not null"`
	Status        string         `gorm:"not null;default:todo;index"`
	Role          string         `gorm:"not null"`
	CreatorID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	GroupName     string
	GroupSlug     string         `gorm:"index"`
	AssignedUsers pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt     time.Time      `gorm:"index"`
	UpdatedAt     time.Time
}

func (taskRecord) TableName() string { return "tasks" }

type notificationRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AdminID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null"`
	Message   string    `gorm:"not null"`
	IsRead    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index"`
}

func (notificationRecord) TableName() string { return "notifications" }

func idsToStrings(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// stringsToIDs skips entries that are not valid ids.
func stringsToIDs(values pq.StringArray) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		if id, err := uuid.Parse(v); err == nil {
			out = append(out, id)
		}
	}
	return out
}

func newUserRecord(u *models.User) *userRecord {
	return &userRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Tasks:        idsToStrings(u.Tasks),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *userRecord) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Tasks:        stringsToIDs(r.Tasks),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func newTaskRecord(t *models.Task) *taskRecord {
	rec := &taskRecord{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Priority:      string(t.Priority),
		DueDate:       t.DueDate,
		Timeline:      t.Timeline,
		Notes:         t.Notes,
		Status:        string(t.Status),
		Role:          string(t.Role()),
		CreatorID:     t.CreatorID,
		AssignedUsers: idsToStrings(t.AssignedUsers()),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.Assignment != nil {
		rec.GroupName = t.Assignment.GroupName
		rec.GroupSlug = t.Assignment.GroupSlug
	}
	return rec
}

func (r *taskRecord) toModel() *models.Task {
	t := &models.Task{
		ID: r.ID,
		TaskDetails: models.TaskDetails{
			Title:       r.Title,
			Description: r.Description,
			Priority:    models.TaskPriority(r.Priority),
			DueDate:     r.DueDate,
			Timeline:    r.Timeline,
			Notes:       r.Notes,
		},
		Status:    models.TaskStatus(r.Status),
		CreatorID: r.CreatorID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if models.TaskRole(r.Role) == models.TaskRoleAdmin {
		t.Assignment = &models.Assignment{
			GroupName: r.GroupName,
			GroupSlug: r.GroupSlug,
			Members:   stringsToIDs(r.AssignedUsers),
		}
	}
	return t
}

func newNotificationRecord(n *models.Notification) *notificationRecord {
	return &notificationRecord{
		ID:        n.ID,
		TaskID:    n.TaskID,
		AdminID:   n.AdminID,
		MemberID:  n.MemberID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (r *notificationRecord) toModel() *models.Notification {
	return &models.Notification{
		ID:        r.ID,
		TaskID:    r.TaskID,
		AdminID:   r.AdminID,
		MemberID:  r.MemberID,
		Message:   r.Message,
		IsRead:    r.IsRead,
		CreatedAt: r.CreatedAt,
	}
}

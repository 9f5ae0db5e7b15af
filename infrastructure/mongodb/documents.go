package mongodb

import (
	"time"

	"github.com/google/uuid"

	"taskhub/domain/models"
)

type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	Tasks        []string  `bson:"tasks"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type assignmentDocument struct {
	GroupName string `bson:"groupName"`
	GroupSlug string `bson:"groupSlug"`
}

type taskDocument struct {
	ID            string              `bson:"_id"`
	Title         string              `bson:"title"`
	Description   string              `bson:"description"`
	Priority      string              `bson:"priority"`
	DueDate       time.Time           `bson:"dueDate"`
	Timeline      string              `bson:"timeline"`
	Notes         string              `bson:"notes"`
	Status        string              `bson:"status"`
	Role          string              `bson:"role"`
	CreatorID     string              `bson:"creatorId"`
	Assignment    *assignmentDocument `bson:"assignment,omitempty"`
	AssignedUsers []string            `bson:"assignedUsers"`
	CreatedAt     time.Time           `bson:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt"`
}

type notificationDocument struct {
	ID        string    `bson:"_id"`
	TaskID    string    `bson:"taskId"`
	AdminID   string    `bson:"adminId"`
	MemberID  string    `bson:"memberId"`
	Message   string    `bson:"message"`
	IsRead    bool      `bson:"isRead"`
	CreatedAt time.Time `bson:"createdAt"`
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func stringsToIDs(values []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		if id, err := uuid.Parse(v); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// parseID returns uuid.Nil for malformed ids.
func parseID(value string) uuid.UUID {
	id, _ := uuid.Parse(value)
	return id
}

func newUserDocument(u *models.User) *userDocument {
	return &userDocument{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Tasks:        idsToStrings(u.Tasks),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		ID:           parseID(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Tasks:        stringsToIDs(d.Tasks),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func newTaskDocument(t *models.Task) *taskDocument {
	doc := &taskDocument{
		ID:            t.ID.String(),
		Title:         t.Title,
		Description:   t.Description,
		Priority:      string(t.Priority),
		DueDate:       t.DueDate,
		Timeline:      t.Timeline,
		Notes:         t.Notes,
		Status:        string(t.Status),
		Role:          string(t.Role()),
		CreatorID:     t.CreatorID.String(),
		AssignedUsers: idsToStrings(t.AssignedUsers()),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.Assignment != nil {
		doc.Assignment = &assignmentDocument{
			GroupName: t.Assignment.GroupName,
			GroupSlug: t.Assignment.GroupSlug,
		}
	}
	return doc
}

func (d *taskDocument) toModel() *models.Task {
	t := &models.Task{
		ID: parseID(d.ID),
		TaskDetails: models.TaskDetails{
			Title:       d.Title,
			Description: d.Description,
			Priority:    models.TaskPriority(d.Priority),
			DueDate:     d.DueDate,
			Timeline:    d.Timeline,
			Notes:       d.Notes,
		},
		Status:    models.TaskStatus(d.Status),
		CreatorID: parseID(d.CreatorID),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Assignment != nil {
		t.Assignment = &models.Assignment{
			GroupName: d.Assignment.GroupName,
			GroupSlug: d.Assignment.GroupSlug,
			Members:   stringsToIDs(d.AssignedUsers),
		}
	}
	return t
}

func newNotificationDocument(n *models.Notification) *notificationDocument {
	return &notificationDocument{
		ID:        n.ID.String(),
		TaskID:    n.TaskID.String(),
		AdminID:   n.AdminID.String(),
		MemberID:  n.MemberID.String(),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (d *notificationDocument) toModel() *models.Notification {
	return &models.Notification{
		ID:        parseID(d.ID),
		TaskID:    parseID(d.TaskID),
		AdminID:   parseID(d.AdminID),
		MemberID:  parseID(d.MemberID),
		Message:   d.Message,
		IsRead:    d.IsRead,
		CreatedAt: d.CreatedAt,
	}
}

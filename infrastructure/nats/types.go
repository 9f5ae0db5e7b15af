package nats

import "time"

const (
	// SubjectNotifications is the prefix; each message goes to notifications.<adminID>.
	SubjectNotifications = "notifications"
)

func NotificationSubject(adminID string) string {
	return SubjectNotifications + "." + adminID
}

// NotificationMessage is the JSON payload on the notifications subjects.
type NotificationMessage struct {
	NotificationID string    `json:"notification_id"`
	TaskID         string    `json:"task_id"`
	TaskTitle      string    `json:"task_title"`
	AdminID        string    `json:"admin_id"`
	MemberID       string    `json:"member_id"`
	MemberName     string    `json:"member_name"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

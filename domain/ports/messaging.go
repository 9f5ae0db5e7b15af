package ports

import (
	"context"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Notification fan-out - live push of created notifications to their recipient
// ═══════════════════════════════════════════════════════════════════════════════

// NotificationEvent is the wire shape of a created notification. Plain struct, no broker types.
type NotificationEvent struct {
	NotificationID string    `json:"notificationId"`
	TaskID         string    `json:"taskId"`
	TaskTitle      string    `json:"taskTitle"`
	AdminID        string    `json:"adminId"`
	MemberID       string    `json:"memberId"`
	MemberName     string    `json:"memberName"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NotificationPublisherPort pushes an event towards the admin it is addressed to.
// Delivery is best-effort: callers log failures and move on.
type NotificationPublisherPort interface {
	PublishNotification(ctx context.Context, event *NotificationEvent) error
}

type NotificationHandler func(event *NotificationEvent)

// NotificationSubscriberPort receives events published by any API instance.
type NotificationSubscriberPort interface {
	Subscribe(ctx context.Context, handler NotificationHandler) error
	Unsubscribe() error
}

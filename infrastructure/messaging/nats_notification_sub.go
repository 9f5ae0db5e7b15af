package messaging

import (
	"context"

	"taskhub/domain/ports"
	natspkg "taskhub/infrastructure/nats"
	"taskhub/pkg/logger"
)

// NATSNotificationSubscriber implements NotificationSubscriberPort over NATS.
type NATSNotificationSubscriber struct {
	subscriber *natspkg.Subscriber
	cancel     context.CancelFunc
}

func NewNATSNotificationSubscriber(subscriber *natspkg.Subscriber) ports.NotificationSubscriberPort {
	return &NATSNotificationSubscriber{subscriber: subscriber}
}

// Subscribe forwards messages to handler until ctx is cancelled or Unsubscribe is called.
func (s *NATSNotificationSubscriber) Subscribe(ctx context.Context, handler ports.NotificationHandler) error {
	ctx, s.cancel = context.WithCancel(ctx)
	s.subscriber.OnNotification(forwardNotifications(ctx, handler))

	if !s.subscriber.IsRunning() {
		return s.subscriber.Start()
	}
	return nil
}

func (s *NATSNotificationSubscriber) Unsubscribe() error {
	if s.cancel != nil {
		s.cancel()
	}
	return s.subscriber.Stop()
}

func forwardNotifications(ctx context.Context, handler ports.NotificationHandler) natspkg.NotificationHandler {
	return func(msg *natspkg.NotificationMessage) {
		if ctx.Err() != nil {
			return
		}
		if msg == nil || msg.AdminID == "" {
			logger.Warn("Received notification without admin_id")
			return
		}
		handler(&ports.NotificationEvent{
			NotificationID: msg.NotificationID,
			TaskID:         msg.TaskID,
			TaskTitle:      msg.TaskTitle,
			AdminID:        msg.AdminID,
			MemberID:       msg.MemberID,
			MemberName:     msg.MemberName,
			Message:        msg.Message,
			CreatedAt:      msg.CreatedAt,
		})
	}
}

package websocket

import (
	"context"
	"sync"

	"taskhub/domain/ports"
	"taskhub/pkg/logger"
)

// NotificationBroadcaster forwards events from the message bus to local connections,
// so an admin connected to any API instance receives the push.
type NotificationBroadcaster struct {
	subscriber ports.NotificationSubscriberPort
	hub        *Hub
	running    bool
	runningMu  sync.Mutex
	cancel     context.CancelFunc
}

func NewNotificationBroadcaster(subscriber ports.NotificationSubscriberPort, hub *Hub) *NotificationBroadcaster {
	return &NotificationBroadcaster{subscriber: subscriber, hub: hub}
}

func (b *NotificationBroadcaster) Start() error {
	b.runningMu.Lock()
	defer b.runningMu.Unlock()
	if b.running {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := b.subscriber.Subscribe(ctx, b.handle); err != nil {
		cancel()
		return err
	}
	b.cancel = cancel
	b.running = true

	logger.Info("Notification broadcaster started")
	return nil
}

func (b *NotificationBroadcaster) handle(event *ports.NotificationEvent) {
	if err := b.hub.PublishNotification(context.Background(), event); err != nil {
		logger.Warn("Dropping notification event", "admin_id", event.AdminID, "error", err)
	}
}

func (b *NotificationBroadcaster) Stop() error {
	b.runningMu.Lock()
	defer b.runningMu.Unlock()
	if !b.running {
		return nil
	}
	b.running = false
	b.cancel()
	return b.subscriber.Unsubscribe()
}

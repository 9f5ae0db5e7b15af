package nats

import (
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"

	"taskhub/pkg/logger"
)

type NotificationHandler func(msg *NotificationMessage)

// Subscriber listens on notifications.* and hands every message to the registered handlers.
type Subscriber struct {
	conn       *nats.Conn
	sub        *nats.Subscription
	handlers   []NotificationHandler
	handlersMu sync.RWMutex
	running    bool
	runningMu  sync.Mutex
}

func NewSubscriber(conn *nats.Conn) *Subscriber {
	return &Subscriber{
		conn:     conn,
		handlers: make([]NotificationHandler, 0),
	}
}

func (s *Subscriber) OnNotification(handler NotificationHandler) {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()
	s.handlers = append(s.handlers, handler)
}

func (s *Subscriber) Start() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if s.running {
		return nil
	}

	sub, err := s.conn.Subscribe(SubjectNotifications+".*", s.handleMessage)
	if err != nil {
		return err
	}
	s.sub = sub
	s.running = true

	logger.Info("NATS subscriber started", "subject", SubjectNotifications+".*")
	return nil
}

func (s *Subscriber) handleMessage(msg *nats.Msg) {
	var notification NotificationMessage
	if err := json.Unmarshal(msg.Data, &notification); err != nil {
		logger.Error("Failed to parse notification message", "subject", msg.Subject, "error", err)
		return
	}

	s.handlersMu.RLock()
	handlers := s.handlers
	s.handlersMu.RUnlock()

	for _, handler := range handlers {
		func(h NotificationHandler, n NotificationMessage) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Notification handler panicked", "error", r)
				}
			}()
			h(&n)
		}(handler, notification)
	}

	logger.Debug("Notification received from NATS",
		"notification_id", notification.NotificationID,
		"admin_id", notification.AdminID,
	)
}

func (s *Subscriber) Stop() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", "error", err)
		}
	}

	logger.Info("NATS subscriber stopped")
	return nil
}

func (s *Subscriber) IsRunning() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.running
}

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sony/gobreaker"

	"taskhub/domain/ports"
	natspkg "taskhub/infrastructure/nats"
	"taskhub/pkg/logger"
)

// ErrPublisherUnavailable is returned while the breaker is open.
var ErrPublisherUnavailable = errors.New("notification publisher unavailable")

type publishFunc func(subject string, data []byte) error

// NATSNotificationPublisher implements NotificationPublisherPort over NATS core pub/sub.
// Publishing goes through a circuit breaker so a dead broker does not slow down
// status updates.
type NATSNotificationPublisher struct {
	publish publishFunc
	breaker *gobreaker.CircuitBreaker
}

func NewNATSNotificationPublisher(conn *nats.Conn) ports.NotificationPublisherPort {
	return newNATSNotificationPublisher(conn.Publish)
}

func newNATSNotificationPublisher(publish publishFunc) *NATSNotificationPublisher {
	return &NATSNotificationPublisher{
		publish: publish,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "NotificationPublisherCB",
			MaxRequests: 1,
			Timeout:     5 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

func (p *NATSNotificationPublisher) PublishNotification(ctx context.Context, event *ports.NotificationEvent) error {
	if event == nil {
		return fmt.Errorf("notification event cannot be nil")
	}
	if event.AdminID == "" {
		return fmt.Errorf("admin_id is required")
	}

	data, err := json.Marshal(&natspkg.NotificationMessage{
		NotificationID: event.NotificationID,
		TaskID:         event.TaskID,
		TaskTitle:      event.TaskTitle,
		AdminID:        event.AdminID,
		MemberID:       event.MemberID,
		MemberName:     event.MemberName,
		Message:        event.Message,
		CreatedAt:      event.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.publish(natspkg.NotificationSubject(event.AdminID), data)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrPublisherUnavailable
	}
	return err
}

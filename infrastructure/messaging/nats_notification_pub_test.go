package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/domain/ports"
	natspkg "taskhub/infrastructure/nats"
)

func sampleEvent() *ports.NotificationEvent {
	return &ports.NotificationEvent{
		NotificationID: "n1",
		TaskID:         "t1",
		TaskTitle:      "Ship",
		AdminID:        "admin-1",
		MemberID:       "m1",
		MemberName:     "Bea",
		Message:        "done",
		CreatedAt:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPublishNotificationSubjectAndPayload(t *testing.T) {
	var gotSubject string
	var gotData []byte
	pub := newNATSNotificationPublisher(func(subject string, data []byte) error {
		gotSubject, gotData = subject, data
		return nil
	})

	require.NoError(t, pub.PublishNotification(context.Background(), sampleEvent()))
	assert.Equal(t, "notifications.admin-1", gotSubject)

	var msg natspkg.NotificationMessage
	require.NoError(t, json.Unmarshal(gotData, &msg))
	assert.Equal(t, "Ship", msg.TaskTitle)
	assert.Equal(t, "Bea", msg.MemberName)
}

func TestPublishNotificationRequiresAdmin(t *testing.T) {
	pub := newNATSNotificationPublisher(func(string, []byte) error { return nil })
	event := sampleEvent()
	event.AdminID = ""
	assert.Error(t, pub.PublishNotification(context.Background(), event))
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	boom := errors.New("broker down")
	pub := newNATSNotificationPublisher(func(string, []byte) error {
		calls++
		return boom
	})

	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, pub.PublishNotification(context.Background(), sampleEvent()), boom)
	}

	err := pub.PublishNotification(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, ErrPublisherUnavailable)
	assert.Equal(t, 4, calls)
}

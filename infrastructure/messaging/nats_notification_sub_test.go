package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/domain/ports"
	natspkg "taskhub/infrastructure/nats"
)

func TestForwardNotificationsMapsMessage(t *testing.T) {
	var got []*ports.NotificationEvent
	forward := forwardNotifications(context.Background(), func(e *ports.NotificationEvent) {
		got = append(got, e)
	})

	forward(&natspkg.NotificationMessage{NotificationID: "n1", AdminID: "admin-1", TaskTitle: "Ship"})
	forward(&natspkg.NotificationMessage{NotificationID: "n2"})
	forward(nil)

	require.Len(t, got, 1)
	assert.Equal(t, "n1", got[0].NotificationID)
	assert.Equal(t, "admin-1", got[0].AdminID)
	assert.Equal(t, "Ship", got[0].TaskTitle)
}

func TestForwardNotificationsStopsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	forward := forwardNotifications(ctx, func(*ports.NotificationEvent) { calls++ })

	forward(&natspkg.NotificationMessage{AdminID: "admin-1"})
	cancel()
	forward(&natspkg.NotificationMessage{AdminID: "admin-1"})

	assert.Equal(t, 1, calls)
}

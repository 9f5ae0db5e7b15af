package websocket

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/domain/ports"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []Message
	closed   bool
	failNext bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failNext {
		return errors.New("write failed")
	}
	c.messages = append(c.messages, v.(Message))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func TestPublishNotificationReachesAdminOnly(t *testing.T) {
	hub := startHub(t)
	admin, other := uuid.New(), uuid.New()
	adminConn, otherConn := &fakeConn{}, &fakeConn{}
	hub.Register(adminConn, admin)
	hub.Register(otherConn, other)

	err := hub.PublishNotification(context.Background(), &ports.NotificationEvent{
		AdminID: admin.String(),
		Message: "done",
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return len(adminConn.received()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, MessageTypeNotification, adminConn.received()[0].Type)
	assert.Empty(t, otherConn.received())
}

func TestPublishNotificationRejectsBadAdminID(t *testing.T) {
	hub := startHub(t)
	assert.Error(t, hub.PublishNotification(context.Background(), &ports.NotificationEvent{AdminID: "nope"}))
}

func TestSecondConnectionReplacesFirst(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	first, second := &fakeConn{}, &fakeConn{}

	hub.Register(first, user)
	hub.Register(second, user)

	assert.Equal(t, 1, hub.ClientCount())
	assert.True(t, first.isClosed())

	hub.SendToUser(user, "x", nil)
	assert.Eventually(t, func() bool { return len(second.received()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Empty(t, first.received())
}

func TestFailedWriteDropsConnection(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	conn := &fakeConn{failNext: true}
	hub.Register(conn, user)

	hub.SendToUser(user, "x", nil)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
	assert.True(t, conn.isClosed())
}

func TestHandleClientMessagePing(t *testing.T) {
	hub := startHub(t)
	conn := &fakeConn{}
	hub.Register(conn, uuid.New())

	hub.HandleClientMessage(conn, []byte(`{"type":"ping"}`))
	hub.HandleClientMessage(conn, []byte(`not json`))

	assert.Eventually(t, func() bool { return len(conn.received()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "pong", conn.received()[0].Type)
}

func TestPingFromReplacedConnectionIsDropped(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	first, second := &fakeConn{}, &fakeConn{}
	hub.Register(first, user)
	hub.Register(second, user)

	hub.HandleClientMessage(first, []byte(`{"type":"ping"}`))
	hub.SendToUser(user, "x", nil)

	assert.Eventually(t, func() bool { return len(second.received()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Empty(t, first.received())
	assert.Equal(t, "x", second.received()[0].Type)
}

// exclusiveConn fails like a websocket connection does when two goroutines write at once.
type exclusiveConn struct {
	writing  atomic.Bool
	overlaps atomic.Int32
	writes   atomic.Int32
}

func (c *exclusiveConn) WriteJSON(interface{}) error {
	if !c.writing.CompareAndSwap(false, true) {
		c.overlaps.Add(1)
		return nil
	}
	time.Sleep(50 * time.Microsecond)
	c.writes.Add(1)
	c.writing.Store(false)
	return nil
}

func (c *exclusiveConn) Close() error { return nil }

func TestPongsAndPushesNeverWriteConcurrently(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	conn := &exclusiveConn{}
	hub.Register(conn, user)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			hub.HandleClientMessage(conn, []byte(`{"type":"ping"}`))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			hub.SendToUser(user, MessageTypeNotification, i)
		}
	}()
	wg.Wait()

	assert.Eventually(t, func() bool { return conn.writes.Load() == 2*n }, 5*time.Second, 10*time.Millisecond)
	assert.Zero(t, conn.overlaps.Load())
}

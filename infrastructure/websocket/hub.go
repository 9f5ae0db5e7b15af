// Package websocket keeps one live connection per user and pushes notification
// events to the admin they are addressed to.
package websocket

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"taskhub/domain/ports"
	"taskhub/pkg/logger"
)

const MessageTypeNotification = "notification:created"

// Conn is the part of *websocket.Conn the hub needs.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type client struct {
	conn   Conn
	userID uuid.UUID
}

// outbound is addressed to a user's current connection, or to conn when set.
type outbound struct {
	userID  uuid.UUID
	conn    Conn
	message Message
}

// Hub serializes all connection bookkeeping through Run. Run is also the only
// writer on a registered connection.
type Hub struct {
	clients         map[Conn]uuid.UUID
	userConnections map[uuid.UUID]Conn // 1 user = 1 connection

	register   chan client
	unregister chan Conn
	send       chan outbound
	count      chan chan int
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:         make(map[Conn]uuid.UUID),
		userConnections: make(map[uuid.UUID]Conn),
		register:        make(chan client),
		unregister:      make(chan Conn),
		send:            make(chan outbound, 64),
		count:           make(chan chan int),
		done:            make(chan struct{}),
	}
}

// Run processes hub events until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for conn := range h.clients {
				_ = conn.Close()
			}
			logger.Info("WebSocket hub stopped")
			return

		case c := <-h.register:
			if old, exists := h.userConnections[c.userID]; exists {
				delete(h.clients, old)
				_ = old.Close()
				logger.Debug("Replaced WebSocket connection", "user_id", c.userID)
			}
			h.clients[c.conn] = c.userID
			h.userConnections[c.userID] = c.conn
			logger.Info("WebSocket client connected", "user_id", c.userID)

		case conn := <-h.unregister:
			h.remove(conn)

		case out := <-h.send:
			conn, ok := h.target(out)
			if !ok {
				continue
			}
			if err := conn.WriteJSON(out.message); err != nil {
				logger.Warn("WebSocket write failed", "user_id", h.clients[conn], "error", err)
				h.remove(conn)
			}

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

func (h *Hub) target(out outbound) (Conn, bool) {
	if out.conn != nil {
		_, ok := h.clients[out.conn]
		return out.conn, ok
	}
	conn, ok := h.userConnections[out.userID]
	return conn, ok
}

func (h *Hub) remove(conn Conn) {
	userID, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	if current, exists := h.userConnections[userID]; exists && current == conn {
		delete(h.userConnections, userID)
	}
	_ = conn.Close()
	logger.Info("WebSocket client disconnected", "user_id", userID)
}

func (h *Hub) Register(conn Conn, userID uuid.UUID) {
	select {
	case h.register <- client{conn: conn, userID: userID}:
	case <-h.done:
		_ = conn.Close()
	}
}

func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// SendToUser queues a message for the user's connection. Users without one are skipped.
func (h *Hub) SendToUser(userID uuid.UUID, messageType string, data interface{}) {
	h.enqueue(outbound{userID: userID, message: Message{Type: messageType, Data: data}})
}

func (h *Hub) enqueue(out outbound) {
	select {
	case h.send <- out:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// PublishNotification delivers the event to the admin's connection on this instance.
func (h *Hub) PublishNotification(_ context.Context, event *ports.NotificationEvent) error {
	adminID, err := uuid.Parse(event.AdminID)
	if err != nil {
		return err
	}
	h.SendToUser(adminID, MessageTypeNotification, event)
	return nil
}

var _ ports.NotificationPublisherPort = (*Hub)(nil)

// HandleClientMessage answers pings on the connection that sent them; anything else
// is ignored. The pong is queued so it never races a push on the same connection.
func (h *Hub) HandleClientMessage(conn Conn, data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		logger.Debug("Invalid WebSocket message", "error", err)
		return
	}
	if message.Type == "ping" {
		h.enqueue(outbound{conn: conn, message: Message{Type: "pong", Data: "pong"}})
	}
}

package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"freelancehub/pkg/logger"
)

// ErrChannelUnavailable is returned when a push is attempted before the
// manager's loop has been started.
var ErrChannelUnavailable = errors.New("realtime channel not started")

// Client represents one authenticated WebSocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks active connections and fans events out to users.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	started    bool
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the manager's main loop in a goroutine. It must be called
// before any SendToUser.
func (m *Manager) Start(ctx context.Context) {
	m.mutex.Lock()
	m.started = true
	m.mutex.Unlock()

	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				// Only drop the entry if it is still this client; a
				// reconnect may already have replaced it.
				if m.clients[client.UserID] == client {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Info("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				close(m.done)
				return
			}
		}
	}()
}

// SendToUser delivers a payload to the user's connection if one exists.
// An offline recipient is not an error; callers treat the persisted record
// as the source of truth and the push as best-effort.
func (m *Manager) SendToUser(userID string, message []byte) error {
	// The lock is held across the send attempt so a concurrent push can
	// never close the channel between the lookup and the send. The send
	// itself never blocks, so the critical section stays short.
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.started {
		return ErrChannelUnavailable
	}
	client, ok := m.clients[userID]
	if !ok {
		return nil
	}

	select {
	case client.Send <- message:
	default:
		// Slow consumer; drop the connection rather than block the caller.
		delete(m.clients, userID)
		close(client.Send)
	}

	return nil
}

// SendEventToUser marshals a typed event envelope and pushes it.
func (m *Manager) SendEventToUser(userID, eventName string, payload interface{}) error {
	event := map[string]interface{}{
		"event":   eventName,
		"payload": payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return m.SendToUser(userID, data)
}

// unregister hands the client to the manager loop, or gives up if the
// loop has already shut down. Without the done case every connection
// open at shutdown would park its goroutine on the Unregister send.
func (m *Manager) unregister(c *Client) {
	select {
	case m.Unregister <- c:
	case <-m.done:
	}
}

// ReadPump drains inbound frames until the connection closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.unregister(c)
		c.Conn.Close()
	}()

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}
	}
}

// WritePump sends queued messages to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}

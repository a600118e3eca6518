package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client represents a WebSocket client connection
type Client struct {
	ID     string          // Unique client ID
	UserID string          // Authenticated user ID
	Conn   *websocket.Conn // WebSocket connection
	Send   chan []byte     // Outbound message channel
	mu     sync.Mutex      // Protects conn writes
	once   sync.Once
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, userID string) *Client {
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
}

// WriteLoop handles outbound messages from the Send channel
func (c *Client) WriteLoop(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Close()
			return
		case msg, ok := <-c.Send:
			if !ok {
				c.Close()
				return
			}
			c.mu.Lock()
			_ = c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
			c.mu.Unlock()
		case <-ticker.C:
			c.mu.Lock()
			_ = c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			_ = c.Conn.WriteMessage(websocket.PingMessage, []byte("ping"))
			c.mu.Unlock()
		}
	}
}

// Close closes the underlying connection. Safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		_ = c.Conn.Close()
		c.mu.Unlock()
	})
}

// SendMessage sends a message to the client's Send channel (non-blocking)
func (c *Client) SendMessage(msg []byte) {
	select {
	case c.Send <- msg:
	default:
		// Channel full, message dropped
	}
}

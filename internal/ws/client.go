package ws

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"ludo_broker/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// EventHandler receives the connection lifecycle and inbound requests.
// Implemented by the matchmaking service.
type EventHandler interface {
	OnConnect(connID string)
	OnMessage(connID string, raw []byte)
	OnDisconnect(connID string)
}

// Client is one live websocket connection. A single writer goroutine drains
// the Send buffer, so messages reach the peer in the order they were
// enqueued.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	hub    *Hub
	events EventHandler
	log    *slog.Logger
}

func NewClient(id string, conn *websocket.Conn, hub *Hub, events EventHandler) *Client {
	return &Client{
		ID:     id,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		hub:    hub,
		events: events,
		log:    logger.With("conn", id),
	}
}

// Run registers the client, announces the connection and starts both pumps.
// The writer must be running before OnConnect so the catch-up snapshot has
// somewhere to go.
func (c *Client) Run() {
	c.hub.Register(c)
	go c.writePump()

	c.events.OnConnect(c.ID)

	c.readPump()
}

func (c *Client) enqueue(data []byte) {
	select {
	case c.Send <- data:
	default:
		logDropped(c.ID)
	}
}

func (c *Client) readPump() {
	// Send is never closed: the hub may still hold a reference and enqueue
	// concurrently. Closing the conn makes writePump exit on its next write.
	defer func() {
		c.hub.Unregister(c.ID)
		c.events.OnDisconnect(c.ID)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("read error", "error", err)
			}
			return
		}
		c.events.OnMessage(c.ID, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Warn("write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

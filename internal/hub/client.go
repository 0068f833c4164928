package hub

import (
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
)

// Refresher restarts device detection on request from a client.
type Refresher interface {
	Refresh()
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket
// connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump reads client messages and dispatches the commands they carry.
func (c *Client) ReadPump(refresher Refresher) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			slog.Warn("bad client message", "error", err)
			continue
		}

		switch clientMsg.Type {
		case "refresh":
			refresher.Refresh()
			if data, err := json.Marshal(NewRefreshedMessage()); err == nil {
				select {
				case c.send <- data:
				default:
				}
			}
		}
	}
}

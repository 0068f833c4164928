package hub

import (
	"time"

	"github.com/mattcracing/Simmetric/internal/telemetry"
)

// WSMessage represents a message sent from server to client.
type WSMessage struct {
	Type      string                `json:"type"` // "full", "delta" or "refreshed"
	Seq       int64                 `json:"seq"`
	Timestamp int64                 `json:"timestamp"` // Unix milliseconds
	Data      *telemetry.Frame      `json:"data,omitempty"`
	Changes   *telemetry.FrameDelta `json:"changes,omitempty"`
}

// NewFullMessage creates a "full" message carrying a complete frame.
func NewFullMessage(seq int64, frame *telemetry.Frame) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      frame,
	}
}

// NewDeltaMessage creates a "delta" message carrying only changed fields.
func NewDeltaMessage(seq int64, changes *telemetry.FrameDelta) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// NewRefreshedMessage confirms a client-requested device refresh.
func NewRefreshedMessage() *WSMessage {
	return &WSMessage{
		Type:      "refreshed",
		Timestamp: time.Now().UnixMilli(),
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type string `json:"type"` // "refresh"
}

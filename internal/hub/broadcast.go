package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattcracing/Simmetric/internal/telemetry"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster listens for telemetry frames and broadcasts them to the hub,
// as deltas between periodic full syncs.
type Broadcaster struct {
	hub    *Hub
	frames <-chan telemetry.Frame

	// seq is bumped by the Run loop and by SendInitialState on handler
	// goroutines; atomic so sequence numbers stay unique and ordered.
	seq atomic.Int64

	mu        sync.RWMutex
	lastFrame telemetry.Frame
}

func NewBroadcaster(h *Hub, frames <-chan telemetry.Frame) *Broadcaster {
	return &Broadcaster{
		hub:    h,
		frames: frames,
	}
}

// Run starts the broadcaster loop. Returns when the frame channel closes.
// Should be run in a goroutine.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var deltaCount int64

	for {
		select {
		case frame, ok := <-b.frames:
			if !ok {
				return
			}

			b.mu.Lock()
			delta := telemetry.ComputeDelta(b.lastFrame, frame)
			b.lastFrame = frame
			b.mu.Unlock()

			if delta.IsEmpty() {
				continue
			}

			seq := b.seq.Add(1)
			deltaCount++

			if deltaCount >= deltaCountSync {
				b.sendFull(seq, frame)
				deltaCount = 0
			} else {
				b.sendDelta(seq, delta)
			}

		case <-ticker.C:
			b.sendFull(b.seq.Add(1), b.LastFrame())
		}
	}
}

// LastFrame returns the most recent frame seen by the broadcaster.
func (b *Broadcaster) LastFrame() telemetry.Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastFrame
}

// SendInitialState sends the current full frame to a newly connected
// client so it does not have to wait for the next sync.
func (b *Broadcaster) SendInitialState(c *Client) {
	frame := b.LastFrame()
	msg := NewFullMessage(b.seq.Add(1), &frame)
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshaling initial frame", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) sendFull(seq int64, frame telemetry.Frame) {
	msg := NewFullMessage(seq, &frame)
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshaling full message", "error", err)
		return
	}
	b.hub.Broadcast(data)
}

func (b *Broadcaster) sendDelta(seq int64, delta *telemetry.FrameDelta) {
	msg := NewDeltaMessage(seq, delta)
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshaling delta message", "error", err)
		return
	}
	b.hub.Broadcast(data)
}

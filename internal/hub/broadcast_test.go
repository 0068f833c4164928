package hub

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattcracing/Simmetric/internal/telemetry"
)

// Sequence numbers are bumped by the Run loop and, for each newly connected
// client, by SendInitialState on the handler goroutine. Both paths must be
// safe to run concurrently without losing or duplicating increments.
func TestSequenceNumbersSafeAcrossGoroutines(t *testing.T) {
	const rounds = 500

	h := NewHub()
	go h.Run()

	frames := make(chan telemetry.Frame)
	b := NewBroadcaster(h, frames)

	done := make(chan struct{})
	go func() {
		b.Run()
		close(done)
	}()

	// SendInitialState only touches the client's send buffer, which drops
	// when full, so no pump goroutines are needed.
	client := NewClient(h, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			// Every frame differs from its predecessor, so each one
			// produces a non-empty delta and one seq increment.
			frames <- telemetry.Frame{Throttle: float64(i%100) + 1}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			b.SendInitialState(client)
		}
	}()
	wg.Wait()

	close(frames)
	<-done

	// rounds increments from each side; the periodic full-sync ticker may
	// add more, never fewer.
	require.GreaterOrEqual(t, b.seq.Load(), int64(2*rounds))
}

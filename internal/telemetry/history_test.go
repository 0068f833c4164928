package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryFIFOEviction(t *testing.T) {
	h := NewHistory(200)

	for i := 0; i < 201; i++ {
		h.Push(Sample{Throttle: float64(i)})
	}

	require.Equal(t, 200, h.Len())
	require.Equal(t, 200, h.Cap())

	// After 201 appends the oldest entry (step 1) is gone; the window
	// starts at the value appended at step 2.
	require.Equal(t, 1.0, h.At(0).Throttle)
	require.Equal(t, 200.0, h.At(199).Throttle)
}

func TestHistoryNeverExceedsCapacity(t *testing.T) {
	h := NewHistory(200)
	for i := 0; i < 1000; i++ {
		h.Push(Sample{Brake: float64(i)})
		require.LessOrEqual(t, h.Len(), 200)
	}
}

func TestHistorySnapshotOrder(t *testing.T) {
	h := NewHistory(3)
	h.Push(Sample{Steering: 1})
	h.Push(Sample{Steering: 2})
	require.Equal(t, []Sample{{Steering: 1}, {Steering: 2}}, h.Snapshot())

	h.Push(Sample{Steering: 3})
	h.Push(Sample{Steering: 4})
	require.Equal(t, []Sample{{Steering: 2}, {Steering: 3}, {Steering: 4}}, h.Snapshot())
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Push(Sample{})
	h.Push(Sample{})
	h.Push(Sample{})
	require.Equal(t, 2, h.Cap())
	require.Equal(t, 2, h.Len())
}

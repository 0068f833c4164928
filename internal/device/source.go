// Package device finds the pedal/wheel input source among the host's
// joystick slots and classifies the connection state for each sampling
// cycle.
package device

import "fmt"

// Source is one enumerated input slot: an opaque identifier and the raw
// axis values normalized to -1..1. A zero Source is an empty slot.
type Source struct {
	Identifier string
	Axes       []float64
}

// Present reports whether the slot actually holds a device.
func (s Source) Present() bool {
	return s.Identifier != "" || len(s.Axes) > 0
}

// Poller enumerates the currently available input slots. Implementations
// must tolerate being called every sampling cycle (~60 Hz) and may return
// empty slots for devices that are mid-removal.
type Poller interface {
	Poll() []Source
}

// AxisReading is one raw axis value with its index, carried on frames for
// the debug panel.
type AxisReading struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

func (a AxisReading) String() string {
	return fmt.Sprintf("axis%d=%+.3f", a.Index, a.Value)
}

func readings(axes []float64) []AxisReading {
	if len(axes) == 0 {
		return nil
	}
	out := make([]AxisReading, len(axes))
	for i, v := range axes {
		out[i] = AxisReading{Index: i, Value: v}
	}
	return out
}

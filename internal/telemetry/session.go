// Package telemetry owns the session state of the dashboard: the current
// normalized signal, the rolling history window, the running peaks and the
// connection state, plus the sampling loop that keeps them current.
package telemetry

import (
	"sync"
	"time"

	"github.com/mattcracing/Simmetric/internal/device"
)

// Session is the single holder of all process-wide telemetry state. It is
// mutated only by the sampling loop; the RWMutex exists so HTTP and
// WebSocket handlers can take consistent snapshots.
type Session struct {
	mu      sync.RWMutex
	state   device.State
	device  string
	axes    []device.AxisReading
	signal  Signal
	history *History
	stats   Stats
}

// NewSession creates a fresh session: empty history, zero peaks, session
// clock started at now.
func NewSession(historyCapacity int, now time.Time) *Session {
	return &Session{
		state:   device.Searching,
		history: NewHistory(historyCapacity),
		stats:   Stats{Started: now},
	}
}

// Signal returns the current normalized signal.
func (s *Session) Signal() Signal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signal
}

// State returns the current connection state.
func (s *Session) State() device.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Stats returns a copy of the session statistics.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Update stores the locate outcome and the freshly normalized signal, and
// folds the signal into the session peaks.
func (s *Session) Update(res device.Result, sig Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = res.State
	s.device = res.Source.Identifier
	s.axes = res.Axes
	s.signal = sig
	s.stats.Observe(sig)
}

// SetOutcome stores a locate outcome that produced no sample (Searching or
// NoDevice). The last signal stays in place; the device identity is cleared
// once the slot is empty.
func (s *Session) SetOutcome(res device.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = res.State
	if !res.Source.Present() {
		s.device = ""
		s.axes = nil
	}
}

// AppendHistory records the latest signal into the rolling window and
// returns the recorded sample.
func (s *Session) AppendHistory() Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	sample := Sample{
		Throttle: s.signal.Throttle,
		Brake:    s.signal.Brake,
		Steering: s.signal.Steering,
	}
	s.history.Push(sample)
	return sample
}

// HistorySnapshot copies the rolling window oldest-first.
func (s *Session) HistorySnapshot() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Snapshot()
}

// HistoryLen returns the number of recorded samples.
func (s *Session) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len()
}

// Frame builds a full snapshot for clients, with display strings rendered
// at now.
func (s *Session) Frame(now time.Time) Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	elapsed := FormatElapsed(s.stats.Elapsed(now))
	return Frame{
		State:        s.state.String(),
		Device:       s.device,
		Throttle:     s.signal.Throttle,
		Brake:        s.signal.Brake,
		Steering:     s.signal.Steering,
		Angle:        s.signal.Angle,
		PeakThrottle: s.stats.PeakThrottle,
		PeakBrake:    s.stats.PeakBrake,
		PeakAngle:    s.stats.PeakAngle,
		Elapsed:      elapsed,
		Display: Display{
			Throttle: FormatPercent(s.signal.Throttle),
			Brake:    FormatPercent(s.signal.Brake),
			Steering: FormatPercent(s.signal.Steering),
			Angle:    FormatAngle(s.signal.Angle),
			Elapsed:  elapsed,
		},
		Axes: s.axes,
	}
}

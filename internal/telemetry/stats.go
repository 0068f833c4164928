package telemetry

import (
	"math"
	"time"
)

// Stats holds the running session maxima. Peaks never decrease and are only
// reset by starting a new session.
type Stats struct {
	Started      time.Time
	PeakThrottle float64
	PeakBrake    float64
	PeakAngle    float64 // absolute steering angle, degrees
}

// Observe folds one normalized signal into the peaks.
func (st *Stats) Observe(sig Signal) {
	if sig.Throttle > st.PeakThrottle {
		st.PeakThrottle = sig.Throttle
	}
	if sig.Brake > st.PeakBrake {
		st.PeakBrake = sig.Brake
	}
	if a := math.Abs(sig.Angle); a > st.PeakAngle {
		st.PeakAngle = a
	}
}

// Elapsed is the session duration at now.
func (st *Stats) Elapsed(now time.Time) time.Duration {
	d := now.Sub(st.Started)
	if d < 0 {
		return 0
	}
	return d
}

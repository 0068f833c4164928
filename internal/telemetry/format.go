package telemetry

import (
	"fmt"
	"math"
	"time"
)

// FormatPercent renders a percentage for display: 0 decimals, trailing %.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// FormatAngle renders a steering angle for display: 0 decimals, trailing °.
func FormatAngle(v float64) string {
	// Avoid the "-0°" artifact from tiny negative readings.
	if math.Abs(v) < 0.5 {
		v = 0
	}
	return fmt.Sprintf("%.0f°", v)
}

// FormatElapsed renders a session duration as M:SS.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

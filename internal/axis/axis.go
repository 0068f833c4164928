// Package axis converts raw joystick axis values (nominally -1..1) into the
// semantic pedal/steering readings shown on the dashboard.
package axis

import "math"

// LockToLockDegrees is the total steering travel represented by a full axis
// deflection: ±450°.
const LockToLockDegrees = 450.0

// Absent-axis defaults. A pedal axis that is not present on the device reads
// as fully released; a missing steering axis reads as centered.
const (
	AbsentPedal         = -1.0 // matched path: (-1+1)/2 -> 0%
	AbsentPedalInverted = 1.0  // fallback path: (1-1)/2 -> 0%
	AbsentSteering      = 0.0
)

// PedalPercent maps a raw axis value to 0..100%, with -1 = released and
// +1 = fully pressed.
func PedalPercent(raw float64) float64 {
	return clampPercent((sanitize(raw) + 1) / 2 * 100)
}

// PedalPercentInverted is the fallback mapping for unbranded controllers
// whose pedal polarity is unknown; +1 = released, -1 = fully pressed.
func PedalPercentInverted(raw float64) float64 {
	return clampPercent((1 - sanitize(raw)) / 2 * 100)
}

// PedalPercentDebounced is PedalPercent with the power-on special case: a
// pedal axis that still reads exactly 0 while the stored percent is 0 has
// never been touched and must keep reporting 0%, not 50%.
func PedalPercentDebounced(raw, current float64) float64 {
	if raw == 0 && current == 0 {
		return 0
	}
	return PedalPercent(raw)
}

// SteeringPercent is the direction-agnostic steering magnitude in 0..100%.
func SteeringPercent(raw float64) float64 {
	return clampPercent(math.Abs(sanitize(raw)) * 100)
}

// SteeringAngle is the signed steering angle in degrees, full axis
// deflection = ±LockToLockDegrees.
func SteeringAngle(raw float64) float64 {
	a := sanitize(raw) * LockToLockDegrees
	if a > LockToLockDegrees {
		return LockToLockDegrees
	}
	if a < -LockToLockDegrees {
		return -LockToLockDegrees
	}
	return a
}

// At returns axes[i], or def when the device does not expose index i.
func At(axes []float64, i int, def float64) float64 {
	if i < 0 || i >= len(axes) {
		return def
	}
	return axes[i]
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// sanitize keeps every downstream value finite; malformed input degrades to
// neutral instead of propagating NaN into the chart.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

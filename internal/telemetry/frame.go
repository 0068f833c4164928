package telemetry

import (
	"math"

	"github.com/mattcracing/Simmetric/internal/device"
)

// Signal is the canonical current reading, overwritten every sample cycle.
// Percentages are 0..100, the angle is degrees within ±axis.LockToLockDegrees.
type Signal struct {
	Throttle float64 `json:"throttle"`
	Brake    float64 `json:"brake"`
	Steering float64 `json:"steering"`
	Angle    float64 `json:"angle"`
}

// Display carries the preformatted strings shown on the dashboard.
type Display struct {
	Throttle string `json:"throttle"`
	Brake    string `json:"brake"`
	Steering string `json:"steering"`
	Angle    string `json:"angle"`
	Elapsed  string `json:"elapsed"`
}

// Frame is one full telemetry snapshot as sent to dashboard clients.
type Frame struct {
	State        string               `json:"state"`
	Device       string               `json:"device,omitempty"`
	Throttle     float64              `json:"throttle"`
	Brake        float64              `json:"brake"`
	Steering     float64              `json:"steering"`
	Angle        float64              `json:"angle"`
	PeakThrottle float64              `json:"peakThrottle"`
	PeakBrake    float64              `json:"peakBrake"`
	PeakAngle    float64              `json:"peakAngle"`
	Elapsed      string               `json:"elapsed"`
	Display      Display              `json:"display"`
	Axes         []device.AxisReading `json:"axes,omitempty"`
}

// FrameDelta carries only the fields that changed between two frames. Axis
// diagnostics are not delta-tracked; they ride on full frames only.
type FrameDelta struct {
	State        *string  `json:"state,omitempty"`
	Device       *string  `json:"device,omitempty"`
	Throttle     *float64 `json:"throttle,omitempty"`
	Brake        *float64 `json:"brake,omitempty"`
	Steering     *float64 `json:"steering,omitempty"`
	Angle        *float64 `json:"angle,omitempty"`
	PeakThrottle *float64 `json:"peakThrottle,omitempty"`
	PeakBrake    *float64 `json:"peakBrake,omitempty"`
	PeakAngle    *float64 `json:"peakAngle,omitempty"`
	Elapsed      *string  `json:"elapsed,omitempty"`
}

func (d *FrameDelta) IsEmpty() bool {
	return d.State == nil &&
		d.Device == nil &&
		d.Throttle == nil &&
		d.Brake == nil &&
		d.Steering == nil &&
		d.Angle == nil &&
		d.PeakThrottle == nil &&
		d.PeakBrake == nil &&
		d.PeakAngle == nil &&
		d.Elapsed == nil
}

// analogThreshold suppresses deltas from sub-visible jitter (values are in
// percent / degrees).
const analogThreshold = 0.05

func analogEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

// ComputeDelta compares two frames and returns the changed fields.
func ComputeDelta(old, new_ Frame) *FrameDelta {
	d := &FrameDelta{}

	if old.State != new_.State {
		d.State = &new_.State
	}
	if old.Device != new_.Device {
		d.Device = &new_.Device
	}
	if !analogEqual(old.Throttle, new_.Throttle) {
		d.Throttle = &new_.Throttle
	}
	if !analogEqual(old.Brake, new_.Brake) {
		d.Brake = &new_.Brake
	}
	if !analogEqual(old.Steering, new_.Steering) {
		d.Steering = &new_.Steering
	}
	if !analogEqual(old.Angle, new_.Angle) {
		d.Angle = &new_.Angle
	}
	if !analogEqual(old.PeakThrottle, new_.PeakThrottle) {
		d.PeakThrottle = &new_.PeakThrottle
	}
	if !analogEqual(old.PeakBrake, new_.PeakBrake) {
		d.PeakBrake = &new_.PeakBrake
	}
	if !analogEqual(old.PeakAngle, new_.PeakAngle) {
		d.PeakAngle = &new_.PeakAngle
	}
	if old.Elapsed != new_.Elapsed {
		d.Elapsed = &new_.Elapsed
	}

	return d
}

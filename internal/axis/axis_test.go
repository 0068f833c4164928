package axis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPedalPercent(t *testing.T) {
	cases := []struct {
		raw  float64
		want float64
	}{
		{-1, 0},
		{0, 50},
		{1, 100},
		{-0.5, 25},
		{0.5, 75},
		{-2, 0}, // out of nominal range clamps
		{2, 100},
	}
	for _, c := range cases {
		require.InDelta(t, c.want, PedalPercent(c.raw), 1e-9, "raw=%v", c.raw)
	}

	// Whole nominal range stays within 0..100.
	for raw := -1.0; raw <= 1.0; raw += 0.01 {
		got := PedalPercent(raw)
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 100.0)
		require.InDelta(t, (raw+1)/2*100, got, 1e-9)
	}
}

func TestPedalPercentInverted(t *testing.T) {
	require.InDelta(t, 100.0, PedalPercentInverted(-1), 1e-9)
	require.InDelta(t, 50.0, PedalPercentInverted(0), 1e-9)
	require.InDelta(t, 0.0, PedalPercentInverted(1), 1e-9)
}

func TestPedalPercentDebounced(t *testing.T) {
	// Power-on default: axis 0 with stored 0 stays 0, not 50.
	require.Equal(t, 0.0, PedalPercentDebounced(0, 0))

	// Once the pedal has moved, a true center reading is 50 again.
	require.InDelta(t, 50.0, PedalPercentDebounced(0, 37.5), 1e-9)

	// Non-zero input is never debounced.
	require.InDelta(t, 75.0, PedalPercentDebounced(0.5, 0), 1e-9)
}

func TestSteering(t *testing.T) {
	require.InDelta(t, 100.0, SteeringPercent(-1), 1e-9)
	require.InDelta(t, 40.0, SteeringPercent(0.4), 1e-9)
	require.InDelta(t, 0.0, SteeringPercent(0), 1e-9)

	require.InDelta(t, 450.0, SteeringAngle(1), 1e-9)
	require.InDelta(t, -450.0, SteeringAngle(-1), 1e-9)
	require.InDelta(t, -225.0, SteeringAngle(-0.5), 1e-9)
	require.InDelta(t, 450.0, SteeringAngle(3), 1e-9) // clamped at full lock
}

func TestMalformedInputStaysFinite(t *testing.T) {
	for _, raw := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		require.False(t, math.IsNaN(PedalPercent(raw)))
		require.False(t, math.IsNaN(PedalPercentInverted(raw)))
		require.False(t, math.IsNaN(SteeringPercent(raw)))
		require.False(t, math.IsNaN(SteeringAngle(raw)))
	}
	require.InDelta(t, 50.0, PedalPercent(math.NaN()), 1e-9)
	require.InDelta(t, 0.0, SteeringAngle(math.Inf(1)), 1e-9)
}

func TestAt(t *testing.T) {
	axes := []float64{0.1, 0.2}
	require.Equal(t, 0.2, At(axes, 1, -1))
	require.Equal(t, -1.0, At(axes, 2, -1))
	require.Equal(t, 0.0, At(nil, 0, 0))
}

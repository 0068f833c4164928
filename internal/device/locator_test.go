package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testTokens = []string{"simagic", "fanatec", "logitech", "moza"}

const testTimeout = 2 * time.Second

func TestLocateMatchesByToken(t *testing.T) {
	l := NewLocator(testTokens, testTimeout)
	now := time.Now()

	res := l.Locate([]Source{
		{Identifier: "Simagic P2000", Axes: []float64{0.1, -0.2}},
	}, now)

	require.Equal(t, Matched, res.State)
	require.Equal(t, "Simagic P2000", res.Source.Identifier)
	require.Len(t, res.Axes, 2)
	require.Equal(t, 1, res.Axes[1].Index)
}

func TestLocateMatchesByAxisCount(t *testing.T) {
	l := NewLocator(testTokens, testTimeout)

	// Unbranded but with 4 axes: probably a pedal set.
	res := l.Locate([]Source{
		{Identifier: "Generic USB Gamepad", Axes: []float64{0, 0, 0, 0}},
	}, time.Now())
	require.Equal(t, Matched, res.State)
}

func TestLocateFallsBackForTwoAxisDevice(t *testing.T) {
	l := NewLocator(testTokens, testTimeout)

	res := l.Locate([]Source{
		{Identifier: "Mouse", Axes: []float64{0.3, 0.4}},
	}, time.Now())
	require.Equal(t, FallbackGeneric, res.State)
	require.Equal(t, "Mouse", res.Source.Identifier)
}

func TestLocateFirstMatchWinsInEnumerationOrder(t *testing.T) {
	l := NewLocator(testTokens, testTimeout)

	res := l.Locate([]Source{
		{}, // empty slot is skipped, not a crash
		{Identifier: "Keyboard", Axes: nil},
		{Identifier: "Fanatec CSL", Axes: []float64{0.5}},
		{Identifier: "Simagic P2000", Axes: []float64{0.9}},
	}, time.Now())

	require.Equal(t, Matched, res.State)
	require.Equal(t, "Fanatec CSL", res.Source.Identifier)
}

func TestNoDeviceRequiresLossTimeout(t *testing.T) {
	l := NewLocator(testTokens, testTimeout)
	t0 := time.Now()

	wheel := []Source{{Identifier: "Moza R9", Axes: []float64{0, 0, 0}}}

	res := l.Locate(wheel, t0)
	require.Equal(t, Matched, res.State)

	// Device gone for 1999 ms: state must not have dropped.
	res = l.Locate(nil, t0.Add(1999*time.Millisecond))
	require.Equal(t, Matched, res.State)

	// Reappears just in time: still matched, timer rearmed.
	res = l.Locate(wheel, t0.Add(1999*time.Millisecond))
	require.Equal(t, Matched, res.State)

	// Gone again, now past the timeout since the rearm.
	res = l.Locate(nil, t0.Add(1999*time.Millisecond).Add(testTimeout))
	require.Equal(t, NoDevice, res.State)
}

func TestSearchingHoldsForOneTimeoutWindow(t *testing.T) {
	l := NewLocator(testTokens, testTimeout)
	t0 := time.Now()

	res := l.Locate(nil, t0)
	require.Equal(t, Searching, res.State)

	res = l.Locate(nil, t0.Add(testTimeout-time.Millisecond))
	require.Equal(t, Searching, res.State)

	res = l.Locate(nil, t0.Add(testTimeout))
	require.Equal(t, NoDevice, res.State)
}

func TestRefreshRestartsDetection(t *testing.T) {
	l := NewLocator(testTokens, testTimeout)
	t0 := time.Now()

	l.Locate(nil, t0)
	require.Equal(t, NoDevice, l.Locate(nil, t0.Add(3*time.Second)).State)

	l.Refresh(t0.Add(4 * time.Second))
	require.Equal(t, Searching, l.State())

	// The loss timer restarted at the refresh instant.
	res := l.Locate(nil, t0.Add(4*time.Second).Add(time.Second))
	require.Equal(t, Searching, res.State)
}

func TestMatchingIsCaseInsensitive(t *testing.T) {
	l := NewLocator([]string{"LOGITECH"}, testTimeout)
	res := l.Locate([]Source{{Identifier: "logitech g29 driving force", Axes: []float64{0}}}, time.Now())
	require.Equal(t, Matched, res.State)
}

package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mattcracing/Simmetric/internal/device"
)

// fakePoller returns a scripted set of sources per poll.
type fakePoller struct {
	sources []device.Source
}

func (p *fakePoller) Poll() []device.Source { return p.sources }

func newTestSampler(p device.Poller) (*Sampler, *Session) {
	session := NewSession(200, time.Now())
	locator := device.NewLocator([]string{"simagic", "fanatec"}, 2*time.Second)
	return NewSampler(p, locator, session, 16*time.Millisecond, 16*time.Millisecond), session
}

func TestSampleMatchedAxisAssignment(t *testing.T) {
	// axis 0 = steering, axis 1 = throttle, axis 2 = brake
	p := &fakePoller{sources: []device.Source{
		{Identifier: "Simagic P2000", Axes: []float64{-0.5, 0.5, -1}},
	}}
	s, session := newTestSampler(p)

	s.sample(time.Now())

	require.Equal(t, device.Matched, session.State())
	sig := session.Signal()
	require.InDelta(t, 75.0, sig.Throttle, 1e-9)
	require.InDelta(t, 0.0, sig.Brake, 1e-9)
	require.InDelta(t, 50.0, sig.Steering, 1e-9)
	require.InDelta(t, -225.0, sig.Angle, 1e-9)
}

func TestSamplePowerOnDebounce(t *testing.T) {
	// A matched device whose pedal axes still sit at their power-on 0 must
	// not show 50% pedals.
	p := &fakePoller{sources: []device.Source{
		{Identifier: "Fanatec CSL Pedals", Axes: []float64{0, 0, 0}},
	}}
	s, session := newTestSampler(p)

	s.sample(time.Now())
	sig := session.Signal()
	require.Equal(t, 0.0, sig.Throttle)
	require.Equal(t, 0.0, sig.Brake)

	// Once the throttle moves, a real center reading is 50 again.
	p.sources[0].Axes = []float64{0, 0.5, 0}
	s.sample(time.Now())
	require.InDelta(t, 75.0, session.Signal().Throttle, 1e-9)

	p.sources[0].Axes = []float64{0, 0, 0}
	s.sample(time.Now())
	require.InDelta(t, 50.0, session.Signal().Throttle, 1e-9)
}

func TestSampleMatchedDeviceWithMissingAxes(t *testing.T) {
	// A branded device exposing only a steering axis: pedals read released,
	// nothing crashes.
	p := &fakePoller{sources: []device.Source{
		{Identifier: "Simagic Alpha", Axes: []float64{0.2}},
	}}
	s, session := newTestSampler(p)

	s.sample(time.Now())

	sig := session.Signal()
	require.Equal(t, 0.0, sig.Throttle)
	require.Equal(t, 0.0, sig.Brake)
	require.InDelta(t, 20.0, sig.Steering, 1e-9)
	require.InDelta(t, 90.0, sig.Angle, 1e-9)
}

func TestSampleFallbackInvertedMapping(t *testing.T) {
	// Two axes, unbranded: fallback path with inverted polarity; brake
	// falls back to axis 0 because axis 2 is absent.
	p := &fakePoller{sources: []device.Source{
		{Identifier: "Generic 2-Axis Pad", Axes: []float64{0.5, -0.5}},
	}}
	s, session := newTestSampler(p)

	s.sample(time.Now())

	require.Equal(t, device.FallbackGeneric, session.State())
	sig := session.Signal()
	require.InDelta(t, 75.0, sig.Throttle, 1e-9) // (1-(-0.5))/2*100
	require.InDelta(t, 25.0, sig.Brake, 1e-9)    // axis 0 inverted
	require.InDelta(t, 50.0, sig.Steering, 1e-9)
	require.InDelta(t, -225.0, sig.Angle, 1e-9) // inverted sense
}

func TestSampleLossKeepsSignalUntilTimeout(t *testing.T) {
	p := &fakePoller{sources: []device.Source{
		{Identifier: "Simagic P2000", Axes: []float64{0, 1, 0}},
	}}
	s, session := newTestSampler(p)

	t0 := time.Now()
	s.sample(t0)
	require.InDelta(t, 100.0, session.Signal().Throttle, 1e-9)

	// Device vanishes: within the window the state and signal hold.
	p.sources = nil
	s.sample(t0.Add(1999 * time.Millisecond))
	require.Equal(t, device.Matched, session.State())
	require.InDelta(t, 100.0, session.Signal().Throttle, 1e-9)

	s.sample(t0.Add(4 * time.Second))
	require.Equal(t, device.NoDevice, session.State())
}

func TestRefreshKeepsHistoryAndPeaks(t *testing.T) {
	p := &fakePoller{sources: []device.Source{
		{Identifier: "Simagic P2000", Axes: []float64{1, 1, 0}},
	}}
	s, session := newTestSampler(p)

	s.sample(time.Now())
	session.AppendHistory()
	session.AppendHistory()
	require.Equal(t, 2, session.HistoryLen())
	require.InDelta(t, 100.0, session.Stats().PeakThrottle, 1e-9)

	// Manual refresh: detection restarts, accumulated state survives.
	s.locator.Refresh(time.Now())
	s.session.SetOutcome(device.Result{State: device.Searching})

	require.Equal(t, device.Searching, session.State())
	require.Equal(t, 2, session.HistoryLen())
	require.InDelta(t, 100.0, session.Stats().PeakThrottle, 1e-9)
}

func TestRunStopsOnCancelAndClosesFrames(t *testing.T) {
	p := &fakePoller{}
	s, _ := newTestSampler(p)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// Let a few ticks through, then tear down.
	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sampler did not stop")
	}

	// Frames channel is closed after Run returns.
	for range s.Frames() {
	}
}

package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/mattcracing/Simmetric/internal/axis"
	"github.com/mattcracing/Simmetric/internal/device"
)

// lifecycle is implemented by pollers that need setup/teardown on the
// sampling thread (the SDL poller does).
type lifecycle interface {
	Start() error
	Stop()
}

// Sampler drives the telemetry loop: a sample ticker polls the locator and
// normalizes the reading, an independently tunable history ticker records
// the latest signal into the rolling window and emits a frame. Both tickers
// fire in one goroutine, so the session is never mutated concurrently.
type Sampler struct {
	poller          device.Poller
	locator         *device.Locator
	session         *Session
	sampleInterval  time.Duration
	historyInterval time.Duration
	frames          chan Frame
	refresh         chan struct{}
}

func NewSampler(p device.Poller, l *device.Locator, s *Session, sampleInterval, historyInterval time.Duration) *Sampler {
	return &Sampler{
		poller:          p,
		locator:         l,
		session:         s,
		sampleInterval:  sampleInterval,
		historyInterval: historyInterval,
		frames:          make(chan Frame, 64),
		refresh:         make(chan struct{}, 1),
	}
}

// Frames returns the channel on which snapshots are emitted. It is closed
// when Run returns.
func (s *Sampler) Frames() <-chan Frame {
	return s.frames
}

// Refresh requests the manual refresh operation: connection detection
// restarts (state back to Searching, loss timer rearmed) while history and
// peaks keep accumulating. Safe to call from any goroutine.
func (s *Sampler) Refresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Run executes the sampling loop until ctx is cancelled. It locks the
// calling goroutine to its OS thread for the poller's sake.
func (s *Sampler) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(s.frames)

	if lc, ok := s.poller.(lifecycle); ok {
		if err := lc.Start(); err != nil {
			return err
		}
		defer lc.Stop()
	}

	sampleTick := time.NewTicker(s.sampleInterval)
	defer sampleTick.Stop()
	historyTick := time.NewTicker(s.historyInterval)
	defer historyTick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-s.refresh:
			s.locator.Refresh(time.Now())
			s.session.SetOutcome(device.Result{State: device.Searching})
			slog.Info("device detection refreshed")
			s.emitFrame()

		case <-sampleTick.C:
			s.sample(time.Now())

		case <-historyTick.C:
			s.session.AppendHistory()
			s.emitFrame()
		}
	}
}

// sample runs one locate+normalize cycle.
func (s *Sampler) sample(now time.Time) {
	prev := s.session.State()
	res := s.locator.Locate(s.poller.Poll(), now)

	switch res.State {
	case device.Matched:
		cur := s.session.Signal()
		steer := axis.At(res.Source.Axes, 0, axis.AbsentSteering)
		s.session.Update(res, Signal{
			Throttle: axis.PedalPercentDebounced(axis.At(res.Source.Axes, 1, axis.AbsentPedal), cur.Throttle),
			Brake:    axis.PedalPercentDebounced(axis.At(res.Source.Axes, 2, axis.AbsentPedal), cur.Brake),
			Steering: axis.SteeringPercent(steer),
			Angle:    axis.SteeringAngle(steer),
		})

	case device.FallbackGeneric:
		// Unbranded layout: polarity unknown, inverted sense chosen as
		// the empirically-likely convention.
		steer := axis.At(res.Source.Axes, 0, axis.AbsentSteering)
		brakeRaw := axis.At(res.Source.Axes, 2, axis.At(res.Source.Axes, 0, axis.AbsentPedalInverted))
		s.session.Update(res, Signal{
			Throttle: axis.PedalPercentInverted(axis.At(res.Source.Axes, 1, axis.AbsentPedalInverted)),
			Brake:    axis.PedalPercentInverted(brakeRaw),
			Steering: axis.SteeringPercent(steer),
			Angle:    -axis.SteeringAngle(steer),
		})

	default:
		s.session.SetOutcome(res)
	}

	if cur := s.session.State(); cur != prev {
		slog.Info("connection state changed",
			"from", prev.String(),
			"to", cur.String(),
			"device", res.Source.Identifier)
	}
}

// emitFrame sends a snapshot without ever blocking the sampling thread.
func (s *Sampler) emitFrame() {
	select {
	case s.frames <- s.session.Frame(time.Now()):
	default:
	}
}

package device

import (
	"strings"
	"time"
)

// State classifies the outcome of one locate cycle.
type State int

const (
	// Searching is the initial state and the state after a manual refresh.
	Searching State = iota
	// Matched means a device satisfying the match heuristic was found.
	Matched
	// FallbackGeneric means some device is present but none matched; the
	// best-effort generic axis mapping applies.
	FallbackGeneric
	// NoDevice means nothing usable has been seen for longer than the
	// loss timeout.
	NoDevice
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Matched:
		return "matched"
	case FallbackGeneric:
		return "fallback"
	case NoDevice:
		return "none"
	default:
		return "unknown"
	}
}

// minAxesForMatch: devices exposing at least this many axes are treated as
// a pedal set even when the identifier is unbranded.
const minAxesForMatch = 3

// Result is the outcome of one locate cycle. Source and Axes are only
// meaningful for Matched and FallbackGeneric.
type Result struct {
	State  State
	Source Source
	Axes   []AxisReading
}

// Locator selects at most one active device per cycle and infers the
// connection state, debouncing transient polling misses: the state only
// drops to NoDevice once no match has been seen for the loss timeout.
//
// Locator is not safe for concurrent use; it is owned by the sampling loop.
type Locator struct {
	tokens    []string
	timeout   time.Duration
	state     State
	lastMatch time.Time
}

// NewLocator returns a Locator matching identifiers containing any of the
// given brand/model tokens (case-insensitive). timeout is the window a
// previously seen match may stay absent before the state drops to NoDevice.
func NewLocator(tokens []string, timeout time.Duration) *Locator {
	lowered := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	return &Locator{tokens: lowered, timeout: timeout, state: Searching}
}

// State returns the state inferred by the last Locate call.
func (l *Locator) State() State { return l.state }

// Refresh restarts detection: state back to Searching and the loss timer
// rearmed. History and stats elsewhere are deliberately untouched.
func (l *Locator) Refresh(now time.Time) {
	l.state = Searching
	l.lastMatch = now
}

// Locate scans the slots in enumeration order and picks the first match.
// It never fails: missing devices and short axis lists degrade to fallback
// or NoDevice, not errors.
func (l *Locator) Locate(sources []Source, now time.Time) Result {
	// The loss timer starts on the first cycle so a machine with no
	// device shows Searching for one timeout window, then NoDevice.
	if l.lastMatch.IsZero() {
		l.lastMatch = now
	}

	var first *Source
	for i := range sources {
		if !sources[i].Present() {
			continue
		}
		if first == nil {
			first = &sources[i]
		}
		if l.matches(sources[i]) {
			l.state = Matched
			l.lastMatch = now
			return Result{State: Matched, Source: sources[i], Axes: readings(sources[i].Axes)}
		}
	}

	if first != nil {
		l.state = FallbackGeneric
		return Result{State: FallbackGeneric, Source: *first, Axes: readings(first.Axes)}
	}

	if now.Sub(l.lastMatch) >= l.timeout {
		l.state = NoDevice
	}
	return Result{State: l.state}
}

func (l *Locator) matches(s Source) bool {
	if len(s.Axes) >= minAxesForMatch {
		return true
	}
	id := strings.ToLower(s.Identifier)
	for _, t := range l.tokens {
		if strings.Contains(id, t) {
			return true
		}
	}
	return false
}

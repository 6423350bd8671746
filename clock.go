package gotick

import (
	"log/slog"
	"sync"
	"time"

	"braces.dev/errtrace"
)

// ClockKind identifies the time base of a [Clock].
type ClockKind uint8

const (
	// ClockSystem follows the host wall clock.
	ClockSystem ClockKind = iota + 1
	// ClockManual is driven explicitly with [Clock.SetNow] and
	// [Clock.Advance]. It never moves on its own.
	ClockManual
)

func (k ClockKind) String() string {
	switch k {
	case ClockSystem:
		return "system"
	case ClockManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Clock is a shared time base. Many timers may be bound to a single clock;
// the clock stays valid as long as any of them holds a reference to it.
//
// The clock's state lock serializes timer handle initialization and
// finalization with mutation of the clock state itself, so a manual clock
// can't be advanced in the middle of either.
type Clock struct {
	kind ClockKind

	// mu guards the clock state and serializes engine handle init/fini
	// against it.
	mu  sync.Mutex
	now time.Time
}

// NewSystemClock creates a clock following the host wall clock.
func NewSystemClock() *Clock {
	return &Clock{kind: ClockSystem}
}

// NewManualClock creates a test-controllable clock starting at start.
func NewManualClock(start time.Time) *Clock {
	return &Clock{kind: ClockManual, now: start}
}

// Kind returns the clock's time base kind.
func (c *Clock) Kind() ClockKind { return c.kind }

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nowLocked()
}

// nowLocked reads the current time. Caller must hold mu.
func (c *Clock) nowLocked() time.Time {
	if c.kind == ClockManual {
		return c.now
	}
	return time.Now()
}

// SetNow moves a manual clock to the given instant.
// Returns [ErrInvalidArgument] for non-manual clocks.
func (c *Clock) SetNow(now time.Time) error {
	if c.kind != ClockManual {
		return errtrace.Wrap(NewInvalidArgumentError("clock kind %q is not adjustable", c.kind))
	}
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return nil
}

// Advance moves a manual clock forward by d.
// Returns [ErrInvalidArgument] for non-manual clocks.
func (c *Clock) Advance(d time.Duration) error {
	if c.kind != ClockManual {
		return errtrace.Wrap(NewInvalidArgumentError("clock kind %q is not adjustable", c.kind))
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	return nil
}

func (c *Clock) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("ptr", ptrString(c)),
		slog.String("kind", c.kind.String()),
	)
}

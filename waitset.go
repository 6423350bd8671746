package gotick

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"braces.dev/errtrace"

	"github.com/michaelbabenko/gotick/log"
)

// maxPollInterval caps how long a wait sleeps between readiness polls, so a
// manually advanced clock is still observed promptly.
const maxPollInterval = 10 * time.Millisecond

// WaitSetOptions contains options for a wait set.
type WaitSetOptions struct {
	// Log is the logger that will be used with the wait set.
	// If nil, the [log.Default] will be used.
	Log *slog.Logger
}

func (o *WaitSetOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// WaitSet multiplexes readiness polling over many timers. Each timer is
// claimed exclusively through its in-use flag, so two wait sets can never
// evaluate the same timer concurrently.
type WaitSet struct {
	logger *slog.Logger

	mu     sync.Mutex
	timers []*Timer
}

// NewWaitSet creates an empty wait set.
func NewWaitSet(opts *WaitSetOptions) *WaitSet {
	return &WaitSet{logger: opts.log()}
}

// Add claims the timer for this wait set and starts polling it.
// Returns [ErrTimerInUse] if another wait set already holds it.
func (w *WaitSet) Add(t *Timer) error {
	if t == nil {
		return errtrace.Wrap(NewInvalidArgumentError("invalid timer"))
	}
	if t.ExchangeInUse(true) {
		return errtrace.Wrap(ErrTimerInUse)
	}
	w.mu.Lock()
	w.timers = append(w.timers, t)
	w.mu.Unlock()
	return nil
}

// Remove releases the timer's in-use claim and stops polling it.
// Removing a timer that is not in the set is a no-op.
func (w *WaitSet) Remove(t *Timer) {
	w.mu.Lock()
	i := slices.Index(w.timers, t)
	if i >= 0 {
		w.timers = slices.Delete(w.timers, i, i+1)
	}
	w.mu.Unlock()
	if i >= 0 {
		t.ExchangeInUse(false)
	}
}

// Len returns the number of timers held by the wait set.
func (w *WaitSet) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

// Wait blocks until at least one held timer is ready and returns all ready
// timers, or until ctx is done. Timers whose polling fails are logged and
// skipped for that round.
func (w *WaitSet) Wait(ctx context.Context) ([]*Timer, error) {
	// Stopped timer reused across iterations, so the first pass needs no
	// nil checks and no stale tick is ever read.
	tm := time.NewTimer(0)
	if !tm.Stop() {
		<-tm.C
	}
	defer tm.Stop()

	for {
		ready, next := w.poll()
		if len(ready) > 0 {
			return ready, nil
		}

		if next <= 0 || next > maxPollInterval {
			next = maxPollInterval
		}
		tm.Reset(next)

		select {
		case <-ctx.Done():
			return nil, errtrace.Wrap(ctx.Err())
		case <-tm.C:
		}
	}
}

// poll checks every held timer once, returning the ready ones and the
// shortest time-until-trigger among the rest.
func (w *WaitSet) poll() ([]*Timer, time.Duration) {
	w.mu.Lock()
	timers := slices.Clone(w.timers)
	w.mu.Unlock()

	var ready []*Timer
	next := MaxDuration
	for _, t := range timers {
		ok, err := t.IsReady()
		if err != nil {
			w.logger.Warn("skipping timer: readiness query failed",
				slog.Any("timer", t),
				slog.Any("error", err),
			)
			continue
		}
		if ok {
			ready = append(ready, t)
			continue
		}
		d, err := t.TimeUntilTrigger()
		if err != nil {
			w.logger.Warn("skipping timer: time-until-trigger query failed",
				slog.Any("timer", t),
				slog.Any("error", err),
			)
			continue
		}
		if d < next {
			next = d
		}
	}
	return ready, next
}

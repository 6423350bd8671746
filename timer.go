package gotick

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"braces.dev/errtrace"

	"github.com/michaelbabenko/gotick/log"
)

// MaxDuration is the sentinel returned by [Timer.TimeUntilTrigger] for a
// canceled timer: it never fires.
const MaxDuration = time.Duration(math.MaxInt64)

// TimerOptions contains options for a timer.
type TimerOptions struct {
	// Context is the execution context the timer is bound to.
	// If nil, the process-wide [DefaultContext] is used.
	Context *Context
	// Engine is the timing engine tracking the timer's deadlines.
	// If nil, the [DefaultEngine] is used.
	Engine Engine
	// Log is the logger that will be used with the timer.
	// If nil, the [log.Default] will be used.
	Log *slog.Logger
}

func (o *TimerOptions) context() *Context {
	if o == nil || o.Context == nil {
		return DefaultContext()
	}
	return o.Context
}

func (o *TimerOptions) engine() Engine {
	if o == nil || o.Engine == nil {
		return DefaultEngine()
	}
	return o.Engine
}

func (o *TimerOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// Timer is a periodic timer safe for use from multiple goroutines at once.
//
// A timer owns exactly one engine handle bound to a shared clock and an
// execution context. The handle stays valid until [Timer.Close], which
// finalizes it while the clock and context are still referenced and only
// then lets go of them.
type Timer struct {
	clock  *Clock
	ectx   *Context
	h      EngineHandle
	period time.Duration
	logger *slog.Logger

	// cbMu serializes resets with callback install, replace and clear.
	cbMu    sync.Mutex
	onReset ResetCallback
	cbSet   bool

	inUse  atomic.Bool
	closed atomic.Bool
}

// NewTimer creates a timer bound to the clock with the given period.
// The period counts from now: the first trigger is due one period after
// construction. Initialization failure is reported as [InitError] and no
// timer exists in that case.
func NewTimer(clock *Clock, period time.Duration, opts *TimerOptions) (*Timer, error) {
	if clock == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid clock"))
	}
	if period < 0 {
		return nil, errtrace.Wrap(NewInvalidArgumentError("negative period %s", period))
	}

	ectx := opts.context()
	eng := opts.engine()

	// Hold the clock's state lock across handle initialization, so a shared
	// clock can't mutate mid-init under other timers' feet.
	clock.mu.Lock()
	h, err := eng.Init(clock, ectx, period)
	clock.mu.Unlock()
	if err != nil {
		return nil, errtrace.Wrap(&InitError{Err: err})
	}

	return &Timer{
		clock:  clock,
		ectx:   ectx,
		h:      h,
		period: period,
		logger: opts.log(),
	}, nil
}

// Close destroys the timer: it clears any installed on-reset callback, then
// finalizes the engine handle under the clock's state lock while the clock
// and context references are still alive, and releases those references only
// after finalization completed. A finalization failure is logged, never
// propagated. Close is idempotent and other timers sharing the same clock
// are unaffected.
func (t *Timer) Close() {
	if t.closed.Swap(true) {
		return
	}

	t.cbMu.Lock()
	t.clearOnResetCallbackLocked()
	t.cbMu.Unlock()

	clock := t.clock

	clock.mu.Lock()
	err := t.h.Fini()
	clock.mu.Unlock()
	if err != nil {
		t.logger.Error("failed to finalize timer handle",
			slog.Any("timer", t),
			slog.Any("error", err),
		)
	}

	// The handle is finalized; only now may the clock and context references
	// be dropped.
	t.clock, t.ectx = nil, nil
}

// Handle returns the underlying engine handle for integration with an
// external multiplexer's polling mechanism. Treat it as read-only.
func (t *Timer) Handle() EngineHandle { return t.h }

// Period returns the timer period.
func (t *Timer) Period() time.Duration { return t.period }

// Cancel marks the timer canceled. It does not wait for an in-flight
// callback invocation on another goroutine.
func (t *Timer) Cancel() error {
	if t.closed.Load() {
		return errtrace.Wrap(ErrTimerClosed)
	}
	if err := t.h.Cancel(); err != nil {
		return errtrace.Wrap(newEngineError("cancel", err))
	}
	return nil
}

// IsCanceled reports whether the timer is canceled.
func (t *Timer) IsCanceled() (bool, error) {
	if t.closed.Load() {
		return false, errtrace.Wrap(ErrTimerClosed)
	}
	canceled, err := t.h.IsCanceled()
	if err != nil {
		return false, errtrace.Wrap(newEngineError("query-canceled", err))
	}
	return canceled, nil
}

// Reset restarts the timer's next-deadline computation from now, clearing
// the canceled state. The installed on-reset callback, if any, fires once
// per reset in its own goroutine. Reset holds the callback lock for the
// duration of the engine call, so it can't race a concurrent callback
// replacement.
func (t *Timer) Reset() error {
	if t.closed.Load() {
		return errtrace.Wrap(ErrTimerClosed)
	}
	t.cbMu.Lock()
	err := t.h.Reset()
	t.cbMu.Unlock()
	if err != nil {
		return errtrace.Wrap(newEngineError("reset", err))
	}
	return nil
}

// IsReady reports whether the timer's deadline has passed. A canceled timer
// is never ready.
func (t *Timer) IsReady() (bool, error) {
	if t.closed.Load() {
		return false, errtrace.Wrap(ErrTimerClosed)
	}
	ready, err := t.h.IsReady()
	if err != nil {
		return false, errtrace.Wrap(newEngineError("query-ready", err))
	}
	return ready, nil
}

// TimeUntilTrigger returns the duration remaining until the timer is due.
// For a canceled timer it returns [MaxDuration] without error: canceled is
// an ordinary polling outcome here, not a failure.
func (t *Timer) TimeUntilTrigger() (time.Duration, error) {
	if t.closed.Load() {
		return 0, errtrace.Wrap(ErrTimerClosed)
	}
	d, err := t.h.TimeUntilNext()
	if err != nil {
		if errors.Is(err, ErrTimerCanceled) {
			return MaxDuration, nil
		}
		return 0, errtrace.Wrap(newEngineError("time-until-trigger", err))
	}
	return d, nil
}

// ResetCount returns the number of resets observed by the engine so far.
func (t *Timer) ResetCount() (uint64, error) {
	if t.closed.Load() {
		return 0, errtrace.Wrap(ErrTimerClosed)
	}
	n, err := t.h.ResetCount()
	if err != nil {
		return 0, errtrace.Wrap(newEngineError("query-reset-count", err))
	}
	return n, nil
}

// SetOnResetCallback installs fn as the timer's on-reset callback, replacing
// any previous one. The callback runs in its own goroutine on every reset
// and may itself call back into this timer. A panic raised by fn is caught
// and logged with the timer's identity; it never reaches the engine or the
// caller that triggered the reset.
func (t *Timer) SetOnResetCallback(fn ResetCallback) error {
	if fn == nil {
		return errtrace.Wrap(NewInvalidArgumentError("the on-reset callback is not callable"))
	}

	adapter := ResetCallback(func(resetCount uint64) {
		defer func() {
			if r := recover(); r != nil {
				t.logger.Error("recovered panic in user on-reset callback",
					slog.Any("timer", t),
					slog.Any("panic", log.FmtValue(r, false)),
				)
			}
		}()
		fn(resetCount)
	})

	t.cbMu.Lock()
	defer t.cbMu.Unlock()

	if t.closed.Load() {
		return errtrace.Wrap(ErrTimerClosed)
	}

	// Anchor the engine to a temporary first, while the old permanent slot
	// is being replaced. This two-step re-pointing leaves no instant where
	// the engine is registered against a callback that is about to go away.
	tmp := adapter
	if err := t.h.SetResetCallback(&tmp); err != nil {
		return errtrace.Wrap(newEngineError("set-callback", err))
	}

	// Move the adapter into permanent storage, overwriting the old one. The
	// slot counts as occupied from here on: even if the re-pointing below
	// fails, the engine still holds the temporary registration and a later
	// clear must unregister it.
	t.onReset = adapter
	t.cbSet = true

	// Re-point the engine to the permanent storage.
	if err := t.h.SetResetCallback(&t.onReset); err != nil {
		return errtrace.Wrap(newEngineError("set-callback", err))
	}
	return nil
}

// ClearOnResetCallback uninstalls the on-reset callback, if any.
// It is a no-op when nothing is installed.
func (t *Timer) ClearOnResetCallback() {
	t.cbMu.Lock()
	defer t.cbMu.Unlock()
	t.clearOnResetCallbackLocked()
}

// clearOnResetCallbackLocked unregisters the engine callback pointer and
// releases the stored callback. Caller must hold cbMu.
func (t *Timer) clearOnResetCallbackLocked() {
	if !t.cbSet {
		return
	}
	if err := t.h.SetResetCallback(nil); err != nil {
		// Clearing can only fail on an invalid handle, which means the
		// lifecycle invariants are already broken.
		panic(fmt.Sprintf("gotick: couldn't clear timer on-reset callback: %v", err))
	}
	t.onReset = nil
	t.cbSet = false
}

// ExchangeInUse atomically swaps the wait-set in-use flag and returns the
// previous value. A false return means the caller claimed the timer.
func (t *Timer) ExchangeInUse(inUse bool) bool {
	return t.inUse.Swap(inUse)
}

func (t *Timer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("ptr", ptrString(t)),
		slog.Duration("period", t.period),
	)
}

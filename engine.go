package gotick

import (
	"time"
)

//go:generate mockgen -source=engine.go -destination=internal/enginemock/engine.go -package=enginemock

// ResetCallback is user code invoked whenever a timer's reset counter
// advances. resetCount is the total number of resets observed by the engine
// for this timer so far.
type ResetCallback func(resetCount uint64)

// Engine is the timing engine a timer delegates deadline tracking to.
// It tracks absolute deadlines against a clock and answers readiness and
// time-remaining queries. Engine calls are expected to be fast, in-process
// and non-suspending.
type Engine interface {
	// Init allocates a native timer record bound to the clock and execution
	// context with the given period. Init is invoked with the clock's state
	// lock held, so engines must read the time base without re-acquiring it.
	Init(clock *Clock, ectx *Context, period time.Duration) (EngineHandle, error)
}

// EngineHandle is an exclusively-owned native timer record inside an
// [Engine]. It must never be used after Fini.
type EngineHandle interface {
	// Fini finalizes the record. Invoked with the clock's state lock held,
	// and strictly before the owning timer drops its clock and context
	// references. Returns [ErrHandleFinalized] if already finalized.
	Fini() error
	// Cancel marks the timer canceled. A canceled timer is never ready and
	// reports [ErrTimerCanceled] from TimeUntilNext until the next Reset.
	Cancel() error
	// IsCanceled reports whether the timer is currently canceled.
	IsCanceled() (bool, error)
	// Reset recomputes the next deadline from the current clock time, clears
	// the canceled state, advances the reset counter and fires the
	// registered reset callback, if any, in its own goroutine.
	Reset() error
	// IsReady reports whether the timer's deadline has passed. Canceled
	// timers are never ready; that is ordinary state, not an error.
	IsReady() (bool, error)
	// TimeUntilNext returns the duration remaining until the next deadline,
	// or [ErrTimerCanceled] as a distinguished status when the timer is
	// canceled.
	TimeUntilNext() (time.Duration, error)
	// ResetCount returns the number of resets observed so far.
	ResetCount() (uint64, error)
	// SetResetCallback registers the address the engine invokes through on
	// every reset, replacing any previous registration. A nil pointer clears
	// the registration. The pointed-to value is read at fire time; callers
	// must serialize registration with resets touching the same storage.
	SetResetCallback(cb *ResetCallback) error
}

package gotick

import (
	"fmt"

	"github.com/michaelbabenko/gotick/internal/errorutil"
)

// Common errors.
const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument

	// ErrTimerCanceled is the distinguished engine status meaning the timer
	// is canceled. For [Timer.TimeUntilTrigger] it is not a failure: a
	// canceled timer simply never fires.
	ErrTimerCanceled Error = "timer canceled"
	// ErrTimerClosed is returned when attempting to use a closed timer.
	ErrTimerClosed Error = "timer closed"
	// ErrHandleFinalized is returned by an engine when the native timer
	// record was already finalized.
	ErrHandleFinalized Error = "timer handle finalized"
	// ErrContextShutdown is returned when a timer is bound to an execution
	// context that was already shut down.
	ErrContextShutdown Error = "execution context is shut down"
	// ErrTimerInUse is returned when a wait set fails to claim a timer that
	// is already held by another wait set.
	ErrTimerInUse Error = "timer is in use by another wait set"
)

// Error represents a gotick error.
// See [errorutil.Error].
type Error = errorutil.Error

// NewInvalidArgumentError creates a new error with [ErrInvalidArgument] or
// wraps provided error with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}

// InitError is returned when the timing engine fails to create and bind a
// timer handle. No usable timer exists in that case.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("couldn't initialize timer handle: %v", e.Err)
}

func (e *InitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EngineError is returned when a state query or mutation fails against the
// timing engine. Op names the failed operation, Err carries the engine
// diagnostic. Engine failures are never retried.
type EngineError struct {
	Op  string
	Err error
}

func newEngineError(op string, err error) *EngineError {
	return &EngineError{Op: op, Err: err}
}

func (e *EngineError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("timer engine %q failed: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

package gotick

import (
	"sync"
	"time"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"
)

// Record lifecycle states and triggers of the deadline engine.
type (
	engineState   string
	engineTrigger string
)

const (
	stateArmed     engineState = "armed"
	stateCanceled  engineState = "canceled"
	stateFinalized engineState = "finalized"

	triggerReset  engineTrigger = "reset"
	triggerCancel engineTrigger = "cancel"
	triggerFini   engineTrigger = "fini"
)

func newHandleFSM() *stateless.StateMachine {
	sm := stateless.NewStateMachine(stateArmed)
	sm.Configure(stateArmed).
		PermitReentry(triggerReset).
		Permit(triggerCancel, stateCanceled).
		Permit(triggerFini, stateFinalized)
	sm.Configure(stateCanceled).
		PermitReentry(triggerCancel).
		Permit(triggerReset, stateArmed).
		Permit(triggerFini, stateFinalized)
	return sm
}

// DeadlineEngine is the default in-process timing engine. It tracks one
// absolute next-deadline per timer record against the record's bound clock.
type DeadlineEngine struct{}

var defEngine DeadlineEngine

// DefaultEngine returns the process default timing engine.
func DefaultEngine() *DeadlineEngine { return &defEngine }

func (e *DeadlineEngine) Init(clock *Clock, ectx *Context, period time.Duration) (EngineHandle, error) {
	if clock == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid clock"))
	}
	if ectx == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid execution context"))
	}
	if period < 0 {
		return nil, errtrace.Wrap(NewInvalidArgumentError("negative period %s", period))
	}
	if !ectx.IsValid() {
		return nil, errtrace.Wrap(ErrContextShutdown)
	}
	return &deadlineHandle{
		clock:  clock,
		ectx:   ectx,
		fsm:    newHandleFSM(),
		period: period,
		next:   clock.nowLocked().Add(period),
	}, nil
}

// deadlineHandle is one timer record inside the deadline engine.
type deadlineHandle struct {
	// mu is the record lock. It is never held across a clock read, so the
	// clock-then-record lock order of handle init/fini stays deadlock-free.
	mu     sync.Mutex
	fsm    *stateless.StateMachine
	clock  *Clock
	ectx   *Context
	period time.Duration
	next   time.Time
	resets uint64
	cb     *ResetCallback
}

// fire drives the record FSM. Caller must hold mu.
func (h *deadlineHandle) fire(tr engineTrigger) error {
	if h.fsm.MustState() == stateFinalized {
		return errtrace.Wrap(ErrHandleFinalized)
	}
	return errtrace.Wrap(h.fsm.Fire(tr))
}

func (h *deadlineHandle) Fini() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fire(triggerFini); err != nil {
		return errtrace.Wrap(err)
	}
	// The record is dead: drop the callback registration and the clock and
	// context references it was bound to.
	h.cb = nil
	h.clock = nil
	h.ectx = nil
	return nil
}

func (h *deadlineHandle) Cancel() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return errtrace.Wrap(h.fire(triggerCancel))
}

func (h *deadlineHandle) IsCanceled() (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch h.fsm.MustState() {
	case stateFinalized:
		return false, errtrace.Wrap(ErrHandleFinalized)
	case stateCanceled:
		return true, nil
	default:
		return false, nil
	}
}

func (h *deadlineHandle) Reset() error {
	h.mu.Lock()
	if h.fsm.MustState() == stateFinalized {
		h.mu.Unlock()
		return errtrace.Wrap(ErrHandleFinalized)
	}
	clock := h.clock
	h.mu.Unlock()

	// Read the clock outside the record lock, see lock order note above.
	now := clock.Now()

	// The transition and the deadline write-back share one critical section:
	// a Fini that slipped in during the clock read makes the fire fail here
	// instead of letting a stale reset mutate a finalized record.
	h.mu.Lock()
	if err := h.fire(triggerReset); err != nil {
		h.mu.Unlock()
		return errtrace.Wrap(err)
	}
	h.next = now.Add(h.period)
	h.resets++
	n := h.resets
	var fn ResetCallback
	if h.cb != nil {
		fn = *h.cb
	}
	h.mu.Unlock()

	if fn != nil {
		// Like time.AfterFunc, the callback runs in its own goroutine, so it
		// may call back into the timer that owns this record.
		go fn(n)
	}
	return nil
}

func (h *deadlineHandle) IsReady() (bool, error) {
	h.mu.Lock()
	switch h.fsm.MustState() {
	case stateFinalized:
		h.mu.Unlock()
		return false, errtrace.Wrap(ErrHandleFinalized)
	case stateCanceled:
		h.mu.Unlock()
		return false, nil
	}
	clock, next := h.clock, h.next
	h.mu.Unlock()

	return !clock.Now().Before(next), nil
}

func (h *deadlineHandle) TimeUntilNext() (time.Duration, error) {
	h.mu.Lock()
	switch h.fsm.MustState() {
	case stateFinalized:
		h.mu.Unlock()
		return 0, errtrace.Wrap(ErrHandleFinalized)
	case stateCanceled:
		h.mu.Unlock()
		return 0, errtrace.Wrap(ErrTimerCanceled)
	}
	clock, next := h.clock, h.next
	h.mu.Unlock()

	return next.Sub(clock.Now()), nil
}

func (h *deadlineHandle) ResetCount() (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fsm.MustState() == stateFinalized {
		return 0, errtrace.Wrap(ErrHandleFinalized)
	}
	return h.resets, nil
}

func (h *deadlineHandle) SetResetCallback(cb *ResetCallback) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fsm.MustState() == stateFinalized {
		return errtrace.Wrap(ErrHandleFinalized)
	}
	h.cb = cb
	return nil
}

package gotick_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/michaelbabenko/gotick"
	"github.com/michaelbabenko/gotick/log"
)

// recordSink is a slog handler that forwards records to a channel.
type recordSink struct {
	ch chan slog.Record
}

func newRecordSink() *recordSink {
	return &recordSink{ch: make(chan slog.Record, 16)}
}

func (s *recordSink) Enabled(context.Context, slog.Level) bool { return true }

func (s *recordSink) Handle(_ context.Context, r slog.Record) error {
	s.ch <- r.Clone()
	return nil
}

func (s *recordSink) WithAttrs([]slog.Attr) slog.Handler { return s }

func (s *recordSink) WithGroup(string) slog.Handler { return s }

func newTestTimer(t *testing.T, clock *gotick.Clock, period time.Duration) *gotick.Timer {
	t.Helper()

	tm, err := gotick.NewTimer(clock, period, &gotick.TimerOptions{
		Context: gotick.NewContext(),
		Log:     log.Noop,
	})
	if err != nil {
		t.Fatalf("gotick.NewTimer(clock, %s, opts) error = %v, want nil", period, err)
	}
	t.Cleanup(tm.Close)
	return tm
}

func TestNewTimer_NotCanceled(t *testing.T) {
	t.Parallel()

	tm := newTestTimer(t, gotick.NewManualClock(time.Unix(0, 0)), time.Second)

	if canceled, err := tm.IsCanceled(); err != nil || canceled {
		t.Fatalf("tm.IsCanceled() = (%v, %v), want (false, nil)", canceled, err)
	}
}

func TestNewTimer_InvalidArguments(t *testing.T) {
	t.Parallel()

	if _, err := gotick.NewTimer(nil, time.Second, nil); !errors.Is(err, gotick.ErrInvalidArgument) {
		t.Fatalf("gotick.NewTimer(nil, 1s, nil) error = %v, want %v", err, gotick.ErrInvalidArgument)
	}
	if _, err := gotick.NewTimer(gotick.NewSystemClock(), -time.Second, nil); !errors.Is(err, gotick.ErrInvalidArgument) {
		t.Fatalf("gotick.NewTimer(clock, -1s, nil) error = %v, want %v", err, gotick.ErrInvalidArgument)
	}
}

func TestTimer_CancelThenQuery(t *testing.T) {
	t.Parallel()

	tm := newTestTimer(t, gotick.NewManualClock(time.Unix(0, 0)), time.Second)

	if err := tm.Cancel(); err != nil {
		t.Fatalf("tm.Cancel() error = %v, want nil", err)
	}
	if canceled, err := tm.IsCanceled(); err != nil || !canceled {
		t.Fatalf("tm.IsCanceled() after cancel = (%v, %v), want (true, nil)", canceled, err)
	}

	// Canceled is a polling outcome for time-until-trigger, not an error.
	if d, err := tm.TimeUntilTrigger(); err != nil || d != gotick.MaxDuration {
		t.Fatalf("tm.TimeUntilTrigger() after cancel = (%v, %v), want (%v, nil)", d, err, gotick.MaxDuration)
	}
}

func TestTimer_ResetClearsCanceled(t *testing.T) {
	t.Parallel()

	tm := newTestTimer(t, gotick.NewManualClock(time.Unix(0, 0)), time.Second)

	if err := tm.Cancel(); err != nil {
		t.Fatalf("tm.Cancel() error = %v, want nil", err)
	}

	// Double reset is equivalent to a single one for the canceled state.
	for range 2 {
		if err := tm.Reset(); err != nil {
			t.Fatalf("tm.Reset() error = %v, want nil", err)
		}
		if canceled, err := tm.IsCanceled(); err != nil || canceled {
			t.Fatalf("tm.IsCanceled() after reset = (%v, %v), want (false, nil)", canceled, err)
		}
	}
}

func TestTimer_ReadyAfterPeriod(t *testing.T) {
	t.Parallel()

	clock := gotick.NewManualClock(time.Unix(0, 0))
	tm := newTestTimer(t, clock, 5*time.Second)

	if ready, err := tm.IsReady(); err != nil || ready {
		t.Fatalf("tm.IsReady() = (%v, %v), want (false, nil)", ready, err)
	}
	if d, err := tm.TimeUntilTrigger(); err != nil || d != 5*time.Second {
		t.Fatalf("tm.TimeUntilTrigger() = (%v, %v), want (5s, nil)", d, err)
	}

	if err := clock.Advance(5 * time.Second); err != nil {
		t.Fatalf("clock.Advance(5s) error = %v, want nil", err)
	}
	if ready, err := tm.IsReady(); err != nil || !ready {
		t.Fatalf("tm.IsReady() after advance = (%v, %v), want (true, nil)", ready, err)
	}
}

func TestTimer_ReplaceCallback(t *testing.T) {
	t.Parallel()

	tm := newTestTimer(t, gotick.NewManualClock(time.Unix(0, 0)), time.Second)

	fired := make(chan int, 2)
	if err := tm.SetOnResetCallback(func(uint64) { fired <- 1 }); err != nil {
		t.Fatalf("tm.SetOnResetCallback(first) error = %v, want nil", err)
	}
	if err := tm.SetOnResetCallback(func(uint64) { fired <- 2 }); err != nil {
		t.Fatalf("tm.SetOnResetCallback(second) error = %v, want nil", err)
	}

	if err := tm.Reset(); err != nil {
		t.Fatalf("tm.Reset() error = %v, want nil", err)
	}

	select {
	case id := <-fired:
		if id != 2 {
			t.Fatalf("callback %d fired, want only the newest (2)", id)
		}
	case <-time.After(time.Second):
		t.Fatal("on-reset callback was not invoked")
	}

	// Exactly once per reset, never both.
	select {
	case id := <-fired:
		t.Fatalf("extra callback %d fired after a single reset", id)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTimer_SetOnResetCallback_Nil(t *testing.T) {
	t.Parallel()

	tm := newTestTimer(t, gotick.NewManualClock(time.Unix(0, 0)), time.Second)

	if err := tm.SetOnResetCallback(nil); !errors.Is(err, gotick.ErrInvalidArgument) {
		t.Fatalf("tm.SetOnResetCallback(nil) error = %v, want %v", err, gotick.ErrInvalidArgument)
	}
}

func TestTimer_ClearCallback(t *testing.T) {
	t.Parallel()

	tm := newTestTimer(t, gotick.NewManualClock(time.Unix(0, 0)), time.Second)

	fired := make(chan struct{}, 1)
	if err := tm.SetOnResetCallback(func(uint64) { fired <- struct{}{} }); err != nil {
		t.Fatalf("tm.SetOnResetCallback(cb) error = %v, want nil", err)
	}

	tm.ClearOnResetCallback()
	tm.ClearOnResetCallback() // idempotent

	if err := tm.Reset(); err != nil {
		t.Fatalf("tm.Reset() after clear error = %v, want nil", err)
	}

	select {
	case <-fired:
		t.Fatal("on-reset callback invoked after clear")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTimer_CallbackPanic(t *testing.T) {
	t.Parallel()

	sink := newRecordSink()
	tm, err := gotick.NewTimer(gotick.NewManualClock(time.Unix(0, 0)), time.Second, &gotick.TimerOptions{
		Context: gotick.NewContext(),
		Log:     slog.New(sink),
	})
	if err != nil {
		t.Fatalf("gotick.NewTimer(clock, 1s, opts) error = %v, want nil", err)
	}
	defer tm.Close()

	if err := tm.SetOnResetCallback(func(uint64) { panic("user callback fault") }); err != nil {
		t.Fatalf("tm.SetOnResetCallback(cb) error = %v, want nil", err)
	}

	// The panic stays inside the callback adapter: reset succeeds.
	if err := tm.Reset(); err != nil {
		t.Fatalf("tm.Reset() error = %v, want nil", err)
	}

	select {
	case r := <-sink.ch:
		if r.Level != slog.LevelError {
			t.Fatalf("panic logged at level %v, want %v", r.Level, slog.LevelError)
		}
	case <-time.After(time.Second):
		t.Fatal("callback panic was not logged")
	}
}

func TestTimer_ExchangeInUse(t *testing.T) {
	t.Parallel()

	tm := newTestTimer(t, gotick.NewManualClock(time.Unix(0, 0)), time.Second)

	if prev := tm.ExchangeInUse(true); prev {
		t.Fatal("tm.ExchangeInUse(true) = true on fresh timer, want false")
	}
	if prev := tm.ExchangeInUse(false); !prev {
		t.Fatal("tm.ExchangeInUse(false) = false, want true")
	}
}

func TestTimer_ExchangeInUse_Race(t *testing.T) {
	t.Parallel()

	tm := newTestTimer(t, gotick.NewManualClock(time.Unix(0, 0)), time.Second)

	start := make(chan struct{})
	prevs := make(chan bool, 2)
	for range 2 {
		go func() {
			<-start
			prevs <- tm.ExchangeInUse(true)
		}()
	}
	close(start)

	first, second := <-prevs, <-prevs
	if first == second {
		t.Fatalf("concurrent ExchangeInUse(true) = (%v, %v), want exactly one claimer", first, second)
	}
}

func TestTimer_CloseSharedClock(t *testing.T) {
	t.Parallel()

	clock := gotick.NewManualClock(time.Unix(0, 0))
	tm1 := newTestTimer(t, clock, time.Second)
	tm2 := newTestTimer(t, clock, time.Second)

	tm1.Close()
	tm1.Close() // idempotent

	if err := tm1.Reset(); !errors.Is(err, gotick.ErrTimerClosed) {
		t.Fatalf("tm1.Reset() after close error = %v, want %v", err, gotick.ErrTimerClosed)
	}

	// The shared clock and the second timer are unaffected.
	if err := clock.Advance(time.Second); err != nil {
		t.Fatalf("clock.Advance(1s) error = %v, want nil", err)
	}
	if ready, err := tm2.IsReady(); err != nil || !ready {
		t.Fatalf("tm2.IsReady() = (%v, %v), want (true, nil)", ready, err)
	}
}

func TestTimer_ConstructCloseStress(t *testing.T) {
	t.Parallel()

	clock := gotick.NewManualClock(time.Unix(0, 0))
	ectx := gotick.NewContext()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				tm, err := gotick.NewTimer(clock, time.Millisecond, &gotick.TimerOptions{
					Context: ectx,
					Log:     log.Noop,
				})
				if err != nil {
					t.Errorf("gotick.NewTimer(clock, 1ms, opts) error = %v, want nil", err)
					return
				}
				if _, err := tm.IsReady(); err != nil {
					t.Errorf("tm.IsReady() error = %v, want nil", err)
				}
				tm.Close()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 100 {
			if err := clock.Advance(time.Millisecond); err != nil {
				t.Errorf("clock.Advance(1ms) error = %v, want nil", err)
				return
			}
		}
	}()
	wg.Wait()
}

func TestTimer_ConcurrentResetAndReplace(t *testing.T) {
	t.Parallel()

	tm := newTestTimer(t, gotick.NewManualClock(time.Unix(0, 0)), time.Second)

	const installers = 4

	var mu sync.Mutex
	firedIDs := make(map[int]struct{})

	var wg sync.WaitGroup
	for id := range installers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				err := tm.SetOnResetCallback(func(uint64) {
					mu.Lock()
					firedIDs[id] = struct{}{}
					mu.Unlock()
				})
				if err != nil {
					t.Errorf("tm.SetOnResetCallback(cb) error = %v, want nil", err)
					return
				}
			}
		}()
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if err := tm.Reset(); err != nil {
					t.Errorf("tm.Reset() error = %v, want nil", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// Let in-flight callback goroutines finish.
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for id := range firedIDs {
		if id < 0 || id >= installers {
			t.Fatalf("callback with unknown id %d fired", id)
		}
	}
}

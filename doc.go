// Package gotick provides a thread-safe periodic timer primitive for
// reactive executors.
//
// A [Timer] wraps an engine-owned handle bound to a shared [Clock] and an
// execution [Context]. The package guarantees a strict teardown order (the
// handle is finalized while its clock and context are still alive), a
// race-free protocol for installing, replacing and clearing the on-reset
// callback while the timer is concurrently polled or fired, and an atomic
// in-use flag for wait-set coordination.
//
// Deadline tracking itself is delegated to an [Engine]; [DeadlineEngine] is
// the in-process default. A minimal [WaitSet] multiplexes readiness polling
// over many timers.
//
// Basic usage:
//
//	clock := gotick.NewSystemClock()
//	timer, err := gotick.NewTimer(clock, 100*time.Millisecond, nil)
//	if err != nil {
//	    // ...
//	}
//	defer timer.Close()
//
//	_ = timer.SetOnResetCallback(func(resetCount uint64) {
//	    log.Printf("timer reset %d times", resetCount)
//	})
//
//	ws := gotick.NewWaitSet(nil)
//	_ = ws.Add(timer)
//	ready, _ := ws.Wait(ctx)
//	for _, t := range ready {
//	    _ = t.Reset()
//	    // run the periodic work
//	}
package gotick

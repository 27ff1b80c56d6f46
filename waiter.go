// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package awg

import (
	"context"
	"time"

	"github.com/petenewcomb/awg-go/internal/timerp"
)

// A Waiter is one wait operation on a [WaitGroup]: a small state machine that
// completes once the count is at or below its threshold. [WaitGroup.WaitTo]
// drives one internally; use a Waiter directly to wait inside an existing
// select loop. The protocol is:
//
//  1. Call [Waiter.Poll]. If it returns true the wait is complete.
//  2. Otherwise receive from [Waiter.Ready] (alongside anything else the loop
//     is waiting for) and call Poll again.
//  3. To abandon the wait, call [Waiter.Close]. Closing is idempotent and safe
//     even if a producer is concurrently waking the Waiter, and it is what
//     frees the WaitGroup for the next wait. A Waiter that was polled but
//     did not complete must always be closed.
//
// A Waiter has the following lifecycle:
//
// 1. Unstarted. The first Poll loads the count and completes immediately if
// the threshold is already met, without touching the WaitGroup's waiter token
// or registration slot.
//
// 2. Registered. Otherwise Poll claims the waiter token, panicking with
// [ErrConcurrentWait] if another Waiter holds it, publishes a registration
// into the slot, and re-checks the count. A decrement that raced with
// publication is caught by the re-check, in which case Poll retracts the
// registration and completes. The token stays claimed until the Waiter
// completes or is closed.
//
// 3. Woken. A producer that found the count at or below the threshold took
// the registration out of the slot and sent the wake. The next Poll loads the
// count again. If increments have since pushed it back above the threshold,
// Poll publishes a fresh registration and the Waiter is registered once more.
//
// 4a. Completed. A Poll found the count at or below the threshold, retracted
// the registration if it was still published, and released the token.
//
// 4b. Canceled. Close retracted the registration (unless a producer had
// already taken it) and released the token.
//
// A Waiter must only be used by one goroutine.
type Waiter struct {
	wg        *WaitGroup
	threshold int64
	phase     waiterPhase
	reg       *registration
}

type waiterPhase uint8

const (
	waiterUnstarted waiterPhase = iota
	waiterRegistered
	waiterCompleted
	waiterCanceled
)

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// NewWaiter returns an unstarted [Waiter] that completes once the count is at
// or below threshold. It panics with [ErrNegativeThreshold] if threshold is
// negative.
func (wg *WaitGroup) NewWaiter(threshold int) *Waiter {
	if threshold < 0 {
		wg.misuse(ErrNegativeThreshold, wg.count.Load())
	}
	return &Waiter{
		wg:        wg,
		threshold: int64(threshold),
	}
}

// Threshold returns the count the Waiter is waiting for.
func (w *Waiter) Threshold() int {
	return int(w.threshold)
}

// Poll advances the wait and reports whether it has completed. Once Poll has
// returned true it keeps returning true. After [Waiter.Close] of a wait that
// had not completed, it returns false.
func (w *Waiter) Poll() bool {
	switch w.phase {
	case waiterUnstarted:
		return w.start()
	case waiterRegistered:
		return w.resume()
	case waiterCompleted:
		return true
	default:
		return false
	}
}

// Ready returns a channel that receives when Poll should be called again.
// While the Waiter is registered, that is the channel a producer wakes it on.
// In every other phase Poll has something to report straight away, so Ready
// returns a closed channel.
//
// A wake only means the count was at or below the threshold when the
// producer looked, so Poll may still return false after one.
func (w *Waiter) Ready() <-chan struct{} {
	if w.phase == waiterRegistered {
		return w.reg.wake
	}
	return closedChan
}

// Close abandons the wait. If the Waiter is registered, it takes its
// registration back out of the WaitGroup's slot and releases the waiter
// token. If a producer has already taken the registration to wake the Waiter,
// that wake is simply never received. Close never blocks and may be called
// any number of times; it does nothing once the wait has completed.
func (w *Waiter) Close() {
	switch w.phase {
	case waiterUnstarted:
		w.phase = waiterCanceled
	case waiterRegistered:
		w.retract()
		w.phase = waiterCanceled
		if o := w.wg.observer; o != nil {
			o.Canceled(int(w.threshold))
		}
	}
}

func (w *Waiter) start() bool {
	wg := w.wg
	if wg.count.AtMost(w.threshold) {
		w.phase = waiterCompleted
		return true
	}

	if !wg.owner.Claim(w) {
		wg.misuse(ErrConcurrentWait, wg.count.Load())
	}
	w.phase = waiterRegistered
	return w.register()
}

// register publishes a fresh registration and re-checks the count. The
// caller holds the token, and the slot is empty because every path that
// empties it for good also releases the token.
func (w *Waiter) register() bool {
	wg := w.wg
	reg := newRegistration(w.threshold)
	if !wg.slot.Publish(reg) {
		panic(errSlotOccupied)
	}
	w.reg = reg

	left := wg.count.Load()
	if left <= w.threshold {
		return w.complete()
	}
	if o := wg.observer; o != nil {
		o.Registered(int(w.threshold), int(left))
	}
	return false
}

func (w *Waiter) resume() bool {
	wg := w.wg
	if wg.count.AtMost(w.threshold) {
		return w.complete()
	}
	if wg.slot.Holds(w.reg) {
		return false
	}
	// A producer took the registration, but the count has gone back up
	// since. Its wake is stale.
	return w.register()
}

func (w *Waiter) complete() bool {
	w.retract()
	w.phase = waiterCompleted
	return true
}

// retract empties the slot, unless a producer already did, and then frees the
// token.
func (w *Waiter) retract() {
	w.wg.slot.Take(w.reg)
	w.wg.owner.Release(w)
}

// await is the host loop shared by the blocking wait methods. A nil timeout
// never fires.
func (w *Waiter) await(ctx context.Context, timeout <-chan time.Time) error {
	for {
		select {
		case <-w.Ready():
			if w.Poll() {
				return nil
			}
		case <-ctx.Done():
			if w.Poll() {
				return nil
			}
			return ctx.Err()
		case <-timeout:
			if w.Poll() {
				return nil
			}
			return ErrWaitTimeout
		}
	}
}

// Wait blocks until the count reaches zero or ctx is done. It returns
// ctx.Err() in the latter case.
//
// Only one wait may be suspended on a WaitGroup at a time; see [WaitGroup].
func (wg *WaitGroup) Wait(ctx context.Context) error {
	_, err := wg.WaitTo(ctx, 0)
	return err
}

// WaitTo blocks until the count is at or below threshold or ctx is done. It
// reports whether it actually had to suspend, and returns ctx.Err() if ctx
// ended the wait first. A canceled wait leaves the WaitGroup ready for the
// next one.
//
// WaitTo panics with [ErrNegativeThreshold] if threshold is negative and with
// [ErrConcurrentWait] if it needs to suspend while another wait is suspended.
func (wg *WaitGroup) WaitTo(ctx context.Context, threshold int) (bool, error) {
	w := wg.NewWaiter(threshold)
	if w.Poll() {
		return false, nil
	}
	defer w.Close()
	return true, w.await(ctx, nil)
}

// WaitTimeout is like [WaitGroup.WaitTo] but additionally gives up after d,
// returning [ErrWaitTimeout].
func (wg *WaitGroup) WaitTimeout(ctx context.Context, threshold int, d time.Duration) error {
	w := wg.NewWaiter(threshold)
	if w.Poll() {
		return nil
	}
	defer w.Close()

	t := timerp.Get(d)
	defer timerp.Put(t)
	return w.await(ctx, t.C)
}

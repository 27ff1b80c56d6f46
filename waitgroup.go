// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package awg

import (
	"github.com/petenewcomb/awg-go/internal/state"
)

// WaitGroup counts outstanding work and lets a single waiter suspend until the
// count drops to a threshold of its choosing. Producers call [WaitGroup.Add]
// and [WaitGroup.Done] from any number of goroutines; neither ever blocks.
// The waiter calls [WaitGroup.Wait], [WaitGroup.WaitTo] or
// [WaitGroup.WaitTimeout], or drives a [Waiter] directly.
//
// No mutex is involved on any path. Producers and the waiter coordinate
// through the atomic count, a single-entry slot holding the waiter's
// registration, and an ownership token that admits one waiter at a time. A
// second wait that tries to suspend while another is registered panics with
// [ErrConcurrentWait]; waits that do not need to suspend never touch the
// token, so they are always allowed.
//
// The zero value is ready to use. A WaitGroup must not be copied after first
// use; share it by pointer.
type WaitGroup struct {
	count    state.Counter
	owner    state.Owner[Waiter]
	slot     state.Slot[registration]
	observer Observer
}

// registration is what a suspended Waiter publishes for producers to find.
// Whoever takes it out of the slot owns the single wake it may receive.
type registration struct {
	threshold int64
	wake      chan struct{}
}

func newRegistration(threshold int64) *registration {
	return &registration{
		threshold: threshold,
		wake:      make(chan struct{}, 1),
	}
}

func (r *registration) notify() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Option configures a [WaitGroup] created by [New].
type Option func(*WaitGroup)

// WithObserver installs o to receive diagnostic callbacks.
func WithObserver(o Observer) Option {
	return func(wg *WaitGroup) {
		wg.observer = o
	}
}

// New creates a [WaitGroup] configured with the given options. Without
// options it is equivalent to new(WaitGroup).
func New(options ...Option) *WaitGroup {
	wg := &WaitGroup{}
	for _, o := range options {
		o(wg)
	}
	return wg
}

// Add adds delta to the count of outstanding work.
//
// Add panics with [ErrNegativeDelta] if delta is negative and with
// [ErrCountOverflow] if the count would exceed math.MaxInt64. An increase can
// never satisfy a pending wait, so Add does not look for one.
//
// Add may be called concurrently with a wait, but a program that does so
// usually has a logic error: the wait may or may not see the new work.
func (wg *WaitGroup) Add(delta int) {
	if delta < 0 {
		wg.misuse(ErrNegativeDelta, wg.count.Load())
	}
	if left, ok := wg.count.Increment(int64(delta)); !ok {
		wg.misuse(ErrCountOverflow, left)
	}
}

// AddGuard adds one to the count and returns a [Guard] that retires it.
func (wg *WaitGroup) AddGuard() *Guard {
	wg.Add(1)
	return &Guard{wg: wg}
}

// Done decrements the count by one.
func (wg *WaitGroup) Done() {
	wg.DoneN(1)
}

// DoneN decrements the count by n and wakes the registered waiter, if any,
// whose threshold the new count satisfies.
//
// DoneN panics with [ErrNegativeCount] if the count drops below zero, which
// means more work was reported done than was ever added. The negative count
// is left in place. It panics with [ErrNegativeDelta] if n is negative.
func (wg *WaitGroup) DoneN(n int) {
	if n < 0 {
		wg.misuse(ErrNegativeDelta, wg.count.Load())
	}
	left, ok := wg.count.Decrement(int64(n))
	if !ok {
		wg.misuse(ErrNegativeCount, left)
	}
	wg.wake()
}

// wake must run after the decrement. A waiter publishes its registration
// before re-checking the count, so either it sees the decrement or this load
// of the slot sees its registration.
//
// The count is loaded afresh rather than trusting the decrement's result,
// which increments may have overtaken. Even so the waiter re-checks the count
// when it resumes and registers again if the wake turned out to be stale, so
// a wake is only ever a request to poll.
func (wg *WaitGroup) wake() {
	reg := wg.slot.Peek()
	if reg == nil {
		return
	}
	left := wg.count.Load()
	if left > reg.threshold {
		return
	}
	// A racing producer or the waiter's own cancellation may get there first.
	if !wg.slot.Take(reg) {
		return
	}
	if wg.observer != nil {
		wg.observer.Woken(int(reg.threshold), int(left))
	}
	reg.notify()
}

// Left returns the current count of outstanding work. It panics with
// [ErrNegativeCount] if an earlier over-decrement left the count negative.
func (wg *WaitGroup) Left() int {
	left := wg.count.Load()
	if left < 0 {
		wg.misuse(ErrNegativeCount, left)
	}
	return int(left)
}

func (wg *WaitGroup) misuse(err constError, left int64) {
	if wg.observer != nil {
		wg.observer.Misuse(err, int(left))
	}
	panic(err)
}

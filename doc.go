// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package awg provides [WaitGroup], a counting waitgroup built entirely from
// atomic operations, for the common case of many producers and one consumer.
//
// Producers report work with [WaitGroup.Add] and retire it with
// [WaitGroup.Done] or [WaitGroup.DoneN]. Neither ever blocks. The consumer
// waits for the count of outstanding work to reach zero with
// [WaitGroup.Wait], or to drop to any other threshold with [WaitGroup.WaitTo].
// Waiting for a non-zero threshold is a simple way to apply backpressure:
// keep at most N items in flight by waiting for the count to fall to N-1
// before adding the next one.
//
// Unlike [sync.WaitGroup], waits accept a [context.Context] and can be
// abandoned at any time, for instance on a deadline, after which the
// WaitGroup is immediately ready for the next wait. Hosts that already run
// their own select loop can drive a [Waiter] directly instead.
//
// Only one wait may be suspended at a time. That restriction is what allows
// the implementation to hand the wake from producer to consumer through a
// single compare-and-swap instead of a lock, and it is enforced: a second
// wait that tries to suspend while another is suspended panics with
// [ErrConcurrentWait]. Reporting more work done than was added panics with
// [ErrNegativeCount]. Both are programming errors, not conditions to recover
// from.
//
// An [Observer] installed with [WithObserver] receives a callback on each
// registration, wake, cancellation and misuse. The otawg module builds
// logging, metrics and tracing on top of it.
package awg

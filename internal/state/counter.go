// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package state

import (
	"sync/atomic"
)

// Counter is the count of outstanding work shared by the producers and the
// waiter of an [github.com/petenewcomb/awg-go] WaitGroup. All operations are
// single atomic instructions, so Counter never blocks.
type Counter struct {
	atomic.Int64
}

// Increment adds delta, which must not be negative, and returns the new value.
// The returned boolean is false if the addition wrapped past math.MaxInt64.
func (c *Counter) Increment(delta int64) (int64, bool) {
	newValue := c.Add(delta)
	// Wrapping subtraction recovers the previous value exactly, so the sum
	// only went down if it overflowed.
	return newValue, newValue >= newValue-delta
}

// Decrement subtracts delta and returns the new value. The returned boolean is
// false if the new value is negative, in which case it is left in place so
// that it remains visible for diagnosis.
func (c *Counter) Decrement(delta int64) (int64, bool) {
	newValue := c.Add(-delta)
	return newValue, newValue >= 0
}

// AtMost reports whether the current value is less than or equal to limit.
func (c *Counter) AtMost(limit int64) bool {
	return c.Load() <= limit
}

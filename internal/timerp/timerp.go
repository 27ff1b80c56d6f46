// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package timerp pools the timers used to bound waits.
package timerp

import (
	"sync"
	"time"
)

// Pooling relies on [Go 1.23+ behavior]: once Stop or Reset returns, the
// timer's channel will not deliver a value from the previous arming, so
// timers can be recycled without draining.
//
// [Go 1.23+ behavior]: https://pkg.go.dev/time#NewTimer

var pool = sync.Pool{
	New: func() any {
		t := time.NewTimer(time.Hour)
		t.Stop()
		return t
	},
}

// Get returns a timer that fires after d.
func Get(d time.Duration) *time.Timer {
	t := pool.Get().(*time.Timer)
	t.Reset(d)
	return t
}

// Put disarms t and returns it to the pool. t must not be used afterwards.
func Put(t *time.Timer) {
	t.Stop()
	pool.Put(t)
}

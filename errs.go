// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package awg

type constError string

func (e constError) Error() string {
	return string(e)
}

// Panic values. Each reports a misuse of the API rather than a runtime
// failure, so none of them is ever returned as an error.
const (
	ErrNegativeCount     = constError("awg: decrement exceeds outstanding count")
	ErrConcurrentWait    = constError("awg: concurrent wait detected")
	ErrNegativeDelta     = constError("awg: negative delta")
	ErrCountOverflow     = constError("awg: outstanding count overflow")
	ErrNegativeThreshold = constError("awg: negative threshold")
)

// ErrWaitTimeout is returned by [WaitGroup.WaitTimeout] when the threshold
// was not reached in time.
const ErrWaitTimeout = constError("awg: wait timed out")

const errSlotOccupied = constError("awg: registration slot occupied while waiter token was held")

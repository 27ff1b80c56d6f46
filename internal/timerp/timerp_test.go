// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package timerp_test

import (
	"testing"
	"time"

	"github.com/petenewcomb/awg-go/internal/timerp"
	"github.com/stretchr/testify/require"
)

func TestTimerFires(t *testing.T) {
	chk := require.New(t)

	tm := timerp.Get(time.Millisecond)
	select {
	case <-tm.C:
	case <-time.After(time.Second):
		chk.Fail("pooled timer did not fire")
	}
	timerp.Put(tm)
}

func TestRecycledTimerHasNoStaleValue(t *testing.T) {
	chk := require.New(t)

	// Let a timer fire without anyone receiving from it before recycling.
	fired := timerp.Get(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	timerp.Put(fired)

	for range 100 {
		tm := timerp.Get(time.Hour)
		select {
		case <-tm.C:
			chk.Fail("recycled timer delivered a stale value")
		default:
		}
		timerp.Put(tm)
	}
}

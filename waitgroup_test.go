// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package awg_test

import (
	"context"
	"math"
	"math/rand/v2"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/petenewcomb/awg-go"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestWaitGroupAddDone(t *testing.T) {
	chk := require.New(t)
	var wg awg.WaitGroup

	chk.Equal(0, wg.Left())
	wg.Add(1)
	chk.Equal(1, wg.Left())
	wg.Done()
	chk.Equal(0, wg.Left())

	wg.Add(5)
	wg.DoneN(3)
	chk.Equal(2, wg.Left())
	wg.DoneN(0)
	chk.Equal(2, wg.Left())
	wg.DoneN(2)
	chk.Equal(0, wg.Left())
}

func TestWaitGroupNegativeCountPanic(t *testing.T) {
	chk := require.New(t)
	wg := awg.New()

	wg.Add(2)
	wg.Done()
	wg.Done()

	// Only the decrement that crosses zero panics.
	chk.PanicsWithValue(awg.ErrNegativeCount, wg.Done)

	// The invalid count stays visible.
	chk.PanicsWithValue(awg.ErrNegativeCount, func() {
		_ = wg.Left()
	})
}

func TestWaitGroupDoneOnEmptyPanic(t *testing.T) {
	chk := require.New(t)
	wg := awg.New()

	chk.PanicsWithValue(awg.ErrNegativeCount, wg.Done)
}

func TestWaitGroupDoneNOverflowPanic(t *testing.T) {
	chk := require.New(t)
	wg := awg.New()

	wg.Add(1)
	chk.PanicsWithValue(awg.ErrNegativeCount, func() {
		wg.DoneN(2)
	})
}

func TestWaitGroupNegativeDeltaPanic(t *testing.T) {
	chk := require.New(t)
	wg := awg.New()

	chk.PanicsWithValue(awg.ErrNegativeDelta, func() {
		wg.Add(-1)
	})
	chk.PanicsWithValue(awg.ErrNegativeDelta, func() {
		wg.DoneN(-1)
	})
	chk.Equal(0, wg.Left())
}

func TestWaitGroupCountOverflowPanic(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("int cannot reach the 64-bit limit")
	}
	chk := require.New(t)
	wg := awg.New()

	wg.Add(math.MaxInt)
	chk.PanicsWithValue(awg.ErrCountOverflow, func() {
		wg.Add(1)
	})
}

func TestWaitGroupGuard(t *testing.T) {
	chk := require.New(t)
	wg := awg.New()

	g1 := wg.AddGuard()
	g2 := wg.AddGuard()
	chk.Equal(2, wg.Left())

	g1.Done()
	g1.Done()
	chk.Equal(1, wg.Left())

	ctx := testContext(t)
	done := make(chan error, 1)
	go func() {
		done <- wg.Wait(ctx)
	}()
	time.Sleep(5 * time.Millisecond)
	g2.Done()
	chk.NoError(<-done)
	chk.Equal(0, wg.Left())
}

func TestWaitGroupGuardWaitTo(t *testing.T) {
	chk := require.New(t)
	ctx := testContext(t)
	wg := awg.New()

	for i := range 10 {
		g := wg.AddGuard()
		go func() {
			defer g.Done()
			time.Sleep(time.Duration(i) * time.Millisecond)
		}()
	}
	_, err := wg.WaitTo(ctx, 3)
	chk.NoError(err)
	chk.LessOrEqual(wg.Left(), 3)

	chk.NoError(wg.Wait(ctx))
	chk.Equal(0, wg.Left())
}

func TestWaitGroupConcurrentAddDone(t *testing.T) {
	chk := require.New(t)
	ctx := testContext(t)
	wg := awg.New()

	const producers = 32
	const iterations = 1000

	var start sync.WaitGroup
	start.Add(1)
	var ready sync.WaitGroup
	ready.Add(producers)
	// Hold one unit so the wait below cannot finish before the producers do.
	wg.Add(1)
	for range producers {
		wg.Add(iterations)
		go func() {
			ready.Done()
			start.Wait()
			for range iterations {
				wg.Add(1)
				wg.DoneN(2)
			}
		}()
	}
	ready.Wait()
	start.Done()

	done := make(chan error, 1)
	go func() {
		done <- wg.Wait(ctx)
	}()
	wg.Done()
	chk.NoError(<-done)
	chk.Equal(0, wg.Left())
}

// Many rounds of a random number of producers that finish after a random
// delay, each followed by a wait that must see all of them.
func TestWaitGroupPressure(t *testing.T) {
	chk := require.New(t)
	ctx := testContext(t)
	wg := awg.New()

	rounds := 300
	if testing.Short() {
		rounds /= 10
	}
	for range rounds {
		producers := rand.IntN(10) + 1
		for range producers {
			wg.Add(1)
			go func() {
				time.Sleep(time.Duration(rand.IntN(1000)) * time.Microsecond)
				wg.Done()
			}()
		}
		time.Sleep(time.Duration(rand.IntN(1000)) * time.Microsecond)
		chk.NoError(wg.Wait(ctx))
		chk.Equal(0, wg.Left())
	}
}

// Keeps at most ten units in flight, as a producer applying backpressure would.
func TestWaitGroupBackpressure(t *testing.T) {
	chk := require.New(t)
	ctx := testContext(t)
	wg := awg.New()

	iterations := 1000
	if testing.Short() {
		iterations /= 10
	}
	for i := range iterations {
		wg.Add(1)
		go func() {
			time.Sleep(time.Duration(i%2+1) * time.Millisecond / 10)
			wg.Done()
		}()
		_, err := wg.WaitTo(ctx, 10)
		chk.NoError(err)
		chk.LessOrEqual(wg.Left(), 10)
	}
	chk.NoError(wg.Wait(ctx))
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package awg_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/petenewcomb/awg-go"
)

// Waits for a handful of goroutines to finish.
func Example_hello() {
	ctx := context.Background()
	wg := awg.New()

	var sum atomic.Int64
	for i := 1; i <= 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
			sum.Add(int64(i))
		}()
	}

	if err := wg.Wait(ctx); err != nil {
		fmt.Println("wait failed:", err)
	}
	fmt.Println("sum:", sum.Load())

	// Output:
	// sum: 6
}

// Uses a guard so that an early return cannot leak a unit of work.
func ExampleWaitGroup_AddGuard() {
	ctx := context.Background()
	wg := awg.New()

	work := func(g *awg.Guard, fail bool) {
		defer g.Done()
		if fail {
			return
		}
		time.Sleep(time.Millisecond)
	}
	go work(wg.AddGuard(), false)
	go work(wg.AddGuard(), true)

	_ = wg.Wait(ctx)
	fmt.Println("left:", wg.Left())

	// Output:
	// left: 0
}

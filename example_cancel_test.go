// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package awg_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/petenewcomb/awg-go"
)

// Abandons a wait on a deadline; the WaitGroup is ready for the next wait
// straight away.
func ExampleWaitGroup_Wait_deadline() {
	wg := awg.New()
	wg.Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := wg.Wait(ctx)
	fmt.Println("first wait:", errors.Is(err, context.DeadlineExceeded))

	wg.Done()
	fmt.Println("second wait:", wg.Wait(context.Background()))

	// Output:
	// first wait: true
	// second wait: <nil>
}

func ExampleWaitGroup_WaitTimeout() {
	ctx := context.Background()
	wg := awg.New()
	wg.Add(1)

	fmt.Println(wg.WaitTimeout(ctx, 0, time.Millisecond))

	go func() {
		time.Sleep(time.Millisecond)
		wg.Done()
	}()
	fmt.Println(wg.WaitTimeout(ctx, 0, time.Minute))

	// Output:
	// awg: wait timed out
	// <nil>
}

// Drives a Waiter from a select loop that also handles other events.
func ExampleWaiter() {
	wg := awg.New()
	wg.Add(2)

	events := make(chan string)
	go func() {
		events <- "first"
		wg.Done()
		events <- "second"
		wg.Done()
	}()

	w := wg.NewWaiter(0)
	defer w.Close()
	for !w.Poll() {
		select {
		case e := <-events:
			fmt.Println("event:", e)
		case <-w.Ready():
		}
	}
	fmt.Println("drained")

	// Output:
	// event: first
	// event: second
	// drained
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otawg

import (
	"context"

	"github.com/petenewcomb/awg-go"
)

// InstrumentedObserver combines logging and metrics observers into one.
// Install it with [awg.WithObserver].
func InstrumentedObserver(name string) awg.Observer {
	return awg.Observers(LoggedObserver(name), MetricsObserver(name))
}

// InstrumentedWait combines tracing, metrics and logging around
// [awg.WaitGroup.WaitTo].
func InstrumentedWait(operationName string) WaitFunc {
	// Apply wrappers inside-out:
	// 1. First add logging
	loggedWait := LoggedWait(operationName, WaitTo)

	// 2. Then add metrics
	metricsWait := MetricsWait(operationName, loggedWait)

	// 3. Finally add tracing, so the span covers the other two
	return TracedWait(operationName, metricsWait)
}

// Wait is a convenience for calling InstrumentedWait(operationName) with a
// threshold of zero.
func Wait(ctx context.Context, wg *awg.WaitGroup, operationName string) error {
	_, err := InstrumentedWait(operationName)(ctx, wg, 0)
	return err
}

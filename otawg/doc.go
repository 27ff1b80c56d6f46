// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package otawg provides logging, metrics and OpenTelemetry tracing for the
// awg waitgroup. Observers report what happens inside a WaitGroup as it
// happens; wait wrappers report each wait as a whole, including how long it
// took and whether it had to suspend.
package otawg

import (
	"context"

	"github.com/petenewcomb/awg-go"
)

// WaitFunc has the shape of [awg.WaitGroup.WaitTo] and is what the wait
// wrappers in this package decorate.
type WaitFunc func(ctx context.Context, wg *awg.WaitGroup, threshold int) (bool, error)

// WaitTo adapts [awg.WaitGroup.WaitTo] as a [WaitFunc].
func WaitTo(ctx context.Context, wg *awg.WaitGroup, threshold int) (bool, error) {
	return wg.WaitTo(ctx, threshold)
}

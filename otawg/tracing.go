// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otawg

import (
	"context"

	"github.com/petenewcomb/awg-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracedWait wraps each wait in a span named operationName. The span records
// the threshold and whether the wait suspended, and is marked as an error if
// the wait was abandoned.
func TracedWait(operationName string, waitFunc WaitFunc) WaitFunc {
	return func(ctx context.Context, wg *awg.WaitGroup, threshold int) (bool, error) {
		tracer := otel.Tracer("otawg")
		ctx, span := tracer.Start(ctx, operationName,
			trace.WithAttributes(attribute.Int("awg.threshold", threshold)))
		defer span.End()

		waited, err := waitFunc(ctx, wg, threshold)

		span.SetAttributes(attribute.Bool("awg.waited", waited))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return waited, err
	}
}

// TracedAdd adds one unit of work to wg and starts a span named
// operationName covering it. The returned function ends the span and retires
// the unit; calling it more than once has no further effect. Use the returned
// context for the work itself so its spans are parented correctly.
func TracedAdd(ctx context.Context, wg *awg.WaitGroup, operationName string) (context.Context, func()) {
	tracer := otel.Tracer("otawg")
	ctx, span := tracer.Start(ctx, operationName)
	g := wg.AddGuard()
	return ctx, func() {
		span.End()
		g.Done()
	}
}

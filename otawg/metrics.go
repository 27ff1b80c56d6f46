// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otawg

import (
	"context"
	"time"

	"github.com/petenewcomb/awg-go"
	"go.opentelemetry.io/otel"
)

// MetricsObserver returns an [awg.Observer] that counts registrations, wakes,
// cancellations and misuse under metricName using the global meter provider.
func MetricsObserver(metricName string) awg.Observer {
	meter := otel.GetMeterProvider().Meter("otawg")

	registeredCounter, _ := meter.Int64Counter(metricName + ".registered")
	wokenCounter, _ := meter.Int64Counter(metricName + ".woken")
	canceledCounter, _ := meter.Int64Counter(metricName + ".canceled")
	misuseCounter, _ := meter.Int64Counter(metricName + ".misuse")

	// Callbacks carry no context.
	ctx := context.Background()
	return awg.ObserverFuncs{
		RegisteredFunc: func(int, int) {
			registeredCounter.Add(ctx, 1)
		},
		WokenFunc: func(int, int) {
			wokenCounter.Add(ctx, 1)
		},
		CanceledFunc: func(int) {
			canceledCounter.Add(ctx, 1)
		},
		MisuseFunc: func(error, int) {
			misuseCounter.Add(ctx, 1)
		},
	}
}

// MetricsWait adds metrics collection to a wait. It records a count, a
// duration histogram, how many calls suspended and how many ended in error.
func MetricsWait(metricName string, waitFunc WaitFunc) WaitFunc {
	meter := otel.GetMeterProvider().Meter("otawg")

	waitCounter, _ := meter.Int64Counter(metricName + ".count")
	waitDuration, _ := meter.Float64Histogram(metricName + ".duration")
	suspendedCounter, _ := meter.Int64Counter(metricName + ".suspended")
	errorCounter, _ := meter.Int64Counter(metricName + ".errors")

	return func(ctx context.Context, wg *awg.WaitGroup, threshold int) (bool, error) {
		startTime := time.Now()
		waitCounter.Add(ctx, 1)

		waited, err := waitFunc(ctx, wg, threshold)

		waitDuration.Record(ctx, time.Since(startTime).Seconds())
		if waited {
			suspendedCounter.Add(ctx, 1)
		}
		if err != nil {
			errorCounter.Add(ctx, 1)
		}

		return waited, err
	}
}

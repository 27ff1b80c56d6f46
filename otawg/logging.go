// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otawg

import (
	"context"
	"time"

	"github.com/petenewcomb/awg-go"
	"go.uber.org/zap"
)

// LoggedObserver returns an [awg.Observer] that logs each callback through
// the global zap logger. Registrations and wakes are logged at debug level,
// cancellations at info and misuse at error.
func LoggedObserver(name string) awg.Observer {
	return awg.ObserverFuncs{
		RegisteredFunc: func(threshold, left int) {
			zap.L().Debug("Wait registered",
				zap.String("waitgroup", name),
				zap.String("component", "otawg"),
				zap.Int("threshold", threshold),
				zap.Int("left", left))
		},
		WokenFunc: func(threshold, left int) {
			zap.L().Debug("Waiter woken",
				zap.String("waitgroup", name),
				zap.String("component", "otawg"),
				zap.Int("threshold", threshold),
				zap.Int("left", left))
		},
		CanceledFunc: func(threshold int) {
			zap.L().Info("Wait canceled",
				zap.String("waitgroup", name),
				zap.String("component", "otawg"),
				zap.Int("threshold", threshold))
		},
		MisuseFunc: func(err error, left int) {
			zap.L().Error("WaitGroup misuse",
				zap.String("waitgroup", name),
				zap.String("component", "otawg"),
				zap.Int("left", left),
				zap.Error(err))
		},
	}
}

// LoggedWait adds structured logging to a wait. It logs the start and the
// outcome of each call, including its duration and whether it suspended.
func LoggedWait(operationName string, waitFunc WaitFunc) WaitFunc {
	return func(ctx context.Context, wg *awg.WaitGroup, threshold int) (bool, error) {
		logger := zap.L()

		logger.Debug("Starting wait",
			zap.String("operation", operationName),
			zap.String("component", "otawg"),
			zap.Int("threshold", threshold))

		startTime := time.Now()
		waited, err := waitFunc(ctx, wg, threshold)
		duration := time.Since(startTime)

		if err != nil {
			logger.Warn("Wait abandoned",
				zap.String("operation", operationName),
				zap.String("component", "otawg"),
				zap.Int("threshold", threshold),
				zap.Duration("duration", duration),
				zap.Error(err))
		} else {
			logger.Debug("Wait completed",
				zap.String("operation", operationName),
				zap.String("component", "otawg"),
				zap.Int("threshold", threshold),
				zap.Bool("waited", waited),
				zap.Duration("duration", duration))
		}

		return waited, err
	}
}

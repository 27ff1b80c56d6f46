// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/petenewcomb/awg-go"
	"github.com/petenewcomb/awg-go/otawg"
	"github.com/rfyiamcool/go-timewheel"
	"go.uber.org/zap"
)

type roundKind int

const (
	drainRound roundKind = iota
	throttleRound
	abandonRound
	roundKindCount
)

func (k roundKind) String() string {
	switch k {
	case drainRound:
		return "drain"
	case throttleRound:
		return "throttle"
	case abandonRound:
		return "abandon"
	default:
		return fmt.Sprintf("roundKind(%d)", int(k))
	}
}

type stats struct {
	Rounds    int
	Produced  int
	Suspended int
	Abandoned int
	PeakLeft  int
}

// runner drives rounds of producers on a goroutine pool against one
// WaitGroup that outlives them all.
type runner struct {
	cfg  *config
	wg   *awg.WaitGroup
	pool *ants.Pool
	tw   *timewheel.TimeWheel
	wait otawg.WaitFunc

	inFlight atomic.Int64
	stats    stats
}

func newRunner(cfg *config, pool *ants.Pool, tw *timewheel.TimeWheel) *runner {
	return &runner{
		cfg:  cfg,
		wg:   awg.New(awg.WithObserver(otawg.InstrumentedObserver("pressure"))),
		pool: pool,
		tw:   tw,
		wait: otawg.InstrumentedWait("pressure.wait"),
	}
}

func (r *runner) run(ctx context.Context) error {
	for i := range r.cfg.Rounds {
		kind := roundKind(i) % roundKindCount
		start := time.Now()
		if err := r.round(ctx, kind); err != nil {
			return fmt.Errorf("round %d (%v): %w", i, kind, err)
		}
		if left := r.wg.Left(); left != 0 {
			return fmt.Errorf("round %d (%v): %d units left after drain", i, kind, left)
		}
		r.stats.Rounds++
		zap.L().Debug("Round complete",
			zap.Int("round", i),
			zap.Stringer("kind", kind),
			zap.Duration("duration", time.Since(start)))
	}
	return nil
}

func (r *runner) round(ctx context.Context, kind roundKind) error {
	producers := rand.IntN(r.cfg.Producers) + 1
	switch kind {
	case throttleRound:
		for range producers {
			// Keep at most Threshold+1 units in flight.
			waited, err := r.wait(ctx, r.wg, r.cfg.Threshold)
			if err != nil {
				return err
			}
			if waited {
				r.stats.Suspended++
			}
			if left := r.wg.Left(); left > r.cfg.Threshold {
				return fmt.Errorf("throttle wait returned with %d left", left)
			}
			if err := r.produce(); err != nil {
				return err
			}
			if n := int(r.inFlight.Load()); n > r.cfg.Threshold+1 {
				return fmt.Errorf("%d units in flight", n)
			}
		}

	case abandonRound:
		for range producers {
			if err := r.produce(); err != nil {
				return err
			}
		}
		if err := r.abandon(); err != nil {
			return err
		}

	default:
		for range producers {
			if err := r.produce(); err != nil {
				return err
			}
		}
	}

	waited, err := r.wait(ctx, r.wg, 0)
	if waited {
		r.stats.Suspended++
	}
	return err
}

// produce adds one unit of work and retires it from the pool after a random
// delay.
func (r *runner) produce() error {
	r.wg.Add(1)
	if left := r.wg.Left(); left > r.stats.PeakLeft {
		r.stats.PeakLeft = left
	}
	r.inFlight.Add(1)
	delay := time.Duration(rand.Int64N(int64(r.cfg.MaxDelay) + 1))
	err := r.pool.Submit(func() {
		time.Sleep(delay)
		r.inFlight.Add(-1)
		r.wg.Done()
	})
	if err != nil {
		r.inFlight.Add(-1)
		r.wg.Done()
		return err
	}
	r.stats.Produced++
	return nil
}

// abandon waits for the count to reach zero but gives up when the time wheel
// timer fires first, exercising cancellation of a registered wait.
func (r *runner) abandon() error {
	w := r.wg.NewWaiter(0)
	if w.Poll() {
		return nil
	}
	defer w.Close()

	// Stopping the timer removes it from the wheel when the wait wins.
	timer := r.tw.NewTimer(r.cfg.Timeout)
	defer timer.Stop()
	for {
		select {
		case <-w.Ready():
			if w.Poll() {
				r.stats.Suspended++
				return nil
			}
		case <-timer.C:
			if w.Poll() {
				return nil
			}
			r.stats.Abandoned++
			zap.L().Debug("Abandoning wait",
				zap.Duration("timeout", r.cfg.Timeout),
				zap.Int("left", r.wg.Left()))
			return nil
		}
	}
}

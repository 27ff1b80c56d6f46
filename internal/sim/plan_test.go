// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim_test

import (
	"testing"

	"github.com/petenewcomb/awg-go/internal/sim"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPlan(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		config := sim.NewConfig()
		plan := sim.NewPlan(t, config)

		chk.GreaterOrEqual(len(plan.Producers), config.ProducerCount.Min)
		chk.LessOrEqual(len(plan.Producers), config.ProducerCount.Max)
		for _, p := range plan.Producers {
			chk.NotEmpty(p.Steps, "%v", p)
			outstanding := 0
			for _, s := range p.Steps {
				chk.NotZero(s.Delta, "%v", p)
				chk.GreaterOrEqual(s.Delay, 0*sim.Tick)
				outstanding += s.Delta
				chk.GreaterOrEqual(outstanding, 0, "%v retired work it never added", p)
			}
			chk.Zero(outstanding, "%v left work outstanding", p)
		}

		chk.GreaterOrEqual(len(plan.Waits), config.WaitCount.Min)
		for i, w := range plan.Waits {
			chk.Equal(i, w.ID)
			chk.GreaterOrEqual(w.Threshold, 0)
			chk.GreaterOrEqual(w.CancelAfter, 0*sim.Tick)
		}
	})
}

func TestIntRangePanicsWhenInverted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		require.Panics(t, func() {
			sim.IntRange{Min: 2, Max: 1}.Draw(t, "n")
		})
	})
}

// A plan with no producers exercises only the fast path.
func TestRunWaitsOnly(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		config := sim.NewConfig()
		plan := sim.NewPlan(t, config)
		plan.Producers = nil

		result := sim.Run(t, plan)
		chk.Equal(len(plan.Waits), result.Immediate)
		chk.Zero(result.Suspended)
		chk.Zero(result.Wakes)
	})
}

// A single producer that adds one unit and retires it later wakes a wait for
// zero that began in between.
func TestRunSingleWake(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		plan := &sim.Plan{
			Producers: []sim.Producer{{
				Steps: []sim.Step{
					{Delay: 0, Delta: 1},
					{Delay: 2 * sim.Tick, Delta: -1},
				},
			}},
			Waits: []sim.Wait{{Delay: sim.Tick}},
		}
		result := sim.Run(t, plan)
		chk.Equal(1, result.Suspended)
		chk.Equal(1, result.Completed)
		chk.Equal(1, result.Wakes)
		chk.Equal(2*sim.Tick, result.Duration)
	})
}

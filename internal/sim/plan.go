// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"
	"time"

	"pgregory.net/rapid"
)

// Tick is the unit of simulated time.
const Tick = time.Millisecond

type Plan struct {
	Producers []Producer
	Waits     []Wait
}

// A Producer starts at Start and then runs its Steps in order, each after its
// own Delay. A producer only ever retires work it added itself, and its last
// step leaves it with nothing outstanding.
type Producer struct {
	ID    int
	Start time.Duration
	Steps []Step
}

// Step adds Delta units of work if Delta is positive and retires -Delta units
// if it is negative.
type Step struct {
	Delay time.Duration
	Delta int
}

// Waits run one after another. Each begins Delay after the previous one
// completed or was canceled. A positive CancelAfter abandons the wait that
// long after it began unless it has already completed.
type Wait struct {
	ID          int
	Delay       time.Duration
	Threshold   int
	CancelAfter time.Duration
}

func (p Producer) String() string {
	return fmt.Sprintf("Producer#%d", p.ID)
}

func (w Wait) String() string {
	return fmt.Sprintf("Wait#%d", w.ID)
}

// NewPlan draws a plan within the bounds of config.
func NewPlan(t *rapid.T, config *Config) *Plan {
	plan := &Plan{
		Producers: make([]Producer, config.ProducerCount.Draw(t, "ProducerCount")),
		Waits:     make([]Wait, config.WaitCount.Draw(t, "WaitCount")),
	}

	for i := range plan.Producers {
		p := &plan.Producers[i]
		p.ID = i
		name := p.String()
		p.Start = Tick * time.Duration(config.StartDelay.Draw(t, name+".Start"))

		outstanding := 0
		stepCount := config.StepCount.Draw(t, name+".StepCount")
		for j := range stepCount {
			stepName := fmt.Sprintf("%s.Steps[%d]", name, j)
			step := Step{
				Delay: Tick * time.Duration(config.StepDelay.Draw(t, stepName+".Delay")),
			}
			if outstanding > 0 && drawBool(t, config.DoneProbability, stepName+".Done") {
				step.Delta = -rapid.IntRange(1, outstanding).Draw(t, stepName+".Units")
			} else {
				step.Delta = config.StepUnits.Draw(t, stepName+".Units")
			}
			outstanding += step.Delta
			p.Steps = append(p.Steps, step)
		}
		if outstanding > 0 {
			p.Steps = append(p.Steps, Step{
				Delay: Tick * time.Duration(config.StepDelay.Draw(t, name+".FinalDelay")),
				Delta: -outstanding,
			})
		}
	}

	for i := range plan.Waits {
		w := &plan.Waits[i]
		w.ID = i
		name := w.String()
		w.Delay = Tick * time.Duration(config.WaitDelay.Draw(t, name+".Delay"))
		w.Threshold = config.Threshold.Draw(t, name+".Threshold")
		if drawBool(t, config.CancelProbability, name+".Cancel") {
			w.CancelAfter = Tick * time.Duration(config.CancelDelay.Draw(t, name+".CancelAfter"))
		}
	}

	t.Logf("plan: %d producers, %d waits", len(plan.Producers), len(plan.Waits))
	return plan
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"

	"pgregory.net/rapid"
)

var DefaultConfig = Config{
	ProducerCount: IntRange{Min: 1, Max: 8},
	StepCount:     IntRange{Min: 1, Max: 12},
	StepUnits:     IntRange{Min: 1, Max: 5},
	StepDelay:     IntRange{Min: 0, Max: 4},
	StartDelay:    IntRange{Min: 0, Max: 10},
	WaitCount:     IntRange{Min: 1, Max: 8},
	WaitDelay:     IntRange{Min: 0, Max: 6},
	Threshold:     IntRange{Min: 0, Max: 6},
	CancelDelay:   IntRange{Min: 1, Max: 8},

	// Half of the steps retire work, the rest add it.
	DoneProbability:   0.5,
	CancelProbability: 0.3,
}

// Config bounds the plans drawn by [NewPlan]. Delays are in ticks of the
// simulated clock; a delay of zero makes events simultaneous.
type Config struct {
	ProducerCount IntRange
	StepCount     IntRange
	StepUnits     IntRange
	StepDelay     IntRange
	StartDelay    IntRange
	WaitCount     IntRange
	WaitDelay     IntRange
	Threshold     IntRange
	CancelDelay   IntRange

	DoneProbability   float64
	CancelProbability float64
}

// NewConfig returns a copy of [DefaultConfig] that the caller may adjust.
func NewConfig() *Config {
	c := DefaultConfig
	return &c
}

type IntRange struct {
	Min int
	Max int
}

func (r IntRange) Draw(t *rapid.T, name string) int {
	if r.Max < r.Min {
		panic(fmt.Sprint("invalid IntRange:", r))
	}
	return rapid.IntRange(r.Min, r.Max).Draw(t, name)
}

// drawBool returns true with probability p. Always consulting rapid keeps the
// draw recorded even when p is 0 or 1.
func drawBool(t *rapid.T, p float64, name string) bool {
	return rapid.Float64Range(0, 1).Draw(t, name) < p
}

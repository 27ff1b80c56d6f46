// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sim generates and executes simulated workloads against an
// [github.com/petenewcomb/awg-go] WaitGroup. A plan consists of producers,
// each following a script of increments and decrements of its own work, and a
// sequence of wait attempts with varying thresholds, some of which are
// abandoned partway through. Events run on a simulated clock in a single
// goroutine, with simultaneous events shuffled, so every interleaving rapid
// draws is reproducible. After each event the WaitGroup's behavior is checked
// against a model of the count.
package sim

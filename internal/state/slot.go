// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package state

import (
	"sync/atomic"
)

// Slot is a single-entry mailbox. An entry is handed from the goroutine that
// publishes it to exactly one goroutine that takes it; every transfer is a
// single compare-and-swap, so of any number of racing takers exactly one
// observes success and the rest observe an empty slot.
//
// The zero value is empty.
type Slot[T any] struct {
	p atomic.Pointer[T]
}

// Publish stores p in the slot. Returns false, leaving the slot unchanged, if
// it is already occupied.
func (s *Slot[T]) Publish(p *T) bool {
	if p == nil {
		panic("cannot publish a nil entry")
	}
	return s.p.CompareAndSwap(nil, p)
}

// Take removes p from the slot. Returns false if the slot no longer holds p,
// meaning that someone else has already taken it.
func (s *Slot[T]) Take(p *T) bool {
	if p == nil {
		return false
	}
	return s.p.CompareAndSwap(p, nil)
}

// Holds reports whether the slot currently contains p.
func (s *Slot[T]) Holds(p *T) bool {
	return p != nil && s.p.Load() == p
}

// Peek returns the current entry without removing it.
func (s *Slot[T]) Peek() *T {
	return s.p.Load()
}

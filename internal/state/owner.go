// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package state

import (
	"sync/atomic"
)

// Owner is an ownership token that can be held by at most one claimant at a
// time. The token records the claimant's identity rather than a flag so that
// a claimant can only ever release its own claim: a release attempted after
// someone else has taken over the token fails and changes nothing.
//
// The zero value is free.
type Owner[T any] struct {
	p atomic.Pointer[T]
}

// Claim takes the token for p. Returns false if the token is already held,
// whether by p or by anyone else.
func (o *Owner[T]) Claim(p *T) bool {
	if p == nil {
		panic("cannot claim with a nil identity")
	}
	return o.p.CompareAndSwap(nil, p)
}

// Release frees the token if and only if it is currently held by p.
func (o *Owner[T]) Release(p *T) bool {
	if p == nil {
		return false
	}
	return o.p.CompareAndSwap(p, nil)
}

// Holder returns the current holder, or nil if the token is free.
func (o *Owner[T]) Holder() *T {
	return o.p.Load()
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package awg

import "sync/atomic"

// Guard represents one unit of work added by [WaitGroup.AddGuard]. Calling
// Done retires it; later calls do nothing, so Done can be both deferred and
// called early on a fast path.
type Guard struct {
	wg   *WaitGroup
	done atomic.Bool
}

// Done retires the guarded unit of work the first time it is called.
func (g *Guard) Done() {
	if g.done.CompareAndSwap(false, true) {
		g.wg.Done()
	}
}

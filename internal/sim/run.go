// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"cmp"
	"time"

	"github.com/addrummond/heap"
	"github.com/gammazero/deque"
	"github.com/petenewcomb/awg-go"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Result tallies how the waits of a plan played out.
type Result struct {
	Immediate int // completed on the first poll
	Suspended int // registered and had to wait
	Rearmed   int // registered again after a wake that increments overtook
	Completed int // woken by a producer
	Canceled  int // abandoned while registered
	Wakes     int // decrements that satisfied a registered wait
	Duration  time.Duration
}

type observed struct {
	Registered int
	Woken      int
	Canceled   int
}

type activeWait struct {
	planned *Wait
	waiter  *awg.Waiter
	woken   bool
}

// Run executes plan against a fresh WaitGroup, checking after every batch of
// simultaneous events that the WaitGroup agrees with a model of the count:
//
//   - a wait completes on its first poll exactly when the count is already
//     at or below its threshold;
//   - a registered wait receives a wake exactly when some decrement brought
//     the count to or below its threshold;
//   - a poll completes the wait exactly when the count is at or below its
//     threshold at that moment, so a wake that increments overtook leaves
//     the wait registered again;
//   - a canceled wait never completes and leaves the WaitGroup free for the
//     next one.
func Run(t *rapid.T, plan *Plan) *Result {
	chk := require.New(t)

	var obs observed
	wg := awg.New(awg.WithObserver(awg.ObserverFuncs{
		RegisteredFunc: func(threshold, left int) {
			obs.Registered++
			chk.Greater(left, threshold)
		},
		WokenFunc: func(threshold, left int) {
			obs.Woken++
			chk.LessOrEqual(left, threshold)
		},
		CanceledFunc: func(int) {
			obs.Canceled++
		},
		MisuseFunc: func(err error, left int) {
			chk.Failf("misuse", "%v with %d left", err, left)
		},
	}))

	var result Result
	var simTime time.Duration
	var eventHeap heap.Heap[simEvent, heap.Min]
	schedule := func(at time.Duration, f func()) {
		heap.PushOrderable(&eventHeap, simEvent{
			Time: at,
			Func: f,
		})
	}

	count := 0
	var active *activeWait

	pending := make([]deque.Deque[Step], len(plan.Producers))
	var step func(p int)
	step = func(p int) {
		s := pending[p].PopFront()
		if s.Delta > 0 {
			wg.Add(s.Delta)
			count += s.Delta
		} else {
			wg.DoneN(-s.Delta)
			count += s.Delta
			chk.GreaterOrEqual(count, 0)
			if active != nil && !active.woken && count <= active.planned.Threshold {
				active.woken = true
				result.Wakes++
			}
		}
		if pending[p].Len() > 0 {
			schedule(simTime+pending[p].Front().Delay, func() { step(p) })
		}
	}
	for i, p := range plan.Producers {
		for _, s := range p.Steps {
			pending[i].PushBack(s)
		}
		if len(p.Steps) > 0 {
			schedule(p.Start+p.Steps[0].Delay, func() { step(i) })
		}
	}

	var startWait func(i int)
	next := func(i int) {
		if i+1 < len(plan.Waits) {
			schedule(simTime+plan.Waits[i+1].Delay, func() { startWait(i + 1) })
		}
	}
	startWait = func(i int) {
		planned := &plan.Waits[i]
		w := wg.NewWaiter(planned.Threshold)
		completed := w.Poll()
		chk.Equal(count <= planned.Threshold, completed, "%v: first poll with %d left", planned, count)
		if completed {
			result.Immediate++
			next(i)
			return
		}
		result.Suspended++
		a := &activeWait{
			planned: planned,
			waiter:  w,
		}
		active = a
		if planned.CancelAfter > 0 {
			schedule(simTime+planned.CancelAfter, func() {
				if active != a {
					return
				}
				w.Close()
				chk.False(w.Poll(), "%v: canceled wait completed", planned)
				result.Canceled++
				active = nil
				next(i)
			})
		}
	}
	if len(plan.Waits) > 0 {
		schedule(plan.Waits[0].Delay, func() { startWait(0) })
	}

	// settle plays the consumer's part once the simultaneous events have run.
	settle := func() {
		chk.Equal(count, wg.Left())
		if active == nil {
			return
		}
		w := active.waiter
		var ready bool
		select {
		case <-w.Ready():
			ready = true
		default:
		}
		chk.Equal(active.woken, ready, "%v: wake delivered with %d left", active.planned, count)
		if !ready {
			chk.Greater(count, active.planned.Threshold, "%v: lost wake", active.planned)
			chk.False(w.Poll())
			return
		}
		if count > active.planned.Threshold {
			chk.False(w.Poll(), "%v: completed early with %d left", active.planned, count)
			active.woken = false
			result.Rearmed++
			return
		}
		chk.True(w.Poll())
		chk.True(w.Poll())
		result.Completed++
		i := active.planned.ID
		active = nil
		next(i)
	}

	var concurrentEvents []simEvent
	for {
		event, ok := heap.PopOrderable(&eventHeap)
		if !ok {
			break
		}
		concurrentEvents = concurrentEvents[:0]
		for {
			concurrentEvents = append(concurrentEvents, event)
			event, ok = heap.Peek(&eventHeap)
			if !ok || event.Time != concurrentEvents[0].Time {
				break
			}
			_, _ = heap.PopOrderable(&eventHeap)
		}
		if len(concurrentEvents) > 1 {
			concurrentEvents = rapid.Permutation(concurrentEvents).Draw(t, "concurrentEvents")
		}
		for _, event := range concurrentEvents {
			simTime = event.Time
			event.Func()
		}
		settle()
	}

	chk.Zero(count)
	chk.Nil(active)
	chk.Equal(len(plan.Waits), result.Immediate+result.Completed+result.Canceled)
	chk.Equal(result.Suspended+result.Rearmed, obs.Registered)
	chk.Equal(result.Wakes, obs.Woken)
	chk.Equal(result.Canceled, obs.Canceled)

	// Nothing is left registered, so a fresh wait can suspend again.
	wg.Add(1)
	w := wg.NewWaiter(0)
	chk.False(w.Poll())
	wg.Done()
	chk.True(w.Poll())

	result.Duration = simTime
	t.Logf("%v result: %+v", simTime, result)
	return &result
}

type simEvent struct {
	Time time.Duration
	Func func()
}

func (a *simEvent) Cmp(b *simEvent) int {
	return cmp.Compare(a.Time, b.Time)
}

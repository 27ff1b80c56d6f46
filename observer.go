// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package awg

// Observer receives diagnostic callbacks from a [WaitGroup]. Implementations
// must be safe for concurrent use and must not call back into the WaitGroup
// that invoked them. A WaitGroup's correctness never depends on its Observer.
//
// See the otawg module for logging, metrics and tracing implementations.
type Observer interface {
	// Registered is called by the waiting goroutine when a wait operation has
	// published itself and is about to suspend, including when it registers
	// again after a wake that the count had already overtaken. left is the
	// count observed by the re-check that followed publication.
	Registered(threshold, left int)

	// Woken is called by the producer that found the count at left, which
	// satisfies a registered wait with the given threshold, just before it
	// issues the wake.
	Woken(threshold, left int)

	// Canceled is called when a registered wait operation is torn down before
	// it completed.
	Canceled(threshold int)

	// Misuse is called just before the WaitGroup panics with err. left is the
	// count at the time the misuse was detected.
	Misuse(err error, left int)
}

// ObserverFuncs is an [Observer] built from optional functions. Nil fields are
// skipped.
type ObserverFuncs struct {
	RegisteredFunc func(threshold, left int)
	WokenFunc      func(threshold, left int)
	CanceledFunc   func(threshold int)
	MisuseFunc     func(err error, left int)
}

func (o ObserverFuncs) Registered(threshold, left int) {
	if o.RegisteredFunc != nil {
		o.RegisteredFunc(threshold, left)
	}
}

func (o ObserverFuncs) Woken(threshold, left int) {
	if o.WokenFunc != nil {
		o.WokenFunc(threshold, left)
	}
}

func (o ObserverFuncs) Canceled(threshold int) {
	if o.CanceledFunc != nil {
		o.CanceledFunc(threshold)
	}
}

func (o ObserverFuncs) Misuse(err error, left int) {
	if o.MisuseFunc != nil {
		o.MisuseFunc(err, left)
	}
}

// Observers fans each callback out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	var list multiObserver
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) Registered(threshold, left int) {
	for _, o := range m {
		o.Registered(threshold, left)
	}
}

func (m multiObserver) Woken(threshold, left int) {
	for _, o := range m {
		o.Woken(threshold, left)
	}
}

func (m multiObserver) Canceled(threshold int) {
	for _, o := range m {
		o.Canceled(threshold)
	}
}

func (m multiObserver) Misuse(err error, left int) {
	for _, o := range m {
		o.Misuse(err, left)
	}
}

package input

import "sync/atomic"

// Accumulator is a signed counter written from interrupt context and drained
// by the control loop. Add and Drain never lose or double-count increments.
type Accumulator struct {
	v atomic.Int64
}

func (a *Accumulator) Add(delta int64) { a.v.Add(delta) }

// Drain returns the accumulated value and resets it to zero in one step.
func (a *Accumulator) Drain() int64 { return a.v.Swap(0) }

// Pending reports the current value without consuming it.
func (a *Accumulator) Pending() int64 { return a.v.Load() }

// Flag is a one-shot signal: Set from any context, Take consumes it.
type Flag struct {
	b atomic.Bool
}

func (f *Flag) Set()       { f.b.Store(true) }
func (f *Flag) Take() bool { return f.b.Swap(false) }
func (f *Flag) Get() bool  { return f.b.Load() }

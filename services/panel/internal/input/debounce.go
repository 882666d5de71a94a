package input

import "time"

// DefaultInterval is the minimum spacing between accepted transitions of a
// mechanical contact.
const DefaultInterval = 10 * time.Millisecond

// Guard debounces one button. Only transitions that change the recorded
// state and arrive at least Interval after the previous accepted one pass.
// It is owned by a single interrupt handler and is not safe for concurrent
// use.
type Guard struct {
	Interval time.Duration

	last    time.Time
	pressed bool
	seen    bool
}

// Accept evaluates a sampled level. accepted is false for bounces and for
// repeats of the current state; press is the state now recorded.
func (g *Guard) Accept(pressed bool, now time.Time) (accepted, press bool) {
	if pressed == g.pressed {
		return false, g.pressed
	}
	iv := g.Interval
	if iv <= 0 {
		iv = DefaultInterval
	}
	if g.seen && now.Sub(g.last) < iv {
		return false, g.pressed
	}
	g.seen = true
	g.last = now
	g.pressed = pressed
	return true, pressed
}

// Pressed reports the last accepted state.
func (g *Guard) Pressed() bool { return g.pressed }

// services/panel/internal/halcore/halcore.go
package halcore

import "tinygo.org/x/drivers"

// I2C is the bus the panel drives its codec and synthesizer over.
type I2C = drivers.I2C

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// IRQPin extends GPIOPin with interrupts. The handler runs in interrupt
// context on hardware and must not block or allocate.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies GPIO pins by GP number.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// IRQPinByNumber resolves n and checks it supports interrupts.
func IRQPinByNumber(f PinFactory, n int) (IRQPin, bool) {
	p, ok := f.ByNumber(n)
	if !ok {
		return nil, false
	}
	ip, ok := p.(IRQPin)
	return ip, ok
}

// ---- Analogue ----

// ADC returns a raw sample scaled to the full 16-bit range.
type ADC interface {
	Get() uint16
}

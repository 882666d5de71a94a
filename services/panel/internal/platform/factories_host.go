//go:build !rp2040 && !rp2350

package platform

import (
	"os"
	"sync"
	"sync/atomic"

	"rxpanel-go/drivers/nau8810"
	"rxpanel-go/drivers/si5351"
	"rxpanel-go/services/panel/internal/display"
	"rxpanel-go/services/panel/internal/halcore"
	"rxpanel-go/x/i2csim"
)

// Open builds a simulated board with its frames printed to stdout.
func Open(_ Options) (*Board, error) {
	return NewSim(display.NewConsole(os.Stdout)).Board(), nil
}

// ----------------------------- Simulation ------------------------------------

// Sim is a host board: simulated codec and synthesizer on one I²C bus,
// fake GPIO and a settable ADC.
type Sim struct {
	Bus   *i2csim.Bus
	Codec *i2csim.NAU8810
	Synth *i2csim.Si5351
	Pins  *HostPinFactory
	ADC   *FakeADC
	Sink  display.Sink
}

// NewSim attaches both devices at their default addresses. The ADC starts at
// a reading of roughly 3.9 V through the default divider.
func NewSim(sink display.Sink) *Sim {
	s := &Sim{
		Bus:   i2csim.NewBus(),
		Codec: i2csim.NewNAU8810(),
		Synth: i2csim.NewSi5351(),
		Pins:  &HostPinFactory{},
		ADC:   &FakeADC{},
		Sink:  sink,
	}
	s.Bus.Attach(nau8810.AddressDefault, s.Codec)
	s.Bus.Attach(si5351.AddressDefault, s.Synth)
	s.ADC.Set(38700)
	return s
}

func (s *Sim) Board() *Board {
	return &Board{
		Name:       "host-sim",
		I2C:        s.Bus,
		Pins:       s.Pins,
		Sink:       s.Sink,
		BatteryADC: s.ADC,
	}
}

// FakeADC returns whatever was last Set.
type FakeADC struct{ v atomic.Uint32 }

func (a *FakeADC) Set(raw uint16) { a.v.Store(uint32(raw)) }
func (a *FakeADC) Get() uint16    { return uint16(a.v.Load()) }

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin and IRQPin. Level changes made with Set fire
// the registered handler synchronously, like an edge interrupt.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	irqEdge halcore.Edge
	irqFunc func()
	sets    int
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	switch pull {
	case halcore.PullUp:
		p.level = true
	case halcore.PullDown:
		p.level = false
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	p.sets++
	irq := p.irqFunc
	want := irqWanted(p.irqEdge, edgeFrom(old, level))
	p.mu.Unlock()
	if want && irq != nil {
		irq()
	}
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports whether the pin was last configured as an output.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Sets counts every Set call, including those that did not change the level.
func (p *FakePin) Sets() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sets
}

func (p *FakePin) SetIRQ(edge halcore.Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = halcore.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

func edgeFrom(old, new bool) halcore.Edge {
	switch {
	case !old && new:
		return halcore.EdgeRising
	case old && !new:
		return halcore.EdgeFalling
	default:
		return halcore.EdgeNone
	}
}

func irqWanted(cfg, seen halcore.Edge) bool {
	switch cfg {
	case halcore.EdgeBoth:
		return seen == halcore.EdgeRising || seen == halcore.EdgeFalling
	default:
		return cfg != halcore.EdgeNone && cfg == seen
	}
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	return f.Pin(n), true
}

// Pin exposes the underlying *FakePin (e.g. to drive IRQ edges).
func (f *HostPinFactory) Pin(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p
}

// ----------------------------- Operator helpers ------------------------------

// Encoder drives a pair of fake phase pins through full Gray-code detents,
// starting and ending with both lines high.
type Encoder struct{ A, B *FakePin }

// Turn rotates n detents; positive is clockwise.
func (e Encoder) Turn(n int) {
	for ; n > 0; n-- {
		e.A.Set(false)
		e.B.Set(false)
		e.A.Set(true)
		e.B.Set(true)
	}
	for ; n < 0; n++ {
		e.B.Set(false)
		e.A.Set(false)
		e.B.Set(true)
		e.A.Set(true)
	}
}

// Button drives an active-low fake pushbutton.
type Button struct{ Pin *FakePin }

func (b Button) Press()   { b.Pin.Set(false) }
func (b Button) Release() { b.Pin.Set(true) }

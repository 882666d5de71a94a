// services/panel/internal/halcore/halcore_test.go

package halcore

import "testing"

func TestEdgeString(t *testing.T) {
	if EdgeRising.String() != "rising" ||
		EdgeFalling.String() != "falling" ||
		EdgeBoth.String() != "both" ||
		EdgeNone.String() != "none" {
		t.Fatal("Edge.String mapping incorrect")
	}
}

type plainPin struct{ n int }

func (p plainPin) ConfigureInput(Pull) error  { return nil }
func (p plainPin) ConfigureOutput(bool) error { return nil }
func (p plainPin) Set(bool)                   {}
func (p plainPin) Get() bool                  { return false }
func (p plainPin) Number() int                { return p.n }

type irqPin struct{ plainPin }

func (irqPin) SetIRQ(Edge, func()) error { return nil }
func (irqPin) ClearIRQ() error           { return nil }

type mapFactory map[int]GPIOPin

func (f mapFactory) ByNumber(n int) (GPIOPin, bool) {
	p, ok := f[n]
	return p, ok
}

func TestIRQPinByNumber(t *testing.T) {
	f := mapFactory{1: plainPin{1}, 2: irqPin{plainPin{2}}}
	if _, ok := IRQPinByNumber(f, 1); ok {
		t.Fatal("pin without IRQ support accepted")
	}
	if p, ok := IRQPinByNumber(f, 2); !ok || p.Number() != 2 {
		t.Fatal("IRQ pin not resolved")
	}
	if _, ok := IRQPinByNumber(f, 3); ok {
		t.Fatal("missing pin resolved")
	}
}

// Package i2csim provides register-level I²C target simulators for host-side
// tests and the bench. Bus satisfies tinygo.org/x/drivers.I2C.
package i2csim

import (
	"errors"
	"sync"
)

var (
	ErrNACK     = errors.New("i2csim: nack")
	ErrProtocol = errors.New("i2csim: protocol error")
)

// Target is one simulated device on the bus.
type Target interface {
	Tx(w, r []byte) error
}

// Tx records one bus transaction.
type Tx struct {
	Addr uint16
	W    []byte
	Rn   int
}

// Bus routes transactions to attached targets by 7-bit address.
type Bus struct {
	mu       sync.Mutex
	targets  map[uint16]Target
	failNext int
	failAddr map[uint16]bool
	trace    []Tx
}

func NewBus() *Bus {
	return &Bus{
		targets:  map[uint16]Target{},
		failAddr: map[uint16]bool{},
	}
}

// Attach places t at addr, replacing any previous target.
func (b *Bus) Attach(addr uint16, t Target) {
	b.mu.Lock()
	b.targets[addr] = t
	b.mu.Unlock()
}

// Detach removes the target at addr; subsequent transactions NACK.
func (b *Bus) Detach(addr uint16) {
	b.mu.Lock()
	delete(b.targets, addr)
	b.mu.Unlock()
}

// FailNext makes the next n transactions NACK regardless of address.
func (b *Bus) FailNext(n int) {
	b.mu.Lock()
	b.failNext = n
	b.mu.Unlock()
}

// FailAddr makes every transaction to addr NACK while on is true.
func (b *Bus) FailAddr(addr uint16, on bool) {
	b.mu.Lock()
	b.failAddr[addr] = on
	b.mu.Unlock()
}

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	b.trace = append(b.trace, Tx{Addr: addr, W: append([]byte(nil), w...), Rn: len(r)})
	if b.failNext > 0 {
		b.failNext--
		b.mu.Unlock()
		return ErrNACK
	}
	t, ok := b.targets[addr]
	fail := b.failAddr[addr]
	b.mu.Unlock()
	if !ok || fail {
		return ErrNACK
	}
	return t.Tx(w, r)
}

// Trace returns a copy of the transactions seen so far.
func (b *Bus) Trace() []Tx {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Tx(nil), b.trace...)
}

func (b *Bus) ResetTrace() {
	b.mu.Lock()
	b.trace = nil
	b.mu.Unlock()
}

package i2csim

import "sync"

// RegWrite is one 9-bit register write seen by a simulated codec.
type RegWrite struct {
	Reg uint8
	Val uint16
}

// NAU8810 models the codec's 7-bit address / 9-bit data register file.
// Writes are two bytes; reads are a one-byte address write followed by a
// two-byte read (D8 in bit 0 of the first byte).
type NAU8810 struct {
	mu     sync.Mutex
	regs   [64]uint16
	writes []RegWrite
}

func NewNAU8810() *NAU8810 { return &NAU8810{} }

func (n *NAU8810) Tx(w, r []byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch {
	case len(w) == 2 && len(r) == 0:
		reg := w[0] >> 1
		val := uint16(w[0]&1)<<8 | uint16(w[1])
		n.writes = append(n.writes, RegWrite{Reg: reg, Val: val})
		if reg == 0 {
			n.regs = [64]uint16{}
			return nil
		}
		n.regs[reg&0x3F] = val
		return nil
	case len(w) == 1 && len(r) == 2:
		v := n.regs[(w[0]>>1)&0x3F]
		r[0] = byte(v>>8) & 1
		r[1] = byte(v)
		return nil
	default:
		return ErrProtocol
	}
}

// Reg returns the current value of reg.
func (n *NAU8810) Reg(reg uint8) uint16 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.regs[reg&0x3F]
}

// SetReg forces a register value without recording a write.
func (n *NAU8810) SetReg(reg uint8, v uint16) {
	n.mu.Lock()
	n.regs[reg&0x3F] = v & 0x1FF
	n.mu.Unlock()
}

// Writes returns a copy of every write seen so far.
func (n *NAU8810) Writes() []RegWrite {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]RegWrite(nil), n.writes...)
}

func (n *NAU8810) ClearWrites() {
	n.mu.Lock()
	n.writes = nil
	n.mu.Unlock()
}

package i2csim

import "sync"

// Si5351 models the synthesizer's byte-addressed register file with
// auto-increment on burst reads and writes.
type Si5351 struct {
	mu   sync.Mutex
	regs [256]byte

	// InitReads is the number of status reads that still report SYS_INIT.
	InitReads int
	// PLLResets counts writes to the PLL reset register.
	PLLResets int
	// Status is OR'ed into register 0 on every read.
	Status byte
}

func NewSi5351() *Si5351 { return &Si5351{} }

const (
	simRegStatus   = 0
	simRegPLLReset = 177
	simSysInit     = 0x80
)

func (s *Si5351) Tx(w, r []byte) error {
	if len(w) == 0 {
		return ErrProtocol
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	reg := int(w[0])
	for i, b := range w[1:] {
		a := (reg + i) & 0xFF
		s.regs[a] = b
		if a == simRegPLLReset && b&0xA0 != 0 {
			s.PLLResets++
		}
	}
	for i := range r {
		a := (reg + i) & 0xFF
		v := s.regs[a]
		if a == simRegStatus {
			v |= s.Status
			if s.InitReads > 0 {
				s.InitReads--
				v |= simSysInit
			}
		}
		r[i] = v
	}
	return nil
}

// Reg returns one register byte.
func (s *Si5351) Reg(a uint8) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[a]
}

// Regs returns n consecutive register bytes starting at a.
func (s *Si5351) Regs(a uint8, n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, n)
	for i := range out {
		out[i] = s.regs[(int(a)+i)&0xFF]
	}
	return out
}

// Resets returns the PLL reset count.
func (s *Si5351) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.PLLResets
}

package nau8810

import "rxpanel-go/errcode"

// Internal master clock the PLL must produce (256 × 48 kHz).
const MasterClockHz = 12_288_000

// The PLL output is post-divided by 4 before it becomes the master clock,
// and the ratio must sit inside this window.
const (
	pllPostDiv  = 4
	pllRatioMin = 5.0
	pllRatioMax = 13.0
	pllFracOne  = 1 << 24
)

// PLL holds a computed multiplier: R = N + K/2^24.
type PLL struct {
	Ratio float64
	N     uint8
	K     uint32 // 24-bit fraction
}

// ComputePLL derives the PLL multiplier for an MCLK input frequency.
// It returns errcode.PllOutOfRange when the ratio leaves [5.0, 13.0].
func ComputePLL(inputHz uint32) (PLL, error) {
	if inputHz == 0 {
		return PLL{}, errcode.PllOutOfRange
	}
	r := float64(MasterClockHz) * pllPostDiv / float64(inputHz)
	if r < pllRatioMin || r > pllRatioMax {
		return PLL{Ratio: r}, errcode.PllOutOfRange
	}
	n := uint8(r)
	k := uint32((r - float64(n)) * pllFracOne)
	return PLL{Ratio: r, N: n, K: k & (pllFracOne - 1)}, nil
}

// Registers returns the four PLL register values in write order:
// N, then K[23:18], K[17:9], K[8:0].
func (p PLL) Registers() [4]uint16 {
	return [4]uint16{
		uint16(p.N) & pllNMask,
		uint16(p.K >> 18),
		uint16(p.K>>9) & pllKChunk,
		uint16(p.K) & pllKChunk,
	}
}

var pllRegs = [4]uint8{regPLLN, regPLLK1, regPLLK2, regPLLK3}

// SetPLL programs the PLL for the given MCLK input and returns the integer
// divider N. Nothing is written when the ratio is out of range.
func (d *Device) SetPLL(inputHz uint32) (uint8, error) {
	p, err := ComputePLL(inputHz)
	if err != nil {
		return 0, err
	}
	vals := p.Registers()
	for i, reg := range pllRegs {
		if err := d.WriteRegister(reg, vals[i]); err != nil {
			return 0, err
		}
	}
	return p.N, nil
}

package si5351

import "rxpanel-go/errcode"

// Plan is a CLK0 frequency plan: VCO = ref × (A + B/C), out = VCO / MSDiv.
type Plan struct {
	VCO   uint64
	MSDiv uint32
	A     uint32
	B     uint32
	C     uint32
}

// PlanFrequency picks the largest even multisynth divider keeping the VCO
// at or below 900 MHz, then solves the fractional PLL feedback for refHz.
func PlanFrequency(hz, refHz uint64) (Plan, error) {
	if hz < MinFrequency || hz > MaxFrequency || refHz == 0 {
		return Plan{}, errcode.FreqOutOfRange
	}
	div := vcoMax / hz
	div &^= 1
	if div < msDivMin {
		div = msDivMin
	}
	if div > msDivMax {
		div = msDivMax
	}
	vco := hz * div
	if vco < vcoMin || vco > vcoMax {
		return Plan{}, errcode.FreqOutOfRange
	}
	a := vco / refHz
	b := (vco % refHz) * fracDenom / refHz
	return Plan{VCO: vco, MSDiv: uint32(div), A: uint32(a), B: uint32(b), C: fracDenom}, nil
}

// Hz returns the output frequency the plan actually produces for refHz.
func (p Plan) Hz(refHz uint64) uint64 {
	if p.MSDiv == 0 || p.C == 0 {
		return 0
	}
	num := refHz*uint64(p.A)*uint64(p.C) + refHz*uint64(p.B)
	return num / (uint64(p.C) * uint64(p.MSDiv))
}

func (p Plan) pllParams() [8]byte {
	f := 128 * p.B / p.C
	p1 := 128*p.A + f - 512
	p2 := 128*p.B - p.C*f
	return encodeParams(p1, p2, p.C)
}

func (p Plan) msParams() [8]byte {
	return encodeParams(128*p.MSDiv-512, 0, 1)
}

// encodeParams packs P1/P2/P3 into the 8-byte multisynth/PLL layout
// (R output divider fixed at 1).
func encodeParams(p1, p2, p3 uint32) [8]byte {
	return [8]byte{
		byte(p3 >> 8),
		byte(p3),
		byte(p1>>16) & 0x03,
		byte(p1 >> 8),
		byte(p1),
		byte(p3>>16)&0x0F<<4 | byte(p2>>16)&0x0F,
		byte(p2 >> 8),
		byte(p2),
	}
}

// Package si5351 provides register addresses and bitfields used in the
// operation of the Si5351A clock generator.
package si5351

const (
	// 7-bit I2C address.
	AddressDefault = 0x60

	// --- Register addresses ---
	regDeviceStatus = 0
	regOutputEnable = 3
	regOEBPinMask   = 9
	regPLLInputSrc  = 15
	regCLK0Ctrl     = 16 // CLK1..CLK7 follow contiguously
	regPLLAParams   = 26 // 8 bytes
	regMS0Params    = 42 // 8 bytes
	regPLLReset     = 177
	regXtalLoad     = 183

	numOutputs = 8

	// --- Device status (R0) ---
	statusSysInit = 1 << 7
	statusLOLB    = 1 << 6
	statusLOLA    = 1 << 5
	statusLOS     = 1 << 4
	statusRevMask = 0x03

	// --- CLKx control (R16..R23) ---
	clkPowerDown = 1 << 7
	clkMSInt     = 1 << 6
	clkSrcPLLB   = 1 << 5
	clkSrcMS     = 0x3 << 2
	clkDriveMask = 0x03

	// --- PLL reset (R177) ---
	pllResetA = 1 << 5
	pllResetB = 1 << 7

	// --- Crystal load (R183): bits 7:6 select, bits 5:0 must be 010010b ---
	xtalLoadReserved = 0x12
	xtalLoadShift    = 6
)

// Frequency plan limits.
const (
	MinFrequency = 1_000_000
	MaxFrequency = 150_000_000

	vcoMin    = 600_000_000
	vcoMax    = 900_000_000
	msDivMin  = 6
	msDivMax  = 900
	fracDenom = 1_048_575
)

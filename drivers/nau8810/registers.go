// Package nau8810 provides register addresses and bitfields used in the
// operation of the NAU8810 mono audio codec.
package nau8810

const (
	// 7-bit I2C address (CSB low).
	AddressDefault = 0x1A

	// --- Register addresses (7-bit, 9-bit data) ---

	regReset      = 0x00
	regPower1     = 0x01
	regPower2     = 0x02
	regPower3     = 0x03
	regAudioIface = 0x04
	regCompanding = 0x05
	regClock1     = 0x06
	regClock2     = 0x07
	regDACCtrl    = 0x0A
	regDACVolume  = 0x0B
	regADCCtrl    = 0x0E
	regEQ1        = 0x12 // EQ2..EQ5 follow contiguously
	regALC1       = 0x20
	regALC2       = 0x21
	regPLLN       = 0x24
	regPLLK1      = 0x25
	regPLLK2      = 0x26
	regPLLK3      = 0x27
	regOutputCtrl = 0x31
	regSpkMixer   = 0x32
	regSpkVolume  = 0x36
	regMonoMixer  = 0x38
	maxRegister   = 0x3F
	valueMask     = 0x1FF

	// --- Power management ---
	pwr1PLLEN   = 1 << 5
	pwr1ABIASEN = 1 << 3
	pwr1IOBUFEN = 1 << 2
	pwr1REFIMP  = 0x01 // 80k reference impedance

	pwr2BSTEN = 1 << 4
	pwr2PGAEN = 1 << 2
	pwr2ADCEN = 1 << 0

	pwr3MOUTEN   = 1 << 7
	pwr3NSPKEN   = 1 << 6
	pwr3PSPKEN   = 1 << 5
	pwr3MOUTMXEN = 1 << 3
	pwr3SPKMXEN  = 1 << 2
	pwr3DACEN    = 1 << 0

	// --- Clocking / paths ---
	compADDAP    = 1 << 0 // ADC to DAC loopback
	clk1CLKM     = 1 << 8 // master clock from PLL
	dacDACOS     = 1 << 3 // 128x oversampling
	alc1ALCEN    = 1 << 8
	alc1MaxGain  = 0x7 << 3
	outTSEN      = 1 << 1
	mixDACSPK    = 1 << 0
	monoDACMOUT  = 1 << 0
	monoMOUTMXMT = 1 << 6

	// --- Speaker volume (R0x36) ---
	spkZC       = 1 << 7
	spkMute     = 1 << 6
	spkGainMask = 0x3F
	spkCtrlMask = spkZC | spkMute

	// --- EQ (R0x12..R0x16) ---
	eqGainMask = 0x1F
	eqEQM      = 1 << 8 // band 1 only: EQ on the DAC path
	eqCutoff   = 1 << 5 // second cutoff/bandwidth option

	// --- ALC (R0x21) ---
	alcTargetMask = 0x0F

	// --- PLL ---
	pllNMask  = 0x0F
	pllK1Bits = 6
	pllKChunk = 0x1FF
)

// Logical limits.
const (
	MaxVolume  = 63
	MaxALCGain = 15
	MaxEQGain  = 0x18 // 0 = +12 dB ... 0x18 = -12 dB
	Bands      = 5
)

package panel

import (
	"rxpanel-go/drivers/nau8810"
)

// StepDigit selects which frequency digit the tuning shaft moves.
type StepDigit uint8

const (
	DigitMHz1 StepDigit = iota
	DigitKHz100
	DigitKHz10
	DigitKHz1
	numDigits
)

var digitSteps = [numDigits]uint64{1_000_000, 100_000, 10_000, 1_000}

// Step returns the frequency increment per detent in Hz.
func (d StepDigit) Step() uint64 { return digitSteps[d%numDigits] }

// Next cycles MHz1 → kHz100 → kHz10 → kHz1 → MHz1.
func (d StepDigit) Next() StepDigit { return (d + 1) % numDigits }

func (d StepDigit) String() string {
	switch d % numDigits {
	case DigitMHz1:
		return "1MHz"
	case DigitKHz100:
		return "100kHz"
	case DigitKHz10:
		return "10kHz"
	default:
		return "1kHz"
	}
}

// TuningState is the local oscillator setting.
type TuningState struct {
	Frequency uint64 // LO Hz
	Digit     StepDigit
}

// AudioState mirrors the codec settings the control shaft edits.
type AudioState struct {
	Volume uint8    // 0..63
	ALC    uint8    // 0..15
	EQ     [5]uint8 // gain codes 0 (+12 dB) .. 0x18 (-12 dB)
	Route  nau8810.Output
}

// EQFlat is the 0 dB gain code.
const EQFlat = 12

// DefaultAudio is the cold-start audio state: mid-scale volume and ALC,
// flat EQ, speaker output.
func DefaultAudio() AudioState {
	return AudioState{
		Volume: nau8810.MaxVolume / 2,
		ALC:    nau8810.MaxALCGain / 2,
		EQ:     [5]uint8{EQFlat, EQFlat, EQFlat, EQFlat, EQFlat},
		Route:  nau8810.OutputSpeaker,
	}
}

// LOSource selects which oscillator feeds the mixer.
type LOSource uint8

const (
	SourceSynth LOSource = iota
	SourceExternal
)

func (s LOSource) Toggle() LOSource {
	if s == SourceSynth {
		return SourceExternal
	}
	return SourceSynth
}

func (s LOSource) String() string {
	if s == SourceExternal {
		return "EXT"
	}
	return "SYN"
}

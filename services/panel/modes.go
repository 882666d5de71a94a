package panel

import (
	"rxpanel-go/drivers/nau8810"
)

// ControlMode selects which AudioState field the control shaft edits.
type ControlMode uint8

const (
	ModeVolume ControlMode = iota
	ModeALC
	ModeRoute
	ModeEQ1
	ModeEQ2
	ModeEQ3
	ModeEQ4
	ModeEQ5
	numModes
)

// Next advances to the following mode, wrapping after EQ5.
func (m ControlMode) Next() ControlMode { return (m + 1) % numModes }

func (m ControlMode) String() string { return modeTable[m%numModes].label }

// modeEntry binds a mode to its field, bounds and codec operation.
type modeEntry struct {
	label string
	op    string
	max   uint8
	get   func(*AudioState) uint8
	set   func(*AudioState, uint8)
	apply func(Codec, *AudioState) error
}

var modeTable = [numModes]modeEntry{
	ModeVolume: {
		label: "VOL",
		op:    "codec.volume",
		max:   nau8810.MaxVolume,
		get:   func(a *AudioState) uint8 { return a.Volume },
		set:   func(a *AudioState, v uint8) { a.Volume = v },
		apply: func(c Codec, a *AudioState) error { return c.SetSpeakerVolume(a.Volume) },
	},
	ModeALC: {
		label: "ALC",
		op:    "codec.alc",
		max:   nau8810.MaxALCGain,
		get:   func(a *AudioState) uint8 { return a.ALC },
		set:   func(a *AudioState, v uint8) { a.ALC = v },
		apply: func(c Codec, a *AudioState) error { return c.SetALCGain(a.ALC) },
	},
	ModeRoute: {
		label: "OUT",
		op:    "codec.route",
		max:   uint8(nau8810.OutputMono),
		get:   func(a *AudioState) uint8 { return uint8(a.Route) },
		set:   func(a *AudioState, v uint8) { a.Route = nau8810.Output(v) },
		apply: func(c Codec, a *AudioState) error { return c.SetOutput(a.Route) },
	},
	ModeEQ1: eqEntry(1),
	ModeEQ2: eqEntry(2),
	ModeEQ3: eqEntry(3),
	ModeEQ4: eqEntry(4),
	ModeEQ5: eqEntry(5),
}

func eqEntry(band uint8) modeEntry {
	i := band - 1
	return modeEntry{
		label: "EQ" + string(rune('0'+band)),
		op:    "codec.eq",
		max:   nau8810.MaxEQGain,
		get:   func(a *AudioState) uint8 { return a.EQ[i] },
		set:   func(a *AudioState, v uint8) { a.EQ[i] = v },
		apply: func(c Codec, a *AudioState) error { return c.SetEQGain(band, a.EQ[i]) },
	}
}

// applyAudio pushes every field of a to the codec, stopping at the first
// failure.
func applyAudio(c Codec, a *AudioState) error {
	for m := ModeVolume; m < numModes; m++ {
		if err := modeTable[m].apply(c, a); err != nil {
			return err
		}
	}
	return nil
}

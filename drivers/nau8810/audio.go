package nau8810

import "rxpanel-go/x/mathx"

// SetSpeakerVolume sets the speaker gain (0..63, -57 dB to +6 dB in 1 dB
// steps). Values above the range saturate. Zero-cross and mute bits are kept.
func (d *Device) SetSpeakerVolume(vol uint8) error {
	vol = mathx.Min(vol, MaxVolume)
	return d.modifyRegister(regSpkVolume, spkCtrlMask, uint16(vol))
}

// SetALCGain sets the ALC target level (0..15).
func (d *Device) SetALCGain(gain uint8) error {
	gain = mathx.Min(gain, MaxALCGain)
	return d.WriteRegister(regALC2, uint16(gain)&alcTargetMask)
}

// SetEQGain sets one of the five EQ bands (1..5). Gain codes run from 0
// (+12 dB) to 0x18 (-12 dB) and saturate at 0x18.
func (d *Device) SetEQGain(band, gain uint8) error {
	band = mathx.Clamp(band, 1, Bands)
	gain = mathx.Min(gain, MaxEQGain)
	ctrl := uint16(eqCutoff)
	if band == 1 {
		ctrl |= eqEQM
	}
	return d.WriteRegister(regEQ1+band-1, ctrl|uint16(gain)&eqGainMask)
}

// SetOutput routes audio to the speaker or the mono output, muting the
// other path. The speaker gain bits are preserved.
func (d *Device) SetOutput(out Output) error {
	cur, err := d.ReadRegister(regSpkVolume)
	if err != nil {
		return err
	}
	vol := cur & spkGainMask
	if out == OutputMono {
		if err := d.WriteRegister(regSpkVolume, spkMute|vol); err != nil {
			return err
		}
		return d.WriteRegister(regMonoMixer, monoMixerActive)
	}
	if err := d.WriteRegister(regSpkVolume, vol); err != nil {
		return err
	}
	return d.WriteRegister(regMonoMixer, monoMixerActive|monoMOUTMXMT)
}

// SpeakerVolume reads back the current speaker gain.
func (d *Device) SpeakerVolume() (uint8, error) {
	v, err := d.ReadRegister(regSpkVolume)
	return uint8(v & spkGainMask), err
}

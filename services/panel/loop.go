package panel

import (
	"rxpanel-go/x/mathx"
)

// Step runs one control-loop iteration and reports whether it did anything.
// Device failures are recorded and published; the loop neither retries nor
// stops on them.
func (s *Service) Step() bool {
	tune := s.tuneAcc.Drain()
	ctrl := s.ctrlAcc.Drain()

	active := false
	synthTouched := false

	if tune != 0 {
		active = true
		f, clamped := mathx.AddClamp(s.freq, tune, s.cfg.LOMinHz, s.cfg.LOMaxHz)
		if clamped {
			s.faults.Clamped++
		}
		s.freq = f
		s.record("synth.frequency", s.hw.Synth.SetFrequency(f))
		synthTouched = true
		s.dirty.Set()
	}

	if s.srcChanged.Take() {
		active = true
		src := s.Source()
		s.applySource(src)
		s.record("synth.enable", s.hw.Synth.SetOutputEnabled(src == SourceSynth))
		if tune == 0 {
			s.record("synth.frequency", s.hw.Synth.SetFrequency(s.freq))
		}
		synthTouched = true
		s.dirty.Set()
	}

	if synthTouched {
		s.record("synth.update", s.hw.Synth.Update())
	}

	if ctrl != 0 {
		active = true
		s.adjust(s.Mode(), ctrl)
		s.dirty.Set()
	}

	if s.dirty.Take() {
		active = true
		s.redraw()
	}
	return active
}

// adjust applies delta to the field selected by m, saturating at its
// bounds, and issues the codec write.
func (s *Service) adjust(m ControlMode, delta int64) {
	e := &modeTable[m%numModes]
	v, clamped := mathx.AddClamp(e.get(&s.audio), delta, 0, e.max)
	if clamped {
		s.faults.Clamped++
	}
	e.set(&s.audio, v)
	s.record(e.op, e.apply(s.hw.Codec, &s.audio))
}

func (s *Service) redraw() {
	var mv uint32
	ok := false
	if s.hw.Battery != nil {
		var err error
		mv, err = s.hw.Battery.MilliVolts()
		s.record("battery.read", err)
		ok = err == nil
	}
	snap := s.snapshot(mv, ok)
	s.last = snap
	s.record("display.render", s.hw.Display.Render(snap))
	s.publish(TopicState, snap, true)
}

package panel

import (
	"rxpanel-go/services/panel/internal/halcore"
	"rxpanel-go/services/panel/internal/input"
)

// configureInputs sets pull-ups, seeds the decoders with the resting levels
// and attaches the interrupt handlers.
func (s *Service) configureInputs() error {
	for _, p := range []halcore.IRQPin{s.tuneA, s.tuneB, s.tuneSW, s.ctrlA, s.ctrlB, s.ctrlSW, s.srcBtn} {
		if err := p.ConfigureInput(halcore.PullUp); err != nil {
			return err
		}
	}
	s.tuneQ.Reset(s.tuneA.Get(), s.tuneB.Get())
	s.ctrlQ.Reset(s.ctrlA.Get(), s.ctrlB.Get())

	handlers := []struct {
		pin halcore.IRQPin
		fn  func()
	}{
		{s.tuneA, s.onTune},
		{s.tuneB, s.onTune},
		{s.ctrlA, s.onCtrl},
		{s.ctrlB, s.onCtrl},
		{s.tuneSW, s.button(&s.digitGuard, s.tuneSW, s.cycleDigit)},
		{s.ctrlSW, s.button(&s.modeGuard, s.ctrlSW, s.nextMode)},
		{s.srcBtn, s.button(&s.srcGd, s.srcBtn, s.toggleSource)},
	}
	for _, h := range handlers {
		if err := h.pin.SetIRQ(halcore.EdgeBoth, h.fn); err != nil {
			return err
		}
		s.irqs = append(s.irqs, h.pin)
	}
	return nil
}

// ---- interrupt context ----

// onTune adds one step of the digit active at this detent, so the drained
// total is already in Hz.
func (s *Service) onTune() {
	if d := s.tuneQ.Update(s.tuneA.Get(), s.tuneB.Get()); d != 0 {
		s.tuneAcc.Add(int64(d) * int64(s.Digit().Step()))
	}
}

func (s *Service) onCtrl() {
	if d := s.ctrlQ.Update(s.ctrlA.Get(), s.ctrlB.Get()); d != 0 {
		s.ctrlAcc.Add(int64(d))
	}
}

// button returns an active-low pushbutton handler calling press once per
// debounced press.
func (s *Service) button(g *input.Guard, pin halcore.GPIOPin, press func()) func() {
	return func() {
		ok, down := g.Accept(!pin.Get(), s.now())
		if ok && down {
			press()
			s.dirty.Set()
		}
	}
}

func (s *Service) cycleDigit() { s.digit.Store(uint32(s.Digit().Next())) }
func (s *Service) nextMode()   { s.mode.Store(uint32(s.Mode().Next())) }

func (s *Service) toggleSource() {
	s.source.Store(uint32(s.Source().Toggle()))
	s.srcChanged.Set()
}

// ---- outputs ----

// configureOutputs drives every output to its idle level, asserts the RF
// rail and selects the configured LO source.
func (s *Service) configureOutputs() error {
	for _, p := range []halcore.GPIOPin{s.extEn, s.pllEn, s.led} {
		if err := p.ConfigureOutput(false); err != nil {
			return err
		}
	}
	if err := s.rfEn.ConfigureOutput(true); err != nil {
		return err
	}
	s.applySource(s.Source())
	return nil
}

// applySource switches the LO enables break-before-make so both are never
// asserted together. The LED is lit for the external source.
func (s *Service) applySource(src LOSource) {
	on, off := s.pllEn, s.extEn
	if src == SourceExternal {
		on, off = s.extEn, s.pllEn
	}
	off.Set(false)
	on.Set(true)
	s.led.Set(src == SourceExternal)
}

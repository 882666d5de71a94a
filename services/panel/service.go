package panel

import (
	"context"
	"sync/atomic"
	"time"

	"rxpanel-go/bus"
	"rxpanel-go/drivers/nau8810"
	"rxpanel-go/drivers/si5351"
	"rxpanel-go/errcode"
	"rxpanel-go/services/panel/internal/halcore"
	"rxpanel-go/services/panel/internal/input"
	"rxpanel-go/x/conv"
)

// Codec is the audio codec surface the panel drives.
type Codec interface {
	Configure(cfg nau8810.Config) error
	SetPLL(inputHz uint32) (uint8, error)
	SetSpeakerVolume(vol uint8) error
	SetALCGain(gain uint8) error
	SetEQGain(band, gain uint8) error
	SetOutput(out nau8810.Output) error
}

// Synth is the local oscillator surface the panel drives.
type Synth interface {
	Configure(cfg si5351.Config) error
	SetFrequency(hz uint64) error
	SetDriveStrength(level si5351.Drive) error
	SetOutputEnabled(on bool) error
	ApplyCorrection(ppb int32) error
	Update() error
	Status() si5351.Status
}

// Display receives a full redraw on every dirty cycle and a message on a
// fatal startup failure.
type Display interface {
	Render(Snapshot) error
	Fault(msg string)
}

// Battery samples the supply voltage.
type Battery interface {
	MilliVolts() (uint32, error)
}

// Hardware collects the collaborators of a Service. Clock defaults to
// time.Now.
type Hardware struct {
	Codec   Codec
	Synth   Synth
	Display Display
	Battery Battery
	Pins    halcore.PinFactory
	Clock   func() time.Time
}

// Service is the panel control core. ISR handlers write the atomic cells;
// Step, run from a single goroutine, owns everything else.
type Service struct {
	cfg  Config
	hw   Hardware
	conn *bus.Connection

	tuneA, tuneB, tuneSW halcore.IRQPin
	ctrlA, ctrlB, ctrlSW halcore.IRQPin
	srcBtn               halcore.IRQPin
	extEn, pllEn, led    halcore.GPIOPin
	rfEn                 halcore.GPIOPin

	// Shared with interrupt context.
	tuneAcc    input.Accumulator
	ctrlAcc    input.Accumulator
	digit      atomic.Uint32
	mode       atomic.Uint32
	source     atomic.Uint32
	srcChanged input.Flag
	dirty      input.Flag

	// Interrupt-private.
	tuneQ, ctrlQ                 input.Quadrature
	digitGuard, modeGuard, srcGd input.Guard

	// Loop-owned.
	freq   uint64
	audio  AudioState
	faults Faults
	last   Snapshot
	irqs   []halcore.IRQPin
	stop   context.CancelFunc
}

// New validates cfg and resolves every pin. It does not touch the hardware.
func New(cfg Config, hw Hardware, conn *bus.Connection) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "panel.new", Msg: err.Error(), Err: err}
	}
	if hw.Codec == nil || hw.Synth == nil || hw.Display == nil || hw.Pins == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "panel.new", Msg: "missing collaborator"}
	}
	if hw.Clock == nil {
		hw.Clock = time.Now
	}
	s := &Service{
		cfg:   cfg,
		hw:    hw,
		conn:  conn,
		freq:  cfg.LOHz,
		audio: cfg.Audio,
	}
	s.faults.ByOp = map[string]uint32{}
	s.source.Store(uint32(cfg.Source))

	irq := []struct {
		n   int
		dst *halcore.IRQPin
	}{
		{cfg.Pins.TuneA, &s.tuneA}, {cfg.Pins.TuneB, &s.tuneB}, {cfg.Pins.TuneSW, &s.tuneSW},
		{cfg.Pins.CtrlA, &s.ctrlA}, {cfg.Pins.CtrlB, &s.ctrlB}, {cfg.Pins.CtrlSW, &s.ctrlSW},
		{cfg.Pins.Source, &s.srcBtn},
	}
	for _, p := range irq {
		pin, ok := halcore.IRQPinByNumber(hw.Pins, p.n)
		if !ok {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "panel.new", Msg: "no interrupt pin " + gp(p.n)}
		}
		*p.dst = pin
	}
	out := []struct {
		n   int
		dst *halcore.GPIOPin
	}{
		{cfg.Pins.ExtLOEnable, &s.extEn}, {cfg.Pins.PLLLOEnable, &s.pllEn},
		{cfg.Pins.SourceLED, &s.led}, {cfg.Pins.RFEnable, &s.rfEn},
	}
	for _, p := range out {
		pin, ok := hw.Pins.ByNumber(p.n)
		if !ok {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "panel.new", Msg: "no output pin " + gp(p.n)}
		}
		*p.dst = pin
	}

	transitions := cfg.Detent
	s.tuneQ = input.Quadrature{Transitions: transitions, Reverse: cfg.TuneReverse}
	s.ctrlQ = input.Quadrature{Transitions: transitions, Reverse: cfg.CtrlReverse}
	for _, g := range []*input.Guard{&s.digitGuard, &s.modeGuard, &s.srcGd} {
		g.Interval = cfg.Debounce
	}
	s.dirty.Set() // first iteration always paints
	return s, nil
}

// Init brings the peripherals up in order and stops at the first failure,
// which is shown on the display, published and returned.
func (s *Service) Init(ctx context.Context) error {
	s.publishStatus(StatusInit, nil)
	steps := [...]struct {
		op string
		fn func() error
	}{
		{"codec.configure", func() error { return s.hw.Codec.Configure(nau8810.Config{Address: s.cfg.CodecAddr}) }},
		{"codec.pll", func() error { _, err := s.hw.Codec.SetPLL(s.cfg.MCLKHz); return err }},
		{"codec.audio", func() error { return applyAudio(s.hw.Codec, &s.audio) }},
		{"synth.configure", func() error {
			return s.hw.Synth.Configure(si5351.Config{Address: s.cfg.SynthAddr, XtalHz: s.cfg.XtalHz})
		}},
		{"synth.drive", func() error { return s.hw.Synth.SetDriveStrength(s.cfg.Drive) }},
		{"synth.correction", func() error { return s.hw.Synth.ApplyCorrection(s.cfg.CorrectionPPB) }},
		{"synth.frequency", func() error { return s.hw.Synth.SetFrequency(s.freq) }},
		{"synth.enable", func() error { return s.hw.Synth.SetOutputEnabled(s.Source() == SourceSynth) }},
		{"synth.update", s.hw.Synth.Update},
		{"pins.outputs", s.configureOutputs},
		{"pins.inputs", s.configureInputs},
	}
	for _, st := range steps {
		if err := st.fn(); err != nil {
			return s.initFailed(st.op, err)
		}
	}

	ctx, s.stop = context.WithCancel(ctx)
	s.startRefresh(ctx)
	s.publishStatus(StatusRunning, nil)
	return nil
}

func (s *Service) initFailed(op string, err error) error {
	s.record(op, err)
	s.hw.Display.Fault(op + ": " + err.Error())
	e := &errcode.E{C: errcode.Of(err), Op: "panel.init", Msg: op + ": " + err.Error(), Err: err}
	s.publishStatus(StatusFault, e)
	return e
}

// Close detaches the interrupt handlers and stops the refresh tick.
func (s *Service) Close() {
	for _, p := range s.irqs {
		_ = p.ClearIRQ()
	}
	s.irqs = nil
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// Run polls Step until ctx is cancelled, sleeping PollInterval only after
// an idle iteration.
func (s *Service) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.publishStatus(StatusStopped, nil)
			return nil
		default:
		}
		if !s.Step() {
			time.Sleep(s.cfg.PollInterval)
		}
	}
}

// Digit, Mode and Source read the interrupt-owned selectors.
func (s *Service) Digit() StepDigit  { return StepDigit(s.digit.Load()) }
func (s *Service) Mode() ControlMode { return ControlMode(s.mode.Load()) }
func (s *Service) Source() LOSource  { return LOSource(s.source.Load()) }

// Frequency is the LO frequency last pushed to the synthesizer.
func (s *Service) Frequency() uint64 { return s.freq }

// Audio is the codec state last pushed.
func (s *Service) Audio() AudioState { return s.audio }

// Last returns the most recently rendered snapshot.
func (s *Service) Last() Snapshot { return s.last }

func (s *Service) now() time.Time { return s.hw.Clock() }

// ---- faults ----

// Faults counts runtime failures by operation. Clamped counts adjustments
// that saturated at a bound.
type Faults struct {
	Total   uint32
	Clamped uint32
	ByOp    map[string]uint32
	LastOp  string
	Last    error
}

// Faults returns a copy of the counters. Call it from the loop goroutine or
// after Run has returned.
func (s *Service) Faults() Faults {
	f := s.faults
	f.ByOp = make(map[string]uint32, len(s.faults.ByOp))
	for k, v := range s.faults.ByOp {
		f.ByOp[k] = v
	}
	return f
}

// record notes a failed operation and publishes it. A nil err is a no-op.
func (s *Service) record(op string, err error) {
	if err == nil {
		return
	}
	s.faults.Total++
	s.faults.ByOp[op]++
	s.faults.LastOp = op
	s.faults.Last = err
	s.publish(TopicFault, FaultEvent{
		Op:    op,
		Code:  errcode.Of(err),
		Msg:   err.Error(),
		Count: s.faults.ByOp[op],
	}, false)
}

func gp(n int) string { return "GP" + string(conv.AppendInt(nil, int64(n), 0, 0)) }

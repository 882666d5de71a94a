package panel

import (
	"rxpanel-go/drivers/nau8810"
	"rxpanel-go/services/panel/internal/display"
	"rxpanel-go/x/conv"
)

// Snapshot is everything the status display shows.
type Snapshot struct {
	LOHz      uint64
	DisplayHz uint64 // LO plus IF offset
	Digit     StepDigit
	Mode      ControlMode
	Audio     AudioState
	Source    LOSource
	BatteryMV uint32
	BatteryOK bool
	Unlocked  bool // synthesizer PLL reported loss of lock
}

func (s *Service) snapshot(mv uint32, ok bool) Snapshot {
	disp := int64(s.freq) + s.cfg.IFOffsetHz
	if disp < 0 {
		disp = 0
	}
	src := s.Source()
	return Snapshot{
		LOHz:      s.freq,
		DisplayHz: uint64(disp),
		Digit:     s.Digit(),
		Mode:      s.Mode(),
		Audio:     s.audio,
		Source:    src,
		BatteryMV: mv,
		BatteryOK: ok,
		Unlocked:  src == SourceSynth && s.hw.Synth.Status().LossOfLockA,
	}
}

// FrequencyText renders DisplayHz as "MMM.kkk MHz", space-padded below
// 100 MHz.
func (s Snapshot) FrequencyText() string {
	b := make([]byte, 0, 12)
	b = conv.AppendUint(b, s.DisplayHz/1_000_000, 3, ' ')
	b = append(b, '.')
	b = conv.AppendUint(b, s.DisplayHz%1_000_000/1_000, 3, '0')
	return string(append(b, " MHz"...))
}

// markerColumns indexes FrequencyText by StepDigit.
var markerColumns = [numDigits]int{2, 4, 5, 6}

// MarkerColumn is the position of the active step digit in FrequencyText.
func (s Snapshot) MarkerColumn() int { return markerColumns[s.Digit%numDigits] }

// EQdB converts a gain code to dB; code 0 is +12 dB.
func EQdB(code uint8) int { return EQFlat - int(code) }

// Fields lists the control-mode settings in mode order.
func (s Snapshot) Fields() []display.Field {
	out := make([]display.Field, numModes)
	for m := ModeVolume; m < numModes; m++ {
		out[m] = display.Field{
			Label:  m.String(),
			Value:  s.fieldValue(m),
			Active: m == s.Mode,
		}
	}
	return out
}

func (s Snapshot) fieldValue(m ControlMode) string {
	a := &s.Audio
	switch m {
	case ModeVolume:
		return conv.Uitoa(uint64(a.Volume))
	case ModeALC:
		return conv.Uitoa(uint64(a.ALC))
	case ModeRoute:
		if a.Route == nau8810.OutputMono {
			return "MON"
		}
		return "SPK"
	default:
		db := EQdB(a.EQ[m-ModeEQ1])
		if db > 0 {
			return "+" + conv.Uitoa(uint64(db))
		}
		return string(conv.AppendInt(nil, int64(db), 0, 0))
	}
}

// BatteryText renders the battery voltage as "V.vvV".
func (s Snapshot) BatteryText() string {
	if !s.BatteryOK {
		return "-.--V"
	}
	b := conv.AppendUint(nil, uint64(s.BatteryMV/1000), 0, 0)
	b = append(b, '.')
	b = conv.AppendUint(b, uint64(s.BatteryMV%1000/10), 2, '0')
	return string(append(b, 'V'))
}

// Frame lays the snapshot out for a display sink.
func (s Snapshot) Frame() display.Frame {
	f := display.Frame{
		Frequency: s.FrequencyText(),
		Marker:    s.MarkerColumn(),
		Source:    s.Source.String(),
		Fields:    s.Fields(),
		Battery:   s.BatteryText(),
	}
	if s.Unlocked {
		f.Status = "LOL"
	}
	return f
}

type sinkDisplay struct{ sink display.Sink }

func (d sinkDisplay) Render(s Snapshot) error {
	if d.sink == nil {
		return nil
	}
	return d.sink.Show(s.Frame())
}

func (d sinkDisplay) Fault(msg string) {
	if d.sink != nil {
		d.sink.Fault(msg)
	}
}

// DisplayFor adapts a frame sink to a panel Display.
func DisplayFor(sink display.Sink) Display { return sinkDisplay{sink: sink} }

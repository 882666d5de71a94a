package panel

import (
	"errors"
	"time"

	"rxpanel-go/drivers/nau8810"
	"rxpanel-go/drivers/si5351"
	"rxpanel-go/services/panel/internal/platform"
)

// Pins holds RP2040 GP numbers for every panel signal.
type Pins struct {
	TuneA  int `toml:"tune_a"`
	TuneB  int `toml:"tune_b"`
	TuneSW int `toml:"tune_sw"` // cycles the step digit
	CtrlA  int `toml:"ctrl_a"`
	CtrlB  int `toml:"ctrl_b"`
	CtrlSW int `toml:"ctrl_sw"` // advances the control mode
	Source int `toml:"source"`  // toggles the LO source

	ExtLOEnable   int `toml:"ext_lo_en"`
	PLLLOEnable   int `toml:"pll_lo_en"`
	SourceLED     int `toml:"source_led"`
	RFEnable      int `toml:"rf_en"`
	BatteryEnable int `toml:"bat_adc_en"`
}

// DefaultPins is the front-panel board wiring.
func DefaultPins() Pins {
	return Pins{
		TuneA: 10, TuneB: 11, TuneSW: 12,
		CtrlA: 13, CtrlB: 14, CtrlSW: 15,
		Source:        16,
		ExtLOEnable:   17,
		PLLLOEnable:   18,
		SourceLED:     19,
		RFEnable:      20,
		BatteryEnable: 21,
	}
}

// Config holds every tunable of the panel. Zero values are not defaults;
// start from DefaultConfig.
type Config struct {
	Pins Pins `toml:"pins"`

	// Local oscillator band and start frequency.
	LOMinHz uint64 `toml:"lo_min_hz"`
	LOMaxHz uint64 `toml:"lo_max_hz"`
	LOHz    uint64 `toml:"lo_hz"`
	// IFOffsetHz is added to the LO for display.
	IFOffsetHz int64 `toml:"if_offset_hz"`

	Source LOSource   `toml:"source"`
	Audio  AudioState `toml:"-"`

	// Encoder behaviour.
	Detent      int           `toml:"detent_transitions"`
	TuneReverse bool          `toml:"tune_reverse"`
	CtrlReverse bool          `toml:"ctrl_reverse"`
	Debounce    time.Duration `toml:"debounce"`

	// RefreshHz is the periodic redraw rate; 0 disables the tick.
	RefreshHz    uint32        `toml:"refresh_hz"`
	PollInterval time.Duration `toml:"poll_interval"`

	// Codec.
	CodecAddr uint16 `toml:"codec_addr"`
	MCLKHz    uint32 `toml:"mclk_hz"`

	// Synthesizer.
	SynthAddr     uint16       `toml:"synth_addr"`
	XtalHz        uint32       `toml:"xtal_hz"`
	Drive         si5351.Drive `toml:"drive"`
	CorrectionPPB int32        `toml:"correction_ppb"`

	Battery platform.BatteryConfig `toml:"battery"`
}

// DefaultConfig returns the cold-start configuration: LO at 87.3 MHz for a
// 98.0 MHz display with a 10.7 MHz IF.
func DefaultConfig() Config {
	return Config{
		Pins:          DefaultPins(),
		LOMinHz:       si5351.MinFrequency,
		LOMaxHz:       si5351.MaxFrequency,
		LOHz:          87_300_000,
		IFOffsetHz:    10_700_000,
		Source:        SourceSynth,
		Audio:         DefaultAudio(),
		Detent:        4,
		Debounce:      10 * time.Millisecond,
		RefreshHz:     10,
		PollInterval:  2 * time.Millisecond,
		CodecAddr:     nau8810.AddressDefault,
		MCLKHz:        6_250_000,
		SynthAddr:     si5351.AddressDefault,
		XtalHz:        25_000_000,
		Drive:         si5351.Drive8mA,
		CorrectionPPB: 0,
		Battery:       platform.DefaultBatteryConfig(),
	}
}

// Validate checks the fields the control loop relies on.
func (c Config) Validate() error {
	if c.LOMinHz == 0 || c.LOMinHz >= c.LOMaxHz {
		return errors.New("lo band: lo_min_hz must be non-zero and below lo_max_hz")
	}
	if c.LOMinHz < si5351.MinFrequency || c.LOMaxHz > si5351.MaxFrequency {
		return errors.New("lo band outside the synthesizer range")
	}
	if c.LOHz < c.LOMinHz || c.LOHz > c.LOMaxHz {
		return errors.New("lo_hz outside the lo band")
	}
	if c.Source > SourceExternal {
		return errors.New("source must be 0 (synth) or 1 (external)")
	}
	if c.Detent <= 0 {
		return errors.New("detent_transitions must be positive")
	}
	if c.Debounce < 0 {
		return errors.New("debounce must not be negative")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	if c.Drive > si5351.Drive8mA {
		return errors.New("drive must be 0..3")
	}
	if _, err := nau8810.ComputePLL(c.MCLKHz); err != nil {
		return err
	}
	p := c.Pins
	seen := map[int]bool{}
	for _, n := range []int{
		p.TuneA, p.TuneB, p.TuneSW, p.CtrlA, p.CtrlB, p.CtrlSW, p.Source,
		p.ExtLOEnable, p.PLLLOEnable, p.SourceLED, p.RFEnable, p.BatteryEnable,
	} {
		if seen[n] {
			return errors.New("pins: GP number assigned twice")
		}
		seen[n] = true
	}
	return nil
}

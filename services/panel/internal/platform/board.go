// Package platform wires the panel to a concrete board: RP2040 peripherals
// on hardware, simulated devices and fake pins on the host.
package platform

import (
	"time"

	"rxpanel-go/errcode"
	"rxpanel-go/services/panel/internal/display"
	"rxpanel-go/services/panel/internal/halcore"
	"rxpanel-go/x/mathx"
	"rxpanel-go/x/timex"
)

// Board is everything the panel needs from the hardware.
type Board struct {
	Name       string
	I2C        halcore.I2C
	Pins       halcore.PinFactory
	Sink       display.Sink
	BatteryADC halcore.ADC
}

// Options selects board-level parameters.
type Options struct {
	// MCLKHz is the codec master clock generated on the MCLK pin.
	MCLKHz uint32
	// ConsoleBaud for the diagnostic UART. Default 115200.
	ConsoleBaud uint32
}

// ---- battery ----

// BatteryConfig describes the switched divider in front of the ADC.
type BatteryConfig struct {
	// Settle is the bounded delay between enabling the divider and sampling.
	Settle time.Duration `toml:"settle"`
	// RefMilliVolts is the ADC full-scale voltage.
	RefMilliVolts uint32 `toml:"ref_mv"`
	// DividerNum/DividerDen scale the ADC pin voltage back to the battery.
	DividerNum uint32 `toml:"divider_num"`
	DividerDen uint32 `toml:"divider_den"`
}

func DefaultBatteryConfig() BatteryConfig {
	return BatteryConfig{
		Settle:        time.Millisecond,
		RefMilliVolts: 3300,
		DividerNum:    2,
		DividerDen:    1,
	}
}

// Battery samples the battery through an enable-gated divider.
type Battery struct {
	adc halcore.ADC
	en  halcore.GPIOPin
	cfg BatteryConfig
}

// NewBattery returns a Battery. en may be nil when the divider is always on.
func NewBattery(adc halcore.ADC, en halcore.GPIOPin, cfg BatteryConfig) *Battery {
	if cfg.RefMilliVolts == 0 {
		cfg.RefMilliVolts = 3300
	}
	if cfg.DividerNum == 0 || cfg.DividerDen == 0 {
		cfg.DividerNum, cfg.DividerDen = 1, 1
	}
	return &Battery{adc: adc, en: en, cfg: cfg}
}

// MilliVolts enables the divider, waits Settle, samples and disables it.
func (b *Battery) MilliVolts() (uint32, error) {
	if b.adc == nil {
		return 0, &errcode.E{C: errcode.NotPresent, Op: "battery.read", Msg: "no adc"}
	}
	if b.en != nil {
		b.en.Set(true)
		defer b.en.Set(false)
	}
	if b.cfg.Settle > 0 {
		timex.Spin(b.cfg.Settle)
	}
	raw := uint64(b.adc.Get())
	num := raw * uint64(b.cfg.RefMilliVolts) * uint64(b.cfg.DividerNum)
	return uint32(mathx.RoundDiv(num, 0xFFFF*uint64(b.cfg.DividerDen))), nil
}

// services/panel/internal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ssd1306"

	"rxpanel-go/errcode"
	"rxpanel-go/services/panel/internal/display"
	"rxpanel-go/services/panel/internal/halcore"
	"rxpanel-go/x/timex"
)

// Front-panel board wiring that is not exposed as configurable pins.
const (
	pinSDA     = machine.GP4
	pinSCL     = machine.GP5
	pinMCLK    = machine.GP22
	pinUARTTX  = machine.GP0
	pinUARTRX  = machine.GP1
	pinBattADC = machine.ADC0 // GP26

	screenAddr = 0x3C
)

// Open configures I2C0, the codec MCLK, the status screen, the diagnostic
// UART and the battery ADC.
func Open(opt Options) (*Board, error) {
	if opt.ConsoleBaud == 0 {
		opt.ConsoleBaud = 115200
	}

	uart := uartx.UART0
	_ = uart.Configure(uartx.UARTConfig{
		BaudRate: opt.ConsoleBaud,
		TX:       pinUARTTX,
		RX:       pinUARTRX,
	})
	console := display.NewConsole(uart)

	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       pinSDA,
		SCL:       pinSCL,
	}); err != nil {
		console.Fault("i2c0: " + err.Error())
		return nil, errcode.Wrap(errcode.BusError, "platform.i2c", err)
	}

	if err := startMCLK(opt.MCLKHz); err != nil {
		console.Fault("mclk: " + err.Error())
		return nil, err
	}

	screen := ssd1306.NewI2C(bus)
	screen.Configure(ssd1306.Config{
		Width:    128,
		Height:   64,
		Address:  screenAddr,
		VccState: ssd1306.SWITCHCAPVCC,
	})

	machine.InitADC()
	adc := machine.ADC{Pin: pinBattADC}
	adc.Configure(machine.ADCConfig{})

	return &Board{
		Name:       "rxpanel-rp2040",
		I2C:        bus,
		Pins:       rp2PinFactory{},
		Sink:       display.Tee{display.NewScreen(screen), console},
		BatteryADC: adc,
	}, nil
}

// ---- MCLK (PWM) ----

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// startMCLK drives a 50% square wave at hz on the MCLK pin.
func startMCLK(hz uint32) error {
	if hz == 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "platform.mclk", Msg: "zero frequency"}
	}
	pwm := pwmGroupBySlice(uint8(pinMCLK>>1) & 7)
	if err := pwm.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(hz)}); err != nil {
		return errcode.Wrap(errcode.Unsupported, "platform.mclk", err)
	}
	ch, err := pwm.Channel(pinMCLK)
	if err != nil {
		return errcode.Wrap(errcode.Unsupported, "platform.mclk", err)
	}
	pwm.Set(ch, pwm.Top()/2)
	return nil
}

// ---- GPIO implementation (includes IRQ support) ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// The RP2 port provides SetInterrupt with PinChange flags.
func (r *rp2Pin) SetIRQ(edge halcore.Edge, handler func()) error {
	return r.p.SetInterrupt(toPinChange(edge), func(machine.Pin) { handler() })
}

func (r *rp2Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e halcore.Edge) machine.PinChange {
	switch e {
	case halcore.EdgeRising:
		return machine.PinRising
	case halcore.EdgeFalling:
		return machine.PinFalling
	case halcore.EdgeBoth:
		return machine.PinToggle
	default:
		var zero machine.PinChange
		return zero
	}
}

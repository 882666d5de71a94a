// Package nau8810 provides a minimal TinyGo driver for the NAU8810 mono audio
// codec, as used on the receiver front panel (speaker/mono output, ALC,
// 5-band EQ and the fractional-N master clock PLL).
//
// Design notes (datasheet references):
// • I2C, 7-bit register address + 9-bit data packed into two bytes:
//   byte0 = (reg<<1) | D8, byte1 = D7..D0.
// • Reads use a repeated start; D8 arrives in bit 0 of the first byte.
// • Several registers pack unrelated controls together; the volume and
//   routing operations read-modify-write so co-located bits survive.
package nau8810

import (
	"rxpanel-go/errcode"

	"tinygo.org/x/drivers"
)

// Output selects the active analogue output path.
type Output uint8

const (
	OutputSpeaker Output = iota // BTL speaker, mono output muted
	OutputMono                  // mono/aux output, speaker muted
)

func (o Output) String() string {
	if o == OutputMono {
		return "mono"
	}
	return "speaker"
}

// Config controls power-up behaviour. All fields are optional.
type Config struct {
	// Address defaults to AddressDefault if zero.
	Address uint16
	// SkipPresenceCheck disables the read-back check in Configure.
	SkipPresenceCheck bool
}

// Device represents an NAU8810 on an I²C bus.
type Device struct {
	i2c  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [2]byte
}

// New creates a Device. The I2C bus must already be configured.
// This function only creates the Device object; it does not touch the device.
func New(i2c drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = AddressDefault
	}
	return &Device{i2c: i2c, addr: addr}
}

// Configure resets the codec, applies the power-up register set and confirms
// the device answers by reading back a register it has just written.
func (d *Device) Configure(cfg Config) error {
	if cfg.Address != 0 {
		d.addr = cfg.Address
	}
	if err := d.Reset(); err != nil {
		return err
	}
	if err := d.PowerUp(); err != nil {
		return err
	}
	if cfg.SkipPresenceCheck {
		return nil
	}
	got, err := d.ReadRegister(regPower1)
	if err != nil {
		return err
	}
	if got != power1Default {
		return &errcode.E{C: errcode.NotPresent, Op: "nau8810.configure", Msg: "power register read-back mismatch"}
	}
	return nil
}

// Reset issues a software reset; every register returns to its default.
func (d *Device) Reset() error {
	return d.WriteRegister(regReset, 0)
}

// Power-up register set: analogue bias, PLL, mic PGA + boost into the ADC,
// ADC->DAC loopback, DAC into both the speaker and mono mixers, ALC on.
const (
	power1Default   = pwr1PLLEN | pwr1ABIASEN | pwr1IOBUFEN | pwr1REFIMP
	power2Default   = pwr2BSTEN | pwr2PGAEN | pwr2ADCEN
	power3Default   = pwr3MOUTEN | pwr3NSPKEN | pwr3PSPKEN | pwr3MOUTMXEN | pwr3SPKMXEN | pwr3DACEN
	monoMixerActive = monoDACMOUT
)

var powerUpSequence = [...]struct {
	reg uint8
	val uint16
}{
	{regPower1, power1Default},
	{regPower2, power2Default},
	{regPower3, power3Default},
	{regCompanding, compADDAP},
	{regClock1, clk1CLKM},
	{regALC1, alc1ALCEN | alc1MaxGain},
	{regOutputCtrl, outTSEN},
	{regSpkMixer, mixDACSPK},
	{regMonoMixer, monoMixerActive | monoMOUTMXMT},
	{regDACCtrl, dacDACOS},
}

// PowerUp writes the power-up register set, stopping at the first failure.
func (d *Device) PowerUp() error {
	for _, s := range powerUpSequence {
		if err := d.WriteRegister(s.reg, s.val); err != nil {
			return err
		}
	}
	return nil
}

// WriteRegister writes a 9-bit value to a 7-bit register address.
func (d *Device) WriteRegister(reg uint8, val uint16) error {
	if reg > maxRegister {
		return &errcode.E{C: errcode.InvalidParams, Op: "nau8810.write", Msg: "register out of range"}
	}
	d.w[0] = reg<<1 | byte(val>>8)&0x01
	d.w[1] = byte(val)
	return errcode.Wrap(errcode.BusError, "nau8810.write", d.i2c.Tx(d.addr, d.w[:2], nil))
}

// ReadRegister reads a 9-bit register value.
func (d *Device) ReadRegister(reg uint8) (uint16, error) {
	if reg > maxRegister {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "nau8810.read", Msg: "register out of range"}
	}
	d.w[0] = reg << 1
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:2]); err != nil {
		return 0, errcode.Wrap(errcode.BusError, "nau8810.read", err)
	}
	return (uint16(d.r[0])<<8 | uint16(d.r[1])) & valueMask, nil
}

// modifyRegister is a private helper for the read-modify-write pattern.
// Bits in keep are preserved from the current value; set replaces the rest.
func (d *Device) modifyRegister(reg uint8, keep, set uint16) error {
	cur, err := d.ReadRegister(reg)
	if err != nil {
		return err
	}
	return d.WriteRegister(reg, cur&keep|set&^keep)
}

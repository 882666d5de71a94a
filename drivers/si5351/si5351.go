// Package si5351 provides a minimal TinyGo driver for the Si5351A clock
// generator, driving CLK0 from PLLA as a tunable local oscillator.
//
// Design notes (datasheet / AN619 references):
// • I2C, 400kHz, byte registers with address auto-increment on bursts.
// • CLK0 uses an even integer multisynth divider; tuning moves the PLLA
//   fractional feedback so the divider only changes across coarse steps.
// • A PLLA soft reset is needed only when the divider changes; it is
//   deferred to Update() so a frequency change is committed explicitly.
package si5351

import (
	"time"

	"rxpanel-go/errcode"

	"tinygo.org/x/drivers"
)

// Drive selects the CLK0 output drive strength.
type Drive uint8

const (
	Drive2mA Drive = iota
	Drive4mA
	Drive6mA
	Drive8mA
)

// CrystalLoad selects the internal crystal load capacitance.
type CrystalLoad uint8

const (
	Load6pF  CrystalLoad = 1
	Load8pF  CrystalLoad = 2
	Load10pF CrystalLoad = 3
)

// Config controls initialisation. All fields are optional.
type Config struct {
	// Address defaults to AddressDefault if zero.
	Address uint16
	// XtalHz defaults to 25 MHz.
	XtalHz uint32
	// Load defaults to 10 pF.
	Load CrystalLoad
	// CorrectionPPB is the reference error in parts per billion.
	CorrectionPPB int32
	// InitTimeout bounds the wait for SYS_INIT to clear. Default 100 ms.
	InitTimeout time.Duration
	// PollInterval is used between status polls. Default 1 ms.
	PollInterval time.Duration
}

// Status mirrors the device status register.
type Status struct {
	SysInit      bool
	LossOfLockA  bool
	LossOfLockB  bool
	LossOfSignal bool
	Revision     uint8
}

// Device wraps an I2C connection to an Si5351A.
type Device struct {
	i2c  drivers.I2C
	addr uint16

	xtalHz uint32
	ppb    int32

	freq         uint64
	msDiv        uint32
	pendingReset bool
	status       Status

	// Fixed buffers to avoid per-call heap allocations.
	w [9]byte
	r [1]byte
}

// New creates a Device. The I2C bus must already be configured.
// This function only creates the Device object; it does not touch the device.
func New(i2c drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = AddressDefault
	}
	return &Device{i2c: i2c, addr: addr, xtalHz: 25_000_000}
}

// Configure waits for the device to finish its power-on initialisation,
// then leaves every output disabled and powered down with the crystal load
// and reference correction applied.
func (d *Device) Configure(cfg Config) error {
	if cfg.Address != 0 {
		d.addr = cfg.Address
	}
	if cfg.XtalHz != 0 {
		d.xtalHz = cfg.XtalHz
	}
	if cfg.Load == 0 {
		cfg.Load = Load10pF
	}
	if cfg.InitTimeout <= 0 {
		cfg.InitTimeout = 100 * time.Millisecond
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Millisecond
	}
	d.ppb = cfg.CorrectionPPB

	deadline := time.Now().Add(cfg.InitTimeout)
	for {
		st, err := d.readStatus()
		if err != nil {
			return &errcode.E{C: errcode.NotPresent, Op: "si5351.configure", Msg: err.Error(), Err: err}
		}
		if !st.SysInit {
			break
		}
		if time.Now().After(deadline) {
			return &errcode.E{C: errcode.Timeout, Op: "si5351.configure", Msg: "SYS_INIT did not clear"}
		}
		time.Sleep(cfg.PollInterval)
	}

	if err := d.writeReg(regOutputEnable, 0xFF); err != nil {
		return err
	}
	if err := d.writeReg(regOEBPinMask, 0xFF); err != nil {
		return err
	}
	for i := 0; i < numOutputs; i++ {
		if err := d.writeReg(regCLK0Ctrl+byte(i), clkPowerDown); err != nil {
			return err
		}
	}
	if err := d.writeReg(regPLLInputSrc, 0x00); err != nil {
		return err
	}
	return d.writeReg(regXtalLoad, byte(cfg.Load)<<xtalLoadShift|xtalLoadReserved)
}

// Connected reports whether the device answers a status read.
func (d *Device) Connected() bool {
	_, err := d.readStatus()
	return err == nil
}

// SetFrequency programs CLK0. The change is glitch-free within one divider
// range; crossing ranges schedules a PLLA reset applied by Update.
func (d *Device) SetFrequency(hz uint64) error {
	p, err := PlanFrequency(hz, d.refHz())
	if err != nil {
		return err
	}
	pll := p.pllParams()
	if err := d.writeBurst(regPLLAParams, pll[:]); err != nil {
		return err
	}
	if p.MSDiv != d.msDiv {
		ms := p.msParams()
		if err := d.writeBurst(regMS0Params, ms[:]); err != nil {
			return err
		}
		if err := d.modifyReg(regCLK0Ctrl, clkPowerDown|clkDriveMask, clkMSInt|clkSrcMS); err != nil {
			return err
		}
		d.msDiv = p.MSDiv
		d.pendingReset = true
	}
	d.freq = hz
	return nil
}

// SetDriveStrength selects the CLK0 drive current.
func (d *Device) SetDriveStrength(level Drive) error {
	return d.modifyReg(regCLK0Ctrl, ^byte(clkDriveMask), byte(level)&clkDriveMask)
}

// SetOutputEnabled powers CLK0 up and enables it, or disables and powers it
// down.
func (d *Device) SetOutputEnabled(on bool) error {
	if on {
		if err := d.modifyReg(regCLK0Ctrl, ^byte(clkPowerDown), 0); err != nil {
			return err
		}
		return d.modifyReg(regOutputEnable, 0xFE, 0)
	}
	if err := d.modifyReg(regOutputEnable, 0xFE, 0x01); err != nil {
		return err
	}
	return d.modifyReg(regCLK0Ctrl, ^byte(clkPowerDown), clkPowerDown)
}

// ApplyCorrection sets the reference error in parts per billion and
// re-programs the current frequency, if any.
func (d *Device) ApplyCorrection(ppb int32) error {
	d.ppb = ppb
	if d.freq == 0 {
		return nil
	}
	d.msDiv = 0 // force a full re-plan
	return d.SetFrequency(d.freq)
}

// Update commits pending changes (PLLA reset after a divider change) and
// refreshes the cached status.
func (d *Device) Update() error {
	if d.pendingReset {
		if err := d.writeReg(regPLLReset, pllResetA); err != nil {
			return err
		}
		d.pendingReset = false
	}
	st, err := d.readStatus()
	if err != nil {
		return err
	}
	d.status = st
	return nil
}

// Status returns the status cached by the last Update.
func (d *Device) Status() Status { return d.status }

// Frequency returns the last programmed CLK0 frequency.
func (d *Device) Frequency() uint64 { return d.freq }

func (d *Device) refHz() uint64 {
	x := int64(d.xtalHz)
	return uint64(x + x*int64(d.ppb)/1_000_000_000)
}

// ---- register access ----

func (d *Device) readStatus() (Status, error) {
	v, err := d.readReg(regDeviceStatus)
	if err != nil {
		return Status{}, err
	}
	return Status{
		SysInit:      v&statusSysInit != 0,
		LossOfLockA:  v&statusLOLA != 0,
		LossOfLockB:  v&statusLOLB != 0,
		LossOfSignal: v&statusLOS != 0,
		Revision:     v & statusRevMask,
	}, nil
}

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, errcode.Wrap(errcode.BusError, "si5351.read", err)
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return errcode.Wrap(errcode.BusError, "si5351.write", d.i2c.Tx(d.addr, d.w[:2], nil))
}

func (d *Device) writeBurst(reg byte, vals []byte) error {
	d.w[0] = reg
	n := copy(d.w[1:], vals)
	return errcode.Wrap(errcode.BusError, "si5351.write", d.i2c.Tx(d.addr, d.w[:1+n], nil))
}

// modifyReg is a private helper for the read-modify-write pattern.
// Bits in keep are preserved from the current value; set replaces the rest.
func (d *Device) modifyReg(reg, keep, set byte) error {
	cur, err := d.readReg(reg)
	if err != nil {
		return err
	}
	return d.writeReg(reg, cur&keep|set&^keep)
}

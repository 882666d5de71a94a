package si5351

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"rxpanel-go/errcode"
	"rxpanel-go/x/i2csim"
)

func newSim(t *testing.T) (*Device, *i2csim.Si5351, *i2csim.Bus) {
	t.Helper()
	bus := i2csim.NewBus()
	chip := i2csim.NewSi5351()
	bus.Attach(AddressDefault, chip)
	d := New(bus, 0)
	if err := d.Configure(Config{PollInterval: time.Microsecond}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return d, chip, bus
}

func TestConfigureLeavesOutputsOff(t *testing.T) {
	_, chip, _ := newSim(t)
	if got := chip.Reg(regOutputEnable); got != 0xFF {
		t.Fatalf("output enable = %#x, want 0xff", got)
	}
	for i := 0; i < numOutputs; i++ {
		if got := chip.Reg(regCLK0Ctrl + uint8(i)); got != clkPowerDown {
			t.Fatalf("CLK%d ctrl = %#x, want powered down", i, got)
		}
	}
	if got := chip.Reg(regXtalLoad); got != 0xD2 {
		t.Fatalf("xtal load = %#x, want 0xd2 (10 pF)", got)
	}
}

func TestConfigureWaitsForSysInit(t *testing.T) {
	bus := i2csim.NewBus()
	chip := i2csim.NewSi5351()
	chip.InitReads = 3
	bus.Attach(AddressDefault, chip)
	d := New(bus, 0)
	if err := d.Configure(Config{PollInterval: time.Microsecond}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if chip.InitReads != 0 {
		t.Fatalf("expected all init reads consumed, %d left", chip.InitReads)
	}
}

func TestConfigureTimeout(t *testing.T) {
	bus := i2csim.NewBus()
	chip := i2csim.NewSi5351()
	chip.Status = statusSysInit
	bus.Attach(AddressDefault, chip)
	d := New(bus, 0)
	err := d.Configure(Config{InitTimeout: 5 * time.Millisecond, PollInterval: time.Millisecond})
	if errcode.Of(err) != errcode.Timeout {
		t.Fatalf("want timeout, got %v", err)
	}
}

func TestConfigureAbsent(t *testing.T) {
	d := New(i2csim.NewBus(), 0)
	err := d.Configure(Config{})
	if errcode.Of(err) != errcode.NotPresent {
		t.Fatalf("want not_present, got %v", err)
	}
	if d.Connected() {
		t.Fatal("Connected should be false")
	}
}

func TestSetFrequencyRegisters(t *testing.T) {
	d, chip, _ := newSim(t)
	if err := d.SetFrequency(87_300_000); err != nil {
		t.Fatalf("SetFrequency: %v", err)
	}
	if diff := cmp.Diff([]byte{255, 255, 0, 15, 117, 252, 40, 245}, chip.Regs(regPLLAParams, 8)); diff != "" {
		t.Fatalf("PLLA params (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0, 1, 0, 3, 0, 0, 0, 0}, chip.Regs(regMS0Params, 8)); diff != "" {
		t.Fatalf("MS0 params (-want +got):\n%s", diff)
	}
	if got := chip.Reg(regCLK0Ctrl); got != clkPowerDown|clkMSInt|clkSrcMS {
		t.Fatalf("CLK0 ctrl = %#x", got)
	}
	if chip.Resets() != 0 {
		t.Fatal("reset must wait for Update")
	}
	if err := d.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if chip.Resets() != 1 {
		t.Fatalf("want one PLL reset, got %d", chip.Resets())
	}
}

func TestSetFrequencySameDividerSkipsReset(t *testing.T) {
	d, chip, _ := newSim(t)
	for _, hz := range []uint64{87_300_000, 87_400_000, 87_310_000} {
		if err := d.SetFrequency(hz); err != nil {
			t.Fatalf("SetFrequency(%d): %v", hz, err)
		}
		if err := d.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if chip.Resets() != 1 {
		t.Fatalf("divider unchanged after the first tune; want 1 reset, got %d", chip.Resets())
	}
	if d.Frequency() != 87_310_000 {
		t.Fatalf("Frequency = %d", d.Frequency())
	}
}

func TestSetFrequencyOutOfRange(t *testing.T) {
	d, _, _ := newSim(t)
	for _, hz := range []uint64{0, MinFrequency - 1, MaxFrequency + 1} {
		if err := d.SetFrequency(hz); errcode.Of(err) != errcode.FreqOutOfRange {
			t.Fatalf("%d Hz: want freq_out_of_range, got %v", hz, err)
		}
	}
}

func TestOutputEnableAndDrive(t *testing.T) {
	d, chip, _ := newSim(t)
	if err := d.SetDriveStrength(Drive8mA); err != nil {
		t.Fatalf("SetDriveStrength: %v", err)
	}
	if err := d.SetOutputEnabled(true); err != nil {
		t.Fatalf("SetOutputEnabled: %v", err)
	}
	if got := chip.Reg(regOutputEnable) & 0x01; got != 0 {
		t.Fatal("CLK0 should be enabled (bit clear)")
	}
	if got := chip.Reg(regCLK0Ctrl); got&clkPowerDown != 0 || got&clkDriveMask != byte(Drive8mA) {
		t.Fatalf("CLK0 ctrl = %#x", got)
	}
	if got := chip.Reg(regOutputEnable) & 0xFE; got != 0xFE {
		t.Fatal("other outputs must stay disabled")
	}
	if err := d.SetOutputEnabled(false); err != nil {
		t.Fatalf("SetOutputEnabled(false): %v", err)
	}
	if chip.Reg(regOutputEnable)&0x01 == 0 || chip.Reg(regCLK0Ctrl)&clkPowerDown == 0 {
		t.Fatal("CLK0 should be disabled and powered down")
	}
	if got := chip.Reg(regCLK0Ctrl) & clkDriveMask; got != byte(Drive8mA) {
		t.Fatalf("drive strength lost: %d", got)
	}
}

func TestUpdateReadsStatus(t *testing.T) {
	d, chip, _ := newSim(t)
	chip.Status = statusLOLA
	if err := d.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !d.Status().LossOfLockA {
		t.Fatal("expected LOL_A in cached status")
	}
}

func TestBusErrorsAreWrapped(t *testing.T) {
	d, _, bus := newSim(t)
	bus.FailNext(1)
	err := d.SetFrequency(100_000_000)
	if !errors.Is(err, errcode.BusError) {
		t.Fatalf("want bus_error, got %v", err)
	}
}

func TestApplyCorrectionReplans(t *testing.T) {
	d, chip, _ := newSim(t)
	if err := d.SetFrequency(87_300_000); err != nil {
		t.Fatalf("SetFrequency: %v", err)
	}
	before := chip.Regs(regPLLAParams, 8)
	if err := d.ApplyCorrection(20_000); err != nil {
		t.Fatalf("ApplyCorrection: %v", err)
	}
	if cmp.Equal(before, chip.Regs(regPLLAParams, 8)) {
		t.Fatal("PLL parameters should change with the reference correction")
	}
}

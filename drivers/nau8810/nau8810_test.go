package nau8810

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rxpanel-go/errcode"
	"rxpanel-go/x/i2csim"
)

func newSim(t *testing.T) (*Device, *i2csim.NAU8810, *i2csim.Bus) {
	t.Helper()
	bus := i2csim.NewBus()
	codec := i2csim.NewNAU8810()
	bus.Attach(AddressDefault, codec)
	return New(bus, 0), codec, bus
}

func TestWriteRegisterPacking(t *testing.T) {
	d, _, bus := newSim(t)
	if err := d.WriteRegister(0x36, 0x1A5); err != nil {
		t.Fatalf("WriteRegister: %v", err)
	}
	tr := bus.Trace()
	if len(tr) != 1 {
		t.Fatalf("want 1 transaction, got %d", len(tr))
	}
	want := []byte{0x36<<1 | 1, 0xA5}
	if diff := cmp.Diff(want, tr[0].W); diff != "" {
		t.Fatalf("bytes mismatch (-want +got):\n%s", diff)
	}
	if tr[0].Addr != AddressDefault || tr[0].Rn != 0 {
		t.Fatalf("unexpected tx: %+v", tr[0])
	}
}

func TestReadRegisterNineBits(t *testing.T) {
	d, codec, _ := newSim(t)
	codec.SetReg(0x21, 0x1F3)
	got, err := d.ReadRegister(0x21)
	if err != nil {
		t.Fatalf("ReadRegister: %v", err)
	}
	if got != 0x1F3 {
		t.Fatalf("got %#x, want 0x1f3", got)
	}
}

func TestRegisterOutOfRange(t *testing.T) {
	d, _, _ := newSim(t)
	if err := d.WriteRegister(0x40, 0); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("want invalid_params, got %v", err)
	}
}

func TestConfigureWritesPowerUpChain(t *testing.T) {
	d, codec, _ := newSim(t)
	if err := d.Configure(Config{}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	w := codec.Writes()
	if len(w) != 1+len(powerUpSequence) {
		t.Fatalf("want %d writes, got %d", 1+len(powerUpSequence), len(w))
	}
	if w[0] != (i2csim.RegWrite{Reg: regReset, Val: 0}) {
		t.Fatalf("first write must be reset, got %+v", w[0])
	}
	if codec.Reg(regPower1) != power1Default {
		t.Fatalf("power1 = %#x", codec.Reg(regPower1))
	}
}

func TestConfigureShortCircuitsOnFailure(t *testing.T) {
	d, codec, bus := newSim(t)
	bus.FailAddr(AddressDefault, true)
	err := d.Configure(Config{})
	if !errors.Is(err, errcode.BusError) {
		t.Fatalf("want bus_error, got %v", err)
	}
	if n := len(codec.Writes()); n != 0 {
		t.Fatalf("no writes should land, got %d", n)
	}
	if n := len(bus.Trace()); n != 1 {
		t.Fatalf("chain should stop after the first failure, saw %d transactions", n)
	}
}

func TestConfigureAbsentDevice(t *testing.T) {
	bus := i2csim.NewBus()
	d := New(bus, 0)
	if err := d.Configure(Config{}); err == nil {
		t.Fatal("expected failure with nothing on the bus")
	}
}

func TestSpeakerVolumePreservesControlBits(t *testing.T) {
	d, codec, _ := newSim(t)
	codec.SetReg(regSpkVolume, spkZC|spkMute|0x05)
	if err := d.SetSpeakerVolume(40); err != nil {
		t.Fatalf("SetSpeakerVolume: %v", err)
	}
	if got, want := codec.Reg(regSpkVolume), uint16(spkZC|spkMute|40); got != want {
		t.Fatalf("R0x36 = %#x, want %#x", got, want)
	}
	if err := d.SetSpeakerVolume(200); err != nil {
		t.Fatalf("SetSpeakerVolume: %v", err)
	}
	if got := codec.Reg(regSpkVolume) & spkGainMask; got != MaxVolume {
		t.Fatalf("volume should saturate at %d, got %d", MaxVolume, got)
	}
}

func TestSetOutputPreservesVolume(t *testing.T) {
	d, codec, _ := newSim(t)
	codec.SetReg(regSpkVolume, 0x2A)

	if err := d.SetOutput(OutputMono); err != nil {
		t.Fatalf("SetOutput(mono): %v", err)
	}
	if got := codec.Reg(regSpkVolume); got != spkMute|0x2A {
		t.Fatalf("speaker should be muted with volume kept, got %#x", got)
	}
	if got := codec.Reg(regMonoMixer); got&monoMOUTMXMT != 0 {
		t.Fatalf("mono should be unmuted, got %#x", got)
	}

	if err := d.SetOutput(OutputSpeaker); err != nil {
		t.Fatalf("SetOutput(speaker): %v", err)
	}
	if got := codec.Reg(regSpkVolume); got != 0x2A {
		t.Fatalf("speaker should be unmuted with volume kept, got %#x", got)
	}
	if got := codec.Reg(regMonoMixer); got&monoMOUTMXMT == 0 {
		t.Fatalf("mono should be muted, got %#x", got)
	}
}

func TestEQAndALC(t *testing.T) {
	d, codec, _ := newSim(t)
	for band := uint8(1); band <= Bands; band++ {
		if err := d.SetEQGain(band, 0x30); err != nil {
			t.Fatalf("SetEQGain(%d): %v", band, err)
		}
		got := codec.Reg(regEQ1 + band - 1)
		if got&eqGainMask != MaxEQGain {
			t.Fatalf("band %d gain should saturate at 0x18, got %#x", band, got)
		}
		if (got&eqEQM != 0) != (band == 1) {
			t.Fatalf("band %d: EQM bit = %v", band, got&eqEQM != 0)
		}
	}
	if err := d.SetALCGain(99); err != nil {
		t.Fatalf("SetALCGain: %v", err)
	}
	if got := codec.Reg(regALC2); got != MaxALCGain {
		t.Fatalf("ALC should saturate at 15, got %d", got)
	}
}

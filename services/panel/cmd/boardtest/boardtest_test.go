package main

import (
	"bytes"
	"strings"
	"testing"

	"rxpanel-go/drivers/si5351"
	"rxpanel-go/services/panel"
	"rxpanel-go/services/panel/internal/platform"
)

func TestChecksPassOnSimBoard(t *testing.T) {
	sim := platform.NewSim(nil)
	cfg := panel.DefaultConfig()
	var buf bytes.Buffer
	o := &out{w: &buf}

	if !runChecks(cfg, sim.Board(), timing{}, o) {
		t.Fatalf("checks failed:\n%s", buf.String())
	}
	for _, want := range []string{"codec.pll N=7", "synth.lock 87300000 Hz", "battery 3897 mV", "lo swapped to external"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
	for _, r := range railSeq(cfg.Pins) {
		if sim.Pins.Pin(r.pin).Get() {
			t.Errorf("rail %s left on", r.name)
		}
	}
	if sim.Synth.Reg(3)&0x01 == 0 {
		t.Error("synth CLK0 left enabled")
	}
}

func TestChecksFailWithoutSynth(t *testing.T) {
	sim := platform.NewSim(nil)
	sim.Bus.Detach(si5351.AddressDefault)
	var buf bytes.Buffer
	o := &out{w: &buf}

	if runChecks(panel.DefaultConfig(), sim.Board(), timing{}, o) {
		t.Fatal("expected a failing verdict")
	}
	if !strings.Contains(buf.String(), "[FAIL] synth.configure") {
		t.Fatalf("output:\n%s", buf.String())
	}
}

func TestChecksFlagFlatBattery(t *testing.T) {
	sim := platform.NewSim(nil)
	sim.ADC.Set(20000) // ~2 V
	var buf bytes.Buffer
	o := &out{w: &buf}

	if runChecks(panel.DefaultConfig(), sim.Board(), timing{}, o) {
		t.Fatal("flat battery must fail")
	}
	if !strings.Contains(buf.String(), "[FAIL] battery") {
		t.Fatalf("output:\n%s", buf.String())
	}
}

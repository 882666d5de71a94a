package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"

	"rxpanel-go/services/panel"
	"rxpanel-go/services/panel/internal/display"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigOverlay(t *testing.T) {
	p := writeFile(t, "panel.toml", `
lo_hz = 90000000
debounce = "5ms"
tune_reverse = true

[pins]
tune_a = 2
`)
	cfg, err := loadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	def := panel.DefaultConfig()
	if cfg.LOHz != 90_000_000 || cfg.Debounce != 5*time.Millisecond || !cfg.TuneReverse {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	if cfg.Pins.TuneA != 2 || cfg.Pins.TuneB != def.Pins.TuneB {
		t.Fatalf("pins = %+v", cfg.Pins)
	}
	if cfg.RefreshHz != def.RefreshHz || cfg.MCLKHz != def.MCLKHz || cfg.Audio != def.Audio {
		t.Fatal("unset keys lost their defaults")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	p := writeFile(t, "bad.toml", "lo_hz = 500000000\n")
	if _, err := loadConfig(p); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestLoadScript(t *testing.T) {
	p := writeFile(t, "script.toml", `
linger = "50ms"

[[step]]
do = "tune"
n = -3

[[step]]
do = "wait"
for = "20ms"
`)
	s, err := loadScript(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Steps) != 2 || s.Steps[0].N != -3 || s.Steps[1].For != 20*time.Millisecond || s.Linger != 50*time.Millisecond {
		t.Fatalf("script = %+v", s)
	}

	p = writeFile(t, "bad.toml", "[[step]]\ndo = \"jump\"\n")
	if _, err := loadScript(p); !errors.Is(err, errUnknownStep) {
		t.Fatalf("err = %v", err)
	}
}

func TestViewRender(t *testing.T) {
	v := newView(io.Discard)
	out := v.render(display.Frame{
		Frequency: " 98.000 MHz",
		Marker:    2,
		Source:    "SYN",
		Fields: []display.Field{
			{Label: "VOL", Value: "31", Active: true},
			{Label: "ALC", Value: "7"},
		},
		Battery: "3.89V",
		Status:  "LOL",
	})
	for _, want := range []string{"98.000 MHz", "SYN", "^", "VOL", "31", "ALC", "BAT 3.89V", "LOL"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestSimulateDefaultScript(t *testing.T) {
	cfg := panel.DefaultConfig()
	log := logrus.New()
	log.Out = io.Discard

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	last, err := simulate(ctx, cfg, defaultScript(), display.NewConsole(io.Discard), log)
	if err != nil {
		t.Fatal(err)
	}
	if last.LOHz != 90_100_000 {
		t.Fatalf("LO = %d", last.LOHz)
	}
	if last.Source != panel.SourceSynth || last.Mode != panel.ModeEQ1 {
		t.Fatalf("source %v mode %v", last.Source, last.Mode)
	}
	if last.Audio.EQ[0] != panel.EQFlat-4 {
		t.Fatalf("EQ1 = %d", last.Audio.EQ[0])
	}
	if !last.BatteryOK || last.BatteryMV != 3323 {
		t.Fatalf("battery = %d ok=%v", last.BatteryMV, last.BatteryOK)
	}
}

func TestSimulateStartupFailure(t *testing.T) {
	cfg := panel.DefaultConfig()
	cfg.SynthAddr = 0x61 // nothing attached
	log := logrus.New()
	log.Out = io.Discard

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := simulate(ctx, cfg, defaultScript(), display.NewConsole(io.Discard), log); err == nil {
		t.Fatal("expected startup failure")
	}
}

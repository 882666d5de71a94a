package main

import (
	"fmt"
	"io"
	"time"

	"rxpanel-go/drivers/nau8810"
	"rxpanel-go/drivers/si5351"
	"rxpanel-go/services/panel"
	"rxpanel-go/services/panel/internal/halcore"
	"rxpanel-go/services/panel/internal/platform"
)

// Battery window accepted as plausible for the single-cell pack.
const (
	batteryMinMV = 3000
	batteryMaxMV = 4300
)

type timing struct {
	stepDelay time.Duration
	dwell     time.Duration
}

type result struct {
	name string
	pass bool
	info string
}

// out writes every line to w and keeps the results for the verdict.
type out struct {
	w       io.Writer
	results []result
}

func (o *out) println(a ...any) { fmt.Fprint(o.w, fmt.Sprintln(a...)) }

func (o *out) check(name string, err error, info string) bool {
	r := result{name: name, pass: err == nil, info: info}
	if err != nil {
		r.info = err.Error()
	}
	o.results = append(o.results, r)
	tag := "[PASS]"
	if !r.pass {
		tag = "[FAIL]"
	}
	o.println(tag, name, r.info)
	return r.pass
}

func (o *out) passed() bool {
	for _, r := range o.results {
		if !r.pass {
			return false
		}
	}
	return len(o.results) > 0
}

// rail is one switched output in sequencing order.
type rail struct {
	name string
	pin  int
}

func railSeq(p panel.Pins) []rail {
	return []rail{
		{"rf", p.RFEnable},
		{"pll-lo", p.PLLLOEnable},
		{"source-led", p.SourceLED},
		{"ext-lo", p.ExtLOEnable},
	}
}

// runChecks probes both I²C devices, reads the battery and sequences the
// rails up and down, verifying each pin reads back what was driven. The two
// LO enables are never on together.
func runChecks(cfg panel.Config, board *platform.Board, tm timing, o *out) bool {
	codec := nau8810.New(board.I2C, cfg.CodecAddr)
	if o.check("codec.configure", codec.Configure(nau8810.Config{Address: cfg.CodecAddr}), "present") {
		n, err := codec.SetPLL(cfg.MCLKHz)
		o.check("codec.pll", err, fmt.Sprintf("N=%d from %d Hz", n, cfg.MCLKHz))
	}

	synth := si5351.New(board.I2C, cfg.SynthAddr)
	if o.check("synth.configure", synth.Configure(si5351.Config{Address: cfg.SynthAddr, XtalHz: cfg.XtalHz}), "present") {
		err := synth.SetFrequency(cfg.LOHz)
		if err == nil {
			err = synth.Update()
		}
		if err == nil && synth.Status().LossOfLockA {
			err = fmt.Errorf("PLLA unlocked at %d Hz", cfg.LOHz)
		}
		o.check("synth.lock", err, fmt.Sprintf("%d Hz", cfg.LOHz))
		_ = synth.SetOutputEnabled(false)
	}

	var en halcore.GPIOPin
	if p, ok := board.Pins.ByNumber(cfg.Pins.BatteryEnable); ok && p.ConfigureOutput(false) == nil {
		en = p
	}
	mv, err := platform.NewBattery(board.BatteryADC, en, cfg.Battery).MilliVolts()
	if err == nil && (mv < batteryMinMV || mv > batteryMaxMV) {
		err = fmt.Errorf("%d mV outside %d..%d", mv, batteryMinMV, batteryMaxMV)
	}
	o.check("battery", err, fmt.Sprintf("%d mV", mv))

	seq := railSeq(cfg.Pins)
	pins := make([]halcore.GPIOPin, len(seq))
	for i, r := range seq {
		p, ok := board.Pins.ByNumber(r.pin)
		if !ok || p.ConfigureOutput(false) != nil {
			o.check("rail "+r.name, fmt.Errorf("GP%d unavailable", r.pin), "")
			return false
		}
		pins[i] = p
	}
	setRail := func(i int, on bool) {
		pins[i].Set(on)
		if pins[i].Get() != on {
			o.check("rail "+seq[i].name, fmt.Errorf("GP%d reads %v after set %v", seq[i].pin, !on, on), "")
		}
		time.Sleep(tm.stepDelay)
	}

	// RF and the synthesizer LO path up, then swap to the external LO
	// break-before-make.
	for i := 0; i < 3; i++ {
		setRail(i, true)
		o.println("rail up:", seq[i].name)
	}
	time.Sleep(tm.dwell)
	setRail(1, false)
	setRail(3, true)
	o.println("lo swapped to external")
	time.Sleep(tm.dwell)
	for i := len(seq) - 1; i >= 0; i-- {
		setRail(i, false)
		o.println("rail down:", seq[i].name)
	}
	o.check("rails", nil, "sequenced")
	return o.passed()
}

// ledFlashPassFail blinks the source LED: two short flashes for a pass, one
// long for a fail.
func ledFlashPassFail(led halcore.GPIOPin, pass bool) {
	if pass {
		for i := 0; i < 2; i++ {
			led.Set(true)
			time.Sleep(120 * time.Millisecond)
			led.Set(false)
			time.Sleep(200 * time.Millisecond)
		}
		return
	}
	led.Set(true)
	time.Sleep(400 * time.Millisecond)
	led.Set(false)
	time.Sleep(200 * time.Millisecond)
}

package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"rxpanel-go/bus"
	"rxpanel-go/services/panel"
	"rxpanel-go/services/panel/internal/platform"
	"rxpanel-go/x/conv"
)

// Step is one operator action.
//
//	do = "tune" | "ctrl"       turn the shaft N detents (negative is ccw)
//	do = "digit" | "mode" | "source"   press the button N times (default 1)
//	do = "battery"             set the raw ADC reading to N
//	do = "wait"                idle for For
type Step struct {
	Do  string        `toml:"do"`
	N   int           `toml:"n"`
	For time.Duration `toml:"for"`
}

type Script struct {
	Steps []Step `toml:"step"`
	// Linger keeps the panel running after the last step.
	Linger time.Duration `toml:"linger"`
}

var errUnknownStep = errors.New("unknown step")

func defaultScript() Script {
	return Script{
		Steps: []Step{
			{Do: "wait", For: 200 * time.Millisecond},
			{Do: "tune", N: 3},
			{Do: "digit"},
			{Do: "tune", N: -2},
			{Do: "mode", N: 3},
			{Do: "ctrl", N: -4},
			{Do: "source"},
			{Do: "wait", For: 300 * time.Millisecond},
			{Do: "source"},
			{Do: "battery", N: 33000},
		},
		Linger: 300 * time.Millisecond,
	}
}

func loadScript(path string) (Script, error) {
	if path == "" {
		return defaultScript(), nil
	}
	var s Script
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, err
	}
	return s, s.validate()
}

func (s Script) validate() error {
	for i, st := range s.Steps {
		switch strings.ToLower(st.Do) {
		case "tune", "ctrl", "digit", "mode", "source", "battery", "wait":
		default:
			return &stepError{index: i, step: st, err: errUnknownStep}
		}
	}
	return nil
}

type stepError struct {
	index int
	step  Step
	err   error
}

func (e *stepError) Error() string {
	return "step " + conv.Uitoa(uint64(e.index)) + " (" + e.step.Do + "): " + e.err.Error()
}

func (e *stepError) Unwrap() error { return e.err }

// operator drives the simulated front panel. Button edges are held for
// twice the debounce interval so every press is accepted.
type operator struct {
	tune, ctrl          platform.Encoder
	digit, mode, source platform.Button
	adc                 *platform.FakeADC
	hold                time.Duration
}

func newOperator(sim *platform.Sim, cfg panel.Config) *operator {
	p := cfg.Pins
	hold := 2 * cfg.Debounce
	if hold < time.Millisecond {
		hold = time.Millisecond
	}
	return &operator{
		tune:   platform.Encoder{A: sim.Pins.Pin(p.TuneA), B: sim.Pins.Pin(p.TuneB)},
		ctrl:   platform.Encoder{A: sim.Pins.Pin(p.CtrlA), B: sim.Pins.Pin(p.CtrlB)},
		digit:  platform.Button{Pin: sim.Pins.Pin(p.TuneSW)},
		mode:   platform.Button{Pin: sim.Pins.Pin(p.CtrlSW)},
		source: platform.Button{Pin: sim.Pins.Pin(p.Source)},
		adc:    sim.ADC,
		hold:   hold,
	}
}

// Play waits for the panel to report running, then runs every step.
func (o *operator) Play(ctx context.Context, conn *bus.Connection, s Script) error {
	if err := waitRunning(ctx, conn); err != nil {
		return err
	}
	for _, st := range s.Steps {
		if err := o.do(ctx, st); err != nil {
			return err
		}
	}
	return sleep(ctx, s.Linger)
}

func (o *operator) do(ctx context.Context, st Step) error {
	switch strings.ToLower(st.Do) {
	case "tune":
		o.tune.Turn(st.N)
	case "ctrl":
		o.ctrl.Turn(st.N)
	case "digit":
		return o.press(ctx, o.digit, st.N)
	case "mode":
		return o.press(ctx, o.mode, st.N)
	case "source":
		return o.press(ctx, o.source, st.N)
	case "battery":
		o.adc.Set(uint16(st.N))
	case "wait":
		return sleep(ctx, st.For)
	default:
		return errUnknownStep
	}
	return sleep(ctx, o.hold)
}

func (o *operator) press(ctx context.Context, b platform.Button, n int) error {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		b.Press()
		if err := sleep(ctx, o.hold); err != nil {
			return err
		}
		b.Release()
		if err := sleep(ctx, o.hold); err != nil {
			return err
		}
	}
	return nil
}

func waitRunning(ctx context.Context, conn *bus.Connection) error {
	sub := conn.Subscribe(panel.TopicStatus)
	defer sub.Unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-sub.Channel():
			if !ok {
				return errors.New("status subscription closed")
			}
			ev, _ := m.Payload.(panel.StatusEvent)
			switch ev.State {
			case panel.StatusRunning:
				return nil
			case panel.StatusFault:
				return errors.New("panel failed to start: " + ev.Msg)
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Package panel is the receiver front-panel control core: interrupt-driven
// encoder and button input, a polled control loop driving the NAU8810 codec
// and the Si5351 local oscillator, and the status display.
package panel

import (
	"context"

	"rxpanel-go/bus"
	"rxpanel-go/drivers/nau8810"
	"rxpanel-go/drivers/si5351"
	"rxpanel-go/errcode"
	"rxpanel-go/services/panel/internal/halcore"
	"rxpanel-go/services/panel/internal/platform"
)

// Run opens the board and runs the panel until ctx is cancelled. A startup
// failure is returned after it has been displayed and published.
func Run(ctx context.Context, conn *bus.Connection, cfg Config) error {
	board, err := platform.Open(platform.Options{MCLKHz: cfg.MCLKHz})
	if err != nil {
		if conn != nil {
			conn.Publish(conn.NewMessage(TopicStatus, StatusEvent{
				State: StatusFault,
				Code:  errcode.Of(err),
				Msg:   err.Error(),
			}, true))
		}
		return err
	}
	return RunBoard(ctx, conn, cfg, board)
}

// RunBoard runs the panel on an already opened board.
func RunBoard(ctx context.Context, conn *bus.Connection, cfg Config, board *platform.Board) error {
	s, err := New(cfg, HardwareFor(cfg, board), conn)
	if err != nil {
		if board.Sink != nil {
			board.Sink.Fault(err.Error())
		}
		return err
	}
	defer s.Close()
	if err := s.Init(ctx); err != nil {
		return err
	}
	return s.Run(ctx)
}

// HardwareFor builds the device drivers and collaborators on board.
func HardwareFor(cfg Config, board *platform.Board) Hardware {
	var en halcore.GPIOPin
	if p, ok := board.Pins.ByNumber(cfg.Pins.BatteryEnable); ok {
		if p.ConfigureOutput(false) == nil {
			en = p
		}
	}
	return Hardware{
		Codec:   nau8810.New(board.I2C, cfg.CodecAddr),
		Synth:   si5351.New(board.I2C, cfg.SynthAddr),
		Display: DisplayFor(board.Sink),
		Battery: platform.NewBattery(board.BatteryADC, en, cfg.Battery),
		Pins:    board.Pins,
	}
}

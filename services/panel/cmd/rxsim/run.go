package main

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/Sirupsen/logrus.v0"

	"rxpanel-go/bus"
	"rxpanel-go/services/panel"
	"rxpanel-go/services/panel/internal/display"
	"rxpanel-go/services/panel/internal/platform"
)

func (c *RunCmd) Run(ctx context.Context, cli *CLI) error {
	lvl, err := logrus.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)

	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	script, err := loadScript(c.Script)
	if err != nil {
		return err
	}

	var sink display.Sink = newView(os.Stdout)
	if c.Plain {
		sink = display.NewConsole(os.Stdout)
	}
	last, err := simulate(ctx, cfg, script, sink, logrus.StandardLogger())
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"lo_hz":   last.LOHz,
		"display": last.FrequencyText(),
		"source":  last.Source.String(),
		"volume":  last.Audio.Volume,
	}).Info("final state")
	return nil
}

// simulate runs the panel, the bus logger and the operator on one simulated
// board. It returns the last published state once the script has finished.
func simulate(ctx context.Context, cfg panel.Config, script Script, sink display.Sink, log *logrus.Logger) (panel.Snapshot, error) {
	sim := platform.NewSim(sink)
	b := bus.NewBus(32)

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		return panel.RunBoard(runCtx, b.NewConnection("panel"), cfg, sim.Board())
	})
	logConn := b.NewConnection("log")
	logSub := logConn.Subscribe(bus.T("panel", "#"))
	g.Go(func() error {
		logEvents(runCtx, logSub, log)
		return nil
	})
	g.Go(func() error {
		defer stop()
		return newOperator(sim, cfg).Play(runCtx, b.NewConnection("operator"), script)
	})
	if err := g.Wait(); err != nil {
		return panel.Snapshot{}, err
	}

	sub := b.NewConnection("result").Subscribe(panel.TopicState)
	defer sub.Unsubscribe()
	select {
	case m := <-sub.Channel():
		snap, _ := m.Payload.(panel.Snapshot)
		return snap, nil
	default:
		return panel.Snapshot{}, nil
	}
}

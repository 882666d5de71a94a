package main

import (
	"context"

	"gopkg.in/Sirupsen/logrus.v0"

	"rxpanel-go/bus"
	"rxpanel-go/services/panel"
)

// logEvents writes every panel bus message to log until ctx is done.
// Faults log at warn, lifecycle at info and state at debug.
func logEvents(ctx context.Context, sub *bus.Subscription, log *logrus.Logger) {
	defer sub.Unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-sub.Channel():
			if !ok {
				return
			}
			logEvent(log, m)
		}
	}
}

func logEvent(log *logrus.Logger, m *bus.Message) {
	e := log.WithField("topic", m.Topic.String())
	switch ev := m.Payload.(type) {
	case panel.StatusEvent:
		e = e.WithField("state", ev.State)
		if ev.Msg != "" {
			e.WithFields(logrus.Fields{"code": ev.Code, "msg": ev.Msg}).Error("panel status")
			return
		}
		e.Info("panel status")
	case panel.FaultEvent:
		e.WithFields(logrus.Fields{
			"op":    ev.Op,
			"code":  ev.Code,
			"count": ev.Count,
		}).Warn(ev.Msg)
	case panel.Snapshot:
		e.WithFields(logrus.Fields{
			"lo_hz":  ev.LOHz,
			"digit":  ev.Digit.String(),
			"mode":   ev.Mode.String(),
			"source": ev.Source.String(),
			"bat":    ev.BatteryText(),
		}).Debug("panel state")
	default:
		e.WithField("payload", m.Payload).Debug("message")
	}
}

package panel

import (
	"rxpanel-go/bus"
	"rxpanel-go/errcode"
)

var (
	// TopicState carries the retained Snapshot after every redraw.
	TopicState = bus.T("panel", "state")
	// TopicStatus carries the retained lifecycle StatusEvent.
	TopicStatus = bus.T("panel", "status")
	// TopicFault carries a FaultEvent per failed device operation.
	TopicFault = bus.T("panel", "fault")
	// TopicRefresh sets the periodic redraw rate in Hz (0 stops it).
	TopicRefresh = bus.T("panel", "config", "refresh_hz")
)

// Lifecycle states published on TopicStatus.
const (
	StatusInit    = "init"
	StatusRunning = "running"
	StatusFault   = "fault"
	StatusStopped = "stopped"
)

type StatusEvent struct {
	State string
	Code  errcode.Code
	Msg   string
}

type FaultEvent struct {
	Op    string
	Code  errcode.Code
	Msg   string
	Count uint32 // failures of Op so far
}

func (s *Service) publish(t bus.Topic, payload any, retained bool) {
	if s.conn == nil {
		return
	}
	s.conn.Publish(s.conn.NewMessage(t, payload, retained))
}

func (s *Service) publishStatus(state string, err error) {
	ev := StatusEvent{State: state, Code: errcode.Of(err)}
	if err != nil {
		ev.Msg = err.Error()
	}
	s.publish(TopicStatus, ev, true)
}

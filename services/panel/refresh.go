package panel

import (
	"context"
	"time"

	"rxpanel-go/bus"
	"rxpanel-go/x/timex"
)

// startRefresh runs the periodic redraw tick. It only sets the dirty flag.
// The rate can be changed at runtime on TopicRefresh.
func (s *Service) startRefresh(ctx context.Context) {
	var cfgCh <-chan *bus.Message
	var sub *bus.Subscription
	if s.conn != nil {
		sub = s.conn.Subscribe(TopicRefresh)
		cfgCh = sub.Channel()
	}
	go s.refreshLoop(ctx, sub, cfgCh)
}

func (s *Service) refreshLoop(ctx context.Context, sub *bus.Subscription, cfgCh <-chan *bus.Message) {
	if sub != nil {
		defer sub.Unsubscribe()
	}
	tick := time.NewTicker(timex.TickerPeriod(s.cfg.RefreshHz))
	defer tick.Stop()
	if s.cfg.RefreshHz == 0 {
		tick.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.dirty.Set()
		case msg, ok := <-cfgCh:
			if !ok {
				cfgCh = nil
				continue
			}
			hz, ok := refreshHz(msg.Payload)
			if !ok {
				continue
			}
			if hz == 0 {
				tick.Stop()
			} else {
				tick.Reset(timex.TickerPeriod(hz))
			}
		}
	}
}

func refreshHz(v any) (uint32, bool) {
	switch x := v.(type) {
	case uint32:
		return x, true
	case int:
		if x >= 0 {
			return uint32(x), true
		}
	case float64:
		if x >= 0 {
			return uint32(x), true
		}
	}
	return 0, false
}

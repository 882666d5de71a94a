package main

import (
	"context"
	"runtime"
	"time"

	"rxpanel-go/bus"
	"rxpanel-go/services/panel"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	ctx := context.Background()
	b := bus.NewBus(8)
	panelConn := b.NewConnection("panel")
	monConn := b.NewConnection("monitor")

	status := monConn.Subscribe(panel.TopicStatus)
	faults := monConn.Subscribe(panel.TopicFault)
	go monitor(status, faults)

	println("[main] starting panel")
	if err := panel.Run(ctx, panelConn, panel.DefaultConfig()); err != nil {
		println("[main] panel stopped:", err.Error())
	}

	// Startup failed: the message is on the display. Stay up for the
	// console and report memory so the fault can be inspected.
	for {
		printMem()
		time.Sleep(5 * time.Second)
	}
}

func monitor(status, faults *bus.Subscription) {
	for {
		select {
		case m := <-status.Channel():
			ev := m.Payload.(panel.StatusEvent)
			if ev.Msg != "" {
				println("[monitor]", m.Topic.String(), ev.State, string(ev.Code), ev.Msg)
			} else {
				println("[monitor]", m.Topic.String(), ev.State)
			}
		case m := <-faults.Channel():
			ev := m.Payload.(panel.FaultEvent)
			println("[monitor]", m.Topic.String(), ev.Op, string(ev.Code), "count", ev.Count)
		}
	}
}

// printMem prints a compact snapshot of runtime memory stats.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"heapInuse:", uint32(ms.HeapInuse),
		"heapSys:", uint32(ms.HeapSys),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}

// Command boardtest brings up the front-panel board: it probes the codec
// and synthesizer, checks the battery and sequences the switched rails,
// then flashes the source LED with the verdict.
package main

import (
	"os"
	"time"

	"rxpanel-go/services/panel"
	"rxpanel-go/services/panel/internal/platform"
)

const (
	stepDelay = 300 * time.Millisecond
	dwell     = 2 * time.Second

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	cfg := panel.DefaultConfig()
	board, err := platform.Open(platform.Options{MCLKHz: cfg.MCLKHz})
	if err != nil {
		println("[boardtest] open board:", err.Error())
		return
	}
	led, _ := board.Pins.ByNumber(cfg.Pins.SourceLED)

	cycle := 0
	for {
		cycle++
		o := &out{w: os.Stdout}
		o.println("=== boardtest:", board.Name, "cycle", cycle, "===")
		pass := runChecks(cfg, board, timing{stepDelay: stepDelay, dwell: dwell}, o)
		if pass {
			o.println("[PASS] devices present, battery plausible, rails sequenced")
		} else {
			o.println("[FAIL] see above")
		}
		if led != nil {
			ledFlashPassFail(led, pass)
		}

		if cyclesToRun > 0 && cycle >= cyclesToRun {
			o.println("completed", cycle, "cycles; halting")
			return
		}
	}
}

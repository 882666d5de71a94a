package timex

import "time"

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}

// TickerPeriod converts a refresh rate into a ticker interval.
func TickerPeriod(freqHz uint32) time.Duration {
	return time.Duration(PeriodFromHz(freqHz))
}

// Spin busy-waits for d without yielding the scheduler. Use only for short
// settle delays where sleeping would hand the CPU to other work.
func Spin(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

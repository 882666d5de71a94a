package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddClamp returns v+delta saturated to [lo, hi], and whether saturation
// occurred. The sum is formed in int64 so large deltas never wrap.
func AddClamp[T constraints.Integer](v T, delta int64, lo, hi T) (T, bool) {
	sum := int64(v) + delta
	switch {
	case delta > 0 && sum < int64(v):
		return hi, true // int64 overflow
	case delta < 0 && sum > int64(v):
		return lo, true
	case sum < int64(lo):
		return lo, true
	case sum > int64(hi):
		return hi, true
	}
	return T(sum), false
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

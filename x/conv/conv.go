package conv

// AppendUint appends the base-10 form of n to dst, left-padded with pad to
// at least width characters. No fmt/strconv dependency.
func AppendUint(dst []byte, n uint64, width int, pad byte) []byte {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	for w := len(tmp) - i; w < width; w++ {
		dst = append(dst, pad)
	}
	return append(dst, tmp[i:]...)
}

// AppendInt is AppendUint with a leading '-' for negative values. The sign
// counts towards width and sits after any padding.
func AppendInt(dst []byte, n int64, width int, pad byte) []byte {
	if n >= 0 {
		return AppendUint(dst, uint64(n), width, pad)
	}
	u := uint64(-(n + 1)) + 1
	digits := 1
	for v := u / 10; v > 0; v /= 10 {
		digits++
	}
	for w := digits + 1; w < width; w++ {
		dst = append(dst, pad)
	}
	dst = append(dst, '-')
	return AppendUint(dst, u, 0, 0)
}

// Uitoa is the allocation-returning convenience form of AppendUint.
func Uitoa(n uint64) string { return string(AppendUint(nil, n, 0, 0)) }

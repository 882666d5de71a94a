package conv

import (
	"math"
	"testing"
)

func TestAppendUint(t *testing.T) {
	cases := []struct {
		n     uint64
		width int
		pad   byte
		want  string
	}{
		{0, 0, ' ', "0"},
		{98, 3, ' ', " 98"},
		{150, 3, ' ', "150"},
		{7, 3, '0', "007"},
		{12345, 2, '0', "12345"},
		{math.MaxUint64, 0, 0, "18446744073709551615"},
	}
	for _, c := range cases {
		if got := string(AppendUint(nil, c.n, c.width, c.pad)); got != c.want {
			t.Errorf("AppendUint(%d,%d) = %q, want %q", c.n, c.width, got, c.want)
		}
	}
}

func TestAppendInt(t *testing.T) {
	cases := []struct {
		n     int64
		width int
		want  string
	}{
		{0, 0, "0"},
		{12, 3, " 12"},
		{-12, 3, "-12"},
		{-3, 3, " -3"},
		{math.MinInt64, 0, "-9223372036854775808"},
	}
	for _, c := range cases {
		if got := string(AppendInt(nil, c.n, c.width, ' ')); got != c.want {
			t.Errorf("AppendInt(%d,%d) = %q, want %q", c.n, c.width, got, c.want)
		}
	}
}

func TestAppendKeepsPrefix(t *testing.T) {
	got := string(AppendUint([]byte("VOL "), 31, 2, '0'))
	if got != "VOL 31" {
		t.Fatalf("got %q", got)
	}
	if Uitoa(4200) != "4200" {
		t.Fatal("Uitoa")
	}
}

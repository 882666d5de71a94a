package si5351

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlanFrequency(t *testing.T) {
	cases := []struct {
		hz   uint64
		want Plan
	}{
		{87_300_000, Plan{VCO: 873_000_000, MSDiv: 10, A: 34, B: 964689, C: fracDenom}},
		{96_300_000, Plan{VCO: 770_400_000, MSDiv: 8, A: 30, B: 855637, C: fracDenom}},
		{MinFrequency, Plan{VCO: 900_000_000, MSDiv: 900, A: 36, B: 0, C: fracDenom}},
		{MaxFrequency, Plan{VCO: 900_000_000, MSDiv: 6, A: 36, B: 0, C: fracDenom}},
	}
	for _, c := range cases {
		got, err := PlanFrequency(c.hz, 25_000_000)
		if err != nil {
			t.Fatalf("%d: %v", c.hz, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("%d Hz (-want +got):\n%s", c.hz, diff)
		}
	}
}

func TestPlanVCOWindowAndAccuracy(t *testing.T) {
	for hz := uint64(MinFrequency); hz <= MaxFrequency; hz += 1_234_567 {
		p, err := PlanFrequency(hz, 25_000_000)
		if err != nil {
			t.Fatalf("%d: %v", hz, err)
		}
		if p.VCO < vcoMin || p.VCO > vcoMax {
			t.Fatalf("%d: VCO %d outside window", hz, p.VCO)
		}
		if p.MSDiv%2 != 0 {
			t.Fatalf("%d: odd divider %d", hz, p.MSDiv)
		}
		if got := p.Hz(25_000_000); got > hz || hz-got > 5 {
			t.Fatalf("%d: planned output %d", hz, got)
		}
	}
}

func TestEncodeParams(t *testing.T) {
	got := encodeParams(0x2ABCD, 0xF1234, 0xE5678)
	want := [8]byte{0x56, 0x78, 0x02, 0xAB, 0xCD, 0xEF, 0x12, 0x34}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

package mathx

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{50, 0, 100, 50},
		{150, 0, 100, 100},
		{-5, 0, 100, 0},
		{7, 10, 0, 7}, // swapped bounds
		{12, 10, 0, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d,%d,%d)=%d want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestAbsMinMaxWithin(t *testing.T) {
	if Abs(-40) != 40 || Abs(int8(3)) != 3 {
		t.Fatalf("Abs failed")
	}
	if Min(3, 4) != 3 || Max(uint16(3), 4) != 4 {
		t.Fatalf("Min/Max failed")
	}
	if !Within(8, 1, 14) || Within(15, 1, 14) || Within(0, 1, 14) {
		t.Fatalf("Within failed")
	}
}

func TestIntDiv(t *testing.T) {
	if CeilDiv(uint32(7), 2) != 4 || CeilDiv(uint32(8), 2) != 4 || CeilDiv(uint32(1), 0) != 0 {
		t.Fatalf("CeilDiv failed")
	}
	if RoundDiv(uint64(5), 2) != 3 || RoundDiv(uint64(4), 3) != 1 || RoundDiv(uint64(9), 0) != 0 {
		t.Fatalf("RoundDiv failed")
	}
}

func TestScalePct(t *testing.T) {
	cases := []struct {
		pct  uint8
		full uint32
		want uint32
	}{
		{0, 4096, 0},
		{50, 4096, 2048},
		{75, 4096, 3072},
		{100, 4096, 4096},
		{120, 4096, 4096},
		{33, 1 << 16, 21626},
	}
	for _, c := range cases {
		if got := ScalePct(c.pct, c.full); got != c.want {
			t.Fatalf("ScalePct(%d,%d)=%d want %d", c.pct, c.full, got, c.want)
		}
	}
}

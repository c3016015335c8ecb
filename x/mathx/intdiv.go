package mathx

import "golang.org/x/exp/constraints"

// CeilDiv returns ceil(a/b) for positive integers; b == 0 yields 0.
func CeilDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// RoundDiv returns floor((a + b/2)/b), classic rounding for positives.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// ScalePct maps a percentage in [0..100] onto [0..full] with 64-bit
// intermediates. Percentages above 100 saturate at full.
func ScalePct(pct uint8, full uint32) uint32 {
	if pct >= 100 {
		return full
	}
	return uint32(uint64(pct) * uint64(full) / 100)
}

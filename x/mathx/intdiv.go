package mathx

import "golang.org/x/exp/constraints"

// RoundDiv returns floor((a + b/2)/b), classic rounding for unsigned operands.
// b == 0 yields 0.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// TruncDiv returns a/b, or 0 when b == 0. Baud generator arithmetic truncates.
func TruncDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return a / b
}

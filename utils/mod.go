package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// PosMod returns a modulo n in the range [0, n).
func PosMod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// RoundDiv divides a non-negative a by a positive b, rounding half up.
func RoundDiv(a, b int) int {
	return (2*a + b) / (2 * b)
}

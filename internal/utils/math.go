package utils

import (
	"golang.org/x/exp/constraints"
)

func Abs[T constraints.Integer](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// Sign returns -1, 0 or 1.
func Sign[T constraints.Signed](a T) int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	default:
		return 0
	}
}

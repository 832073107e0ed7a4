package ising

import (
	"fmt"
	"math"
)

// CurieTemperature returns the exact critical temperature of the 2D
// Ising model in reduced units (k_B = 1), from Onsager's solution:
//
//	T_c = 2J / ln(1 + √2) ≈ 2.2692·J
//
// Pure function of the coupling; J must be positive for a
// ferromagnetic transition to exist.
func CurieTemperature(j float64) (float64, error) {
	if j <= 0 {
		return 0, fmt.Errorf("%w: coupling J must be positive, got %g", ErrInvalidParameter, j)
	}
	return 2 * j / math.Log(1+math.Sqrt2), nil
}

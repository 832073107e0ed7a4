package ising

import (
	"errors"
	"math"
	"testing"
)

func TestCurieTemperature(t *testing.T) {
	tc, err := CurieTemperature(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(tc-2.269185314213022) > 1e-12 {
		t.Errorf("T_c(J=1) = %v, want 2.269185314213022", tc)
	}

	tc2, err := CurieTemperature(2.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(tc2-2*tc) > 1e-12 {
		t.Errorf("T_c should scale linearly in J: got %v, want %v", tc2, 2*tc)
	}
}

func TestCurieTemperatureInvalidCoupling(t *testing.T) {
	for _, j := range []float64{0, -1.5} {
		if _, err := CurieTemperature(j); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("J=%g: expected ErrInvalidParameter, got %v", j, err)
		}
	}
}

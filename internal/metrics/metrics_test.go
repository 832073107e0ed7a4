package metrics

import (
	"math"
	"testing"
)

func TestAcceptanceRate(t *testing.T) {
	m := NewAcceptanceRate()

	m.Observe(0, 0, 0, true)
	m.Observe(1, 0, 0, false)
	m.Observe(2, 0, 0, true)
	m.Observe(3, 0, 0, true)

	if got := m.Value(); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMeanAbsMagnetization(t *testing.T) {
	m := NewMeanAbsMagnetization()

	m.Observe(0, 0, 0.5, true)
	m.Observe(1, 0, -0.5, true)

	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("sign must not cancel: expected 0.5, got %f", got)
	}
}

func TestSusceptibilityConstantSeries(t *testing.T) {
	s := NewSusceptibility(8, 2.0)

	for i := 0; i < 100; i++ {
		s.Observe(i, 0, 0.9, true)
	}

	// No fluctuations, no susceptibility.
	if got := s.Value(); math.Abs(got) > 1e-9 {
		t.Errorf("expected 0 for constant series, got %g", got)
	}
}

func TestSusceptibilityTwoPointSeries(t *testing.T) {
	s := NewSusceptibility(2, 1.0)

	s.Observe(0, 0, 1.0, true)
	s.Observe(1, 0, 0.0, true)

	// ⟨m²⟩ = 0.5, ⟨|m|⟩ = 0.5 → χ = 4·(0.5 - 0.25)/1 = 1.
	if got := s.Value(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected 1.0, got %f", got)
	}
}

func TestSpecificHeat(t *testing.T) {
	c := NewSpecificHeat(2, 2.0)

	c.Observe(0, -8, 0, true)
	c.Observe(1, -4, 0, true)

	// ⟨E⟩ = -6, ⟨E²⟩ = 40 → C = (40 - 36)/(4·4) = 0.25.
	if got := c.Value(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("expected 0.25, got %f", got)
	}

	c.Reset()
	if c.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestBinderCumulantLimits(t *testing.T) {
	ordered := NewBinderCumulant()
	for i := 0; i < 100; i++ {
		ordered.Observe(i, 0, 1.0, true)
	}
	// ⟨m⁴⟩ = ⟨m²⟩² = 1 → U = 2/3.
	if got := ordered.Value(); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("ordered limit: expected 2/3, got %f", got)
	}

	empty := NewBinderCumulant()
	if empty.Value() != 0 {
		t.Error("expected zero with no samples")
	}
}

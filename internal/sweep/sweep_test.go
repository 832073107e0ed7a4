package sweep

import (
	"context"
	"math"
	"testing"
)

func TestTemperatures(t *testing.T) {
	temps := Temperatures(1.0, 3.0, 5)
	want := []float64{1.0, 1.5, 2.0, 2.5, 3.0}
	if len(temps) != len(want) {
		t.Fatalf("expected %d temperatures, got %d", len(want), len(temps))
	}
	for i := range want {
		if math.Abs(temps[i]-want[i]) > 1e-12 {
			t.Errorf("index %d: got %f, want %f", i, temps[i], want[i])
		}
	}

	if temps := Temperatures(2.0, 5.0, 1); len(temps) != 1 || temps[0] != 2.0 {
		t.Errorf("single-point range: got %v", temps)
	}
}

func TestRunOrdersAndPopulatesPoints(t *testing.T) {
	s := New(4, 1.0, 2000)
	s.Replicas = 2
	s.Seed = 11

	temps := []float64{1.0, 2.269, 4.0}
	points, err := s.Run(context.Background(), temps)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i, p := range points {
		if p.Temperature != temps[i] {
			t.Errorf("point %d: temperature %f, want %f", i, p.Temperature, temps[i])
		}
		if p.MeanAbsMag < 0 || p.MeanAbsMag > 1 {
			t.Errorf("point %d: |m| = %f outside [0, 1]", i, p.MeanAbsMag)
		}
		if p.AcceptanceRate <= 0 || p.AcceptanceRate > 1 {
			t.Errorf("point %d: acceptance rate %f outside (0, 1]", i, p.AcceptanceRate)
		}
	}

	// Order parameter decreases with temperature across the transition.
	if points[0].MeanAbsMag <= points[2].MeanAbsMag {
		t.Errorf("expected |m|(T=1.0)=%f above |m|(T=4.0)=%f",
			points[0].MeanAbsMag, points[2].MeanAbsMag)
	}
}

func TestRunEmptyTemperatures(t *testing.T) {
	s := New(4, 1.0, 100)
	if _, err := s.Run(context.Background(), nil); err == nil {
		t.Error("expected error for empty temperature list")
	}
}

func TestEstimateCritical(t *testing.T) {
	points := []Point{
		{Temperature: 1.5, Susceptibility: 0.2},
		{Temperature: 2.3, Susceptibility: 5.0},
		{Temperature: 3.0, Susceptibility: 0.8},
	}
	tc, err := EstimateCritical(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc != 2.3 {
		t.Errorf("expected peak at 2.3, got %f", tc)
	}

	if _, err := EstimateCritical(nil); err == nil {
		t.Error("expected error for empty points")
	}
}

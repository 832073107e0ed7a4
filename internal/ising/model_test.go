package ising

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func newTestModel(t *testing.T, p Params, seed int64) *Model {
	t.Helper()
	m, err := New(p, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	return m
}

func TestNewInvalidParams(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"zero size", Params{Size: 0, Temperature: 1.0, J: 1.0}},
		{"negative size", Params{Size: -4, Temperature: 1.0, J: 1.0}},
		{"zero temperature", Params{Size: 8, Temperature: 0, J: 1.0}},
		{"negative temperature", Params{Size: 8, Temperature: -2.5, J: 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.p, rand.New(rand.NewSource(1)))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestNewRandomLattice(t *testing.T) {
	m := newTestModel(t, Params{Size: 16, Temperature: 2.0, J: 1.0}, 7)

	for _, s := range m.Spins() {
		if s != 1 && s != -1 {
			t.Fatalf("spin value %d outside {-1, +1}", s)
		}
	}

	if got, want := m.Energy(), m.TotalEnergy(); got != want {
		t.Errorf("initial cached energy %f != recomputed %f", got, want)
	}
}

func TestResetDeterministic(t *testing.T) {
	p := Params{Size: 12, Temperature: 2.0, J: 1.0, H: 0.5}
	a := newTestModel(t, p, 42)
	b := newTestModel(t, p, 42)

	sa, sb := a.Spins(), b.Spins()
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("lattices differ at %d with identical seeds", i)
		}
	}
	if a.Energy() != b.Energy() {
		t.Errorf("energies differ: %f vs %f", a.Energy(), b.Energy())
	}
}

func TestCachesMatchRecomputeDuringRun(t *testing.T) {
	m := newTestModel(t, Params{Size: 8, Temperature: 2.5, J: 1.3, H: 0.2}, 3)

	for block := 0; block < 5; block++ {
		if _, err := m.Simulate(context.Background(), 2000); err != nil {
			t.Fatalf("simulate failed: %v", err)
		}

		if diff := math.Abs(m.Energy() - m.TotalEnergy()); diff > 1e-8 {
			t.Errorf("block %d: cached energy drifted by %g", block, diff)
		}

		sum := 0
		for _, s := range m.Spins() {
			sum += int(s)
		}
		if sum != m.SpinSum() {
			t.Errorf("block %d: cached spin sum %d != recomputed %d", block, m.SpinSum(), sum)
		}
	}
}

func TestDeltaEOnUniformLattice(t *testing.T) {
	m := newTestModel(t, Params{Size: 6, Temperature: 1.0, J: 1.5, H: 0.3}, 1)

	spins := make([]int8, 36)
	for i := range spins {
		spins[i] = 1
	}
	if err := m.RestoreSnapshot(&Snapshot{Size: 6, Temperature: 1.0, J: 1.5, H: 0.3, Spins: spins}); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	// All neighbors up: ΔE = 2·J·s·4 + 2·h·s = 8J + 2h.
	want := 8*1.5 + 2*0.3
	got := m.deltaE(2, 3)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("deltaE = %f, want %f", got, want)
	}
	if math.Abs(got+2*m.LocalEnergy(2, 3)) > 1e-12 {
		t.Errorf("deltaE %f != -2·LocalEnergy %f", got, -2*m.LocalEnergy(2, 3))
	}

	before := m.Energy()
	m.spins[m.idx(2, 3)] = -1
	if diff := math.Abs(m.TotalEnergy() - before - want); diff > 1e-12 {
		t.Errorf("actual energy change off by %g", diff)
	}
}

func TestTinyLattices(t *testing.T) {
	for _, size := range []int{1, 2} {
		m := newTestModel(t, Params{Size: size, Temperature: 1.0, J: 1.0, H: 0.4}, 9)

		if _, err := m.Simulate(context.Background(), 1000); err != nil {
			t.Fatalf("size %d: simulate failed: %v", size, err)
		}
		if diff := math.Abs(m.Energy() - m.TotalEnergy()); diff > 1e-8 {
			t.Errorf("size %d: cached energy drifted by %g", size, diff)
		}
	}
}

func TestHighTemperatureStaysDisordered(t *testing.T) {
	// size=4 at T=100 is effectively an uncorrelated random ±1 grid;
	// the expected |m| of 16 random spins is about 0.196.
	m := newTestModel(t, Params{Size: 4, Temperature: 100, J: 1.0}, 42)

	result, err := m.Simulate(context.Background(), 10000)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	sum := 0.0
	for _, mag := range result.Magnetizations {
		sum += math.Abs(mag)
	}
	mean := sum / float64(len(result.Magnetizations))

	if mean > 0.4 || mean < 0.05 {
		t.Errorf("mean |m| = %f, expected near 0.196 for uncorrelated spins", mean)
	}
}

func TestSimulateInvalidSteps(t *testing.T) {
	m := newTestModel(t, Params{Size: 4, Temperature: 1.0, J: 1.0}, 1)

	for _, steps := range []int{0, -10} {
		if _, err := m.Simulate(context.Background(), steps); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("steps=%d: expected ErrInvalidParameter, got %v", steps, err)
		}
	}
}

func TestSimulateCancellation(t *testing.T) {
	m := newTestModel(t, Params{Size: 8, Temperature: 2.0, J: 1.0}, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := m.Simulate(ctx, 1000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Fatal("expected partial result on cancellation")
	}
	if len(result.Energies) != len(result.Magnetizations) {
		t.Errorf("partial series lengths differ: %d vs %d", len(result.Energies), len(result.Magnetizations))
	}
}

func TestSimulateSeriesLengths(t *testing.T) {
	m := newTestModel(t, Params{Size: 4, Temperature: 2.0, J: 1.0}, 11)

	result, err := m.Simulate(context.Background(), 500)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if result.Steps != 500 {
		t.Errorf("expected 500 steps, got %d", result.Steps)
	}
	if len(result.Energies) != 500 || len(result.Magnetizations) != 500 {
		t.Errorf("expected 500 series points, got %d/%d", len(result.Energies), len(result.Magnetizations))
	}
	if result.Accepted > result.Steps {
		t.Errorf("accepted %d exceeds steps %d", result.Accepted, result.Steps)
	}
}

func TestReconfigure(t *testing.T) {
	m := newTestModel(t, Params{Size: 8, Temperature: 2.0, J: 1.0}, 2)
	before := m.Spins()

	if err := m.Reconfigure(Params{Size: 8, Temperature: 1.0, J: 2.0, H: 0.1}); err != nil {
		t.Fatalf("reconfigure failed: %v", err)
	}
	after := m.Spins()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("same-size reconfigure must keep the lattice")
		}
	}
	if got, want := m.Energy(), m.TotalEnergy(); got != want {
		t.Errorf("caches not recomputed: %f vs %f", got, want)
	}

	if err := m.Reconfigure(Params{Size: 8, Temperature: 0, J: 1.0}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

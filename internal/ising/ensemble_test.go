package ising

import (
	"context"
	"testing"
)

func TestEnsembleRun(t *testing.T) {
	e := NewEnsemble(Params{Size: 4, Temperature: 2.0, J: 1.0}, 4, 100)

	results, err := e.Run(context.Background(), 200)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Steps != 200 {
			t.Errorf("replica %d: %d steps, want 200", i, r.Steps)
		}
	}
}

func TestEnsembleDeterministicSeeds(t *testing.T) {
	p := Params{Size: 4, Temperature: 2.0, J: 1.0}

	a, err := NewEnsemble(p, 2, 7).Run(context.Background(), 100)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := NewEnsemble(p, 2, 7).Run(context.Background(), 100)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for i := range a {
		if a[i].Accepted != b[i].Accepted {
			t.Errorf("replica %d: accepted counts differ across identical seeds", i)
		}
		last := len(a[i].Energies) - 1
		if a[i].Energies[last] != b[i].Energies[last] {
			t.Errorf("replica %d: final energies differ across identical seeds", i)
		}
	}
}

func TestEnsembleInvalidParams(t *testing.T) {
	e := NewEnsemble(Params{Size: 0, Temperature: 1.0, J: 1.0}, 2, 1)
	if _, err := e.Run(context.Background(), 10); err == nil {
		t.Fatal("expected error for invalid params")
	}
}

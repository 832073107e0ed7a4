package storage

import (
	"context"
	"math/rand"
	"testing"

	"github.com/san-kum/isinglab/internal/ising"
)

func runForTest(t *testing.T, p ising.Params, seed int64, steps int) (*ising.Result, *ising.Snapshot) {
	t.Helper()
	m, err := ising.New(p, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("new model failed: %v", err)
	}
	result, err := m.Simulate(context.Background(), steps)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	return result, m.Snapshot()
}

func TestSaveAndLoadRun(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer store.Close()

	p := ising.Params{Size: 8, Temperature: 2.0, J: 1.0}
	result, snap := runForTest(t, p, 5, 300)

	runID, err := store.SaveRun(p, 5, result, snap)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	rec, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.Size != 8 || rec.Temperature != 2.0 {
		t.Errorf("record params mismatch: %+v", rec)
	}
	if rec.Steps != 300 {
		t.Errorf("expected 300 steps, got %d", rec.Steps)
	}
	if rec.Seed != 5 {
		t.Errorf("expected seed 5, got %d", rec.Seed)
	}

	energies, mags, err := store.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(energies) != 300 || len(mags) != 300 {
		t.Errorf("series lengths %d/%d, want 300", len(energies), len(mags))
	}

	loaded, err := store.LoadSnapshot(runID)
	if err != nil {
		t.Fatalf("load snapshot failed: %v", err)
	}
	if loaded.Size != snap.Size || loaded.Energy != snap.Energy {
		t.Errorf("snapshot mismatch: %+v vs %+v", loaded, snap)
	}
}

func TestListOrdersMostRecentFirst(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer store.Close()

	p := ising.Params{Size: 4, Temperature: 2.0, J: 1.0}
	result, snap := runForTest(t, p, 1, 50)

	first, err := store.SaveRun(p, 1, result, snap)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := store.SaveRun(p, 2, result, snap)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected most recent first, got %s then %s", runs[0].ID, runs[1].ID)
	}
}

func TestDeleteRun(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer store.Close()

	p := ising.Params{Size: 4, Temperature: 2.0, J: 1.0}
	result, snap := runForTest(t, p, 1, 50)
	runID, err := store.SaveRun(p, 1, result, snap)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := store.Delete(runID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	rec, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rec != nil {
		t.Error("expected nil after delete")
	}
	if _, _, err := store.LoadSeries(runID); err == nil {
		t.Error("expected error reading deleted series")
	}
}

func TestLoadMissingRun(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer store.Close()

	rec, err := store.Load("run_0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != nil {
		t.Error("expected nil for missing run")
	}
}

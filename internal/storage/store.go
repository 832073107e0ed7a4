// Package storage persists simulation runs: a SQLite catalog of run
// metadata, with the recorded series and the final lattice written as
// flat files next to it. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/isinglab/internal/ising"
)

type Store struct {
	baseDir string
	catalog *Catalog
}

// RunRecord is the catalog entry for one saved run.
type RunRecord struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	Size        int                `json:"size"`
	Temperature float64            `json:"temperature"`
	J           float64            `json:"j"`
	H           float64            `json:"h"`
	Steps       int                `json:"steps"`
	Accepted    int                `json:"accepted"`
	Seed        int64              `json:"seed"`
	FinalEnergy float64            `json:"final_energy"`
	FinalAbsMag float64            `json:"final_abs_magnetization"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Open prepares the base directory and the run catalog inside it.
func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	catalog, err := OpenCatalog(filepath.Join(baseDir, "runs.db"))
	if err != nil {
		return nil, err
	}
	return &Store{baseDir: baseDir, catalog: catalog}, nil
}

func (s *Store) Close() error { return s.catalog.Close() }

// SaveRun writes the series and final lattice of a run under a fresh
// run directory and registers it in the catalog. Returns the run ID.
func (s *Store) SaveRun(p ising.Params, seed int64, result *ising.Result, snap *ising.Snapshot) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	rec := RunRecord{
		ID:          runID,
		CreatedAt:   time.Now().UTC(),
		Size:        p.Size,
		Temperature: p.Temperature,
		J:           p.J,
		H:           p.H,
		Steps:       result.Steps,
		Accepted:    result.Accepted,
		Seed:        seed,
		Metrics:     result.Metrics,
	}
	if snap != nil {
		rec.FinalEnergy = snap.Energy
		if snap.Magnetization < 0 {
			rec.FinalAbsMag = -snap.Magnetization
		} else {
			rec.FinalAbsMag = snap.Magnetization
		}
	}

	if err := s.writeSeries(filepath.Join(runDir, "series.csv"), result); err != nil {
		return "", err
	}
	if snap != nil {
		if err := writeJSON(filepath.Join(runDir, "lattice.json"), snap); err != nil {
			return "", err
		}
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), rec); err != nil {
		return "", err
	}

	if err := s.catalog.Insert(rec); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeSeries(path string, result *ising.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"step", "energy", "magnetization"}); err != nil {
		return err
	}
	for i := range result.Energies {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(result.Energies[i], 'f', 6, 64),
			strconv.FormatFloat(result.Magnetizations[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns the catalog entries, most recent first.
func (s *Store) List() ([]RunRecord, error) {
	return s.catalog.List()
}

// Load returns one catalog entry by run ID.
func (s *Store) Load(runID string) (*RunRecord, error) {
	return s.catalog.Get(runID)
}

// LoadSeries reads back the recorded energy and magnetization series of
// a run.
func (s *Store) LoadSeries(runID string) (energies, magnetizations []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	energies = make([]float64, 0, len(records)-1)
	magnetizations = make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		e, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		m, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		energies = append(energies, e)
		magnetizations = append(magnetizations, m)
	}
	return energies, magnetizations, nil
}

// LoadSnapshot reads back the final lattice of a run.
func (s *Store) LoadSnapshot(runID string) (*ising.Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "lattice.json"))
	if err != nil {
		return nil, err
	}
	var snap ising.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Delete removes a run from the catalog and its files from disk.
func (s *Store) Delete(runID string) error {
	if err := s.catalog.Delete(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

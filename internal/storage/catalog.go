package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Catalog indexes saved runs in a SQLite database so listings and
// lookups stay cheap once the run directories grow large.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog creates or opens the catalog database at the given path
// and runs migrations.
func OpenCatalog(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return c, nil
}

func (c *Catalog) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			size INTEGER NOT NULL,
			temperature REAL NOT NULL,
			j REAL NOT NULL,
			h REAL NOT NULL,
			steps INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			final_energy REAL NOT NULL,
			final_abs_mag REAL NOT NULL,
			metrics TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_temperature ON runs(temperature);
	`
	_, err := c.db.Exec(schema)
	return err
}

func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *Catalog) Insert(rec RunRecord) error {
	metrics, err := json.Marshal(rec.Metrics)
	if err != nil {
		return fmt.Errorf("storage: cannot encode metrics: %w", err)
	}

	_, err = c.db.Exec(
		`INSERT INTO runs
		 (id, created_at, size, temperature, j, h, steps, accepted, seed, final_energy, final_abs_mag, metrics)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CreatedAt.Format(time.RFC3339Nano),
		rec.Size,
		rec.Temperature,
		rec.J,
		rec.H,
		rec.Steps,
		rec.Accepted,
		rec.Seed,
		rec.FinalEnergy,
		rec.FinalAbsMag,
		string(metrics),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot insert run: %w", err)
	}
	return nil
}

// Get returns one run by ID, or nil when absent.
func (c *Catalog) Get(runID string) (*RunRecord, error) {
	row := c.db.QueryRow(
		`SELECT id, created_at, size, temperature, j, h, steps, accepted, seed, final_energy, final_abs_mag, metrics
		 FROM runs WHERE id = ?`, runID)

	rec, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return rec, nil
}

// List returns every run, most recent first.
func (c *Catalog) List() ([]RunRecord, error) {
	rows, err := c.db.Query(
		`SELECT id, created_at, size, temperature, j, h, steps, accepted, seed, final_energy, final_abs_mag, metrics
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

func (c *Catalog) Delete(runID string) error {
	_, err := c.db.Exec("DELETE FROM runs WHERE id = ?", runID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*RunRecord, error) {
	var rec RunRecord
	var createdAt, metrics string

	if err := row.Scan(
		&rec.ID,
		&createdAt,
		&rec.Size,
		&rec.Temperature,
		&rec.J,
		&rec.H,
		&rec.Steps,
		&rec.Accepted,
		&rec.Seed,
		&rec.FinalEnergy,
		&rec.FinalAbsMag,
		&metrics,
	); err != nil {
		return nil, err
	}

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(metrics), &rec.Metrics); err != nil {
		rec.Metrics = nil
	}
	return &rec, nil
}

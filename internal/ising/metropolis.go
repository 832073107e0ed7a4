package ising

import (
	"context"
	"fmt"
	"math"
)

// Metric is a streaming observable computed over a run without storing
// the series. Implementations live in internal/metrics.
type Metric interface {
	Name() string
	Observe(step int, energy, magnetization float64, accepted bool)
	Value() float64
	Reset()
}

// Result holds the series recorded by one Simulate call: one point per
// elementary step, plus summary counters.
type Result struct {
	Steps          int
	Accepted       int
	Energies       []float64
	Magnetizations []float64
	Metrics        map[string]float64
}

// AcceptanceRate returns the fraction of proposed flips that were
// accepted during the run.
func (r *Result) AcceptanceRate() float64 {
	if r.Steps == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Steps)
}

// Step performs one Metropolis elementary step: pick a site uniformly
// at random, compute ΔE for flipping it, accept unconditionally when
// ΔE ≤ 0 and with probability exp(-ΔE/T) otherwise. An accepted flip
// mutates the lattice and the cached energy and spin sum in place.
// Returns whether the flip was accepted.
func (m *Model) Step() bool {
	i := m.rng.Intn(m.size)
	j := m.rng.Intn(m.size)

	dE := m.deltaE(i, j)
	if dE > 0 && m.rng.Float64() >= math.Exp(-dE/m.temperature) {
		return false
	}

	k := m.idx(i, j)
	s := m.spins[k]
	m.spins[k] = -s
	m.energy += dE
	m.spinSum -= 2 * int(s)
	return true
}

// Simulate runs the given number of elementary steps, appending the
// current energy and mean magnetization to the result after every
// step. The context is polled each step; on cancellation the series
// collected so far are returned together with the context error, and
// every recorded point is self-consistent.
func (m *Model) Simulate(ctx context.Context, steps int) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidParameter, steps)
	}

	for _, mt := range m.metrics {
		mt.Reset()
	}

	result := &Result{
		Energies:       make([]float64, 0, steps),
		Magnetizations: make([]float64, 0, steps),
		Metrics:        make(map[string]float64),
	}

	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			m.collectMetrics(result)
			return result, ctx.Err()
		default:
		}

		accepted := m.Step()
		if accepted {
			result.Accepted++
		}
		result.Steps++

		mag := m.Magnetization()
		result.Energies = append(result.Energies, m.energy)
		result.Magnetizations = append(result.Magnetizations, mag)

		for _, mt := range m.metrics {
			mt.Observe(step, m.energy, mag, accepted)
		}
	}

	m.collectMetrics(result)
	return result, nil
}

// Sweep performs N² elementary steps and returns how many were
// accepted. Convenience for frame-rate driven callers; recording stays
// per elementary step in Simulate.
func (m *Model) Sweep() int {
	accepted := 0
	for k := 0; k < m.size*m.size; k++ {
		if m.Step() {
			accepted++
		}
	}
	return accepted
}

func (m *Model) collectMetrics(result *Result) {
	for _, mt := range m.metrics {
		result.Metrics[mt.Name()] = mt.Value()
	}
}

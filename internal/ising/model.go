package ising

import (
	"fmt"
	"math/rand"
	"time"
)

// Params holds the physical parameters of a simulation instance.
// Size is the lattice edge length N, Temperature is in units of J/k_B,
// J is the coupling strength and H the external field.
type Params struct {
	Size        int
	Temperature float64
	J           float64
	H           float64
}

// Validate checks parameter ranges. Temperature must be strictly
// positive to keep the Boltzmann factor defined.
func (p Params) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidParameter, p.Size)
	}
	if p.Temperature <= 0 {
		return fmt.Errorf("%w: temperature must be positive, got %g", ErrInvalidParameter, p.Temperature)
	}
	return nil
}

// Model is one Ising simulation instance: the spin lattice, its
// parameters, and incrementally maintained energy and magnetization.
type Model struct {
	size        int
	temperature float64
	j, h        float64
	spins       []int8 // row-major, values in {-1, +1}
	energy      float64
	spinSum     int
	rng         *rand.Rand
	metrics     []Metric
}

// New allocates a model with a uniformly random ±1 lattice and caches
// computed from scratch. A nil rng falls back to a time-seeded one;
// pass a seeded generator for reproducible runs.
func New(p Params, rng *rand.Rand) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &Model{
		size:        p.Size,
		temperature: p.Temperature,
		j:           p.J,
		h:           p.H,
		spins:       make([]int8, p.Size*p.Size),
		rng:         rng,
	}
	m.randomize()
	return m, nil
}

// AddMetric registers a streaming observable; Simulate calls Observe
// once per elementary step.
func (m *Model) AddMetric(mt Metric) { m.metrics = append(m.metrics, mt) }

// Reset re-randomizes the lattice with the model's generator and
// recomputes the cached energy and magnetization.
func (m *Model) Reset() {
	m.randomize()
}

// Reconfigure swaps the physical parameters of an existing model. A
// size change reallocates and re-randomizes the lattice; a pure
// temperature/J/h change keeps the spins and recomputes the caches.
func (m *Model) Reconfigure(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.temperature = p.Temperature
	if p.Size != m.size {
		m.size = p.Size
		m.spins = make([]int8, p.Size*p.Size)
		m.j, m.h = p.J, p.H
		m.randomize()
		return nil
	}
	m.j, m.h = p.J, p.H
	m.recomputeCaches()
	return nil
}

func (m *Model) randomize() {
	for i := range m.spins {
		if m.rng.Intn(2) == 0 {
			m.spins[i] = -1
		} else {
			m.spins[i] = 1
		}
	}
	m.recomputeCaches()
}

func (m *Model) idx(i, j int) int { return i*m.size + j }

// neighborSum returns the sum of the four wrapped nearest neighbors of
// site (i, j). On a 1×1 lattice every neighbor is the site itself;
// those self-bonds are constant under a flip and are excluded.
func (m *Model) neighborSum(i, j int) int {
	n := m.size
	if n == 1 {
		return 0
	}
	up := m.spins[m.idx((i-1+n)%n, j)]
	down := m.spins[m.idx((i+1)%n, j)]
	left := m.spins[m.idx(i, (j-1+n)%n)]
	right := m.spins[m.idx(i, (j+1)%n)]
	return int(up) + int(down) + int(left) + int(right)
}

// LocalEnergy returns the energy contribution of the spin at (i, j):
// -J·s·Σ_neighbors - h·s, with periodic wraparound. O(1).
func (m *Model) LocalEnergy(i, j int) float64 {
	s := float64(m.spins[m.idx(i, j)])
	return -m.j*s*float64(m.neighborSum(i, j)) - m.h*s
}

// deltaE is the energy change of flipping (i, j), evaluated before the
// flip. Equal to -2·LocalEnergy(i, j) since the flipped spin's
// interactions with its unchanged neighbors scale linearly in s.
func (m *Model) deltaE(i, j int) float64 {
	s := float64(m.spins[m.idx(i, j)])
	return 2*m.j*s*float64(m.neighborSum(i, j)) + 2*m.h*s
}

// TotalEnergy recomputes the Hamiltonian from scratch, counting each
// bond once via the right and down neighbor of every site. O(N²);
// used at reset and by invariant checks, never inside the step loop.
func (m *Model) TotalEnergy() float64 {
	n := m.size
	bond := 0
	sum := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := int(m.spins[m.idx(i, j)])
			bond += s * int(m.spins[m.idx((i+1)%n, j)])
			bond += s * int(m.spins[m.idx(i, (j+1)%n)])
			sum += s
		}
	}
	return -m.j*float64(bond) - m.h*float64(sum)
}

func (m *Model) recomputeCaches() {
	m.energy = m.TotalEnergy()
	sum := 0
	for _, s := range m.spins {
		sum += int(s)
	}
	m.spinSum = sum
}

// Size returns the lattice edge length N.
func (m *Model) Size() int { return m.size }

// Params returns the current physical parameters.
func (m *Model) Params() Params {
	return Params{Size: m.size, Temperature: m.temperature, J: m.j, H: m.h}
}

// Energy returns the cached total energy. O(1).
func (m *Model) Energy() float64 { return m.energy }

// Magnetization returns the cached per-site mean spin. O(1).
func (m *Model) Magnetization() float64 {
	return float64(m.spinSum) / float64(m.size*m.size)
}

// SpinSum returns the cached sum of all spins.
func (m *Model) SpinSum() int { return m.spinSum }

// At returns the spin at (i, j) without wrapping; callers index within
// [0, N).
func (m *Model) At(i, j int) int8 { return m.spins[m.idx(i, j)] }

// Spins returns a copy of the lattice in row-major order, reflecting
// the state after the most recent accepted flip.
func (m *Model) Spins() []int8 {
	out := make([]int8, len(m.spins))
	copy(out, m.spins)
	return out
}

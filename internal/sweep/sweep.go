// Package sweep measures equilibrium observables across a temperature
// range, running independent replicas per temperature in parallel.
package sweep

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/san-kum/isinglab/internal/ising"
	"github.com/san-kum/isinglab/internal/metrics"
)

// Point holds the averaged observables measured at one temperature.
type Point struct {
	Temperature    float64 `json:"temperature"`
	MeanAbsMag     float64 `json:"mean_abs_magnetization"`
	Susceptibility float64 `json:"susceptibility"`
	SpecificHeat   float64 `json:"specific_heat"`
	BinderCumulant float64 `json:"binder_cumulant"`
	AcceptanceRate float64 `json:"acceptance_rate"`
}

// Sweep runs one lattice configuration across many temperatures.
type Sweep struct {
	Size     int
	J        float64
	H        float64
	Steps    int
	BurnIn   int
	Replicas int
	Seed     int64
	Logger   *log.Logger
}

// New returns a sweep with sensible measurement defaults: half the
// steps spent on burn-in and three replicas per temperature.
func New(size int, j float64, steps int) *Sweep {
	return &Sweep{
		Size:     size,
		J:        j,
		Steps:    steps,
		BurnIn:   steps / 2,
		Replicas: 3,
		Logger:   log.New(io.Discard),
	}
}

// Temperatures builds an inclusive evenly spaced range.
func Temperatures(from, to float64, count int) []float64 {
	if count < 2 {
		return []float64{from}
	}
	temps := make([]float64, count)
	step := (to - from) / float64(count-1)
	for i := range temps {
		temps[i] = from + float64(i)*step
	}
	return temps
}

// Run measures every temperature, one goroutine per temperature with
// replicas run sequentially inside it. Points come back ordered by the
// input temperatures.
func (s *Sweep) Run(ctx context.Context, temps []float64) ([]Point, error) {
	if len(temps) == 0 {
		return nil, fmt.Errorf("%w: no temperatures to sweep", ising.ErrInvalidParameter)
	}
	if s.Replicas < 1 {
		s.Replicas = 1
	}

	points := make([]Point, len(temps))
	errs := make([]error, len(temps))

	var wg sync.WaitGroup
	for i, t := range temps {
		wg.Add(1)
		go func(idx int, temperature float64) {
			defer wg.Done()
			points[idx], errs[idx] = s.measure(ctx, idx, temperature)
			if errs[idx] == nil {
				s.Logger.Info("temperature done",
					"T", temperature,
					"abs_mag", points[idx].MeanAbsMag,
					"chi", points[idx].Susceptibility,
				)
			}
		}(i, t)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

// measure runs the replicas for one temperature and averages their
// observables. Each replica burns in before the metrics attach, so the
// moments only see equilibrium samples.
func (s *Sweep) measure(ctx context.Context, idx int, temperature float64) (Point, error) {
	point := Point{Temperature: temperature}

	for r := 0; r < s.Replicas; r++ {
		seed := s.Seed + int64(idx*s.Replicas+r)
		rng := rand.New(rand.NewSource(seed))

		m, err := ising.New(ising.Params{
			Size:        s.Size,
			Temperature: temperature,
			J:           s.J,
			H:           s.H,
		}, rng)
		if err != nil {
			return Point{}, err
		}

		if s.BurnIn > 0 {
			if _, err := m.Simulate(ctx, s.BurnIn); err != nil {
				return Point{}, err
			}
		}

		absMag := metrics.NewMeanAbsMagnetization()
		chi := metrics.NewSusceptibility(s.Size, temperature)
		heat := metrics.NewSpecificHeat(s.Size, temperature)
		binder := metrics.NewBinderCumulant()
		accept := metrics.NewAcceptanceRate()
		for _, mt := range []ising.Metric{absMag, chi, heat, binder, accept} {
			m.AddMetric(mt)
		}

		if _, err := m.Simulate(ctx, s.Steps); err != nil {
			return Point{}, err
		}

		point.MeanAbsMag += absMag.Value()
		point.Susceptibility += chi.Value()
		point.SpecificHeat += heat.Value()
		point.BinderCumulant += binder.Value()
		point.AcceptanceRate += accept.Value()
	}

	n := float64(s.Replicas)
	point.MeanAbsMag /= n
	point.Susceptibility /= n
	point.SpecificHeat /= n
	point.BinderCumulant /= n
	point.AcceptanceRate /= n
	return point, nil
}

// EstimateCritical returns the temperature of the susceptibility peak,
// the standard finite-lattice estimate of the transition point.
func EstimateCritical(points []Point) (float64, error) {
	if len(points) == 0 {
		return 0, fmt.Errorf("%w: no sweep points", ising.ErrInvalidParameter)
	}
	best := 0
	for i, p := range points {
		if p.Susceptibility > points[best].Susceptibility {
			best = i
		}
	}
	return points[best].Temperature, nil
}

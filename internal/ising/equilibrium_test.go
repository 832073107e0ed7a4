package ising_test

import (
	"context"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/isinglab/internal/ising"
)

// tailMeanAbsM averages |m| over the last tail points of a run.
func tailMeanAbsM(result *ising.Result, tail int) float64 {
	n := len(result.Magnetizations)
	sum := 0.0
	for _, m := range result.Magnetizations[n-tail:] {
		sum += math.Abs(m)
	}
	return sum / float64(tail)
}

var _ = Describe("Metropolis equilibration", func() {
	ctx := context.Background()

	Describe("well below the critical temperature", func() {
		It("reaches a high-magnetization plateau from a random start", func() {
			// T=1.5 is far under T_c ≈ 2.27; the 4×4 lattice orders
			// within a few thousand sweeps for any seed.
			total := 0.0
			seeds := []int64{1, 2, 3, 4, 5}
			for _, seed := range seeds {
				m, err := ising.New(ising.Params{Size: 4, Temperature: 1.5, J: 1.0},
					rand.New(rand.NewSource(seed)))
				Expect(err).NotTo(HaveOccurred())

				result, err := m.Simulate(ctx, 50000)
				Expect(err).NotTo(HaveOccurred())
				total += tailMeanAbsM(result, 5000)
			}
			Expect(total / float64(len(seeds))).To(BeNumerically(">", 0.7))
		})
	})

	Describe("well above the critical temperature", func() {
		It("stays disordered", func() {
			m, err := ising.New(ising.Params{Size: 8, Temperature: 10, J: 1.0},
				rand.New(rand.NewSource(6)))
			Expect(err).NotTo(HaveOccurred())

			result, err := m.Simulate(ctx, 50000)
			Expect(err).NotTo(HaveOccurred())
			Expect(tailMeanAbsM(result, 5000)).To(BeNumerically("<", 0.35))
		})

		It("accepts most proposed flips", func() {
			m, err := ising.New(ising.Params{Size: 8, Temperature: 100, J: 1.0},
				rand.New(rand.NewSource(7)))
			Expect(err).NotTo(HaveOccurred())

			result, err := m.Simulate(ctx, 20000)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.AcceptanceRate()).To(BeNumerically(">", 0.9))
		})
	})

	Describe("under an external field", func() {
		It("aligns the lattice with the field sign", func() {
			m, err := ising.New(ising.Params{Size: 8, Temperature: 1.5, J: 1.0, H: 1.0},
				rand.New(rand.NewSource(8)))
			Expect(err).NotTo(HaveOccurred())

			result, err := m.Simulate(ctx, 100000)
			Expect(err).NotTo(HaveOccurred())

			n := len(result.Magnetizations)
			sum := 0.0
			for _, mag := range result.Magnetizations[n-5000:] {
				sum += mag
			}
			Expect(sum / 5000).To(BeNumerically(">", 0.8))
		})
	})

	Describe("energy bounds", func() {
		It("never leaves the physical range", func() {
			m, err := ising.New(ising.Params{Size: 6, Temperature: 2.269, J: 1.0},
				rand.New(rand.NewSource(9)))
			Expect(err).NotTo(HaveOccurred())

			result, err := m.Simulate(ctx, 10000)
			Expect(err).NotTo(HaveOccurred())

			// |E| ≤ 2·J·N² for h=0 with each bond counted once.
			bound := 2.0 * 36
			for _, e := range result.Energies {
				Expect(math.Abs(e)).To(BeNumerically("<=", bound+1e-9))
			}
		})
	})
})

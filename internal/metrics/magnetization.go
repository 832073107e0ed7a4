package metrics

import "math"

// MeanAbsMagnetization averages |m| over the observed steps. The
// absolute value keeps the two ordered phases from cancelling when the
// lattice tunnels between them.
type MeanAbsMagnetization struct {
	name    string
	sum     float64
	samples int
}

func NewMeanAbsMagnetization() *MeanAbsMagnetization {
	return &MeanAbsMagnetization{name: "mean_abs_magnetization"}
}

func (m *MeanAbsMagnetization) Name() string { return m.name }

func (m *MeanAbsMagnetization) Observe(step int, energy, magnetization float64, accepted bool) {
	m.sum += math.Abs(magnetization)
	m.samples++
}

func (m *MeanAbsMagnetization) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanAbsMagnetization) Reset() {
	m.sum = 0
	m.samples = 0
}

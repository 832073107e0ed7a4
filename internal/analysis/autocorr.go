package analysis

// Mean returns the arithmetic mean of data, or 0 for an empty series.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// Variance returns the population variance of data.
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := Mean(data)
	sum := 0.0
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(data))
}

// Autocorrelation returns the normalized autocorrelation function of
// data up to maxLag, so that the zero-lag value is 1. A constant
// series has undefined correlations; it returns nil.
func Autocorrelation(data []float64, maxLag int) []float64 {
	n := len(data)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := Mean(data)
	variance := Variance(data)
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i < n-lag; i++ {
			sum += (data[i] - mean) * (data[i+lag] - mean)
		}
		acf[lag] = sum / (float64(n-lag) * variance)
	}
	return acf
}

// IntegratedAutocorrelationTime estimates τ = 1/2 + Σ ρ(t), summing
// the autocorrelation function until it first drops below zero. The
// cutoff keeps the noisy tail from dominating the estimate. Returns
// 0.5 for series too short or too flat to measure.
func IntegratedAutocorrelationTime(data []float64) float64 {
	acf := Autocorrelation(data, len(data)/2)
	if acf == nil {
		return 0.5
	}

	tau := 0.5
	for _, rho := range acf[1:] {
		if rho < 0 {
			break
		}
		tau += rho
	}
	return tau
}

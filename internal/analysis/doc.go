// Package analysis provides time-series analysis for simulation runs.
//
// The package characterizes recorded energy and magnetization series:
//
//   - [PowerSpectrum]: frequency content via a radix-2 FFT
//   - [Autocorrelation]: normalized autocorrelation function
//   - [IntegratedAutocorrelationTime]: effective correlation time τ
//   - [Mean], [Variance]: series moments
//
// # Correlation Time
//
// Successive Metropolis steps are strongly correlated; τ tells how many
// steps apart samples must be to count as independent:
//
//	tau := analysis.IntegratedAutocorrelationTime(result.Magnetizations)
//	effective := float64(len(result.Magnetizations)) / (2 * tau)
package analysis

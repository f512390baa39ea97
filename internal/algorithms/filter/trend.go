package filter

import (
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// LinearDetrend subtracts a line fitted to the flat baseline that precedes the first
// steep rise of the smoothed force derivative.
type LinearDetrend struct{}

// Info implements registry.Algorithm.
func (LinearDetrend) Info() domain.AlgorithmInfo {
	return info("lineardetrend", "Removes the linear baseline trend",
		param("smoothing_window", domain.ParamInt, "Window size for Savitzky-Golay filter (odd)", 51),
		param("threshold", domain.ParamFloat, "Derivative threshold marking the end of the baseline", 1e-12),
	)
}

// Apply implements registry.Filter.
func (LinearDetrend) Apply(z, f []float64, p domain.Params) []float64 {
	n := len(f)
	if n == 0 || len(z) != n {
		return unchanged(f)
	}
	win := numeric.OddWindow(max(5, min(p.Int("smoothing_window"), n-1)))
	dy, err := numeric.Savgol(f, win, 3, 1, 1)
	if err != nil {
		return unchanged(f)
	}

	threshold := p.Float("threshold")
	j := n - 1
	for i, d := range dy {
		if d > threshold {
			j = i
			break
		}
	}
	// The baseline ends just after the last falling derivative sample before j.
	k := 0
	for i := j - 1; i >= 0; i-- {
		if dy[i] < 0 {
			k = i + 1
			break
		}
	}
	if k < 2 {
		return unchanged(f)
	}
	line, err := numeric.Polyfit(z[:k], f[:k], 1)
	if err != nil {
		return unchanged(f)
	}
	out := make([]float64, n)
	for i := range f {
		out[i] = f[i] - numeric.Polyval(line, z[i])
	}
	return out
}

// Polytrend subtracts a polynomial baseline fitted to the samples up to the last one
// below a force percentile.
type Polytrend struct{}

// Info implements registry.Algorithm.
func (Polytrend) Info() domain.AlgorithmInfo {
	return info("polytrend", "Removes a polynomial baseline",
		param("percentile", domain.ParamInt, "Percentile threshold for baseline detection (1-99)", 90),
		param("degree", domain.ParamInt, "Polynomial degree for baseline fitting (2-6)", 2),
	)
}

// Apply implements registry.Filter.
func (Polytrend) Apply(z, f []float64, p domain.Params) []float64 {
	n := len(f)
	if n == 0 || len(z) != n {
		return unchanged(f)
	}
	pct := min(max(p.Float("percentile"), 1), 99)
	threshold := numeric.Percentile(f, pct)
	last := n - 1
	for i := n - 1; i >= 0; i-- {
		if f[i] <= threshold {
			last = i
			break
		}
	}
	zfit, ffit := z[:last+1], f[:last+1]
	degree := min(max(p.Int("degree"), 2), min(6, len(zfit)-1))
	if degree < 1 {
		return unchanged(f)
	}
	coeff, err := numeric.Polyfit(zfit, ffit, degree)
	if err != nil {
		return unchanged(f)
	}
	out := make([]float64, n)
	for i := range f {
		out[i] = f[i] - numeric.Polyval(coeff, z[i])
	}
	return out
}

package cpoint

import (
	"gonum.org/v1/gonum/floats"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// RoV picks the sample where the force variance ahead of it grows most relative to the
// variance behind it.
type RoV struct{}

// Info implements registry.Algorithm.
func (RoV) Info() domain.AlgorithmInfo {
	return info("rov", "Ratio of variances",
		float("safe_threshold", "Force threshold [nN]", 10),
		positive(float("x_range", "X range [nm]", 1000)),
		positive(float("windowRov", "Window size for variance ratio [nm]", 200)),
	)
}

// Detect implements registry.Detector.
func (RoV) Detect(z, f []float64, p domain.Params, _ domain.Metadata) (domain.ContactPoint, bool) {
	if !usable(z, f) {
		return domain.ContactPoint{}, false
	}
	n := len(z)
	jmin, jmax := searchRange(z, f, p.Float("safe_threshold"), p.Float("x_range"))
	dx := numeric.Step(z)
	if dx <= 0 {
		return domain.ContactPoint{}, false
	}
	win := int(p.Float("windowRov") * nano / dx)
	if win < 1 {
		return domain.ContactPoint{}, false
	}
	if n-jmax < win {
		jmax = n - 1 - win
	}
	jmin = max(jmin, win)
	if jmax <= jmin {
		return domain.ContactPoint{}, false
	}

	ratio := make([]float64, jmax-jmin)
	for j := jmin; j < jmax; j++ {
		past := numeric.Variance(f[j-win : j])
		if past == 0 {
			continue
		}
		ratio[j-jmin] = numeric.Variance(f[j+1:j+1+win]) / past
	}
	best := jmin + floats.MaxIdx(ratio)
	return point(z, f, numeric.Nearest(z, z[best]))
}

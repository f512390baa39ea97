package cpoint

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// Gof slides a fixed-width window over the approach and keeps the start whose
// force-indentation pair is best described by a Hertzian 3/2 power law.
type Gof struct{}

// Info implements registry.Algorithm.
func (Gof) Info() domain.AlgorithmInfo {
	return info("gof", "Goodness of fit of a 3/2 power law",
		positive(float("fitwindow", "Window size for indentation fit [nm]", 200)),
		percent(float("maxf", "Percentage of force range for threshold [%]", 50)),
		percent(float("minx", "Percentage of x range for threshold [%]", 50)),
	)
}

// Detect implements registry.Detector.
func (Gof) Detect(z, f []float64, p domain.Params, _ domain.Metadata) (domain.ContactPoint, bool) {
	if !usable(z, f) {
		return domain.ContactPoint{}, false
	}
	n := len(z)
	dx := numeric.Step(z)
	if dx <= 0 {
		return domain.ContactPoint{}, false
	}
	window := int(p.Float("fitwindow") * nano / dx)

	zmin, zmax := floats.Min(z), floats.Max(z)
	fmin, fmax := floats.Min(f), floats.Max(f)
	fthr := fmin + (fmax-fmin)*p.Float("maxf")/100
	xthr := zmin + (zmax-zmin)*p.Float("minx")/100

	jmin := numeric.SearchSorted(z, xthr)
	jmax := firstAtLeast(f, fthr)
	jmax = min(max(jmax, jmin+1), n)
	if jmax <= jmin {
		return domain.ContactPoint{}, false
	}

	best, bestR2 := -1, 0.0
	for j := jmin; j < jmax; j++ {
		r2 := powerLawR2(z, f, j, window)
		if r2 > bestR2 {
			best, bestR2 = j, r2
		}
	}
	if best < 0 {
		return domain.ContactPoint{}, false
	}
	return point(z, f, best)
}

// firstAtLeast returns the first index with f[i] >= v, or len(f).
func firstAtLeast(f []float64, v float64) int {
	for i, fi := range f {
		if fi >= v {
			return i
		}
	}
	return len(f)
}

// powerLawR2 regresses force^(2/3) on indentation over the window starting at j,
// with a unit spring constant. It returns 0 when the fit is undefined.
func powerLawR2(z, f []float64, j, window int) float64 {
	end := min(j+window, len(z))
	if end-j < 2 {
		return 0
	}
	delta := make([]float64, end-j)
	lin := make([]float64, end-j)
	for i := j; i < end; i++ {
		force := f[i] - f[j]
		delta[i-j] = (z[i] - z[j]) - force
		lin[i-j] = math.Cbrt(force * force)
	}
	_, _, r2, err := numeric.LinRegress(delta, lin)
	if err != nil || !numeric.Finite(r2) {
		return 0
	}
	return r2
}

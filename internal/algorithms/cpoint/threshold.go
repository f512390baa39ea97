package cpoint

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// Threshold walks left from a force threshold to the last upward crossing of the baseline.
type Threshold struct{}

// Info implements registry.Algorithm.
func (Threshold) Info() domain.AlgorithmInfo {
	return info("threshold", "Baseline crossing left of a force threshold",
		float("starting_threshold", "Starting force threshold [nN]", 2),
		percent(float("min_x", "Baseline start as percentage of x range [%]", 1)),
		percent(float("max_x", "Baseline end as percentage of x range [%]", 60)),
		float("force_offset", "Offset above the baseline [pN]", 0),
	)
}

// Detect implements registry.Detector.
func (Threshold) Detect(z, f []float64, p domain.Params, _ domain.Metadata) (domain.ContactPoint, bool) {
	if !usable(z, f) {
		return domain.ContactPoint{}, false
	}
	yth := p.Float("starting_threshold") * nano
	offset := p.Float("force_offset") * pico
	fmin := floats.Min(f)
	if yth < fmin || fmin+offset >= yth {
		return domain.ContactPoint{}, false
	}
	jstart := numeric.Nearest(f, yth)

	zmin, zmax := floats.Min(z), floats.Max(z)
	imin := numeric.Nearest(z, zmin+(zmax-zmin)*p.Float("min_x")/100)
	imax := numeric.Nearest(z, zmin+(zmax-zmin)*p.Float("max_x")/100)
	level := math.NaN()
	if imin < imax {
		level = numeric.Mean(f[imin:imax]) + offset
	}

	for j := jstart; j >= 1; j-- {
		if f[j] > level && f[j-1] <= level {
			return point(z, f, j)
		}
	}
	return point(z, f, 0)
}

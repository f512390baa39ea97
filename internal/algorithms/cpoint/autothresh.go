package cpoint

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// Autothresh detrends the force by a line fitted to the pre-contact range and picks the
// lowest positive level the residual crosses upward exactly once.
type Autothresh struct{}

// Info implements registry.Algorithm.
func (Autothresh) Info() domain.AlgorithmInfo {
	return info("autothresh", "Automatic threshold on the detrended force",
		positive(float("zeroRange", "Zero range offset [nm]", 500)),
	)
}

// Detect implements registry.Detector.
func (Autothresh) Detect(z, f []float64, p domain.Params, _ domain.Metadata) (domain.ContactPoint, bool) {
	if !usable(z, f) {
		return domain.ContactPoint{}, false
	}
	n := len(z)
	jtarget := numeric.Nearest(z, floats.Min(z)+p.Float("zeroRange")*nano)
	if jtarget <= 0 {
		return domain.ContactPoint{}, false
	}

	xlin, ylin := z[:jtarget], f[:jtarget]
	if !numeric.Increasing(z) {
		xlin, ylin = z[jtarget:], f[jtarget:]
	}
	line, err := numeric.Polyfit(xlin, ylin, 1)
	if err != nil {
		return domain.ContactPoint{}, false
	}

	work := make([]float64, n)
	for i := range work {
		work[i] = f[i] - numeric.Polyval(line, z[i])
	}
	mids := make([]float64, n-1)
	for i := range mids {
		mids[i] = (work[i+1] + work[i]) / 2
	}

	level, ok := singleCrossingLevel(work, mids)
	if !ok {
		return domain.ContactPoint{}, false
	}
	return point(z, f, numeric.Nearest(mids, level)+1)
}

// singleCrossingLevel returns the smallest positive midpoint that work crosses upward
// exactly once. A rise from a to b crosses every level strictly between them.
func singleCrossingLevel(work, mids []float64) (float64, bool) {
	var starts, ends []float64
	for i := 0; i+1 < len(work); i++ {
		if work[i] < work[i+1] {
			starts = append(starts, work[i])
			ends = append(ends, work[i+1])
		}
	}
	slices.Sort(starts)
	slices.Sort(ends)

	levels := slices.Clone(mids)
	slices.Sort(levels)
	levels = slices.Compact(levels)

	for _, m := range levels {
		if !(m > 0) {
			continue
		}
		below := sort.SearchFloat64s(starts, m)
		passed := sort.Search(len(ends), func(i int) bool { return ends[i] > m })
		if below-passed == 1 {
			return m, true
		}
	}
	return 0, false
}

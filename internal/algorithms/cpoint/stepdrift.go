package cpoint

import (
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// StepDrift locates the first steep rise of the smoothed force derivative and walks back
// to where the slope last sat below a drift threshold.
type StepDrift struct{}

// Info implements registry.Algorithm.
func (StepDrift) Info() domain.AlgorithmInfo {
	return info("stepdrift", "Step and drift on the smoothed force derivative",
		domain.ParamSpec{Name: "window", Type: domain.ParamInt, Description: "Smoothing window [samples]", Default: 21, Min: domain.Bound(3)},
		positive(float("threshold", "Step threshold [pN per sample]", 10)),
		positive(float("thratio", "Drift threshold as percentage of the step threshold [%]", 25)),
	)
}

// Detect implements registry.Detector.
func (StepDrift) Detect(z, f []float64, p domain.Params, _ domain.Metadata) (domain.ContactPoint, bool) {
	if !usable(z, f) {
		return domain.ContactPoint{}, false
	}
	dy, err := numeric.Savgol(f, numeric.OddWindow(p.Int("window")), 3, 1, 1)
	if err != nil {
		return domain.ContactPoint{}, false
	}
	threshold := p.Float("threshold")
	step := threshold * pico
	drift := p.Float("thratio") * threshold / 1e14

	j := -1
	for i, d := range dy {
		if d > step {
			j = i
			break
		}
	}
	if j < 0 {
		return point(z, f, 0)
	}
	k := j
	for i := j; i >= 0; i-- {
		if dy[i] < drift {
			k = i
			break
		}
	}
	return point(z, f, k)
}

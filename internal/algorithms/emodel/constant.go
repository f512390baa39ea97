package emodel

import (
	"gonum.org/v1/gonum/floats"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// Constant reports the average modulus. Fits E [Pa].
type Constant struct{}

// Info implements registry.Algorithm.
func (Constant) Info() domain.AlgorithmInfo {
	return info("constant", "Average modulus. Fits E [Pa]")
}

// Fit implements registry.ElasticModel.
func (Constant) Fit(s domain.ElasticitySpectrum, p domain.Params, _ domain.Metadata) (domain.FitResult, bool) {
	x, y := window(s, p)
	if len(y) == 0 {
		return domain.FitResult{}, false
	}
	return result(constant, x, y, []float64{numeric.Mean(y)})
}

// LineMax summarizes the spectrum by its average, median, upper and lower moduli.
// The fitted curve is the average.
type LineMax struct{}

// Info implements registry.Algorithm.
func (LineMax) Info() domain.AlgorithmInfo {
	return info("linemax", "Average, median, max and min modulus [Pa]",
		domain.ParamSpec{Name: "Smooth", Type: domain.ParamInt, Description: "Upper percentile threshold", Default: 100, Min: domain.Bound(60), Max: domain.Bound(100)},
		domain.ParamSpec{Name: "Lower", Type: domain.ParamInt, Description: "Lower percentile threshold", Default: 10, Min: domain.Bound(5), Max: domain.Bound(50)},
	)
}

// Fit implements registry.ElasticModel.
func (LineMax) Fit(s domain.ElasticitySpectrum, p domain.Params, _ domain.Metadata) (domain.FitResult, bool) {
	x, y := window(s, p)
	if len(y) < 2 {
		return domain.FitResult{}, false
	}

	upper := floats.Max(y)
	if pct := p.Float("Smooth"); pct < 100 {
		upperTh := numeric.Percentile(y, pct)
		upper = meanWhere(y, func(v float64) bool { return v > upperTh })
	}
	lowerTh := numeric.Percentile(y, p.Float("Lower"))
	lower := meanWhere(y, func(v float64) bool { return v < lowerTh })

	return result(constant, x, y, []float64{numeric.Mean(y), numeric.Median(y), upper, lower})
}

// meanWhere averages the samples accepted by keep. It is NaN when none are.
func meanWhere(y []float64, keep func(float64) bool) float64 {
	var sel []float64
	for _, v := range y {
		if keep(v) {
			sel = append(sel, v)
		}
	}
	return numeric.Mean(sel)
}

package emodel

import (
	"math"

	"go.trai.ch/nanoindent/internal/core/domain"
)

// Bilayer describes a stiff cortex of thickness d over a softer bulk. Fits E0 [Pa],
// Eb [Pa] and d [nm].
type Bilayer struct{}

// Info implements registry.Algorithm.
func (Bilayer) Info() domain.AlgorithmInfo {
	return info("bilayer", "Cortex over bulk. Fits E0 [Pa], Eb [Pa] and d [nm]",
		domain.ParamSpec{Name: "Lambda", Type: domain.ParamFloat, Description: "Lambda coefficient", Default: 1.74, Min: domain.Bound(1), Max: domain.Bound(2)},
	)
}

// Fit implements registry.ElasticModel.
func (Bilayer) Fit(s domain.ElasticitySpectrum, p domain.Params, meta domain.Metadata) (domain.FitResult, bool) {
	x, y := window(s, p)
	if len(x) < 3 {
		return domain.FitResult{}, false
	}
	lambda := p.Float("Lambda")
	radius := meta.TipRadius
	model := func(x float64, q []float64) float64 {
		e0, eb, d := q[0], q[1], q[2]*nano
		phi := math.Exp(-lambda * math.Sqrt(radius*math.Abs(x)) / d)
		return eb + (e0-eb)*phi
	}
	return curveFit(model, x, y, []float64{1e5, 1e3, 1e3})
}

package emodel

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"go.trai.ch/nanoindent/internal/core/domain"
)

// Sigmoid is a logistic step from EL to EH centred at depth T with width k.
// Fits EH [Pa], EL [Pa], T [m] and k [m].
type Sigmoid struct{}

// Info implements registry.Algorithm.
func (Sigmoid) Info() domain.AlgorithmInfo {
	return info("sigmoid", "Logistic transition. Fits EH [Pa], EL [Pa], T [m] and k [m]")
}

// Fit implements registry.ElasticModel.
func (Sigmoid) Fit(s domain.ElasticitySpectrum, p domain.Params, _ domain.Metadata) (domain.FitResult, bool) {
	x, y := window(s, p)
	if len(x) < 5 {
		return domain.FitResult{}, false
	}
	model := func(x float64, q []float64) float64 {
		eh, el, t, k := q[0], q[1], q[2], q[3]
		return el + (eh-el)/(1+math.Exp(-4*(x-t)/k))
	}
	xmin, xmax := floats.Min(x), floats.Max(x)
	seeds := []float64{floats.Max(y), floats.Min(y), (xmin + xmax) / 2, (xmax - xmin) / 4}
	if seeds[3] == 0 {
		return domain.FitResult{}, false
	}
	return curveFit(model, x, y, seeds)
}

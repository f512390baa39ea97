// Package emodel fits depth profiles to elasticity spectra.
package emodel

import (
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
	"go.trai.ch/nanoindent/internal/registry"
)

const nano = 1e-9

// All returns every elastic model.
func All() []registry.Algorithm {
	return []registry.Algorithm{
		Constant{},
		Bilayer{},
		Sigmoid{},
		LineMax{},
	}
}

func info(name, description string, params ...domain.ParamSpec) domain.AlgorithmInfo {
	params = append(params,
		domain.ParamSpec{Name: "minInd", Type: domain.ParamFloat, Description: "Min indentation [nm]", Default: 0},
		domain.ParamSpec{Name: "maxInd", Type: domain.ParamFloat, Description: "Max indentation [nm]", Default: 800},
	)
	return domain.AlgorithmInfo{
		Name:        name,
		Family:      domain.FamilyElasticModel,
		Description: description,
		Params:      params,
	}
}

// window restricts the spectrum to the configured depth range.
func window(s domain.ElasticitySpectrum, p domain.Params) (x, y []float64) {
	return numeric.Between(s.Ze, s.Ee, p.Float("minInd")*nano, p.Float("maxInd")*nano)
}

// result evaluates model with params over x. Non-finite parameters yield no result.
func result(model numeric.Model, x, y, params []float64) (domain.FitResult, bool) {
	if !numeric.Finite(params...) {
		return domain.FitResult{}, false
	}
	out := domain.FitResult{
		Params: params,
		X:      numeric.Clone(x),
		Y:      make([]float64, len(x)),
	}
	for i, xi := range x {
		out.Y[i] = model(xi, params)
	}
	out.R2 = numeric.RSquared(out.Y, y)
	return out, true
}

// curveFit runs a nonlinear fit and evaluates the result. Failures yield no result.
func curveFit(model numeric.Model, x, y, seeds []float64) (domain.FitResult, bool) {
	res, err := numeric.CurveFit(model, x, y, seeds, numeric.DefaultFitOptions())
	if err != nil {
		return domain.FitResult{}, false
	}
	return result(model, x, y, res.Params)
}

func constant(_ float64, p []float64) float64 { return p[0] }

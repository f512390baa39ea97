// Package fmodel fits contact-mechanics laws to force-indentation curves.
package fmodel

import (
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
	"go.trai.ch/nanoindent/internal/registry"
)

const (
	nano = 1e-9
	// minPoints is the number of samples a fit domain must exceed.
	minPoints = 5
	// seedModulus is the starting Young's modulus of every fit [Pa].
	seedModulus = 1000.0
)

// All returns every force model.
func All() []registry.Algorithm {
	return []registry.Algorithm{
		Hertz{},
		HertzEffective{},
		DriftedHertz{},
	}
}

func info(name, description string, params ...domain.ParamSpec) domain.AlgorithmInfo {
	params = append(params,
		domain.ParamSpec{Name: "minInd", Type: domain.ParamFloat, Description: "Min indentation [nm]", Default: 0},
		domain.ParamSpec{Name: "maxInd", Type: domain.ParamFloat, Description: "Max indentation [nm]", Default: 800},
	)
	return domain.AlgorithmInfo{
		Name:        name,
		Family:      domain.FamilyForceModel,
		Description: description,
		Params:      params,
	}
}

func poisson() domain.ParamSpec {
	return domain.ParamSpec{
		Name:        "poisson",
		Type:        domain.ParamFloat,
		Description: "Poisson ratio",
		Default:     0.5,
		Min:         domain.Bound(-1),
		Max:         domain.Bound(0.5),
	}
}

// fit restricts the curve to the configured depth range and fits model from seeds.
// The modulus, always the first parameter, must come out non-negative.
func fit(c domain.IndentationCurve, p domain.Params, model numeric.Model, seeds []float64) (domain.FitResult, bool) {
	x, y := numeric.Between(c.Zi, c.Fi, p.Float("minInd")*nano, p.Float("maxInd")*nano)
	if len(x) <= minPoints {
		return domain.FitResult{}, false
	}
	res, err := numeric.CurveFit(model, x, y, seeds, numeric.DefaultFitOptions())
	if err != nil || res.Params[0] < 0 || !numeric.Finite(res.R2) {
		return domain.FitResult{}, false
	}
	out := domain.FitResult{
		Params: res.Params,
		X:      numeric.Clone(x),
		Y:      make([]float64, len(x)),
		R2:     res.R2,
	}
	for i, xi := range x {
		out.Y[i] = model(xi, res.Params)
	}
	return out, true
}

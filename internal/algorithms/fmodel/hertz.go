package fmodel

import (
	"go.trai.ch/nanoindent/internal/algorithms/mechanics"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// Hertz fits the Young's modulus E for a given Poisson ratio.
type Hertz struct{}

// Info implements registry.Algorithm.
func (Hertz) Info() domain.AlgorithmInfo {
	return info("hertz", "Hertz contact mechanics. Fits E [Pa]", poisson())
}

// Fit implements registry.ForceModel.
func (Hertz) Fit(c domain.IndentationCurve, p domain.Params, meta domain.Metadata) (domain.FitResult, bool) {
	law, ok := mechanics.ContactLaw(meta)
	if !ok {
		return domain.FitResult{}, false
	}
	nu := p.Float("poisson")
	var model numeric.Model = func(x float64, q []float64) float64 {
		return law(x, q[0]/(1-nu*nu))
	}
	return fit(c, p, model, []float64{seedModulus})
}

// HertzEffective fits the effective modulus E/(1-ν²) directly.
type HertzEffective struct{}

// Info implements registry.Algorithm.
func (HertzEffective) Info() domain.AlgorithmInfo {
	return info("hertzeffective", "Hertz contact mechanics. Fits E_eff [Pa]")
}

// Fit implements registry.ForceModel.
func (HertzEffective) Fit(c domain.IndentationCurve, p domain.Params, meta domain.Metadata) (domain.FitResult, bool) {
	law, ok := mechanics.ContactLaw(meta)
	if !ok {
		return domain.FitResult{}, false
	}
	var model numeric.Model = func(x float64, q []float64) float64 {
		return law(x, q[0])
	}
	return fit(c, p, model, []float64{seedModulus})
}

// DriftedHertz adds a linear drift m·x to the Hertz law. Fits E [Pa] and m [N/m].
type DriftedHertz struct{}

// Info implements registry.Algorithm.
func (DriftedHertz) Info() domain.AlgorithmInfo {
	return info("driftedhertz", "Hertz contact mechanics with linear drift. Fits E [Pa] and m [N/m]", poisson())
}

// Fit implements registry.ForceModel.
func (DriftedHertz) Fit(c domain.IndentationCurve, p domain.Params, meta domain.Metadata) (domain.FitResult, bool) {
	law, ok := mechanics.ContactLaw(meta)
	if !ok {
		return domain.FitResult{}, false
	}
	nu := p.Float("poisson")
	var model numeric.Model = func(x float64, q []float64) float64 {
		return q[1]*x + law(x, q[0]/(1-nu*nu))
	}
	return fit(c, p, model, []float64{seedModulus, 1})
}

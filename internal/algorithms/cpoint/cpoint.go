// Package cpoint implements the contact-point detectors.
//
// Positions are in metres and forces in newtons. Parameters are declared in the
// units a user types (nm, nN, pN, %) and converted on use.
package cpoint

import (
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/registry"
)

const (
	nano = 1e-9
	pico = 1e-12
)

// All returns every detector.
func All() []registry.Algorithm {
	return []registry.Algorithm{
		Autothresh{},
		Gof{},
		GofSphere{},
		RoV{},
		StepDrift{},
		Threshold{},
	}
}

func info(name, description string, params ...domain.ParamSpec) domain.AlgorithmInfo {
	return domain.AlgorithmInfo{
		Name:        name,
		Family:      domain.FamilyContactPoint,
		Description: description,
		Params:      params,
	}
}

func float(name, description string, def float64) domain.ParamSpec {
	return domain.ParamSpec{Name: name, Type: domain.ParamFloat, Description: description, Default: def}
}

func positive(spec domain.ParamSpec) domain.ParamSpec {
	spec.Min = domain.Bound(0)
	return spec
}

func percent(spec domain.ParamSpec) domain.ParamSpec {
	spec.Min = domain.Bound(0)
	spec.Max = domain.Bound(100)
	return spec
}

func point(z, f []float64, j int) (domain.ContactPoint, bool) {
	if j < 0 || j >= len(z) {
		return domain.ContactPoint{}, false
	}
	return domain.ContactPoint{Z: z[j], F: f[j]}, true
}

func usable(z, f []float64) bool {
	return len(z) >= 2 && len(z) == len(f)
}

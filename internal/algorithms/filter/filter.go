// Package filter implements the pre-processing filters applied to the raw force.
//
// A filter never fails. When its input is too short or its parameters do not fit the
// data it returns an unmodified copy of the force.
package filter

import (
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
	"go.trai.ch/nanoindent/internal/registry"
)

// All returns every filter.
func All() []registry.Algorithm {
	return []registry.Algorithm{
		SavgolSmooth{},
		Median{},
		LinearDetrend{},
		Polytrend{},
		Notch{},
		Prominence{},
	}
}

func info(name, description string, params ...domain.ParamSpec) domain.AlgorithmInfo {
	return domain.AlgorithmInfo{
		Name:        name,
		Family:      domain.FamilyFilter,
		Description: description,
		Params:      params,
	}
}

func param(name string, typ domain.ParamType, description string, def float64) domain.ParamSpec {
	return domain.ParamSpec{Name: name, Type: typ, Description: description, Default: def}
}

func unchanged(f []float64) []float64 {
	return numeric.Clone(f)
}

// Package algorithms assembles the built-in filters, detectors and models into a registry.
package algorithms

import (
	"go.trai.ch/nanoindent/internal/algorithms/cpoint"
	"go.trai.ch/nanoindent/internal/algorithms/emodel"
	"go.trai.ch/nanoindent/internal/algorithms/filter"
	"go.trai.ch/nanoindent/internal/algorithms/fmodel"
	"go.trai.ch/nanoindent/internal/registry"
)

// NewRegistry returns a registry holding every built-in algorithm.
func NewRegistry() *registry.Registry {
	r := registry.New()
	r.MustRegister(filter.All()...)
	r.MustRegister(cpoint.All()...)
	r.MustRegister(fmodel.All()...)
	r.MustRegister(emodel.All()...)
	return r
}

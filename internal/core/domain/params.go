package domain

import (
	"math"
	"strconv"
	"strings"
)

// Family groups algorithms that are interchangeable at one pipeline stage.
type Family string

const (
	// FamilyFilter holds pre-processing filters applied to the raw force.
	FamilyFilter Family = "filter"
	// FamilyContactPoint holds contact-point detectors.
	FamilyContactPoint Family = "cpoint"
	// FamilyForceModel holds models fitted to force-vs-indentation curves.
	FamilyForceModel Family = "fmodel"
	// FamilyElasticModel holds models fitted to elasticity spectra.
	FamilyElasticModel Family = "emodel"
)

// Families lists every family in pipeline order.
func Families() []Family {
	return []Family{FamilyFilter, FamilyContactPoint, FamilyForceModel, FamilyElasticModel}
}

// ParamType is the declared type of an algorithm parameter.
type ParamType string

const (
	// ParamInt is an integer parameter.
	ParamInt ParamType = "int"
	// ParamFloat is a floating point parameter.
	ParamFloat ParamType = "float"
	// ParamBool is a boolean parameter.
	ParamBool ParamType = "bool"
)

// ParamSpec declares one algorithm parameter. Declaration order is significant.
type ParamSpec struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description"`
	Default     float64   `json:"default"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
}

// Bound returns a pointer to v, for use in ParamSpec.Min and ParamSpec.Max.
func Bound(v float64) *float64 { return &v }

// Param is a resolved parameter value.
type Param struct {
	Name  string
	Type  ParamType
	Value float64
}

// Params is an ordered list of resolved parameter values.
type Params []Param

// Lookup returns the value named name.
func (p Params) Lookup(name string) (float64, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return 0, false
}

// Float returns the value named name, or NaN when it is absent.
func (p Params) Float(name string) float64 {
	if v, ok := p.Lookup(name); ok {
		return v
	}
	return math.NaN()
}

// Int returns the value named name truncated toward zero.
func (p Params) Int(name string) int {
	v, ok := p.Lookup(name)
	if !ok || math.IsNaN(v) {
		return 0
	}
	return int(v)
}

// Bool returns whether the value named name is non-zero.
func (p Params) Bool(name string) bool {
	v, ok := p.Lookup(name)
	return ok && v != 0
}

// Values returns the positional values in declared order.
func (p Params) Values() []float64 {
	out := make([]float64, len(p))
	for i, param := range p {
		out[i] = param.Value
	}
	return out
}

// Map returns the parameters keyed by name, typed as declared.
func (p Params) Map() map[string]any {
	out := make(map[string]any, len(p))
	for _, param := range p {
		switch param.Type {
		case ParamInt:
			out[param.Name] = int64(param.Value)
		case ParamBool:
			out[param.Name] = param.Value != 0
		default:
			out[param.Name] = param.Value
		}
	}
	return out
}

// String renders the parameters as name=value pairs in declared order.
func (p Params) String() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(param.Name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(param.Value, 'g', -1, 64))
	}
	return b.String()
}

// AlgorithmConfig selects an algorithm by name with optional parameter values.
type AlgorithmConfig struct {
	Name   string         `json:"name" validate:"required"`
	Params map[string]any `json:"params,omitempty"`
}

// AlgorithmInfo describes a registered algorithm.
type AlgorithmInfo struct {
	Name        string      `json:"name"`
	Family      Family      `json:"family"`
	Description string      `json:"description"`
	Params      []ParamSpec `json:"params"`
}

// Package registry maps algorithm names to implementations for every algorithm family.
package registry

import (
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cast"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/zerr"
)

// Algorithm is implemented by every registered algorithm.
type Algorithm interface {
	Info() domain.AlgorithmInfo
}

// Filter transforms the force array of a curve before contact detection.
type Filter interface {
	Algorithm
	Apply(z, f []float64, p domain.Params) []float64
}

// Detector locates the contact point of a curve. ok is false when none is found.
type Detector interface {
	Algorithm
	Detect(z, f []float64, p domain.Params, meta domain.Metadata) (cp domain.ContactPoint, ok bool)
}

// ForceModel fits a contact-mechanics law to an indentation curve.
type ForceModel interface {
	Algorithm
	Fit(c domain.IndentationCurve, p domain.Params, meta domain.Metadata) (domain.FitResult, bool)
}

// ElasticModel fits a depth profile to an elasticity spectrum.
type ElasticModel interface {
	Algorithm
	Fit(s domain.ElasticitySpectrum, p domain.Params, meta domain.Metadata) (domain.FitResult, bool)
}

// Handle is a resolved algorithm.
type Handle struct {
	info domain.AlgorithmInfo
	impl Algorithm
}

// Info describes the algorithm.
func (h Handle) Info() domain.AlgorithmInfo { return h.info }

// Name returns the registered lower-case name.
func (h Handle) Name() string { return h.info.Name }

// Impl returns the implementation.
func (h Handle) Impl() Algorithm { return h.impl }

// DefaultParams returns every declared parameter at its default, in declared order.
func (h Handle) DefaultParams() domain.Params {
	out := make(domain.Params, len(h.info.Params))
	for i, spec := range h.info.Params {
		out[i] = domain.Param{Name: spec.Name, Type: spec.Type, Value: spec.Default}
	}
	return out
}

// Bind resolves values against the declared parameters. Absent values take their default,
// unknown names are rejected and every value is coerced to its declared type and bounds.
// Names match case-insensitively, and two names for the same parameter are rejected.
func (h Handle) Bind(values map[string]any) (domain.Params, error) {
	out := h.DefaultParams()
	bound := make(map[int]struct{}, len(values))
	for name, raw := range values {
		i := slices.IndexFunc(h.info.Params, func(s domain.ParamSpec) bool {
			return strings.EqualFold(s.Name, name)
		})
		if i < 0 {
			err := zerr.With(zerr.Wrap(domain.ErrUnknownParameter, "bind parameters"), "algorithm", h.info.Name)
			return nil, zerr.With(err, "parameter", name)
		}
		if _, dup := bound[i]; dup {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidParameter, "parameter given twice"), "algorithm", h.info.Name)
			return nil, zerr.With(err, "parameter", h.info.Params[i].Name)
		}
		bound[i] = struct{}{}
		v, err := coerce(h.info.Params[i], raw)
		if err != nil {
			err = zerr.With(err, "algorithm", h.info.Name)
			return nil, zerr.With(err, "parameter", name)
		}
		out[i].Value = v
	}
	return out, nil
}

func coerce(spec domain.ParamSpec, raw any) (float64, error) {
	if raw == nil {
		return spec.Default, nil
	}
	var v float64
	switch spec.Type {
	case domain.ParamInt:
		i, err := cast.ToIntE(raw)
		if err != nil {
			return 0, zerr.Wrap(domain.ErrInvalidParameter, err.Error())
		}
		v = float64(i)
	case domain.ParamBool:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return 0, zerr.Wrap(domain.ErrInvalidParameter, err.Error())
		}
		if b {
			v = 1
		}
	default:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return 0, zerr.Wrap(domain.ErrInvalidParameter, err.Error())
		}
		v = f
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, zerr.Wrap(domain.ErrInvalidParameter, "value is not finite")
	}
	if spec.Min != nil && v < *spec.Min {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidParameter, "value below minimum"), "min", *spec.Min)
	}
	if spec.Max != nil && v > *spec.Max {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidParameter, "value above maximum"), "max", *spec.Max)
	}
	return v, nil
}

// Registry holds the algorithms of every family.
type Registry struct {
	mu       sync.RWMutex
	families map[domain.Family]map[string]Handle
}

// New returns an empty Registry.
func New() *Registry {
	r := &Registry{families: make(map[domain.Family]map[string]Handle)}
	for _, f := range domain.Families() {
		r.families[f] = make(map[string]Handle)
	}
	return r
}

// Register adds a under its lower-cased name. Registering a name twice keeps the first.
func (r *Registry) Register(a Algorithm) error {
	info := a.Info()
	info.Name = strings.ToLower(info.Name)
	if err := checkFamily(info.Family, a); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	algos, ok := r.families[info.Family]
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrUnknownFamily, "register"), "family", string(info.Family))
	}
	if _, exists := algos[info.Name]; exists {
		return nil
	}
	algos[info.Name] = Handle{info: info, impl: a}
	return nil
}

// MustRegister is Register for built-in algorithms.
func (r *Registry) MustRegister(algos ...Algorithm) {
	for _, a := range algos {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
}

func checkFamily(family domain.Family, a Algorithm) error {
	var ok bool
	switch family {
	case domain.FamilyFilter:
		_, ok = a.(Filter)
	case domain.FamilyContactPoint:
		_, ok = a.(Detector)
	case domain.FamilyForceModel:
		_, ok = a.(ForceModel)
	case domain.FamilyElasticModel:
		_, ok = a.(ElasticModel)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownFamily, "register"), "family", string(family))
	}
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrUnknownFamily, "implementation does not match family"), "family", string(family))
		return zerr.With(err, "algorithm", a.Info().Name)
	}
	return nil
}

// Resolve looks up name in family.
func (r *Registry) Resolve(family domain.Family, name string) (Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	algos, ok := r.families[family]
	if !ok {
		return Handle{}, zerr.With(zerr.Wrap(domain.ErrUnknownFamily, "resolve"), "family", string(family))
	}
	h, ok := algos[strings.ToLower(name)]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrUnknownAlgorithm, "resolve"), "family", string(family))
		return Handle{}, zerr.With(err, "algorithm", name)
	}
	return h, nil
}

// Names lists the algorithms of family in sorted order.
func (r *Registry) Names(family domain.Family) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.families[family]))
	for name := range r.families[family] {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Catalog describes every registered algorithm, by family then name.
func (r *Registry) Catalog() []domain.AlgorithmInfo {
	var out []domain.AlgorithmInfo
	for _, family := range domain.Families() {
		for _, name := range r.Names(family) {
			h, err := r.Resolve(family, name)
			if err != nil {
				continue
			}
			out = append(out, h.Info())
		}
	}
	return out
}

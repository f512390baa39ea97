package registry

import (
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/zerr"
)

// Selection is an algorithm resolved from a request together with its bound parameters.
type Selection[T Algorithm] struct {
	Name   string
	Impl   T
	Params domain.Params
}

// Select resolves cfg in family, binds its parameters and asserts the implementation type.
func Select[T Algorithm](r *Registry, family domain.Family, cfg domain.AlgorithmConfig) (Selection[T], error) {
	h, err := r.Resolve(family, cfg.Name)
	if err != nil {
		return Selection[T]{}, err
	}
	params, err := h.Bind(cfg.Params)
	if err != nil {
		return Selection[T]{}, err
	}
	impl, ok := h.Impl().(T)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrUnknownAlgorithm, "algorithm does not implement family"), "family", string(family))
		return Selection[T]{}, zerr.With(err, "algorithm", cfg.Name)
	}
	return Selection[T]{Name: h.Name(), Impl: impl, Params: params}, nil
}

// SelectAll resolves every entry of cfgs in order.
func SelectAll[T Algorithm](r *Registry, family domain.Family, cfgs []domain.AlgorithmConfig) ([]Selection[T], error) {
	out := make([]Selection[T], 0, len(cfgs))
	for _, cfg := range cfgs {
		s, err := Select[T](r, family, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

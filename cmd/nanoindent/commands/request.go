package commands

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/zerr"
)

// selectionFlags holds the algorithm and metadata flags shared by process and scan.
type selectionFlags struct {
	request     string
	filters     []string
	detector    string
	fmodels     []string
	emodels     []string
	noZeroForce bool
	geometry    string
	window      int
	order       int
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&s.request, "request", "r", "", "Read the request as JSON from a file, or - for stdin")
	f.StringArrayVar(&s.filters, "filter", nil, "Apply a filter, as name[:key=value,...] (repeatable, in order)")
	f.StringVar(&s.detector, "detector", "", "Contact point detector, as name[:key=value,...]")
	f.StringArrayVar(&s.fmodels, "fmodel", nil, "Fit a force model, as name[:key=value,...] (repeatable)")
	f.StringArrayVar(&s.emodels, "emodel", nil, "Fit an elastic model, as name[:key=value,...] (repeatable)")
	f.BoolVar(&s.noZeroForce, "no-zero-force", false, "Keep the force offset at the contact point")
	f.StringVar(&s.geometry, "tip-geometry", "", "Override the tip geometry of every curve")
	f.IntVar(&s.window, "window", 0, "Savitzky-Golay window of the elasticity spectrum")
	f.IntVar(&s.order, "order", -1, "Savitzky-Golay order of the elasticity spectrum")
}

// decode reads the request file into v, if one was given.
func (s *selectionFlags) decode(cmd *cobra.Command, v any) (bool, error) {
	if s.request == "" {
		return false, nil
	}
	var r io.Reader = cmd.InOrStdin()
	if s.request != "-" {
		f, err := os.Open(s.request) //nolint:gosec // path is provided by user
		if err != nil {
			return false, zerr.With(zerr.Wrap(err, "open request"), "path", s.request)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return false, zerr.Wrap(domain.ErrInvalidRequest, err.Error())
	}
	return true, nil
}

func (s *selectionFlags) selection() (domain.Filters, error) {
	var (
		out domain.Filters
		err error
	)
	if out.Regular, err = parseAlgorithms(s.filters); err != nil {
		return out, err
	}
	if s.detector != "" {
		if out.CPFilter, err = parseAlgorithms([]string{s.detector}); err != nil {
			return out, err
		}
	}
	if out.FModels, err = parseAlgorithms(s.fmodels); err != nil {
		return out, err
	}
	if out.EModels, err = parseAlgorithms(s.emodels); err != nil {
		return out, err
	}
	return out, nil
}

func (s *selectionFlags) zeroForce() *bool {
	if !s.noZeroForce {
		return nil
	}
	off := false
	return &off
}

func (s *selectionFlags) overrides() *domain.MetadataOverrides {
	if s.geometry == "" {
		return nil
	}
	geometry := s.geometry
	return &domain.MetadataOverrides{TipGeometry: &geometry}
}

func (s *selectionFlags) elasticity() *domain.ElasticitySettings {
	if s.window <= 0 && s.order < 0 {
		return nil
	}
	e := domain.DefaultElasticitySettings()
	if s.window > 0 {
		e.Window = s.window
	}
	if s.order >= 0 {
		e.Order = s.order
	}
	return &e
}

func parseAlgorithms(specs []string) (domain.Algorithms, error) {
	var out domain.Algorithms
	for _, spec := range specs {
		cfg, err := parseAlgorithm(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

// parseAlgorithm reads name[:key=value,...]. Values stay strings; the registry coerces them.
func parseAlgorithm(spec string) (domain.AlgorithmConfig, error) {
	name, rest, hasParams := strings.Cut(strings.TrimSpace(spec), ":")
	if name == "" {
		return domain.AlgorithmConfig{}, zerr.With(zerr.Wrap(domain.ErrInvalidRequest, "empty algorithm name"), "spec", spec)
	}
	cfg := domain.AlgorithmConfig{Name: name}
	if !hasParams || rest == "" {
		return cfg, nil
	}
	cfg.Params = make(map[string]any)
	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return domain.AlgorithmConfig{}, zerr.With(zerr.Wrap(domain.ErrInvalidRequest, "expected key=value"), "spec", spec)
		}
		cfg.Params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return cfg, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := cast.ToIntE(arg)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRequest, "curve id must be an integer"), "arg", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Package pipeline derives contact points, indentation curves and elasticity spectra for
// batches of curves, reusing cached results and computing only the misses.
package pipeline

import (
	"context"
	"runtime"
	"slices"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/nanoindent/internal/registry"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Pipeline = (*Executor)(nil)

// Config carries the collaborators and defaults of an Executor.
type Config struct {
	Curves    ports.CurveStore
	Cache     ports.CacheStore
	Hasher    ports.Hasher
	Registry  *registry.Registry
	Logger    ports.Logger
	Tracer    ports.Tracer
	Telemetry ports.Telemetry
	Metrics   *Metrics

	// Workers bounds per-stage parallelism. Zero uses one worker per CPU.
	Workers int
	// ChunkSize is the scan chunk size used when a scan request sets none.
	ChunkSize int
	// Elasticity is used when a request carries no spectrum settings.
	Elasticity domain.ElasticitySettings
	// Metadata fills in curve metadata that is missing or unusable.
	Metadata domain.Metadata
}

// Executor implements ports.Pipeline.
type Executor struct {
	curves    ports.CurveStore
	cache     ports.CacheStore
	hasher    ports.Hasher
	registry  *registry.Registry
	logger    ports.Logger
	tracer    ports.Tracer
	telemetry ports.Telemetry
	metrics   *Metrics
	validate  *validator.Validate

	workers    int
	chunkSize  int
	elasticity domain.ElasticitySettings
	metadata   domain.Metadata
}

// New creates an Executor. Telemetry may be nil; scans then record no progress vertices.
func New(cfg Config) *Executor {
	e := &Executor{
		curves:     cfg.Curves,
		cache:      cfg.Cache,
		hasher:     cfg.Hasher,
		registry:   cfg.Registry,
		logger:     cfg.Logger,
		tracer:     cfg.Tracer,
		telemetry:  cfg.Telemetry,
		metrics:    cfg.Metrics,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		workers:    cfg.Workers,
		chunkSize:  cfg.ChunkSize,
		elasticity: cfg.Elasticity,
		metadata:   cfg.Metadata,
	}
	if e.metrics == nil {
		e.metrics = NewMetrics()
	}
	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}
	if e.chunkSize <= 0 {
		e.chunkSize = domain.DefaultChunkSize
	}
	if e.elasticity.Window <= 0 {
		e.elasticity = domain.DefaultElasticitySettings()
	}
	e.metadata = e.metadata.WithDefaults(domain.DefaultMetadata())
	return e
}

// Metrics returns the executor's collectors.
func (e *Executor) Metrics() *Metrics {
	return e.metrics
}

// each runs fn for every index in [0, n) on the bounded worker pool.
func (e *Executor) each(ctx context.Context, n int, fn func(i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return g.Wait()
}

// plan is a request resolved against the registry.
type plan struct {
	filters    []registry.Selection[registry.Filter]
	detector   *registry.Selection[registry.Detector]
	fmodels    []registry.Selection[registry.ForceModel]
	emodels    []registry.Selection[registry.ElasticModel]
	overrides  *domain.MetadataOverrides
	elasticity domain.ElasticitySettings
	zeroForce  bool
	single     bool
}

func (e *Executor) resolve(req *domain.Request) (*plan, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, zerr.Wrap(domain.ErrInvalidRequest, err.Error())
	}
	return e.newPlan(req)
}

// newPlan resolves the algorithms of an already validated request.
func (e *Executor) newPlan(req *domain.Request) (*plan, error) {
	p := &plan{
		overrides:  req.MetadataOverrides,
		elasticity: e.elasticity,
		zeroForce:  req.ZeroForceEnabled(),
		single:     req.SingleMode(),
	}
	if req.Elasticity != nil {
		p.elasticity = *req.Elasticity
	}

	var err error
	if p.filters, err = registry.SelectAll[registry.Filter](e.registry, domain.FamilyFilter, req.Filters.Regular); err != nil {
		return nil, err
	}
	if cfg, ok := req.Filters.Detector(); ok {
		d, err := registry.Select[registry.Detector](e.registry, domain.FamilyContactPoint, cfg)
		if err != nil {
			return nil, err
		}
		p.detector = &d
	}
	if p.fmodels, err = registry.SelectAll[registry.ForceModel](e.registry, domain.FamilyForceModel, req.Filters.FModels); err != nil {
		return nil, err
	}
	if p.emodels, err = registry.SelectAll[registry.ElasticModel](e.registry, domain.FamilyElasticModel, req.Filters.EModels); err != nil {
		return nil, err
	}
	return p, nil
}

// dedupe drops repeated ids, keeping the first occurrence.
func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// filterChain is the hashed form of the pre-processing chain.
func (p *plan) filterChain() any {
	if len(p.filters) == 0 {
		return domain.NoFilters
	}
	chain := make([]any, len(p.filters))
	for i, s := range p.filters {
		chain[i] = map[string]any{"name": s.Name, "params": s.Params}
	}
	return chain
}

// prepared is a curve after metadata resolution and pre-processing.
type prepared struct {
	id   int
	z    []float64
	f    []float64
	meta domain.Metadata
}

func (e *Executor) prepare(ctx context.Context, p *plan, curves []domain.Curve) ([]prepared, error) {
	out := make([]prepared, len(curves))
	err := e.each(ctx, len(curves), func(i int) error {
		c := curves[i]
		f := slices.Clone(c.F)
		for _, s := range p.filters {
			f = s.Impl.Apply(c.Z, f, s.Params)
		}
		out[i] = prepared{
			id:   c.ID,
			z:    c.Z,
			f:    f,
			meta: c.Metadata.Override(p.overrides).WithDefaults(e.metadata),
		}
		return nil
	})
	return out, err
}

package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nanoindent/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nanoindent/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nanoindent/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nanoindent/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nanoindent/internal/adapters/telemetry"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nanoindent/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nanoindent/internal/algorithms"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/nanoindent/internal/registry"
)

const (
	// NodeID is the unique identifier for the pipeline executor Graft node.
	NodeID graft.ID = "engine.pipeline"
	// PortNodeID provides the executor as ports.Pipeline.
	PortNodeID graft.ID = "engine.pipeline.port"
	// MetricsNodeID provides the executor's collectors.
	MetricsNodeID graft.ID = "engine.pipeline.metrics"
)

func init() {
	graft.Register(graft.Node[*Metrics]{
		ID:        MetricsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Metrics, error) {
			return NewMetrics(), nil
		},
	})

	graft.Register(graft.Node[*Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			fs.CurveStoreNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			algorithms.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
			MetricsNodeID,
		},
		Run: func(ctx context.Context) (*Executor, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			curves, err := graft.Dep[ports.CurveStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}

			reg, err := graft.Dep[*registry.Registry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			progress, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			metrics, err := graft.Dep[*Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return New(Config{
				Curves:     curves,
				Cache:      cache,
				Hasher:     hasher,
				Registry:   reg,
				Logger:     log,
				Tracer:     tracer,
				Telemetry:  progress,
				Metrics:    metrics,
				Workers:    settings.Workers,
				ChunkSize:  settings.ChunkSize,
				Elasticity: settings.Elasticity,
				Metadata:   settings.Metadata,
			}), nil
		},
	})

	graft.Register(graft.Node[ports.Pipeline]{
		ID:        PortNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.Pipeline, error) {
			e, err := graft.Dep[*Executor](ctx)
			if err != nil {
				return nil, err
			}
			return e, nil
		},
	})
}

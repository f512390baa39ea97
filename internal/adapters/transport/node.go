package transport

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nanoindent/internal/adapters/config"
	"go.trai.ch/nanoindent/internal/adapters/logger"
	"go.trai.ch/nanoindent/internal/algorithms"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/nanoindent/internal/engine/pipeline" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nanoindent/internal/registry"
)

// NodeID is the unique identifier for the transport server Graft node.
const NodeID graft.ID = "adapter.transport"

func init() {
	graft.Register(graft.Node[*Server]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			pipeline.PortNodeID,
			pipeline.MetricsNodeID,
			algorithms.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Server, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			p, err := graft.Dep[ports.Pipeline](ctx)
			if err != nil {
				return nil, err
			}

			metrics, err := graft.Dep[*pipeline.Metrics](ctx)
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

			return New(Config{
				Pipeline:    p,
				Registry:    reg,
				Metrics:     metrics.Handler(),
				Logger:      log,
				ServiceName: settings.Telemetry.ServiceName,
			}), nil
		},
	})
}

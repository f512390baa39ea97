package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/nanoindent/internal/adapters/config"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
)

const (
	// TracerNodeID is the unique identifier for the tracer Graft node.
	TracerNodeID graft.ID = "adapter.tracer"
	// ShutdownNodeID provides the provider shutdown hook.
	ShutdownNodeID graft.ID = "adapter.tracer.shutdown"
)

func init() {
	graft.Register(graft.Node[Shutdown]{
		ID:        ShutdownNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (Shutdown, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return Setup(settings.Telemetry, os.Stderr)
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, ShutdownNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			if _, err := graft.Dep[Shutdown](ctx); err != nil {
				return nil, err
			}
			return NewOTelTracer(settings.Telemetry.ServiceName), nil
		},
	})
}

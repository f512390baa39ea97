package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nanoindent/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/nanoindent/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/nanoindent/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/nanoindent/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/nanoindent/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/nanoindent/internal/adapters/transport"          //nolint:depguard // Wired in app layer
	"go.trai.ch/nanoindent/internal/algorithms"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/nanoindent/internal/engine/pipeline"
	"go.trai.ch/nanoindent/internal/registry"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			pipeline.PortNodeID,
			algorithms.NodeID,
			transport.NodeID,
			cas.NodeID,
			telemetry.ShutdownNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	p, err := graft.Dep[ports.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	reg, err := graft.Dep[*registry.Registry](ctx)
	if err != nil {
		return nil, err
	}

	server, err := graft.Dep[*transport.Server](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}

	shutdown, err := graft.Dep[telemetry.Shutdown](ctx)
	if err != nil {
		return nil, err
	}

	progress, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(p, reg, server, cache, log).
		WithAddr(settings.Server.Addr).
		WithShutdown(shutdown).
		WithProgress(progress), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}

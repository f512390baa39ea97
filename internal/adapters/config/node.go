package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
)

const (
	// NodeID provides the ports.ConfigLoader.
	NodeID graft.ID = "adapter.config_loader"
	// SettingsNodeID provides the loaded domain.Settings.
	SettingsNodeID graft.ID = "adapter.config_settings"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[domain.Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (domain.Settings, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return domain.Settings{}, err
			}
			return loader.Load()
		},
	})
}

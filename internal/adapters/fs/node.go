package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nanoindent/internal/adapters/config"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
)

const (
	HasherNodeID     graft.ID = "adapter.fs.hasher"
	CurveStoreNodeID graft.ID = "adapter.fs.curve_store"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.CurveStore]{
		ID:        CurveStoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.CurveStore, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return LoadCurveStore(settings.CurvesPath, settings.Metadata)
		},
	})
}

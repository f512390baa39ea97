package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nanoindent/internal/adapters/config"
	"go.trai.ch/nanoindent/internal/adapters/logger"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/zerr"
)

const NodeID graft.ID = "adapter.cache_store"

func init() {
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.ConcreteNodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[*logger.Logger](ctx)
			if err != nil {
				return nil, err
			}
			backend, err := OpenBackend(settings.Cache, log)
			if err != nil {
				return nil, err
			}
			return NewStore(backend), nil
		},
	})
}

// OpenBackend opens the backend selected by settings.
func OpenBackend(settings domain.CacheSettings, log *logger.Logger) (Backend, error) {
	switch settings.Backend {
	case "", domain.CacheBackendMemory:
		return NewMemoryBackend(settings.TTL), nil
	case domain.CacheBackendBadger:
		cfg := DefaultBadgerConfig(settings.Path)
		cfg.TTL = settings.TTL
		if log != nil {
			cfg.Logger = log.Slog()
		}
		return OpenBadger(cfg)
	case domain.CacheBackendFile:
		return OpenFile(settings.Path)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownCacheBackend, "open cache"), "backend", settings.Backend)
	}
}

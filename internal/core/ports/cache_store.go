package ports

import (
	"context"

	"go.trai.ch/nanoindent/internal/core/domain"
)

// CacheStore persists derived results in three content-addressed tables.
// Lookups return only the hits, keyed by curve id. Inserts never overwrite an existing row.
//
//go:generate mockgen -source=cache_store.go -destination=mocks/mock_cache_store.go -package=mocks
type CacheStore interface {
	GetContactPoints(ctx context.Context, keys []domain.ContactKey) (map[int]domain.ContactEntry, error)
	PutContactPoints(ctx context.Context, entries []domain.ContactEntry) error

	GetIndentations(ctx context.Context, keys []domain.IndentationKey) (map[int]domain.IndentationCurve, error)
	PutIndentations(ctx context.Context, entries []domain.IndentationEntry) error

	GetSpectra(ctx context.Context, keys []domain.SpectrumKey) (map[int]domain.ElasticitySpectrum, error)
	PutSpectra(ctx context.Context, entries []domain.SpectrumEntry) error

	// Close releases the backend.
	Close() error
}

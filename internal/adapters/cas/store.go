// Package cas implements the content-addressed cache of derived curve results.
package cas

import (
	"context"
	"encoding/json"
	"fmt"

	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/zerr"
)

// Backend is a byte-oriented key-value table with insert-if-absent semantics.
type Backend interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) ([]byte, bool, error)
	// PutIfAbsent stores value under key unless the key already exists.
	PutIfAbsent(key string, value []byte) error
	// Close releases the backend.
	Close() error
}

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore on top of a Backend, encoding rows as JSON.
type Store struct {
	backend Backend
}

// NewStore wraps backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

func contactKey(k domain.ContactKey) string {
	return fmt.Sprintf("cp/%d/%s/%s", k.CurveID, k.Method, k.ParamsHash)
}

func indentationKey(k domain.IndentationKey) string {
	return fmt.Sprintf("ind/%d/%s", k.CurveID, k.ContactHash)
}

func spectrumKey(k domain.SpectrumKey) string {
	return fmt.Sprintf("el/%d/%s", k.CurveID, k.SpectrumHash)
}

// GetContactPoints returns the cached contact points among keys.
func (s *Store) GetContactPoints(ctx context.Context, keys []domain.ContactKey) (map[int]domain.ContactEntry, error) {
	return lookup(ctx, s.backend, keys, contactKey, func(k domain.ContactKey) int { return k.CurveID },
		func(e domain.ContactEntry) domain.ContactEntry { return e })
}

// PutContactPoints inserts contact points that are not cached yet.
func (s *Store) PutContactPoints(ctx context.Context, entries []domain.ContactEntry) error {
	return insert(ctx, s.backend, entries, func(e domain.ContactEntry) string { return contactKey(e.ContactKey) })
}

// GetIndentations returns the cached indentation curves among keys.
func (s *Store) GetIndentations(ctx context.Context, keys []domain.IndentationKey) (map[int]domain.IndentationCurve, error) {
	return lookup(ctx, s.backend, keys, indentationKey, func(k domain.IndentationKey) int { return k.CurveID },
		func(e domain.IndentationEntry) domain.IndentationCurve { return e.Curve })
}

// PutIndentations inserts indentation curves that are not cached yet.
func (s *Store) PutIndentations(ctx context.Context, entries []domain.IndentationEntry) error {
	return insert(ctx, s.backend, entries, func(e domain.IndentationEntry) string { return indentationKey(e.IndentationKey) })
}

// GetSpectra returns the cached elasticity spectra among keys.
func (s *Store) GetSpectra(ctx context.Context, keys []domain.SpectrumKey) (map[int]domain.ElasticitySpectrum, error) {
	return lookup(ctx, s.backend, keys, spectrumKey, func(k domain.SpectrumKey) int { return k.CurveID },
		func(e domain.SpectrumEntry) domain.ElasticitySpectrum { return e.Spectrum })
}

// PutSpectra inserts elasticity spectra that are not cached yet.
func (s *Store) PutSpectra(ctx context.Context, entries []domain.SpectrumEntry) error {
	return insert(ctx, s.backend, entries, func(e domain.SpectrumEntry) string { return spectrumKey(e.SpectrumKey) })
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func lookup[K, E, V any](
	ctx context.Context,
	backend Backend,
	keys []K,
	encodeKey func(K) string,
	curveID func(K) int,
	value func(E) V,
) (map[int]V, error) {
	hits := make(map[int]V, len(keys))
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := encodeKey(k)
		data, ok, err := backend.Get(key)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "key", key)
		}
		if !ok {
			continue
		}
		var entry E
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheDecodeFailed.Error()), "key", key)
		}
		hits[curveID(k)] = value(entry)
	}
	return hits, nil
}

func insert[E any](ctx context.Context, backend Backend, entries []E, encodeKey func(E) string) error {
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := encodeKey(e)
		data, err := json.Marshal(e)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "key", key)
		}
		if err := backend.PutIfAbsent(key, data); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "key", key)
		}
	}
	return nil
}

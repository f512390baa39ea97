package cas

import (
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryBackend keeps rows in process memory. Rows expire after the configured TTL.
type MemoryBackend struct {
	items *cache.Cache
}

// NewMemoryBackend creates a MemoryBackend. A zero ttl keeps rows forever.
func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	expiration, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		expiration, cleanup = ttl, 2*ttl
	}
	return &MemoryBackend{items: cache.New(expiration, cleanup)}
}

// Get returns a copy of the value stored under key.
func (b *MemoryBackend) Get(key string) ([]byte, bool, error) {
	v, ok := b.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	data, _ := v.([]byte)
	return slices.Clone(data), true, nil
}

// PutIfAbsent stores value unless the key already exists.
func (b *MemoryBackend) PutIfAbsent(key string, value []byte) error {
	// Add fails only when the key exists, which is the insert-if-absent no-op.
	_ = b.items.Add(key, slices.Clone(value), cache.DefaultExpiration)
	return nil
}

// Len returns the number of live rows.
func (b *MemoryBackend) Len() int {
	return b.items.ItemCount()
}

// Close drops every row.
func (b *MemoryBackend) Close() error {
	b.items.Flush()
	return nil
}

package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileBackend keeps every row in a single JSON document that is rewritten on insert.
type FileBackend struct {
	path string
	mu   sync.RWMutex
	rows map[string]json.RawMessage
}

// OpenFile loads the document at path, starting empty when it does not exist.
func OpenFile(path string) (*FileBackend, error) {
	b := &FileBackend{
		path: filepath.Clean(path),
		rows: make(map[string]json.RawMessage),
	}
	if err := b.load(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *FileBackend) load() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", b.path)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &b.rows); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheDecodeFailed.Error()), "path", b.path)
	}
	return nil
}

// save must be called with the write lock held.
func (b *FileBackend) save() error {
	data, err := json.Marshal(b.rows)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache file")
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for cache file")
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return zerr.Wrap(err, "failed to write cache file")
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return zerr.Wrap(err, "failed to replace cache file")
	}
	return nil
}

// Get returns the value stored under key.
func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.rows[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// PutIfAbsent stores value unless the key already exists, then persists the document.
func (b *FileBackend) PutIfAbsent(key string, value []byte) error {
	if !json.Valid(value) {
		return zerr.With(zerr.New("value is not valid JSON"), "key", key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.rows[key]; ok {
		return nil
	}
	b.rows[key] = append(json.RawMessage(nil), value...)
	return b.save()
}

// Close is a no-op; every insert is already on disk.
func (b *FileBackend) Close() error {
	return nil
}

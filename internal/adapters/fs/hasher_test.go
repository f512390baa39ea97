package fs_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/internal/adapters/fs"
	"go.trai.ch/nanoindent/internal/core/domain"
)

func TestHasher_Deterministic(t *testing.T) {
	t.Parallel()

	h := fs.NewHasher()
	a, err := h.Hash(map[string]any{
		"method": "autothresh",
		"params": map[string]any{"zeroRange": 500.0},
		"k":      0.032,
	})
	require.NoError(t, err)

	b, err := h.Hash(map[string]any{
		"k":      0.032,
		"params": map[string]any{"zeroRange": 500.0},
		"method": "autothresh",
	})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestHasher_NumberRepresentation(t *testing.T) {
	t.Parallel()

	h := fs.NewHasher()
	a, err := h.Hash(map[string]any{"window": 61})
	require.NoError(t, err)
	b, err := h.Hash(map[string]any{"window": 61.0})
	require.NoError(t, err)
	c, err := h.Hash(map[string]any{"window": int64(61)})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)

	negZero, err := h.Hash(map[string]any{"v": math.Copysign(0, -1)})
	require.NoError(t, err)
	zero, err := h.Hash(map[string]any{"v": 0.0})
	require.NoError(t, err)
	assert.Equal(t, zero, negZero)
}

func TestHasher_DistinguishesValues(t *testing.T) {
	t.Parallel()

	h := fs.NewHasher()
	seen := make(map[string]string)
	inputs := map[string]map[string]any{
		"base":      {"method": "threshold", "params": domain.Params{{Name: "Threshold", Type: domain.ParamFloat, Value: 2}}},
		"value":     {"method": "threshold", "params": domain.Params{{Name: "Threshold", Type: domain.ParamFloat, Value: 3}}},
		"method":    {"method": "gof", "params": domain.Params{{Name: "Threshold", Type: domain.ParamFloat, Value: 2}}},
		"geometry":  {"method": "threshold", "tip": domain.GeometryCone},
		"string":    {"method": "threshold", "tip": "1"},
		"number":    {"method": "threshold", "tip": 1},
		"bool":      {"method": "threshold", "tip": true},
		"nil":       {"method": "threshold", "tip": nil},
		"list":      {"filters": []any{"median", map[string]any{"size": 5}}},
		"reordered": {"filters": []any{map[string]any{"size": 5}, "median"}},
		"point":     {"cp": domain.ContactPoint{Z: 1e-6, F: 2e-9}},
	}
	for name, fields := range inputs {
		digest, err := h.Hash(fields)
		require.NoError(t, err, name)
		if other, ok := seen[digest]; ok {
			t.Fatalf("%s and %s hash to the same digest %s", name, other, digest)
		}
		seen[digest] = name
	}
}

func TestHasher_UnsupportedValue(t *testing.T) {
	t.Parallel()

	_, err := fs.NewHasher().Hash(map[string]any{"ch": make(chan int)})
	require.ErrorIs(t, err, domain.ErrHashFailed)
}

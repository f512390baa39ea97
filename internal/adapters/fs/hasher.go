// Package fs implements the file-backed curve store and the content hasher.
package fs

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes cache keys from canonical serializations using XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash computes a single digest over fields. Map keys are visited in sorted order and
// every number is written in its shortest round-trip form, so equal inputs always hash
// the same regardless of construction order or integer/float representation.
func (h *Hasher) Hash(fields map[string]any) (string, error) {
	hasher := xxhash.New()
	if err := h.hashValue(fields, hasher); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashValue(v any, hasher *xxhash.Digest) error {
	switch val := v.(type) {
	case nil:
		_, _ = hasher.Write([]byte{'z', 0})
	case string:
		_, _ = hasher.Write([]byte{'s'})
		_, _ = hasher.WriteString(val)
		_, _ = hasher.Write([]byte{0})
	case domain.TipGeometry:
		return h.hashValue(string(val), hasher)
	case bool:
		if val {
			_, _ = hasher.Write([]byte{'b', '1', 0})
		} else {
			_, _ = hasher.Write([]byte{'b', '0', 0})
		}
	case float64:
		h.hashNumber(val, hasher)
	case float32:
		h.hashNumber(float64(val), hasher)
	case int:
		h.hashNumber(float64(val), hasher)
	case int32:
		h.hashNumber(float64(val), hasher)
	case int64:
		h.hashNumber(float64(val), hasher)
	case []float64:
		_, _ = hasher.Write([]byte{'['})
		for _, f := range val {
			h.hashNumber(f, hasher)
		}
		_, _ = hasher.Write([]byte{']', 0})
	case []any:
		_, _ = hasher.Write([]byte{'['})
		for _, item := range val {
			if err := h.hashValue(item, hasher); err != nil {
				return err
			}
		}
		_, _ = hasher.Write([]byte{']', 0})
	case domain.Params:
		return h.hashValue(val.Map(), hasher)
	case domain.ContactPoint:
		return h.hashValue([]float64{val.Z, val.F}, hasher)
	case map[string]any:
		return h.hashMap(val, hasher)
	default:
		return zerr.With(zerr.Wrap(domain.ErrHashFailed, "unsupported value"), "type", fmt.Sprintf("%T", v))
	}
	return nil
}

// hashMap writes every key next to its value, in sorted key order.
func (h *Hasher) hashMap(m map[string]any, hasher *xxhash.Digest) error {
	_, _ = hasher.Write([]byte{'{'})
	for _, k := range sortedKeys(m) {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		if err := h.hashValue(m[k], hasher); err != nil {
			return zerr.With(err, "key", k)
		}
	}
	_, _ = hasher.Write([]byte{'}', 0})
	return nil
}

func (h *Hasher) hashNumber(f float64, hasher *xxhash.Digest) {
	_, _ = hasher.Write([]byte{'n'})
	switch {
	case math.IsNaN(f):
		_, _ = hasher.WriteString("nan")
	case f == 0:
		// Negative zero hashes like positive zero.
		_, _ = hasher.WriteString("0")
	default:
		_, _ = hasher.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	_, _ = hasher.Write([]byte{0})
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

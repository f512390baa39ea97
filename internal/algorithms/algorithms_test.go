package algorithms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/internal/algorithms"
	"go.trai.ch/nanoindent/internal/core/domain"
)

func TestNewRegistry_Names(t *testing.T) {
	t.Parallel()

	r := algorithms.NewRegistry()
	assert.Equal(t, []string{"lineardetrend", "median", "notch", "polytrend", "prominence", "savgolsmooth"}, r.Names(domain.FamilyFilter))
	assert.Equal(t, []string{"autothresh", "gof", "gofsphere", "rov", "stepdrift", "threshold"}, r.Names(domain.FamilyContactPoint))
	assert.Equal(t, []string{"driftedhertz", "hertz", "hertzeffective"}, r.Names(domain.FamilyForceModel))
	assert.Equal(t, []string{"bilayer", "constant", "linemax", "sigmoid"}, r.Names(domain.FamilyElasticModel))
}

func TestNewRegistry_ParamsValid(t *testing.T) {
	t.Parallel()

	r := algorithms.NewRegistry()
	for _, info := range r.Catalog() {
		h, err := r.Resolve(info.Family, info.Name)
		require.NoError(t, err)

		seen := make(map[string]bool)
		for _, spec := range info.Params {
			assert.False(t, seen[spec.Name], "%s declares %s twice", info.Name, spec.Name)
			seen[spec.Name] = true
			if spec.Min != nil {
				assert.GreaterOrEqual(t, spec.Default, *spec.Min, "%s.%s", info.Name, spec.Name)
			}
			if spec.Max != nil {
				assert.LessOrEqual(t, spec.Default, *spec.Max, "%s.%s", info.Name, spec.Name)
			}
		}

		// Binding the defaults explicitly yields the defaults.
		values := make(map[string]any, len(info.Params))
		for _, spec := range info.Params {
			values[spec.Name] = spec.Default
		}
		bound, err := h.Bind(values)
		require.NoError(t, err, info.Name)
		assert.Equal(t, h.DefaultParams(), bound, info.Name)
	}
}

func TestNewRegistry_CaseInsensitive(t *testing.T) {
	t.Parallel()

	r := algorithms.NewRegistry()
	h, err := r.Resolve(domain.FamilyContactPoint, "AutoThresh")
	require.NoError(t, err)
	assert.Equal(t, "autothresh", h.Name())
}

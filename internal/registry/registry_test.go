package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/registry"
)

type fakeDetector struct {
	name  string
	specs []domain.ParamSpec
}

func (d fakeDetector) Info() domain.AlgorithmInfo {
	return domain.AlgorithmInfo{Name: d.name, Family: domain.FamilyContactPoint, Params: d.specs}
}

func (fakeDetector) Detect(z, f []float64, _ domain.Params, _ domain.Metadata) (domain.ContactPoint, bool) {
	return domain.ContactPoint{Z: z[0], F: f[0]}, true
}

// notAFilter claims the filter family without implementing Apply.
type notAFilter struct{}

func (notAFilter) Info() domain.AlgorithmInfo {
	return domain.AlgorithmInfo{Name: "broken", Family: domain.FamilyFilter}
}

func detector() fakeDetector {
	return fakeDetector{
		name: "Sensor",
		specs: []domain.ParamSpec{
			{Name: "window", Type: domain.ParamInt, Default: 21, Min: domain.Bound(3)},
			{Name: "ratio", Type: domain.ParamFloat, Default: 0.5, Min: domain.Bound(0), Max: domain.Bound(1)},
			{Name: "interp", Type: domain.ParamBool, Default: 1},
		},
	}
}

func TestRegister_LowercasesAndIgnoresDuplicates(t *testing.T) {
	t.Parallel()

	r := registry.New()
	require.NoError(t, r.Register(detector()))

	other := detector()
	other.specs = nil
	require.NoError(t, r.Register(other))

	h, err := r.Resolve(domain.FamilyContactPoint, "SENSOR")
	require.NoError(t, err)
	assert.Equal(t, "sensor", h.Name())
	assert.Len(t, h.Info().Params, 3, "first registration wins")
	assert.Equal(t, []string{"sensor"}, r.Names(domain.FamilyContactPoint))
}

func TestRegister_FamilyMismatch(t *testing.T) {
	t.Parallel()

	r := registry.New()
	err := r.Register(notAFilter{})
	require.ErrorIs(t, err, domain.ErrUnknownFamily)
	assert.Panics(t, func() { r.MustRegister(notAFilter{}) })
}

func TestResolve_Unknown(t *testing.T) {
	t.Parallel()

	r := registry.New()
	_, err := r.Resolve(domain.FamilyContactPoint, "missing")
	require.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
	assert.True(t, domain.IsConfigurationError(err))

	_, err = r.Resolve("bogus", "missing")
	require.ErrorIs(t, err, domain.ErrUnknownFamily)
}

func TestHandle_DefaultParams(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.MustRegister(detector())
	h, err := r.Resolve(domain.FamilyContactPoint, "sensor")
	require.NoError(t, err)

	p := h.DefaultParams()
	assert.Equal(t, []float64{21, 0.5, 1}, p.Values())
	assert.Equal(t, 21, p.Int("window"))
	assert.True(t, p.Bool("interp"))
}

func TestHandle_Bind(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.MustRegister(detector())
	h, err := r.Resolve(domain.FamilyContactPoint, "sensor")
	require.NoError(t, err)

	tests := []struct {
		name    string
		values  map[string]any
		want    []float64
		wantErr error
	}{
		{name: "defaults", values: nil, want: []float64{21, 0.5, 1}},
		{name: "json numbers", values: map[string]any{"window": 31.0, "ratio": 0.25}, want: []float64{31, 0.25, 1}},
		{name: "strings", values: map[string]any{"window": "11", "interp": "false"}, want: []float64{11, 0.5, 0}},
		{name: "case insensitive", values: map[string]any{"RATIO": 1}, want: []float64{21, 1, 1}},
		{name: "null keeps default", values: map[string]any{"ratio": nil}, want: []float64{21, 0.5, 1}},
		{name: "unknown", values: map[string]any{"depth": 1}, wantErr: domain.ErrUnknownParameter},
		{name: "below min", values: map[string]any{"window": 1}, wantErr: domain.ErrInvalidParameter},
		{name: "above max", values: map[string]any{"ratio": 1.5}, wantErr: domain.ErrInvalidParameter},
		{name: "not a number", values: map[string]any{"ratio": "abc"}, wantErr: domain.ErrInvalidParameter},
		{name: "same name twice", values: map[string]any{"ratio": 0.2, "Ratio": 0.3}, wantErr: domain.ErrInvalidParameter},
		{name: "same name twice with other names", values: map[string]any{"window": 5, "WINDOW": 7, "interp": true}, wantErr: domain.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := h.Bind(tt.values)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Values())
		})
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.MustRegister(detector())

	sel, err := registry.Select[registry.Detector](r, domain.FamilyContactPoint, domain.AlgorithmConfig{
		Name:   "Sensor",
		Params: map[string]any{"window": 5},
	})
	require.NoError(t, err)
	assert.Equal(t, "sensor", sel.Name)
	assert.Equal(t, 5, sel.Params.Int("window"))

	cp, ok := sel.Impl.Detect([]float64{1}, []float64{2}, sel.Params, domain.DefaultMetadata())
	require.True(t, ok)
	assert.Equal(t, domain.ContactPoint{Z: 1, F: 2}, cp)

	_, err = registry.SelectAll[registry.Filter](r, domain.FamilyFilter, []domain.AlgorithmConfig{{Name: "sensor"}})
	require.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	r := registry.New()
	r.MustRegister(detector())
	cat := r.Catalog()
	require.Len(t, cat, 1)
	assert.Equal(t, "sensor", cat[0].Name)
	assert.Equal(t, domain.FamilyContactPoint, cat[0].Family)
}

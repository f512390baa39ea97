package cpoint_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/internal/algorithms/cpoint"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/registry"
)

// ramp is flat at zero up to sample 500 and rises linearly to 5 nN at sample 999.
func ramp() (z, f []float64) {
	z = make([]float64, 1000)
	f = make([]float64, 1000)
	for i := range z {
		z[i] = float64(i) * 1e-9
		if i > 500 {
			f[i] = float64(i-500) / 499 * 5e-9
		}
	}
	return z, f
}

func bind(t *testing.T, a registry.Algorithm, values map[string]any) domain.Params {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Register(a))
	h, err := r.Resolve(domain.FamilyContactPoint, a.Info().Name)
	require.NoError(t, err)
	p, err := h.Bind(values)
	require.NoError(t, err)
	return p
}

func index(cp domain.ContactPoint) int {
	return int(math.Round(cp.Z / 1e-9))
}

func TestAutothresh_Ramp(t *testing.T) {
	t.Parallel()

	z, f := ramp()
	d := cpoint.Autothresh{}
	cp, ok := d.Detect(z, f, bind(t, d, map[string]any{"zeroRange": 400}), domain.DefaultMetadata())
	require.True(t, ok)
	assert.InDelta(t, 500, index(cp), 5)
	assert.Equal(t, f[index(cp)], cp.F)
}

func TestAutothresh_FlatIsNotFound(t *testing.T) {
	t.Parallel()

	z, _ := ramp()
	f := make([]float64, len(z))
	d := cpoint.Autothresh{}
	_, ok := d.Detect(z, f, bind(t, d, nil), domain.DefaultMetadata())
	assert.False(t, ok)
}

func TestThreshold_BelowMinimumForce(t *testing.T) {
	t.Parallel()

	d := cpoint.Threshold{}
	z := []float64{0, 1e-9, 2e-9}
	f := []float64{1e-9, 2e-9, 3e-9}
	_, ok := d.Detect(z, f, bind(t, d, map[string]any{"starting_threshold": 0}), domain.DefaultMetadata())
	assert.False(t, ok)
}

func TestThreshold_Ramp(t *testing.T) {
	t.Parallel()

	z, f := ramp()
	d := cpoint.Threshold{}
	cp, ok := d.Detect(z, f, bind(t, d, map[string]any{"starting_threshold": 2, "max_x": 40}), domain.DefaultMetadata())
	require.True(t, ok)
	assert.Equal(t, 501, index(cp))
}

func TestStepDrift_FallsBackToFirstSample(t *testing.T) {
	t.Parallel()

	z, _ := ramp()
	f := make([]float64, len(z))
	d := cpoint.StepDrift{}
	cp, ok := d.Detect(z, f, bind(t, d, nil), domain.DefaultMetadata())
	require.True(t, ok)
	assert.Equal(t, domain.ContactPoint{Z: z[0], F: f[0]}, cp)
}

func TestStepDrift_SteepRamp(t *testing.T) {
	t.Parallel()

	z, _ := ramp()
	f := make([]float64, len(z))
	for i := 500; i < len(f); i++ {
		f[i] = float64(i-500) * 1e-10
	}
	d := cpoint.StepDrift{}
	cp, ok := d.Detect(z, f, bind(t, d, nil), domain.DefaultMetadata())
	require.True(t, ok)
	assert.InDelta(t, 500, index(cp), 10)
}

func TestRoV_Ramp(t *testing.T) {
	t.Parallel()

	z, f := ramp()
	d := cpoint.RoV{}
	cp, ok := d.Detect(z, f, bind(t, d, nil), domain.DefaultMetadata())
	require.True(t, ok)
	assert.InDelta(t, 500, index(cp), 5)
}

func TestDetectors_EmptyCurve(t *testing.T) {
	t.Parallel()

	for _, a := range cpoint.All() {
		d, ok := a.(registry.Detector)
		require.True(t, ok, a.Info().Name)
		t.Run(a.Info().Name, func(t *testing.T) {
			t.Parallel()
			_, found := d.Detect(nil, nil, bind(t, a, nil), domain.DefaultMetadata())
			assert.False(t, found)
		})
	}
}

func TestDetectors_ReturnCurveSamples(t *testing.T) {
	t.Parallel()

	z, f := ramp()
	for _, a := range cpoint.All() {
		d := a.(registry.Detector)
		t.Run(a.Info().Name, func(t *testing.T) {
			t.Parallel()
			cp, found := d.Detect(z, f, bind(t, a, nil), domain.DefaultMetadata())
			if !found {
				return
			}
			i := index(cp)
			require.GreaterOrEqual(t, i, 0)
			require.Less(t, i, len(z))
			assert.Equal(t, f[i], cp.F)
		})
	}
}

// hertzian is flat up to sample 400 and follows a 3/2 power law of the depth beyond it.
func hertzian() (z, f []float64) {
	z = make([]float64, 1000)
	f = make([]float64, 1000)
	for i := range z {
		z[i] = float64(i) * 1e-9
		if i > 400 {
			f[i] = math.Pow(float64(i-400)*1e-9, 1.5)
		}
	}
	return z, f
}

func TestGof_HertzianContact(t *testing.T) {
	t.Parallel()

	z, f := hertzian()
	d := cpoint.Gof{}
	cp, ok := d.Detect(z, f, bind(t, d, map[string]any{"minx": 10}), domain.DefaultMetadata())
	require.True(t, ok)
	assert.InDelta(t, 400, index(cp), 5)
	assert.Equal(t, f[index(cp)], cp.F)
}

func TestGof_DefaultRangeStartsAtMidpoint(t *testing.T) {
	t.Parallel()

	z, f := hertzian()
	d := cpoint.Gof{}
	cp, ok := d.Detect(z, f, bind(t, d, nil), domain.DefaultMetadata())
	require.True(t, ok)
	assert.GreaterOrEqual(t, index(cp), 500)
}

func TestGof_NoFiniteFitIsNotFound(t *testing.T) {
	t.Parallel()

	z, _ := hertzian()
	f := make([]float64, len(z))
	d := cpoint.Gof{}
	_, ok := d.Detect(z, f, bind(t, d, map[string]any{"minx": 10}), domain.DefaultMetadata())
	assert.False(t, ok)
}

func TestGofSphere_HertzianContact(t *testing.T) {
	t.Parallel()

	z, f := hertzian()
	d := cpoint.GofSphere{}
	cp, ok := d.Detect(z, f, bind(t, d, map[string]any{"force_threshold": 1}), domain.DefaultMetadata())
	require.True(t, ok)
	assert.InDelta(t, 400, index(cp), 5)
	assert.Equal(t, f[index(cp)], cp.F)
}

func TestGofSphere_ShortCurveIsNotFound(t *testing.T) {
	t.Parallel()

	z, f := hertzian()
	d := cpoint.GofSphere{}
	_, ok := d.Detect(z[:150], f[:150], bind(t, d, nil), domain.DefaultMetadata())
	assert.False(t, ok)
}

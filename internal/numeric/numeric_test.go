package numeric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/internal/numeric"
)

func TestPolyfit_RecoversCubic(t *testing.T) {
	t.Parallel()

	x := make([]float64, 50)
	y := make([]float64, 50)
	for i := range x {
		x[i] = float64(i) * 1e-9
		y[i] = 2e-9 + 3*x[i] - 4e6*x[i]*x[i] + 1e15*x[i]*x[i]*x[i]
	}

	c, err := numeric.Polyfit(x, y, 3)
	require.NoError(t, err)
	require.Len(t, c, 4)
	for i := range x {
		assert.InDelta(t, y[i], numeric.Polyval(c, x[i]), 1e-15)
	}
}

func TestPolyfit_TooFewPoints(t *testing.T) {
	t.Parallel()

	_, err := numeric.Polyfit([]float64{1, 2}, []float64{1, 2}, 2)
	require.ErrorIs(t, err, numeric.ErrDegenerate)
}

func TestPolyvalDeriv(t *testing.T) {
	t.Parallel()

	// 1 + 2x + 3x^2
	c := []float64{1, 2, 3}
	assert.InDelta(t, 17.0, numeric.Polyval(c, 2), 1e-12)
	assert.InDelta(t, 14.0, numeric.PolyvalDeriv(c, 2, 1), 1e-12)
	assert.InDelta(t, 6.0, numeric.PolyvalDeriv(c, 2, 2), 1e-12)
	assert.Zero(t, numeric.PolyvalDeriv(c, 2, 3))
}

func TestSavgolCoeffs_Smoothing(t *testing.T) {
	t.Parallel()

	c, err := numeric.SavgolCoeffs(5, 2, 0, 1)
	require.NoError(t, err)
	want := []float64{-3.0 / 35, 12.0 / 35, 17.0 / 35, 12.0 / 35, -3.0 / 35}
	for i := range want {
		assert.InDelta(t, want[i], c[i], 1e-12)
	}
}

func TestSavgolCoeffs_InvalidWindow(t *testing.T) {
	t.Parallel()

	_, err := numeric.SavgolCoeffs(4, 2, 0, 1)
	require.ErrorIs(t, err, numeric.ErrInvalidWindow)

	_, err = numeric.SavgolCoeffs(5, 5, 0, 1)
	require.ErrorIs(t, err, numeric.ErrInvalidWindow)
}

func TestSavgol_DerivativeOfQuadraticIsExact(t *testing.T) {
	t.Parallel()

	const delta = 0.5
	y := make([]float64, 40)
	for i := range y {
		x := float64(i) * delta
		y[i] = 3*x*x - x + 2
	}

	d, err := numeric.Savgol(y, 7, 2, 1, delta)
	require.NoError(t, err)
	for i := range y {
		x := float64(i) * delta
		assert.InDelta(t, 6*x-1, d[i], 1e-8, "sample %d", i)
	}
}

func TestSavgol_WindowLongerThanData(t *testing.T) {
	t.Parallel()

	_, err := numeric.Savgol(make([]float64, 10), 11, 2, 0, 1)
	require.ErrorIs(t, err, numeric.ErrInvalidWindow)
}

func TestLinRegress(t *testing.T) {
	t.Parallel()

	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 3, 5, 7, 9}
	slope, intercept, r2, err := numeric.LinRegress(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, slope, 1e-12)
	assert.InDelta(t, 1.0, intercept, 1e-12)
	assert.InDelta(t, 1.0, r2, 1e-12)

	_, _, _, err = numeric.LinRegress([]float64{1, 1, 1}, []float64{1, 2, 3})
	require.ErrorIs(t, err, numeric.ErrDegenerate)
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	x := []float64{5, 1, 4, 2, 3}
	assert.InDelta(t, 3.0, numeric.Median(x), 1e-12)
	assert.InDelta(t, 4.6, numeric.Percentile(x, 90), 1e-12)
	assert.InDelta(t, 1.0, numeric.Percentile(x, 0), 1e-12)
	assert.True(t, math.IsNaN(numeric.Percentile(nil, 50)))
}

func TestInterp(t *testing.T) {
	t.Parallel()

	xp := []float64{0, 1, 2}
	fp := []float64{0, 10, 40}
	got := numeric.Interp([]float64{-1, 0.5, 1, 1.5, 3}, xp, fp)
	assert.Equal(t, []float64{0, 5, 10, 25, 40}, got)

	ext := numeric.Extrapolate([]float64{-1, 3}, xp, fp)
	assert.InDelta(t, -10.0, ext[0], 1e-12)
	assert.InDelta(t, 70.0, ext[1], 1e-12)
}

func TestArange(t *testing.T) {
	t.Parallel()

	got := numeric.Arange(0, 1, 0.25)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75}, got)
	assert.Empty(t, numeric.Arange(1, 1, 0.1))
}

func TestSearchSortedAndNearest(t *testing.T) {
	t.Parallel()

	a := []float64{1, 2, 2, 4}
	assert.Equal(t, 1, numeric.SearchSorted(a, 2))
	assert.Equal(t, 4, numeric.SearchSorted(a, 5))
	assert.Equal(t, 3, numeric.Nearest(a, 3.6))
	assert.Equal(t, -1, numeric.Nearest(nil, 1))
}

func TestCurveFit_Exponential(t *testing.T) {
	t.Parallel()

	model := func(x float64, p []float64) float64 { return p[0] * math.Exp(-p[1]*x) }
	x := make([]float64, 60)
	y := make([]float64, 60)
	for i := range x {
		x[i] = float64(i) * 0.1
		y[i] = model(x[i], []float64{2.5, 1.3})
	}

	fit, err := numeric.CurveFit(model, x, y, []float64{1, 1}, numeric.DefaultFitOptions())
	require.NoError(t, err)
	assert.InDelta(t, 2.5, fit.Params[0], 1e-6)
	assert.InDelta(t, 1.3, fit.Params[1], 1e-6)
	assert.Greater(t, fit.R2, 0.999)
}

func TestCurveFit_RejectsTooFewPoints(t *testing.T) {
	t.Parallel()

	model := func(x float64, p []float64) float64 { return p[0] + p[1]*x + p[2]*x*x }
	_, err := numeric.CurveFit(model, []float64{1, 2}, []float64{1, 2}, []float64{0, 0, 0}, numeric.DefaultFitOptions())
	require.ErrorIs(t, err, numeric.ErrDegenerate)
}

func TestMedianFilter(t *testing.T) {
	t.Parallel()

	got := numeric.MedianFilter([]float64{1, 9, 2, 8, 3}, 3)
	assert.Equal(t, []float64{1, 2, 8, 3, 3}, got)
}

func TestFindPeaks(t *testing.T) {
	t.Parallel()

	x := []float64{0, 5, 0, 1, 0, 3, 3, 3, 0}
	assert.Equal(t, []int{1, 3, 6}, numeric.FindPeaks(x, 0))
	assert.Equal(t, []int{1, 6}, numeric.FindPeaks(x, 2))
	assert.InDelta(t, 5.0, numeric.Prominence(x, 1), 1e-12)
}

func TestFiltFilt_PassesConstant(t *testing.T) {
	t.Parallel()

	b, a, err := numeric.Notch(0.1, 10)
	require.NoError(t, err)

	x := make([]float64, 100)
	for i := range x {
		x[i] = 3
	}
	got := numeric.FiltFilt(b, a, x)
	require.Len(t, got, len(x))
	for _, v := range got {
		assert.InDelta(t, 3.0, v, 1e-9)
	}

	_, _, err = numeric.Notch(1.5, 10)
	require.Error(t, err)
}

func TestRFFT_RoundTrip(t *testing.T) {
	t.Parallel()

	y := []float64{1, -2, 3.5, 0, 4, 2, -1}
	got := numeric.IRFFT(numeric.RFFT(y), len(y))
	require.Len(t, got, len(y))
	for i := range y {
		assert.InDelta(t, y[i], got[i], 1e-12)
	}
}

func TestBetween(t *testing.T) {
	t.Parallel()

	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{10, 11, 12, 13, 14, 15}
	xs, ys := numeric.Between(x, y, 0.9, 4.2)
	assert.Equal(t, []float64{1, 2, 3}, xs)
	assert.Equal(t, []float64{11, 12, 13}, ys)

	xs, ys = numeric.Between(x, y, 4, 1)
	assert.Empty(t, xs)
	assert.Empty(t, ys)
}

package mechanics

import (
	"math"
	"sort"

	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

const (
	// gridStep is the spacing of the resampled indentation axis [m].
	gridStep = 1e-9
	// pyramidFactor relates depth to contact radius for a four-sided pyramid (Bilodeau).
	pyramidFactor = 0.709
)

// ContactRadius returns the contact radius at indentation x for the given tip.
// The tip angle is a half-opening angle in degrees.
func ContactRadius(geometry domain.TipGeometry, x, radius, angle float64) (float64, bool) {
	switch geometry {
	case domain.GeometrySphere:
		return math.Sqrt(x * radius), true
	case domain.GeometryCylinder:
		return radius, true
	case domain.GeometryCone:
		return 2 * x / (math.Tan(angle*math.Pi/180) * math.Pi), true
	case domain.GeometryPyramid:
		return pyramidFactor * x * math.Tan(angle*math.Pi/180), true
	default:
		return 0, false
	}
}

// Elasticity derives the apparent Young's modulus against depth as 3/(8a) times the
// smoothed derivative of force with respect to indentation.
func Elasticity(c domain.IndentationCurve, s domain.ElasticitySettings, meta domain.Metadata) (domain.ElasticitySpectrum, bool) {
	n := c.Len()
	if n < 2 || len(c.Fi) != n {
		return domain.ElasticitySpectrum{}, false
	}

	var xx, yy []float64
	var delta float64
	if s.Interpolate {
		xs, ys := sortedPairs(c.Zi, c.Fi)
		lo := math.Max(xs[0], gridStep)
		xx = numeric.Arange(lo, xs[len(xs)-1], gridStep)
		yy = numeric.Interp(xx, xs, ys)
		delta = gridStep
	} else {
		if n < 3 {
			return domain.ElasticitySpectrum{}, false
		}
		xx, yy = c.Zi[1:], c.Fi[1:]
		delta = (c.Zi[n-1] - c.Zi[1]) / float64(n-2)
	}

	win := numeric.OddWindow(s.Window)
	if len(yy) <= win || delta == 0 || !numeric.Finite(delta) {
		return domain.ElasticitySpectrum{}, false
	}
	coeff := make([]float64, len(xx))
	for i, x := range xx {
		a, ok := ContactRadius(meta.TipGeometry, x, meta.TipRadius, meta.TipAngle)
		if !ok {
			return domain.ElasticitySpectrum{}, false
		}
		coeff[i] = 3 / (8 * a)
	}

	deriv, err := numeric.Savgol(yy, win, s.Order, 1, delta)
	if err != nil {
		return domain.ElasticitySpectrum{}, false
	}
	trim := win - 1
	if 2*trim >= len(xx) {
		return domain.ElasticitySpectrum{}, false
	}
	out := domain.ElasticitySpectrum{
		Ze: make([]float64, 0, len(xx)-2*trim),
		Ee: make([]float64, 0, len(xx)-2*trim),
	}
	for i := trim; i < len(xx)-trim; i++ {
		e := coeff[i] * deriv[i]
		// Depths at or below the contact give no contact radius for a sphere.
		if !numeric.Finite(xx[i], e) {
			continue
		}
		out.Ze = append(out.Ze, xx[i])
		out.Ee = append(out.Ee, e)
	}
	if len(out.Ze) == 0 {
		return domain.ElasticitySpectrum{}, false
	}
	return out, true
}

// sortedPairs returns copies of x and y ordered by ascending x.
func sortedPairs(x, y []float64) ([]float64, []float64) {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })
	xs := make([]float64, len(x))
	ys := make([]float64, len(y))
	for i, j := range idx {
		xs[i], ys[i] = x[j], y[j]
	}
	return xs, ys
}

package cpoint

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// GofSphere fits a Hertz sphere at every candidate start within a force-bounded range
// and keeps the start with the highest R².
type GofSphere struct{}

// Info implements registry.Algorithm.
func (GofSphere) Info() domain.AlgorithmInfo {
	return info("gofsphere", "Goodness of fit of a Hertz sphere",
		domain.ParamSpec{Name: "fit_window", Type: domain.ParamInt, Description: "Fit window size [nm]", Default: 200, Min: domain.Bound(0)},
		domain.ParamSpec{Name: "x_range", Type: domain.ParamInt, Description: "X range [nm]", Default: 1000, Min: domain.Bound(0)},
		domain.ParamSpec{Name: "force_threshold", Type: domain.ParamInt, Description: "Force threshold [nN]", Default: 10},
	)
}

// Detect implements registry.Detector.
func (GofSphere) Detect(z, f []float64, p domain.Params, meta domain.Metadata) (domain.ContactPoint, bool) {
	if !usable(z, f) {
		return domain.ContactPoint{}, false
	}
	n := len(z)
	jmin, jmax := searchRange(z, f, p.Float("force_threshold"), p.Float("x_range"))
	dx := numeric.Step(z)
	if dx <= 0 {
		return domain.ContactPoint{}, false
	}
	win := int(p.Float("fit_window") * nano / dx)
	if n-jmax < win {
		jmax = n - 1 - win
	}
	if jmax <= jmin {
		return domain.ContactPoint{}, false
	}

	radius := meta.TipRadius
	if !(radius > 0) {
		radius = domain.DefaultTipRadius
	}
	r2 := make([]float64, jmax-jmin)
	for j := jmin; j < jmax; j++ {
		r2[j-jmin] = hertzSphereR2(z, f, j, win, radius)
	}
	best := jmin + floats.MaxIdx(r2)
	return point(z, f, numeric.Nearest(z, z[best]))
}

// searchRange bounds the search between the sample nearest the force threshold [nN]
// and the sample xRange [nm] before it.
func searchRange(z, f []float64, threshold, xRange float64) (jmin, jmax int) {
	jmax = numeric.Nearest(f, threshold*nano)
	jmin = numeric.Nearest(z, z[jmax]-xRange*nano)
	return jmin, jmax
}

func hertzSphere(radius float64) numeric.Model {
	const poisson = 0.5
	return func(x float64, p []float64) float64 {
		x = math.Abs(x)
		return 4.0 / 3.0 * (p[0] / (1 - poisson*poisson)) * math.Sqrt(radius*x*x*x)
	}
}

// hertzSphereR2 fits the shallow part of the window starting at j. Failed fits score 0.
func hertzSphereR2(z, f []float64, j, win int, radius float64) float64 {
	if j+win > len(z) {
		return 0
	}
	var ind, force []float64
	for i := j; i < j+win; i++ {
		df := f[i] - f[j]
		d := (z[i] - z[j]) - df
		if d <= 0.1*radius {
			ind = append(ind, d)
			force = append(force, df)
		}
	}
	if len(ind) == 0 {
		return 0
	}
	fit, err := numeric.CurveFit(hertzSphere(radius), ind, force, []float64{1000.0 / 1e9}, numeric.DefaultFitOptions())
	if err != nil || !(fit.R2 > 0) {
		return 0
	}
	return fit.R2
}

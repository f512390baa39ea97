package numeric

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"go.trai.ch/zerr"
)

// ErrSingular is returned when a linear system has no usable solution.
var ErrSingular = zerr.New("singular system")

// Polyfit returns the least-squares polynomial of degree deg through (x, y),
// as coefficients ordered from the constant term upwards.
func Polyfit(x, y []float64, deg int) ([]float64, error) {
	n := len(x)
	if deg < 0 || n != len(y) || n < deg+1 {
		err := zerr.Wrap(ErrDegenerate, "polynomial fit")
		err = zerr.With(err, "points", n)
		return nil, zerr.With(err, "degree", deg)
	}
	cols := deg + 1
	v := mat.NewDense(n, cols, nil)
	for i, xi := range x {
		p := 1.0
		for j := 0; j < cols; j++ {
			v.Set(i, j, p)
			p *= xi
		}
	}

	// Column scaling keeps the Vandermonde matrix well conditioned for nanometre inputs.
	scale := make([]float64, cols)
	for j := range scale {
		col := mat.Col(nil, j, v)
		scale[j] = floats.Norm(col, 2)
		if scale[j] == 0 {
			scale[j] = 1
		}
		for i := 0; i < n; i++ {
			v.Set(i, j, v.At(i, j)/scale[j])
		}
	}

	var coef mat.VecDense
	if err := coef.SolveVec(v, mat.NewVecDense(n, Clone(y))); err != nil {
		var cond mat.Condition
		if !asCondition(err, &cond) {
			return nil, zerr.Wrap(ErrSingular, err.Error())
		}
	}
	out := make([]float64, cols)
	for j := range out {
		out[j] = coef.AtVec(j) / scale[j]
	}
	if !Finite(out...) {
		return nil, zerr.Wrap(ErrSingular, "polynomial fit")
	}
	return out, nil
}

// Polyval evaluates the polynomial c (constant term first) at x.
func Polyval(c []float64, x float64) float64 {
	var acc float64
	for i := len(c) - 1; i >= 0; i-- {
		acc = acc*x + c[i]
	}
	return acc
}

// PolyvalDeriv evaluates the d-th derivative of the polynomial c at x.
func PolyvalDeriv(c []float64, x float64, d int) float64 {
	if d == 0 {
		return Polyval(c, x)
	}
	if d >= len(c) {
		return 0
	}
	dc := make([]float64, len(c)-d)
	for i := range dc {
		k := i + d
		f := 1.0
		for m := k; m > k-d; m-- {
			f *= float64(m)
		}
		dc[i] = c[k] * f
	}
	return Polyval(dc, x)
}

// PolyvalAll evaluates c at every sample of x.
func PolyvalAll(c []float64, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = Polyval(c, xi)
	}
	return out
}

func factorial(n int) float64 {
	return math.Gamma(float64(n) + 1)
}

// asCondition reports whether err only warns about an ill-conditioned but solved system.
func asCondition(err error, cond *mat.Condition) bool {
	return errors.As(err, cond)
}

package numeric

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"go.trai.ch/zerr"
)

// ErrNoConvergence is returned when a nonlinear fit does not reach a finite optimum.
var ErrNoConvergence = zerr.New("fit did not converge")

// Model evaluates a parametric function at x.
type Model func(x float64, p []float64) float64

// FitOptions tunes CurveFit.
type FitOptions struct {
	MaxIter int
	Tol     float64
}

// DefaultFitOptions mirrors the evaluation budget of a MINPACK-style least-squares driver.
func DefaultFitOptions() FitOptions {
	return FitOptions{MaxIter: 1000, Tol: 1e-12}
}

// Fit is the outcome of CurveFit.
type Fit struct {
	Params []float64
	R2     float64
	Iter   int
}

// CurveFit fits model to (x, y) by Levenberg-Marquardt least squares starting from p0.
func CurveFit(model Model, x, y, p0 []float64, opts FitOptions) (Fit, error) {
	n, m := len(x), len(p0)
	if n != len(y) || n < m || m == 0 {
		err := zerr.Wrap(ErrDegenerate, "curve fit")
		err = zerr.With(err, "points", n)
		return Fit{}, zerr.With(err, "params", m)
	}
	if opts.MaxIter <= 0 {
		opts = DefaultFitOptions()
	}

	p := Clone(p0)
	r := make([]float64, n)
	cost := residuals(model, x, y, p, r)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return Fit{}, zerr.Wrap(ErrNoConvergence, "initial residuals are not finite")
	}

	jac := mat.NewDense(n, m, nil)
	var jtj mat.SymDense
	jtr := mat.NewVecDense(m, nil)
	trial := make([]float64, m)
	rTrial := make([]float64, n)
	lambda := 1e-3

	iter := 0
	for ; iter < opts.MaxIter && cost > 0; iter++ {
		jacobian(model, x, p, jac)
		jtj.SymOuterK(1, jac.T())
		jtr.MulVec(jac.T(), mat.NewVecDense(n, r))

		improved := false
		for lambda < 1e16 {
			damped := mat.NewSymDense(m, nil)
			damped.CopySym(&jtj)
			for i := 0; i < m; i++ {
				d := jtj.At(i, i)
				if d <= 0 {
					d = 1e-300
				}
				damped.SetSym(i, i, d*(1+lambda))
			}
			var chol mat.Cholesky
			if !chol.Factorize(damped) {
				lambda *= 10
				continue
			}
			var step mat.VecDense
			if err := chol.SolveVecTo(&step, jtr); err != nil {
				var cond mat.Condition
				if !asCondition(err, &cond) {
					lambda *= 10
					continue
				}
			}
			for i := range trial {
				trial[i] = p[i] + step.AtVec(i)
			}
			next := residuals(model, x, y, trial, rTrial)
			if !math.IsNaN(next) && next < cost {
				rel := (cost - next) / cost
				stepNorm := floats.Norm(step.RawVector().Data, 2)
				copy(p, trial)
				copy(r, rTrial)
				cost = next
				lambda = math.Max(lambda/10, 1e-12)
				improved = true
				if rel < opts.Tol || stepNorm <= opts.Tol*(floats.Norm(p, 2)+opts.Tol) {
					return finish(model, x, y, p, iter+1)
				}
				break
			}
			lambda *= 10
		}
		if !improved {
			break
		}
	}
	return finish(model, x, y, p, iter)
}

func finish(model Model, x, y, p []float64, iter int) (Fit, error) {
	if !Finite(p...) {
		return Fit{}, zerr.Wrap(ErrNoConvergence, "parameters are not finite")
	}
	est := make([]float64, len(x))
	for i, xi := range x {
		est[i] = model(xi, p)
	}
	return Fit{Params: p, R2: RSquared(est, y), Iter: iter}, nil
}

func residuals(model Model, x, y, p, r []float64) float64 {
	var cost float64
	for i, xi := range x {
		r[i] = y[i] - model(xi, p)
		cost += r[i] * r[i]
	}
	return cost
}

// jacobian fills jac with forward-difference partial derivatives of model.
func jacobian(model Model, x, p []float64, jac *mat.Dense) {
	eps := math.Sqrt(2.220446049250313e-16)
	shifted := Clone(p)
	for j := range p {
		h := eps * math.Abs(p[j])
		if h == 0 {
			h = eps
		}
		shifted[j] = p[j] + h
		for i, xi := range x {
			jac.Set(i, j, (model(xi, shifted)-model(xi, p))/h)
		}
		shifted[j] = p[j]
	}
}

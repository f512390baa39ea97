package numeric

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"go.trai.ch/zerr"
)

// ErrDegenerate is returned when the input carries no usable variation.
var ErrDegenerate = zerr.New("degenerate input")

// Mean returns the arithmetic mean of x.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// Variance returns the population variance of x.
func Variance(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.PopVariance(x, nil)
}

// LinRegress fits y = slope*x + intercept and returns the coefficient of determination.
// A constant y yields r2 = 0. A constant x is degenerate.
func LinRegress(x, y []float64) (slope, intercept, r2 float64, err error) {
	if len(x) < 2 || len(x) != len(y) {
		return 0, 0, 0, zerr.With(zerr.Wrap(ErrDegenerate, "linear regression"), "points", len(x))
	}
	if Variance(x) == 0 {
		return 0, 0, 0, ErrDegenerate
	}
	intercept, slope = stat.LinearRegression(x, y, nil, false)
	if Variance(y) == 0 {
		return slope, intercept, 0, nil
	}
	r2 = stat.RSquared(x, y, nil, intercept, slope)
	if !Finite(slope, intercept, r2) {
		return 0, 0, 0, ErrDegenerate
	}
	return slope, intercept, r2, nil
}

// RSquared returns the coefficient of determination of estimates against values.
func RSquared(estimates, values []float64) float64 {
	if len(values) == 0 || Variance(values) == 0 {
		return 0
	}
	return stat.RSquaredFrom(estimates, values, nil)
}

// Percentile returns the p-th percentile of x (0 <= p <= 100), interpolating linearly
// between the closest ranks.
func Percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(x)
	slices.Sort(sorted)
	p = math.Max(0, math.Min(100, p))
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Median returns the median of x.
func Median(x []float64) float64 {
	return Percentile(x, 50)
}

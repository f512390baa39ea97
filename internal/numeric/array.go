// Package numeric provides the array routines the curve algorithms are built from.
package numeric

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Nearest returns the index of the sample of s closest to v, preferring the lowest index on ties.
// It returns -1 for an empty slice.
func Nearest(s []float64, v float64) int {
	if len(s) == 0 {
		return -1
	}
	return floats.NearestIdx(s, v)
}

// SearchSorted returns the leftmost insertion index of v in the ascending slice a.
func SearchSorted(a []float64, v float64) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= v })
}

// Arange returns the values start, start+step, ... strictly below stop.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || !(stop > start) {
		return nil
	}
	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Interp evaluates the piecewise linear interpolant through (xp, fp) at each x.
// xp must be ascending. Points outside the range take the edge values.
func Interp(x, xp, fp []float64) []float64 {
	out := make([]float64, len(x))
	if len(xp) == 0 {
		return out
	}
	last := len(xp) - 1
	for i, v := range x {
		switch {
		case v <= xp[0]:
			out[i] = fp[0]
		case v >= xp[last]:
			out[i] = fp[last]
		default:
			j := SearchSorted(xp, v)
			if xp[j] == v {
				out[i] = fp[j]
				continue
			}
			x0, x1 := xp[j-1], xp[j]
			out[i] = fp[j-1] + (fp[j]-fp[j-1])*(v-x0)/(x1-x0)
		}
	}
	return out
}

// Extrapolate evaluates the piecewise linear interpolant through (xp, fp) at each x,
// extending the first and last segments beyond the data.
func Extrapolate(x, xp, fp []float64) []float64 {
	out := make([]float64, len(x))
	if len(xp) < 2 {
		if len(xp) == 1 {
			for i := range out {
				out[i] = fp[0]
			}
		}
		return out
	}
	last := len(xp) - 1
	for i, v := range x {
		j := SearchSorted(xp, v)
		switch {
		case j <= 0:
			j = 1
		case j > last:
			j = last
		}
		x0, x1 := xp[j-1], xp[j]
		out[i] = fp[j-1] + (fp[j]-fp[j-1])*(v-x0)/(x1-x0)
	}
	return out
}

// Reversed returns a reversed copy of s.
func Reversed(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	floats.Reverse(out)
	return out
}

// Clone returns a copy of s.
func Clone(s []float64) []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

// Increasing reports whether the last sample of s is above the first.
func Increasing(s []float64) bool {
	return len(s) > 1 && s[len(s)-1] > s[0]
}

// Finite reports whether every sample of s is finite.
func Finite(s ...float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Step returns the mean sample spacing (max-min)/(n-1) of s.
func Step(s []float64) float64 {
	if len(s) < 2 {
		return 0
	}
	return (floats.Max(s) - floats.Min(s)) / float64(len(s)-1)
}

// OddWindow rounds w up to the next odd number.
func OddWindow(w int) int {
	if w%2 == 0 {
		return w + 1
	}
	return w
}

// Between returns the samples of x and y from the one nearest lo up to, but excluding,
// the one nearest hi. The result is empty when hi lies before lo.
func Between(x, y []float64, lo, hi float64) ([]float64, []float64) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, nil
	}
	jmin, jmax := Nearest(x, lo), Nearest(x, hi)
	if jmax <= jmin {
		return nil, nil
	}
	return x[jmin:jmax], y[jmin:jmax]
}

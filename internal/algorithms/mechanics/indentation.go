// Package mechanics converts force curves into indentation curves and elasticity spectra.
package mechanics

import (
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// Indentation slices the curve from the sample nearest the contact point and converts
// piezo travel into indentation depth by subtracting the cantilever deflection f/k.
// A non-finite or zero spring constant is replaced by 1.
func Indentation(z, f []float64, cp domain.ContactPoint, k float64, zeroForce bool) (domain.IndentationCurve, bool) {
	if len(z) == 0 || len(z) != len(f) {
		return domain.IndentationCurve{}, false
	}
	if len(z) > 1 && z[0] > z[len(z)-1] {
		z, f = numeric.Reversed(z), numeric.Reversed(f)
	}
	i := numeric.Nearest(z, cp.Z)
	z, f = z[i:], f[i:]
	if len(z) < 2 {
		return domain.IndentationCurve{}, false
	}
	if !numeric.Finite(k) || k == 0 {
		k = 1
	}

	out := domain.IndentationCurve{
		Zi: make([]float64, len(z)),
		Fi: make([]float64, len(f)),
	}
	for j := range z {
		force := f[j]
		if zeroForce {
			force -= cp.F
		}
		out.Zi[j] = (z[j] - cp.Z) - force/k
		out.Fi[j] = force
	}
	return out, true
}

package mechanics

import (
	"math"

	"go.trai.ch/nanoindent/internal/core/domain"
)

// pyramidForceFactor is the Bilodeau prefactor of the pyramid force law.
const pyramidForceFactor = 0.7453

// ContactLaw returns the Hertzian force at indentation x for a reduced modulus
// E/(1-ν²) and the tip described by meta. Negative depths are treated as their magnitude.
// ok is false for an unknown geometry.
func ContactLaw(meta domain.Metadata) (law func(x, reduced float64) float64, ok bool) {
	tan := math.Tan(meta.TipAngle * math.Pi / 180)
	r := meta.TipRadius
	switch meta.TipGeometry {
	case domain.GeometrySphere:
		return func(x, e float64) float64 {
			x = math.Abs(x)
			return 4.0 / 3.0 * e * math.Sqrt(r*x*x*x)
		}, true
	case domain.GeometryCylinder:
		return func(x, e float64) float64 {
			return 2 * e * r * math.Abs(x)
		}, true
	case domain.GeometryCone:
		return func(x, e float64) float64 {
			return 2 * e * tan / math.Pi * x * x
		}, true
	case domain.GeometryPyramid:
		return func(x, e float64) float64 {
			return pyramidForceFactor * e * tan * x * x
		}, true
	default:
		return nil, false
	}
}

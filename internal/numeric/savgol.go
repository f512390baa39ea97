package numeric

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"go.trai.ch/zerr"
)

// ErrInvalidWindow is returned when a smoothing window does not fit the data or the polynomial order.
var ErrInvalidWindow = zerr.New("invalid smoothing window")

// SavgolCoeffs returns the Savitzky-Golay weights that estimate the deriv-th derivative
// at the centre of an odd window of the given length, for samples spaced delta apart.
func SavgolCoeffs(window, order, deriv int, delta float64) ([]float64, error) {
	if window < 1 || window%2 == 0 || order >= window || deriv > order || deriv < 0 {
		err := zerr.Wrap(ErrInvalidWindow, "savitzky-golay coefficients")
		err = zerr.With(err, "window", window)
		return nil, zerr.With(err, "order", order)
	}
	half := window / 2
	cols := order + 1
	v := mat.NewDense(window, cols, nil)
	for j := 0; j < window; j++ {
		x := float64(j - half)
		p := 1.0
		for i := 0; i < cols; i++ {
			v.Set(j, i, p)
			p *= x
		}
	}

	// Least-squares solution against the identity yields the pseudo-inverse, one row per power.
	eye := mat.NewDiagDense(window, nil)
	for j := 0; j < window; j++ {
		eye.SetDiag(j, 1)
	}
	var pinv mat.Dense
	if err := pinv.Solve(v, eye); err != nil {
		var cond mat.Condition
		if !asCondition(err, &cond) {
			return nil, zerr.Wrap(ErrSingular, err.Error())
		}
	}

	scale := factorial(deriv) / math.Pow(delta, float64(deriv))
	out := make([]float64, window)
	for j := range out {
		out[j] = pinv.At(deriv, j) * scale
	}
	return out, nil
}

// Savgol smooths y, or estimates its deriv-th derivative, with a Savitzky-Golay filter.
// Samples within half a window of either edge are taken from a polynomial fitted to
// the first or last full window.
func Savgol(y []float64, window, order, deriv int, delta float64) ([]float64, error) {
	n := len(y)
	if window > n {
		err := zerr.Wrap(ErrInvalidWindow, "window longer than data")
		err = zerr.With(err, "window", window)
		return nil, zerr.With(err, "samples", n)
	}
	coeffs, err := SavgolCoeffs(window, order, deriv, delta)
	if err != nil {
		return nil, err
	}
	half := window / 2
	out := make([]float64, n)
	for i := half; i < n-half; i++ {
		var acc float64
		for j, c := range coeffs {
			acc += c * y[i-half+j]
		}
		out[i] = acc
	}

	positions := make([]float64, window)
	for j := range positions {
		positions[j] = float64(j)
	}
	scale := 1 / math.Pow(delta, float64(deriv))

	head, err := Polyfit(positions, y[:window], order)
	if err != nil {
		return nil, err
	}
	for i := 0; i < half; i++ {
		out[i] = PolyvalDeriv(head, float64(i), deriv) * scale
	}

	tail, err := Polyfit(positions, y[n-window:], order)
	if err != nil {
		return nil, err
	}
	for j := window - half; j < window; j++ {
		out[n-window+j] = PolyvalDeriv(tail, float64(j), deriv) * scale
	}
	return out, nil
}

package numeric

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
	"go.trai.ch/zerr"
)

// MedianFilter replaces every sample by the median of the odd-length window around it.
// Samples beyond either edge count as zero.
func MedianFilter(y []float64, kernel int) []float64 {
	kernel = OddWindow(max(kernel, 1))
	half := kernel / 2
	out := make([]float64, len(y))
	win := make([]float64, kernel)
	for i := range y {
		for j := 0; j < kernel; j++ {
			k := i - half + j
			if k < 0 || k >= len(y) {
				win[j] = 0
				continue
			}
			win[j] = y[k]
		}
		sorted := slices.Clone(win)
		slices.Sort(sorted)
		out[i] = sorted[half]
	}
	return out
}

// Notch designs a second-order IIR notch filter at the normalized frequency w0
// (1 is the Nyquist frequency) with quality factor q.
func Notch(w0, q float64) (b, a [3]float64, err error) {
	if !(w0 > 0 && w0 < 1) || q <= 0 {
		err := zerr.Wrap(ErrDegenerate, "notch frequency must lie strictly between 0 and 1")
		return b, a, zerr.With(err, "w0", w0)
	}
	bw := w0 / q * math.Pi
	w := w0 * math.Pi
	beta := math.Tan(bw / 2)
	gain := 1 / (1 + beta)
	b = [3]float64{gain, -2 * math.Cos(w) * gain, gain}
	a = [3]float64{1, -2 * gain * math.Cos(w), 2*gain - 1}
	return b, a, nil
}

// FiltFilt applies the biquad (b, a) forwards and backwards for zero phase distortion.
// The signal is extended by odd reflection at both ends, as long as it is long enough.
func FiltFilt(b, a [3]float64, x []float64) []float64 {
	pad := 3 * len(a)
	if len(x) <= pad {
		pad = len(x) - 1
	}
	if pad < 1 {
		return Clone(x)
	}
	n := len(x)
	ext := make([]float64, 0, n+2*pad)
	for i := pad; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := n - 2; i >= n-1-pad; i-- {
		ext = append(ext, 2*x[n-1]-x[i])
	}

	zi := lfilterZi(b, a)
	fwd := lfilter(b, a, ext, [2]float64{zi[0] * ext[0], zi[1] * ext[0]})
	rev := Reversed(fwd)
	bwd := lfilter(b, a, rev, [2]float64{zi[0] * rev[0], zi[1] * rev[0]})
	res := Reversed(bwd)
	return Clone(res[pad : pad+n])
}

// lfilter runs the direct form II transposed biquad with initial state z.
func lfilter(b, a [3]float64, x []float64, z [2]float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		yi := b[0]*xi + z[0]
		z[0] = b[1]*xi - a[1]*yi + z[1]
		z[1] = b[2]*xi - a[2]*yi
		out[i] = yi
	}
	return out
}

// lfilterZi returns the steady-state initial conditions for a unit step input.
func lfilterZi(b, a [3]float64) [2]float64 {
	// Solve (I - A^T) zi = B where A is the companion matrix of a.
	m := mat.NewDense(2, 2, []float64{
		1 + a[1], -1,
		a[2], 1,
	})
	rhs := mat.NewVecDense(2, []float64{b[1] - a[1]*b[0], b[2] - a[2]*b[0]})
	var zi mat.VecDense
	if err := zi.SolveVec(m, rhs); err != nil {
		var cond mat.Condition
		if !asCondition(err, &cond) {
			return [2]float64{}
		}
	}
	return [2]float64{zi.AtVec(0), zi.AtVec(1)}
}

// FindPeaks returns the indices of local maxima of x whose topographic prominence is at
// least minProminence. Flat peaks report their middle sample.
func FindPeaks(x []float64, minProminence float64) []int {
	var peaks []int
	n := len(x)
	for i := 1; i < n-1; {
		if !(x[i-1] < x[i]) {
			i++
			continue
		}
		ahead := i + 1
		for ahead < n-1 && x[ahead] == x[i] {
			ahead++
		}
		if x[ahead] < x[i] {
			peak := (i + ahead - 1) / 2
			if Prominence(x, peak) >= minProminence {
				peaks = append(peaks, peak)
			}
			i = ahead
			continue
		}
		i++
	}
	return peaks
}

// Prominence returns how far the peak at index p stands above the higher of its two bases.
func Prominence(x []float64, p int) float64 {
	leftMin := x[p]
	for i := p - 1; i >= 0 && x[i] <= x[p]; i-- {
		leftMin = math.Min(leftMin, x[i])
	}
	rightMin := x[p]
	for i := p + 1; i < len(x) && x[i] <= x[p]; i++ {
		rightMin = math.Min(rightMin, x[i])
	}
	return x[p] - math.Max(leftMin, rightMin)
}

// RFFT returns the non-negative frequency terms of the discrete Fourier transform of y.
func RFFT(y []float64) []complex128 {
	if len(y) == 0 {
		return nil
	}
	return fourier.NewFFT(len(y)).Coefficients(nil, y)
}

// IRFFT inverts RFFT for a real sequence of length n.
func IRFFT(coeff []complex128, n int) []float64 {
	if n == 0 {
		return nil
	}
	seq := fourier.NewFFT(n).Sequence(nil, coeff)
	for i := range seq {
		seq[i] /= float64(n)
	}
	return seq
}

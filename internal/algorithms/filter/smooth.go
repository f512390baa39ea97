package filter

import (
	"math"

	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/numeric"
)

// SavgolSmooth smooths the force with a Savitzky-Golay filter whose window is given in nm.
type SavgolSmooth struct{}

// Info implements registry.Algorithm.
func (SavgolSmooth) Info() domain.AlgorithmInfo {
	s := param("window_size", domain.ParamFloat, "Window size for filtering [nm]", 25)
	s.Min = domain.Bound(0)
	o := param("polyorder", domain.ParamInt, "Polynomial order for smoothing", 3)
	o.Min = domain.Bound(0)
	return info("savgolsmooth", "Savitzky-Golay smoothing that preserves steps", s, o)
}

// Apply implements registry.Filter.
func (SavgolSmooth) Apply(z, f []float64, p domain.Params) []float64 {
	if len(f) == 0 {
		return unchanged(f)
	}
	step := numeric.Step(z)
	if step <= 0 {
		step = 1
	}
	// The nm window is truncated to whole nm before conversion.
	win := numeric.OddWindow(max(1, int(math.Trunc(p.Float("window_size"))*1e-9/step)))
	order := min(p.Int("polyorder"), win-1)
	out, err := numeric.Savgol(f, win, order, 0, 1)
	if err != nil {
		return unchanged(f)
	}
	return out
}

// Median replaces every force sample with the median of the window around it.
type Median struct{}

// Info implements registry.Algorithm.
func (Median) Info() domain.AlgorithmInfo {
	return info("median", "Median filter over the force",
		param("window_size", domain.ParamInt, "Window size for median filter (odd)", 5),
	)
}

// Apply implements registry.Filter.
func (Median) Apply(_, f []float64, p domain.Params) []float64 {
	if len(f) == 0 {
		return unchanged(f)
	}
	return numeric.MedianFilter(f, numeric.OddWindow(max(3, p.Int("window_size"))))
}

// Notch removes a periodic oscillation whose period is given in nm of piezo travel.
type Notch struct{}

// Info implements registry.Algorithm.
func (Notch) Info() domain.AlgorithmInfo {
	period := param("period_nm", domain.ParamFloat, "Notch period [nm]", 100)
	period.Min = domain.Bound(0)
	return info("notch", "IIR notch filter against periodic noise",
		period,
		param("quality_factor", domain.ParamInt, "Quality factor for notch filter", 10),
	)
}

// Apply implements registry.Filter.
func (Notch) Apply(z, f []float64, p domain.Params) []float64 {
	n := len(f)
	if n < 2 || len(z) != n {
		return unchanged(f)
	}
	dz := math.Abs(z[n-1]-z[0]) / float64(n-1)
	// Normalized to the Nyquist frequency of one cycle per two samples.
	w0 := 2 * dz / (p.Float("period_nm") * 1e-9)
	b, a, err := numeric.Notch(w0, math.Max(1, p.Float("quality_factor")))
	if err != nil {
		return unchanged(f)
	}
	return numeric.FiltFilt(b, a, f)
}

// Prominence removes prominent peaks from the force spectrum and interpolates across the gap.
type Prominence struct{}

// Info implements registry.Algorithm.
func (Prominence) Info() domain.AlgorithmInfo {
	return info("prominence", "Suppresses prominent Fourier peaks to remove oscillations",
		param("prominence", domain.ParamInt, "Peak prominence threshold", 40),
		param("threshold", domain.ParamInt, "Minimum frequency to filter", 25),
		param("band", domain.ParamInt, "Bandwidth around peaks [%]", 30),
	)
}

// minGoodBins is the number of spectrum bins that must survive for the filter to apply.
const minGoodBins = 50

// Apply implements registry.Filter.
func (Prominence) Apply(_, f []float64, p domain.Params) []float64 {
	if len(f) == 0 {
		return unchanged(f)
	}
	ff := numeric.RFFT(f)
	logmag := make([]float64, len(ff))
	for i, c := range ff {
		logmag[i] = math.Log(math.Hypot(real(c), imag(c)))
	}

	good := make([]bool, len(ff))
	for i := range good {
		good[i] = true
	}
	band, threshold := p.Float("band"), p.Float("threshold")
	for _, peak := range numeric.FindPeaks(logmag, p.Float("prominence")) {
		if float64(peak) <= threshold {
			continue
		}
		jwin := int(float64(peak) * band / 100)
		lo := max(peak-jwin, 0)
		hi := min(peak+jwin+1, len(good)-1)
		for i := lo; i < hi; i++ {
			good[i] = false
		}
	}

	var xs, re, im []float64
	for i, ok := range good {
		if ok {
			xs = append(xs, float64(i))
			re = append(re, real(ff[i]))
			im = append(im, imag(ff[i]))
		}
	}
	if len(xs) < minGoodBins {
		return unchanged(f)
	}
	all := numeric.Arange(0, float64(len(ff)), 1)
	re = numeric.Extrapolate(all, xs, re)
	im = numeric.Extrapolate(all, xs, im)
	for i := range ff {
		ff[i] = complex(re[i], im[i])
	}
	return numeric.IRFFT(ff, len(f))
}

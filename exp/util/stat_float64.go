package util

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Z value of the two-sided 95% Normal-approximation confidence interval.
const Z95 = 1.96

// Finite drops NaN and ±Inf values. Empty CSV cells are read as NaN.
func Finite(v []float64) []float64 {
	out := make([]float64, 0, len(v))
	for _, f := range v {
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			out = append(out, f)
		}
	}
	return out
}

func MeanFloat64(v ...float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return stat.Mean(v, nil)
}

// SSDFloat64 is the sample standard deviation (n-1 denominator).
// It is NaN for fewer than two values.
func SSDFloat64(v ...float64) float64 {
	if len(v) < 2 {
		return math.NaN()
	}
	return stat.StdDev(v, nil)
}

func StdErrMeanFloat(ssd float64, n int) float64 {
	return ssd / math.Sqrt(float64(n))
}

// HalfWidth95 returns half the width of the 95% confidence interval of
// the mean: 1.96 * SSD / sqrt(n). It is 0 when n <= 1 or the deviation
// is undefined.
func HalfWidth95(v ...float64) float64 {
	if len(v) <= 1 {
		return 0
	}
	hw := Z95 * StdErrMeanFloat(SSDFloat64(v...), len(v))
	if math.IsNaN(hw) || math.IsInf(hw, 0) {
		return 0
	}
	return hw
}

// Estimate is a sample mean with its 95% confidence half-width.
type Estimate struct {
	Mean      float64
	HalfWidth float64
	N         int
}

// NewEstimate ignores non-finite values. An empty sample gives the zero
// Estimate.
func NewEstimate(v []float64) Estimate {
	v = Finite(v)
	return Estimate{
		Mean:      MeanFloat64(v...),
		HalfWidth: HalfWidth95(v...),
		N:         len(v),
	}
}

// Scale divides mean and half-width by factor.
func (e Estimate) Scale(factor float64) Estimate {
	if factor == 0 {
		return e
	}
	return Estimate{Mean: e.Mean / factor, HalfWidth: e.HalfWidth / factor, N: e.N}
}

// MeansOf collects the means of a list of estimates.
func MeansOf(es []Estimate) []float64 {
	means := make([]float64, len(es))
	for i, e := range es {
		means[i] = e.Mean
	}
	return means
}

func MaxFloat64(v ...float64) float64 {
	if len(v) == 0 {
		return 0
	}
	max := v[0]
	for _, f := range v[1:] {
		if f > max {
			max = f
		}
	}
	return max
}

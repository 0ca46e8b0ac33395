package util

import (
	"math"

	pm "github.com/pkg/math"
)

// CommonLength is the length of the shortest series.
func CommonLength(series ...[]float64) int {
	if len(series) == 0 {
		return 0
	}
	lens := make([]uint64, len(series))
	for i, s := range series {
		lens[i] = uint64(len(s))
	}
	return int(pm.MinUint64N(lens...))
}

// LongestLength is the length of the longest series.
func LongestLength(series ...[]float64) int {
	if len(series) == 0 {
		return 0
	}
	lens := make([]uint64, len(series))
	for i, s := range series {
		lens[i] = uint64(len(s))
	}
	return int(pm.MaxUint64N(lens...))
}

// MeanSeries averages the series point by point after truncating all of
// them to the shortest one. Samples past the common length are dropped,
// not resampled. Non-finite samples count as zero.
func MeanSeries(series ...[]float64) []float64 {
	n := CommonLength(series...)
	if n == 0 {
		return nil
	}
	mean := make([]float64, n)
	for _, s := range series {
		for i := 0; i < n; i++ {
			if !math.IsNaN(s[i]) && !math.IsInf(s[i], 0) {
				mean[i] += s[i]
			}
		}
	}
	for i := range mean {
		mean[i] /= float64(len(series))
	}
	return mean
}

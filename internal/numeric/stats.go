// Package numeric implements the exact and approximate statistical
// primitives used to turn per-site aggregate counts into annotation
// values: sample mean/variance, median, Pearson correlation, the
// incomplete beta function, the complementary error function, the exact
// binomial tail, Welch's t-test, Mann-Whitney U, and Fisher's exact test.
package numeric

import (
	"math"

	gonumstat "gonum.org/v1/gonum/stat"
)

// MeanVariance returns the sample mean and unbiased variance of x, skipping
// NaN entries. ok is false when fewer than two non-NaN values are present.
// The moments themselves are computed by gonum's stat.MeanVariance once
// NaNs have been filtered out; filtering is this package's own concern
// since gonum's routine has no missing-data convention.
func MeanVariance(x []float64) (mean, variance float64, n int, ok bool) {
	filtered := make([]float64, 0, len(x))
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		filtered = append(filtered, v)
	}
	n = len(filtered)
	if n < 2 {
		return 0, 0, n, false
	}
	mean, variance = gonumstat.MeanVariance(filtered, nil)
	return mean, variance, n, true
}

// quickSelect rearranges buf in place so that buf[k] holds the value that
// would occupy position k were buf fully sorted ascending; elements before
// k are all <= buf[k] and elements after are all >= buf[k]. Lomuto
// partition scheme.
func quickSelect(buf []float64, k int) float64 {
	lo, hi := 0, len(buf)-1
	for lo < hi {
		pivot := buf[hi]
		i := lo
		for j := lo; j < hi; j++ {
			if buf[j] < pivot {
				buf[i], buf[j] = buf[j], buf[i]
				i++
			}
		}
		buf[i], buf[hi] = buf[hi], buf[i]
		switch {
		case k == i:
			return buf[i]
		case k < i:
			hi = i - 1
		default:
			lo = i + 1
		}
	}
	return buf[lo]
}

// Median computes the median of x via selection rather than a full sort.
// Callers are responsible for filtering NaNs before calling; an empty
// slice yields NaN.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	buf := append([]float64(nil), x...)
	mid := n / 2
	upper := quickSelect(buf, mid)
	if n%2 == 1 {
		return upper
	}
	// buf[:mid] is now all <= buf[mid]; the lower middle element is the
	// max of that left partition.
	lower := buf[0]
	for _, v := range buf[1:mid] {
		if v > lower {
			lower = v
		}
	}
	return (lower + upper) / 2
}

// Pearson returns the Pearson correlation coefficient of paired samples xs
// and ys (equal length, already filtered of missing pairs), via gonum's
// stat.Correlation. Returns NaN for fewer than two pairs or a degenerate
// (zero-variance) side, matching gonum's own convention.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return math.NaN()
	}
	return gonumstat.Correlation(xs, ys, nil)
}

package numeric

import "math"

// binomRow holds the incremental state for the exact two-sided binomial
// tail at a fixed n: the running pmf term and the cumulative sum of terms
// j=0..lastJ, extended lazily as larger k values are requested.
type binomRow struct {
	lastJ int
	term  float64
	cum   []float64
}

// BinomialTailCache is the triangular, monotonically-growing table behind
// BinomExact. It is not safe for concurrent use; callers own and serialise
// access to a single instance, per the single-owner pipeline model.
type BinomialTailCache struct {
	rows map[int]*binomRow
}

// NewBinomialTailCache returns an empty cache.
func NewBinomialTailCache() *BinomialTailCache {
	return &BinomialTailCache{rows: make(map[int]*binomRow)}
}

// Release drops all cached rows. Mirrors the sentinel n<0 call described
// in the spec for BinomExact.
func (c *BinomialTailCache) Release() {
	c.rows = make(map[int]*binomRow)
}

// Tail returns the exact two-sided binomial tail probability at p=1/2 for
// observing a count as extreme as k out of n trials. For n > 1000 it
// defers to a regularised-incomplete-beta formulation to avoid building an
// enormous cache row; for n <= 1000 it grows (and reuses) a triangular
// cache of partial sums. A sentinel call with n < 0 releases the cache and
// returns 0.
func (c *BinomialTailCache) Tail(k, n int) float64 {
	if n < 0 {
		c.Release()
		return 0
	}
	if k < 0 || k > n {
		return math.NaN()
	}
	if n%2 == 0 && k == n/2 {
		return 1.0
	}
	if n > 1000 {
		return binomTailLarge(k, n)
	}

	kk := k
	if n-k < kk {
		kk = n - k
	}

	row, ok := c.rows[n]
	if !ok {
		row = &binomRow{lastJ: 0, term: math.Exp2(-float64(n)), cum: []float64{math.Exp2(-float64(n))}}
		c.rows[n] = row
	}
	for row.lastJ < kk {
		j := row.lastJ + 1
		row.term = row.term * float64(n-j+1) / float64(j)
		row.cum = append(row.cum, row.cum[len(row.cum)-1]+row.term)
		row.lastJ = j
	}

	tail := 2 * row.cum[kk]
	if tail > 1 {
		tail = 1
	}
	return tail
}

// binomTailLarge computes the two-sided binomial tail at p=1/2 via the
// regularised incomplete beta identity P(X<=k) = I_{1-p}(n-k, k+1), used
// when n is too large for the triangular cache to be worth building.
func binomTailLarge(k, n int) float64 {
	kk := k
	if n-k < kk {
		kk = n - k
	}
	p := 2 * Ix(0.5, float64(n-kk), float64(kk+1))
	if p > 1 {
		p = 1
	}
	return p
}

// defaultBinomialCache backs the package-level convenience function below.
var defaultBinomialCache = NewBinomialTailCache()

// BinomExact is the exact two-sided binomial tail at p=1/2 using the
// package-wide default cache. Use a dedicated *BinomialTailCache directly
// when isolation from other callers is required.
func BinomExact(k, n int) float64 {
	return defaultBinomialCache.Tail(k, n)
}

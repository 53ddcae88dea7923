package numeric

import "math"

// WelchT returns the two-tailed p-value of Welch's t-test comparing
// samples a and b. Requires at least two non-NaN observations per side;
// otherwise returns +Inf, the sentinel for insufficient data.
func WelchT(a, b []float64) float64 {
	meanA, varA, nA, okA := MeanVariance(a)
	meanB, varB, nB, okB := MeanVariance(b)
	if !okA || !okB {
		return math.Inf(1)
	}

	nAf, nBf := float64(nA), float64(nB)
	seA := varA / nAf
	seB := varB / nBf
	denom := math.Sqrt(seA + seB)
	if denom == 0 {
		// Both samples have zero variance: not insufficient data, but a
		// degenerate (perfectly concentrated) one. Equal means means no
		// detectable difference; unequal means mean perfect separation.
		if meanA == meanB {
			return 1.0
		}
		return 0.0
	}
	t := (meanA - meanB) / denom

	v := (seA + seB) * (seA + seB) /
		(seA*seA/(nAf-1) + seB*seB/(nBf-1))

	return Ix(v/(v+t*t), v/2, 0.5)
}

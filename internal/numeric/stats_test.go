package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanVariance(t *testing.T) {
	mean, variance, n, ok := MeanVariance([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.True(t, ok)
	assert.Equal(t, 8, n)
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 4.5714285714, variance, 1e-6)
}

func TestMeanVarianceSkipsNaN(t *testing.T) {
	mean, _, n, ok := MeanVariance([]float64{1, math.NaN(), 3, math.NaN()})
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	assert.InDelta(t, 2.0, mean, 1e-9)
}

func TestMeanVarianceInsufficientData(t *testing.T) {
	_, _, n, ok := MeanVariance([]float64{math.NaN(), 1})
	assert.False(t, ok)
	assert.Equal(t, 1, n)
}

func TestMedianOdd(t *testing.T) {
	assert.InDelta(t, 3.0, Median([]float64{5, 1, 3, 2, 4}), 1e-9)
}

func TestMedianEven(t *testing.T) {
	assert.InDelta(t, 2.5, Median([]float64{1, 2, 3, 4}), 1e-9)
}

func TestMedianEmpty(t *testing.T) {
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	in := []float64{5, 1, 3, 2, 4}
	cp := append([]float64(nil), in...)
	Median(in)
	assert.Equal(t, cp, in)
}

func TestPearsonPerfectCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 6, 8, 10}
	assert.InDelta(t, 1.0, Pearson(xs, ys), 1e-9)
}

func TestPearsonAntiCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{10, 8, 6, 4, 2}
	assert.InDelta(t, -1.0, Pearson(xs, ys), 1e-9)
}

func TestPearsonMismatchedLength(t *testing.T) {
	assert.True(t, math.IsNaN(Pearson([]float64{1, 2}, []float64{1})))
}

package cliio

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderParsesHeaderAndSamples(t *testing.T) {
	input := "#CHROM\tPOS\tREF\tNALLELE\tS1\tS2\n" +
		"chr1\t100\tA\t2\t0|1:10,5:0.33:-0.1:1.0\t1/1:.:0.95:.:.\n"
	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, r.Header.Samples)

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "chr1", rec.Chrom)
	assert.Equal(t, 100, rec.Pos)
	assert.Equal(t, "A", rec.Ref)
	assert.Equal(t, 2, rec.NAllele)
	require.Len(t, rec.Samples, 2)

	s1 := rec.Samples[0]
	assert.Equal(t, 0, s1.GT.Allele0)
	assert.Equal(t, 1, s1.GT.Allele1)
	assert.True(t, s1.GT.Phased)
	assert.Equal(t, [2]int{10, 5}, s1.AD)
	assert.True(t, s1.ADPresent)
	assert.InDelta(t, 0.33, s1.BAF, 1e-9)
	assert.InDelta(t, -0.1, s1.LRR, 1e-9)
	assert.InDelta(t, 1.0, s1.F, 1e-9)
	assert.True(t, s1.FPresent)

	s2 := rec.Samples[1]
	assert.Equal(t, 1, s2.GT.Allele0)
	assert.Equal(t, 1, s2.GT.Allele1)
	assert.False(t, s2.ADPresent)
	assert.InDelta(t, 0.95, s2.BAF, 1e-9)
	assert.True(t, math.IsNaN(s2.LRR))
	assert.False(t, s2.FPresent)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderMissingGenotype(t *testing.T) {
	input := "#CHROM\tPOS\tREF\tNALLELE\tS1\n" +
		"chr1\t1\tA\t2\t.:.:.:.:.\n"
	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)
	rec, err := r.Next()
	require.NoError(t, err)
	assert.False(t, rec.Samples[0].GT.Present())
}

func TestReaderRejectsMalformedHeader(t *testing.T) {
	_, err := NewReader(strings.NewReader("not a header\n"))
	assert.Error(t, err)
}

func TestReaderRejectsWrongColumnCount(t *testing.T) {
	input := "#CHROM\tPOS\tREF\tNALLELE\tS1\n" +
		"chr1\t1\tA\t2\n"
	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)
	_, err = r.Next()
	assert.Error(t, err)
}

func TestReaderSkipsBlankAndCommentLines(t *testing.T) {
	input := "#CHROM\tPOS\tREF\tNALLELE\tS1\n" +
		"\n# a comment\nchr1\t1\tA\t2\t0/0:.:.:.:.\n"
	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)
	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "chr1", rec.Chrom)
}

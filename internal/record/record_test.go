package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleAt(gt Genotype, ad [2]int, adPresent bool, baf, lrr float64, f float64, fPresent bool, sex Sex) Sample {
	return Sample{GT: gt, AD: ad, ADPresent: adPresent, BAF: baf, LRR: lrr, F: f, FPresent: fPresent, Sex: sex}
}

func TestGenotypePresent(t *testing.T) {
	assert.True(t, Genotype{Allele0: 0, Allele1: 1}.Present())
	assert.False(t, Genotype{Allele0: -1, Allele1: 1}.Present())
	assert.False(t, Genotype{Allele0: 0, Allele1: -1}.Present())
	assert.False(t, Genotype{Allele0: -1, Allele1: -1}.Present())
}

func TestAggregateSkipsMissingGenotype(t *testing.T) {
	rec := &Record{
		Chrom: "chr1", Pos: 100, Ref: "A", NAllele: 2,
		Samples: []Sample{
			sampleAt(Genotype{Allele0: -1, Allele1: -1}, [2]int{}, false, math.NaN(), math.NaN(), 0, false, SexMale),
		},
	}
	agg := NewAggregator()
	agg.Aggregate(rec)
	assert.Equal(t, 0, agg.Counts.ACHet)
	assert.Equal(t, [4]int{0, 0, 0, 0}, agg.Counts.ACSex)
}

func TestAggregatePhasedHetCounts(t *testing.T) {
	rec := &Record{
		Chrom: "chr1", Pos: 100, Ref: "A", NAllele: 2,
		Samples: []Sample{
			sampleAt(Genotype{Allele0: 0, Allele1: 1, Phased: true}, [2]int{10, 5}, true, 0.33, -0.1, 1.0, true, SexMale),
			sampleAt(Genotype{Allele0: 1, Allele1: 0, Phased: true}, [2]int{4, 12}, true, 0.75, 0.2, -1.0, true, SexFemale),
		},
	}
	agg := NewAggregator()
	agg.Aggregate(rec)

	assert.Equal(t, 2, agg.Counts.ACHet)
	assert.Equal(t, [2]int{1, 1}, agg.Counts.ACHetSex)
	// paternal(+1) from sample 0, maternal(-1) from sample 1.
	assert.Equal(t, [2]int{1, 1}, agg.Counts.ACHetPhase)
	// fmt_sign: sample0 F=1.0 -> +1, sample1 F=-1.0 -> -1.
	assert.Equal(t, [2]int{1, 1}, agg.Counts.FmtBal)
	// phase*sign: sample0 (+1*+1=+1 concordant), sample1 (-1*-1=+1 concordant).
	assert.Equal(t, [2]int{2, 0}, agg.Counts.FmtBalPhase)

	bafByPhase := agg.BAFByPhase()
	assert.Len(t, bafByPhase[0], 1) // paternal
	assert.Len(t, bafByPhase[1], 1) // maternal
	assert.InDelta(t, 0.33, bafByPhase[0][0], 1e-9)
	assert.InDelta(t, 0.75, bafByPhase[1][0], 1e-9)
}

func TestAggregateMultiallelicNonRefPairIsNotHet(t *testing.T) {
	rec := &Record{
		Chrom: "chr1", Pos: 150, Ref: "A", NAllele: 3,
		Samples: []Sample{
			sampleAt(Genotype{Allele0: 1, Allele1: 2, Phased: true}, [2]int{5, 5}, true, 0.5, 0.0, 0, false, SexMale),
		},
	}
	agg := NewAggregator()
	agg.Aggregate(rec)
	assert.Equal(t, 0, agg.Counts.ACHet)
	assert.Equal(t, [2]int{0, 0}, agg.Counts.ACHetSex)
	assert.Equal(t, [2]int{0, 0}, agg.Counts.ACHetPhase)
	assert.Equal(t, [2]int{0, 0}, agg.Counts.ADHet) // not summed: AD-het accumulation is gated on heterozygosity
	assert.Empty(t, agg.BAFByPhase()[0])
}

func TestAggregateHomozygousSexCounts(t *testing.T) {
	rec := &Record{
		Chrom: "chr1", Pos: 200, Ref: "A", NAllele: 2,
		Samples: []Sample{
			sampleAt(Genotype{Allele0: 0, Allele1: 0}, [2]int{}, false, math.NaN(), math.NaN(), 0, false, SexMale),
			sampleAt(Genotype{Allele0: 1, Allele1: 1}, [2]int{}, false, math.NaN(), math.NaN(), 0, false, SexFemale),
		},
	}
	agg := NewAggregator()
	agg.Aggregate(rec)
	assert.Equal(t, [4]int{1, 0, 0, 1}, agg.Counts.ACSex) // AA_M=1, AA_F=0, nonAA_M=0, nonAA_F=1
	assert.Equal(t, 0, agg.Counts.ACHet)
}

func TestAggregateUnphasedHetHasNoPhaseSign(t *testing.T) {
	rec := &Record{
		Chrom: "chr1", Pos: 300, Ref: "A", NAllele: 2,
		Samples: []Sample{
			sampleAt(Genotype{Allele0: 0, Allele1: 1, Phased: false}, [2]int{}, false, math.NaN(), math.NaN(), 0, false, SexUnknown),
		},
	}
	agg := NewAggregator()
	agg.Aggregate(rec)
	assert.Equal(t, 1, agg.Counts.ACHet)
	assert.Equal(t, [2]int{0, 0}, agg.Counts.ACHetPhase)
}

func TestAggregateADDerivedBAFUsedWhenBAFMissing(t *testing.T) {
	rec := &Record{
		Chrom: "chr1", Pos: 400, Ref: "A", NAllele: 2,
		Samples: []Sample{
			sampleAt(Genotype{Allele0: 0, Allele1: 1, Phased: true}, [2]int{9, 1}, true, math.NaN(), math.NaN(), 0, false, SexUnknown),
		},
	}
	agg := NewAggregator()
	agg.Aggregate(rec)
	bafByPhase := agg.BAFByPhase()
	assert.Len(t, bafByPhase[0], 1)
	want := (1.0 + 0.5) / (9.0 + 1.0 + 1.0)
	assert.InDelta(t, want, bafByPhase[0][0], 1e-9)
	assert.Equal(t, [2]int{9, 1}, agg.Counts.ADHet)
}

func TestAggregateResetsBetweenCalls(t *testing.T) {
	rec1 := &Record{
		Samples: []Sample{
			sampleAt(Genotype{Allele0: 0, Allele1: 1, Phased: true}, [2]int{}, false, 0.4, math.NaN(), 0, false, SexUnknown),
		},
	}
	rec2 := &Record{
		Samples: []Sample{
			sampleAt(Genotype{Allele0: -1, Allele1: -1}, [2]int{}, false, math.NaN(), math.NaN(), 0, false, SexUnknown),
		},
	}
	agg := NewAggregator()
	agg.Aggregate(rec1)
	assert.Equal(t, 1, agg.Counts.ACHet)
	agg.Aggregate(rec2)
	assert.Equal(t, 0, agg.Counts.ACHet)
	assert.Empty(t, agg.BAFByPhase()[0])
}

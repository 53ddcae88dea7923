// Package annotate wires RecordAggregator output into the NumericKernels
// battery of tests, producing the site-level Annotations struct, and
// implements the downstream BAF/LRR correlation described by the spec's
// TestBattery and §4.6 components. Allele inference lives in package
// allele.
package annotate

import (
	"math"

	"variant_annotate_go/internal/numeric"
	"variant_annotate_go/internal/record"
)

// Options gates which optional tests run, mirroring which prerequisite
// fields/config knobs are active for the current run.
type Options struct {
	SexVectorPresent bool
	Phase            bool
	UseF             bool // a sign-carrying format field F is configured
	ADHet            bool
}

// Annotations is the site-level output described in spec.md §6. Each
// optional group carries a Has* flag recording whether its prerequisites
// were met for this record.
type Annotations struct {
	ACHet int

	HasSexTest bool
	ACHetSex   [2]int
	ACSexTest  float64

	HasPhaseTest   bool
	ACHetPhase     [2]int
	ACHetPhaseTest float64

	HasBal  bool
	Bal     [2]int
	BalTest float64

	HasBalPhase  bool
	BalPhase     [2]int
	BalPhaseTest float64

	HasADHet  bool
	ADHet     [2]int
	ADHetTest float64

	HasBAFPhaseTest bool
	BAFPhaseTest    [4]float64 // median_paternal, median_maternal, -log10(welch), -log10(mwu)
}

// Battery wires counts into NumericKernels. It owns its own binomial tail
// cache, consistent with the spec's single-owner cache model.
type Battery struct {
	binom *numeric.BinomialTailCache
}

// NewBattery returns a Battery with a fresh binomial tail cache.
func NewBattery() *Battery {
	return &Battery{binom: numeric.NewBinomialTailCache()}
}

// neglog10 reports p-values as -log10(p), with the spec's +Inf sentinel
// passed through verbatim rather than transformed.
func neglog10(p float64) float64 {
	if math.IsInf(p, 1) {
		return p
	}
	return -math.Log10(p)
}

// Evaluate produces the Annotations for one record's aggregated counts and
// phase-partitioned BAF vectors.
func (b *Battery) Evaluate(counts record.Counts, bafByPhase [2][]float64, opts Options) Annotations {
	var out Annotations
	out.ACHet = counts.ACHet

	if opts.SexVectorPresent {
		out.ACHetSex = counts.ACHetSex
		_, _, twoSided := numeric.FisherExact(
			counts.ACSex[0], counts.ACSex[1], counts.ACSex[2], counts.ACSex[3])
		out.ACSexTest = neglog10(twoSided)
		out.HasSexTest = true
	}

	if opts.Phase {
		out.ACHetPhase = counts.ACHetPhase
		n := counts.ACHetPhase[0] + counts.ACHetPhase[1]
		p := b.binom.Tail(counts.ACHetPhase[0], n)
		out.ACHetPhaseTest = neglog10(p)
		out.HasPhaseTest = true
	}

	if opts.UseF {
		out.Bal = counts.FmtBal
		n := counts.FmtBal[0] + counts.FmtBal[1]
		p := b.binom.Tail(counts.FmtBal[0], n)
		out.BalTest = neglog10(p)
		out.HasBal = true

		if opts.Phase {
			out.BalPhase = counts.FmtBalPhase
			n := counts.FmtBalPhase[0] + counts.FmtBalPhase[1]
			p := b.binom.Tail(counts.FmtBalPhase[0], n)
			out.BalPhaseTest = neglog10(p)
			out.HasBalPhase = true
		}
	}

	if opts.ADHet {
		out.ADHet = counts.ADHet
		n := counts.ADHet[0] + counts.ADHet[1]
		p := b.binom.Tail(counts.ADHet[0], n)
		out.ADHetTest = neglog10(p)
		out.HasADHet = true
	}

	if opts.Phase && len(bafByPhase[0]) > 0 && len(bafByPhase[1]) > 0 {
		medPat := numeric.Median(bafByPhase[0])
		medMat := numeric.Median(bafByPhase[1])
		welchP := numeric.WelchT(bafByPhase[0], bafByPhase[1])
		mwuP := numeric.MannWhitneyU(bafByPhase[0], bafByPhase[1])
		out.BAFPhaseTest = [4]float64{medPat, medMat, neglog10(welchP), neglog10(mwuP)}
		out.HasBAFPhaseTest = true
	}

	return out
}

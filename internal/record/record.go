// Package record implements the per-record, per-sample aggregation that
// turns a variant record's genotype/AD/BAF/LRR/sign-field inputs into the
// site-level counts and phase-partitioned BAF vectors the test battery
// consumes.
package record

import "math"

// Genotype is a per-sample diploid genotype. Allele0/Allele1 hold allele
// indices in [0, NAllele); either set to -1 marks that allele missing,
// which makes the whole genotype missing for aggregation purposes (the
// spec's "duplicated gt0 missingness check" is read as checking both
// alleles, not one twice).
type Genotype struct {
	Allele0, Allele1 int
	Phased           bool
}

// Present reports whether both alleles of the genotype are called.
func (g Genotype) Present() bool {
	return g.Allele0 >= 0 && g.Allele1 >= 0
}

// Sex enumerates the sample sex vector's three states.
type Sex int

const (
	SexUnknown Sex = 0
	SexMale    Sex = 1
	SexFemale  Sex = 2
)

// Sample holds one sample's per-record inputs. Missing fields are
// represented explicitly: AD via ADPresent, F via FPresent, BAF/LRR via
// NaN (the conventional float sentinel for "absent" throughout this
// package).
type Sample struct {
	GT        Genotype
	AD        [2]int
	ADPresent bool
	BAF       float64
	LRR       float64
	F         float64
	FPresent  bool
	Sex       Sex
}

// Record is one variant site's transient input: position, allele count,
// and the per-sample fields needed by the aggregator, allele inference,
// and BAF/LRR correlation.
type Record struct {
	Chrom   string
	Pos     int // 1-based
	Ref     string
	NAllele int
	Samples []Sample
}

// phase/sign sentinel for "missing" — distinct from the three meaningful
// values {-1, 0, +1} each of these axes can take.
const missing int8 = -2

// Counts holds the site-level aggregate counts produced by one Aggregate
// call, as specified for RecordAggregator.
type Counts struct {
	ACHet       int
	ACSex       [4]int // AA_M, AA_F, non-AA_M, non-AA_F
	ACHetSex    [2]int
	ACHetPhase  [2]int // paternal(+1), maternal(-1)
	FmtBal      [2]int
	FmtBalPhase [2]int
	ADHet       [2]int // ref, alt
}

// Aggregator owns the scratch buffers for one streaming pass: they are
// sized once to the sample count and reused across records, following the
// spec's single-owner, no-allocation-per-record scratch policy.
type Aggregator struct {
	gtPhase []int8
	fmtSign []int8

	bafByPhase [2][]float64

	Counts Counts
}

// NewAggregator returns an aggregator with no preallocated capacity; the
// first Aggregate call sizes its scratch buffers.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) ensureSize(n int) {
	if cap(a.gtPhase) < n {
		a.gtPhase = make([]int8, n)
		a.fmtSign = make([]int8, n)
	} else {
		a.gtPhase = a.gtPhase[:n]
		a.fmtSign = a.fmtSign[:n]
	}
}

// BAFByPhase exposes the two phase-partitioned BAF vectors built by the
// most recent Aggregate call. The backing arrays are reused on the next
// call; callers needing to retain values across records must copy them.
func (a *Aggregator) BAFByPhase() [2][]float64 {
	return a.bafByPhase
}

func signOf(v float64) int8 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Aggregate runs the per-sample reduction described by RecordAggregator
// over rec, resetting Counts and the phase-partitioned BAF buffers first.
func (a *Aggregator) Aggregate(rec *Record) {
	n := len(rec.Samples)
	a.ensureSize(n)
	a.Counts = Counts{}
	a.bafByPhase[0] = a.bafByPhase[0][:0]
	a.bafByPhase[1] = a.bafByPhase[1][:0]

	for i := 0; i < n; i++ {
		s := &rec.Samples[i]
		a.gtPhase[i] = missing
		a.fmtSign[i] = missing

		if !s.GT.Present() {
			// No per-sample accumulation occurs when GT is missing.
			continue
		}

		a0, a1 := s.GT.Allele0, s.GT.Allele1
		// Heterozygous means exactly one reference (0) allele: a 1/2 call
		// at a multiallelic site has two distinct non-reference alleles
		// and is not heterozygous under this definition.
		isHet := (a0 == 0) != (a1 == 0)

		// 1. gt_phase
		phase := missing
		switch {
		case !isHet:
			phase = missing // homozygous: phase is not applicable
		case !s.GT.Phased:
			phase = 0
		case a0 == 0 && a1 == 1:
			phase = 1
		case a0 == 1 && a1 == 0:
			phase = -1
		default:
			// Phased heterozygous at a non-canonical (multiallelic) pair:
			// no ±1 sign is defined, treat like unphased.
			phase = 0
		}
		a.gtPhase[i] = phase

		// 2. fmt_sign
		sign := missing
		if s.FPresent {
			sign = signOf(s.F)
		}
		a.fmtSign[i] = sign

		// 3. fmt_bal, over all non-missing samples regardless of zygosity
		if sign == 1 || sign == -1 {
			a.Counts.FmtBal[(1-sign)/2]++
		}

		// 4. sex-stratified homozygous counts
		if s.Sex == SexMale || s.Sex == SexFemale {
			sexIdx := 0
			if s.Sex == SexFemale {
				sexIdx = 1
			}
			if !isHet {
				if a0 == 0 {
					a.Counts.ACSex[sexIdx]++ // AA_M / AA_F
				} else {
					a.Counts.ACSex[2+sexIdx]++ // non-AA_M / non-AA_F
				}
			}
		}

		// 5. skip the heterozygous-only steps otherwise
		if !isHet {
			continue
		}

		// 6. heterozygous counts
		a.Counts.ACHet++
		if s.Sex == SexMale {
			a.Counts.ACHetSex[0]++
		} else if s.Sex == SexFemale {
			a.Counts.ACHetSex[1]++
		}
		if phase == 1 || phase == -1 {
			a.Counts.ACHetPhase[int((1-phase)/2)]++
		}

		// 7. phase x sign balance
		if (phase == 1 || phase == -1) && (sign == 1 || sign == -1) {
			prod := phase * sign
			a.Counts.FmtBalPhase[(1-prod)/2]++
		}

		// 8-9. AD-derived / BAF-overridden estimate. AD arrives already in
		// reference/alternate order (spec.md §3's "reordered by GT" has no
		// further work to do here since this format never stores AD in
		// GT-listed order).
		bafEst := math.NaN()
		if s.ADPresent {
			a.Counts.ADHet[0] += s.AD[0]
			a.Counts.ADHet[1] += s.AD[1]
			bafEst = (float64(s.AD[1]) + 0.5) / (float64(s.AD[0]+s.AD[1]) + 1)
		}
		if !math.IsNaN(s.BAF) {
			bafEst = s.BAF
		}

		// 10. phase-partitioned BAF
		if (phase == 1 || phase == -1) && !math.IsNaN(bafEst) {
			idx := (1 - phase) / 2
			a.bafByPhase[idx] = append(a.bafByPhase[idx], bafEst)
		}
	}
}

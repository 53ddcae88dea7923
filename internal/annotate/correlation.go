package annotate

import (
	"math"

	"variant_annotate_go/internal/numeric"
	"variant_annotate_go/internal/record"
)

// CorrelateBAFLRR computes the per-genotype-class Pearson correlation of
// BAF against LRR, once ALLELE_A/ALLELE_B are known. Returns ok=false when
// either allele is undetermined (-1). Order is [AA, AB, BB].
func CorrelateBAFLRR(rec *record.Record, alleleA, alleleB int) (cor [3]float64, ok bool) {
	if alleleA < 0 || alleleB < 0 {
		return cor, false
	}

	var bafAA, lrrAA []float64
	var bafAB, lrrAB []float64
	var bafBB, lrrBB []float64

	for i := range rec.Samples {
		s := &rec.Samples[i]
		if !s.GT.Present() {
			continue
		}
		if math.IsNaN(s.BAF) || math.IsNaN(s.LRR) {
			continue
		}
		a0, a1 := s.GT.Allele0, s.GT.Allele1
		switch {
		case a0 == alleleA && a1 == alleleA:
			bafAA = append(bafAA, s.BAF)
			lrrAA = append(lrrAA, s.LRR)
		case a0 == alleleB && a1 == alleleB:
			bafBB = append(bafBB, s.BAF)
			lrrBB = append(lrrBB, s.LRR)
		case (a0 == alleleA && a1 == alleleB) || (a0 == alleleB && a1 == alleleA):
			bafAB = append(bafAB, s.BAF)
			lrrAB = append(lrrAB, s.LRR)
		}
	}

	cor[0] = numeric.Pearson(bafAA, lrrAA)
	cor[1] = numeric.Pearson(bafAB, lrrAB)
	cor[2] = numeric.Pearson(bafBB, lrrBB)
	return cor, true
}

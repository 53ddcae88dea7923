// Package contextscan implements ContextScanner: local GC and CpG fraction
// statistics computed from a reference FASTA window around a variant's
// position.
package contextscan

import "strings"

// ReferenceSequence is the seam to an external indexed-FASTA reader.
// Fetch returns the subsequence of chrom spanning the 0-based half-open
// interval [start, end), in whatever case the source stores it (Scan
// upper-cases it before counting); out-of-bounds clamping is the
// implementation's responsibility, matching the spec's note that
// out-of-bounds handling belongs to the reference index.
type ReferenceSequence interface {
	Fetch(chrom string, start, end int) (string, error)
}

// Result holds the GC and CpG fractions for one scanned window.
type Result struct {
	GC  float64
	CpG float64
}

// Scan computes GC and CpG fractions over the window
// [pos0-halfWidth, pos0+refLen-1+halfWidth] (0-based, inclusive), per
// spec.md §4.7. pos0 is the record's 0-based position, refLen the length
// of the reference allele, and halfWidth the configured window half-width.
func Scan(ref ReferenceSequence, chrom string, pos0, refLen, halfWidth int) (Result, error) {
	start := pos0 - halfWidth
	end := pos0 + refLen - 1 + halfWidth + 1 // +1: inclusive upper bound -> half-open

	seq, err := ref.Fetch(chrom, start, end)
	if err != nil {
		return Result{}, &ReferenceError{Chrom: chrom, Pos: pos0, Err: err}
	}

	upper := strings.ToUpper(seq)
	var at, cg, cpg int
	for i := 0; i < len(upper); i++ {
		switch upper[i] {
		case 'A', 'T':
			at++
		case 'C', 'G':
			cg++
		}
		if i+1 < len(upper) && upper[i] == 'C' && upper[i+1] == 'G' {
			cpg += 2
		}
	}

	var res Result
	if at+cg > 0 {
		res.GC = float64(cg) / float64(at+cg)
	}
	if len(upper) > 0 {
		res.CpG = float64(cpg) / float64(len(upper))
	}
	return res, nil
}

// ReferenceError wraps a FASTA fetch failure for one record; fatal for
// that record per spec.md §7.
type ReferenceError struct {
	Chrom string
	Pos   int
	Err   error
}

func (e *ReferenceError) Error() string {
	return "reference fetch failed at " + e.Chrom + ": " + e.Err.Error()
}

func (e *ReferenceError) Unwrap() error { return e.Err }

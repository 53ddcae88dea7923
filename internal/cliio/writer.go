package cliio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"variant_annotate_go/internal/annotate"
	"variant_annotate_go/internal/record"
)

// AnnotationWriter emits one output row per site: its identifying columns
// followed by every annotation column in allColumns, tab-separated, with
// "NA" standing in for a group that didn't run.
type AnnotationWriter struct {
	w       *bufio.Writer
	wrote   bool
	columns []string
}

// NewAnnotationWriter wraps w; the header row is written on the first
// Write call and always lists the full allColumns set, whichever Options
// the run enabled.
func NewAnnotationWriter(w io.Writer) *AnnotationWriter {
	return &AnnotationWriter{w: bufio.NewWriter(w)}
}

var allColumns = []string{
	"ACHet",
	"ACHetSex_M", "ACHetSex_F", "ACSexTest",
	"ACHetPhase_pat", "ACHetPhase_mat", "ACHetPhaseTest",
	"Bal_pos", "Bal_neg", "BalTest",
	"BalPhase_concord", "BalPhase_discord", "BalPhaseTest",
	"ADHet_ref", "ADHet_alt", "ADHetTest",
	"BAFPhase_medPat", "BAFPhase_medMat", "BAFPhase_welch", "BAFPhase_mwu",
	"GC", "CpG",
	"ALLELE_A", "ALLELE_B",
	"Cor_AA", "Cor_AB", "Cor_BB",
}

// Extra carries the per-site outputs that don't come from the
// NumericKernels battery itself: the reference context scan, allele
// inference, and BAF/LRR correlation, each gated by its own Has* flag so
// a run that didn't configure the corresponding knob emits "NA".
type Extra struct {
	HasContext bool
	GC, CpG    float64

	HasAlleles      bool
	AlleleA, AlleleB int

	HasCorrelation bool
	Correlation    [3]float64
}

// Write appends one annotated site to the stream, writing the header row
// first if this is the first call.
func (aw *AnnotationWriter) Write(rec *record.Record, ann annotate.Annotations, extra Extra) error {
	if !aw.wrote {
		aw.columns = allColumns
		header := append([]string{"CHROM", "POS", "REF"}, aw.columns...)
		if _, err := fmt.Fprintln(aw.w, strings.Join(header, "\t")); err != nil {
			return err
		}
		aw.wrote = true
	}

	row := make([]string, 0, 3+len(aw.columns))
	row = append(row, rec.Chrom, strconv.Itoa(rec.Pos), rec.Ref)
	row = append(row, strconv.Itoa(ann.ACHet))

	row = append(row, naOr2Int(ann.HasSexTest, ann.ACHetSex)...)
	row = append(row, naOrFloat(ann.HasSexTest, ann.ACSexTest))

	row = append(row, naOr2Int(ann.HasPhaseTest, ann.ACHetPhase)...)
	row = append(row, naOrFloat(ann.HasPhaseTest, ann.ACHetPhaseTest))

	row = append(row, naOr2Int(ann.HasBal, ann.Bal)...)
	row = append(row, naOrFloat(ann.HasBal, ann.BalTest))

	row = append(row, naOr2Int(ann.HasBalPhase, ann.BalPhase)...)
	row = append(row, naOrFloat(ann.HasBalPhase, ann.BalPhaseTest))

	row = append(row, naOr2Int(ann.HasADHet, ann.ADHet)...)
	row = append(row, naOrFloat(ann.HasADHet, ann.ADHetTest))

	if ann.HasBAFPhaseTest {
		for _, v := range ann.BAFPhaseTest {
			row = append(row, formatFloat(v))
		}
	} else {
		row = append(row, "NA", "NA", "NA", "NA")
	}

	if extra.HasContext {
		row = append(row, formatFloat(extra.GC), formatFloat(extra.CpG))
	} else {
		row = append(row, "NA", "NA")
	}

	if extra.HasAlleles {
		row = append(row, naOrAllele(extra.AlleleA), naOrAllele(extra.AlleleB))
	} else {
		row = append(row, "NA", "NA")
	}

	if extra.HasCorrelation {
		for _, v := range extra.Correlation {
			row = append(row, formatFloat(v))
		}
	} else {
		row = append(row, "NA", "NA", "NA")
	}

	_, err := fmt.Fprintln(aw.w, strings.Join(row, "\t"))
	return err
}

func naOrAllele(a int) string {
	if a < 0 {
		return "NA"
	}
	return strconv.Itoa(a)
}

// Flush flushes buffered output to the underlying writer.
func (aw *AnnotationWriter) Flush() error {
	return aw.w.Flush()
}

func naOr2Int(has bool, v [2]int) []string {
	if !has {
		return []string{"NA", "NA"}
	}
	return []string{strconv.Itoa(v[0]), strconv.Itoa(v[1])}
}

func naOrFloat(has bool, v float64) string {
	if !has {
		return "NA"
	}
	return formatFloat(v)
}

func formatFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "Inf"
	}
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

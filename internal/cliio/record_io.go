package cliio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"variant_annotate_go/internal/record"
	"variant_annotate_go/internal/runconfig"
)

// Header describes one input stream's column layout, discovered from its
// leading "#CHROM" line. The field list after the fixed CHROM/POS/REF/
// NALLELE columns is the sample name order used for every data line.
type Header struct {
	Samples []string
	Fields  runconfig.HeaderFields
}

// fieldSep separates the fixed subfields packed into one sample column:
// GT:AD:BAF:LRR:F, with "." marking an absent subfield. Real VCF FORMAT
// parsing is explicitly out of scope (spec.md §1); this is the minimal
// stand-in sufficient to drive the pipeline end to end.
const fieldSep = ":"
const missingToken = "."

// Reader streams Records off a "#CHROM POS REF NALLELE <sample>..." TSV
// source, one variant per line, gzip-transparently opened by the caller
// via OpenMaybeGzip.
type Reader struct {
	sc     *bufio.Scanner
	Header Header
	line   int
}

// NewReader reads and parses the header line, then returns a Reader ready
// for repeated Next calls.
func NewReader(r io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var headerLine string
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		headerLine = line
		break
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if headerLine == "" {
		return nil, fmt.Errorf("empty input: no header line found")
	}
	if !strings.HasPrefix(headerLine, "#CHROM") {
		return nil, fmt.Errorf("malformed header: expected a line starting with #CHROM, got %q", headerLine)
	}

	cols := strings.Split(headerLine, "\t")
	if len(cols) < 5 {
		return nil, fmt.Errorf("malformed header: need at least #CHROM,POS,REF,NALLELE,<sample>")
	}
	samples := cols[4:]

	return &Reader{
		sc: sc,
		Header: Header{
			Samples: samples,
			// A bare TSV stand-in carries every field unconditionally; a
			// real VCF header would drive these from its FORMAT lines.
			Fields: runconfig.HeaderFields{HasGT: true, HasAD: true, HasBAF: true, HasLRR: true, HasF: true},
		},
	}, nil
}

// Next reads and parses one data line. Returns io.EOF when the stream is
// exhausted.
func (r *Reader) Next() (*record.Record, error) {
	for r.sc.Scan() {
		r.line++
		line := r.sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return r.parseLine(line)
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line, err)
	}
	return nil, io.EOF
}

func (r *Reader) parseLine(line string) (*record.Record, error) {
	cols := strings.Split(line, "\t")
	want := 4 + len(r.Header.Samples)
	if len(cols) != want {
		return nil, fmt.Errorf("line %d: expected %d columns, got %d", r.line, want, len(cols))
	}

	pos, err := strconv.Atoi(cols[1])
	if err != nil {
		return nil, fmt.Errorf("line %d: bad POS %q: %w", r.line, cols[1], err)
	}
	nallele, err := strconv.Atoi(cols[3])
	if err != nil {
		return nil, fmt.Errorf("line %d: bad NALLELE %q: %w", r.line, cols[3], err)
	}

	rec := &record.Record{
		Chrom:   cols[0],
		Pos:     pos,
		Ref:     cols[2],
		NAllele: nallele,
		Samples: make([]record.Sample, len(r.Header.Samples)),
	}

	for i, field := range cols[4:] {
		s, err := parseSampleField(field)
		if err != nil {
			return nil, fmt.Errorf("line %d, sample %s: %w", r.line, r.Header.Samples[i], err)
		}
		rec.Samples[i] = s
	}
	return rec, nil
}

func parseSampleField(field string) (record.Sample, error) {
	var s record.Sample
	s.BAF = math.NaN()
	s.LRR = math.NaN()

	parts := strings.Split(field, fieldSep)
	if len(parts) != 5 {
		return s, fmt.Errorf("expected 5 colon-joined subfields (GT:AD:BAF:LRR:F), got %d", len(parts))
	}
	gt, ad, baf, lrr, f := parts[0], parts[1], parts[2], parts[3], parts[4]

	gtype, err := parseGT(gt)
	if err != nil {
		return s, fmt.Errorf("GT: %w", err)
	}
	s.GT = gtype

	if ad != missingToken {
		halves := strings.Split(ad, ",")
		if len(halves) != 2 {
			return s, fmt.Errorf("AD: expected \"ref,alt\", got %q", ad)
		}
		a0, err := strconv.Atoi(halves[0])
		if err != nil {
			return s, fmt.Errorf("AD: %w", err)
		}
		a1, err := strconv.Atoi(halves[1])
		if err != nil {
			return s, fmt.Errorf("AD: %w", err)
		}
		s.AD = [2]int{a0, a1}
		s.ADPresent = true
	}

	if baf != missingToken {
		v, err := strconv.ParseFloat(baf, 64)
		if err != nil {
			return s, fmt.Errorf("BAF: %w", err)
		}
		s.BAF = v
	}

	if lrr != missingToken {
		v, err := strconv.ParseFloat(lrr, 64)
		if err != nil {
			return s, fmt.Errorf("LRR: %w", err)
		}
		s.LRR = v
	}

	if f != missingToken {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return s, fmt.Errorf("F: %w", err)
		}
		s.F = v
		s.FPresent = true
	}

	return s, nil
}

func parseGT(gt string) (record.Genotype, error) {
	if gt == missingToken {
		return record.Genotype{Allele0: -1, Allele1: -1}, nil
	}
	phased := strings.Contains(gt, "|")
	sep := "/"
	if phased {
		sep = "|"
	}
	halves := strings.SplitN(gt, sep, 2)
	if len(halves) != 2 {
		return record.Genotype{}, fmt.Errorf("malformed genotype %q", gt)
	}
	a0, err := parseAllele(halves[0])
	if err != nil {
		return record.Genotype{}, err
	}
	a1, err := parseAllele(halves[1])
	if err != nil {
		return record.Genotype{}, err
	}
	return record.Genotype{Allele0: a0, Allele1: a1, Phased: phased}, nil
}

func parseAllele(tok string) (int, error) {
	if tok == missingToken {
		return -1, nil
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad allele %q: %w", tok, err)
	}
	return v, nil
}

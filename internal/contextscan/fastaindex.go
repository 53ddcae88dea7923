package contextscan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// seqIndex mirrors one .fai-style entry: sequence length, byte offset of
// the first base, and the line-wrapping geometry needed to translate a
// base offset into a byte offset. Adapted from the line-scanning indexer
// the teacher repo used to build its own FASTA index.
type seqIndex struct {
	Len          int
	Offset       int64
	BasesPerLine int
	BytesPerLine int
}

// IndexedFasta provides random access to a plain (non-gzipped) FASTA file
// by byte-seeking using a line-geometry index built once at open time.
// Read-only and safe for concurrent Fetch calls once built, since building
// is the only mutating step.
type IndexedFasta struct {
	f   *os.File
	idx map[string]seqIndex
}

// OpenIndexedFasta indexes path and returns a ready-to-query
// IndexedFasta. Gzipped FASTA is rejected: compressed streams do not
// support the random access ContextScanner requires.
func OpenIndexedFasta(path string) (*IndexedFasta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference %s: %w", path, err)
	}

	magic := make([]byte, 2)
	if _, err := f.Read(magic); err == nil && magic[0] == 0x1F && magic[1] == 0x8B {
		f.Close()
		return nil, fmt.Errorf("reference %s is gzip-compressed; random access requires an uncompressed FASTA", path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	idx, err := buildIndex(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if faiPath := path + ".fai"; fileExists(faiPath) {
		if err := CheckIndexFreshness(path, faiPath); err != nil {
			// Non-fatal: a stale on-disk .fai companion doesn't affect
			// this in-process index, which was just rebuilt from path.
			fmt.Fprintln(os.Stderr, "warning:", err)
		}
	}

	return &IndexedFasta{f: f, idx: idx}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// buildIndex scans a plain FASTA file, recording per-sequence offset and
// line-wrapping geometry. Adapted from the teacher's fasta_indexer tool.
func buildIndex(f *os.File) (map[string]seqIndex, error) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)

	idx := make(map[string]seqIndex)
	var currentID string
	var current seqIndex
	var byteCount int64
	firstSeqLine := true
	inSequence := false

	for scanner.Scan() {
		line := scanner.Text()
		lineLen := len(line)
		byteCount += int64(lineLen) + 1 // +1 for '\n'

		if strings.HasPrefix(line, ">") {
			if inSequence {
				idx[currentID] = current
			}
			currentID = strings.TrimPrefix(line, ">")
			if sp := strings.IndexAny(currentID, " \t"); sp >= 0 {
				currentID = currentID[:sp]
			}
			current = seqIndex{Offset: byteCount}
			firstSeqLine = true
			inSequence = true
			continue
		}

		trimmed := strings.TrimSpace(line)
		current.Len += len(trimmed)
		if firstSeqLine {
			current.BasesPerLine = len(trimmed)
			current.BytesPerLine = lineLen + 1
			firstSeqLine = false
		}
	}
	if inSequence {
		idx[currentID] = current
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error indexing reference: %w", err)
	}
	return idx, nil
}

// Fetch implements ReferenceSequence over the indexed file. start/end are
// 0-based and half-open; out-of-bounds values are clamped to the
// sequence's extent.
func (r *IndexedFasta) Fetch(chrom string, start, end int) (string, error) {
	e, ok := r.idx[chrom]
	if !ok {
		return "", fmt.Errorf("unknown reference sequence %q", chrom)
	}
	if start < 0 {
		start = 0
	}
	if end > e.Len {
		end = e.Len
	}
	if start >= end || e.BasesPerLine == 0 {
		return "", nil
	}

	var sb strings.Builder
	pos := start
	for pos < end {
		lineIdx := pos / e.BasesPerLine
		within := pos % e.BasesPerLine
		byteOffset := e.Offset + int64(lineIdx)*int64(e.BytesPerLine) + int64(within)

		remainInLine := e.BasesPerLine - within
		n := remainInLine
		if pos+n > end {
			n = end - pos
		}
		buf := make([]byte, n)
		if _, err := r.f.ReadAt(buf, byteOffset); err != nil && err != io.EOF {
			return "", fmt.Errorf("reading reference %s: %w", chrom, err)
		}
		sb.Write(buf)
		pos += n
	}
	return sb.String(), nil
}

// Close releases the underlying file handle.
func (r *IndexedFasta) Close() error {
	return r.f.Close()
}

// CheckIndexFreshness compares modification times of a FASTA file and a
// companion .fai index, warning when the FASTA looks newer. Adapted
// directly from the teacher's utils.CheckIndexFreshness.
func CheckIndexFreshness(fastaFile, indexFile string) error {
	fastaInfo, err := os.Stat(fastaFile)
	if err != nil {
		return fmt.Errorf("failed to stat reference file: %w", err)
	}
	indexInfo, err := os.Stat(indexFile)
	if err != nil {
		return fmt.Errorf("failed to stat index file: %w", err)
	}
	if fastaInfo.ModTime().After(indexInfo.ModTime()) {
		return fmt.Errorf("%s was modified after %s; its .fai companion may be stale",
			fastaFile, indexFile)
	}
	return nil
}

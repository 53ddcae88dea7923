// Package cliio is the CLI's thin, explicitly-out-of-scope stand-in for
// real variant file decoding: a minimal tab-separated record format
// sufficient to drive the annotation pipeline end to end, plus the
// gzip-transparent file opening the teacher repo uses throughout its
// FASTA tooling.
package cliio

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// OpenMaybeGzip opens path, transparently wrapping it in a gzip reader
// when the name ends in .gz. Adapted from fasta_overview's
// openFileOrGzip.
func OpenMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip reader for %s: %w", path, err)
		}
		return gzipReadCloser{gz, f}, nil
	}
	return f, nil
}

// gzipReadCloser closes both the gzip stream and the underlying file.
type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipReadCloser) Close() error {
	g.Reader.Close()
	return g.f.Close()
}

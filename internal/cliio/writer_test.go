package cliio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variant_annotate_go/internal/annotate"
	"variant_annotate_go/internal/record"
)

func TestAnnotationWriterWritesHeaderOnce(t *testing.T) {
	var sb strings.Builder
	w := NewAnnotationWriter(&sb)

	rec := &record.Record{Chrom: "chr1", Pos: 100, Ref: "A"}
	ann := annotate.Annotations{ACHet: 3}

	require.NoError(t, w.Write(rec, ann, Extra{}))
	require.NoError(t, w.Write(rec, ann, Extra{}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	assert.Len(t, lines, 3) // 1 header + 2 data rows
	assert.True(t, strings.HasPrefix(lines[0], "CHROM\tPOS\tREF\tACHet"))
}

func TestAnnotationWriterNAForDisabledGroups(t *testing.T) {
	var sb strings.Builder
	w := NewAnnotationWriter(&sb)
	rec := &record.Record{Chrom: "chr1", Pos: 1, Ref: "A"}
	require.NoError(t, w.Write(rec, annotate.Annotations{}, Extra{}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	cols := strings.Split(lines[1], "\t")
	assert.Equal(t, "NA", cols[4]) // ACHetSex_M
}

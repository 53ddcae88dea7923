package contextscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFasta(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.fa")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIndexedFastaFetchSingleLine(t *testing.T) {
	path := writeTempFasta(t, ">chr1\nACGTACGTACGT\n")
	ref, err := OpenIndexedFasta(path)
	require.NoError(t, err)
	defer ref.Close()

	seq, err := ref.Fetch("chr1", 0, 4)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", seq)
}

func TestIndexedFastaFetchAcrossLineWraps(t *testing.T) {
	path := writeTempFasta(t, ">chr1\nACGT\nACGT\nACGT\n")
	ref, err := OpenIndexedFasta(path)
	require.NoError(t, err)
	defer ref.Close()

	seq, err := ref.Fetch("chr1", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "GTACGTAC", seq)
}

func TestIndexedFastaFetchClampsOutOfBounds(t *testing.T) {
	path := writeTempFasta(t, ">chr1\nACGT\n")
	ref, err := OpenIndexedFasta(path)
	require.NoError(t, err)
	defer ref.Close()

	seq, err := ref.Fetch("chr1", -5, 100)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", seq)
}

func TestIndexedFastaUnknownSequence(t *testing.T) {
	path := writeTempFasta(t, ">chr1\nACGT\n")
	ref, err := OpenIndexedFasta(path)
	require.NoError(t, err)
	defer ref.Close()

	_, err = ref.Fetch("chr2", 0, 1)
	assert.Error(t, err)
}

func TestIndexedFastaMultiSequence(t *testing.T) {
	path := writeTempFasta(t, ">chr1\nAAAA\n>chr2\nTTTT\n")
	ref, err := OpenIndexedFasta(path)
	require.NoError(t, err)
	defer ref.Close()

	s1, err := ref.Fetch("chr1", 0, 4)
	require.NoError(t, err)
	assert.Equal(t, "AAAA", s1)

	s2, err := ref.Fetch("chr2", 0, 4)
	require.NoError(t, err)
	assert.Equal(t, "TTTT", s2)
}

func TestOpenIndexedFastaRejectsGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.fa.gz")
	// Gzip magic bytes followed by arbitrary data.
	require.NoError(t, os.WriteFile(path, []byte{0x1F, 0x8B, 0x08, 0x00}, 0o644))

	_, err := OpenIndexedFasta(path)
	assert.Error(t, err)
}

func TestCheckIndexFreshnessDetectsStaleIndex(t *testing.T) {
	dir := t.TempDir()
	fastaPath := filepath.Join(dir, "ref.fa")
	faiPath := filepath.Join(dir, "ref.fa.fai")
	require.NoError(t, os.WriteFile(faiPath, []byte("chr1\t4\t6\t4\t5\n"), 0o644))
	require.NoError(t, os.WriteFile(fastaPath, []byte(">chr1\nACGT\n"), 0o644))

	newer := os.Chtimes
	statFai, err := os.Stat(faiPath)
	require.NoError(t, err)
	require.NoError(t, newer(fastaPath, statFai.ModTime().Add(0), statFai.ModTime().Add(3600_000_000_000)))

	err = CheckIndexFreshness(fastaPath, faiPath)
	assert.Error(t, err)
}

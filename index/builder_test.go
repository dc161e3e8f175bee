package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndex(t *testing.T, tmpLimit int, docs [][]string) (*IndexBuilder, *IndexReader) {
	t.Helper()
	fs := newMemFileSystem()
	b, err := NewIndexBuilder(fs, BuilderConfig{TmpLimit: tmpLimit, Dir: "/idx"})
	require.NoError(t, err)

	for docID, terms := range docs {
		for _, term := range terms {
			require.NoError(t, b.Add(term, uint32(docID)))
		}
	}
	require.NoError(t, b.Finalize())

	r, err := OpenIndexReader(fs, b)
	require.NoError(t, err)
	return b, r
}

func TestIndexBuilder_AddAfterFinalizeFails(t *testing.T) {
	fs := newMemFileSystem()
	b, err := NewIndexBuilder(fs, BuilderConfig{TmpLimit: 10, Dir: "/idx"})
	require.NoError(t, err)
	require.NoError(t, b.Finalize())

	err = b.Add("cat", 0)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestIndexBuilder_FinalizeTwiceFails(t *testing.T) {
	fs := newMemFileSystem()
	b, err := NewIndexBuilder(fs, BuilderConfig{TmpLimit: 10, Dir: "/idx"})
	require.NoError(t, err)
	require.NoError(t, b.Finalize())

	err = b.Finalize()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestIndexBuilder_EmptyCorpus(t *testing.T) {
	_, r := buildIndex(t, 4, nil)
	assert.Equal(t, uint32(0), r.DocumentCount())
	occ, err := r.Occurrences("anything")
	require.NoError(t, err)
	assert.Empty(t, occ)
}

func TestIndexBuilder_DuplicateKeyFusion(t *testing.T) {
	// "cat" appears twice in doc 0: the two postings must fuse into one
	// with TermFreq == 2, not two separate records.
	docs := [][]string{
		{"cat", "cat", "dog"},
	}
	_, r := buildIndex(t, 4, docs)

	occ, err := r.Occurrences("cat")
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.Equal(t, uint32(0), occ[0].DocID)
	assert.Equal(t, uint32(2), occ[0].TermFreq)
}

func TestIndexBuilder_SpillsAcrossMultipleRuns(t *testing.T) {
	// TmpLimit of 4 postings forces several spill-and-merge rounds across
	// 10 documents, each contributing one posting — exercising P6 (spill
	// correctness): the end result must be identical to building the same
	// corpus entirely in memory.
	docs := [][]string{
		{"alpha"}, {"beta"}, {"alpha"}, {"gamma"}, {"beta"},
		{"alpha"}, {"delta"}, {"gamma"}, {"beta"}, {"alpha"},
	}
	_, r := buildIndex(t, 4, docs)

	assert.Equal(t, uint32(10), r.DocumentCount())

	alpha, err := r.Occurrences("alpha")
	require.NoError(t, err)
	var alphaDocs []uint32
	for _, p := range alpha {
		alphaDocs = append(alphaDocs, p.DocID)
	}
	assert.Equal(t, []uint32{0, 2, 5, 9}, alphaDocs, "postings for a term must come back in ascending DocID order")

	assert.Equal(t, uint32(4), r.DocumentCountWithTerm("alpha"))
	assert.Equal(t, uint32(3), r.DocumentCountWithTerm("beta"))
	assert.Equal(t, uint32(2), r.DocumentCountWithTerm("gamma"))
	assert.Equal(t, uint32(1), r.DocumentCountWithTerm("delta"))
	assert.Equal(t, uint32(0), r.DocumentCountWithTerm("epsilon"))
}

func TestIndexBuilder_UnknownTermHasNoOccurrences(t *testing.T) {
	_, r := buildIndex(t, 4, [][]string{{"cat"}})
	occ, err := r.Occurrences("dog")
	require.NoError(t, err)
	assert.Empty(t, occ)
}

func TestFuseSorted(t *testing.T) {
	in := []Posting{
		{TermID: 1, DocID: 2, TermFreq: 1},
		{TermID: 0, DocID: 5, TermFreq: 1},
		{TermID: 1, DocID: 2, TermFreq: 3},
		{TermID: 0, DocID: 1, TermFreq: 2},
	}
	out := fuseSorted(in)
	want := []Posting{
		{TermID: 0, DocID: 1, TermFreq: 2},
		{TermID: 0, DocID: 5, TermFreq: 1},
		{TermID: 1, DocID: 2, TermFreq: 4},
	}
	assert.Equal(t, want, out)
}

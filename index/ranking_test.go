package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memCorpus(t *testing.T, docs [][]string) *MemoryIndex {
	t.Helper()
	m := NewMemoryIndex()
	for docID, terms := range docs {
		for _, term := range terms {
			require.NoError(t, m.Add(term, uint32(docID)))
		}
	}
	require.NoError(t, m.Finalize(uint32(len(docs))))
	return m
}

func TestRankingEvaluator_BooleanAndIsTrueNAry(t *testing.T) {
	// doc 0 has all three terms, doc 1 is missing "fox", doc 2 is missing
	// "quick" — only matching the first two terms must not be enough, this
	// is the pairwise-intersection bug the evaluator must not reproduce.
	docs := [][]string{
		{"the", "quick", "brown", "fox"},
		{"the", "quick", "brown"},
		{"the", "fox"},
	}
	idx := memCorpus(t, docs)
	eval := NewRankingEvaluator(idx, nil)

	got, err := eval.BooleanAnd([]string{"quick", "brown", "fox"})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, got)
}

func TestRankingEvaluator_BooleanAndEmptyTermsMatchesNothing(t *testing.T) {
	idx := memCorpus(t, [][]string{{"cat"}})
	eval := NewRankingEvaluator(idx, nil)
	got, err := eval.BooleanAnd(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRankingEvaluator_BooleanOrIsUnion(t *testing.T) {
	docs := [][]string{
		{"cat"},
		{"dog"},
		{"fish"},
	}
	idx := memCorpus(t, docs)
	eval := NewRankingEvaluator(idx, nil)

	got, err := eval.BooleanOr([]string{"cat", "dog"})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, got)
}

func TestRankingEvaluator_BooleanQueriesWithUnknownTerms(t *testing.T) {
	idx := memCorpus(t, [][]string{{"cat"}})
	eval := NewRankingEvaluator(idx, nil)

	got, err := eval.BooleanAnd([]string{"cat", "unicorn"})
	require.NoError(t, err)
	assert.Empty(t, got, "an unknown term has no postings, so AND with it matches nothing")

	got, err = eval.BooleanOr([]string{"cat", "unicorn"})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, got, "an unknown term contributes nothing to OR, but known terms still do")
}

func TestRankingEvaluator_RankOrdersByDescendingScoreThenAscendingDocID(t *testing.T) {
	// doc 3 has no "dog", so dog's idf is non-zero; if dog were in every
	// document its weight would be 0 and both cat documents would reduce to
	// one-dimensional vectors with the same cosine score.
	docs := [][]string{
		{"cat", "cat", "cat", "dog"},
		{"cat", "dog"},
		{"dog", "dog", "dog"},
		{"bird"},
	}
	idx := memCorpus(t, docs)
	norms, err := ComputeNorms(idx)
	require.NoError(t, err)
	eval := NewRankingEvaluator(idx, norms)

	results, err := eval.Rank([]string{"cat"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, uint32(0), results[0].DocID, "doc 0 has the higher cat term frequency, it must rank first")
	assert.Equal(t, uint32(1), results[1].DocID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRankingEvaluator_RankTieBreaksByAscendingDocID(t *testing.T) {
	docs := [][]string{
		{"cat", "dog"},
		{"cat", "dog"},
	}
	idx := memCorpus(t, docs)
	norms, err := ComputeNorms(idx)
	require.NoError(t, err)
	eval := NewRankingEvaluator(idx, norms)

	results, err := eval.Rank([]string{"cat", "dog"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.InDelta(t, results[0].Score, results[1].Score, 1e-9)
	assert.Equal(t, uint32(0), results[0].DocID)
	assert.Equal(t, uint32(1), results[1].DocID)
}

func TestRankingEvaluator_RankUnknownTermContributesNoScore(t *testing.T) {
	idx := memCorpus(t, [][]string{{"cat"}})
	norms, err := ComputeNorms(idx)
	require.NoError(t, err)
	eval := NewRankingEvaluator(idx, norms)

	results, err := eval.Rank([]string{"unicorn"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankingEvaluator_RankEmptyCorpusReturnsNoResults(t *testing.T) {
	idx := memCorpus(t, nil)
	norms, err := ComputeNorms(idx)
	require.NoError(t, err)
	eval := NewRankingEvaluator(idx, norms)

	results, err := eval.Rank([]string{"anything"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTfIdfWeights(t *testing.T) {
	assert.Equal(t, 0.0, tfWeight(0))
	assert.Equal(t, 1.0, tfWeight(1))
	assert.InDelta(t, 2.0, tfWeight(2), 1e-9)

	assert.Equal(t, 0.0, idfWeight(0, 0))
	assert.Equal(t, 0.0, idfWeight(10, 0))
	assert.InDelta(t, 1.0, idfWeight(10, 5), 1e-9)
}

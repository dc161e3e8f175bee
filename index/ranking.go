package index

import (
	"math"
	"sort"
)

// ScoredDocument pairs a document id with a ranking score.
type ScoredDocument struct {
	DocID uint32
	Score float64
}

// PrecomputedNorms holds each document's Euclidean norm over its TF-IDF
// vector, computed once so that Rank doesn't recompute it per query.
type PrecomputedNorms struct {
	norms map[uint32]float64
}

// ComputeNorms walks every term in idx's vocabulary once, accumulating each
// document's squared TF-IDF weights, and returns their square roots.
func ComputeNorms(idx Index) (*PrecomputedNorms, error) {
	sumSquares := make(map[uint32]float64)
	n := idx.DocumentCount()

	for _, term := range idx.Vocabulary().Terms() {
		df := idx.DocumentCountWithTerm(term)
		if df == 0 {
			continue
		}
		idf := idfWeight(n, df)
		postings, err := idx.Occurrences(term)
		if err != nil {
			return nil, err
		}
		for _, p := range postings {
			w := tfWeight(p.TermFreq) * idf
			sumSquares[p.DocID] += w * w
		}
	}

	norms := make(map[uint32]float64, len(sumSquares))
	for docID, ss := range sumSquares {
		norms[docID] = math.Sqrt(ss)
	}
	return &PrecomputedNorms{norms: norms}, nil
}

func (n *PrecomputedNorms) norm(docID uint32) float64 {
	return n.norms[docID]
}

// tfWeight is the log-dampened term frequency weight: 1 + log2(f) for
// f >= 1. f == 0 never reaches here in practice (a Posting always records
// at least one occurrence).
func tfWeight(freq uint32) float64 {
	if freq == 0 {
		return 0
	}
	return 1 + math.Log2(float64(freq))
}

// idfWeight is the inverse document frequency weight: log2(N/df). A term
// with df == 0 or N == 0 has no informative weight.
func idfWeight(n, df uint32) float64 {
	if df == 0 || n == 0 {
		return 0
	}
	return math.Log2(float64(n) / float64(df))
}

// RankingEvaluator answers Boolean and cosine-similarity queries against an
// Index.
type RankingEvaluator struct {
	idx   Index
	norms *PrecomputedNorms
}

// NewRankingEvaluator returns an evaluator over idx. norms may be nil if
// only Boolean queries will be run; Rank requires it.
func NewRankingEvaluator(idx Index, norms *PrecomputedNorms) *RankingEvaluator {
	return &RankingEvaluator{idx: idx, norms: norms}
}

// BooleanAnd returns the document ids containing every term in terms, as a
// true n-ary intersection: a doc must appear in all posting lists, not just
// the first two. An empty terms list matches no documents.
func (e *RankingEvaluator) BooleanAnd(terms []string) ([]uint32, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	sets := make([]map[uint32]bool, 0, len(terms))
	for _, term := range terms {
		postings, err := e.idx.Occurrences(term)
		if err != nil {
			return nil, err
		}
		set := make(map[uint32]bool, len(postings))
		for _, p := range postings {
			set[p.DocID] = true
		}
		sets = append(sets, set)
	}

	sort.Slice(sets, func(i, j int) bool { return len(sets[i]) < len(sets[j]) })

	result := make([]uint32, 0)
	for docID := range sets[0] {
		inAll := true
		for _, set := range sets[1:] {
			if !set[docID] {
				inAll = false
				break
			}
		}
		if inAll {
			result = append(result, docID)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// BooleanOr returns the union of document ids containing any term in
// terms.
func (e *RankingEvaluator) BooleanOr(terms []string) ([]uint32, error) {
	seen := make(map[uint32]bool)
	for _, term := range terms {
		postings, err := e.idx.Occurrences(term)
		if err != nil {
			return nil, err
		}
		for _, p := range postings {
			seen[p.DocID] = true
		}
	}
	result := make([]uint32, 0, len(seen))
	for docID := range seen {
		result = append(result, docID)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// Rank scores every document that shares at least one term with the query
// bag under the TF-IDF cosine similarity model, returning results sorted by
// descending score with ascending DocID as the deterministic tie-break.
// Query terms not present in the vocabulary are silently excluded from
// scoring, not treated as an error. A document whose precomputed norm is
// zero scores 0 rather than dividing by zero.
func (e *RankingEvaluator) Rank(terms []string) ([]ScoredDocument, error) {
	n := e.idx.DocumentCount()
	queryCounts := make(map[string]uint32)
	for _, term := range terms {
		queryCounts[term]++
	}

	dot := make(map[uint32]float64)
	var queryNormSq float64

	for term, qFreq := range queryCounts {
		df := e.idx.DocumentCountWithTerm(term)
		if df == 0 {
			continue
		}
		idf := idfWeight(n, df)
		qWeight := tfWeight(qFreq) * idf
		queryNormSq += qWeight * qWeight

		postings, err := e.idx.Occurrences(term)
		if err != nil {
			return nil, err
		}
		for _, p := range postings {
			docWeight := tfWeight(p.TermFreq) * idf
			dot[p.DocID] += docWeight * qWeight
		}
	}

	queryNorm := math.Sqrt(queryNormSq)

	results := make([]ScoredDocument, 0, len(dot))
	for docID, product := range dot {
		denom := queryNorm * e.norms.norm(docID)
		score := 0.0
		if denom != 0 {
			score = product / denom
		}
		results = append(results, ScoredDocument{DocID: docID, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})
	return results, nil
}

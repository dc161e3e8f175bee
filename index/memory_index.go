package index

import "sort"

// MemoryIndex is an in-memory Index variant: every posting lives in a
// map keyed by term id, never spilled to disk. It exists for tests and for
// corpora small enough that external merge sort is unnecessary overhead —
// the same role the original source's in-memory HashIndex played next to
// its on-disk FileIndex.
type MemoryIndex struct {
	vocab     *Vocabulary
	postings  map[uint32][]Posting
	docCount  uint32
	finalized bool
}

// NewMemoryIndex returns an empty, unfinalized MemoryIndex.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		vocab:    NewVocabulary(),
		postings: make(map[uint32][]Posting),
	}
}

// Add records one occurrence of term in docID. Valid only before Finalize.
func (m *MemoryIndex) Add(term string, docID uint32) error {
	if m.finalized {
		return ErrInvalidState
	}
	termID := m.vocab.Intern(term)
	list := m.postings[termID]
	for i := range list {
		if list[i].DocID == docID {
			list[i].TermFreq++
			return nil
		}
	}
	m.postings[termID] = append(list, Posting{TermID: termID, DocID: docID, TermFreq: 1})
	return nil
}

// Finalize sorts every term's posting list by ascending DocID and records
// per-term document frequency. It is the one-way transition to a readable
// index.
func (m *MemoryIndex) Finalize(docCount uint32) error {
	if m.finalized {
		return ErrInvalidState
	}
	for termID, list := range m.postings {
		sort.Slice(list, func(i, j int) bool { return list[i].DocID < list[j].DocID })
		m.postings[termID] = list
		term, _ := m.vocab.ByID(termID)
		count := uint32(len(list))
		m.vocab.SetMetadata(term, 0, count)
	}
	m.docCount = docCount
	m.finalized = true
	return nil
}

func (m *MemoryIndex) Occurrences(term string) ([]Posting, error) {
	entry, ok := m.vocab.Lookup(term)
	if !ok {
		return nil, nil
	}
	list := m.postings[entry.TermID]
	out := make([]Posting, len(list))
	copy(out, list)
	return out, nil
}

func (m *MemoryIndex) DocumentCountWithTerm(term string) uint32 {
	entry, ok := m.vocab.Lookup(term)
	if !ok {
		return 0
	}
	return uint32(len(m.postings[entry.TermID]))
}

func (m *MemoryIndex) DocumentCount() uint32 {
	return m.docCount
}

func (m *MemoryIndex) Vocabulary() *Vocabulary {
	return m.vocab
}

package index

// Index is the read surface shared by every index variant: a file-backed
// IndexReader over a sealed postings file, and an in-memory MemoryIndex
// used in tests and for small corpora that never touch disk.
type Index interface {
	// Occurrences returns every Posting for term, ordered by ascending
	// DocID. An unknown term yields an empty, non-nil-error result.
	Occurrences(term string) ([]Posting, error)

	// DocumentCountWithTerm returns the number of distinct documents
	// containing term, or 0 if term is unknown.
	DocumentCountWithTerm(term string) uint32

	// DocumentCount returns the total number of documents in the corpus.
	DocumentCount() uint32

	// Vocabulary returns the index's term <-> term_id vocabulary.
	Vocabulary() *Vocabulary
}

var (
	_ Index = (*IndexReader)(nil)
	_ Index = (*MemoryIndex)(nil)
)

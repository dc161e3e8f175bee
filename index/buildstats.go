package index

// BuildStats summarizes a finalized index: sizes a caller can report
// without re-walking the postings file or vocabulary.
type BuildStats struct {
	IndexName     string `json:"index_name"`
	DocumentCount uint32 `json:"document_count"`
	TermCount     uint32 `json:"term_count"`
	Generations   int    `json:"generations"`
}

// Stats summarizes a finalized IndexBuilder. Calling it before Finalize
// returns a zero-value DocumentCount/TermCount/Generations alongside the
// name, since those fields are only meaningful once the postings file is
// sealed.
func (b *IndexBuilder) Stats(indexName string) BuildStats {
	if !b.sealed {
		return BuildStats{IndexName: indexName}
	}
	return BuildStats{
		IndexName:     indexName,
		DocumentCount: b.docCount,
		TermCount:     uint32(b.vocab.Len()),
		Generations:   b.generation,
	}
}

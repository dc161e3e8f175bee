package index

import (
	"fmt"
	"io"
)

// IndexReader serves read-only queries against a sealed postings file and
// its vocabulary. It implements Index.
type IndexReader struct {
	fs           FileSystem
	postingsPath string
	vocab        *Vocabulary
	docCount     uint32
}

// NewIndexReader returns a reader over a sealed postings file, using vocab
// for term metadata and docCount as the corpus size.
func NewIndexReader(fs FileSystem, postingsPath string, vocab *Vocabulary, docCount uint32) *IndexReader {
	return &IndexReader{fs: fs, postingsPath: postingsPath, vocab: vocab, docCount: docCount}
}

// OpenIndexReader builds a reader directly from a finalized IndexBuilder,
// without a round trip through a VocabularyStore.
func OpenIndexReader(fs FileSystem, builder *IndexBuilder) (*IndexReader, error) {
	path, err := builder.PostingsPath()
	if err != nil {
		return nil, err
	}
	return NewIndexReader(fs, path, builder.Vocabulary(), builder.DocumentCount()), nil
}

// Occurrences returns every Posting for term, ordered by ascending DocID.
// An unknown term yields an empty, non-nil-error result.
func (r *IndexReader) Occurrences(term string) ([]Posting, error) {
	entry, ok := r.vocab.Lookup(term)
	if !ok || entry.PostingStartOffset == nil || entry.DocCountWithTerm == nil {
		return nil, nil
	}
	count := *entry.DocCountWithTerm
	if count == 0 {
		return nil, nil
	}

	f, err := r.fs.OpenReader(r.postingsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	if _, err := f.Seek(*entry.PostingStartOffset, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	postings := make([]Posting, 0, count)
	buf := make([]byte, RecordSize)
	for i := uint32(0); i < count; i++ {
		if _, err := readFullAt(f, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: truncated record", ErrDecodeError)
			}
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		p, err := Decode(buf)
		if err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, nil
}

// readFullAt reads exactly len(buf) bytes and returns the underlying
// reader's error unwrapped, io.EOF included. Unlike readFull, it does not
// treat a clean EOF as a zero-length read, because a read here at a known
// offset for a known count is always expected to fully succeed.
func readFullAt(r interface {
	Read(p []byte) (int, error)
}, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// DocumentCountWithTerm returns the number of distinct documents
// containing term, or 0 if term is unknown.
func (r *IndexReader) DocumentCountWithTerm(term string) uint32 {
	entry, ok := r.vocab.Lookup(term)
	if !ok || entry.DocCountWithTerm == nil {
		return 0
	}
	return *entry.DocCountWithTerm
}

// DocumentCount returns the total number of documents in the corpus.
func (r *IndexReader) DocumentCount() uint32 {
	return r.docCount
}

// Vocabulary returns the reader's vocabulary.
func (r *IndexReader) Vocabulary() *Vocabulary {
	return r.vocab
}

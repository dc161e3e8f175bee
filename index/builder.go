package index

import (
	"fmt"
	"path/filepath"
	"sort"
)

// runFileName names the accumulating sorted run at generation k.
func runFileName(k int) string {
	return fmt.Sprintf("occur_index_%d.idx", k)
}

// IndexBuilder builds an on-disk inverted index by external merge sort: it
// buffers postings in memory up to a fixed limit, then spills a sorted run
// to disk and merges it into the single accumulating sorted file, summing
// term frequencies where two postings collide on (term_id, doc_id).
//
// An IndexBuilder starts in the Building state, where Add is valid and
// reads are not. Finalize is the one-way transition to Sealed, after which
// Add is invalid and the postings file and vocabulary metadata are fixed.
type IndexBuilder struct {
	fs     FileSystem
	dir    string
	config BuilderConfig

	vocab *Vocabulary
	buf   []Posting

	generation int // k: 0 means no run has been written yet
	docCount   uint32
	seenDocs   map[uint32]bool

	sealed       bool
	finalized    bool
	postingsPath string
}

// NewIndexBuilder returns an empty IndexBuilder that spills runs under
// config.Dir via fs.
func NewIndexBuilder(fs FileSystem, config BuilderConfig) (*IndexBuilder, error) {
	if err := fs.CreateDirectory(config.Dir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return &IndexBuilder{
		fs:       fs,
		dir:      config.Dir,
		config:   config,
		vocab:    NewVocabulary(),
		seenDocs: make(map[uint32]bool),
	}, nil
}

// Add records one occurrence of term in docID. Terms are interned on first
// sighting. Add is only valid before Finalize.
func (b *IndexBuilder) Add(term string, docID uint32) error {
	if b.sealed {
		return fmt.Errorf("%w: Add called after Finalize", ErrInvalidState)
	}
	termID := b.vocab.Intern(term)
	if !b.seenDocs[docID] {
		b.seenDocs[docID] = true
		b.docCount++
	}
	b.buf = append(b.buf, Posting{TermID: termID, DocID: docID, TermFreq: 1})
	if len(b.buf) >= b.config.tmpLimit() {
		return b.spillAndMerge()
	}
	return nil
}

// spillAndMerge sorts and fuses the in-memory buffer into one run, then
// two-way merges that run into the accumulating sorted file on disk,
// summing TermFreq for postings that collide on (TermID, DocID).
func (b *IndexBuilder) spillAndMerge() error {
	run := fuseSorted(b.buf)
	b.buf = b.buf[:0]

	runPath := filepath.Join(b.dir, runFileName(b.generation+1)+".run")
	if err := writePostings(b.fs, runPath, run); err != nil {
		return err
	}
	defer b.fs.DeleteFile(runPath)

	nextPath := filepath.Join(b.dir, runFileName(b.generation+1))
	if b.generation == 0 {
		if err := copyPostingsFile(b.fs, runPath, nextPath); err != nil {
			return err
		}
	} else {
		prevPath := filepath.Join(b.dir, runFileName(b.generation))
		if err := mergePostingsFiles(b.fs, prevPath, runPath, nextPath); err != nil {
			return err
		}
		if err := b.fs.DeleteFile(prevPath); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	b.generation++
	return nil
}

// fuseSorted sorts postings by the Posting total order and fuses postings
// that collide on (TermID, DocID) by summing TermFreq.
func fuseSorted(postings []Posting) []Posting {
	sorted := make([]Posting, len(postings))
	copy(sorted, postings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	fused := sorted[:0:0]
	for _, p := range sorted {
		if n := len(fused); n > 0 && fused[n-1].SameKey(p) {
			fused[n-1].TermFreq += p.TermFreq
			continue
		}
		fused = append(fused, p)
	}
	return fused
}

// Finalize performs any remaining spill, streams the fully merged postings
// file to compute each term's posting_start_offset and
// doc_count_with_term, and transitions the builder to Sealed. Finalize may
// only be called once.
func (b *IndexBuilder) Finalize() error {
	if b.sealed {
		return fmt.Errorf("%w: Finalize called twice", ErrInvalidState)
	}
	if len(b.buf) > 0 || b.generation == 0 {
		if err := b.spillAndMerge(); err != nil {
			return err
		}
	}
	b.sealed = true

	finalPath := filepath.Join(b.dir, "postings.idx")
	if b.generation == 0 {
		if err := writePostings(b.fs, finalPath, nil); err != nil {
			return err
		}
	} else {
		srcPath := filepath.Join(b.dir, runFileName(b.generation))
		if err := copyPostingsFile(b.fs, srcPath, finalPath); err != nil {
			return err
		}
		if err := b.fs.DeleteFile(srcPath); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	b.postingsPath = finalPath

	if err := b.computeVocabMetadata(finalPath); err != nil {
		return err
	}
	return nil
}

// computeVocabMetadata streams the sealed postings file once, recording
// for each term the byte offset of its first posting and the count of
// postings carrying its term id.
func (b *IndexBuilder) computeVocabMetadata(path string) error {
	r, err := b.fs.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer r.Close()

	buf := make([]byte, RecordSize)
	var offset int64
	for {
		n, err := readFull(r, buf)
		if n == 0 {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		p, err := Decode(buf)
		if err != nil {
			return err
		}
		term, ok := b.vocab.ByID(p.TermID)
		if !ok {
			return fmt.Errorf("%w: unknown term id %d in postings file", ErrInvalidState, p.TermID)
		}
		b.vocab.markFirstOffset(term, offset)
		offset += RecordSize
	}
	return nil
}

// Sealed reports whether Finalize has completed.
func (b *IndexBuilder) Sealed() bool {
	return b.sealed
}

// PostingsPath returns the path of the final sealed postings file. Valid
// only after Finalize.
func (b *IndexBuilder) PostingsPath() (string, error) {
	if !b.sealed {
		return "", fmt.Errorf("%w: PostingsPath called before Finalize", ErrInvalidState)
	}
	return b.postingsPath, nil
}

// Vocabulary returns the builder's vocabulary. Metadata fields are only
// populated after Finalize.
func (b *IndexBuilder) Vocabulary() *Vocabulary {
	return b.vocab
}

// DocumentCount returns the number of distinct document ids ever passed to
// Add.
func (b *IndexBuilder) DocumentCount() uint32 {
	return b.docCount
}

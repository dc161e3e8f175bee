package index

import "sync"

// VocabEntry is the per-term metadata held by a Vocabulary: the term's
// assigned id plus, once the owning index has been finalized, its posting
// run's start offset and document frequency. PostingStartOffset and
// DocCountWithTerm are nil until finalization.
type VocabEntry struct {
	TermID             uint32
	PostingStartOffset *int64
	DocCountWithTerm   *uint32
}

// Vocabulary is the in-memory bijection between term strings and term ids,
// plus per-term metadata. Term ids are assigned at first sighting as the
// current size of the vocabulary: monotone and gap-free.
type Vocabulary struct {
	mu     sync.RWMutex
	byTerm map[string]*VocabEntry
	byID   []string
}

// NewVocabulary returns an empty Vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		byTerm: make(map[string]*VocabEntry),
	}
}

// Intern returns term's id, allocating the next id if term has not been
// seen before.
func (v *Vocabulary) Intern(term string) uint32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if entry, ok := v.byTerm[term]; ok {
		return entry.TermID
	}
	id := uint32(len(v.byID))
	v.byTerm[term] = &VocabEntry{TermID: id}
	v.byID = append(v.byID, term)
	return id
}

// Lookup returns the entry for term, or (nil, false) if term has never been
// interned.
func (v *Vocabulary) Lookup(term string) (*VocabEntry, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	entry, ok := v.byTerm[term]
	return entry, ok
}

// ByID returns the term string for a term id, or (\"\", false) if the id was
// never assigned.
func (v *Vocabulary) ByID(termID uint32) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if int(termID) >= len(v.byID) {
		return "", false
	}
	return v.byID[termID], true
}

// SetMetadata records term's posting-run start offset and document
// frequency in one call, overwriting any earlier values; it does nothing
// for a term that was never interned. IndexBuilder.Finalize does not use
// it: it calls markFirstOffset below once per posting instead.
func (v *Vocabulary) SetMetadata(term string, offset int64, df uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	entry, ok := v.byTerm[term]
	if !ok {
		return
	}
	o := offset
	d := df
	entry.PostingStartOffset = &o
	entry.DocCountWithTerm = &d
}

// GetMetadata returns the entry for term, or (nil, false) if unknown.
func (v *Vocabulary) GetMetadata(term string) (*VocabEntry, bool) {
	return v.Lookup(term)
}

// Len returns the number of interned terms.
func (v *Vocabulary) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.byID)
}

// Terms returns every interned term string, in term_id order.
func (v *Vocabulary) Terms() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]string, len(v.byID))
	copy(out, v.byID)
	return out
}

// markFirstOffset sets term's PostingStartOffset only if it is still nil,
// and increments DocCountWithTerm. Used exclusively by IndexBuilder.Finalize
// while streaming the sealed postings file.
func (v *Vocabulary) markFirstOffset(term string, offset int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	entry, ok := v.byTerm[term]
	if !ok {
		return
	}
	if entry.PostingStartOffset == nil {
		o := offset
		entry.PostingStartOffset = &o
	}
	if entry.DocCountWithTerm == nil {
		zero := uint32(0)
		entry.DocCountWithTerm = &zero
	}
	*entry.DocCountWithTerm++
}

package index

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
)

const defaultBTreePageSize = 64

// metaFileName holds the store's root node id and page size so a store can
// be reopened across process restarts.
const metaFileName = "vocab_meta.json"

type vocabStoreMeta struct {
	RootID   string `json:"rootID"`
	PageSize int    `json:"pageSize"`
}

// VocabularyStore persists a Vocabulary's term -> term_id mapping in a
// B+Tree, one JSON file per node, under dir. Per-term posting metadata
// (offset, document frequency) is persisted separately as a flat JSON
// sidecar, since it is only ever written once, in bulk, at finalization.
//
// Persisting the vocabulary at all is an optional extension beyond the
// core index: a freshly built IndexBuilder keeps its Vocabulary in memory
// and never needs this type.
type VocabularyStore struct {
	fs   FileSystem
	dir  string
	tree *btree
}

// OpenVocabularyStore opens or creates a VocabularyStore rooted at dir.
func OpenVocabularyStore(fs FileSystem, dir string) (*VocabularyStore, error) {
	if err := fs.CreateDirectory(dir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	storage := newFileBTreeNodeStorage(fs, dir)
	meta, err := readVocabStoreMeta(fs, dir)
	if err != nil {
		return nil, err
	}
	tree := newBTree(storage, meta.RootID, meta.PageSize)
	return &VocabularyStore{fs: fs, dir: dir, tree: tree}, nil
}

func readVocabStoreMeta(fs FileSystem, dir string) (vocabStoreMeta, error) {
	path := filepath.Join(dir, metaFileName)
	exists, err := fs.FileExists(path)
	if err != nil {
		return vocabStoreMeta{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if !exists {
		return vocabStoreMeta{PageSize: defaultBTreePageSize}, nil
	}
	r, err := fs.OpenReader(path)
	if err != nil {
		return vocabStoreMeta{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer r.Close()
	var meta vocabStoreMeta
	if err := json.NewDecoder(r).Decode(&meta); err != nil {
		return vocabStoreMeta{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return meta, nil
}

func (s *VocabularyStore) writeMeta() error {
	w, err := s.fs.OpenWriter(filepath.Join(s.dir, metaFileName))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer w.Close()
	meta := vocabStoreMeta{RootID: s.tree.RootID(), PageSize: s.tree.pageSize}
	return json.NewEncoder(w).Encode(meta)
}

func (s *VocabularyStore) entryPath(termID uint32) string {
	return filepath.Join(s.dir, fmt.Sprintf("meta_%d.json", termID))
}

type persistedEntry struct {
	Term               string  `json:"term"`
	PostingStartOffset *int64  `json:"postingStartOffset,omitempty"`
	DocCountWithTerm   *uint32 `json:"docCountWithTerm,omitempty"`
}

// Save writes every term in v, plus its metadata, to the store. Save is
// meant to be called once, after the owning index has been finalized.
func (s *VocabularyStore) Save(v *Vocabulary) error {
	for _, term := range v.Terms() {
		entry, ok := v.Lookup(term)
		if !ok {
			continue
		}
		if err := s.tree.Insert(term, entry.TermID); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
		pe := persistedEntry{Term: term, PostingStartOffset: entry.PostingStartOffset, DocCountWithTerm: entry.DocCountWithTerm}
		data, err := json.Marshal(pe)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
		w, err := s.fs.OpenWriter(s.entryPath(entry.TermID))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
		if _, err := w.Write(data); err != nil {
			w.Close()
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	return s.writeMeta()
}

// Load reconstructs a Vocabulary from the store. Terms are re-interned in
// ascending term_id order (not B+Tree key order) so that Intern-order
// round-trips: the reloaded Vocabulary assigns the same ids to the same
// terms as the one that was saved.
func (s *VocabularyStore) Load() (*Vocabulary, error) {
	ids, err := s.listTermIDs()
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	v := NewVocabulary()
	for _, id := range ids {
		pe, err := s.readEntry(id)
		if err != nil {
			return nil, err
		}
		gotID := v.Intern(pe.Term)
		if gotID != id {
			return nil, fmt.Errorf("%w: term %q reinterned as %d, stored as %d", ErrInvalidState, pe.Term, gotID, id)
		}
		if pe.PostingStartOffset != nil && pe.DocCountWithTerm != nil {
			v.SetMetadata(pe.Term, *pe.PostingStartOffset, *pe.DocCountWithTerm)
		}
	}
	return v, nil
}

func (s *VocabularyStore) readEntry(termID uint32) (persistedEntry, error) {
	r, err := s.fs.OpenReader(s.entryPath(termID))
	if err != nil {
		return persistedEntry{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer r.Close()
	var pe persistedEntry
	if err := json.NewDecoder(r).Decode(&pe); err != nil {
		return persistedEntry{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return pe, nil
}

// listTermIDs walks the leaf chain of the B+Tree to recover every term id
// ever inserted, without needing a separate on-disk index.
func (s *VocabularyStore) listTermIDs() ([]uint32, error) {
	if s.tree.RootID() == "" {
		return nil, nil
	}
	storage := s.tree.storage
	node, err := storage.LoadNode(s.tree.RootID())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	for !node.isLeaf() {
		if len(node.Children) == 0 {
			return nil, nil
		}
		node, err = storage.LoadNode(node.Children[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	var ids []uint32
	for node != nil {
		ids = append(ids, node.Values...)
		if node.Next == "" {
			break
		}
		node, err = storage.LoadNode(node.Next)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	return ids, nil
}

// LookupTermID returns the term id for term without loading the whole
// vocabulary, by walking the B+Tree directly.
func (s *VocabularyStore) LookupTermID(term string) (uint32, bool, error) {
	id, ok, err := s.tree.Search(term)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return id, ok, nil
}

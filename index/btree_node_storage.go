package index

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// btreeNodeStorage abstracts node persistence so the tree can be tested
// against an in-memory storage as well as the real filesystem.
type btreeNodeStorage interface {
	SaveNode(node *btreeNode) error
	LoadNode(nodeID string) (*btreeNode, error)
}

// fileBTreeNodeStorage implements btreeNodeStorage over a FileSystem, one
// JSON file per node, exactly as the teacher's FileBTreeNodeStorage does.
type fileBTreeNodeStorage struct {
	fs        FileSystem
	indexPath string
}

func newFileBTreeNodeStorage(fs FileSystem, indexPath string) *fileBTreeNodeStorage {
	return &fileBTreeNodeStorage{fs: fs, indexPath: indexPath}
}

func (s *fileBTreeNodeStorage) nodePath(nodeID string) string {
	return filepath.Join(s.indexPath, nodeID+".json")
}

func (s *fileBTreeNodeStorage) SaveNode(node *btreeNode) error {
	if !node.IsDirty {
		return nil
	}
	if s.indexPath == "" || node.ID == "" {
		return fmt.Errorf("%w: invalid node path", ErrIO)
	}
	data, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	w, err := s.fs.OpenWriter(s.nodePath(node.ID))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer w.Close()
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	node.IsDirty = false
	return nil
}

func (s *fileBTreeNodeStorage) LoadNode(nodeID string) (*btreeNode, error) {
	r, err := s.fs.OpenReader(s.nodePath(nodeID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer r.Close()
	var node btreeNode
	if err := json.NewDecoder(r).Decode(&node); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	node.IsDirty = false
	return &node, nil
}

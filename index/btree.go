package index

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// btree is a B+Tree mapping term strings to term ids, with pluggable node
// storage. It supports Insert and Search; Delete is intentionally
// unsupported because a sealed index's vocabulary never shrinks.
type btree struct {
	storage  btreeNodeStorage
	rootID   string
	pageSize int
}

func newBTree(storage btreeNodeStorage, rootID string, pageSize int) *btree {
	return &btree{storage: storage, rootID: rootID, pageSize: pageSize}
}

func (bt *btree) RootID() string {
	return bt.rootID
}

// Insert adds a term -> termID entry. Behavior for a term already present
// is undefined; callers (VocabularyStore) only insert each term once.
func (bt *btree) Insert(term string, termID uint32) error {
	if bt.rootID == "" {
		root := newBTreeNode(generateNodeID(), btreeLeaf, bt.pageSize)
		root.Keys = append(root.Keys, term)
		root.Values = append(root.Values, termID)
		if err := bt.storage.SaveNode(root); err != nil {
			return err
		}
		bt.rootID = root.ID
		return nil
	}
	root, err := bt.storage.LoadNode(bt.rootID)
	if err != nil {
		return err
	}
	return bt.insertRecursive(root, term, termID)
}

func (bt *btree) insertRecursive(node *btreeNode, term string, termID uint32) error {
	if node.isLeaf() {
		pos := 0
		for pos < len(node.Keys) && strings.Compare(term, node.Keys[pos]) > 0 {
			pos++
		}
		node.Keys = append(node.Keys[:pos], append([]string{term}, node.Keys[pos:]...)...)
		node.Values = append(node.Values[:pos], append([]uint32{termID}, node.Values[pos:]...)...)
		node.IsDirty = true
		if !node.isFull() {
			return bt.storage.SaveNode(node)
		}
		return bt.splitLeaf(node)
	}
	pos := 0
	for pos < len(node.Keys) && strings.Compare(term, node.Keys[pos]) > 0 {
		pos++
	}
	childID := node.Children[pos]
	child, err := bt.storage.LoadNode(childID)
	if err != nil {
		return err
	}
	if err := bt.insertRecursive(child, term, termID); err != nil {
		return err
	}
	if child.isFull() {
		return bt.storage.SaveNode(node)
	}
	return bt.storage.SaveNode(node)
}

func (bt *btree) splitLeaf(leaf *btreeNode) error {
	mid := len(leaf.Keys) / 2
	right := newBTreeNode(generateNodeID(), btreeLeaf, bt.pageSize)
	right.Keys = append(right.Keys, leaf.Keys[mid:]...)
	right.Values = append(right.Values, leaf.Values[mid:]...)
	right.Next = leaf.Next
	right.Previous = leaf.ID
	leaf.Keys = leaf.Keys[:mid]
	leaf.Values = leaf.Values[:mid]
	leaf.Next = right.ID
	leaf.IsDirty = true
	if err := bt.storage.SaveNode(leaf); err != nil {
		return err
	}
	if err := bt.storage.SaveNode(right); err != nil {
		return err
	}
	if leaf.Parent == "" {
		root := newBTreeNode(generateNodeID(), btreeInternal, bt.pageSize)
		root.Keys = append(root.Keys, right.Keys[0])
		root.Children = append(root.Children, leaf.ID, right.ID)
		leaf.Parent = root.ID
		right.Parent = root.ID
		if err := bt.storage.SaveNode(root); err != nil {
			return err
		}
		bt.rootID = root.ID
		return nil
	}
	parent, err := bt.storage.LoadNode(leaf.Parent)
	if err != nil {
		return err
	}
	return bt.insertInternalAfterSplit(parent, right.Keys[0], right.ID)
}

func (bt *btree) insertInternalAfterSplit(parent *btreeNode, key string, rightID string) error {
	pos := 0
	for pos < len(parent.Keys) && strings.Compare(key, parent.Keys[pos]) > 0 {
		pos++
	}
	parent.Keys = append(parent.Keys[:pos], append([]string{key}, parent.Keys[pos:]...)...)
	parent.Children = append(parent.Children[:pos+1], append([]string{rightID}, parent.Children[pos+1:]...)...)
	parent.IsDirty = true
	if !parent.isFull() {
		return bt.storage.SaveNode(parent)
	}
	return bt.splitInternal(parent)
}

func (bt *btree) splitInternal(internal *btreeNode) error {
	mid := len(internal.Keys) / 2
	right := newBTreeNode(generateNodeID(), btreeInternal, bt.pageSize)
	right.Keys = append(right.Keys, internal.Keys[mid+1:]...)
	right.Children = append(right.Children, internal.Children[mid+1:]...)
	promoteKey := internal.Keys[mid]
	internal.Keys = internal.Keys[:mid]
	internal.Children = internal.Children[:mid+1]
	internal.IsDirty = true
	if err := bt.storage.SaveNode(internal); err != nil {
		return err
	}
	if err := bt.storage.SaveNode(right); err != nil {
		return err
	}
	if internal.Parent == "" {
		root := newBTreeNode(generateNodeID(), btreeInternal, bt.pageSize)
		root.Keys = append(root.Keys, promoteKey)
		root.Children = append(root.Children, internal.ID, right.ID)
		internal.Parent = root.ID
		right.Parent = root.ID
		if err := bt.storage.SaveNode(root); err != nil {
			return err
		}
		bt.rootID = root.ID
		return nil
	}
	parent, err := bt.storage.LoadNode(internal.Parent)
	if err != nil {
		return err
	}
	return bt.insertInternalAfterSplit(parent, promoteKey, right.ID)
}

// Search returns the termID stored under term, and whether it was found.
func (bt *btree) Search(term string) (uint32, bool, error) {
	if bt.rootID == "" {
		return 0, false, nil
	}
	node, err := bt.storage.LoadNode(bt.rootID)
	if err != nil {
		return 0, false, err
	}
	for !node.isLeaf() {
		pos := 0
		for pos < len(node.Keys) && strings.Compare(term, node.Keys[pos]) >= 0 {
			pos++
		}
		childID := node.Children[pos]
		node, err = bt.storage.LoadNode(childID)
		if err != nil {
			return 0, false, err
		}
	}
	for i, k := range node.Keys {
		if k == term {
			return node.Values[i], true, nil
		}
	}
	return 0, false, nil
}

// Delete is not supported: a vocabulary is append-only once terms are
// interned, so the tree never needs to shrink.
func (bt *btree) Delete(term string) error {
	return errors.New("index: btree delete not supported")
}

func generateNodeID() string {
	return uuid.NewString()
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// docRegistry maps document ids to the source path they were built from.
// It is persisted as one JSON file alongside the postings file and
// vocabulary, so a query command run in a later process can turn a
// matched doc_id back into something a person can open.
type docRegistry struct {
	Paths map[uint32]string `json:"paths"`
	next  uint32
}

func newDocRegistry() *docRegistry {
	return &docRegistry{Paths: make(map[uint32]string)}
}

// Assign returns the doc_id for path, allocating the next id in insertion
// order.
func (d *docRegistry) Assign(path string) uint32 {
	id := d.next
	d.Paths[id] = path
	d.next++
	return id
}

func (d *docRegistry) save(dir string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal doc registry: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "docs.json"), data, 0644)
}

func loadDocRegistry(dir string) (*docRegistry, error) {
	data, err := os.ReadFile(filepath.Join(dir, "docs.json"))
	if err != nil {
		return nil, fmt.Errorf("read doc registry: %w", err)
	}
	var d docRegistry
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal doc registry: %w", err)
	}
	return &d, nil
}

// sortedIDs returns every doc id in ascending order, useful for
// deterministic demo/debug output.
func (d *docRegistry) sortedIDs() []uint32 {
	ids := make([]uint32, 0, len(d.Paths))
	for id := range d.Paths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Package catalog implements the Catalog Store (C5) and Catalog Writer (C8):
// the in-memory, disk-backed key→text mapping the rest of the pipeline reads
// and writes through.
package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Store is the in-memory view of an on-disk catalog directory, loaded once
// per run and shared read-mostly by the key synthesizer (C6) and rewriter
// (C7); the writer (C8) updates both the disk files and this mirror
// together so they never drift apart mid-run (§4.5, §9 "sharing the
// catalog").
type Store struct {
	Dir     string // catalogDir/srcLang, e.g. "src/locales/zh-CN"
	Ext     string // leading-dot file extension, e.g. ".ts"
	SrcLang string

	namespaces map[string]*Node
	nsOrder    []string

	// flatOrder preserves insertion order across namespaces so
	// lookupByValue's "first key whose value equals v" is well-defined
	// (§4.5) even though Go maps don't iterate in insertion order.
	flatOrder []string
	values    map[string]string

	// fileHash records each namespace file's content hash as it is loaded.
	// Nothing reads it back: Load parses every namespace file each time.
	fileHash map[string]uint64
}

// Load checks that the aggregator file (index.<ext> under dir) exists, then
// reads every sibling namespace file in dir, flattening each into the
// in-memory mapping. The aggregator's own contents are not read. A missing
// aggregator is not an error — it means the catalog
// directory hasn't been created yet (the first extraction run in a fresh
// project) and Load returns an empty, writable Store.
func Load(dir, ext string) (*Store, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s := &Store{
		Dir:        dir,
		Ext:        ext,
		namespaces: make(map[string]*Node),
		values:     make(map[string]string),
		fileHash:   make(map[string]uint64),
	}

	aggregatorPath := filepath.Join(dir, "index"+ext)
	if _, err := os.Stat(aggregatorPath); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ext) {
			continue
		}
		ns := strings.TrimSuffix(name, ext)
		if ns == "index" {
			continue
		}
		if err := s.loadNamespace(ns); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) namespacePath(ns string) string {
	return filepath.Join(s.Dir, ns+s.Ext)
}

func (s *Store) loadNamespace(ns string) error {
	path := s.namespacePath(ns)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	tree, err := parseNamespaceFile(s.Ext, content)
	if err != nil {
		return err
	}

	s.fileHash[ns] = xxhash.Sum64(content)
	s.setNamespace(ns, tree)
	return nil
}

// setNamespace installs or replaces a namespace's tree and rebuilds the flat
// index entries that belong to it.
func (s *Store) setNamespace(ns string, tree *Node) {
	if _, exists := s.namespaces[ns]; !exists {
		s.nsOrder = append(s.nsOrder, ns)
	}
	s.namespaces[ns] = tree

	var kvs []KV
	tree.Flatten(ns, &kvs)
	for _, kv := range kvs {
		if _, exists := s.values[kv.Key]; !exists {
			s.flatOrder = append(s.flatOrder, kv.Key)
		}
		s.values[kv.Key] = kv.Value
	}
}

// LookupByValue returns the first key (by insertion order) bound to v, the
// reverse lookup the key synthesizer uses to reuse an existing key for a
// literal it has seen before (§4.5, invariant K1/P3).
func (s *Store) LookupByValue(v string) (string, bool) {
	for _, k := range s.flatOrder {
		if s.values[k] == v {
			return k, true
		}
	}
	return "", false
}

// LookupByKey returns the value currently bound to a dotted key.
func (s *Store) LookupByKey(k string) (string, bool) {
	v, ok := s.values[k]
	return v, ok
}

// HasKey reports whether k is bound to any value.
func (s *Store) HasKey(k string) bool {
	_, ok := s.values[k]
	return ok
}

// Keys returns every key currently in the catalog.
func (s *Store) Keys() []string {
	out := make([]string, len(s.flatOrder))
	copy(out, s.flatOrder)
	return out
}

// Namespace returns the parsed tree for ns, creating an empty one if it
// doesn't exist yet — callers use this before writing a new key into it.
func (s *Store) Namespace(ns string) *Node {
	n, ok := s.namespaces[ns]
	if !ok {
		n = NewNode()
		s.setNamespace(ns, n)
	}
	return n
}

// NamespaceExists reports whether ns was present on disk (or has been
// created in-memory already this run).
func (s *Store) NamespaceExists(ns string) bool {
	_, ok := s.namespaces[ns]
	return ok
}

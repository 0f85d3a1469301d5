package dict

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// CodeIndex is a patricia trie over the codes of a WordDict. It backs the
// code-prefix lookups used by edit mode and the IPC server, so an operator
// can find which codes exist under a partial code without scanning the map.
type CodeIndex struct {
	trie *patricia.Trie
}

// NewCodeIndex builds an index over every code currently in d.
func NewCodeIndex(d WordDict) *CodeIndex {
	idx := &CodeIndex{trie: patricia.NewTrie()}
	for code, words := range d {
		idx.trie.Insert(patricia.Prefix(code), len(words))
	}
	return idx
}

// Rebuild replaces the index contents with the codes of d.
func (idx *CodeIndex) Rebuild(d WordDict) {
	idx.trie = patricia.NewTrie()
	for code, words := range d {
		idx.trie.Insert(patricia.Prefix(code), len(words))
	}
}

// Set records a code and its candidate count, inserting or updating.
func (idx *CodeIndex) Set(code string, count int) {
	idx.trie.Insert(patricia.Prefix(code), count)
}

// Delete removes a code from the index.
func (idx *CodeIndex) Delete(code string) {
	idx.trie.Delete(patricia.Prefix(code))
}

// CodesWithPrefix returns all indexed codes starting with prefix, sorted.
// An empty prefix returns every code.
func (idx *CodeIndex) CodesWithPrefix(prefix string) []string {
	var codes []string
	err := idx.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		codes = append(codes, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting code index subtree: %v", err)
	}
	sort.Strings(codes)
	return codes
}

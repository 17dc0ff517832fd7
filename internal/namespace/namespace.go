// Package namespace arranges a flat mapping of dotted-path names into
// a nested tree for ergonomic lookup, mirroring how catalog gcp_ids
// like "climate.tas" group by prefix.
package namespace

import (
	"slices"
	"strings"

	"github.com/impactlab/varcat/internal/variable"
)

// Tree is one node of a namespace. A node may hold a variable and
// children at the same time: "a.b" and "a.b.c" can both exist.
type Tree struct {
	children map[string]*Tree
	leaf     *variable.Variable
}

// Build arranges the flat mapping into a tree. Paths are split on ".";
// when two entries resolve to the same leaf the write applied last
// wins, and entries are applied in sorted-key order so the result is
// deterministic.
func Build(vars map[string]*variable.Variable) *Tree {
	root := newNode()

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, path := range keys {
		node := root
		for _, seg := range strings.Split(path, ".") {
			child, ok := node.children[seg]
			if !ok {
				child = newNode()
				node.children[seg] = child
			}
			node = child
		}
		node.leaf = vars[path]
	}
	return root
}

func newNode() *Tree {
	return &Tree{children: map[string]*Tree{}}
}

// Lookup resolves a dotted path to the variable stored at that exact
// leaf.
func (t *Tree) Lookup(path string) (*variable.Variable, bool) {
	node := t
	for _, seg := range strings.Split(path, ".") {
		child, ok := node.children[seg]
		if !ok {
			return nil, false
		}
		node = child
	}
	if node.leaf == nil {
		return nil, false
	}
	return node.leaf, true
}

// Children returns the sorted names of the direct children of a node;
// an empty path names the root.
func (t *Tree) Children(path string) []string {
	node := t
	if path != "" {
		for _, seg := range strings.Split(path, ".") {
			child, ok := node.children[seg]
			if !ok {
				return nil
			}
			node = child
		}
	}
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// List returns every leaf path in sorted order.
func (t *Tree) List() []string {
	var paths []string
	t.walk("", &paths)
	slices.Sort(paths)
	return paths
}

func (t *Tree) walk(prefix string, out *[]string) {
	if t.leaf != nil && prefix != "" {
		*out = append(*out, prefix)
	}
	for name, child := range t.children {
		p := name
		if prefix != "" {
			p = prefix + "." + name
		}
		child.walk(p, out)
	}
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package node implements the trie node used by the chunked persistent
// vector: a closed sum type over a dense array, a sparse array of
// (slot index, entry) pairs, and a run-length-compressed leaf, all exposing identical
// indexed semantics. Compression is chosen by density and repetition
// heuristics and is completely transparent to callers of Child/At.
package node

import (
	"fmt"
	"reflect"

	"persist.dev/vector/internal/chunk"
)

// comp names which compressed representation a node currently uses.
type comp uint8

const (
	compNone comp = iota
	compSparse
	compRun
)

// sparseDensityThreshold is the live/width ratio below which a node is
// rewritten into the sparse representation (spec: "< 0.30").
const sparseDensityThreshold = 0.30

// runMaxRuns is the maximum number of runs a leaf may have and still
// qualify for run-length compression (spec: "(#runs) <= (B / 8)").
const runMaxRuns = chunk.Width / 8

// runMinLength is the minimum length a single run must reach before run
// compression is considered worthwhile (spec: "repeats for >= 8
// consecutive slots").
const runMinLength = 8

type runPair[T any] struct {
	Val T
	Run int
}

// A Node is either a leaf (holding up to chunk.Width user elements) or an
// internal node (holding up to chunk.Width children), in one of three
// representations: dense, sparse, or (leaves only) run-length.
//
// Node values reachable from a persistent Vector are never mutated
// in place: owner is 0 for every such node. A Node reachable only from a
// live Transient carries owner equal to that transient's id and MAY be
// mutated in place by the same transient; see EnsureOwnedLeaf/
// EnsureOwnedInternal.
type Node[T any] struct {
	leaf  bool
	comp  comp
	owner uint64
	size  int // total user elements reachable beneath this node

	dense    *chunk.Chunk[T]           // leaf, compNone
	children [chunk.Width]*Node[T]     // internal, compNone
	sIdx     []uint8                   // leaf or internal, compSparse
	sVal     []T                       // leaf, compSparse
	sChild   []*Node[T]                // internal, compSparse
	runs     []runPair[T]              // leaf, compRun
}

// NewLeaf returns a fresh, owned, empty leaf node.
func NewLeaf[T any](owner uint64) *Node[T] {
	return &Node[T]{leaf: true, owner: owner, dense: chunk.New[T]()}
}

// NewLeafFromChunk returns a shared (owner 0) leaf wrapping a copy of c,
// compressing it if the resulting density or repetition warrants it.
func NewLeafFromChunk[T any](c *chunk.Chunk[T]) *Node[T] {
	return compressLeaf(c.Clone(), 0)
}

// NewInternal returns a fresh, owned, empty internal node.
func NewInternal[T any](owner uint64) *Node[T] {
	return &Node[T]{owner: owner}
}

// NewOwnedLeafFromChunk returns a leaf node owned by owner, wrapping a
// copy of c in the uncompressed representation (owned nodes are always
// kept dense; see EnsureOwnedLeaf).
func NewOwnedLeafFromChunk[T any](owner uint64, c *chunk.Chunk[T]) *Node[T] {
	return &Node[T]{leaf: true, owner: owner, size: c.Len, dense: c.Clone()}
}

// Leaf reports whether n is a leaf node (holds values) as opposed to an
// internal node (holds children).
func (n *Node[T]) Leaf() bool {
	if n == nil {
		return false
	}
	return n.leaf
}

// Size returns the number of user elements reachable beneath n.
func (n *Node[T]) Size() int {
	if n == nil {
		return 0
	}
	return n.size
}

// Owner returns the id of the Transient allowed to mutate n in place, or
// 0 if n is shared/immutable.
func (n *Node[T]) Owner() uint64 {
	if n == nil {
		return 0
	}
	return n.owner
}

// At returns the value stored at leaf slot i and whether it is present.
// n must be a leaf.
func (n *Node[T]) At(i int) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	switch n.comp {
	case compNone:
		if i < 0 || i >= n.dense.Len {
			return zero, false
		}
		return n.dense.At(i), true
	case compSparse:
		j, ok := search(n.sIdx, uint8(i))
		if !ok {
			return zero, false
		}
		return n.sVal[j], true
	case compRun:
		at := 0
		for _, r := range n.runs {
			if i < at+r.Run {
				return r.Val, true
			}
			at += r.Run
		}
		return zero, false
	}
	return zero, false
}

// Child returns the child at internal slot i and whether it is present.
// n must be an internal node.
func (n *Node[T]) Child(i int) (*Node[T], bool) {
	if n == nil {
		return nil, false
	}
	switch n.comp {
	case compNone:
		c := n.children[i]
		return c, c != nil
	case compSparse:
		j, ok := search(n.sIdx, uint8(i))
		if !ok {
			return nil, false
		}
		return n.sChild[j], true
	}
	return nil, false
}

// WithAt returns a new leaf node equal to n but with slot i set to v,
// sharing as much storage as compression permits. i must be in
// [0, live length] and below chunk.Width; i == current live length grows
// the leaf by one slot.
func (n *Node[T]) WithAt(i int, v T) *Node[T] {
	c := n.expandLeaf()
	if i == c.Len {
		c.Push(v)
	} else {
		c.Set(i, v)
	}
	return compressLeaf(c, 0)
}

// WithChild returns a new internal node equal to n but with slot i set
// to child, sharing as much storage as compression permits.
func (n *Node[T]) WithChild(i int, child *Node[T]) *Node[T] {
	arr := n.expandInternal()
	arr[i] = child
	size := 0
	for _, c := range arr {
		size += c.Size()
	}
	return compressInternal(arr, size, 0)
}

// EnsureOwnedLeaf returns a leaf node with owner == owner, safe to
// mutate in place: either n itself (if already owned by owner) or a
// freshly decompressed, owned copy.
func (n *Node[T]) EnsureOwnedLeaf(owner uint64) *Node[T] {
	if n != nil && n.owner == owner && n.comp == compNone {
		return n
	}
	c := n.expandLeaf()
	return &Node[T]{leaf: true, owner: owner, size: c.Len, dense: c}
}

// EnsureOwnedInternal returns an internal node with owner == owner, safe
// to mutate in place: either n itself (if already owned by owner) or a
// freshly decompressed, owned copy. Children pointers are shared with n;
// only the slot array itself is private to the returned node.
func (n *Node[T]) EnsureOwnedInternal(owner uint64) *Node[T] {
	if n != nil && n.owner == owner && n.comp == compNone {
		return n
	}
	arr := n.expandInternal()
	size := 0
	for _, c := range arr {
		size += c.Size()
	}
	return &Node[T]{owner: owner, size: size, children: arr}
}

// SetAtOwned writes v into slot i of an owned leaf node in place. The
// caller must have obtained n from EnsureOwnedLeaf with a matching owner.
func (n *Node[T]) SetAtOwned(i int, v T) {
	if i == n.dense.Len {
		n.dense.Push(v)
	} else {
		n.dense.Set(i, v)
	}
	n.size = n.dense.Len
}

// SetChildOwned writes child into slot i of an owned internal node in
// place. The caller must have obtained n from EnsureOwnedInternal with a
// matching owner.
func (n *Node[T]) SetChildOwned(i int, child *Node[T]) {
	old := n.children[i]
	n.children[i] = child
	n.size += child.Size() - old.Size()
}

// Freeze detaches n from its transient: it marks n and (recursively, for
// an internal node) its directly owned children as shared (owner 0),
// compressing each along the way. Children already shared (owner 0) are
// left untouched, since they are already immutable and may be reachable
// from other Vectors. If cache is non-nil, every newly shared node is
// interned through it.
func (n *Node[T]) Freeze(owner uint64, cache *Cache[T]) *Node[T] {
	if n == nil {
		return nil
	}
	if n.owner != owner {
		return n
	}
	if n.leaf {
		return cache.Intern(compressLeaf(n.dense, 0))
	}
	arr := n.children
	for i, c := range arr {
		arr[i] = c.Freeze(owner, cache)
	}
	size := 0
	for _, c := range arr {
		size += c.Size()
	}
	return cache.Intern(compressInternal(arr, size, 0))
}

// expandLeaf returns a private, dense (compNone) copy of n's values,
// regardless of n's current representation. A nil n expands to an empty
// chunk.
func (n *Node[T]) expandLeaf() *chunk.Chunk[T] {
	if n == nil {
		return chunk.New[T]()
	}
	switch n.comp {
	case compNone:
		return n.dense.Clone()
	case compSparse:
		c := chunk.New[T]()
		for _, v := range n.sVal {
			c.Push(v)
		}
		return c
	case compRun:
		c := chunk.New[T]()
		for _, r := range n.runs {
			for j := 0; j < r.Run; j++ {
				c.Push(r.Val)
			}
		}
		return c
	}
	return chunk.New[T]()
}

// expandInternal returns a private, dense [chunk.Width]*Node[T] copy of
// n's children, regardless of n's current representation. Children
// pointers themselves are shared, only the slot array is private. A nil
// n expands to an all-nil array.
func (n *Node[T]) expandInternal() [chunk.Width]*Node[T] {
	var arr [chunk.Width]*Node[T]
	if n == nil {
		return arr
	}
	switch n.comp {
	case compNone:
		arr = n.children
	case compSparse:
		for j, idx := range n.sIdx {
			arr[idx] = n.sChild[j]
		}
	}
	return arr
}

// compressLeaf builds the most compact representation for dense leaf
// contents c, per the density and run-length policy in package doc.
func compressLeaf[T any](c *chunk.Chunk[T], owner uint64) *Node[T] {
	if runs, ok := detectRuns(c); ok {
		return &Node[T]{leaf: true, comp: compRun, owner: owner, size: c.Len, runs: runs}
	}
	if c.Len > 0 && float64(c.Len)/float64(chunk.Width) < sparseDensityThreshold {
		idx := make([]uint8, c.Len)
		val := make([]T, c.Len)
		for i := 0; i < c.Len; i++ {
			idx[i] = uint8(i)
			val[i] = c.At(i)
		}
		return &Node[T]{leaf: true, comp: compSparse, owner: owner, size: c.Len, sIdx: idx, sVal: val}
	}
	return &Node[T]{leaf: true, comp: compNone, owner: owner, size: c.Len, dense: c}
}

// compressInternal builds the most compact representation for the dense
// children array arr, per the density policy in package doc.
func compressInternal[T any](arr [chunk.Width]*Node[T], size int, owner uint64) *Node[T] {
	live := 0
	for _, c := range arr {
		if c != nil {
			live++
		}
	}
	if live > 0 && float64(live)/float64(chunk.Width) < sparseDensityThreshold {
		idx := make([]uint8, 0, live)
		kids := make([]*Node[T], 0, live)
		for i, c := range arr {
			if c != nil {
				idx = append(idx, uint8(i))
				kids = append(kids, c)
			}
		}
		return &Node[T]{comp: compSparse, owner: owner, size: size, sIdx: idx, sChild: kids}
	}
	return &Node[T]{comp: compNone, owner: owner, size: size, children: arr}
}

// detectRuns reports the run-length encoding of c's live values, and
// whether it qualifies for run compression: at most runMaxRuns runs, at
// least one of which reaches runMinLength.
func detectRuns[T any](c *chunk.Chunk[T]) ([]runPair[T], bool) {
	if c.Len == 0 {
		return nil, false
	}
	var runs []runPair[T]
	cur := c.At(0)
	n := 1
	longest := 0
	flush := func() {
		runs = append(runs, runPair[T]{Val: cur, Run: n})
		if n > longest {
			longest = n
		}
	}
	for i := 1; i < c.Len; i++ {
		v := c.At(i)
		if reflect.DeepEqual(v, cur) {
			n++
			continue
		}
		flush()
		cur, n = v, 1
	}
	flush()
	if len(runs) <= runMaxRuns && longest >= runMinLength {
		return runs, true
	}
	return nil, false
}

// search performs a linear scan for target in the (small, sorted) sparse
// index list idx, returning its position and whether it was found.
// Sparse nodes hold at most chunk.Width entries, so a linear scan is
// simpler and, at this size, no slower than a binary search.
func search(idx []uint8, target uint8) (int, bool) {
	for i, v := range idx {
		if v == target {
			return i, true
		}
		if v > target {
			break
		}
	}
	return 0, false
}

// CacheKey returns a best-effort structural key for interning n in a
// Cache: the node kind, its size, and its live values or ordered child
// pointers rendered with %v. Distinct contents can render alike (for
// example strings containing spaces), so equal keys do not by
// themselves prove equivalence; Cache.Intern compares the contents
// before reusing a cached node.
func (n *Node[T]) CacheKey() string {
	if n == nil {
		return "."
	}
	if n.leaf {
		return fmt.Sprintf("L%d%v", n.size, n.expandLeaf().Vals[:n.size])
	}
	return fmt.Sprintf("I%d%v", n.size, n.expandInternal())
}

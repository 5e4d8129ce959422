// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunk implements the fixed-capacity contiguous buffer used as
// both leaf payload and append tail throughout the vector package.
package chunk

// Bits, Mask, and Width fix the branch factor B = 32 used by every trie
// and chunk in this module: Width is the chunk capacity and the maximum
// fan-out of a trie node, Bits is log2(Width), and Mask extracts the
// low Bits bits of an index.
const (
	Bits  = 5
	Width = 1 << Bits
	Mask  = Width - 1
)

// A Chunk is a fixed-capacity buffer of up to Width elements, used as a
// trie leaf's payload or as a Vector's append tail. Len is the number of
// live elements; Vals beyond Len are meaningless.
type Chunk[T any] struct {
	Vals [Width]T
	Len  int
}

// New returns an empty chunk.
func New[T any]() *Chunk[T] {
	return &Chunk[T]{}
}

// FromSlice returns a chunk holding a copy of src, which must have length
// at most Width.
func FromSlice[T any](src []T) *Chunk[T] {
	if len(src) > Width {
		panic("chunk: FromSlice: source longer than chunk width")
	}
	c := &Chunk[T]{Len: len(src)}
	copy(c.Vals[:], src)
	return c
}

// Clone returns a copy of c, safe to mutate independently.
func (c *Chunk[T]) Clone() *Chunk[T] {
	c2 := *c
	return &c2
}

// At returns the element at slot i, which must be in [0, c.Len).
func (c *Chunk[T]) At(i int) T {
	return c.Vals[i]
}

// Set writes x into slot i, which must be in [0, c.Len).
func (c *Chunk[T]) Set(i int, x T) {
	c.Vals[i] = x
}

// Full reports whether the chunk has no remaining capacity.
func (c *Chunk[T]) Full() bool {
	return c.Len == Width
}

// Push appends x, which requires !c.Full().
func (c *Chunk[T]) Push(x T) {
	c.Vals[c.Len] = x
	c.Len++
}

// Slice returns a fresh slice holding c[i:j].
func (c *Chunk[T]) Slice(i, j int) []T {
	out := make([]T, j-i)
	copy(out, c.Vals[i:j])
	return out
}

// SpliceInsert returns a copy of c with x inserted at slot i, shifting
// slots [i, Len) up by one. It requires c.Len < Width.
func (c *Chunk[T]) SpliceInsert(i int, x T) *Chunk[T] {
	if c.Len >= Width {
		panic("chunk: SpliceInsert: chunk is full")
	}
	out := &Chunk[T]{Len: c.Len + 1}
	copy(out.Vals[:i], c.Vals[:i])
	out.Vals[i] = x
	copy(out.Vals[i+1:out.Len], c.Vals[i:c.Len])
	return out
}

// SpliceRemove returns a copy of c with slot i removed, shifting slots
// (i, Len) down by one.
func (c *Chunk[T]) SpliceRemove(i int) *Chunk[T] {
	out := &Chunk[T]{Len: c.Len - 1}
	copy(out.Vals[:i], c.Vals[:i])
	copy(out.Vals[i:out.Len], c.Vals[i+1:c.Len])
	return out
}

// Clear zeroes every live and dead slot, so that a recycled chunk never
// leaks a prior element through a lingering reference.
func (c *Chunk[T]) Clear() {
	var zero T
	for i := range c.Vals {
		c.Vals[i] = zero
	}
	c.Len = 0
}

// Package smallvec implements the small-buffer sequence representation
// (spec component C5): a single contiguous buffer used for short
// vectors, with capacity doubling and its own transient builder. It is
// logically equivalent to a trie.Tree that is all tail.
package smallvec

import (
	"persist.dev/vector/internal/verrors"
)

// Small is an immutable sequence backed by one contiguous buffer.
type Small[T any] struct {
	vals []T // never mutated in place once shared; see Transient
}

// Empty returns a Small with no elements.
func Empty[T any]() Small[T] {
	return Small[T]{}
}

// FromSlice returns a Small holding a copy of src.
func FromSlice[T any](src []T) Small[T] {
	cp := make([]T, len(src))
	copy(cp, src)
	return Small[T]{vals: cp}
}

// Len returns the number of elements.
func (s *Small[T]) Len() int {
	return len(s.vals)
}

// At returns the element at index i and whether i was in range.
func (s *Small[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(s.vals) {
		return zero, false
	}
	return s.vals[i], true
}

// Set returns a copy of s with index i replaced by v.
func (s *Small[T]) Set(i int, v T) (Small[T], error) {
	if i < 0 || i >= len(s.vals) {
		return Small[T]{}, verrors.IndexErr(i, len(s.vals))
	}
	out := make([]T, len(s.vals))
	copy(out, s.vals)
	out[i] = v
	return Small[T]{vals: out}, nil
}

// Append returns a copy of s with v appended.
func (s *Small[T]) Append(v T) Small[T] {
	out := make([]T, len(s.vals)+1)
	copy(out, s.vals)
	out[len(s.vals)] = v
	return Small[T]{vals: out}
}

// Prepend returns a copy of s with v inserted at index 0.
func (s *Small[T]) Prepend(v T) Small[T] {
	out := make([]T, len(s.vals)+1)
	out[0] = v
	copy(out[1:], s.vals)
	return Small[T]{vals: out}
}

// Insert returns a copy of s with v inserted at index i.
func (s *Small[T]) Insert(i int, v T) (Small[T], error) {
	if i < 0 || i > len(s.vals) {
		return Small[T]{}, verrors.IndexErr(i, len(s.vals))
	}
	out := make([]T, len(s.vals)+1)
	copy(out, s.vals[:i])
	out[i] = v
	copy(out[i+1:], s.vals[i:])
	return Small[T]{vals: out}, nil
}

// Remove returns a copy of s with the element at index i removed.
func (s *Small[T]) Remove(i int) (Small[T], error) {
	if i < 0 || i >= len(s.vals) {
		return Small[T]{}, verrors.IndexErr(i, len(s.vals))
	}
	out := make([]T, len(s.vals)-1)
	copy(out, s.vals[:i])
	copy(out[i:], s.vals[i+1:])
	return Small[T]{vals: out}, nil
}

// Slice returns the elements in [i, j) as a new Small.
func (s *Small[T]) Slice(i, j int) Small[T] {
	return FromSlice(s.vals[i:j])
}

// Concat returns a new Small holding s's elements followed by other's.
func (s *Small[T]) Concat(other *Small[T]) Small[T] {
	out := make([]T, 0, len(s.vals)+len(other.vals))
	out = append(out, s.vals...)
	out = append(out, other.vals...)
	return Small[T]{vals: out}
}

// ToSlice returns a copy of every element, in index order.
func (s *Small[T]) ToSlice() []T {
	out := make([]T, len(s.vals))
	copy(out, s.vals)
	return out
}

// Transient returns an exclusively owned, mutable view of s.
func (s Small[T]) Transient() *Transient[T] {
	buf := make([]T, len(s.vals), growCap(len(s.vals)))
	copy(buf, s.vals)
	return &Transient[T]{vals: buf}
}

func growCap(n int) int {
	if n == 0 {
		return 8
	}
	c := 8
	for c < n {
		c *= 2
	}
	return c
}

// Transient is the mutable, exclusively owned counterpart to Small. It
// mutates its backing buffer in place, growing it by doubling, and never
// aliases a buffer observed by a previously returned Small.
type Transient[T any] struct {
	vals     []T
	consumed bool
}

// Len returns the number of elements currently in t.
func (t *Transient[T]) Len() int {
	return len(t.vals)
}

// At returns the element at index i and whether i was in range.
func (t *Transient[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(t.vals) {
		return zero, false
	}
	return t.vals[i], true
}

// Set writes v at index i in place.
func (t *Transient[T]) Set(i int, v T) error {
	if t.consumed {
		return verrors.ErrTransientConsumed
	}
	if i < 0 || i >= len(t.vals) {
		return verrors.IndexErr(i, len(t.vals))
	}
	t.vals[i] = v
	return nil
}

// Append adds each of vs, in order, growing the backing buffer by
// doubling when it runs out of capacity.
func (t *Transient[T]) Append(vs ...T) error {
	if t.consumed {
		return verrors.ErrTransientConsumed
	}
	if cap(t.vals)-len(t.vals) < len(vs) {
		needed := growCap(len(t.vals) + len(vs))
		buf := make([]T, len(t.vals), needed)
		copy(buf, t.vals)
		t.vals = buf
	}
	t.vals = append(t.vals, vs...)
	return nil
}

// Persist finalises t into an immutable Small that does not alias t's
// backing buffer. After Persist, Set and Append on t report
// ErrTransientConsumed.
func (t *Transient[T]) Persist() Small[T] {
	t.consumed = true
	out := make([]T, len(t.vals))
	copy(out, t.vals)
	return Small[T]{vals: out}
}

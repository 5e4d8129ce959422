package vector

import (
	"iter"
	"reflect"
	"sort"

	"persist.dev/vector/internal/chunk"
	"persist.dev/vector/internal/smallvec"
	"persist.dev/vector/internal/trie"
	"persist.dev/vector/internal/verrors"
)

// tag names which representation currently backs a Vector.
type tag uint8

const (
	tagSmall tag = iota
	tagChunked
	tagBig
)

func (t tag) String() string {
	switch t {
	case tagSmall:
		return "small"
	case tagChunked:
		return "chunked"
	case tagBig:
		return "big"
	default:
		return "unknown"
	}
}

// target returns the representation tag size elements should use under
// cfg, per spec.md §4.6's threshold table.
func (cfg Config[T]) target(size int) tag {
	if size < cfg.SmallThreshold {
		return tagSmall
	}
	if size < cfg.MediumThreshold {
		return tagChunked
	}
	return tagBig
}

// Vector is an adaptive, persistent, indexed sequence of T. It is a
// tagged union over three representations (small buffer, chunked trie,
// full trie) that grows and shrinks between them automatically; every
// public operation behaves identically regardless of which
// representation currently backs it. The zero Vector is not valid; use
// Empty, From, or Of.
type Vector[T any] struct {
	tag   tag
	small smallvec.Small[T]
	tree  trie.Tree[T]
	cfg   Config[T]
}

// Empty returns a Vector with no elements.
func Empty[T any](opts ...Option[T]) Vector[T] {
	cfg := newConfig(opts)
	return Vector[T]{tag: tagSmall, small: smallvec.Empty[T](), cfg: cfg}
}

// From returns a Vector holding a copy of src, in its original order.
func From[T any](src []T, opts ...Option[T]) Vector[T] {
	cfg := newConfig(opts)
	data := make([]T, len(src))
	copy(data, src)
	return fromSliceTagged(data, cfg, cfg.target(len(data)))
}

// Of returns a Vector of length n whose element at index i is gen(i),
// computed in index order.
func Of[T any](n int, gen func(int) T, opts ...Option[T]) Vector[T] {
	cfg := newConfig(opts)
	data := make([]T, n)
	for i := range data {
		data[i] = gen(i)
	}
	return fromSliceTagged(data, cfg, cfg.target(n))
}

func fromSliceTagged[T any](data []T, cfg Config[T], target tag) Vector[T] {
	if target == tagSmall {
		return Vector[T]{tag: tagSmall, small: smallvec.FromSlice(data), cfg: cfg}
	}
	return Vector[T]{tag: target, tree: trie.FromSlice(data, cfg.pool, cfg.cache), cfg: cfg}
}

func wrapSmall[T any](cfg Config[T], s smallvec.Small[T]) Vector[T] {
	target := cfg.target(s.Len())
	if target == tagSmall {
		return Vector[T]{tag: tagSmall, small: s, cfg: cfg}
	}
	return fromSliceTagged(s.ToSlice(), cfg, target)
}

func wrapTree[T any](cfg Config[T], curTag tag, t trie.Tree[T]) Vector[T] {
	target := cfg.target(t.Size)
	if target == curTag {
		return Vector[T]{tag: curTag, tree: t, cfg: cfg}
	}
	return fromSliceTagged(t.ToSlice(), cfg, target)
}

// Size returns the number of elements in v.
func (v Vector[T]) Size() int {
	if v.tag == tagSmall {
		return v.small.Len()
	}
	return v.tree.Size
}

// IsEmpty reports whether v holds no elements.
func (v Vector[T]) IsEmpty() bool {
	return v.Size() == 0
}

// Representation names the representation currently backing v:
// "small", "chunked", or "big". It has no bearing on the result of any
// other operation (spec.md §8 invariant 9); it exists for diagnostics.
func (v Vector[T]) Representation() string {
	return v.tag.String()
}

// Height returns the trie height (in levels of chunk.Bits) backing v,
// or 0 for the small representation.
func (v Vector[T]) Height() int {
	if v.tag == tagSmall {
		return 0
	}
	return v.tree.Shift / chunk.Bits
}

// Get returns the element at index i and whether i was in range. It
// never fails: an out-of-range i reports false rather than raising.
func (v Vector[T]) Get(i int) (T, bool) {
	if v.tag == tagSmall {
		return v.small.At(i)
	}
	return v.tree.At(i)
}

// First returns the element at index 0, or absent if v is empty.
func (v Vector[T]) First() (T, bool) {
	return v.Get(0)
}

// Last returns the element at index Size()-1, or absent if v is empty.
func (v Vector[T]) Last() (T, bool) {
	return v.Get(v.Size() - 1)
}

// Set returns a copy of v with index i replaced by val; v is unchanged.
func (v Vector[T]) Set(i int, val T) (Vector[T], error) {
	if v.tag == tagSmall {
		s, err := v.small.Set(i, val)
		if err != nil {
			return Vector[T]{}, err
		}
		return Vector[T]{tag: tagSmall, small: s, cfg: v.cfg}, nil
	}
	if i < 0 || i >= v.tree.Size {
		return Vector[T]{}, verrors.IndexErr(i, v.tree.Size)
	}
	return Vector[T]{tag: v.tag, tree: v.tree.Set(i, val), cfg: v.cfg}, nil
}

// Append returns a copy of v with val appended at the end.
func (v Vector[T]) Append(val T) Vector[T] {
	if v.tag == tagSmall {
		return wrapSmall(v.cfg, v.small.Append(val))
	}
	return wrapTree(v.cfg, v.tag, v.tree.Append(val))
}

// Prepend returns a copy of v with val inserted at index 0.
func (v Vector[T]) Prepend(val T) Vector[T] {
	if v.tag == tagSmall {
		return wrapSmall(v.cfg, v.small.Prepend(val))
	}
	return wrapTree(v.cfg, v.tag, v.tree.Prepend(val))
}

// Insert returns a copy of v with val inserted at index i, 0 <= i <=
// Size(), shifting elements at or after i up by one.
func (v Vector[T]) Insert(i int, val T) (Vector[T], error) {
	if v.tag == tagSmall {
		s, err := v.small.Insert(i, val)
		if err != nil {
			return Vector[T]{}, err
		}
		return wrapSmall(v.cfg, s), nil
	}
	if i < 0 || i > v.tree.Size {
		return Vector[T]{}, verrors.IndexErr(i, v.tree.Size)
	}
	return wrapTree(v.cfg, v.tag, v.tree.Insert(i, val)), nil
}

// Remove returns a copy of v with the element at index i removed,
// 0 <= i < Size().
func (v Vector[T]) Remove(i int) (Vector[T], error) {
	if v.tag == tagSmall {
		s, err := v.small.Remove(i)
		if err != nil {
			return Vector[T]{}, err
		}
		return wrapSmall(v.cfg, s), nil
	}
	if i < 0 || i >= v.tree.Size {
		return Vector[T]{}, verrors.IndexErr(i, v.tree.Size)
	}
	return wrapTree(v.cfg, v.tag, v.tree.Remove(i)), nil
}

// Concat returns a new Vector holding v's elements followed by other's.
func (v Vector[T]) Concat(other Vector[T]) Vector[T] {
	data := append(v.ToSlice(), other.ToSlice()...)
	return fromSliceTagged(data, v.cfg, v.cfg.target(len(data)))
}

// Slice returns the elements in [i, j) as a new Vector. Negative i or j
// count from the end; both are clamped to [0, Size()].
func (v Vector[T]) Slice(i, j int) Vector[T] {
	size := v.Size()
	i, j = normalizeRange(i, j, size)
	data := v.ToSlice()[i:j]
	return fromSliceTagged(data, v.cfg, v.cfg.target(len(data)))
}

func normalizeRange(i, j, size int) (int, int) {
	if i < 0 {
		i += size
	}
	if j < 0 {
		j += size
	}
	if i < 0 {
		i = 0
	}
	if i > size {
		i = size
	}
	if j < 0 {
		j = 0
	}
	if j > size {
		j = size
	}
	if j < i {
		j = i
	}
	return i, j
}

// ToSlice materialises every element of v, in index order.
func (v Vector[T]) ToSlice() []T {
	if v.tag == tagSmall {
		return v.small.ToSlice()
	}
	return v.tree.ToSlice()
}

// All returns an iterator over v's (index, element) pairs in strictly
// increasing index order, matching the teacher's iter.Seq2-based
// iteration style.
func (v Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		data := v.ToSlice()
		for i, x := range data {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Equal reports whether v and other hold the same elements in the same
// order, compared with reflect.DeepEqual (T need not be comparable).
func (v Vector[T]) Equal(other Vector[T]) bool {
	if v.Size() != other.Size() {
		return false
	}
	return reflect.DeepEqual(v.ToSlice(), other.ToSlice())
}

// Pair is an (index, value) update used by UpdateMany and InsertMany.
type Pair[T any] struct {
	Index int
	Value T
}

// UpdateMany applies Set(p.Index, p.Value) for every pair, in
// ascending index order, returning the composite result. Every index
// must be in range for the receiver; on the first out-of-range index,
// UpdateMany returns ErrIndexOutOfRange and v is unaffected.
func (v Vector[T]) UpdateMany(pairs []Pair[T]) (Vector[T], error) {
	sorted := append([]Pair[T](nil), pairs...)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Index < sorted[b].Index })
	cur := v
	for _, p := range sorted {
		next, err := cur.Set(p.Index, p.Value)
		if err != nil {
			return Vector[T]{}, err
		}
		cur = next
	}
	return cur, nil
}

// InsertMany applies Insert(p.Index, p.Value) for every pair, in
// ascending index order (so later indices are interpreted against the
// vector as it grows), returning the composite result.
func (v Vector[T]) InsertMany(pairs []Pair[T]) (Vector[T], error) {
	sorted := append([]Pair[T](nil), pairs...)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Index < sorted[b].Index })
	cur := v
	for _, p := range sorted {
		next, err := cur.Insert(p.Index, p.Value)
		if err != nil {
			return Vector[T]{}, err
		}
		cur = next
	}
	return cur, nil
}

// RemoveMany removes every index in indices, returning the composite
// result. Indices are processed from highest to lowest so that removing
// one never invalidates another not yet processed.
func (v Vector[T]) RemoveMany(indices []int) (Vector[T], error) {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	cur := v
	for _, idx := range sorted {
		next, err := cur.Remove(idx)
		if err != nil {
			return Vector[T]{}, err
		}
		cur = next
	}
	return cur, nil
}

// Map returns a new Vector of the same size holding f applied to each
// element of v, in index order.
func Map[T, U any](v Vector[T], f func(T) U) Vector[U] {
	src := v.ToSlice()
	out := make([]U, len(src))
	for i, x := range src {
		out[i] = f(x)
	}
	return fromSliceTagged(out, DefaultConfig[U](), DefaultConfig[U]().target(len(out)))
}

// Filter returns a new Vector holding the elements of v for which p
// reports true, in index order.
func Filter[T any](v Vector[T], p func(T) bool) Vector[T] {
	src := v.ToSlice()
	out := make([]T, 0, len(src))
	for _, x := range src {
		if p(x) {
			out = append(out, x)
		}
	}
	return fromSliceTagged(out, v.cfg, v.cfg.target(len(out)))
}

// Reduce folds f over v's elements in index order, starting from init.
func Reduce[T, A any](v Vector[T], f func(A, T) A, init A) A {
	acc := init
	for _, x := range v.ToSlice() {
		acc = f(acc, x)
	}
	return acc
}

// Find returns the first element for which p reports true, in index
// order, and whether one was found.
func Find[T any](v Vector[T], p func(T) bool) (T, bool) {
	var zero T
	for _, x := range v.ToSlice() {
		if p(x) {
			return x, true
		}
	}
	return zero, false
}

// FindIndex returns the index of the first element for which p reports
// true, in index order, or -1 if none does.
func FindIndex[T any](v Vector[T], p func(T) bool) int {
	for i, x := range v.ToSlice() {
		if p(x) {
			return i
		}
	}
	return -1
}

// Transient returns an exclusively owned, mutable view of v's graph.
func (v Vector[T]) Transient() *Transient[T] {
	if v.tag == tagSmall {
		return &Transient[T]{tag: tagSmall, small: v.small.Transient(), cfg: v.cfg}
	}
	return &Transient[T]{tag: v.tag, tree: v.tree.Transient(), cfg: v.cfg}
}

// Transient is the mutable, exclusively owned counterpart to Vector.
// State machine: fresh → mutated* → finalised; after Persist, Set and
// Append return ErrTransientConsumed. Len, At and Persist do not check
// for consumption: they keep reporting the finalised contents.
type Transient[T any] struct {
	tag   tag
	small *smallvec.Transient[T]
	tree  *trie.Transient[T]
	cfg   Config[T]
}

// Len returns the number of elements currently in t.
func (t *Transient[T]) Len() int {
	if t.tag == tagSmall {
		return t.small.Len()
	}
	return t.tree.Len()
}

// At returns the element at index i and whether i was in range.
func (t *Transient[T]) At(i int) (T, bool) {
	if t.tag == tagSmall {
		return t.small.At(i)
	}
	return t.tree.At(i)
}

// Set writes val at index i in place.
func (t *Transient[T]) Set(i int, val T) error {
	if t.tag == tagSmall {
		return t.small.Set(i, val)
	}
	return t.tree.Set(i, val)
}

// Append adds each of vs, in order.
func (t *Transient[T]) Append(vs ...T) error {
	if t.tag == tagSmall {
		return t.small.Append(vs...)
	}
	return t.tree.Append(vs...)
}

// Persist finalises t into an immutable Vector, applying the same
// representation transition policy as any other size-changing
// operation. Further calls on t report ErrTransientConsumed.
func (t *Transient[T]) Persist() Vector[T] {
	if t.tag == tagSmall {
		return wrapSmall(t.cfg, t.small.Persist())
	}
	return wrapTree(t.cfg, t.tag, t.tree.Persist())
}

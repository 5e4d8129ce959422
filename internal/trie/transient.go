package trie

import (
	"sync/atomic"

	"persist.dev/vector/internal/chunk"
	"persist.dev/vector/internal/node"
	"persist.dev/vector/internal/verrors"
)

// ownerSeq hands out the monotonically increasing owner ids that mark
// which nodes a live Transient may mutate in place, mirroring
// robpike.io/ivy's value/persist.transientID.
var ownerSeq atomic.Uint64

func nextOwnerID() uint64 {
	return ownerSeq.Add(1)
}

// Transient is the mutable, exclusively owned counterpart to Tree. Every
// node it touches is stamped with its own id; nodes already carrying
// that id are mutated in place, everything else is copied on first
// touch. Persist retires the id, so no further mutation through this
// Transient (or any Node it produced) is possible.
type Transient[T any] struct {
	tr        Tree[T]
	id        uint64
	tailOwned bool
	consumed  bool
}

// Len returns the number of elements currently in t.
func (t *Transient[T]) Len() int {
	return t.tr.Size
}

// At returns the element at index i and whether i was in range.
func (t *Transient[T]) At(i int) (T, bool) {
	return t.tr.At(i)
}

func (t *Transient[T]) writeTail() {
	if t.tailOwned {
		return
	}
	t.tr.Tail = t.tr.Tail.Clone()
	t.tailOwned = true
}

// Set writes v at index i in place where ownership allows it, copying
// on first touch otherwise. It reports ErrTransientConsumed if called
// after Persist, or an index-range error.
func (t *Transient[T]) Set(i int, v T) error {
	if t.consumed {
		return verrors.ErrTransientConsumed
	}
	if i < 0 || i >= t.tr.Size {
		return verrors.IndexErr(i, t.tr.Size)
	}
	off := t.tr.TailOffset()
	if i >= off {
		t.writeTail()
		t.tr.Tail.Set(i-off, v)
		return nil
	}
	t.tr.Root = t.setOwned(t.tr.Root, t.tr.Shift, i, v)
	return nil
}

func (t *Transient[T]) setOwned(n *node.Node[T], level, i int, v T) *node.Node[T] {
	if level == 0 {
		leaf := n.EnsureOwnedLeaf(t.id)
		leaf.SetAtOwned(i&chunk.Mask, v)
		return leaf
	}
	owned := n.EnsureOwnedInternal(t.id)
	subidx := (i >> level) & chunk.Mask
	child, _ := owned.Child(subidx)
	owned.SetChildOwned(subidx, t.setOwned(child, level-chunk.Bits, i, v))
	return owned
}

// Append adds each of vs, in order, reporting ErrTransientConsumed if
// called after Persist.
func (t *Transient[T]) Append(vs ...T) error {
	if t.consumed {
		return verrors.ErrTransientConsumed
	}
	for _, v := range vs {
		t.cons(v)
	}
	return nil
}

func (t *Transient[T]) cons(v T) {
	if !t.tr.Tail.Full() {
		t.writeTail()
		t.tr.Tail.Push(v)
		t.tr.Size++
		return
	}

	leaf := node.NewOwnedLeafFromChunk(t.id, t.tr.Tail)
	oldOffset := t.tr.TailOffset()
	newShift := t.tr.Shift
	var newRoot *node.Node[T]
	switch {
	case t.tr.Root == nil:
		newRoot = leaf
	case oldOffset+chunk.Width > t.tr.capacity():
		wrapped := node.NewInternal[T](t.id)
		wrapped.SetChildOwned(0, t.tr.Root)
		wrapped.SetChildOwned(1, t.newPathOwned(t.tr.Shift, leaf))
		newShift = t.tr.Shift + chunk.Bits
		newRoot = wrapped
	default:
		newRoot = t.pushTailOwned(t.tr.Shift, t.tr.Root, leaf, t.tr.Size)
	}

	t.tr.Root = newRoot
	t.tr.Shift = newShift
	t.tr.Tail = t.tr.Pool.Get()
	t.tailOwned = true
	t.tr.Tail.Push(v)
	t.tr.Size++
}

func (t *Transient[T]) pushTailOwned(level int, parent, leaf *node.Node[T], oldSize int) *node.Node[T] {
	owned := parent.EnsureOwnedInternal(t.id)
	subidx := ((oldSize - 1) >> level) & chunk.Mask
	if level == chunk.Bits {
		owned.SetChildOwned(subidx, leaf)
		return owned
	}
	var nodeToInsert *node.Node[T]
	if child, ok := owned.Child(subidx); ok {
		nodeToInsert = t.pushTailOwned(level-chunk.Bits, child, leaf, oldSize)
	} else {
		nodeToInsert = t.newPathOwned(level-chunk.Bits, leaf)
	}
	owned.SetChildOwned(subidx, nodeToInsert)
	return owned
}

// newPathOwned is newPath for a transient: the internal nodes it creates
// carry t's id, so Persist freezes them along with the leaf beneath.
func (t *Transient[T]) newPathOwned(level int, n *node.Node[T]) *node.Node[T] {
	if level <= 0 {
		return n
	}
	in := node.NewInternal[T](t.id)
	in.SetChildOwned(0, t.newPathOwned(level-chunk.Bits, n))
	return in
}

// Persist finalises t into an immutable Tree. Every node t owned is
// frozen (shared, compressed); further calls on t report
// ErrTransientConsumed.
func (t *Transient[T]) Persist() Tree[T] {
	out := t.tr
	out.Root = out.Root.Freeze(t.id, t.tr.Cache)
	if t.tailOwned {
		out.Tail = out.Tail.Clone()
	}
	t.consumed = true
	return out
}

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persist.dev/vector/internal/chunk"
)

func TestLeafDenseRoundTrip(t *testing.T) {
	c := chunk.FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24})
	n := NewLeafFromChunk(c)
	require.True(t, n.Leaf())
	assert.Equal(t, 24, n.Size())
	for i := 0; i < 24; i++ {
		v, ok := n.At(i)
		assert.True(t, ok)
		assert.Equal(t, i+1, v)
	}
	_, ok := n.At(24)
	assert.False(t, ok)
}

func TestLeafSparseCompression(t *testing.T) {
	// 3 of 32 slots live: density 3/32 < 0.30, no long run -> sparse.
	c := chunk.FromSlice([]int{10, 20, 30})
	n := NewLeafFromChunk(c)
	assert.Equal(t, 3, n.Size())
	v, ok := n.At(1)
	assert.True(t, ok)
	assert.Equal(t, 20, v)
}

func TestLeafRunCompression(t *testing.T) {
	vals := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		vals = append(vals, "x")
	}
	c := chunk.FromSlice(vals)
	n := NewLeafFromChunk(c)
	assert.Equal(t, 20, n.Size())
	for i := 0; i < 20; i++ {
		v, ok := n.At(i)
		assert.True(t, ok)
		assert.Equal(t, "x", v)
	}
}

func TestWithAtPreservesOtherSlots(t *testing.T) {
	c := chunk.FromSlice([]int{1, 2, 3})
	n := NewLeafFromChunk(c)
	n2 := n.WithAt(1, 99)
	v0, _ := n.At(0)
	v1, _ := n2.At(1)
	v2, _ := n2.At(0)
	assert.Equal(t, 1, v0) // original unaffected
	assert.Equal(t, 99, v1)
	assert.Equal(t, 1, v2)
}

func TestWithAtGrows(t *testing.T) {
	c := chunk.FromSlice([]int{1, 2, 3})
	n := NewLeafFromChunk(c)
	n2 := n.WithAt(3, 4)
	assert.Equal(t, 3, n.Size())
	assert.Equal(t, 4, n2.Size())
	v, ok := n2.At(3)
	assert.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestInternalSparseChildLookup(t *testing.T) {
	var in *Node[int]
	leaf := NewLeafFromChunk(chunk.FromSlice([]int{1}))
	in = in.WithChild(5, leaf)
	assert.Equal(t, 1, in.Size())
	got, ok := in.Child(5)
	assert.True(t, ok)
	assert.Same(t, leaf, got)
	_, ok = in.Child(4)
	assert.False(t, ok)
}

func TestEnsureOwnedMutatesInPlaceOnlyForSameOwner(t *testing.T) {
	leaf := NewLeafFromChunk(chunk.FromSlice([]int{1, 2, 3}))
	owned := leaf.EnsureOwnedLeaf(7)
	require.NotSame(t, leaf, owned)
	owned.SetAtOwned(0, 42)
	v, _ := leaf.At(0)
	assert.Equal(t, 1, v, "shared leaf must not observe owned mutation")

	again := owned.EnsureOwnedLeaf(7)
	assert.Same(t, owned, again, "same owner reuses the node in place")

	other := owned.EnsureOwnedLeaf(8)
	assert.NotSame(t, owned, other, "different owner must copy-on-write")
}

func TestFreezeCompressesAndDetachesOwner(t *testing.T) {
	leaf := NewLeaf[int](1)
	leaf.SetAtOwned(0, 1)
	leaf.SetAtOwned(1, 2)
	frozen := leaf.Freeze(1, nil)
	assert.Equal(t, uint64(0), frozen.Owner())
	assert.Equal(t, 2, frozen.Size())
}

func TestNodeCacheInternsStructurallyEqual(t *testing.T) {
	cache := NewCache[int](10)
	a := NewLeafFromChunk(chunk.FromSlice([]int{1, 2, 3}))
	b := NewLeafFromChunk(chunk.FromSlice([]int{1, 2, 3}))
	require.NotSame(t, a, b)

	ia := cache.Intern(a)
	ib := cache.Intern(b)
	assert.Same(t, ia, ib)
	assert.Equal(t, 1, cache.Len())
}

func TestNodeCacheRefusesOwnedNodes(t *testing.T) {
	cache := NewCache[int](10)
	owned := NewLeaf[int](3)
	got := cache.Intern(owned)
	assert.Same(t, owned, got)
	assert.Equal(t, 0, cache.Len())
}

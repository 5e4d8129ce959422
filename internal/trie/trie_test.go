// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestSmallSizesRoundTrip(t *testing.T) {
	for n := 0; n < 100; n++ {
		tr := FromSlice(seq(n), nil, nil)
		require.Equal(t, n, tr.Size, "n=%d", n)
		assert.Equal(t, seq(n), tr.ToSlice(), "n=%d", n)
	}
}

func TestLargeBuildAndAccess(t *testing.T) {
	const n = 50001
	tr := FromSlice(seq(n), nil, nil)
	require.Equal(t, n, tr.Size)
	v0, ok := tr.At(0)
	require.True(t, ok)
	assert.Equal(t, 0, v0)
	vn, ok := tr.At(n - 1)
	require.True(t, ok)
	assert.Equal(t, n-1, vn)
}

func TestAppendExhaustiveAcrossFragmentAlignments(t *testing.T) {
	// Covers every alignment of tail fragments across the chunk.Width=32
	// boundary, as well as growth of a new trie level, the way
	// robpike.io/ivy's TestAppendExhaustive covers its chunk=16 case.
	for i := 0; i < 34; i++ {
		for j := 0; j < 66; j += 7 {
			for k := 0; k < 34; k += 5 {
				tr := Empty[int](nil, nil)
				want := make([]int, 0, i+j+k)
				for n := 0; n < i; n++ {
					tr = tr.Append(n)
					want = append(want, n)
				}
				for n := 0; n < j; n++ {
					tr = tr.Append(100 + n)
					want = append(want, 100+n)
				}
				for n := 0; n < k; n++ {
					tr = tr.Append(200 + n)
					want = append(want, 200+n)
				}
				assert.Equal(t, want, tr.ToSlice(), "i=%d j=%d k=%d", i, j, k)
			}
		}
	}
}

func TestSetLawAndSharing(t *testing.T) {
	tr := FromSlice(seq(1024), nil, nil)
	tr2 := tr.Set(500, -1)

	v500, _ := tr2.At(500)
	assert.Equal(t, -1, v500)
	v499, _ := tr2.At(499)
	assert.Equal(t, 499, v499)

	orig500, _ := tr.At(500)
	assert.Equal(t, 500, orig500, "original tree must not observe the mutation")
}

func TestInsertRemoveInverse(t *testing.T) {
	tr := FromSlice([]int{1, 2, 3, 4, 5}, nil, nil)
	ins := tr.Insert(2, 99)
	rem := ins.Remove(2)
	assert.Equal(t, tr.ToSlice(), rem.ToSlice())
}

func TestSliceAndConcat(t *testing.T) {
	tr := FromSlice(seq(40), nil, nil)
	s := tr.Slice(10, 35)
	assert.Equal(t, seq(40)[10:35], s.ToSlice())

	a := FromSlice(seq(5), nil, nil)
	b := FromSlice([]int{100, 101}, nil, nil)
	c := a.Concat(&b)
	assert.Equal(t, append(seq(5), 100, 101), c.ToSlice())
}

func TestTransientBuildMatchesPersistentAppend(t *testing.T) {
	tr := Empty[int](nil, nil).Transient()
	require.NoError(t, tr.Append(seq(200)...))
	built := tr.Persist()

	var persistent Tree[int]
	persistent = Empty[int](nil, nil)
	for _, v := range seq(200) {
		persistent = persistent.Append(v)
	}

	assert.Equal(t, persistent.ToSlice(), built.ToSlice())
}

func TestTransientSetInPlaceThenPersist(t *testing.T) {
	tr := Empty[int](nil, nil).Transient()
	require.NoError(t, tr.Append(seq(100)...))
	require.NoError(t, tr.Set(50, -1))
	built := tr.Persist()
	v, _ := built.At(50)
	assert.Equal(t, -1, v)
}

func TestTransientConsumedAfterPersist(t *testing.T) {
	tr := Empty[int](nil, nil).Transient()
	require.NoError(t, tr.Append(1, 2, 3))
	tr.Persist()
	err := tr.Append(4)
	assert.Error(t, err)
}

func TestPoolAndCacheAreOptional(t *testing.T) {
	tr := FromSlice(seq(500), nil, nil)
	assert.Equal(t, seq(500), tr.ToSlice())
}

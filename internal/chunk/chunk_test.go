package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAndAt(t *testing.T) {
	c := New[int]()
	for i := 0; i < Width; i++ {
		require.False(t, c.Full())
		c.Push(i * 10)
	}
	assert.True(t, c.Full())
	for i := 0; i < Width; i++ {
		assert.Equal(t, i*10, c.At(i))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := FromSlice([]int{1, 2, 3})
	c2 := c.Clone()
	c2.Set(0, 99)
	assert.Equal(t, 1, c.At(0))
	assert.Equal(t, 99, c2.At(0))
}

func TestSpliceInsertRemove(t *testing.T) {
	c := FromSlice([]int{1, 2, 4, 5})
	ins := c.SpliceInsert(2, 3)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ins.Slice(0, ins.Len))

	rem := ins.SpliceRemove(2)
	assert.Equal(t, []int{1, 2, 4, 5}, rem.Slice(0, rem.Len))
}

func TestClearZeroesAndResets(t *testing.T) {
	c := FromSlice([]string{"a", "b"})
	c.Clear()
	assert.Equal(t, 0, c.Len)
	for _, v := range c.Vals {
		assert.Equal(t, "", v)
	}
}

func TestPoolRecyclesUpToCeiling(t *testing.T) {
	p := NewPool[int](2)
	a := FromSlice([]int{1, 2, 3})
	b := FromSlice([]int{4, 5})
	cc := FromSlice([]int{6})

	p.Put(a)
	p.Put(b)
	p.Put(cc) // over ceiling, dropped
	assert.Equal(t, 2, p.Len())

	got := p.Get()
	assert.Equal(t, 0, got.Len, "recycled chunk must be cleared")
	assert.Equal(t, 1, p.Len())
}

func TestNilPoolAlwaysAllocates(t *testing.T) {
	var p *Pool[int]
	c := p.Get()
	require.NotNil(t, c)
	p.Put(c) // must not panic
	assert.Equal(t, 0, p.Len())
}

package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFilterFused(t *testing.T) {
	v := From([]int{1, 2, 3, 4, 5, 6})
	got := MapFilter(v, func(x int) int { return x * x }, func(y int) bool { return y%2 == 0 })
	want := Filter(Map(v, func(x int) int { return x * x }), func(y int) bool { return y%2 == 0 })
	assert.Equal(t, want.ToSlice(), got.ToSlice())
}

func TestFilterMapFused(t *testing.T) {
	v := From([]int{1, 2, 3, 4, 5, 6})
	got := FilterMap(v, func(x int) bool { return x%2 == 0 }, func(x int) int { return x * 10 })
	want := Map(Filter(v, func(x int) bool { return x%2 == 0 }), func(x int) int { return x * 10 })
	assert.Equal(t, want.ToSlice(), got.ToSlice())
}

func TestMapReduceFused(t *testing.T) {
	v := From([]int{1, 2, 3, 4})
	got := MapReduce(v, func(x int) int { return x * 2 }, func(a, y int) int { return a + y }, 0)
	want := Reduce(Map(v, func(x int) int { return x * 2 }), func(a, y int) int { return a + y }, 0)
	assert.Equal(t, want, got)
}

func TestFilterReduceFused(t *testing.T) {
	v := From([]int{1, 2, 3, 4, 5})
	got := FilterReduce(v, func(x int) bool { return x > 2 }, func(a, x int) int { return a + x }, 0)
	want := Reduce(Filter(v, func(x int) bool { return x > 2 }), func(a, x int) int { return a + x }, 0)
	assert.Equal(t, want, got)
}

func TestMapSliceSliceMapFused(t *testing.T) {
	v := From([]int{1, 2, 3, 4, 5, 6, 7, 8})
	got := MapSlice(v, func(x int) int { return x * 10 }, 2, 5)
	want := Map(v, func(x int) int { return x * 10 }).Slice(2, 5)
	assert.Equal(t, want.ToSlice(), got.ToSlice())

	got2 := SliceMap(v, 2, 5, func(x int) int { return x * 10 })
	assert.Equal(t, got.ToSlice(), got2.ToSlice())
}

func TestFilterSliceSliceFilterFused(t *testing.T) {
	v := From([]int{1, 2, 3, 4, 5, 6, 7, 8})
	even := func(x int) bool { return x%2 == 0 }

	got := FilterSlice(v, even, 1, 3)
	want := Filter(v, even).Slice(1, 3)
	assert.Equal(t, want.ToSlice(), got.ToSlice())

	got2 := SliceFilter(v, 0, 4, even)
	want2 := Filter(v.Slice(0, 4), even)
	assert.Equal(t, want2.ToSlice(), got2.ToSlice())
}

func TestConcatMapMapConcatFused(t *testing.T) {
	a := From([]int{1, 2, 3})
	b := From([]int{4, 5})
	f := func(x int) int { return x * 100 }

	got := ConcatMap(a, b, f)
	want := Map(a.Concat(b), f)
	assert.Equal(t, want.ToSlice(), got.ToSlice())

	got2 := MapConcat(a, b, f)
	want2 := Map(a, f).Concat(Map(b, f))
	assert.Equal(t, want2.ToSlice(), got2.ToSlice())
}

func TestBatchHelpersDelegateToMethods(t *testing.T) {
	v := From([]int{0, 1, 2, 3, 4})

	u1, err1 := BatchUpdate(v, []Pair[int]{{Index: 0, Value: -1}})
	u2, err2 := v.UpdateMany([]Pair[int]{{Index: 0, Value: -1}})
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, u2.ToSlice(), u1.ToSlice())

	i1, err1 := BatchInsert(v, []Pair[int]{{Index: 0, Value: -1}})
	i2, err2 := v.InsertMany([]Pair[int]{{Index: 0, Value: -1}})
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, i2.ToSlice(), i1.ToSlice())

	r1, err1 := BatchRemove(v, []int{0, 1})
	r2, err2 := v.RemoveMany([]int{0, 1})
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, r2.ToSlice(), r1.ToSlice())
}

package smallvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persist.dev/vector/internal/verrors"
)

func TestAppendAndAt(t *testing.T) {
	s := Empty[int]()
	for i := 0; i < 10; i++ {
		s = s.Append(i)
	}
	assert.Equal(t, 10, s.Len())
	for i := 0; i < 10; i++ {
		v, ok := s.At(i)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestSetDoesNotMutateOriginal(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	s2, err := s.Set(1, 99)
	require.NoError(t, err)
	v, _ := s.At(1)
	assert.Equal(t, 2, v)
	v2, _ := s2.At(1)
	assert.Equal(t, 99, v2)
}

func TestSetOutOfRange(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	_, err := s.Set(5, 99)
	require.ErrorIs(t, err, verrors.ErrIndexOutOfRange)
}

func TestInsertRemoveInverse(t *testing.T) {
	s := FromSlice([]int{1, 2, 3, 4, 5})
	ins, err := s.Insert(2, 99)
	require.NoError(t, err)
	rem, err := ins.Remove(2)
	require.NoError(t, err)
	assert.Equal(t, s.ToSlice(), rem.ToSlice())
}

func TestTransientBuildThenPersist(t *testing.T) {
	tr := Empty[int]().Transient()
	for i := 0; i < 100; i++ {
		require.NoError(t, tr.Append(i))
	}
	s := tr.Persist()
	assert.Equal(t, 100, s.Len())
	for i := 0; i < 100; i++ {
		v, _ := s.At(i)
		assert.Equal(t, i, v)
	}

	err := tr.Append(1)
	assert.ErrorIs(t, err, verrors.ErrTransientConsumed)
}

func TestTransientPersistDoesNotAliasBuffer(t *testing.T) {
	tr := Empty[int]().Transient()
	require.NoError(t, tr.Append(1, 2, 3))
	s := tr.Persist()
	err := tr.Append(4, 5, 6)
	assert.ErrorIs(t, err, verrors.ErrTransientConsumed)
	assert.Equal(t, []int{1, 2, 3}, s.ToSlice())
}

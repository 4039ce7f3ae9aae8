package adjacency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Basic(t *testing.T) {
	s := New()
	assert.True(t, s.IsEmpty())

	require.NoError(t, s.Add(3))
	require.NoError(t, s.Add(1))
	require.NoError(t, s.Add(3))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(2))
	assert.False(t, s.Contains(-1))
	assert.Equal(t, []int{1, 3}, s.Slice())

	hi, ok := s.Max()
	assert.True(t, ok)
	assert.Equal(t, 3, hi)

	s.Remove(3)
	assert.False(t, s.Contains(3))
	s.Remove(-5)
	assert.Equal(t, 1, s.Len())

	s.Remove(1)
	assert.True(t, s.IsEmpty())
}

func TestSet_RejectsNegative(t *testing.T) {
	s := New()
	assert.Error(t, s.Add(-1))

	_, err := Of(1, -2)
	assert.Error(t, err)
}

func TestSet_NilIsEmpty(t *testing.T) {
	var s *Set
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(0))
	assert.Nil(t, s.Clone())
	assert.Nil(t, s.Slice())
	_, ok := s.Max()
	assert.False(t, ok)
	s.ForEach(func(int) bool {
		t.Fatal("unexpected element")
		return true
	})
}

func TestSet_CloneIsIndependent(t *testing.T) {
	s, err := Of(1, 2, 3)
	require.NoError(t, err)

	c := s.Clone()
	require.True(t, c.Equal(s))

	require.NoError(t, c.Add(9))
	c.Remove(1)

	assert.Equal(t, []int{1, 2, 3}, s.Slice())
	assert.Equal(t, []int{2, 3, 9}, c.Slice())
	assert.False(t, c.Equal(s))
}

func TestSet_Equal(t *testing.T) {
	var nilSet *Set
	empty := New()
	assert.True(t, nilSet.Equal(empty))
	assert.True(t, empty.Equal(nilSet))

	a, _ := Of(4, 5)
	b, _ := Of(5, 4)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(empty))
}

func TestSet_All(t *testing.T) {
	s, _ := Of(7, 2, 5)
	var got []int
	for id := range s.All() {
		got = append(got, id)
		if id == 5 {
			break
		}
	}
	assert.Equal(t, []int{2, 5}, got)
}

package ordbag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBagAddKeepsDuplicates(t *testing.T) {
	b := New[int]().Add(1).Add(1).Add(2)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 2, b.Count(1))
	assert.Equal(t, 1, b.Count(2))
	assert.Equal(t, 0, b.Count(3))
}

func TestBagFromSlicePreservesAllCopies(t *testing.T) {
	b := FromSlice([]int{3, 1, 3, 2, 3})
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, 3, b.Count(3))
	assert.Equal(t, []int{1, 2, 3, 3, 3}, b.ToSlice())
}

func TestBagRemoveOneOccurrence(t *testing.T) {
	b := FromSlice([]int{1, 1, 1})
	b2, ok := b.Remove(1)
	assert.True(t, ok)
	assert.Equal(t, 2, b2.Len())
	assert.Equal(t, 2, b2.Count(1))
}

func TestBagRemoveAll(t *testing.T) {
	b := FromSlice([]int{1, 1, 2, 1, 3})
	b2, n := b.RemoveAll(1)
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, b2.Len())
	assert.Equal(t, 0, b2.Count(1))

	_, n2 := b2.RemoveAll(99)
	assert.Equal(t, 0, n2)
}

func TestBagUnionIntersectionDifferenceCounting(t *testing.T) {
	a := FromSlice([]int{1, 2, 2, 2, 3})
	b := FromSlice([]int{2, 2, 3, 3})

	u := a.Union(b)
	assert.Equal(t, 5, u.Count(2), "union sums multiplicities")
	assert.Equal(t, 3, u.Count(3))
	assert.Equal(t, 1, u.Count(1))

	inter := a.Intersection(b)
	assert.Equal(t, 2, inter.Count(2), "intersection keeps min multiplicity")
	assert.Equal(t, 1, inter.Count(3))
	assert.Equal(t, 0, inter.Count(1))

	diff := a.Difference(b)
	assert.Equal(t, 1, diff.Count(2))
	assert.Equal(t, 0, diff.Count(3))
	assert.Equal(t, 1, diff.Count(1))
}

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSetGetDelete(t *testing.T) {
	m := New[string, int]()
	assert.True(t, m.IsEmpty())

	m2 := m.Set("a", 1)
	m3 := m2.Set("b", 2)
	v, ok := m3.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, m3.Len())

	// persistence: m and m2 are untouched by later Sets.
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 1, m2.Len())

	m4, old, found := m3.Delete("a")
	assert.True(t, found)
	assert.Equal(t, 1, old)
	assert.Equal(t, 1, m4.Len())
	assert.False(t, m4.Contains("a"))
}

func TestMapSetOverwritesExistingKey(t *testing.T) {
	m := New[string, int]().Set("a", 1).Set("a", 2)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.Len())
}

func TestMapGetOrSet(t *testing.T) {
	m := New[string, int]().Set("a", 1)
	m2, v, found := m.GetOrSet("a", 99)
	assert.True(t, found)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, m2.Len())

	m3, v2, found2 := m.GetOrSet("b", 7)
	assert.False(t, found2)
	assert.Equal(t, 7, v2)
	assert.Equal(t, 2, m3.Len())
}

func TestMapFromEntriesLastWins(t *testing.T) {
	m := FromEntries([]string{"x", "y", "x"}, []int{1, 2, 3})
	assert.Equal(t, 2, m.Len())
	v, _ := m.Get("x")
	assert.Equal(t, 3, v)
}

func TestMapFirstLastAt(t *testing.T) {
	m := FromEntries([]string{"b", "a", "c"}, []int{2, 1, 3})
	k, v, ok := m.First()
	assert.True(t, ok)
	assert.Equal(t, "a", k)
	assert.Equal(t, 1, v)

	k2, v2, ok2 := m.Last()
	assert.True(t, ok2)
	assert.Equal(t, "c", k2)
	assert.Equal(t, 3, v2)

	k3, v3 := m.At(1)
	assert.Equal(t, "b", k3)
	assert.Equal(t, 2, v3)
}

func TestMapUnionIntersectionDifference(t *testing.T) {
	a := FromEntries([]string{"a", "b", "c"}, []int{1, 2, 3})
	b := FromEntries([]string{"b", "c", "d"}, []int{20, 30, 4})

	u := a.Union(b)
	assert.Equal(t, 4, u.Len())
	v, _ := u.Get("b")
	assert.Equal(t, 20, v, "union should keep other's value on key collision")

	inter := a.Intersection(b)
	assert.Equal(t, 2, inter.Len())
	assert.True(t, inter.Contains("b"))
	assert.True(t, inter.Contains("c"))

	diff := a.Difference(b)
	assert.Equal(t, 1, diff.Len())
	assert.True(t, diff.Contains("a"))
}

func TestMapForEachAndKeys(t *testing.T) {
	m := FromEntries([]string{"c", "a", "b"}, []int{3, 1, 2})
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	var seen []string
	m.ForEach(func(k string, v int) bool {
		seen = append(seen, k)
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

/*
Package ordset is a thin façade over btree.Tree presenting a sorted set:
a Tree[K, struct{}] where the value carries no information and every
set-algebra operation delegates straight to the core (spec §1).
*/
package ordset

import (
	obtree "github.com/npillmayer/obtree"
)

// Set is an immutable, persistent sorted set of unique keys.
type Set[K obtree.Ordered] struct {
	t obtree.Tree[K, struct{}]
}

// New returns an empty set.
func New[K obtree.Ordered](opts ...obtree.Option[K, struct{}]) Set[K] {
	return Set[K]{t: obtree.Empty[K, struct{}](opts...)}
}

// FromSlice builds a set from possibly-unsorted, possibly-duplicate keys.
func FromSlice[K obtree.Ordered](keys []K, opts ...obtree.Option[K, struct{}]) Set[K] {
	s := New[K](opts...)
	for _, k := range keys {
		s = s.Add(k)
	}
	return s
}

// Len returns the number of elements.
func (s Set[K]) Len() int { return s.t.Len() }

// IsEmpty reports whether the set is empty.
func (s Set[K]) IsEmpty() bool { return s.t.IsEmpty() }

// Contains reports whether key is a member.
func (s Set[K]) Contains(key K) bool { return s.t.Contains(key) }

// Add returns a new set with key included.
func (s Set[K]) Add(key K) Set[K] {
	return Set[K]{t: s.t.InsertOrReplace(key, struct{}{})}
}

// Remove returns a new set with key excluded.
func (s Set[K]) Remove(key K) (Set[K], bool) {
	nt, _, ok := s.t.Remove(key, obtree.First)
	return Set[K]{t: nt}, ok
}

// At returns the key at the given offset in ascending order.
func (s Set[K]) At(offset int) K {
	return s.t.At(offset).Key
}

// Union returns the keys in either s or other.
func (s Set[K]) Union(other Set[K]) Set[K] {
	return Set[K]{t: s.t.Union(other.t, obtree.Grouping)}
}

// Intersection returns the keys in both s and other.
func (s Set[K]) Intersection(other Set[K]) Set[K] {
	return Set[K]{t: s.t.Intersection(other.t, obtree.Grouping)}
}

// Difference returns the keys in s but not other.
func (s Set[K]) Difference(other Set[K]) Set[K] {
	return Set[K]{t: s.t.Difference(other.t, obtree.Grouping)}
}

// SymmetricDifference returns the keys present in exactly one of s and
// other.
func (s Set[K]) SymmetricDifference(other Set[K]) Set[K] {
	return Set[K]{t: s.t.SymmetricDifference(other.t, obtree.Grouping)}
}

// IsDisjoint reports whether s and other share no key.
func (s Set[K]) IsDisjoint(other Set[K]) bool { return s.t.IsDisjoint(other.t) }

// IsSubset reports whether every key of s is also in other.
func (s Set[K]) IsSubset(other Set[K]) bool { return s.t.IsSubset(other.t, obtree.Grouping) }

// IsSuperset reports whether every key of other is also in s.
func (s Set[K]) IsSuperset(other Set[K]) bool { return s.t.IsSuperset(other.t, obtree.Grouping) }

// ForEach visits every key in ascending order.
func (s Set[K]) ForEach(f func(K) bool) {
	s.t.ForEach(func(e obtree.Element[K, struct{}]) bool { return f(e.Key) })
}

// ToSlice materializes every key in ascending order.
func (s Set[K]) ToSlice() []K {
	out := make([]K, 0, s.t.Len())
	s.ForEach(func(k K) bool { out = append(out, k); return true })
	return out
}

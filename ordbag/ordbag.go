/*
Package ordbag is a thin façade over btree.Tree presenting a sorted
multiset (bag): duplicate keys are genuine repeated elements rather than
a count stored once, exercising the core's duplicate-key ordering and
Counting-strategy merges end to end (spec §1, §4.6).
*/
package ordbag

import (
	obtree "github.com/npillmayer/obtree"
)

// Bag is an immutable, persistent sorted multiset of keys.
type Bag[K obtree.Ordered] struct {
	t obtree.Tree[K, struct{}]
}

// New returns an empty bag.
func New[K obtree.Ordered](opts ...obtree.Option[K, struct{}]) Bag[K] {
	return Bag[K]{t: obtree.Empty[K, struct{}](opts...)}
}

// FromSlice builds a bag from possibly-unsorted keys, preserving every
// duplicate.
func FromSlice[K obtree.Ordered](keys []K, opts ...obtree.Option[K, struct{}]) Bag[K] {
	b := New[K](opts...)
	for _, k := range keys {
		b = b.Add(k)
	}
	return b
}

// Len returns the total number of elements, counting duplicates.
func (b Bag[K]) Len() int { return b.t.Len() }

// IsEmpty reports whether the bag holds no elements.
func (b Bag[K]) IsEmpty() bool { return b.t.IsEmpty() }

// Contains reports whether key occurs at least once.
func (b Bag[K]) Contains(key K) bool { return b.t.Contains(key) }

// Count returns the number of occurrences of key.
func (b Bag[K]) Count(key K) int {
	lo, found := b.t.OffsetOf(key, obtree.First)
	if !found {
		return 0
	}
	hi, _ := b.t.OffsetOf(key, obtree.After)
	return hi - lo
}

// Add inserts one more occurrence of key, placed after any existing
// equal-key run.
func (b Bag[K]) Add(key K) Bag[K] {
	return Bag[K]{t: b.t.Insert(obtree.Element[K, struct{}]{Key: key}, obtree.Last)}
}

// Remove removes one occurrence of key, if present.
func (b Bag[K]) Remove(key K) (Bag[K], bool) {
	nt, _, ok := b.t.Remove(key, obtree.First)
	return Bag[K]{t: nt}, ok
}

// RemoveAll removes every occurrence of key, returning how many were
// removed.
func (b Bag[K]) RemoveAll(key K) (Bag[K], int) {
	lo, found := b.t.OffsetOf(key, obtree.First)
	if !found {
		return b, 0
	}
	hi, _ := b.t.OffsetOf(key, obtree.After)
	return Bag[K]{t: b.t.RemoveRange(lo, hi)}, hi - lo
}

// At returns the key at the given offset in ascending order.
func (b Bag[K]) At(offset int) K { return b.t.At(offset).Key }

// Union keeps, for each key, the sum of its count in b and its count in
// other (multiset sum).
func (b Bag[K]) Union(other Bag[K]) Bag[K] {
	return Bag[K]{t: b.t.Union(other.t, obtree.Counting)}
}

// Intersection keeps, for each key, min(count in b, count in other).
func (b Bag[K]) Intersection(other Bag[K]) Bag[K] {
	return Bag[K]{t: b.t.Intersection(other.t, obtree.Counting)}
}

// Difference keeps, for each key, max(count in b - count in other, 0).
func (b Bag[K]) Difference(other Bag[K]) Bag[K] {
	return Bag[K]{t: b.t.Difference(other.t, obtree.Counting)}
}

// ForEach visits every element (with repeats) in ascending order.
func (b Bag[K]) ForEach(f func(K) bool) {
	b.t.ForEach(func(e obtree.Element[K, struct{}]) bool { return f(e.Key) })
}

// ToSlice materializes every element (with repeats) in ascending order.
func (b Bag[K]) ToSlice() []K {
	out := make([]K, 0, b.t.Len())
	b.ForEach(func(k K) bool { out = append(out, k); return true })
	return out
}

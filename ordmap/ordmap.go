/*
Package ordmap is a thin façade over btree.Tree presenting a unique-key
sorted associative map (spec §1's "Façades are out of scope for the core
... but are expected to exist"). Every method here is a one-line
forwarder to the core; ordmap owns no B-tree logic of its own.
*/
package ordmap

import (
	obtree "github.com/npillmayer/obtree"
)

// Map is an immutable, persistent sorted map with unique keys.
type Map[K obtree.Ordered, V any] struct {
	t obtree.Tree[K, V]
}

// New returns an empty map.
func New[K obtree.Ordered, V any](opts ...obtree.Option[K, V]) Map[K, V] {
	return Map[K, V]{t: obtree.Empty[K, V](opts...)}
}

// FromEntries builds a map from possibly-unsorted (key, value) pairs;
// later entries win on duplicate keys.
func FromEntries[K obtree.Ordered, V any](keys []K, values []V, opts ...obtree.Option[K, V]) Map[K, V] {
	m := New[K, V](opts...)
	for i := range keys {
		m = m.Set(keys[i], values[i])
	}
	return m
}

// Len returns the number of keys.
func (m Map[K, V]) Len() int { return m.t.Len() }

// IsEmpty reports whether the map holds no keys.
func (m Map[K, V]) IsEmpty() bool { return m.t.IsEmpty() }

// Get returns the value for key, if present.
func (m Map[K, V]) Get(key K) (V, bool) {
	return m.t.Find(key, obtree.First)
}

// Contains reports whether key is present.
func (m Map[K, V]) Contains(key K) bool {
	return m.t.Contains(key)
}

// Set returns a new map with key bound to value, replacing any existing
// binding.
func (m Map[K, V]) Set(key K, value V) Map[K, V] {
	return Map[K, V]{t: m.t.InsertOrReplace(key, value)}
}

// GetOrSet returns the existing value for key if present, otherwise binds
// it to value in the returned map.
func (m Map[K, V]) GetOrSet(key K, value V) (Map[K, V], V, bool) {
	nt, v, found := m.t.InsertOrFind(key, value)
	return Map[K, V]{t: nt}, v, found
}

// Delete removes key, if present.
func (m Map[K, V]) Delete(key K) (Map[K, V], V, bool) {
	nt, v, ok := m.t.Remove(key, obtree.First)
	return Map[K, V]{t: nt}, v, ok
}

// At returns the key/value pair at the given offset in key order.
func (m Map[K, V]) At(offset int) (K, V) {
	e := m.t.At(offset)
	return e.Key, e.Value
}

// First returns the smallest key's entry.
func (m Map[K, V]) First() (K, V, bool) {
	e, ok := m.t.First()
	return e.Key, e.Value, ok
}

// Last returns the largest key's entry.
func (m Map[K, V]) Last() (K, V, bool) {
	e, ok := m.t.Last()
	return e.Key, e.Value, ok
}

// Union merges m with other, keeping other's value on key collisions
// (Grouping strategy — one winner per key, not per-copy multiplicities).
func (m Map[K, V]) Union(other Map[K, V]) Map[K, V] {
	return Map[K, V]{t: m.t.Union(other.t, obtree.Grouping)}
}

// Intersection keeps only keys present in both maps (m's values win).
func (m Map[K, V]) Intersection(other Map[K, V]) Map[K, V] {
	return Map[K, V]{t: m.t.Intersection(other.t, obtree.Grouping)}
}

// Difference keeps m's keys that are absent from other.
func (m Map[K, V]) Difference(other Map[K, V]) Map[K, V] {
	return Map[K, V]{t: m.t.Difference(other.t, obtree.Grouping)}
}

// ForEach visits every entry in key order.
func (m Map[K, V]) ForEach(f func(K, V) bool) {
	m.t.ForEach(func(e obtree.Element[K, V]) bool { return f(e.Key, e.Value) })
}

// Keys returns every key in order.
func (m Map[K, V]) Keys() []K {
	out := make([]K, 0, m.t.Len())
	m.ForEach(func(k K, _ V) bool { out = append(out, k); return true })
	return out
}

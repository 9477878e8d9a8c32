/*
Package ordlist is a thin façade over btree.Tree presenting a purely
offset-indexed sequence, with no key domain of its own. The core is
fundamentally key-ordered, so List is built on btree.Tree[int, V] where
the int key is an opaque placeholder the core never looks up by value —
every operation here goes through the core's offset-addressed surface
(At, InsertAtOffset, cursor-by-offset) instead of key lookups (see
DESIGN.md, open question O3).
*/
package ordlist

import (
	obtree "github.com/npillmayer/obtree"
)

// List is an immutable, persistent sequence addressed by position.
type List[V any] struct {
	t obtree.Tree[int, V]
}

// New returns an empty list.
func New[V any](opts ...obtree.Option[int, V]) List[V] {
	return List[V]{t: obtree.Empty[int, V](opts...)}
}

// FromSlice builds a list holding values in the given order.
func FromSlice[V any](values []V, opts ...obtree.Option[int, V]) List[V] {
	elems := make([]obtree.Element[int, V], len(values))
	for i, v := range values {
		elems[i] = obtree.Element[int, V]{Value: v}
	}
	return List[V]{t: obtree.FromSorted(elems, opts...)}
}

// Len returns the number of elements.
func (l List[V]) Len() int { return l.t.Len() }

// IsEmpty reports whether the list holds no elements.
func (l List[V]) IsEmpty() bool { return l.t.IsEmpty() }

// At returns the value at position.
func (l List[V]) At(position int) V { return l.t.At(position).Value }

// First returns the first value.
func (l List[V]) First() (V, bool) {
	e, ok := l.t.First()
	return e.Value, ok
}

// Last returns the last value.
func (l List[V]) Last() (V, bool) {
	e, ok := l.t.Last()
	return e.Value, ok
}

// InsertAt inserts value so that it becomes the element at position.
func (l List[V]) InsertAt(position int, value V) List[V] {
	return List[V]{t: l.t.InsertAtOffset(position, obtree.Element[int, V]{Value: value})}
}

// Append adds value to the end of the list.
func (l List[V]) Append(value V) List[V] {
	return l.InsertAt(l.Len(), value)
}

// Prepend adds value to the start of the list.
func (l List[V]) Prepend(value V) List[V] {
	return l.InsertAt(0, value)
}

// RemoveAt removes the element at position.
func (l List[V]) RemoveAt(position int) (List[V], V) {
	nt, e := l.t.RemoveAtOffset(position)
	return List[V]{t: nt}, e.Value
}

// Slice returns the elements in [lo,hi) as a new list.
func (l List[V]) Slice(lo, hi int) List[V] {
	return List[V]{t: l.t.Subtree(lo, hi)}
}

// Concat appends other after l in O(log n).
func (l List[V]) Concat(other List[V]) List[V] {
	return List[V]{t: l.t.JoinWith(obtree.Element[int, V]{}, other.t).RemoveRange(l.Len(), l.Len()+1)}
}

// SplitAt cuts the list at position into two lists.
func (l List[V]) SplitAt(position int) (List[V], List[V]) {
	left, right := l.t.SplitAt(position)
	return List[V]{t: left}, List[V]{t: right}
}

// WithCursorAt opens a cursor at position and lets f edit the list in
// place within the scope; the repaired list is returned.
func (l List[V]) WithCursorAt(position int, f func(*obtree.Cursor[int, V])) List[V] {
	return List[V]{t: l.t.WithCursorAtOffset(position, f)}
}

// ForEach visits every value in order.
func (l List[V]) ForEach(f func(V) bool) {
	l.t.ForEach(func(e obtree.Element[int, V]) bool { return f(e.Value) })
}

// ToSlice materializes every value in order.
func (l List[V]) ToSlice() []V {
	out := make([]V, 0, l.t.Len())
	l.ForEach(func(v V) bool { out = append(out, v); return true })
	return out
}

package btree

import "sort"

/*
Tree is the public core type: an immutable, persistent, ordered
collection addressable both by key (with duplicate-key Selector
semantics) and by integer offset. Every method that would "modify" a Tree
instead returns a new Tree value; the receiver is left untouched, sharing
as much structure with the result as the edit allows — the same value-
semantic API shape as the teacher's own Tree.With/WithDeleted in
persistent/btree/btree.go, generalized from unique keys to the dual
key/offset addressing and the fuller operation set of spec §6.
*/

// Tree is an immutable, persistent ordered collection of Element[K,V].
// The zero value is not a valid Tree; use Empty to construct one.
type Tree[K Ordered, V any] struct {
	root       *node[K, V]
	count      int
	depth      int
	order      int
	bnds       bounds
	fillFactor int
	dropDups   bool
}

// Option configures a Tree at construction time.
type Option[K Ordered, V any] func(Tree[K, V]) Tree[K, V]

// Order sets the tree's branching factor (clamped to the nearest odd
// integer >= 3). Default DefaultOrder.
func Order[K Ordered, V any](n int) Option[K, V] {
	if n < 3 {
		n = 3
	}
	if n%2 == 0 {
		n++
	}
	return func(t Tree[K, V]) Tree[K, V] {
		t.order = n
		t.bnds = boundsFor(n)
		if t.fillFactor <= 0 || t.fillFactor > t.bnds.maxKeys {
			t.fillFactor = t.bnds.maxKeys
		}
		return t
	}
}

// FillFactor sets the target element count per node used by Builder-based
// bulk construction (FromSorted, FromUnsorted). Default: the order's
// maxKeys (maximally packed).
func FillFactor[K Ordered, V any](n int) Option[K, V] {
	return func(t Tree[K, V]) Tree[K, V] {
		t.fillFactor = n
		return t
	}
}

// DropDuplicateKeys makes bulk construction keep only the last value
// seen for each key, instead of preserving every duplicate.
func DropDuplicateKeys[K Ordered, V any](drop bool) Option[K, V] {
	return func(t Tree[K, V]) Tree[K, V] {
		t.dropDups = drop
		return t
	}
}

func newEmpty[K Ordered, V any](opts ...Option[K, V]) Tree[K, V] {
	t := Tree[K, V]{order: DefaultOrder}
	t.bnds = boundsFor(t.order)
	t.fillFactor = t.bnds.maxKeys
	for _, o := range opts {
		t = o(t)
	}
	return t
}

// Empty returns an empty tree configured by opts.
func Empty[K Ordered, V any](opts ...Option[K, V]) Tree[K, V] {
	return newEmpty(opts...)
}

// FromSorted bulk-loads a tree from elements already in non-decreasing
// key order, in linear time via Builder.
func FromSorted[K Ordered, V any](elems []Element[K, V], opts ...Option[K, V]) Tree[K, V] {
	t := newEmpty(opts...)
	bld := NewBuilder[K, V](t.order, t.fillFactor, t.dropDups)
	bld.AppendAll(elems)
	root, depth := bld.Finish()
	t.root, t.depth = root, depth
	t.count = countOf(root)
	return t
}

// FromUnsorted sorts elems by key (stable, so equal keys keep their
// relative order) and bulk-loads the result.
func FromUnsorted[K Ordered, V any](elems []Element[K, V], opts ...Option[K, V]) Tree[K, V] {
	cp := append([]Element[K, V](nil), elems...)
	sort.SliceStable(cp, func(i, j int) bool { return compare(cp[i].Key, cp[j].Key) < 0 })
	return FromSorted(cp, opts...)
}

func countOf[K Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return n.count
}

// --- queries -------------------------------------------------------------

// Len returns the number of elements.
func (t Tree[K, V]) Len() int { return t.count }

// IsEmpty reports whether the tree holds no elements.
func (t Tree[K, V]) IsEmpty() bool { return t.count == 0 }

// Depth returns the tree's height (0 for an empty or single-leaf tree).
func (t Tree[K, V]) Depth() int { return t.depth }

// Order returns the configured branching factor.
func (t Tree[K, V]) Order() int { return t.order }

// First returns the smallest element.
func (t Tree[K, V]) First() (Element[K, V], bool) {
	if t.root == nil {
		return Element[K, V]{}, false
	}
	p := atStart(t.root, t.count, t.order, weakOwnership)
	return p.element(), true
}

// Last returns the largest element.
func (t Tree[K, V]) Last() (Element[K, V], bool) {
	if t.root == nil {
		return Element[K, V]{}, false
	}
	p := atEnd(t.root, t.count, t.order, weakOwnership).moveBackward()
	return p.element(), true
}

// At returns the element at the given offset, offset in [0,Len()).
func (t Tree[K, V]) At(offset int) Element[K, V] {
	assertThat(offset >= 0 && offset < t.count, "Tree.At: offset %d out of range [0,%d)", offset, t.count)
	p := atOffset(t.root, offset, t.count, t.order, weakOwnership)
	return p.element()
}

// Find looks up a key with the given duplicate-disambiguation selector.
func (t Tree[K, V]) Find(key K, sel Selector) (V, bool) {
	p, found := atKey(t.root, key, sel, t.count, t.order, weakOwnership)
	if !found {
		var zero V
		return zero, false
	}
	return p.element().Value, true
}

// Contains reports whether key occurs at all (ignoring selector / which
// duplicate).
func (t Tree[K, V]) Contains(key K) bool {
	_, found := atKey(t.root, key, First, t.count, t.order, weakOwnership)
	return found
}

// OffsetOf returns the absolute offset of a key, if present. With After
// the offset is the position just past the key's run (where that run
// would sit if key is absent), and ok reports whether key occurs.
func (t Tree[K, V]) OffsetOf(key K, sel Selector) (int, bool) {
	p, found := atKey(t.root, key, sel, t.count, t.order, weakOwnership)
	if sel == After {
		return p.offset(), t.Contains(key)
	}
	if !found {
		return 0, false
	}
	return p.offset(), true
}

// Index is a captured position that can be redeemed for an offset later,
// as long as the originating Tree value has not been mutated (spec §9,
// "Index staleness" — see DESIGN.md open question O2).
type Index[K Ordered, V any] struct {
	root   *node[K, V]
	offset int
}

// IndexOf captures the current offset as a reusable Index.
func (t Tree[K, V]) IndexOf(offset int) Index[K, V] {
	assertThat(offset >= 0 && offset <= t.count, "Tree.IndexOf: offset %d out of range [0,%d]", offset, t.count)
	return Index[K, V]{root: t.root, offset: offset}
}

// Resolve returns the offset an Index names, provided this Tree is the
// same incarnation (by root identity) the Index was captured from. A
// stale Index is a contract violation, not a silent wrong answer.
func (t Tree[K, V]) Resolve(idx Index[K, V]) int {
	assertThat(idx.root == t.root, "Tree.Resolve: index was captured from a different tree incarnation")
	return idx.offset
}

// --- point mutation --------------------------------------------------------

// Insert adds e, placing it among any existing same-key elements per sel
// (First/Last insert at the respective end of the run, After inserts
// just past the whole run like Last, Any behaves as First).
func (t Tree[K, V]) Insert(e Element[K, V], sel Selector) Tree[K, V] {
	off := t.insertOffsetFor(e.Key, sel)
	return t.InsertAtOffset(off, e)
}

func (t Tree[K, V]) insertOffsetFor(key K, sel Selector) int {
	if t.root == nil {
		return 0
	}
	switch sel {
	case Last:
		p, found := atKey(t.root, key, Last, t.count, t.order, weakOwnership)
		if found {
			return p.offset() + 1
		}
		return p.offset()
	case After:
		p, _ := atKey(t.root, key, After, t.count, t.order, weakOwnership)
		return p.offset()
	default:
		p, _ := atKey(t.root, key, First, t.count, t.order, weakOwnership)
		return p.offset()
	}
}

// InsertOrReplace enforces unique keys: if key is already present its
// value is overwritten in place (no new element is created), otherwise a
// new element is inserted at the key's sorted position.
func (t Tree[K, V]) InsertOrReplace(key K, value V) Tree[K, V] {
	p, found := atKey(t.root, key, First, t.count, t.order, weakOwnership)
	if found {
		root := setAtPath(t.root, p, Element[K, V]{Key: key, Value: value})
		nt := t
		nt.root = root
		return nt
	}
	return t.InsertAtOffset(p.offset(), Element[K, V]{Key: key, Value: value})
}

// InsertOrFind returns the existing value for key if present (tree
// unchanged), otherwise inserts value and returns it.
func (t Tree[K, V]) InsertOrFind(key K, value V) (Tree[K, V], V, bool) {
	if v, found := t.Find(key, First); found {
		return t, v, true
	}
	return t.InsertOrReplace(key, value), value, false
}

// InsertAtOffset inserts e so that it becomes the element at offset.
func (t Tree[K, V]) InsertAtOffset(offset int, e Element[K, V]) Tree[K, V] {
	assertThat(offset >= 0 && offset <= t.count, "Tree.InsertAtOffset: offset %d out of range [0,%d]", offset, t.count)
	p := leafPathForInsertBefore(t.root, t.count, t.order, offset, weakOwnership)
	root, depth := insertAtPath(t.root, t.depth, t.order, t.bnds.maxKeys, p, e)
	nt := t
	nt.root, nt.depth, nt.count = root, depth, t.count+1
	tracer().Debugf("insert at offset %d, new count=%d", offset, nt.count)
	return nt
}

// InsertSequenceAtOffset inserts a sorted run of elements starting at
// offset, via Split+Builder+Join rather than one-at-a-time insertion.
func (t Tree[K, V]) InsertSequenceAtOffset(offset int, elems []Element[K, V]) Tree[K, V] {
	assertThat(offset >= 0 && offset <= t.count, "Tree.InsertSequenceAtOffset: offset %d out of range [0,%d]", offset, t.count)
	if len(elems) == 0 {
		return t
	}
	left, leftDepth, right, rightDepth := Split(t.root, t.depth, t.bnds.maxKeys, offset)
	bld := NewBuilder[K, V](t.order, t.fillFactor, false)
	bld.AppendAll(elems)
	midRoot, midDepth := bld.Finish()
	joined, joinedDepth := joinThree(left, leftDepth, midRoot, midDepth, right, rightDepth, t.bnds.maxKeys)
	nt := t
	nt.root, nt.depth, nt.count = joined, joinedDepth, t.count+len(elems)
	return nt
}

// joinThree concatenates three (possibly nil) subtrees that are already
// mutually ordered and contiguous, with no separator element needed
// between them (each already carries its own boundary elements).
func joinThree[K Ordered, V any](a *node[K, V], ad int, b *node[K, V], bd int, c *node[K, V], cd int, maxKeys int) (*node[K, V], int) {
	ab, abd := joinAdjacent(a, ad, b, bd, maxKeys)
	return joinAdjacent(ab, abd, c, cd, maxKeys)
}

// joinAdjacent joins two subtrees with no separator between them by
// popping the smallest element off the right side to serve as the
// separator. If either side is empty the other is returned unchanged.
func joinAdjacent[K Ordered, V any](left *node[K, V], leftDepth int, right *node[K, V], rightDepth int, maxKeys int) (*node[K, V], int) {
	if left == nil {
		return right, rightDepth
	}
	if right == nil {
		return left, leftDepth
	}
	p := atStart(right, right.count, maxKeys+1, weakOwnership)
	sep := p.element()
	_, _, rest, restDepth := Split(right, rightDepth, maxKeys, 1)
	return Join(left, leftDepth, sep, rest, restDepth, maxKeys)
}

// Remove deletes one element matching key per sel. Returns the unchanged
// tree and ok=false if key is absent.
func (t Tree[K, V]) Remove(key K, sel Selector) (Tree[K, V], V, bool) {
	p, found := atKey(t.root, key, sel, t.count, t.order, weakOwnership)
	if !found {
		var zero V
		return t, zero, false
	}
	return t.removeAtPathPublic(p)
}

func (t Tree[K, V]) removeAtPathPublic(p path[K, V]) (Tree[K, V], V, bool) {
	root, depth, removed := removeAtPath(t.root, t.depth, t.order, t.bnds.minKeys, p)
	nt := t
	nt.root, nt.depth, nt.count = root, depth, t.count-1
	return nt, removed.Value, true
}

// RemoveAtOffset deletes the element at offset.
func (t Tree[K, V]) RemoveAtOffset(offset int) (Tree[K, V], Element[K, V]) {
	assertThat(offset >= 0 && offset < t.count, "Tree.RemoveAtOffset: offset %d out of range [0,%d)", offset, t.count)
	p := atOffset(t.root, offset, t.count, t.order, weakOwnership)
	root, depth, removed := removeAtPath(t.root, t.depth, t.order, t.bnds.minKeys, p)
	nt := t
	nt.root, nt.depth, nt.count = root, depth, t.count-1
	return nt, removed
}

// PopFirst removes and returns the smallest element, or ok=false if empty.
func (t Tree[K, V]) PopFirst() (Tree[K, V], Element[K, V], bool) {
	if t.count == 0 {
		return t, Element[K, V]{}, false
	}
	nt, e := t.RemoveAtOffset(0)
	return nt, e, true
}

// PopLast removes and returns the largest element, or ok=false if empty.
func (t Tree[K, V]) PopLast() (Tree[K, V], Element[K, V], bool) {
	if t.count == 0 {
		return t, Element[K, V]{}, false
	}
	nt, e := t.RemoveAtOffset(t.count - 1)
	return nt, e, true
}

// RemoveFirst removes the smallest element. Calling this on an empty tree
// is a contract violation (use PopFirst for the safe variant).
func (t Tree[K, V]) RemoveFirst() (Tree[K, V], Element[K, V]) {
	assertThat(t.count > 0, "Tree.RemoveFirst: tree is empty")
	return t.RemoveAtOffset(0)
}

// RemoveLast removes the largest element. Contract violation on an empty
// tree; see PopLast for the safe variant.
func (t Tree[K, V]) RemoveLast() (Tree[K, V], Element[K, V]) {
	assertThat(t.count > 0, "Tree.RemoveLast: tree is empty")
	return t.RemoveAtOffset(t.count - 1)
}

// RemoveFirstN removes and returns the n smallest elements.
func (t Tree[K, V]) RemoveFirstN(n int) (Tree[K, V], []Element[K, V]) {
	assertThat(n >= 0 && n <= t.count, "Tree.RemoveFirstN: n %d out of range [0,%d]", n, t.count)
	left, _, right, rightDepth := Split(t.root, t.depth, t.bnds.maxKeys, n)
	var taken []Element[K, V]
	inorder(left, func(e Element[K, V]) { taken = append(taken, e) })
	nt := t
	nt.root, nt.depth, nt.count = right, rightDepth, t.count-n
	return nt, taken
}

// RemoveLastN removes and returns the n largest elements, in ascending
// order.
func (t Tree[K, V]) RemoveLastN(n int) (Tree[K, V], []Element[K, V]) {
	assertThat(n >= 0 && n <= t.count, "Tree.RemoveLastN: n %d out of range [0,%d]", n, t.count)
	left, leftDepth, right, _ := Split(t.root, t.depth, t.bnds.maxKeys, t.count-n)
	var taken []Element[K, V]
	inorder(right, func(e Element[K, V]) { taken = append(taken, e) })
	nt := t
	nt.root, nt.depth, nt.count = left, leftDepth, t.count-n
	return nt, taken
}

// --- slicing ---------------------------------------------------------------

// Subtree returns the elements in [lo,hi) as a new tree.
func (t Tree[K, V]) Subtree(lo, hi int) Tree[K, V] {
	assertThat(0 <= lo && lo <= hi && hi <= t.count, "Tree.Subtree: invalid range [%d,%d) for length %d", lo, hi, t.count)
	_, _, afterLo, afterLoDepth := Split(t.root, t.depth, t.bnds.maxKeys, lo)
	mid, midDepth, _, _ := Split(afterLo, afterLoDepth, t.bnds.maxKeys, hi-lo)
	nt := t
	nt.root, nt.depth, nt.count = mid, midDepth, hi-lo
	return nt
}

// Prefix returns the first n elements as a new tree.
func (t Tree[K, V]) Prefix(n int) Tree[K, V] { return t.Subtree(0, n) }

// Suffix returns the last n elements as a new tree.
func (t Tree[K, V]) Suffix(n int) Tree[K, V] { return t.Subtree(t.count-n, t.count) }

// PrefixUpTo returns the elements at offsets [0,offset) — every element
// strictly before offset.
func (t Tree[K, V]) PrefixUpTo(offset int) Tree[K, V] { return t.Subtree(0, offset) }

// PrefixThrough returns the elements at offsets [0,offset] — every element
// up to and including offset.
func (t Tree[K, V]) PrefixThrough(offset int) Tree[K, V] { return t.Subtree(0, offset+1) }

// SuffixFrom returns the elements at offsets [offset,Len()).
func (t Tree[K, V]) SuffixFrom(offset int) Tree[K, V] { return t.Subtree(offset, t.count) }

// offsetOfKeyBoundary returns the offset of the first element whose key is
// >= key, whether or not key itself occurs in t — the same insertion point
// insertOffsetFor(key, First) would compute.
func (t Tree[K, V]) offsetOfKeyBoundary(key K) int {
	p, _ := atKey(t.root, key, First, t.count, t.order, weakOwnership)
	return p.offset()
}

// SubtreeByKeyRange returns the elements whose key lies in [loKey,hiKey).
func (t Tree[K, V]) SubtreeByKeyRange(loKey, hiKey K) Tree[K, V] {
	lo := t.offsetOfKeyBoundary(loKey)
	hi := t.offsetOfKeyBoundary(hiKey)
	return t.Subtree(lo, hi)
}

// ExtractRange removes [lo,hi) from the tree, returning both the
// remainder and the extracted elements as their own tree.
func (t Tree[K, V]) ExtractRange(lo, hi int) (remainder Tree[K, V], extracted Tree[K, V]) {
	assertThat(0 <= lo && lo <= hi && hi <= t.count, "Tree.ExtractRange: invalid range [%d,%d) for length %d", lo, hi, t.count)
	left, leftDepth, afterLo, afterLoDepth := Split(t.root, t.depth, t.bnds.maxKeys, lo)
	mid, midDepth, tail, tailDepth := Split(afterLo, afterLoDepth, t.bnds.maxKeys, hi-lo)
	rest, restDepth := joinAdjacent(left, leftDepth, tail, tailDepth, t.bnds.maxKeys)
	remainder = t
	remainder.root, remainder.depth, remainder.count = rest, restDepth, t.count-(hi-lo)
	extracted = t
	extracted.root, extracted.depth, extracted.count = mid, midDepth, hi-lo
	return remainder, extracted
}

// RemoveRange deletes [lo,hi) and returns only the remainder.
func (t Tree[K, V]) RemoveRange(lo, hi int) Tree[K, V] {
	remainder, _ := t.ExtractRange(lo, hi)
	return remainder
}

// ReplaceRange replaces [lo,hi) with elems in one operation.
func (t Tree[K, V]) ReplaceRange(lo, hi int, elems []Element[K, V]) Tree[K, V] {
	remainder := t.RemoveRange(lo, hi)
	return remainder.InsertSequenceAtOffset(lo, elems)
}

// --- join / split ------------------------------------------------------

// JoinWith concatenates t, a separator element (its key must exceed every
// key in t and precede every key in other), and other.
func (t Tree[K, V]) JoinWith(sep Element[K, V], other Tree[K, V]) Tree[K, V] {
	root, depth := Join(t.root, t.depth, sep, other.root, other.depth, t.bnds.maxKeys)
	nt := t
	nt.root, nt.depth, nt.count = root, depth, t.count+1+other.count
	return nt
}

// SplitAt cuts the tree at offset into two trees.
func (t Tree[K, V]) SplitAt(offset int) (left Tree[K, V], right Tree[K, V]) {
	assertThat(offset >= 0 && offset <= t.count, "Tree.SplitAt: offset %d out of range [0,%d]", offset, t.count)
	lroot, ldepth, rroot, rdepth := Split(t.root, t.depth, t.bnds.maxKeys, offset)
	left = t
	left.root, left.depth, left.count = lroot, ldepth, offset
	right = t
	right.root, right.depth, right.count = rroot, rdepth, t.count-offset
	return left, right
}

// --- set algebra -----------------------------------------------------------

func (t Tree[K, V]) resultOf(root *node[K, V], depth int) Tree[K, V] {
	nt := t
	nt.root, nt.depth, nt.count = root, depth, countOf(root)
	return nt
}

// Union returns the elements of t and other combined, per strategy.
func (t Tree[K, V]) Union(other Tree[K, V], strategy Strategy) Tree[K, V] {
	root, depth := Union(t.root, other.root, strategy, t.order, t.fillFactor)
	return t.resultOf(root, depth)
}

// Intersection returns only the elements common to t and other.
func (t Tree[K, V]) Intersection(other Tree[K, V], strategy Strategy) Tree[K, V] {
	root, depth := Intersection(t.root, other.root, strategy, t.order, t.fillFactor)
	return t.resultOf(root, depth)
}

// Difference returns the elements of t not present in other.
func (t Tree[K, V]) Difference(other Tree[K, V], strategy Strategy) Tree[K, V] {
	root, depth := Difference(t.root, other.root, strategy, t.order, t.fillFactor)
	return t.resultOf(root, depth)
}

// SymmetricDifference returns the elements present in exactly one of t
// and other.
func (t Tree[K, V]) SymmetricDifference(other Tree[K, V], strategy Strategy) Tree[K, V] {
	root, depth := SymmetricDifference(t.root, other.root, strategy, t.order, t.fillFactor)
	return t.resultOf(root, depth)
}

// IsDisjoint reports whether t and other share no key.
func (t Tree[K, V]) IsDisjoint(other Tree[K, V]) bool {
	return IsDisjoint(t.root, other.root)
}

// IsSubset reports whether every key (and, under Counting, multiplicity)
// of t also occurs in other.
func (t Tree[K, V]) IsSubset(other Tree[K, V], strategy Strategy) bool {
	return IsSubset(t.root, other.root, strategy)
}

// IsSuperset reports whether other is a subset of t.
func (t Tree[K, V]) IsSuperset(other Tree[K, V], strategy Strategy) bool {
	return IsSubset(other.root, t.root, strategy)
}

// IsStrictSubset reports whether t is a subset of other and the two
// differ in size.
func (t Tree[K, V]) IsStrictSubset(other Tree[K, V], strategy Strategy) bool {
	return t.count < other.count && t.IsSubset(other, strategy)
}

// IsStrictSuperset reports whether t is a superset of other and the two
// differ in size.
func (t Tree[K, V]) IsStrictSuperset(other Tree[K, V], strategy Strategy) bool {
	return t.count > other.count && t.IsSuperset(other, strategy)
}

// ElementsEqual reports whether t and other hold the same elements in the
// same order, comparing values with eq.
func (t Tree[K, V]) ElementsEqual(other Tree[K, V], eq func(x, y V) bool) bool {
	return ElementsEqual(t.root, other.root, eq)
}

// --- set algebra against a sorted sequence (spec §4.7) ----------------------

// UnionWithSequence returns the elements of t and the sorted sequence seq
// combined, per strategy.
func (t Tree[K, V]) UnionWithSequence(seq []Element[K, V], strategy Strategy) Tree[K, V] {
	root, depth := UnionWithSequence(t.root, seq, strategy, t.order, t.fillFactor)
	return t.resultOf(root, depth)
}

// IntersectionWithSequence returns only the elements of t that also occur
// in the sorted sequence seq.
func (t Tree[K, V]) IntersectionWithSequence(seq []Element[K, V], strategy Strategy) Tree[K, V] {
	root, depth := IntersectionWithSequence(t.root, seq, strategy, t.order, t.fillFactor)
	return t.resultOf(root, depth)
}

// DifferenceWithSequence returns the elements of t absent from the sorted
// sequence seq.
func (t Tree[K, V]) DifferenceWithSequence(seq []Element[K, V], strategy Strategy) Tree[K, V] {
	root, depth := DifferenceWithSequence(t.root, seq, strategy, t.order, t.fillFactor)
	return t.resultOf(root, depth)
}

// IntersectionRange returns the elements of t whose key lies in
// [loKey,hiKey) — the contiguous-key-range special case of §4.7, found in
// O(log n) via Split rather than a full sequence merge.
func (t Tree[K, V]) IntersectionRange(loKey, hiKey K) Tree[K, V] {
	return t.SubtreeByKeyRange(loKey, hiKey)
}

// DifferenceRange removes every element of t whose key lies in
// [loKey,hiKey), in O(log n) via split-join rather than a full sequence
// merge — the counterpart of IntersectionRange.
func (t Tree[K, V]) DifferenceRange(loKey, hiKey K) Tree[K, V] {
	lo := t.offsetOfKeyBoundary(loKey)
	hi := t.offsetOfKeyBoundary(hiKey)
	return t.RemoveRange(lo, hi)
}

// --- cursors -----------------------------------------------------------

// WithCursorAtStart opens a Cursor positioned at offset 0 and runs f with
// it, then returns the repaired tree reflecting any edits f made. The
// cursor is closed by a deferred call even if f panics; the panic still
// propagates, and the receiver is never modified.
func (t Tree[K, V]) WithCursorAtStart(f func(*Cursor[K, V])) (result Tree[K, V]) {
	return t.withCursor(atStart(t.root, t.count, t.order, cursorOwnership), f)
}

// WithCursorAtEnd opens a Cursor positioned at the end sentinel.
func (t Tree[K, V]) WithCursorAtEnd(f func(*Cursor[K, V])) (result Tree[K, V]) {
	return t.withCursor(atEnd(t.root, t.count, t.order, cursorOwnership), f)
}

// WithCursorAtOffset opens a Cursor positioned at offset.
func (t Tree[K, V]) WithCursorAtOffset(offset int, f func(*Cursor[K, V])) (result Tree[K, V]) {
	assertThat(offset >= 0 && offset <= t.count, "Tree.WithCursorAtOffset: offset %d out of range [0,%d]", offset, t.count)
	return t.withCursor(atOffset(t.root, offset, t.count, t.order, cursorOwnership), f)
}

// WithCursorAtKey opens a Cursor positioned at key per sel. If key is
// absent the cursor lands where an insert would place it.
func (t Tree[K, V]) WithCursorAtKey(key K, sel Selector, f func(*Cursor[K, V])) (result Tree[K, V]) {
	p, _ := atKey(t.root, key, sel, t.count, t.order, cursorOwnership)
	return t.withCursor(p, f)
}

func (t Tree[K, V]) withCursor(p path[K, V], f func(*Cursor[K, V])) (result Tree[K, V]) {
	c := newCursor(t.root, t.depth, t.order, t.count, p)
	defer func() {
		root, depth, count := c.finish()
		result = t
		result.root, result.depth, result.count = root, depth, count
	}()
	f(c)
	return t
}

// --- iteration -----------------------------------------------------------

// Iterator returns a forward iterator starting at the first element.
func (t Tree[K, V]) Iterator() *Iterator[K, V] {
	return newIterator(t.root, t.count, t.order, atStart(t.root, t.count, t.order, weakOwnership))
}

// IteratorFromOffset returns a forward iterator starting at offset.
func (t Tree[K, V]) IteratorFromOffset(offset int) *Iterator[K, V] {
	assertThat(offset >= 0 && offset <= t.count, "Tree.IteratorFromOffset: offset %d out of range [0,%d]", offset, t.count)
	return newIterator(t.root, t.count, t.order, atOffset(t.root, offset, t.count, t.order, weakOwnership))
}

// IteratorFromKey returns a forward iterator starting at key per sel.
func (t Tree[K, V]) IteratorFromKey(key K, sel Selector) *Iterator[K, V] {
	p, _ := atKey(t.root, key, sel, t.count, t.order, weakOwnership)
	return newIterator(t.root, t.count, t.order, p)
}

// ForEach visits every element in order, stopping early if f returns
// false.
func (t Tree[K, V]) ForEach(f func(Element[K, V]) bool) {
	it := t.Iterator()
	for {
		e, ok := it.Next()
		if !ok || !f(e) {
			return
		}
	}
}

// ToSlice materializes every element in order.
func (t Tree[K, V]) ToSlice() []Element[K, V] {
	out := make([]Element[K, V], 0, t.count)
	t.ForEach(func(e Element[K, V]) bool {
		out = append(out, e)
		return true
	})
	return out
}

package btree

import "sort"

/*
Remarks:
--------

- 'cow' stands for copy-on-write; a node is never mutated after it has been
  published as part of a Tree value — every modification works on a clone.

- There is no reference counting: the Go runtime's garbage collector already
  tracks reachability, so "ensure unique ownership of a node" (spec §3, §5)
  collapses to "clone the node before editing it", exactly the discipline
  the teacher's persistent/btree package already follows throughout
  internals.go. A node is only ever touched in place while it is still a
  local clone that has not yet been attached to any published Tree.
*/

// node is a fixed-order B-tree node. children is nil for leaves; otherwise
// len(children) == len(elements)+1. count is the number of elements held in
// the subtree rooted at this node, including its own elements. depth is 0
// for leaves and 1+child.depth for internal nodes (uniform across children).
type node[K Ordered, V any] struct {
	elements []Element[K, V]
	children []*node[K, V]
	count    int
	depth    int
}

func (n *node[K, V]) isLeaf() bool {
	return n == nil || len(n.children) == 0
}

func (n *node[K, V]) overfull(maxKeys int) bool {
	return len(n.elements) > maxKeys
}

func (n *node[K, V]) underfull(minKeys int) bool {
	return n == nil || len(n.elements) < minKeys
}

// clone returns a shallow copy: new elements/children backing arrays, but
// child node pointers are shared with the original. This is the copy-on-
// write primitive every structural edit builds on.
func (n *node[K, V]) clone() *node[K, V] {
	if n == nil {
		return &node[K, V]{}
	}
	cl := &node[K, V]{count: n.count, depth: n.depth}
	if len(n.elements) > 0 {
		cl.elements = append([]Element[K, V](nil), n.elements...)
	}
	if len(n.children) > 0 {
		cl.children = append([]*node[K, V](nil), n.children...)
	}
	return cl
}

// recount recomputes count from elements and children counts. Called after
// any structural edit that changes the node's element or child list.
func (n *node[K, V]) recount() {
	c := len(n.elements)
	for _, ch := range n.children {
		c += ch.count
	}
	n.count = c
}

func (n *node[K, V]) asNonLeaf() {
	if n.children == nil {
		n.children = make([]*node[K, V], 0, len(n.elements)+1)
	}
}

// --- slot lookup -------------------------------------------------------

// slotOfKey performs a binary search of key within n.elements. The
// returned matchIdx/found pair follows selector semantics for duplicate
// runs (spec §4.1); descendIdx is the child index to descend into when the
// key is not found locally (or, for internal nodes, when selector demands
// continuing past an exact match, e.g. After).
func (n *node[K, V]) slotOfKey(key K, sel Selector) (matchIdx int, found bool, descendIdx int) {
	elems := n.elements
	lo := sort.Search(len(elems), func(i int) bool { return compare(elems[i].Key, key) >= 0 })
	switch sel {
	case Last:
		hi := sort.Search(len(elems), func(i int) bool { return compare(elems[i].Key, key) > 0 })
		if hi > 0 && compare(elems[hi-1].Key, key) == 0 {
			return hi - 1, true, hi
		}
		return lo, false, lo
	case After:
		hi := sort.Search(len(elems), func(i int) bool { return compare(elems[i].Key, key) > 0 })
		return hi, false, hi
	default: // First, Any — see DESIGN.md open question O1
		if lo < len(elems) && compare(elems[lo].Key, key) == 0 {
			return lo, true, lo
		}
		return lo, false, lo
	}
}

// slotOfOffset walks elements accumulating children[i].count+1 until the
// target offset is reached. When match is true, index addresses a local
// element directly; otherwise index is the child to descend into and
// childOffset is the offset within that child.
func (n *node[K, V]) slotOfOffset(off int) (index int, match bool, childOffset int) {
	if n.isLeaf() {
		return off, off < len(n.elements), 0
	}
	acc := 0
	for i := 0; i < len(n.elements); i++ {
		cc := n.children[i].count
		if off < acc+cc {
			return i, false, off - acc
		}
		acc += cc
		if off == acc {
			return i, true, 0
		}
		acc++ // element i itself occupies one position
	}
	return len(n.elements), false, off - acc
}

// --- element-level edits (always operate on a fresh clone) -------------

// withInserted returns a clone of n with e inserted at elements[at]. For
// internal nodes a nil child placeholder is inserted at children[at+1];
// the caller is responsible for filling it in.
func (n *node[K, V]) withInserted(e Element[K, V], at int) *node[K, V] {
	cl := n.clone()
	cl.elements = append(cl.elements, Element[K, V]{})
	copy(cl.elements[at+1:], cl.elements[at:])
	cl.elements[at] = e
	if !cl.isLeaf() {
		cl.children = append(cl.children, nil)
		copy(cl.children[at+2:], cl.children[at+1:])
		cl.children[at+1] = nil
	}
	return cl
}

// withRemoved returns a clone of n with the element (and, for internal
// nodes, the child to its right) at index `at` removed.
func (n *node[K, V]) withRemoved(at int) (*node[K, V], Element[K, V]) {
	cl := n.clone()
	old := cl.elements[at]
	cl.elements = append(cl.elements[:at], cl.elements[at+1:]...)
	if !cl.isLeaf() {
		cl.children = append(cl.children[:at+1], cl.children[at+2:]...)
	}
	return cl, old
}

// withSet returns a clone of n with the element at index `at` replaced.
func (n *node[K, V]) withSet(at int, e Element[K, V]) (*node[K, V], Element[K, V]) {
	cl := n.clone()
	old := cl.elements[at]
	cl.elements[at] = e
	return cl, old
}

// --- splitting and balancing --------------------------------------------

/*
B-trees need to be re-balanced after a modification leaves the tree in a
state where a tree-property is violated: an insertion may produce an
element count that exceeds the high-water mark, requiring a split; a
deletion may leave a node underfull, requiring a rotation or a collapse
with a sibling. We never re-balance proactively — only after the fact,
ascending from the edit point, exactly as the teacher's btree.go describes
in its "Splitting and balancing" remarks.
*/

// splinter is the result of splitting an over-full node at its median.
type splinter[K Ordered, V any] struct {
	left      *node[K, V]
	separator Element[K, V]
	right     *node[K, V]
}

// split splits n at its median element into two nodes of equal depth.
func (n *node[K, V]) split() splinter[K, V] {
	m := len(n.elements) / 2
	sep := n.elements[m]
	left := &node[K, V]{depth: n.depth}
	left.elements = append([]Element[K, V](nil), n.elements[:m]...)
	right := &node[K, V]{depth: n.depth}
	right.elements = append([]Element[K, V](nil), n.elements[m+1:]...)
	if !n.isLeaf() {
		left.children = append([]*node[K, V](nil), n.children[:m+1]...)
		right.children = append([]*node[K, V](nil), n.children[m+1:]...)
	}
	left.recount()
	right.recount()
	return splinter[K, V]{left: left, separator: sep, right: right}
}

// rotateLeft moves the separator at elements[sep] down to become the new
// last element of children[sep], and replaces it with the first element of
// children[sep+1] (which becomes deficient-safe by one).
func (n *node[K, V]) rotateLeft(sep int) *node[K, V] {
	cl := n.clone()
	left := cl.children[sep].clone()
	right := cl.children[sep+1].clone()
	moved := right.elements[0]
	left.elements = append(left.elements, cl.elements[sep])
	right.elements = right.elements[1:]
	if !right.isLeaf() {
		left.children = append(left.children, right.children[0])
		right.children = right.children[1:]
	}
	cl.elements[sep] = moved
	left.recount()
	right.recount()
	cl.children[sep] = left
	cl.children[sep+1] = right
	return cl
}

// rotateRight is the mirror image of rotateLeft: steals the last element
// of children[sep] to become the new first element of children[sep+1].
func (n *node[K, V]) rotateRight(sep int) *node[K, V] {
	cl := n.clone()
	left := cl.children[sep].clone()
	right := cl.children[sep+1].clone()
	moved := left.elements[len(left.elements)-1]
	right.elements = append(append([]Element[K, V]{cl.elements[sep]}), right.elements...)
	left.elements = left.elements[:len(left.elements)-1]
	if !left.isLeaf() {
		lastChild := left.children[len(left.children)-1]
		right.children = append([]*node[K, V]{lastChild}, right.children...)
		left.children = left.children[:len(left.children)-1]
	}
	cl.elements[sep] = moved
	left.recount()
	right.recount()
	cl.children[sep] = left
	cl.children[sep+1] = right
	return cl
}

// collapse merges children[sep], elements[sep] and children[sep+1] into a
// single child, shrinking n by one element and one child.
func (n *node[K, V]) collapse(sep int) *node[K, V] {
	cl := n.clone()
	left := cl.children[sep]
	right := cl.children[sep+1]
	merged := &node[K, V]{depth: left.depth}
	merged.elements = append(merged.elements, left.elements...)
	merged.elements = append(merged.elements, cl.elements[sep])
	merged.elements = append(merged.elements, right.elements...)
	if !left.isLeaf() {
		merged.children = append(merged.children, left.children...)
		merged.children = append(merged.children, right.children...)
	}
	merged.recount()
	cl.elements = append(cl.elements[:sep], cl.elements[sep+1:]...)
	cl.children = append(cl.children[:sep+1], cl.children[sep+2:]...)
	cl.children[sep] = merged
	return cl
}

// fixDeficiency repairs children[sep] when it is below minKeys: it rotates
// from a fatter sibling if one exists, otherwise collapses with a sibling.
func (n *node[K, V]) fixDeficiency(sep int, minKeys int) *node[K, V] {
	hasLeft := sep > 0
	hasRight := sep < len(n.children)-1
	if hasLeft && len(n.children[sep-1].elements) > minKeys {
		return n.rotateRight(sep - 1)
	}
	if hasRight && len(n.children[sep+1].elements) > minKeys {
		return n.rotateLeft(sep)
	}
	if hasLeft {
		return n.collapse(sep - 1)
	}
	return n.collapse(sep)
}

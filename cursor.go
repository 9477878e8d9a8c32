package btree

/*
Cursor is a scoped, mutating path into a tree (spec §4.3). Like every
other edit, each cursor edit (InsertBefore/InsertAfter/Remove/SetValue)
clones the nodes from the edited one up to the root; the cursor keeps its
own root and never edits a node in place, so a previously published Tree
never sees its edits.

A Cursor is always obtained through Tree's WithCursorAt* entry points,
which close the cursor in a deferred call even if the callback panics —
the same "always run the cleanup" shape as the teacher's own
generation-based invalidation in persistent/btree. The panic then
propagates, and the Tree the call was made on is left untouched.
*/

// Cursor is a mutable, scoped view into a tree at a single position,
// addressed either by offset or by key. It is only valid for the duration
// of the WithCursor* callback that created it.
type Cursor[K Ordered, V any] struct {
	p      path[K, V]
	root   *node[K, V]
	depth  int
	order  int
	bnds   bounds
	count  int
	closed bool
}

func newCursor[K Ordered, V any](root *node[K, V], depth, order, count int, p path[K, V]) *Cursor[K, V] {
	p.kind = cursorOwnership
	return &Cursor[K, V]{p: p, root: root, depth: depth, order: order, bnds: boundsFor(order), count: count}
}

func (c *Cursor[K, V]) assertOpen() {
	assertThat(!c.closed, "Cursor used after its WithCursor scope has ended")
}

// AtEnd reports whether the cursor addresses the position one past the
// last element.
func (c *Cursor[K, V]) AtEnd() bool {
	c.assertOpen()
	return c.p.empty() || c.p.atEndSentinel()
}

// Offset returns the cursor's current absolute offset.
func (c *Cursor[K, V]) Offset() int {
	c.assertOpen()
	return c.p.offset()
}

// Element returns the element at the cursor's current position. Calling
// this at the end sentinel is a contract violation.
func (c *Cursor[K, V]) Element() Element[K, V] {
	c.assertOpen()
	assertThat(!c.AtEnd(), "Cursor.Element: cursor is at the end sentinel")
	return c.p.element()
}

// SetValue replaces the value at the cursor's current position, leaving
// keys and tree shape untouched. Like every other Cursor mutation, this
// clones the edited node and its ancestors rather than touching the
// shared original in place, so the cursor is safe to use even before any
// prior edit has cloned its spine.
func (c *Cursor[K, V]) SetValue(v V) {
	c.assertOpen()
	assertThat(!c.AtEnd(), "Cursor.SetValue: cursor is at the end sentinel")
	off := c.p.offset()
	last := c.p.last()
	e := last.node.elements[last.index]
	e.Value = v
	c.root = setAtPath(c.root, c.p, e)
	c.p = atOffset(c.root, off, c.count, c.order, cursorOwnership)
}

// MoveForward advances the cursor to the in-order successor. A no-op at
// the end sentinel.
func (c *Cursor[K, V]) MoveForward() {
	c.assertOpen()
	c.p = c.p.moveForward()
}

// MoveBackward moves the cursor to the in-order predecessor. A contract
// violation at offset 0.
func (c *Cursor[K, V]) MoveBackward() {
	c.assertOpen()
	assertThat(c.p.offset() > 0, "Cursor.MoveBackward: already at offset 0")
	c.p = c.p.moveBackward()
}

// InsertBefore inserts e immediately before the cursor's current position
// and leaves the cursor addressing the element it started on, now one past
// the inserted element — repeated InsertBefore calls grow a prefix in order.
func (c *Cursor[K, V]) InsertBefore(e Element[K, V]) {
	c.assertOpen()
	off := c.p.offset()
	c.insertAt(off, e)
	c.p = atOffset(c.root, off+1, c.count, c.order, cursorOwnership)
}

// InsertAfter inserts e immediately after the cursor's current position and
// moves the cursor onto the newly inserted element — repeated InsertAfter
// calls grow a suffix in order.
func (c *Cursor[K, V]) InsertAfter(e Element[K, V]) {
	c.assertOpen()
	off := c.p.offset()
	insertOff := off
	if !c.AtEnd() {
		insertOff = off + 1
	}
	c.insertAt(insertOff, e)
	c.p = atOffset(c.root, insertOff, c.count, c.order, cursorOwnership)
}

func (c *Cursor[K, V]) insertAt(off int, e Element[K, V]) {
	p := leafPathForInsertBefore(c.root, c.count, c.order, off, cursorOwnership)
	newRoot, newDepth := insertAtPath(c.root, c.depth, c.order, c.bnds.maxKeys, p, e)
	tracer().Debugf("cursor insert at offset %d (depth %d -> %d)", off, c.depth, newDepth)
	c.root, c.depth, c.count = newRoot, newDepth, c.count+1
}

// Remove removes the element at the cursor's current position and leaves
// the cursor addressing the element that took its place (or the end
// sentinel, if the removed element was last). Contract violation at the
// end sentinel.
func (c *Cursor[K, V]) Remove() Element[K, V] {
	c.assertOpen()
	assertThat(!c.AtEnd(), "Cursor.Remove: cursor is at the end sentinel")
	off := c.p.offset()
	newRoot, newDepth, removed := removeAtPath(c.root, c.depth, c.order, c.bnds.minKeys, c.p)
	tracer().Debugf("cursor remove at offset %d (depth %d -> %d)", off, c.depth, newDepth)
	c.root, c.depth, c.count = newRoot, newDepth, c.count-1
	c.p = atOffset(c.root, off, c.count, c.order, cursorOwnership)
	return removed
}

// finish returns the repaired root, depth and count after the scope ends.
func (c *Cursor[K, V]) finish() (*node[K, V], int, int) {
	c.closed = true
	return c.root, c.depth, c.count
}

// --- shared mutation primitives, used by Cursor and by Tree's point ops ---

// leafPathForInsertBefore returns a path that always lands on a leaf slot
// suitable for inserting a brand-new element immediately before offset
// off. Internal nodes cannot receive a bare element insertion (they would
// need an accompanying child), so a path landing on an internal element is
// redirected to the rightmost leaf of its left child.
func leafPathForInsertBefore[K Ordered, V any](root *node[K, V], count, order, off int, kind ownership) path[K, V] {
	p := atOffset(root, off, count, order, kind)
	if root == nil || p.empty() {
		return p
	}
	last := p.last()
	if last.node.isLeaf() {
		return p
	}
	// Landed on an internal element directly (off lies exactly on an
	// existing key's offset): redirect into the rightmost leaf of the
	// left child, appending "insert at the very end of this leaf" steps.
	steps := clonedSteps(p.steps)
	n := last.node.children[last.index]
	for !n.isLeaf() {
		steps = append(steps, pathStep[K, V]{node: n, index: len(n.elements)})
		n = n.children[len(n.children)-1]
	}
	steps = append(steps, pathStep[K, V]{node: n, index: len(n.elements)})
	p.steps = steps
	return p
}

// insertAtPath inserts e at the leaf slot p addresses, ascending through
// p's ancestor steps and cloning and re-splitting each as needed. Returns
// the new root and its depth.
func insertAtPath[K Ordered, V any](root *node[K, V], depth, order, maxKeys int, p path[K, V], e Element[K, V]) (*node[K, V], int) {
	if root == nil {
		leaf := &node[K, V]{elements: []Element[K, V]{e}, count: 1}
		return leaf, 0
	}
	steps := p.steps
	last := steps[len(steps)-1]
	child := last.node.withInserted(e, last.index)
	child.recount()
	var sp *splinter[K, V]
	if child.overfull(maxKeys) {
		s := child.split()
		sp = &s
	}
	for i := len(steps) - 2; i >= 0; i-- {
		parent := steps[i].node.clone()
		at := steps[i].index
		if sp == nil {
			parent.children[at] = child
			parent.recount()
			child = parent
			continue
		}
		parent.elements = append(parent.elements, Element[K, V]{})
		copy(parent.elements[at+1:], parent.elements[at:])
		parent.elements[at] = sp.separator
		parent.children = append(parent.children, nil)
		copy(parent.children[at+2:], parent.children[at+1:])
		parent.children[at] = sp.left
		parent.children[at+1] = sp.right
		parent.recount()
		sp = nil
		if parent.overfull(maxKeys) {
			s := parent.split()
			sp = &s
		}
		child = parent
	}
	if sp != nil {
		newRoot := &node[K, V]{depth: depth + 1}
		newRoot.elements = []Element[K, V]{sp.separator}
		newRoot.children = []*node[K, V]{sp.left, sp.right}
		newRoot.recount()
		return newRoot, depth + 1
	}
	return child, depth
}

// setAtPath returns a new root with the element p addresses replaced by e,
// cloning every node on the path from the edited node up to the root.
func setAtPath[K Ordered, V any](root *node[K, V], p path[K, V], e Element[K, V]) *node[K, V] {
	steps := p.steps
	last := steps[len(steps)-1]
	child, _ := last.node.withSet(last.index, e)
	for i := len(steps) - 2; i >= 0; i-- {
		parent := steps[i].node.clone()
		parent.children[steps[i].index] = child
		child = parent
	}
	return child
}

// removeAtPath removes the element p addresses, ascending and repairing
// deficiencies. Returns the new root, its depth, and the removed element.
func removeAtPath[K Ordered, V any](root *node[K, V], depth, order, minKeys int, p path[K, V]) (*node[K, V], int, Element[K, V]) {
	steps := clonedSteps(p.steps)
	last := steps[len(steps)-1]
	var removed Element[K, V]
	var child *node[K, V]

	if last.node.isLeaf() {
		cl, old := last.node.withRemoved(last.index)
		child, removed = cl, old
	} else {
		cl := last.node.clone()
		matched := cl.elements[last.index]
		// walk to the predecessor: rightmost leaf of children[last.index].
		// Every node visited here is a fresh clone exclusively owned by this
		// call, so the leaf's own elements can be trimmed in place once
		// reached, leaving every ancestor's child pointer already correct.
		predSteps := []pathStep[K, V]{{node: cl, index: last.index}}
		n := cl.children[last.index].clone()
		cl.children[last.index] = n
		for !n.isLeaf() {
			predSteps = append(predSteps, pathStep[K, V]{node: n, index: len(n.elements)})
			nxt := n.children[len(n.children)-1].clone()
			n.children[len(n.children)-1] = nxt
			n = nxt
		}
		stolen := n.elements[len(n.elements)-1]
		n.elements = n.elements[:len(n.elements)-1]
		n.recount()
		predSteps = append(predSteps, pathStep[K, V]{node: n, index: len(n.elements)})
		cl.elements[last.index] = stolen
		removed = matched
		steps[len(steps)-1] = pathStep[K, V]{node: cl, index: last.index}
		steps = append(steps, predSteps[1:]...)
		child = n
	}

	for i := len(steps) - 2; i >= 0; i-- {
		parent := steps[i].node.clone()
		at := steps[i].index
		parent.children[at] = child
		if child.underfull(minKeys) {
			parent = parent.fixDeficiency(at, minKeys)
		} else {
			parent.recount()
		}
		child = parent
	}

	cur, curDepth := child, depth
	for len(cur.elements) == 0 && !cur.isLeaf() {
		cur = cur.children[0]
		curDepth--
	}
	if len(cur.elements) == 0 && cur.isLeaf() {
		cur, curDepth = nil, 0
	}
	return cur, curDepth, removed
}

package btree

/*
Builder assembles a maximally (or minimally, depending on fill factor)
packed B-tree from a monotonically-keyed stream of elements in one linear
pass (spec §4.4). It generalizes the teacher's own node-sizing helpers
(cloneWithCapacity/ceiling in persistent/btree/internals.go, which size a
node's backing array to the right power-of-two bucket) from "react to
overflow after the fact" to "seal proactively once a fill target is hit".

Simplification: AppendSubtree flattens the subtree's
elements into the same buffer Append uses, rather than splicing the
subtree's nodes into the output tree unchanged. Builder always produces a
freshly packed tree; it does not attempt to preserve structural sharing
with its input (that sharing optimization belongs to Merge, which uses
Builder only for the runs it cannot skip wholesale).
*/

// Builder packs a sorted stream of elements into a balanced tree.
type Builder[K Ordered, V any] struct {
	bnds           bounds
	keysPerNode    int
	dropDuplicates bool
	buffer         []Element[K, V]
	hasLast        bool
	lastKey        K
}

// NewBuilder creates a Builder targeting the given order and per-node fill
// factor (elements per node, clamped to [minKeys, maxKeys]).
func NewBuilder[K Ordered, V any](order, fillFactor int, dropDuplicates bool) *Builder[K, V] {
	bnds := boundsFor(order)
	if fillFactor < bnds.minKeys {
		fillFactor = bnds.minKeys
	}
	if fillFactor > bnds.maxKeys {
		fillFactor = bnds.maxKeys
	}
	if fillFactor < 1 {
		fillFactor = 1
	}
	return &Builder[K, V]{bnds: bnds, keysPerNode: fillFactor, dropDuplicates: dropDuplicates}
}

// Append adds one element to the stream. Elements must arrive in
// non-decreasing key order; violating this is a contract violation.
func (b *Builder[K, V]) Append(e Element[K, V]) {
	if b.hasLast {
		assertThat(compare(b.lastKey, e.Key) <= 0, "Builder.Append: input is not monotonic")
		if b.dropDuplicates && compare(b.lastKey, e.Key) == 0 {
			b.buffer[len(b.buffer)-1] = e
			return
		}
	}
	b.hasLast, b.lastKey = true, e.Key
	b.buffer = append(b.buffer, e)
}

// AppendSubtree appends every element of an already-balanced subtree, in
// order. See the package-level simplification note above.
func (b *Builder[K, V]) AppendSubtree(root *node[K, V]) {
	if root == nil {
		return
	}
	inorder(root, func(e Element[K, V]) {
		b.Append(e)
	})
}

// AppendAll appends a slice of elements already known to be sorted.
func (b *Builder[K, V]) AppendAll(elems []Element[K, V]) {
	for _, e := range elems {
		b.Append(e)
	}
}

func inorder[K Ordered, V any](n *node[K, V], f func(Element[K, V])) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		for _, e := range n.elements {
			f(e)
		}
		return
	}
	for i, e := range n.elements {
		inorder(n.children[i], f)
		f(e)
	}
	inorder(n.children[len(n.children)-1], f)
}

// Finish drains the buffered elements into a packed tree and returns its
// root and depth. The Builder is left empty and reusable.
func (b *Builder[K, V]) Finish() (*node[K, V], int) {
	elems := b.buffer
	b.buffer = nil
	b.hasLast = false
	if len(elems) == 0 {
		return nil, 0
	}
	nodes, seps := chunkLeaves(elems, b.keysPerNode)
	if len(seps) == len(nodes) {
		// The input ended on a promoted separator with no leaf after it:
		// fold it back into the last leaf, splitting that leaf if it overflows.
		last := nodes[len(nodes)-1]
		last.elements = append(last.elements, seps[len(seps)-1])
		last.recount()
		seps = seps[:len(seps)-1]
		if last.overfull(b.bnds.maxKeys) {
			s := last.split()
			nodes = append(nodes[:len(nodes)-1], s.left, s.right)
			seps = append(seps, s.separator)
		}
	}
	nodes, seps = fixTail(nodes, seps, b.bnds)
	depth := 0
	for len(nodes) > 1 {
		nodes, seps = groupLevel(nodes, seps, b.keysPerNode)
		nodes, seps = fixTail(nodes, seps, b.bnds)
		depth++
	}
	root := nodes[0]
	root.depth = depth
	return root, depth
}

// chunkLeaves packs a flat, sorted element slice into depth-0 nodes of up
// to keysPerNode elements each, taking the element immediately following
// each full leaf as the separator promoted to the level above — the
// "seal and promote" cascade of spec §4.4, unrolled for the leaf level.
func chunkLeaves[K Ordered, V any](elems []Element[K, V], keysPerNode int) ([]*node[K, V], []Element[K, V]) {
	var nodes []*node[K, V]
	var seps []Element[K, V]
	i := 0
	for i < len(elems) {
		end := i + keysPerNode
		if end > len(elems) {
			end = len(elems)
		}
		leaf := &node[K, V]{elements: append([]Element[K, V](nil), elems[i:end]...)}
		leaf.recount()
		nodes = append(nodes, leaf)
		i = end
		if i < len(elems) {
			seps = append(seps, elems[i])
			i++
		}
	}
	return nodes, seps
}

// groupLevel packs a row of same-depth nodes (with the separators between
// them) into a new row one level up, each new node holding up to
// keysPerNode of the separators and keysPerNode+1 of the children,
// returning the new row and the separators between its members.
func groupLevel[K Ordered, V any](nodes []*node[K, V], seps []Element[K, V], keysPerNode int) ([]*node[K, V], []Element[K, V]) {
	if len(nodes) <= 1 {
		return nodes, nil
	}
	var outNodes []*node[K, V]
	var outSeps []Element[K, V]
	i := 0
	for i < len(nodes) {
		n := &node[K, V]{depth: nodes[i].depth + 1}
		n.children = append(n.children, nodes[i])
		i++
		for len(n.elements) < keysPerNode && i < len(nodes) {
			n.elements = append(n.elements, seps[i-1])
			n.children = append(n.children, nodes[i])
			i++
		}
		n.recount()
		outNodes = append(outNodes, n)
		if i < len(nodes) {
			outSeps = append(outSeps, seps[i-1])
		}
	}
	return outNodes, outSeps
}

// fixTail redistributes elements between the last two same-depth nodes of
// a packed row when the final one is left underfull (possible whenever the
// input length is not a clean multiple of keysPerNode+1), restoring the
// non-root minimum-occupancy invariant.
func fixTail[K Ordered, V any](nodes []*node[K, V], seps []Element[K, V], bnds bounds) ([]*node[K, V], []Element[K, V]) {
	if len(nodes) < 2 {
		return nodes, seps
	}
	last := nodes[len(nodes)-1]
	if len(last.elements) >= bnds.minKeys {
		return nodes, seps
	}
	prev := nodes[len(nodes)-2]
	sep := seps[len(seps)-1]
	combined := append(append(append([]Element[K, V]{}, prev.elements...), sep), last.elements...)
	var combinedChildren []*node[K, V]
	if !prev.isLeaf() {
		combinedChildren = append(append([]*node[K, V]{}, prev.children...), last.children...)
	}
	if len(combined) <= bnds.maxKeys {
		merged := &node[K, V]{depth: prev.depth, elements: combined, children: combinedChildren}
		merged.recount()
		nodes = append(nodes[:len(nodes)-2], merged)
		seps = seps[:len(seps)-1]
		return nodes, seps
	}
	mid := len(combined) / 2
	newPrev := &node[K, V]{depth: prev.depth, elements: append([]Element[K, V](nil), combined[:mid]...)}
	newSep := combined[mid]
	newLast := &node[K, V]{depth: prev.depth, elements: append([]Element[K, V](nil), combined[mid+1:]...)}
	if combinedChildren != nil {
		splitAt := len(newPrev.elements) + 1
		newPrev.children = append([]*node[K, V](nil), combinedChildren[:splitAt]...)
		newLast.children = append([]*node[K, V](nil), combinedChildren[splitAt:]...)
	}
	newPrev.recount()
	newLast.recount()
	nodes = append(nodes[:len(nodes)-2], newPrev, newLast)
	seps = append(seps[:len(seps)-1], newSep)
	return nodes, seps
}

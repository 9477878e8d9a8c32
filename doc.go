/*
Package btree implements a persistent (copy-on-write) in-memory B-tree.

Every mutation of a Tree returns a new incarnation; the old incarnation
remains valid and most of its nodes are shared with the new one. This is
the same value-semantic, structural-sharing discipline used throughout
github.com/npillmayer/fp/persistent — btree generalizes the narrower,
key-only core found there (persistent/btree) into a full ordered-collection
engine addressable by key or by offset, with cursors for amortized
sequential edits, a linear-time bulk builder, O(log n) join/split, and a
set-algebra merge that exploits shared subtrees.

The package is the core consumed by the ordmap, ordset, ordbag and ordlist
façades; it has no file, network, or serialization surface of its own.

A good introduction to B-trees and their algorithms may be found at
https://algorithmtutor.com/Data-Structures/Tree/B-Trees/.
*/
package btree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'obtree.core'.
func tracer() tracing.Trace {
	return tracing.Select("obtree.core")
}

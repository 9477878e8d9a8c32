package btree

import "golang.org/x/exp/constraints"

// Ordered is the constraint satisfied by any type usable as a B-tree key:
// a type with a total order expressible through the built-in comparison
// operators. Keys may repeat; duplicates are ordered by insertion (stable).
type Ordered = constraints.Ordered

// Element is an ordered (key, value) pair held in a tree node.
type Element[K Ordered, V any] struct {
	Key   K
	Value V
}

// Selector disambiguates duplicate keys for key-addressed operations.
//
// Any behaves as First at this implementation's discretion (see DESIGN.md,
// open question O1); callers that depend on duplicate-key ordering should
// use First, Last or After explicitly.
type Selector int

const (
	First Selector = iota
	Last
	After
	Any
)

func (s Selector) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	case After:
		return "After"
	case Any:
		return "Any"
	default:
		return "Selector(?)"
	}
}

// Strategy disambiguates duplicate-key handling in set-algebra operations
// (Union, Intersection, Difference, SymmetricDifference).
type Strategy int

const (
	// Grouping treats a run of equal keys as a single group; set-algebra
	// actions are applied once per group.
	Grouping Strategy = iota
	// Counting treats equal keys as matched positionally by count: n
	// copies of a key in A are matched against m copies in B as min(n,m),
	// with the remainder carried as leftover.
	Counting
)

func (s Strategy) String() string {
	if s == Counting {
		return "Counting"
	}
	return "Grouping"
}

// compare is the three-way comparator used throughout the core, mirroring
// the (key, itemKey, agg) comparator convention of the teacher's
// Ext.Cmp/comparator type in persistent/btree.
func compare[K Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

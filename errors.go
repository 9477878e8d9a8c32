package btree

import "fmt"

// assertThat panics with a formatted message when the condition does not
// hold. Used at every contract boundary described in spec §7 ("contract
// violation" category): out-of-range offsets, cursor misuse, and internal
// invariants that a correct caller can never trigger. This is the teacher's
// own assertThat from persistent/btree/internals.go, unchanged in spirit.
func assertThat(that bool, msg string, args ...interface{}) {
	if !that {
		panic(fmt.Sprintf("btree: "+msg, args...))
	}
}

// bounds holds the size constants derived from a tree's order (spec §3).
type bounds struct {
	maxKeys     int
	minKeys     int
	maxChildren int
	minChildren int
}

func boundsFor(order int) bounds {
	assertThat(order >= 3 && order%2 == 1, "order must be an odd integer >= 3, got %d", order)
	return bounds{
		maxKeys:     order - 1,
		minKeys:     (order - 1) / 2,
		maxChildren: order,
		minChildren: (order + 1) / 2,
	}
}

// DefaultOrder is chosen, as spec §6 prescribes, so that one node's element
// slice fits comfortably in a handful of cache lines for typical small key
// and value types — the same ballpark the teacher's defaultLowWaterMark (3,
// i.e. 2^n-1) targets for its own low/high water marks.
const DefaultOrder = 31

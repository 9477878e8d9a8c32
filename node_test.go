package btree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func quiet(t *testing.T) func() {
	teardown := gotestingadapter.QuickConfig(t, "obtree.core")
	tracer().SetTraceLevel(tracing.LevelError)
	return teardown
}

func leafOf(keys ...int) *node[int, string] {
	n := &node[int, string]{}
	for _, k := range keys {
		n.elements = append(n.elements, Element[int, string]{Key: k})
	}
	n.recount()
	return n
}

func TestNodeSlotOfKeySelectors(t *testing.T) {
	defer quiet(t)()
	n := leafOf(1, 3, 3, 3, 5)
	if idx, found, _ := n.slotOfKey(3, First); !found || idx != 1 {
		t.Errorf("First: expected (1,true), got (%d,%v)", idx, found)
	}
	if idx, found, _ := n.slotOfKey(3, Last); !found || idx != 3 {
		t.Errorf("Last: expected (3,true), got (%d,%v)", idx, found)
	}
	if idx, found, _ := n.slotOfKey(3, After); found || idx != 4 {
		t.Errorf("After: expected (4,false), got (%d,%v)", idx, found)
	}
	if idx, found, _ := n.slotOfKey(4, First); found || idx != 4 {
		t.Errorf("absent key: expected (4,false), got (%d,%v)", idx, found)
	}
}

func TestNodeSlotOfOffsetLeaf(t *testing.T) {
	defer quiet(t)()
	n := leafOf(10, 20, 30)
	idx, match, _ := n.slotOfOffset(1)
	if !match || idx != 1 {
		t.Errorf("expected match at idx=1, got idx=%d match=%v", idx, match)
	}
	idx, match, _ = n.slotOfOffset(3)
	if match || idx != 3 {
		t.Errorf("expected end sentinel at idx=3, got idx=%d match=%v", idx, match)
	}
}

func TestNodeCloneIsIndependent(t *testing.T) {
	defer quiet(t)()
	n := leafOf(1, 2, 3)
	cl := n.clone()
	cl.elements[0].Key = 99
	if n.elements[0].Key == 99 {
		t.Error("mutating a clone's elements must not affect the original")
	}
}

func TestNodeSplitAtMedian(t *testing.T) {
	defer quiet(t)()
	n := leafOf(1, 2, 3, 4, 5)
	s := n.split()
	if len(s.left.elements) != 2 || len(s.right.elements) != 2 {
		t.Fatalf("expected 2/2 split around the median, got %d/%d", len(s.left.elements), len(s.right.elements))
	}
	if s.separator.Key != 3 {
		t.Errorf("expected separator key 3, got %d", s.separator.Key)
	}
}

func TestNodeWithInsertedAndRemoved(t *testing.T) {
	defer quiet(t)()
	n := leafOf(1, 2, 4)
	ins := n.withInserted(Element[int, string]{Key: 3}, 2)
	if len(ins.elements) != 4 || ins.elements[2].Key != 3 {
		t.Fatalf("unexpected shape after insert: %v", ins.elements)
	}
	rem, old := ins.withRemoved(2)
	if old.Key != 3 || len(rem.elements) != 3 {
		t.Fatalf("unexpected shape after remove: %v (removed %v)", rem.elements, old)
	}
}

func TestNodeFixDeficiencyRotatesBeforeCollapsing(t *testing.T) {
	defer quiet(t)()
	left := leafOf(1)
	right := leafOf(10, 20, 30)
	parent := &node[int, string]{
		elements: []Element[int, string]{{Key: 5}},
		children: []*node[int, string]{left, right},
	}
	parent.recount()
	repaired := parent.fixDeficiency(0, 1)
	if len(repaired.children[0].elements) != 2 {
		t.Fatalf("expected rotation to leave left child with 2 elements, has %d", len(repaired.children[0].elements))
	}
	if len(repaired.children[1].elements) != 2 {
		t.Fatalf("expected rotation to leave right child with 2 elements, has %d", len(repaired.children[1].elements))
	}
}

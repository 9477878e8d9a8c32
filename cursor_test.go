package btree

import "testing"

func treeFromSortedInts(n int) Tree[int, int] {
	return FromSorted(sortedInts(n), Order[int, int](5))
}

func TestCursorSetValueLeavesKeysAndShapeUntouched(t *testing.T) {
	defer quiet(t)()
	tr := treeFromSortedInts(50)
	out := tr.WithCursorAtOffset(10, func(c *Cursor[int, int]) {
		c.SetValue(-1)
	})
	if out.Len() != tr.Len() {
		t.Fatalf("expected length unchanged, got %d vs %d", out.Len(), tr.Len())
	}
	if out.At(10).Value != -1 {
		t.Errorf("expected value -1 at offset 10, got %d", out.At(10).Value)
	}
	if out.At(10).Key != 10 {
		t.Errorf("key must not change, got %d", out.At(10).Key)
	}
	// original tree must be untouched (persistence).
	if tr.At(10).Value != 100 {
		t.Errorf("original tree's value at offset 10 was mutated: got %d", tr.At(10).Value)
	}
}

func TestCursorInsertBeforeAndAfter(t *testing.T) {
	defer quiet(t)()
	tr := treeFromSortedInts(10)
	out := tr.WithCursorAtOffset(5, func(c *Cursor[int, int]) {
		c.InsertBefore(Element[int, int]{Key: 100, Value: 100})
		if c.Element().Key != 5 {
			t.Errorf("expected cursor to land one past the inserted element (on 5), got %d", c.Element().Key)
		}
		c.InsertAfter(Element[int, int]{Key: 101, Value: 101})
		if c.Element().Key != 101 {
			t.Errorf("expected cursor to land on the newly inserted element 101, got %d", c.Element().Key)
		}
	})
	if out.Len() != 12 {
		t.Fatalf("expected 12 elements, got %d", out.Len())
	}
	got := out.ToSlice()
	want := []int{0, 1, 2, 3, 4, 100, 5, 101, 6, 7, 8, 9}
	for i, e := range got {
		if e.Key != want[i] {
			t.Errorf("position %d: got %d, want %d", i, e.Key, want[i])
		}
	}
}

// TestCursorRepeatedInsertAfterBuildsAscendingSequence replicates scenario
// 6: repeated InsertAfter from the start builds an ascending run, because
// each call now leaves the cursor on the element it just inserted.
func TestCursorRepeatedInsertAfterBuildsAscendingSequence(t *testing.T) {
	defer quiet(t)()
	out := Empty[int, int](Order[int, int](5)).WithCursorAtStart(func(c *Cursor[int, int]) {
		for i := 1; i <= 30; i++ {
			c.InsertAfter(Element[int, int]{Key: i, Value: i})
		}
	})
	out = out.WithCursorAtStart(func(c *Cursor[int, int]) {
		c.InsertBefore(Element[int, int]{Key: 0, Value: 0})
	})
	if out.Len() != 31 {
		t.Fatalf("expected 31 elements, got %d", out.Len())
	}
	got := keysOfElemsAny(out.ToSlice())
	for i, k := range got {
		if k != i {
			t.Fatalf("position %d: got %d, want %d (full sequence %v)", i, k, i, got)
		}
	}
}

// TestCursorRepeatedInsertBeforeGrowsOrderedPrefix mirrors the ascending
// case for InsertBefore: with a fixed anchor element, repeated InsertBefore
// calls in ascending key order grow an ordered prefix in front of the
// anchor, since each call leaves the cursor one past its own insertion —
// back on the same anchor, now shifted one further to the right.
func TestCursorRepeatedInsertBeforeGrowsOrderedPrefix(t *testing.T) {
	defer quiet(t)()
	base := FromSorted([]Element[int, int]{{Key: 100, Value: 100}}, Order[int, int](5))
	out := base.WithCursorAtOffset(0, func(c *Cursor[int, int]) {
		for i := 1; i <= 30; i++ {
			c.InsertBefore(Element[int, int]{Key: i, Value: i})
		}
	})
	if out.Len() != 31 {
		t.Fatalf("expected 31 elements, got %d", out.Len())
	}
	got := keysOfElemsAny(out.ToSlice())
	for i := 0; i < 30; i++ {
		if got[i] != i+1 {
			t.Fatalf("position %d: got %d, want %d (full sequence %v)", i, got[i], i+1, got)
		}
	}
	if got[30] != 100 {
		t.Fatalf("expected anchor 100 last, got %v", got)
	}
}

func TestCursorRemoveSequentialForward(t *testing.T) {
	defer quiet(t)()
	tr := treeFromSortedInts(20)
	out := tr.WithCursorAtOffset(0, func(c *Cursor[int, int]) {
		for !c.AtEnd() {
			e := c.Element()
			if e.Key%2 == 0 {
				c.Remove()
			} else {
				c.MoveForward()
			}
		}
	})
	got := keysOfElemsAny(out.ToSlice())
	for _, k := range got {
		if k%2 == 0 {
			t.Fatalf("expected only odd keys left, found %d in %v", k, got)
		}
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 elements, got %d: %v", len(got), got)
	}
}

func keysOfElemsAny(es []Element[int, int]) []int {
	out := make([]int, len(es))
	for i, e := range es {
		out[i] = e.Key
	}
	return out
}

func TestCursorMoveBackwardAtStartPanics(t *testing.T) {
	defer quiet(t)()
	tr := treeFromSortedInts(5)
	defer func() {
		if recover() == nil {
			t.Error("expected a panic moving backward from offset 0")
		}
	}()
	tr.WithCursorAtStart(func(c *Cursor[int, int]) {
		c.MoveBackward()
	})
}

func TestWithCursorRepairsTreeEvenIfCallbackPanics(t *testing.T) {
	defer quiet(t)()
	tr := treeFromSortedInts(30)
	func() {
		defer func() { recover() }()
		tr.WithCursorAtOffset(0, func(c *Cursor[int, int]) {
			c.Remove()
			c.MoveForward()
			c.Remove()
			panic("injected failure mid-edit")
		})
	}()
	// The original tree must still be intact and independently valid,
	// since WithCursor* never mutates the receiver.
	if tr.Len() != 30 {
		t.Fatalf("original tree length changed: %d", tr.Len())
	}
	got := tr.ToSlice()
	for i, e := range got {
		if e.Key != i {
			t.Errorf("position %d: got %d", i, e.Key)
		}
	}
}

func TestWithCursorAtKeyLandsOnInsertionPointWhenAbsent(t *testing.T) {
	defer quiet(t)()
	tr := treeFromSortedInts(10)
	out := tr.WithCursorAtKey(1000, First, func(c *Cursor[int, int]) {
		if !c.AtEnd() {
			t.Errorf("expected cursor at end sentinel for an absent, larger key")
		}
		c.InsertBefore(Element[int, int]{Key: 1000, Value: 1000})
	})
	if out.Len() != 11 {
		t.Fatalf("expected 11 elements, got %d", out.Len())
	}
	last, _ := out.Last()
	if last.Key != 1000 {
		t.Errorf("expected last key 1000, got %d", last.Key)
	}
}

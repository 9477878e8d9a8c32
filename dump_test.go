package btree

import (
	"fmt"
	"testing"

	tp "github.com/xlab/treeprint"
)

// printTree renders a tree's shape for t.Logf debugging, mirroring the
// teacher's own printTree/ppt helpers in persistent/btree/btree_test.go.
func printTree[K Ordered, V any](tr Tree[K, V]) string {
	header := fmt.Sprintf("\nTree(depth=%d order=%d len=%d)\n", tr.depth, tr.order, tr.count)
	p := tp.New()
	ppt(p, tr.root)
	return header + p.String() + "\n"
}

func ppt[K Ordered, V any](p tp.Tree, n *node[K, V]) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		p.AddNode(nodeString(n))
		return
	}
	branch := p.AddBranch(nodeString(n))
	for _, ch := range n.children {
		ppt(branch, ch)
	}
}

func TestPrintTreeRendersShape(t *testing.T) {
	defer quiet(t)()
	tr := treeFromSortedInts(40)
	s := printTree(tr)
	if len(s) == 0 {
		t.Fatal("expected a non-empty dump")
	}
	t.Logf("tree = %s", s)
}

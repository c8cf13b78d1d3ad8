package apriori

import (
	"fmt"
	"io"
	"strings"
)

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// DebugString is a wrapper around Dump returning the rendered tree as a
// string, grounded on the teacher's dumpString/dump split (dumper.go).
func (t *Tree) DebugString() string {
	w := new(strings.Builder)
	t.Dump(w)
	return w.String()
}

// Dump writes a human-readable rendering of every materialized node --
// its depth, edge-item path, counter layout, every counter (SKIP-flagged
// ones marked with "!") and perfect extensions -- to w. Intended for
// debugging and tests, not for any machine-readable output format.
func (t *Tree) Dump(w io.Writer) {
	if t == nil || t.root == nil {
		return
	}
	fmt.Fprintf(w, "### height(%d) totalWeight(%d)\n", t.Height(), t.TotalWeight())
	t.root.dumpRec(w, nil, 0)
}

func (n *node) dumpRec(w io.Writer, path []int32, depth int) {
	n.dump(w, path, depth)
	for _, c := range n.children {
		childPath := append(append([]int32(nil), path...), c.item)
		c.dumpRec(w, childPath, depth+1)
	}
}

func (n *node) dump(w io.Writer, path []int32, depth int) {
	indent := strings.Repeat(".", depth)
	fmt.Fprintf(w, "%s[depth %d] path %v layout %s\n", indent, depth, path, n.layout)

	if n.size() == 0 {
		return
	}
	fmt.Fprintf(w, "%scounters(#%d):", indent, n.size())
	for i := 0; i < n.size(); i++ {
		item := n.itemAt(i)
		mark := ""
		if n.isSkipped(i) {
			mark = "!"
		}
		fmt.Fprintf(w, " %d%s=%d", item, mark, n.counts[i])
	}
	fmt.Fprintln(w)

	if len(n.perfectExt) > 0 {
		fmt.Fprintf(w, "%sperfectExt: %v\n", indent, n.perfectExt)
	}
}

// String implements Stringer for layout.
func (l layout) String() string {
	switch l {
	case layoutDense:
		return "DENSE"
	case layoutSparse:
		return "SPARSE"
	default:
		return "unreachable"
	}
}

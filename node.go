package apriori

import "github.com/freqmine/apriori/internal/arrays"

// layout distinguishes the two counter-window representations a node can
// take. The spec's sign-bit-encoded offset (offset < 0 means sparse)
// becomes an explicit field here, per the arena-and-indices design note:
// branch prediction recovers the cost, and there is no bit-masking left to
// get wrong.
type layout uint8

const (
	layoutDense layout = iota
	layoutSparse
)

// node represents the set of itemsets sharing a common prefix: the path
// from the root to this node, each edge labeled by one item. A node holds
// counters for the next item appended to that prefix, a window that is
// dense (a contiguous item range addressed by offset) or sparse (an
// ascending item-id map parallel to the counters), whichever is smaller.
type node struct {
	parent *node
	next   *node // next sibling in this level's linked list

	item     int32 // edge item from parent to this node (root: -1)
	headOnly bool  // HEAD-only flag on the edge item

	layout layout
	offset int32 // dense only: counts[i] belongs to item offset+i
	items  []int32 // sparse only: ascending item ids, parallel to counts

	counts  []uint64
	skipped []bool // SKIP flag per counter, set by mark/prune passes

	subtreeSkip bool  // whole subtree has no new children, cut on next count
	children    []*node // sorted ascending by child.item

	perfectExt []int32 // items that are perfect extensions of this node's set
}

func newNode(parent *node, item int32, headOnly bool) *node {
	return &node{parent: parent, item: item, headOnly: headOnly}
}

// size is the width of the counter window.
func (n *node) size() int { return len(n.counts) }

// getCounterIndex returns the position of item's counter in this node's
// window, or -1-insertionPos on a miss, matching spec.md §4.1.
func (n *node) getCounterIndex(item int32) int {
	switch n.layout {
	case layoutDense:
		i := int(item - n.offset)
		if i < 0 {
			return -1
		}
		if i >= n.size() {
			return -1 - n.size()
		}
		return i
	default:
		idx, found := arrays.Search(n.items, item)
		if found {
			return idx
		}
		return -1 - idx
	}
}

// getChildIndex returns the position of the child reached by edge item, or
// -1-insertionPos on a miss. Children are always a sorted slice searched
// by binary search, dense or sparse parent alike -- the spec's dense child
// "index arithmetic" collapses to this since children are sparse by
// nature (only a subset of counters ever grow a child).
func (n *node) getChildIndex(item int32) int {
	lo, hi := 0, len(n.children)
	for lo < hi {
		mid := (lo + hi) / 2
		if n.children[mid].item < item {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(n.children) && n.children[lo].item == item {
		return lo
	}
	return -1 - lo
}

// child returns the child reached by edge item, or nil.
func (n *node) child(item int32) *node {
	if i := n.getChildIndex(item); i >= 0 {
		return n.children[i]
	}
	return nil
}

// support returns the counter for item in this node's window, and whether
// it exists at all (out of window is reported as !ok, never as zero).
func (n *node) support(item int32) (supp uint64, ok bool) {
	i := n.getCounterIndex(item)
	if i < 0 {
		return 0, false
	}
	return n.counts[i], true
}

// getSupport descends from n through path (a sequence of edge items) and
// returns the counter reached at the final item, or ok=false the moment
// any step falls outside the window or hits a missing child. It never
// allocates and never mutates n.
func (n *node) getSupport(path []int32) (supp uint64, ok bool) {
	if len(path) == 0 {
		return 0, false
	}
	cur := n
	for _, item := range path[:len(path)-1] {
		cur = cur.child(item)
		if cur == nil {
			return 0, false
		}
	}
	return cur.support(path[len(path)-1])
}

// locate descends from n through path and returns the node and index
// holding the final item's counter, or ok=false the moment any step
// falls outside the window or hits a missing child. Unlike getSupport it
// reports the location itself, so callers can flag it (mark.go).
func (n *node) locate(path []int32) (*node, int, bool) {
	if len(path) == 0 {
		return nil, 0, false
	}
	cur := n
	for _, item := range path[:len(path)-1] {
		cur = cur.child(item)
		if cur == nil {
			return nil, 0, false
		}
	}
	idx := cur.getCounterIndex(path[len(path)-1])
	if idx < 0 {
		return nil, 0, false
	}
	return cur, idx, true
}

// isSkipped reports whether the counter at idx carries the SKIP flag.
func (n *node) isSkipped(idx int) bool {
	return n.skipped != nil && n.skipped[idx]
}

// setSkipped flips the SKIP flag on the counter at idx, allocating the
// parallel slice lazily (most nodes never need it).
func (n *node) setSkipped(idx int, v bool) {
	if n.skipped == nil {
		if !v {
			return
		}
		n.skipped = make([]bool, n.size())
	}
	n.skipped[idx] = v
}

// itemAt returns the item that counts[idx] belongs to.
func (n *node) itemAt(idx int) int32 {
	if n.layout == layoutDense {
		return n.offset + int32(idx)
	}
	return n.items[idx]
}

// path writes the edge items from the root down to n (inclusive of n's
// own edge item) into buf, which must have capacity for n's depth, and
// returns the filled prefix. Used by extraction and evaluation to
// reconstruct a set from a node.
func (n *node) path(buf []int32) []int32 {
	depth := n.depth()
	if cap(buf) < depth {
		buf = make([]int32, depth)
	}
	buf = buf[:depth]
	for cur, i := n, depth-1; cur.parent != nil; cur, i = cur.parent, i-1 {
		buf[i] = cur.item
	}
	return buf
}

// depth is the number of edges from the root to n.
func (n *node) depth() int {
	d := 0
	for cur := n; cur.parent != nil; cur = cur.parent {
		d++
	}
	return d
}

// buildWindow replaces n's counter window with one sized for the ascending
// item list items, choosing dense or sparse layout by spec.md §4.2's rule:
// dense when 2*n >= lastItem-firstItem+1, else sparse. A dense window has
// one counter for every item from the first to the last, so items absent
// from the list are still counted in it.
func (n *node) buildWindow(items []int32) {
	cnt := len(items)
	n.counts = make([]uint64, cnt)
	n.skipped = nil

	if cnt == 0 {
		n.layout = layoutDense
		n.offset = 0
		n.items = nil
		return
	}

	span := items[cnt-1] - items[0] + 1
	if int64(2*cnt) >= int64(span) {
		n.layout = layoutDense
		n.offset = items[0]
		n.counts = make([]uint64, span)
		n.items = nil
		return
	}

	n.layout = layoutSparse
	n.items = append([]int32(nil), items...)
}

// removeChild deletes the child reached by edge item, if present.
func (n *node) removeChild(item int32) {
	i := n.getChildIndex(item)
	if i < 0 {
		return
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
}

// compact shrinks n's counter window per spec.md §4.5: a dense window to
// the run from the first to the last index whose support is >= supp
// (interior entries below supp stay), a sparse window to exactly the
// entries whose support is >= supp. It reports whether any
// counter survived; a false result means n is now empty and should be
// dropped from its parent and from the level list.
func (n *node) compact(supp uint64) bool {
	first, last := -1, -1
	for i, c := range n.counts {
		if c >= supp {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		n.counts = nil
		n.items = nil
		return false
	}
	if first == 0 && last == len(n.counts)-1 {
		return true
	}

	switch n.layout {
	case layoutDense:
		n.offset += int32(first)
		n.counts = append([]uint64(nil), n.counts[first:last+1]...)
	default:
		kept := make([]int32, 0, last-first+1)
		keptCounts := make([]uint64, 0, last-first+1)
		for i := first; i <= last; i++ {
			if n.counts[i] >= supp {
				kept = append(kept, n.items[i])
				keptCounts = append(keptCounts, n.counts[i])
			}
		}
		n.items = kept
		n.counts = keptCounts
	}
	n.skipped = nil
	return true
}

// addChild inserts child into n's sorted children slice. Children are
// rare relative to counters (only items that survive pruning grow a
// level), so a linear insert is the idiomatic, low-overhead choice here.
func (n *node) addChild(c *node) {
	i := n.getChildIndex(c.item)
	if i >= 0 {
		n.children[i] = c
		return
	}
	i = -1 - i
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
}

package apriori

// Prune compacts the deepest level after a counting pass (spec.md §4.5):
// each deepest node's counter window shrinks to its surviving (>=supp)
// entries; nodes left with no surviving counters are detached from their
// parent and from the level list, and a parent that loses every child is
// flagged subtreeSkip so the next counting pass can cut it early.
func (t *Tree) Prune() {
	supp := t.cfg.minSupport
	deepest := len(t.levels) - 1
	if deepest < 0 {
		return
	}

	touched := make(map[*node]struct{})
	var newHead, newTail *node

	for n := t.levels[deepest]; n != nil; {
		next := n.next
		n.next = nil

		if n.compact(supp) {
			if newHead == nil {
				newHead = n
			} else {
				newTail.next = n
			}
			newTail = n
		} else if n.parent != nil {
			n.parent.removeChild(n.item)
			touched[n.parent] = struct{}{}
		}
		n = next
	}
	t.levels[deepest] = newHead

	for parent := range touched {
		if len(parent.children) == 0 {
			parent.subtreeSkip = true
		}
	}
}

// Check marks which items appear anywhere in the tree's still-live
// nodes -- either as a surviving counter or as an edge item on some
// node's path -- per spec.md §4.5's "used to let external collaborators
// drop unused items before the next pass." The returned slice is indexed
// by item id.
func (t *Tree) Check() []bool {
	used := make([]bool, t.base.NumItems())
	var walk func(n *node)
	walk = func(n *node) {
		if n.item >= 0 && int(n.item) < len(used) {
			used[n.item] = true
		}
		for i := 0; i < n.size(); i++ {
			item := n.itemAt(i)
			if int(item) < len(used) {
				used[item] = true
			}
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return used
}

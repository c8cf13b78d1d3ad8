package apriori

// Count runs one counting pass over source, depositing each transaction's
// weight into the matching counters of the tree's current deepest level,
// and accumulates TotalWeight as the sum of every transaction's weight
// (the support of the empty set). It is read-only on transactions and
// write-only on counters: no node is allocated or restructured here, so a
// counting pass may run any number of times between AddLevel calls without
// changing the tree's topology, per spec.md §5.
func (t *Tree) Count(source TransactionSource) error {
	remaining := t.Height() - 1
	source.All(func(items []int32, weight uint64) bool {
		t.totalWeight += weight
		t.countTransaction(t.root, items, weight, remaining)
		return true
	})
	return nil
}

// CountTree is Count driven by a prefix-compressed transaction tree: common
// prefixes across many transactions are walked once instead of once per
// transaction.
func (t *Tree) CountTree(source TxTreeNode) error {
	remaining := t.Height() - 1
	t.totalWeight += source.Weight()
	t.countTransactionTree(t.root, source, remaining)
	return nil
}

// countTransaction walks n against one transaction's ascending item list,
// consuming one list position per level descended, per spec.md §4.3.
// remaining counts the further descents still needed before n is the
// level whose counters should receive weight.
func (t *Tree) countTransaction(n *node, items []int32, weight uint64, remaining int) {
	if remaining == 0 {
		depositWindow(n, items, weight)
		return
	}
	if len(n.children) == 0 {
		return
	}

	// merge-walk: both items and n.children are ascending by item, so a
	// single linear pass finds every match in O(len(items)+len(children)).
	i, ci := 0, 0
	for i < len(items) && ci < len(n.children) {
		c := n.children[ci]
		switch {
		case items[i] < c.item:
			i++
		case items[i] > c.item:
			ci++
		default:
			if !c.subtreeSkip {
				t.countTransaction(c, items[i+1:], weight, remaining-1)
			}
			i++
			ci++
		}
	}
}

// countTransactionTree is countTransaction's analog over a prefix-
// compressed transaction tree. For each candidate item reachable from tn
// (at any depth, not just tn's immediate children, since transactions may
// contain items irrelevant to this node's window interleaved with
// relevant ones) it either matches an itemset-tree child of n -- deepening
// both traversals together -- or is searched for further down the same
// transaction-tree branch without consuming an itemset-tree level.
//
// tn.MaxDepth() < remaining is the documented fix for a likely source bug
// (spec.md §9): the original negated the comparison before testing it;
// the intended, non-negated semantics is to skip a subtree that cannot
// possibly contain enough further items to reach the requested depth.
func (t *Tree) countTransactionTree(n *node, tn TxTreeNode, remaining int) {
	if tn.MaxDepth() < remaining {
		return
	}
	if remaining == 0 {
		depositTxSubtree(n, tn)
		return
	}
	if len(n.children) == 0 {
		return
	}
	if tn.Size() == 0 {
		t.countTransaction(n, tn.Items(), tn.Weight(), remaining)
		return
	}

	for i := 0; i < tn.Size(); i++ {
		c := tn.Child(i)
		if nc := n.child(c.Item()); nc != nil && !nc.subtreeSkip {
			t.countTransactionTree(nc, c, remaining-1)
		}
		// same n, same remaining: look deeper in this branch for items
		// that match a *different* child of n.
		t.countTransactionTree(n, c, remaining)
	}
}

// depositWindow adds weight to every counter in n's window whose item is
// present in the ascending, deduplicated items list.
func depositWindow(n *node, items []int32, weight uint64) {
	if len(items) == 0 || n.size() == 0 {
		return
	}
	if n.layout == layoutDense {
		lo, hi := n.offset, n.offset+int32(n.size())
		for _, it := range items {
			if it < lo {
				continue
			}
			if it >= hi {
				break
			}
			n.counts[it-lo] += weight
		}
		return
	}
	// sparse: merge-walk the two ascending lists.
	i, j := 0, 0
	for i < len(items) && j < len(n.items) {
		switch {
		case items[i] < n.items[j]:
			i++
		case items[i] > n.items[j]:
			j++
		default:
			n.counts[j] += weight
			i++
			j++
		}
	}
}

// depositTxSubtree deposits every item reachable from tn -- its own edge
// item, and everything under it -- into n's window, each with the weight
// of the transaction-tree (sub)node it was found at.
func depositTxSubtree(n *node, tn TxTreeNode) {
	if idx := n.getCounterIndex(tn.Item()); idx >= 0 {
		n.counts[idx] += tn.Weight()
	}
	if tn.Size() == 0 {
		depositWindow(n, tn.Items(), tn.Weight())
		return
	}
	for i := 0; i < tn.Size(); i++ {
		depositTxSubtree(n, tn.Child(i))
	}
}

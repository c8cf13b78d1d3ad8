package apriori

import "github.com/freqmine/apriori/internal/arrays"

// bodyBit tracks which of the three body-support checks spec.md §4.2.4
// passed while scanning a candidate pair, so a candidate whose body
// support is demonstrably nowhere on the path can be dropped even when it
// would otherwise be frequent -- the set would be useless as a future
// rule body.
const (
	bodyBitDirect   = 1 << 0 // the direct set (path(N)+item_i) has body support
	bodyBitCandidate = 1 << 1 // the candidate-item counter (path(N)+item_j) has body support
	bodyBitAncestor = 1 << 2 // some ancestor-dropped subset has body support
)

// AddLevel grows the tree by one level from the just-counted deepest
// level, per spec.md §4.2. It reports whether any new node was created;
// false means the mining run has converged and Run/RunTree should stop.
func (t *Tree) AddLevel() (bool, error) {
	if len(t.levels) >= t.cfg.maxDepth {
		return false, nil
	}

	old := t.levels[len(t.levels)-1]
	var newHead, newTail *node
	grew := false

	for n := old; n != nil; n = n.next {
		children := t.buildChildren(n)
		for _, c := range children {
			n.addChild(c)
			if newHead == nil {
				newHead = c
			} else {
				newTail.next = c
			}
			newTail = c
			grew = true
		}
	}

	if !grew {
		return false, nil
	}

	t.levels = append(t.levels, newHead)
	t.markDeadSubtrees()
	return true, nil
}

// buildChildren generates every candidate child of n: for each item i
// whose counter in n qualifies, a node whose window holds every item j>i
// surviving the item, support, subset-support, and rule-body filters.
func (t *Tree) buildChildren(n *node) []*node {
	supp := t.cfg.minSupport
	rule := t.cfg.ruleSupport
	spx := t.perfectExtensionSupport(n)

	var perfectExt []int32
	if t.cfg.perfectExtension {
		for x := 0; x < n.size(); x++ {
			if n.counts[x] >= supp && n.counts[x] == spx {
				perfectExt = append(perfectExt, n.itemAt(x))
			}
		}
		n.perfectExt = perfectExt
	}

	ancestors := ancestorChain(n)
	path := t.pathOf(n)

	var children []*node
	for i := 0; i < n.size(); i++ {
		if n.counts[i] < supp {
			continue
		}
		itemI := n.itemAt(i)
		if t.appearance(itemI) == Ignore {
			continue
		}
		if t.cfg.perfectExtension {
			if _, found := arrays.Search(perfectExt, itemI); found {
				continue
			}
		}

		items := t.candidateItems(n, i, itemI, spx, perfectExt, ancestors, path, rule)
		if len(items) == 0 {
			continue
		}

		headOnly := n.headOnly || t.appearance(itemI) == HeadOnly
		child := newNode(n, itemI, headOnly)
		child.buildWindow(items)
		children = append(children, child)
	}
	return children
}

// candidateItems scans j in (i, n.size()) and returns the ascending item
// ids that survive every filter in spec.md §4.2 for the child built on
// edge item itemI.
func (t *Tree) candidateItems(n *node, i int, itemI int32, spx uint64, perfectExt []int32, ancestors []*node, path []int32, rule uint64) []int32 {
	supp := t.cfg.minSupport
	var items []int32

	for j := i + 1; j < n.size(); j++ {
		itemJ := n.itemAt(j)

		// 1. item-only filters
		if t.appearance(itemJ) == Ignore {
			continue
		}
		if (n.headOnly && t.appearance(itemJ) == HeadOnly) ||
			(t.appearance(itemI) == HeadOnly && t.appearance(itemJ) == HeadOnly) {
			continue
		}

		// 2. direct support filter
		if n.counts[j] < supp {
			continue
		}
		if t.cfg.perfectExtension {
			if _, found := arrays.Search(perfectExt, itemJ); found {
				continue
			}
		}

		// 3. subset support filter (Apriori property) + 4. body tracking
		bodyBits := uint8(0)
		if n.counts[i] >= rule {
			bodyBits |= bodyBitDirect
		}
		if n.counts[j] >= rule {
			bodyBits |= bodyBitCandidate
		}

		if ok := t.checkAncestorSubsets(ancestors, path, itemI, itemJ, supp, rule, &bodyBits); !ok {
			continue
		}

		if bodyBits == 0 {
			continue
		}

		items = append(items, itemJ)
	}
	return items
}

// checkAncestorSubsets verifies the Apriori property for every subset of
// the candidate (k+2)-itemset formed by dropping one ancestor item from
// path(n), by querying that ancestor's parent. Sets bodyBitAncestor when
// any dropped subset clears the rule-body threshold.
func (t *Tree) checkAncestorSubsets(ancestors []*node, path []int32, itemI, itemJ int32, supp, rule uint64, bodyBits *uint8) bool {
	depth := len(path)
	subPath := t.scratchPath(depth + 2)[:0]
	for m := 0; m < depth; m++ {
		subPath = subPath[:0]
		subPath = append(subPath, path[m+1:]...)
		subPath = append(subPath, itemI, itemJ)

		s, ok := ancestors[m].getSupport(subPath)
		if !ok || s < supp {
			return false
		}
		if s >= rule {
			*bodyBits |= bodyBitAncestor
		}
	}
	return true
}

// ancestorChain returns the nodes from root (index 0) to n (last index),
// used to find "that ancestor's parent" for each dropped-item subset
// check without re-walking .parent pointers per candidate pair.
func ancestorChain(n *node) []*node {
	depth := n.depth()
	chain := make([]*node, depth+1)
	cur := n
	for d := depth; d >= 0; d-- {
		chain[d] = cur
		cur = cur.parent
	}
	return chain
}

// supportOf returns the support of the set represented by n: the tree's
// total weight for the root (the empty set), otherwise the counter n's
// parent holds for n's own edge item.
func (t *Tree) supportOf(n *node) uint64 {
	if n.parent == nil {
		return t.totalWeight
	}
	s, _ := n.parent.support(n.item)
	return s
}

// perfectExtensionSupport is spx: the support of the set represented by n
// with n's own edge item removed, i.e. the support of n's parent's set.
// An item whose counter in n equals spx is a perfect extension of the set
// n represents -- it appears in every transaction that matches n, so no
// dedicated subtree is needed for it; the reporter re-attaches it to
// every set found at or below n (spec.md §4.2, §4.8).
func (t *Tree) perfectExtensionSupport(n *node) uint64 {
	if n.parent == nil {
		return t.totalWeight
	}
	return t.supportOf(n.parent)
}

func (t *Tree) appearance(item int32) Appearance {
	return t.base.Appearance(item)
}

// markDeadSubtrees propagates the SKIP flag bottom-up: a node whose
// entire subtree produced no new children this round (or has none at
// all) is marked so future counting passes don't bother descending into
// it, per spec.md §4.2's final step.
func (t *Tree) markDeadSubtrees() {
	top := len(t.levels) - 1
	for d := top - 1; d >= 1; d-- {
		for n := t.levels[d]; n != nil; n = n.next {
			if len(n.children) == 0 {
				n.subtreeSkip = true
				continue
			}
			dead := true
			for _, c := range n.children {
				if !c.subtreeSkip {
					dead = false
					break
				}
			}
			n.subtreeSkip = dead
		}
	}
}

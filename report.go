package apriori

import "github.com/freqmine/apriori/internal/arrays"

// Reporter receives one callback per emitted itemset during Report. Push
// and Pop bracket the recursive descent; a reporter that wants the items
// making up each reported set should track them between Push and Pop.
type Reporter interface {
	// Perfect is called once per node with the items that are perfect
	// extensions of the set that node represents (spec.md §4.2): they
	// belong to every reported set at or below this node without
	// consuming tree depth.
	Perfect(items []int32)
	// Report is called with the support of the set currently on the
	// push/pop stack (including any active perfect extensions).
	Report(supp uint64, eval float64, hasEval bool)
	// Uses reports whether item already sits somewhere on the current
	// push/pop stack or among the perfect extensions folded in along it
	// (isr_uses in the teacher C library). Report consults it before
	// every Push.
	Uses(item int32) bool
	// Push descends into item, reporting false if item is already in use
	// per Uses; this is the "double extension" rejection of spec.md §7,
	// and Report never recurses past a rejected Push. Pop returns from
	// an accepted Push.
	Push(item int32) bool
	Pop()
}

// Report drives Reporter over every frequent itemset in the tree, per
// spec.md §4.8: at each node, perfect extensions are registered once
// (they ride along with every set reported at or below that node without
// their own subtree), the current set is reported, then each frequent
// non-perfect-extension counter is pushed, recursed into (its child if
// present, else reported as a leaf), and popped.
func (t *Tree) Report(r Reporter) {
	t.reportNode(t.root, t.totalWeight, r)
}

func (t *Tree) reportNode(n *node, supp uint64, r Reporter) {
	if len(n.perfectExt) > 0 {
		r.Perfect(n.perfectExt)
	}
	r.Report(supp, 0, false)

	for i := 0; i < n.size(); i++ {
		if n.isSkipped(i) {
			continue
		}
		c := n.counts[i]
		if !t.withinSupportBounds(c) {
			continue
		}
		item := n.itemAt(i)
		if t.appearance(item) == Ignore {
			continue
		}
		// item is already folded into every set reported at or below n via
		// the Perfect() call above; iterating it here too would report it
		// a second time, stacked on top of itself.
		if _, found := arrays.Search(n.perfectExt, item); found {
			continue
		}
		if r.Uses(item) {
			continue
		}
		if !r.Push(item) {
			continue
		}
		if child := n.child(item); child != nil {
			t.reportNode(child, c, r)
		} else {
			eval, hasEval := t.evaluate(n, i)
			r.Report(c, eval, hasEval)
		}
		r.Pop()
	}
}

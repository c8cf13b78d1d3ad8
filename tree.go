// Package apriori implements the itemset tree (prefix tree of support
// counters) at the core of an Apriori-style frequent-itemset and
// association-rule miner: candidate generation with subset-support,
// perfect-extension and skip-subtree pruning; a recursive counting
// traversal over raw or prefix-compressed transactions; and cursor-based
// extraction of itemsets and rules, with itemsets optionally filtered by
// an evaluation measure.
package apriori

import (
	"fmt"

	"github.com/freqmine/apriori/aerr"
)

// Tree owns the node forest (organized as a per-depth singly-linked chain
// of levels), the scratch buffers, thresholds, and the extraction cursor.
// A Tree is not safe for concurrent use: counting passes, addLevel, and
// extraction must not overlap, per spec.md §5.
type Tree struct {
	base ItemBase
	cfg  *Config

	root   *node
	levels []*node // levels[d] heads the singly-linked list at depth d
	totalWeight uint64

	emptySetNonClosed bool // set by Mark(Closed); empty set's closedness

	pathBuf []int32 // scratch, sized to current height
	idBuf   []int32 // scratch, sized to current height

	cursor cursor
}

// New creates a Tree seeded with singleton support from base: the root's
// counter window spans every item id [0, base.NumItems()), one counter
// per item, all initially zero until the first Count pass.
func New(base ItemBase, cfg *Config) (*Tree, error) {
	if cfg == nil {
		var err error
		cfg, err = NewConfig()
		if err != nil {
			return nil, err
		}
	}
	n := base.NumItems()
	if n < 0 {
		return nil, fmt.Errorf("%w: negative item count", aerr.ErrAlloc)
	}

	root := newNode(nil, -1, false)
	ids := make([]int32, n)
	for i := range ids {
		ids[i] = int32(i)
	}
	root.buildWindow(ids)

	t := &Tree{
		base:   base,
		cfg:    cfg,
		root:   root,
		levels: []*node{root},
	}
	return t, nil
}

// Height is the number of levels currently materialized (1 right after
// New, growing by one with each successful AddLevel).
func (t *Tree) Height() int { return len(t.levels) }

// TotalWeight is the sum of every counted transaction's weight, i.e. the
// support of the empty set.
func (t *Tree) TotalWeight() uint64 { return t.totalWeight }

// scratchPath returns the tree's reusable subset-path buffer sized to at
// least n, growing it (and keeping it grown) the way the spec's
// maxht-sized scratch buffers are grown inside addLevel. Callers build a
// path into it via append(buf[:0], ...); the result is only valid until
// the next scratchPath or pathOf call.
func (t *Tree) scratchPath(n int) []int32 {
	if cap(t.pathBuf) < n {
		t.pathBuf = make([]int32, n)
	}
	return t.pathBuf[:n]
}

// pathOf reconstructs n's edge-item path (root to n, inclusive) into the
// tree's scratch identifier-map buffer, per spec.md §5's "identifier map
// buffer... reused across operations." The result is only valid until the
// next pathOf or scratchPath call; every caller consumes it before
// reconstructing another node's path.
func (t *Tree) pathOf(n *node) []int32 {
	t.idBuf = n.path(t.idBuf)
	return t.idBuf
}

// Support looks up the support (summed transaction weight) of an arbitrary
// itemset given as item ids in ascending order, the same order every path
// in the node forest is kept in. It does not require a live cursor. The
// empty itemset's support is TotalWeight. ErrOutOfRange covers any itemset
// the tree never materialized -- pruned away, beyond the configured max
// depth, or simply never frequent -- the same "query past what's tracked"
// case aerr.ErrOutOfRange documents for support lookups.
func (t *Tree) Support(items []int32) (uint64, error) {
	if len(items) == 0 {
		return t.totalWeight, nil
	}
	supp, ok := t.root.getSupport(items)
	if !ok {
		return 0, fmt.Errorf("%w: itemset %v", aerr.ErrOutOfRange, items)
	}
	return supp, nil
}

// Err reports the extraction cursor's exhaustion, mirroring bufio.Scanner's
// post-loop Err(): once NextItemset/NextRule both return false because the
// configured size range is spent, Err reports aerr.ErrExhausted so callers
// can tell "done" apart from a cursor that was never Init'd.
func (t *Tree) Err() error {
	if t.cursor.state == stateExhausted {
		return aerr.ErrExhausted
	}
	return nil
}

// Run alternates Count and AddLevel (with a Prune between them) until a
// pass adds no new level or maxDepth is reached, the standard Apriori
// level-wise loop described in spec.md §2's "data flow per mining run."
func (t *Tree) Run(source TransactionSource) error {
	for {
		t.totalWeight = 0
		if err := t.Count(source); err != nil {
			return err
		}
		t.Prune()
		if t.Height() >= t.cfg.maxDepth {
			return nil
		}
		grew, err := t.AddLevel()
		if err != nil {
			return err
		}
		if !grew {
			return nil
		}
	}
}

// RunTree is Run driven by a prefix-compressed transaction tree instead of
// a flat bag.
func (t *Tree) RunTree(source TxTreeNode) error {
	for {
		t.totalWeight = 0
		if err := t.CountTree(source); err != nil {
			return err
		}
		t.Prune()
		if t.Height() >= t.cfg.maxDepth {
			return nil
		}
		grew, err := t.AddLevel()
		if err != nil {
			return err
		}
		if !grew {
			return nil
		}
	}
}

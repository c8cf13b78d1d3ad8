// Package txn provides concrete transaction sources: Bag, a flat slice of
// weighted transactions, and Tree, a prefix-compressed transaction tree
// that amortizes shared prefixes across a counting pass.
package txn

import (
	"sort"

	"github.com/freqmine/apriori"
)

// Bag is a flat apriori.TransactionSource backed by a slice. Transactions
// need not be pre-sorted; NewBag sorts and deduplicates each one, since
// the core requires ascending, duplicate-free item lists.
type Bag struct {
	txns []apriori.Transaction
}

// NewBag builds a Bag from raw (possibly unsorted, possibly duplicate-
// bearing) transactions, normalizing a copy of each; the caller's item
// slices are left unchanged.
func NewBag(txns []apriori.Transaction) *Bag {
	b := &Bag{txns: make([]apriori.Transaction, len(txns))}
	for i, t := range txns {
		items := append([]int32(nil), t.Items...)
		sort.Slice(items, func(a, c int) bool { return items[a] < items[c] })
		items = dedupAscending(items)
		b.txns[i] = apriori.Transaction{Items: items, Weight: t.Weight}
	}
	return b
}

func dedupAscending(items []int32) []int32 {
	if len(items) < 2 {
		return items
	}
	w := 1
	for r := 1; r < len(items); r++ {
		if items[r] != items[w-1] {
			items[w] = items[r]
			w++
		}
	}
	return items[:w]
}

func (b *Bag) All(yield func(items []int32, weight uint64) bool) {
	for _, t := range b.txns {
		if !yield(t.Items, t.Weight) {
			return
		}
	}
}

// Len is the number of transactions in the bag.
func (b *Bag) Len() int { return len(b.txns) }

// Tree is a prefix-compressed transaction tree implementing
// apriori.TxTreeNode: transactions sharing a leading item sequence share
// the same nodes along that prefix, so CountTree touches each shared
// prefix once regardless of how many transactions run through it.
type Tree struct {
	item     int32
	weight   uint64
	children []*Tree
	maxDepth int
}

// BuildTree inserts every transaction (normalized the same way Bag does)
// into a single prefix tree rooted at item -1.
func BuildTree(txns []apriori.Transaction) *Tree {
	root := &Tree{item: -1}
	for _, t := range txns {
		items := append([]int32(nil), t.Items...)
		sort.Slice(items, func(a, c int) bool { return items[a] < items[c] })
		items = dedupAscending(items)
		root.insert(items, t.Weight)
	}
	root.finalize()
	return root
}

func (n *Tree) insert(items []int32, weight uint64) {
	n.weight += weight
	if len(items) == 0 {
		return
	}
	head := items[0]
	i := sort.Search(len(n.children), func(i int) bool { return n.children[i].item >= head })
	if i < len(n.children) && n.children[i].item == head {
		n.children[i].insert(items[1:], weight)
		return
	}
	c := &Tree{item: head}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.insert(items[1:], weight)
}

func (n *Tree) finalize() int {
	if len(n.children) == 0 {
		n.maxDepth = 0
		return 0
	}
	max := 0
	for _, c := range n.children {
		if d := c.finalize() + 1; d > max {
			max = d
		}
	}
	n.maxDepth = max
	return max
}

func (n *Tree) Size() int        { return len(n.children) }
func (n *Tree) MaxDepth() int    { return n.maxDepth }
func (n *Tree) Weight() uint64   { return n.weight }
func (n *Tree) Item() int32      { return n.item }
func (n *Tree) Items() []int32   { return nil } // full trie: leaves never carry a suffix
func (n *Tree) Child(i int) apriori.TxTreeNode { return n.children[i] }

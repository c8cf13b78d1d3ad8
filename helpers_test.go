package apriori

import "sort"

// fakeBase is a minimal ItemBase for core package tests, avoiding an
// import of x/itembase (which itself imports this package).
type fakeBase struct {
	freq []uint64
	app  []Appearance
}

func newFakeBase(n int) *fakeBase {
	b := &fakeBase{freq: make([]uint64, n), app: make([]Appearance, n)}
	for i := range b.app {
		b.app[i] = Both
	}
	return b
}

func (b *fakeBase) NumItems() int                { return len(b.freq) }
func (b *fakeBase) Frequency(item int32) uint64  { return b.freq[item] }
func (b *fakeBase) Appearance(item int32) Appearance { return b.app[item] }
func (b *fakeBase) NamesAreInt() bool            { return true }

// fakeBag is a minimal TransactionSource over an in-memory slice.
type fakeBag struct {
	txns [][]int32
}

func (b *fakeBag) All(yield func(items []int32, weight uint64) bool) {
	for _, t := range b.txns {
		if !yield(t, 1) {
			return
		}
	}
}

// buildBase derives a fakeBase sized to the max item id in txns, with
// Frequency set to each item's transaction count, matching what a real
// ItemBase would report after one observation pass.
func buildBase(txns [][]int32) *fakeBase {
	max := int32(-1)
	for _, t := range txns {
		for _, it := range t {
			if it > max {
				max = it
			}
		}
	}
	b := newFakeBase(int(max) + 1)
	for _, t := range txns {
		for _, it := range t {
			b.freq[it]++
		}
	}
	return b
}

func sortedTxn(items ...int32) []int32 {
	out := append([]int32(nil), items...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

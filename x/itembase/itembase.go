// Package itembase is a concrete, slice-backed apriori.ItemBase: the
// external collaborator that owns the item universe (names, global
// frequency, appearance constraint) the core mines against.
package itembase

import "github.com/freqmine/apriori"

// Item is one entry of a Base, addressed by its position (the item id the
// core uses everywhere).
type Item struct {
	Name       string
	Appearance apriori.Appearance

	frequency    uint64
	txCount      uint64 // number of transactions containing this item
	extendedFreq uint64 // sum of per-transaction weights, for avg-weight reporting
}

// Base is a builder and finished apriori.ItemBase: names are assigned
// positionally as items are first seen, never string-compared at mining
// time.
type Base struct {
	items   []Item
	byName  map[string]int32
	namesAreInt bool
}

// New creates an empty Base. namesAreInt should be true when item names
// are themselves decimal integers (affects only reporter formatting, not
// mining), matching apriori.ItemBase.NamesAreInt.
func New(namesAreInt bool) *Base {
	return &Base{byName: make(map[string]int32), namesAreInt: namesAreInt}
}

// ID returns the id for name, allocating a new one (with Appearance Both)
// if name hasn't been seen before.
func (b *Base) ID(name string) int32 {
	if id, ok := b.byName[name]; ok {
		return id
	}
	id := int32(len(b.items))
	b.byName[name] = id
	b.items = append(b.items, Item{Name: name, Appearance: apriori.Both})
	return id
}

// SetAppearance overrides the appearance constraint for an existing item.
func (b *Base) SetAppearance(item int32, a apriori.Appearance) {
	b.items[item].Appearance = a
}

// Observe records one occurrence of item in a transaction of the given
// weight, accumulating both the plain frequency (supp.md §3's "global
// frequency") and the extended per-transaction-weight total used for
// average-weight reporting.
func (b *Base) Observe(item int32, weight uint64) {
	b.items[item].frequency += weight
	b.items[item].txCount++
	b.items[item].extendedFreq += weight
}

// Name returns the name an id was registered under.
func (b *Base) Name(item int32) string { return b.items[item].Name }

// AverageWeight returns extendedFreq/txCount for item, 0 if never
// observed. Not read by the core (spec.md's "may be dropped unless a
// collaborator reads it") -- x/cli's writer reads it to print the average
// per-transaction weight of each item.
func (b *Base) AverageWeight(item int32) float64 {
	it := b.items[item]
	if it.txCount == 0 {
		return 0
	}
	return float64(it.extendedFreq) / float64(it.txCount)
}

func (b *Base) NumItems() int { return len(b.items) }

func (b *Base) Frequency(item int32) uint64 {
	if int(item) < 0 || int(item) >= len(b.items) {
		return 0
	}
	return b.items[item].frequency
}

func (b *Base) Appearance(item int32) apriori.Appearance {
	if int(item) < 0 || int(item) >= len(b.items) {
		return apriori.Ignore
	}
	return b.items[item].Appearance
}

func (b *Base) NamesAreInt() bool { return b.namesAreInt }

// SetNamesAreInt overrides the namesAreInt flag, for callers (like x/cli)
// that only know whether every name parses as an integer after the full
// input has been read.
func (b *Base) SetNamesAreInt(v bool) { b.namesAreInt = v }

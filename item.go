package apriori

// Appearance constrains how an item may participate in generated itemsets
// and rules.
type Appearance uint8

const (
	// Ignore means the item never takes part in any itemset.
	Ignore Appearance = iota
	// BodyOnly restricts the item to rule antecedents.
	BodyOnly
	// HeadOnly restricts the item to rule consequents. Two head-only
	// items together are useless (neither can ever form a rule body),
	// so addLevel prunes such pairs, see candidateItems in addlevel.go.
	HeadOnly
	// Both allows the item in either role, and in plain frequent-set
	// mining (no rules) is the default for every item.
	Both
)

// ItemBase is the external collaborator that owns the item universe: the
// mapping from a small integer identifier to its global frequency and
// appearance constraint. The core never creates or names items; it only
// queries this snapshot, taken once at tree construction.
type ItemBase interface {
	// NumItems returns the number of distinct items, i.e. the valid item
	// ids are [0, NumItems()).
	NumItems() int
	// Frequency returns the total transaction weight of transactions
	// containing item. Used as the "head" support in evaluation and in
	// LogSupportRatio; the root's singleton counters are filled by Count.
	Frequency(item int32) uint64
	// Appearance returns the appearance constraint of item.
	Appearance(item int32) Appearance
	// NamesAreInt reports whether item names are integers (as opposed to
	// strings); consumed only by a reporter's formatting, never by the
	// core's mining logic.
	NamesAreInt() bool
}

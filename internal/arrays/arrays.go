// Package arrays implements the small ordered-slice primitives the itemset
// tree node needs: binary search by key, and in-place insert/delete that
// keeps two parallel slices (e.g. an item-id map and its counters) shifted
// in lockstep.
//
// This plays the role the teacher's popcount-compressed sparse.Array plays
// for bart's fixed 0..255 byte range, but item identifiers here are
// unbounded, so ranks come from a binary search instead of a bitset
// popcount.
package arrays

import "sort"

// Search returns the index of key in the ascending slice keys, and whether
// it was found. When not found, the index is the position key would need
// to be inserted at to keep keys ascending.
func Search(keys []int32, key int32) (idx int, found bool) {
	idx = sort.Search(len(keys), func(i int) bool { return keys[i] >= key })
	found = idx < len(keys) && keys[idx] == key
	return idx, found
}

// InsertAt inserts val into vals at position i, growing the slice by one.
// Reuses spare capacity when available, mirroring the teacher's insertItem.
func InsertAt[T any](vals []T, i int, val T) []T {
	var zero T
	if len(vals) < cap(vals) {
		vals = vals[:len(vals)+1]
	} else {
		vals = append(vals, zero)
	}
	copy(vals[i+1:], vals[i:])
	vals[i] = val
	return vals
}

// DeleteAt removes the element at position i, shifting the tail left and
// clearing the vacated slot so it doesn't keep a stale reference alive.
func DeleteAt[T any](vals []T, i int) []T {
	var zero T
	last := len(vals) - 1
	copy(vals[i:], vals[i+1:])
	vals[last] = zero
	return vals[:last]
}

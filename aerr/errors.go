// Package aerr centralizes the sentinel errors returned by the mining core.
//
// The core never panics in normal operation; every recoverable failure
// (allocation failure, out-of-range query, misconfigured threshold, a
// cursor stepped past exhaustion) is surfaced as one of these values,
// wrapped with context via fmt.Errorf("%w", ...) where useful.
package aerr

import "errors"

var (
	// ErrAlloc is returned by New when the item base reports a negative
	// item count. AddLevel never returns it: node allocation in the tree
	// has no failure return.
	ErrAlloc = errors.New("apriori: allocation failure")

	// ErrBadThreshold is returned by configuration constructors when a
	// setting cannot be clamped into a sensible range: a confidence
	// outside [0,1] or an unknown measure id. Out-of-range supports and
	// depths are clamped instead.
	ErrBadThreshold = errors.New("apriori: invalid threshold")

	// ErrOutOfRange is returned by Tree.Support when the queried itemset
	// was never materialized in the node forest -- pruned away, beyond the
	// configured max depth, or never frequent.
	ErrOutOfRange = errors.New("apriori: item or index out of range")

	// ErrExhausted is returned by Tree.Err once the extraction cursor has
	// left the configured depth range, until the next Init.
	ErrExhausted = errors.New("apriori: cursor exhausted")
)

package apriori

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// gatherReporter reconstructs the full represented set at every Report
// call by combining the current push path with every Perfect() batch
// registered at or above the current depth, per the Reporter contract in
// report.go.
type gatherReporter struct {
	frames  [][]int32 // frames[d] holds the perfect items registered at depth d
	path    []int32
	results map[string]uint64
}

func newGatherReporter() *gatherReporter {
	return &gatherReporter{frames: [][]int32{nil}, results: map[string]uint64{}}
}

func (g *gatherReporter) Perfect(items []int32) {
	g.frames[len(g.frames)-1] = items
}

func (g *gatherReporter) Uses(item int32) bool {
	for _, it := range g.path {
		if it == item {
			return true
		}
	}
	for _, f := range g.frames {
		for _, it := range f {
			if it == item {
				return true
			}
		}
	}
	return false
}

func (g *gatherReporter) Push(item int32) bool {
	if g.Uses(item) {
		return false
	}
	g.path = append(g.path, item)
	g.frames = append(g.frames, nil)
	return true
}

func (g *gatherReporter) Pop() {
	g.path = g.path[:len(g.path)-1]
	g.frames = g.frames[:len(g.frames)-1]
}

func (g *gatherReporter) Report(supp uint64, eval float64, hasEval bool) {
	full := append([]int32(nil), g.path...)
	for _, f := range g.frames {
		full = append(full, f...)
	}
	g.results[key(full)] = supp
}

// TestReportReattachesPerfectExtension: item 0 is in every transaction, so
// it is a perfect extension of the empty set and never gets its own
// subtree; Report must still fold it into every set at or below the root.
func TestReportReattachesPerfectExtension(t *testing.T) {
	txns := [][]int32{
		sortedTxn(0, 1),
		sortedTxn(0, 2),
		sortedTxn(0, 1, 2),
	}
	base := buildBaseN(txns, 3)
	cfg, err := NewConfig(WithMinSupport(1), WithMaxDepth(3), WithPerfectExtension(true))
	require.NoError(t, err)
	tree, err := New(base, cfg)
	require.NoError(t, err)
	require.NoError(t, tree.Run(&fakeBag{txns: txns}))

	require.Contains(t, tree.root.perfectExt, int32(0), "item 0 should be detected as a perfect extension of the empty set")
	require.Nil(t, tree.root.child(0), "a perfect-extension item gets no dedicated subtree")

	r := newGatherReporter()
	tree.Report(r)

	require.Equal(t, uint64(3), r.results[key([]int32{0})], "support({0}) folded in via Perfect")
	require.Equal(t, uint64(2), r.results[key([]int32{0, 1})], "support({0,1}) via the {1} node plus the perfect 0")
	require.Equal(t, uint64(2), r.results[key([]int32{0, 2})], "support({0,2}) via the {2} node plus the perfect 0")
	require.Equal(t, uint64(1), r.results[key([]int32{0, 1, 2})], "support({0,1,2}) via the {1,2} leaf plus the perfect 0")
}

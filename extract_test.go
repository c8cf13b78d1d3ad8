package apriori

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextItemsetSizeRangeAndOrder(t *testing.T) {
	txns := [][]int32{
		sortedTxn(0, 1),
		sortedTxn(0, 1, 2),
		sortedTxn(0, 2),
	}
	base := buildBaseN(txns, 3)
	cfg, err := NewConfig(WithMinSupport(1), WithMaxDepth(3))
	require.NoError(t, err)
	tree, err := New(base, cfg)
	require.NoError(t, err)
	require.NoError(t, tree.Run(&fakeBag{txns: txns}))

	var sizes []int
	var set []int32
	var supp uint64
	var eval float64
	tree.SetSize(0, 3, 1)
	tree.Init()
	for tree.NextItemset(&set, &supp, &eval) {
		sizes = append(sizes, len(set))
	}
	require.NotEmpty(t, sizes)
	for i := 1; i < len(sizes); i++ {
		require.LessOrEqual(t, sizes[i-1], sizes[i], "order=short-to-long should be non-decreasing")
	}
	require.Equal(t, 0, sizes[0], "empty set should be emitted first at order=1")

	sizes = sizes[:0]
	tree.SetSize(0, 3, -1)
	tree.Init()
	for tree.NextItemset(&set, &supp, &eval) {
		sizes = append(sizes, len(set))
	}
	for i := 1; i < len(sizes); i++ {
		require.GreaterOrEqual(t, sizes[i-1], sizes[i], "order=long-to-short should be non-increasing")
	}
}

func TestNextRuleConfidenceAndSupport(t *testing.T) {
	// {0,1} co-occur in every transaction that has 1: confidence(1->0)=1.
	txns := [][]int32{
		sortedTxn(0, 1),
		sortedTxn(0, 1),
		sortedTxn(0, 2),
	}
	base := buildBaseN(txns, 3)
	cfg, err := NewConfig(WithMinSupport(1), WithRuleSupport(1), WithConfidence(0.5), WithMaxDepth(2))
	require.NoError(t, err)
	tree, err := New(base, cfg)
	require.NoError(t, err)
	require.NoError(t, tree.Run(&fakeBag{txns: txns}))

	tree.SetSize(2, 2, 1)
	tree.Init()

	var rule []int32
	var supp, body uint64
	var eval float64
	found := false
	for tree.NextRule(&rule, &supp, &body, &eval) {
		if len(rule) == 2 && rule[0] == 0 && containsItem(rule[1:], 1) {
			found = true
			require.Equal(t, uint64(2), supp)
			require.Equal(t, uint64(2), body) // supp({1}) = 2
			require.InDelta(t, 1.0, float64(supp)/float64(body), 1e-9)
		}
	}
	require.True(t, found, "expected rule 1 -> 0 to be emitted")
}

func containsItem(items []int32, item int32) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}

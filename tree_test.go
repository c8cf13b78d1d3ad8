package apriori

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freqmine/apriori/aerr"
)

func TestSupportEmptySetIsTotalWeight(t *testing.T) {
	txns := [][]int32{sortedTxn(0, 1), sortedTxn(0, 2)}
	base := buildBaseN(txns, 3)
	cfg, err := NewConfig(WithMinSupport(1), WithMaxDepth(2))
	require.NoError(t, err)
	tree, err := New(base, cfg)
	require.NoError(t, err)
	require.NoError(t, tree.Run(&fakeBag{txns: txns}))

	supp, err := tree.Support(nil)
	require.NoError(t, err)
	require.Equal(t, uint64(2), supp)
}

func TestSupportWalksMaterializedPath(t *testing.T) {
	txns := [][]int32{sortedTxn(0, 1), sortedTxn(0, 1, 2), sortedTxn(0, 1)}
	base := buildBaseN(txns, 3)
	cfg, err := NewConfig(WithMinSupport(1), WithMaxDepth(2))
	require.NoError(t, err)
	tree, err := New(base, cfg)
	require.NoError(t, err)
	require.NoError(t, tree.Run(&fakeBag{txns: txns}))

	supp, err := tree.Support([]int32{0, 1})
	require.NoError(t, err)
	require.Equal(t, uint64(3), supp)
}

func TestSupportOutOfRangeReturnsErrOutOfRange(t *testing.T) {
	txns := [][]int32{sortedTxn(0, 1)}
	base := buildBaseN(txns, 3)
	cfg, err := NewConfig(WithMinSupport(1), WithMaxDepth(1))
	require.NoError(t, err)
	tree, err := New(base, cfg)
	require.NoError(t, err)
	require.NoError(t, tree.Run(&fakeBag{txns: txns}))

	// maxDepth 1 never materializes a level for {0,1}, so the pair lookup
	// falls off the end of the node forest.
	_, err = tree.Support([]int32{0, 1})
	require.True(t, errors.Is(err, aerr.ErrOutOfRange))
}

func TestErrReportsCursorExhaustion(t *testing.T) {
	txns := [][]int32{sortedTxn(0, 1)}
	base := buildBaseN(txns, 2)
	cfg, err := NewConfig(WithMinSupport(1), WithMaxDepth(2))
	require.NoError(t, err)
	tree, err := New(base, cfg)
	require.NoError(t, err)
	require.NoError(t, tree.Run(&fakeBag{txns: txns}))

	tree.SetSize(0, 2, 1)
	tree.Init()
	require.NoError(t, tree.Err())

	var set []int32
	var supp uint64
	var eval float64
	for tree.NextItemset(&set, &supp, &eval) {
	}
	require.True(t, errors.Is(tree.Err(), aerr.ErrExhausted))
}

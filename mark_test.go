package apriori

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildMarkTree(t *testing.T, txns [][]int32, numItems int) *Tree {
	t.Helper()
	base := buildBaseN(txns, numItems)
	cfg, err := NewConfig(WithMinSupport(1), WithMaxDepth(3))
	require.NoError(t, err)
	tree, err := New(base, cfg)
	require.NoError(t, err)
	require.NoError(t, tree.Run(&fakeBag{txns: txns}))
	return tree
}

// TestMarkClosed: item 0 appears in every transaction that contains item 1,
// so {1} and {0,1} have equal support and {1} is not closed; {0,1} has no
// equal-support superset and stays closed.
func TestMarkClosed(t *testing.T) {
	txns := [][]int32{
		sortedTxn(0, 1),
		sortedTxn(0, 1, 2),
		sortedTxn(0, 2),
	}
	tree := buildMarkTree(t, txns, 3)
	tree.Mark(Closed)

	idx1 := tree.root.getCounterIndex(1)
	require.GreaterOrEqual(t, idx1, 0)
	require.True(t, tree.root.isSkipped(idx1), "{1} should be marked non-closed: {0,1} has equal support")

	child0 := tree.root.child(0)
	require.NotNil(t, child0)
	idxPair := child0.getCounterIndex(1)
	require.GreaterOrEqual(t, idxPair, 0)
	require.False(t, child0.isSkipped(idxPair), "{0,1} has no frequent equal-support superset, should stay closed")
}

// TestMarkMaximal: {0} has a frequent superset {0,1}, so it is not maximal;
// {0,1} has no further frequent extension and is maximal.
func TestMarkMaximal(t *testing.T) {
	txns := [][]int32{
		sortedTxn(0, 1),
		sortedTxn(0, 1),
		sortedTxn(0),
	}
	tree := buildMarkTree(t, txns, 2)
	tree.Mark(Maximal)

	idx0 := tree.root.getCounterIndex(0)
	require.GreaterOrEqual(t, idx0, 0)
	require.True(t, tree.root.isSkipped(idx0), "{0} has a frequent extension {0,1}, not maximal")

	child0 := tree.root.child(0)
	require.NotNil(t, child0)
	idxPair := child0.getCounterIndex(1)
	require.GreaterOrEqual(t, idxPair, 0)
	require.False(t, child0.isSkipped(idxPair), "{0,1} has no further extension, should be maximal")
}

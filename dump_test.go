package apriori

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDebugStringRendersCountersAndPerfectExtensions(t *testing.T) {
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

	out := tree.DebugString()
	require.Contains(t, out, "height(2)")
	require.Contains(t, out, "perfectExt: [0]")
	require.Contains(t, out, "DENSE")
}

func TestDebugStringNilTreeIsEmpty(t *testing.T) {
	var tree *Tree
	require.Equal(t, "", tree.DebugString())
	require.True(t, strings.HasSuffix(tree.DebugString(), ""))
}

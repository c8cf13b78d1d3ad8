package itembase

import (
	"testing"

	"github.com/freqmine/apriori"
	"github.com/stretchr/testify/require"
)

func TestIDAssignsPositionallyAndDedupes(t *testing.T) {
	b := New(false)
	bread := b.ID("bread")
	milk := b.ID("milk")
	breadAgain := b.ID("bread")

	require.Equal(t, int32(0), bread)
	require.Equal(t, int32(1), milk)
	require.Equal(t, bread, breadAgain, "re-seeing a name must return its existing id")
	require.Equal(t, 2, b.NumItems())
	require.Equal(t, "bread", b.Name(bread))
	require.Equal(t, "milk", b.Name(milk))
}

func TestObserveAccumulatesFrequencyAndAverageWeight(t *testing.T) {
	b := New(false)
	bread := b.ID("bread")

	b.Observe(bread, 2)
	b.Observe(bread, 3)

	require.Equal(t, uint64(5), b.Frequency(bread))
	require.InDelta(t, 2.5, b.AverageWeight(bread), 1e-9)
}

func TestAverageWeightUnobservedIsZero(t *testing.T) {
	b := New(false)
	milk := b.ID("milk")
	require.Zero(t, b.AverageWeight(milk))
}

func TestAppearanceDefaultsAndOverride(t *testing.T) {
	b := New(false)
	bread := b.ID("bread")
	require.Equal(t, apriori.Both, b.Appearance(bread))

	b.SetAppearance(bread, apriori.HeadOnly)
	require.Equal(t, apriori.HeadOnly, b.Appearance(bread))
}

func TestFrequencyAndAppearanceOutOfRange(t *testing.T) {
	b := New(false)
	require.Zero(t, b.Frequency(42))
	require.Equal(t, apriori.Ignore, b.Appearance(42))
	require.Zero(t, b.Frequency(-1))
}

func TestNamesAreIntFlag(t *testing.T) {
	b := New(false)
	require.False(t, b.NamesAreInt())
	b.SetNamesAreInt(true)
	require.True(t, b.NamesAreInt())
}

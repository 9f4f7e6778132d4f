package fgk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitIsSingleZeroNodeRoot(t *testing.T) {
	tree := NewTree()
	require.Equal(t, tree.root, tree.zeroNode)
	require.True(t, tree.nodes[tree.root].isLeaf())
	require.Equal(t, int64(0), tree.nodes[tree.root].freq)
	require.NoError(t, tree.ValidateInvariants())
}

func TestFirstSightingCreatesZeroAndLeafSiblings(t *testing.T) {
	tree := NewTree()
	tree.Update('A')
	require.NoError(t, tree.ValidateInvariants())

	leaf, ok := tree.LeafFor('A')
	require.True(t, ok)
	require.Equal(t, int64(1), tree.nodes[leaf].freq)
	require.Equal(t, tree.nodes[tree.zeroNode].parent, tree.nodes[leaf].parent)
	require.Equal(t, int64(1), tree.RootWeight())

	zw, _ := tree.WeightOf('A')
	require.Equal(t, int64(1), zw)
	require.Equal(t, int64(0), tree.nodes[tree.zeroNode].freq)
}

func TestWeightAccounting(t *testing.T) {
	// property P3: after N updates, each symbol's leaf weight equals its
	// occurrence count in the first N bytes; the zero node stays 0; the
	// root equals N.
	input := []byte("abracadabra")
	tree := NewTree()
	counts := map[byte]int64{}

	for i, b := range input {
		tree.Update(b)
		counts[b]++
		require.NoError(t, tree.ValidateInvariants(), "after update %d", i)
		require.Equal(t, int64(i+1), tree.RootWeight())
		require.Equal(t, int64(0), tree.nodes[tree.zeroNode].freq)

		for sym, want := range counts {
			got, ok := tree.WeightOf(sym)
			require.True(t, ok)
			require.Equal(t, want, got, "symbol %q after update %d", sym, i)
		}
	}
}

func TestAllTwoFiftySixBytesInOrder(t *testing.T) {
	tree := NewTree()
	for i := 0; i < 256; i++ {
		tree.Update(byte(i))
		require.NoError(t, tree.ValidateInvariants(), "after byte %d", i)
	}
	require.Equal(t, int64(256), tree.RootWeight())
	for i := 0; i < 256; i++ {
		w, ok := tree.WeightOf(byte(i))
		require.True(t, ok)
		require.Equal(t, int64(1), w)
	}
}

func TestAdversarialAlternationInvariantsHoldThroughout(t *testing.T) {
	// Scenario 6 from spec.md §8: 0xAA 0x55 repeated 1000 times, with
	// spot-checks of the tree after updates 1, 2, 100, and 1000.
	pattern := []byte{0xAA, 0x55}
	tree := NewTree()
	spotChecks := map[int]bool{1: true, 2: true, 100: true, 1000: true}

	for i := 0; i < 1000; i++ {
		b := pattern[i%2]
		tree.Update(b)
		n := i + 1
		if spotChecks[n] {
			require.NoError(t, tree.ValidateInvariants(), "after update %d", n)
			require.Equal(t, int64(n), tree.RootWeight())
		}
	}
	require.NoError(t, tree.ValidateInvariants())
}

func TestEncoderDecoderLockstepIsomorphism(t *testing.T) {
	// P4: after processing the same input prefix, encoder and decoder
	// trees must be isomorphic.
	input := []byte("the quick brown fox jumps over the lazy dog")
	encTree := NewTree()
	decTree := NewTree()

	for _, b := range input {
		encTree.Update(b)
		decTree.Update(b)
		require.True(t, encTree.Snapshot().Equal(decTree.Snapshot()))
	}
}

func TestLeafForUnseenSymbolIsAbsent(t *testing.T) {
	tree := NewTree()
	_, ok := tree.LeafFor('z')
	require.False(t, ok)
}

func TestUpdateNeverTouchesSymbolTableEntryForZeroNode(t *testing.T) {
	tree := NewTree()
	tree.Update('x')
	for i := 0; i < 256; i++ {
		if idx, ok := tree.LeafFor(byte(i)); ok {
			require.False(t, tree.IsZeroNode(idx))
		}
	}
}

package fgk

import (
	"cmp"
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

// dumpEntry is one line of a tree dump.
type dumpEntry struct {
	index  int32
	symbol int32
	freq   int64
	isLeaf bool
}

// Dump writes a weight-sorted, human-readable listing of every node in the
// tree to w: the adaptive-coding analogue of the teacher's
// lzss/analyzer CSV dump. There's no fixed backref stream to tabulate for
// an adaptive coder, only a tree shape, so this lists nodes instead of
// compression events, lowest weight first.
func (t *Tree) Dump(w io.Writer) error {
	entries := make([]dumpEntry, len(t.nodes))
	for i, n := range t.nodes {
		entries[i] = dumpEntry{index: int32(i), symbol: n.symbol, freq: n.freq, isLeaf: n.isLeaf()}
	}
	slices.SortFunc(entries, func(a, b dumpEntry) int {
		if c := cmp.Compare(a.freq, b.freq); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	for _, e := range entries {
		kind := "internal"
		if e.isLeaf {
			kind = "leaf"
		}
		label := fmt.Sprintf("%d", e.symbol)
		if e.symbol == zeroNodeSymbol {
			label = "ZERO"
		} else if e.symbol == internalSymbol {
			label = "-"
		}
		if _, err := fmt.Fprintf(w, "%5d  %-8s  weight=%-6d  symbol=%s\n", e.index, kind, e.freq, label); err != nil {
			return err
		}
	}
	return nil
}

package fgk

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// ValidateInvariants walks the tree and checks invariants I1-I3 and I5 from
// spec.md §3 hold: every internal node has exactly two children, every
// internal node's weight is the sum of its children's, the zero node is a
// weight-0 leaf, and the canonical order this package maintains is both
// sorted by weight and keeps every pair of siblings adjacent -- which is
// exactly what the sibling property (I3) requires. It is a test and
// debugging helper, not part of the encode/decode hot path; property tests
// in tree_test.go call it after every Update to assert P2 holds throughout
// a run.
func (t *Tree) ValidateInvariants() error {
	visited := bitset.New(uint(len(t.nodes)))

	var walk func(idx int32) (int64, error)
	walk = func(idx int32) (int64, error) {
		if idx == noNode {
			return 0, fmt.Errorf("fgk: nil child in tree")
		}
		if visited.Test(uint(idx)) {
			return 0, fmt.Errorf("fgk: node %d reachable twice (cycle)", idx)
		}
		visited.Set(uint(idx))

		n := t.nodes[idx]
		switch {
		case n.left == noNode && n.right == noNode:
			return n.freq, nil
		case n.left == noNode || n.right == noNode:
			return 0, fmt.Errorf("fgk: node %d has exactly one child", idx)
		default:
			lw, err := walk(n.left)
			if err != nil {
				return 0, err
			}
			rw, err := walk(n.right)
			if err != nil {
				return 0, err
			}
			if lw+rw != n.freq {
				return 0, fmt.Errorf("fgk: node %d weight %d != sum of children %d", idx, n.freq, lw+rw)
			}
			return n.freq, nil
		}
	}

	if _, err := walk(t.root); err != nil {
		return err
	}
	if visited.Count() != uint(len(t.nodes)) {
		return fmt.Errorf("fgk: %d node(s) unreachable from root", uint(len(t.nodes))-visited.Count())
	}

	if t.nodes[t.zeroNode].freq != 0 {
		return fmt.Errorf("fgk: zero node weight is %d, want 0", t.nodes[t.zeroNode].freq)
	}
	if !t.nodes[t.zeroNode].isLeaf() {
		return fmt.Errorf("fgk: zero node is not a leaf")
	}

	prevWeight := int64(-1)
	for _, idx := range t.order {
		w := t.nodes[idx].freq
		if w < prevWeight {
			return fmt.Errorf("fgk: canonical order not sorted by weight at node %d (weight %d after %d)", idx, w, prevWeight)
		}
		prevWeight = w
	}

	for idx := range t.nodes {
		n := t.nodes[idx]
		if n.left == noNode {
			continue
		}
		pl, pr := t.listPos[n.left], t.listPos[n.right]
		diff := pl - pr
		if diff != 1 && diff != -1 {
			return fmt.Errorf("fgk: children of node %d not adjacent in canonical order (positions %d, %d)", idx, pl, pr)
		}
	}

	return nil
}

// WeightOf returns the current weight of the leaf holding sym, or (0,
// false) if sym has not been seen yet -- a small test helper for asserting
// P3 (weight accounting).
func (t *Tree) WeightOf(sym byte) (int64, bool) {
	idx, ok := t.LeafFor(sym)
	if !ok {
		return 0, false
	}
	return t.nodes[idx].freq, true
}

// RootWeight returns the root's weight, which must equal the number of
// symbols processed so far (P3).
func (t *Tree) RootWeight() int64 {
	return t.nodes[t.root].freq
}

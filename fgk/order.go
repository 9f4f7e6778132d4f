package fgk

// This file maintains the tree's canonical sibling-property ordering: the
// arrangement of all live nodes by non-decreasing weight that invariant I3
// requires to exist. The reference C implementation (see spec.md §9, "Find-
// highest-same-weight") keeps a per-weight block-leader linked list for
// O(1) swap-candidate lookup; here the same ordering is kept explicitly as
// a slice (`order`) with a reverse index (`listPos`), and the swap
// candidate is found with a linear scan from the tail inward. Spec.md §9
// explicitly sanctions that trade-off for an alphabet this small ("a naive
// scan is O(n) per update and is acceptable for small alphabets (<=256
// symbols)"), while the slice itself is still the block-leader bookkeeping
// the spec asks for, not a scan over the raw node arena.

// orderAppend places idx at the tail of the canonical order (used only
// during Init, for the very first zero node).
func (t *Tree) orderAppend(idx int32) {
	t.listPos[idx] = int32(len(t.order))
	t.order = append(t.order, idx)
}

// orderInsertAfter inserts newIdx immediately after afterIdx in the
// canonical order, shifting every later entry one position to the right.
func (t *Tree) orderInsertAfter(afterIdx, newIdx int32) {
	pos := int(t.listPos[afterIdx])
	t.order = append(t.order, 0)
	copy(t.order[pos+2:], t.order[pos+1:len(t.order)-1])
	t.order[pos+1] = newIdx
	for i, idx := range t.order[pos+1:] {
		t.listPos[idx] = int32(pos + 1 + i)
	}
}

// findSwapCandidate implements spec.md §4.2 step 3a: among all nodes with
// weight w, other than current's own parent or any ancestor of current,
// return the one occupying the latest (highest) position in the canonical
// order. If no such node exists besides current itself, current is
// returned and the caller performs no swap.
func (t *Tree) findSwapCandidate(current int32, w int64) int32 {
	for i := len(t.order) - 1; i >= 0; i-- {
		idx := t.order[i]
		if t.nodes[idx].freq != w {
			continue
		}
		if idx == current {
			return current
		}
		if t.isAncestor(idx, current) {
			continue
		}
		return idx
	}
	return current
}

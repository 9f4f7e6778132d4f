package fgk

// Emit walks from leaf up to (but not including) the root, collecting each
// node's branch bit along the way, then writes them through w in
// root-to-leaf order -- the order Decode expects to consume them in
// (spec.md §4.3). A leaf that is the root itself (the very first symbol of
// an empty-so-far tree) emits zero bits; the container framing in
// session.go avoids ever hitting that case by sending the first symbol of
// a stream as a raw byte.
func (t *Tree) Emit(w *BitWriter, leaf int32) error {
	var bits [8 * 32]uint8 // a leaf's depth is at most the number of internal nodes, which never exceeds 256
	n := 0
	for idx := leaf; t.nodes[idx].parent != noNode; idx = t.nodes[idx].parent {
		bits[n] = t.nodes[idx].bit
		n++
	}
	for i := n - 1; i >= 0; i-- {
		if err := w.PutBit(bits[i]); err != nil {
			return err
		}
	}
	return nil
}

// Decode consumes one bit at a time from r, descending from the tree's
// root until it reaches a leaf, then returns that leaf's symbol: a byte
// value 0..255, or zeroNodeSymbol if the leaf reached is the escape node
// (spec.md §4.4). The caller is responsible for reading the raw 8-bit
// escape payload when that happens.
func (t *Tree) Decode(r *BitReader) (int, error) {
	idx := t.root
	for !t.nodes[idx].isLeaf() {
		b, err := r.GetBit()
		if err != nil {
			return 0, err
		}
		if b == 0 {
			idx = t.nodes[idx].left
		} else {
			idx = t.nodes[idx].right
		}
	}
	return int(t.symbolAt(idx)), nil
}

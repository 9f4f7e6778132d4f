package fgk

import "fmt"

// Tree is the FGK tree shared by one encode or decode session. It owns an
// arena of nodes, the root and zero-node indices, and the symbol table
// (spec.md calls these fields `root`, `zero_node`, `symbol_table[0..255]`).
//
// A Tree is not safe for concurrent use; each session (encode or decode)
// owns exactly one, matching the single-threaded, synchronous model: there
// is no shared mutable state between sessions.
type Tree struct {
	nodes       []node
	root        int32
	zeroNode    int32
	symbolTable [256]int32

	order   []int32 // arena indices, canonical non-decreasing-weight order
	listPos []int32 // arena index -> position within order
}

// NewTree allocates a Tree with its arena pre-sized to the maximum a
// 256-symbol alphabet can ever need, and initializes it via Init.
func NewTree() *Tree {
	t := &Tree{
		nodes:   make([]node, 0, maxNodes),
		listPos: make([]int32, 0, maxNodes),
	}
	t.Init()
	return t
}

// Init resets the tree to its starting state: the symbol table cleared and
// a single node that is both the root and the zero node.
func (t *Tree) Init() {
	t.nodes = t.nodes[:0]
	t.listPos = t.listPos[:0]
	t.order = t.order[:0]
	for i := range t.symbolTable {
		t.symbolTable[i] = noNode
	}

	z := t.alloc(zeroNodeSymbol)
	t.root = z
	t.zeroNode = z
	t.orderAppend(z)
}

// alloc appends a new node to the arena and returns its index. A 256-symbol
// alphabet can never produce more than maxNodes live nodes, so this can't
// happen in practice, but it is checked rather than assumed: a bug that
// double-allocates should panic loudly here instead of silently corrupting
// the arena.
func (t *Tree) alloc(symbol int32) int32 {
	if len(t.nodes) >= maxNodes {
		panic(fmt.Errorf("%w: attempted to grow past %d nodes", ErrAlloc, maxNodes))
	}
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, newNode(symbol))
	t.listPos = append(t.listPos, -1)
	return idx
}

// Root returns the arena index of the tree's root.
func (t *Tree) Root() int32 { return t.root }

// ZeroNode returns the arena index of the escape leaf.
func (t *Tree) ZeroNode() int32 { return t.zeroNode }

// LeafFor returns the leaf node for a byte value, or (0, false) if that byte
// has not yet been seen this session.
func (t *Tree) LeafFor(b byte) (int32, bool) {
	idx := t.symbolTable[b]
	if idx == noNode {
		return 0, false
	}
	return idx, true
}

// IsZeroNode reports whether idx is the tree's escape leaf.
func (t *Tree) IsZeroNode(idx int32) bool { return idx == t.zeroNode }

// symbolAt returns the leaf symbol stored at idx: a byte value 0..255, or
// zeroNodeSymbol for the escape leaf. Calling it on an internal node is a
// programming error and panics, since internal nodes carry no symbol.
func (t *Tree) symbolAt(idx int32) int32 {
	n := &t.nodes[idx]
	if !n.isLeaf() {
		panic("fgk: symbolAt called on an internal node")
	}
	return n.symbol
}

// Update applies the per-symbol tree maintenance described in spec.md
// §4.2: on a first sighting it splits the zero node into a fresh internal
// node plus a new leaf for sym, then walks from that point (or from the
// symbol's existing leaf, on a repeat) up to the root, restoring the
// sibling property at every level via swap-then-increment.
func (t *Tree) Update(sym byte) {
	var current int32
	if leaf, ok := t.LeafFor(sym); ok {
		current = leaf
	} else {
		current = t.firstSighting(sym)
	}

	for current != noNode {
		w := t.nodes[current].freq
		if swapIdx := t.findSwapCandidate(current, w); swapIdx != current {
			t.swapNodes(current, swapIdx)
		}
		t.nodes[current].freq++
		current = t.nodes[current].parent
	}
}

// firstSighting performs spec.md §4.2 step 1: the zero node z is replaced
// in the tree by a new internal node I with z as its left (0-bit) child and
// a fresh leaf L for sym as its right (1-bit) child. It returns L, the
// first node the weight-increment loop should process: the loop's first
// iteration increments L.freq from 0 to 1, then walks up to I and
// increments it too, landing I.freq on the sum of its children (z=0,
// L=1). Starting the loop at I instead would never touch L.freq, leaving
// it stuck at 0 and violating I2 on every first sighting.
func (t *Tree) firstSighting(sym byte) int32 {
	z := t.zeroNode
	internal := t.alloc(internalSymbol)
	leaf := t.alloc(int32(sym))

	zParent, zBit := t.nodes[z].parent, t.nodes[z].bit
	t.nodes[internal].parent = zParent
	t.nodes[internal].bit = zBit
	if zParent == noNode {
		t.root = internal
	} else {
		t.setChild(zParent, zBit, internal)
	}

	t.nodes[z].parent = internal
	t.nodes[z].bit = 0
	t.nodes[internal].left = z

	t.nodes[leaf].parent = internal
	t.nodes[leaf].bit = 1
	t.nodes[internal].right = leaf
	t.nodes[internal].freq = 0

	t.symbolTable[sym] = leaf

	// z, leaf, and internal all have weight 0 right now: insert leaf and
	// internal into the canonical order immediately after z, leaves before
	// the internal node per the "internal nodes after leaves of the same
	// weight" tie-break rule.
	t.orderInsertAfter(z, leaf)
	t.orderInsertAfter(leaf, internal)

	return leaf
}

// setChild repoints parent's child pointer (chosen by bit) at child. A
// noNode parent means child is the root, handled by the caller.
func (t *Tree) setChild(parent int32, bit uint8, child int32) {
	if bit == 0 {
		t.nodes[parent].left = child
	} else {
		t.nodes[parent].right = child
	}
}

// swapNodes exchanges the tree positions of a and b: their (parent, bit)
// pairs trade places, so their subtrees move with them while their own
// children stay attached, exactly as spec.md §4.2 step 3a describes. Their
// positions in the canonical order are exchanged too, since the order
// tracks identity, not weight alone, and a/b have just traded places in the
// tree's breadth-first layout.
func (t *Tree) swapNodes(a, b int32) {
	if a == b {
		return
	}
	pa, ba := t.nodes[a].parent, t.nodes[a].bit
	pb, bb := t.nodes[b].parent, t.nodes[b].bit

	if pa == noNode {
		t.root = b
	} else {
		t.setChild(pa, ba, b)
	}
	if pb == noNode {
		t.root = a
	} else {
		t.setChild(pb, bb, a)
	}

	t.nodes[a].parent, t.nodes[a].bit = pb, bb
	t.nodes[b].parent, t.nodes[b].bit = pa, ba

	posA, posB := t.listPos[a], t.listPos[b]
	t.order[posA], t.order[posB] = b, a
	t.listPos[a], t.listPos[b] = posB, posA
}

// isAncestor reports whether idx is an ancestor of node (strictly above it
// in the tree, not node itself).
func (t *Tree) isAncestor(idx, node int32) bool {
	for p := t.nodes[node].parent; p != noNode; p = t.nodes[p].parent {
		if p == idx {
			return true
		}
	}
	return false
}

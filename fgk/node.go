// Package fgk implements the FGK (Faller-Gallager-Knuth) adaptive Huffman
// coding algorithm: a single-pass, self-describing byte-stream compressor
// that builds its Huffman tree incrementally, one symbol at a time, with no
// pre-pass over the input. Encoder and decoder stay in lockstep by applying
// the exact same tree update after every symbol.
package fgk

// internalSymbol marks a node that has no byte value of its own: its weight
// is the sum of its two children's weights.
const internalSymbol = -1

// zeroNodeSymbol is the escape leaf's symbol: the "not yet seen" marker.
// It sits outside the 0..255 byte range so it can never alias a real byte.
const zeroNodeSymbol = 256

// EscapeSymbol is the value Tree.Decode returns when the bit stream walked
// to the escape leaf rather than a byte leaf; callers outside this package
// (cmd/fgkverify) compare against it instead of hardcoding 256.
const EscapeSymbol = zeroNodeSymbol

// noNode is the arena-index sentinel for "no such node" (no parent, no
// child, not yet placed in the canonical order).
const noNode = -1

// maxNodes is the largest a tree can grow: 256 symbol leaves + 1 zero node
// + 256 internal nodes (one per first sighting).
const maxNodes = 513

// node is one entry in the tree's arena. parent/left/right are arena
// indices rather than pointers, per the "cyclic parent/child links" design
// note: it keeps the tree free of Go pointer cycles and lets the whole
// arena be snapshotted or reset cheaply between sessions.
type node struct {
	symbol int32 // 0..255 for a byte leaf, internalSymbol, or zeroNodeSymbol
	freq   int64
	parent int32
	left   int32
	right  int32
	bit    uint8 // branch label from the parent's perspective; undefined at the root
}

func newNode(symbol int32) node {
	return node{
		symbol: symbol,
		parent: noNode,
		left:   noNode,
		right:  noNode,
	}
}

// isLeaf reports whether n has no children.
func (n node) isLeaf() bool {
	return n.left == noNode && n.right == noNode
}

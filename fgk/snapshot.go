package fgk

import "github.com/fxamacker/cbor/v2"

// nodeSnapshot is the portable form of a node, safe to serialize.
type nodeSnapshot struct {
	Symbol int32 `cbor:"symbol"`
	Freq   int64 `cbor:"freq"`
	Parent int32 `cbor:"parent"`
	Left   int32 `cbor:"left"`
	Right  int32 `cbor:"right"`
}

// Snapshot is a point-in-time copy of a Tree's shape, used by the test of
// the lockstep property (P4: encoder and decoder trees are isomorphic after
// the same input prefix) in tree_test.go.
type Snapshot struct {
	Root     int32          `cbor:"root"`
	ZeroNode int32          `cbor:"zero_node"`
	Nodes    []nodeSnapshot `cbor:"nodes"`
}

// Snapshot captures the current tree shape.
func (t *Tree) Snapshot() Snapshot {
	ns := make([]nodeSnapshot, len(t.nodes))
	for i, n := range t.nodes {
		ns[i] = nodeSnapshot{Symbol: n.symbol, Freq: n.freq, Parent: n.parent, Left: n.left, Right: n.right}
	}
	return Snapshot{Root: t.root, ZeroNode: t.zeroNode, Nodes: ns}
}

// Marshal encodes the snapshot as CBOR.
func (s Snapshot) Marshal() ([]byte, error) {
	return cbor.Marshal(s)
}

// UnmarshalSnapshot decodes a CBOR-encoded Snapshot.
func UnmarshalSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	err := cbor.Unmarshal(b, &s)
	return s, err
}

// Equal reports whether s and o describe isomorphic trees: same shape,
// same weights, same symbol-to-leaf mapping (P4). It compares recursively
// from each tree's own root rather than by arena index, since the two
// trees may have allocated their nodes through different first-sighting
// orders and still be the same shape.
func (s Snapshot) Equal(o Snapshot) bool {
	return nodesEqual(s, s.Root, o, o.Root)
}

func nodesEqual(a Snapshot, ai int32, b Snapshot, bi int32) bool {
	na, nb := a.Nodes[ai], b.Nodes[bi]
	if na.Freq != nb.Freq {
		return false
	}
	if (na.Left == noNode) != (nb.Left == noNode) {
		return false
	}
	if na.Left == noNode {
		return na.Symbol == nb.Symbol
	}
	return nodesEqual(a, na.Left, b, nb.Left) && nodesEqual(a, na.Right, b, nb.Right)
}

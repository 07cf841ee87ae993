package dyft

import "math"

// Pointer is a tagged reference to either an internal node (in one of
// the tiered arenas), a leaf (a posting-list slot), or nothing. It
// carries a 4-byte node/slot id and a 1-byte tier tag, the same shape
// the rest of this package's design keys off of.
type Pointer struct {
	ID   uint32
	Tier Tier
}

// NilPointer is the canonical "no such edge" pointer. IsNil checks only
// the tier tag, so the zero Pointer is nil too.
var NilPointer = Pointer{ID: math.MaxUint32, Tier: TierNil}

// LeafPointer wraps a posting-table slot index as a leaf-tagged pointer.
func LeafPointer(slot int) Pointer {
	return Pointer{ID: uint32(slot), Tier: TierLeaf}
}

// IsNil reports whether p refers to nothing.
func (p Pointer) IsNil() bool { return p.Tier == TierNil }

// IsLeaf reports whether p refers to a posting-list slot.
func (p Pointer) IsLeaf() bool { return p.Tier == TierLeaf }

// Edge is one labeled outgoing reference from a node.
type Edge struct {
	Label byte
	Ptr   Pointer
}

// Package dyft implements a dynamic, incrementally-built radix trie over
// byte-labeled edges, indexing bit sketches under Hamming distance. Each
// internal node is stored in one of several size-tiered arenas chosen by
// its current fan-out, so a node with few children costs little memory
// and a node with many children still supports fast lookup.
package dyft

// Tier identifies a node's storage representation by its capacity (how
// many distinct byte labels it can hold) or marks a pointer as a leaf or
// nil. Nodes are promoted tier to tier as their edge count grows:
// 2 -> 4 -> 8 -> 16 -> 32 -> 64 -> 128 -> 256.
type Tier uint8

const (
	TierNil Tier = iota
	TierLeaf
	Tier2
	Tier4
	Tier8
	Tier16
	Tier32
	Tier64
	Tier128
	Tier256
)

// sparseTiers are stored as a label array plus a parallel pointer array,
// scanned linearly. denseTiers add a 256-entry label-to-slot index so
// lookup doesn't scan. Tier256 is stored as a direct 256-entry array
// indexed by label.
var sparseTiers = []Tier{Tier2, Tier4, Tier8, Tier16, Tier32}
var denseTiers = []Tier{Tier64, Tier128}

// Cap returns the number of label slots a tier provides. TierLeaf and
// TierNil have no slots.
func (t Tier) Cap() int {
	switch t {
	case Tier2:
		return 2
	case Tier4:
		return 4
	case Tier8:
		return 8
	case Tier16:
		return 16
	case Tier32:
		return 32
	case Tier64:
		return 64
	case Tier128:
		return 128
	case Tier256:
		return 256
	default:
		return 0
	}
}

// IsSparse reports whether t is stored as a scanned label/pointer pair.
func (t Tier) IsSparse() bool {
	for _, s := range sparseTiers {
		if s == t {
			return true
		}
	}
	return false
}

// IsDense reports whether t is stored with a label-to-slot index.
func (t Tier) IsDense() bool {
	for _, d := range denseTiers {
		if d == t {
			return true
		}
	}
	return false
}

// IsFull reports whether t is the direct 256-entry tier.
func (t Tier) IsFull() bool { return t == Tier256 }

// next returns the tier one promotion step up from t. It panics if t has
// no successor (Tier256 is the largest tier and never needs promotion).
func (t Tier) next() Tier {
	all := append(append([]Tier{}, sparseTiers...), denseTiers...)
	all = append(all, Tier256)
	for i, cur := range all {
		if cur == t && i+1 < len(all) {
			return all[i+1]
		}
	}
	panic("dyft: tier has no successor")
}

// smallestFitting returns the smallest tier whose capacity is at least n.
func smallestFitting(n int) Tier {
	all := append(append([]Tier{}, sparseTiers...), denseTiers...)
	all = append(all, Tier256)
	for _, t := range all {
		if t.Cap() >= n {
			return t
		}
	}
	return Tier256
}

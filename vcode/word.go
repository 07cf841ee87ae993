// Package vcode implements bit sketches: fixed-width integer codes
// produced by LSH hashing and compared under Hamming distance by the
// trie. A sketch is a short sequence of equal-width words; a SketchArray
// packs many sketches from a dataset into one flat buffer.
package vcode

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Word is the set of integer widths a sketch can be built from. Go has
// no native 128-bit unsigned integer, so the widest supported word here
// is uint64; see DESIGN.md for why a wider word was not added.
type Word interface {
	constraints.Unsigned
}

// WordBits returns the bit width of W.
func WordBits[W Word]() int {
	var z W
	switch any(z).(type) {
	case uint8:
		return 8
	case uint16:
		return 16
	case uint32:
		return 32
	case uint64:
		return 64
	case uint:
		return bits.UintSize
	default:
		return 64
	}
}

// popcount returns the number of set bits in x. Every Word widens
// losslessly to uint64 because the type set is unsigned.
func popcount[W Word](x W) int {
	return bits.OnesCount64(uint64(x))
}

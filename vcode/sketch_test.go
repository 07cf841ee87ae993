package vcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHamDist(t *testing.T) {
	// Single-word sketches pack to one byte apiece at bitsPerLevel=8, so
	// the vertical-word distance is 1 when the two bytes differ at all
	// and 0 when they are equal.
	a := Sketch[uint32]{0b1010}
	b := Sketch[uint32]{0b1000}
	assert.Equal(t, 1, HamDist(a, b, 8))
}

func TestHamDistRadiusEarlyExit(t *testing.T) {
	// 3 packed bytes of all-ones vs. all-zeros: every vertical plane's
	// diff is the same 3-bit pattern (one bit per packed byte), so the
	// true distance is 3 and the radius=2 call must stop short of it.
	a := Sketch[uint8]{0xFF, 0xFF, 0xFF}
	b := Sketch[uint8]{0x00, 0x00, 0x00}
	d, ok := HamDistRadius(a, b, 8, 2)
	require.False(t, ok)
	assert.Greater(t, d, 2)

	d, ok = HamDistRadius(a, b, 8, 3)
	require.True(t, ok)
	assert.Equal(t, 3, d)
}

func TestPackByteSingleBit(t *testing.T) {
	sketch := Sketch[uint32]{1, 0, 1, 1, 0, 0, 1, 0}
	b := PackByte(sketch, 1, 0)
	assert.Equal(t, byte(0b01001101), b)
}

func TestPackNumBytes(t *testing.T) {
	sketch := make(Sketch[uint32], 10)
	assert.Equal(t, 2, NumBytes(len(sketch), 1))
	assert.Equal(t, 5, NumBytes(len(sketch), 4))
}

func TestToVerticalTransposesPackedBytes(t *testing.T) {
	packed := []byte{0b0000_0001, 0b0000_0010}
	planes := ToVertical[uint8](packed, 8)
	assert.Equal(t, 8, len(planes))
	assert.Equal(t, uint8(0b01), planes[0])
	assert.Equal(t, uint8(0b10), planes[1])
	for j := 2; j < 8; j++ {
		assert.Equal(t, uint8(0), planes[j])
	}
}

func TestSketchArrayAppendAccess(t *testing.T) {
	arr := NewSketchArray[uint32](2)
	arr.Append(Sketch[uint32]{1, 2})
	arr.Append(Sketch[uint32]{3, 4})
	require.Equal(t, 2, arr.Size())
	assert.Equal(t, Sketch[uint32]{1, 2}, arr.Access(0))
	assert.Equal(t, Sketch[uint32]{3, 4}, arr.Access(1))
}

func TestLinearSearchFindsWithinRadius(t *testing.T) {
	a := NewSketchArray[uint32](1)
	a.Append(Sketch[uint32]{0b0000})
	b := NewSketchArray[uint32](1)
	b.Append(Sketch[uint32]{0b0001})
	b.Append(Sketch[uint32]{0b1111})

	// Each sketch packs to a single byte, so either one differs from
	// a's in exactly one packed position: distance 1, within radius 1.
	pairs := LinearSearch(a, b, 8, 1)
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}}, pairs)
}

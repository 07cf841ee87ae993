// Package postings implements the table that backs every trie leaf: a
// large array of small, variable-length lists of dataset-item ids, laid
// out so that a block of 64 consecutive lists shares one presence
// bitmap and one compact backing array instead of each needing its own
// slice header.
package postings

import (
	"math/bits"

	"trajdyft/errutil"
)

// groupSize is the number of posting-list slots one Group covers.
const groupSize = 64

// Group holds up to groupSize variable-length lists of ids. Layout: a
// presence bitmap (bit i set iff slot i is non-empty), followed by
// popcount(bitmap)+1 running prefix sizes, followed by the concatenated
// payloads of every present slot in ascending slot order. This mirrors
// a compact group representation that avoids a slice header per slot at
// the cost of an O(occupied slots) shift on every insert/extract — an
// acceptable trade since real posting lists are short and groups are
// bounded at 64 slots.
type Group struct {
	bitmap uint64
	data   []uint32
}

func bitmask(idx int) uint64 {
	return 1<<uint(idx) - 1
}

func checkIdx(idx int) {
	errutil.BugOn(idx < 0 || idx >= groupSize, "postings.Group: idx out of range: %d", idx)
}

// howMany returns the number of occupied slots strictly before idx.
func (g *Group) howMany(idx int) int {
	return bits.OnesCount64(g.bitmap & bitmask(idx))
}

func (g *Group) totOnes() int {
	return bits.OnesCount64(g.bitmap)
}

// Access returns the list stored at idx, or nil if idx is empty.
func (g *Group) Access(idx int) []uint32 {
	checkIdx(idx)
	if g.bitmap&(1<<uint(idx)) == 0 {
		return nil
	}
	howMany := g.howMany(idx)
	tot := g.totOnes()
	size := int(g.data[howMany+1] - g.data[howMany])
	start := tot + 1 + int(g.data[howMany])
	return g.data[start : start+size]
}

// Size returns the length of the list stored at idx, 0 if empty.
func (g *Group) Size(idx int) int {
	checkIdx(idx)
	if g.bitmap&(1<<uint(idx)) == 0 {
		return 0
	}
	howMany := g.howMany(idx)
	return int(g.data[howMany+1] - g.data[howMany])
}

// Insert appends one value to the list at idx, creating the list if
// idx was previously empty.
func (g *Group) Insert(idx int, val uint32) {
	checkIdx(idx)
	if g.bitmap == 0 {
		g.bitmap = 1 << uint(idx)
		g.data = append(g.data[:0], 0, 1, val)
		return
	}
	howMany := g.howMany(idx)
	if g.bitmap&(1<<uint(idx)) == 0 {
		g.data = insertAt(g.data, howMany, g.data[howMany])
		g.bitmap |= 1 << uint(idx)
	}
	tot := g.totOnes()
	pos := tot + 1 + int(g.data[howMany+1])
	g.data = insertAt(g.data, pos, val)
	for i := howMany + 1; i <= tot; i++ {
		g.data[i]++
	}
}

// Extend appends several values at once to the list at idx.
func (g *Group) Extend(idx int, vals []uint32) {
	checkIdx(idx)
	n := uint32(len(vals))
	if g.bitmap == 0 {
		g.bitmap = 1 << uint(idx)
		g.data = append(g.data[:0], 0, n)
		g.data = append(g.data, vals...)
		return
	}
	howMany := g.howMany(idx)
	if g.bitmap&(1<<uint(idx)) == 0 {
		g.data = insertAt(g.data, howMany, g.data[howMany])
		g.bitmap |= 1 << uint(idx)
	}
	tot := g.totOnes()
	pos := tot + 1 + int(g.data[howMany+1])
	g.data = spliceAt(g.data, pos, vals)
	for i := howMany + 1; i <= tot; i++ {
		g.data[i] += n
	}
}

// Extract removes and returns the list stored at idx.
func (g *Group) Extract(idx int) []uint32 {
	checkIdx(idx)
	if g.bitmap&(1<<uint(idx)) == 0 {
		return nil
	}
	howMany := g.howMany(idx)
	tot := g.totOnes()
	size := int(g.data[howMany+1] - g.data[howMany])
	pos := tot + 1 + int(g.data[howMany])
	res := append([]uint32(nil), g.data[pos:pos+size]...)
	for i := howMany + 2; i <= tot; i++ {
		g.data[i] -= uint32(size)
	}
	g.data = removeRange(g.data, pos, pos+size)
	g.data = removeAt(g.data, howMany+1)
	g.bitmap &^= 1 << uint(idx)
	return res
}

func insertAt(s []uint32, pos int, v uint32) []uint32 {
	s = append(s, 0)
	copy(s[pos+1:], s[pos:len(s)-1])
	s[pos] = v
	return s
}

func spliceAt(s []uint32, pos int, vs []uint32) []uint32 {
	out := make([]uint32, 0, len(s)+len(vs))
	out = append(out, s[:pos]...)
	out = append(out, vs...)
	out = append(out, s[pos:]...)
	return out
}

func removeRange(s []uint32, from, to int) []uint32 {
	return append(s[:from], s[to:]...)
}

func removeAt(s []uint32, pos int) []uint32 {
	return append(s[:pos], s[pos+1:]...)
}

// Table is the full posting store: a growing sequence of Groups, each
// covering groupSize consecutive slot indices.
type Table struct {
	groups []*Group
	size   uint32
}

func groupPos(idx int) int { return idx / groupSize }
func groupMod(idx int) int { return idx % groupSize }

func (t *Table) ensure(pos int) {
	for len(t.groups) <= pos {
		t.groups = append(t.groups, &Group{})
	}
}

// PushNew allocates the next sequential slot and stores vals in it,
// returning the new slot index. This is how a trie leaf is born.
func (t *Table) PushNew(vals []uint32) int {
	idx := int(t.size)
	t.ensure(groupPos(idx))
	t.groups[groupPos(idx)].Extend(groupMod(idx), vals)
	t.size++
	return idx
}

// Insert appends val to the existing list at idx.
func (t *Table) Insert(idx int, val uint32) {
	t.groups[groupPos(idx)].Insert(groupMod(idx), val)
}

// Access returns the list at idx.
func (t *Table) Access(idx int) []uint32 {
	return t.groups[groupPos(idx)].Access(groupMod(idx))
}

// Size returns the length of the list at idx.
func (t *Table) Size(idx int) int {
	return t.groups[groupPos(idx)].Size(groupMod(idx))
}

// Extract removes and returns the list at idx.
func (t *Table) Extract(idx int) []uint32 {
	return t.groups[groupPos(idx)].Extract(groupMod(idx))
}

// NumSlots returns the number of slots ever allocated via PushNew.
func (t *Table) NumSlots() int { return int(t.size) }

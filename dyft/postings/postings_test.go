package postings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupInsertExtractExtendRoundTrip(t *testing.T) {
	g := &Group{}
	for i := 0; i < 20; i++ {
		g.Insert(i, uint32(i))
		got := g.Extract(i)
		require.Equal(t, []uint32{uint32(i)}, got)
		g.Extend(i, []uint32{uint32(i)})
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, []uint32{uint32(i)}, g.Access(i))
		assert.Equal(t, 1, g.Size(i))
	}
}

func TestGroupExtendMultipleValues(t *testing.T) {
	g := &Group{}
	g.Extend(5, []uint32{10, 11, 12})
	g.Extend(2, []uint32{20})
	g.Extend(40, []uint32{30, 31})

	assert.Equal(t, []uint32{10, 11, 12}, g.Access(5))
	assert.Equal(t, []uint32{20}, g.Access(2))
	assert.Equal(t, []uint32{30, 31}, g.Access(40))
	assert.Nil(t, g.Access(0))
	assert.Equal(t, 0, g.Size(63))
}

func TestGroupInsertGrowsExistingSlot(t *testing.T) {
	g := &Group{}
	g.Extend(1, []uint32{1})
	g.Insert(1, 2)
	g.Insert(1, 3)
	assert.Equal(t, []uint32{1, 2, 3}, g.Access(1))
}

func TestGroupExtractClearsSlot(t *testing.T) {
	g := &Group{}
	g.Extend(9, []uint32{7, 8})
	g.Extend(10, []uint32{9})
	got := g.Extract(9)
	assert.Equal(t, []uint32{7, 8}, got)
	assert.Nil(t, g.Access(9))
	assert.Equal(t, []uint32{9}, g.Access(10))
}

func TestTablePushNewSpansMultipleGroups(t *testing.T) {
	tab := &Table{}
	var slots []int
	for i := 0; i < 200; i++ {
		slots = append(slots, tab.PushNew([]uint32{uint32(i), uint32(i) + 1}))
	}
	require.Equal(t, 200, tab.NumSlots())
	for i, slot := range slots {
		assert.Equal(t, []uint32{uint32(i), uint32(i) + 1}, tab.Access(slot))
	}
}

func TestTableInsertAppendsToExistingSlot(t *testing.T) {
	tab := &Table{}
	slot := tab.PushNew([]uint32{1})
	tab.Insert(slot, 2)
	tab.Insert(slot, 3)
	assert.Equal(t, []uint32{1, 2, 3}, tab.Access(slot))
	assert.Equal(t, 3, tab.Size(slot))
}

func TestTableExtract(t *testing.T) {
	tab := &Table{}
	slot := tab.PushNew([]uint32{5, 6, 7})
	got := tab.Extract(slot)
	assert.Equal(t, []uint32{5, 6, 7}, got)
	assert.Nil(t, tab.Access(slot))
}

package dyft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trajdyft/vcode"
)

func newTestTrie(t *testing.T, errorBudget, radius int) *Trie[uint32] {
	t.Helper()
	return NewTrie[uint32](Params{
		BitsPerLevel: 2,
		Dims:         4,
		ErrorBudget:  errorBudget,
		Radius:       radius,
		InWeight:     1.0,
	})
}

func TestTrieBuildAndQueryExactMatch(t *testing.T) {
	database := vcode.NewSketchArray[uint32](4)
	sketches := []vcode.Sketch[uint32]{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{1, 2, 3, 5},
	}
	for _, s := range sketches {
		database.Append(s)
	}

	trie := newTestTrie(t, 0, 0)
	trie.Build(database, database.Size())

	got := trie.Query(vcode.Sketch[uint32]{1, 2, 3, 4})
	assert.Contains(t, got, 0)
}

func TestTrieAppendGrowsIncrementally(t *testing.T) {
	database := vcode.NewSketchArray[uint32](4)
	trie := newTestTrie(t, 0, 0)

	database.Append(vcode.Sketch[uint32]{0, 0, 0, 0})
	trie.Append(database)
	database.Append(vcode.Sketch[uint32]{1, 1, 1, 1})
	trie.Append(database)

	assert.Equal(t, 2, database.Size())
	got := trie.Query(vcode.Sketch[uint32]{0, 0, 0, 0})
	assert.Contains(t, got, 0)
}

func TestTrieSplitsLeafBeyondThreshold(t *testing.T) {
	database := vcode.NewSketchArray[uint32](2)
	trie := NewTrie[uint32](Params{BitsPerLevel: 8, Dims: 2, ErrorBudget: 0, Radius: 0, InWeight: 0.1})

	// Every item shares byte 0 (word 0 is always 0) but differs at
	// byte 1 (word 1), so growing the shared leaf past its threshold
	// must force a split distinguishing them by the second byte.
	for i := 0; i < 20; i++ {
		database.Append(vcode.Sketch[uint32]{0, uint32(i)})
	}
	trie.Build(database, database.Size())

	require.Greater(t, trie.SplitCount(), 0)
}

func TestTrieQueryRespectsErrorBudget(t *testing.T) {
	database := vcode.NewSketchArray[uint32](4)
	database.Append(vcode.Sketch[uint32]{0, 0, 0, 0})

	query := vcode.Sketch[uint32]{1, 0, 0, 0} // packs to a different byte than id 0

	strict := newTestTrie(t, 0, 0)
	strict.Build(database, database.Size())
	assert.NotContains(t, strict.Query(query), 0)

	lenient := newTestTrie(t, 1, 1)
	lenient.Build(database, database.Size())
	assert.Contains(t, lenient.Query(query), 0)
}

// TestTrieContainmentSurvivesDeepSplits forces splits at least two levels
// below the root (root is always a Tier256 full arena, whose InsertPtr
// already overwrote existing labels correctly; a non-root sparse/dense
// parent's updateSrcPtr is what previously left a stale edge behind).
// Every inserted id must still be reachable by an exact-match query
// afterward (spec's "Trie containment" property).
func TestTrieContainmentSurvivesDeepSplits(t *testing.T) {
	database := vcode.NewSketchArray[uint32](3)
	trie := NewTrie[uint32](Params{BitsPerLevel: 8, Dims: 3, ErrorBudget: 0, Radius: 0, InWeight: 0.01})

	const n = 60
	for i := 0; i < n; i++ {
		// Few distinct values at word 0 and word 1 pack many ids under
		// shared prefixes, forcing repeated splits/promotions of
		// non-root nodes as word 2 disambiguates each one.
		database.Append(vcode.Sketch[uint32]{uint32(i % 2), uint32((i / 2) % 5), uint32(i)})
	}
	trie.Build(database, database.Size())

	for i := 0; i < n; i++ {
		got := trie.Query(database.Access(i))
		assert.Contains(t, got, i, "id %d must remain reachable after deep splits", i)
	}
}

func TestMaxDepthAndLeafCount(t *testing.T) {
	trie := newTestTrie(t, 0, 0)
	assert.Equal(t, vcode.NumBytes(4, 2), trie.MaxDepth())
	assert.Equal(t, 0, trie.LeafCount())
}

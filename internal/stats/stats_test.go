package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"trajdyft/dyft"
	"trajdyft/vcode"
	"trajdyft/verify"
)

func TestFromTrieReportsLeavesAndTiers(t *testing.T) {
	database := vcode.NewSketchArray[uint32](2)
	database.Append(vcode.Sketch[uint32]{1, 2})
	database.Append(vcode.Sketch[uint32]{3, 4})

	trie := dyft.NewTrie[uint32](dyft.Params{BitsPerLevel: 8, Dims: 2, InWeight: 1.0})
	trie.Build(database, database.Size())

	report := FromTrie(trie)
	assert.Equal(t, trie.LeafCount(), report.LeafCount)
	assert.Equal(t, trie.MaxDepth(), report.MaxDepth)
	assert.NotEmpty(t, report.Tiers)
}

func TestWithVerificationFoldsCounters(t *testing.T) {
	r := IndexReport{}.WithVerification(verify.Result{
		Candidates:               []verify.Candidate{{Query: 0, Candidate: 1}},
		PartialVerificationCount: 3,
		FullVerificationCount:    1,
		FilteredCount:            2,
	})
	assert.Equal(t, 1, r.CandidateCount)
	assert.Equal(t, 3, r.PartialVerificationCount)
	assert.Equal(t, 1, r.FullVerificationCount)
	assert.Equal(t, 2, r.FilteredVerificationCount)
}

func TestStringRendersReadableTree(t *testing.T) {
	report := IndexReport{LeafCount: 5, MaxDepth: 2, SplitCount: 1}
	out := report.String()
	assert.True(t, strings.Contains(out, "leaves"))
}

// Package stats assembles the structural and verification counters an
// index run produces into one report, and renders it as a readable tree
// (mirroring the dataset/trie shape it describes) or as JSON.
package stats

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"trajdyft/dyft"
	"trajdyft/vcode"
	"trajdyft/verify"
)

// TierReport summarizes one tier's occupancy: how many nodes it holds,
// how many edges they hold in total, and how many sit empty.
type TierReport struct {
	Tier     string `json:"tier"`
	NumNodes int    `json:"num_nodes"`
	Edges    int    `json:"edges"`
	Empty    int    `json:"empty"`
}

// IndexReport mirrors the reference system's per-run statistics: trie
// shape, timings, and (when a query set was run) verification counts.
type IndexReport struct {
	LeafCount  int          `json:"leaf_count"`
	MaxDepth   int          `json:"max_depth"`
	SplitCount int          `json:"split_count"`
	Tiers      []TierReport `json:"tiers"`

	DataLoadTime   time.Duration `json:"data_load_time_ns"`
	IndexBuildTime time.Duration `json:"index_build_time_ns"`
	IndexQueryTime time.Duration `json:"index_query_time_ns"`

	DatasetSize int `json:"dataset_size"`
	QuerySize   int `json:"query_size"`

	PartialVerificationCount  int `json:"partial_verification_count"`
	FullVerificationCount     int `json:"full_verification_count"`
	FilteredVerificationCount int `json:"filtered_verification_count"`

	CandidateCount int `json:"candidate_count"`
}

func tierName(t dyft.Tier) string {
	switch t {
	case dyft.Tier2:
		return "2"
	case dyft.Tier4:
		return "4"
	case dyft.Tier8:
		return "8"
	case dyft.Tier16:
		return "16"
	case dyft.Tier32:
		return "32"
	case dyft.Tier64:
		return "64"
	case dyft.Tier128:
		return "128"
	case dyft.Tier256:
		return "256"
	default:
		return "?"
	}
}

// FromTrie builds the structural half of an IndexReport from a live trie.
func FromTrie[W vcode.Word](t *dyft.Trie[W]) IndexReport {
	var r IndexReport
	r.LeafCount = t.LeafCount()
	r.MaxDepth = t.MaxDepth()
	r.SplitCount = t.SplitCount()
	for _, pop := range t.PopulationStats() {
		r.Tiers = append(r.Tiers, TierReport{
			Tier:     tierName(pop.Tier),
			NumNodes: len(pop.Nodes),
			Edges:    pop.Sum(),
			Empty:    pop.Empty(),
		})
	}
	return r
}

// WithVerification folds a verify.Result's counters into the report.
func (r IndexReport) WithVerification(v verify.Result) IndexReport {
	r.PartialVerificationCount = v.PartialVerificationCount
	r.FullVerificationCount = v.FullVerificationCount
	r.FilteredVerificationCount = v.FilteredCount
	r.CandidateCount = len(v.Candidates)
	return r
}

// JSON renders the report as JSON, matching how the reference system
// emits its own run statistics to stdout.
func (r IndexReport) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(b)
}

// String renders the report as an indented tree, with node counts and
// edge counts described in human-readable form.
func (r IndexReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "index: %s leaves, depth %d, %s splits\n",
		humanize.Comma(int64(r.LeafCount)), r.MaxDepth, humanize.Comma(int64(r.SplitCount)))
	for _, tier := range r.Tiers {
		if tier.NumNodes == 0 {
			continue
		}
		fmt.Fprintf(&sb, "  tier %3s: %s nodes, %s edges, %d empty\n",
			tier.Tier, humanize.Comma(int64(tier.NumNodes)), humanize.Comma(int64(tier.Edges)), tier.Empty)
	}
	if r.CandidateCount > 0 || r.PartialVerificationCount > 0 || r.FullVerificationCount > 0 || r.FilteredVerificationCount > 0 {
		fmt.Fprintf(&sb, "verification: %s partial, %s full, %s filtered -> %s candidates\n",
			humanize.Comma(int64(r.PartialVerificationCount)),
			humanize.Comma(int64(r.FullVerificationCount)),
			humanize.Comma(int64(r.FilteredVerificationCount)),
			humanize.Comma(int64(r.CandidateCount)))
	}
	return sb.String()
}

package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trajdyft/trajectory"
	"trajdyft/vcode"
)

func TestRlo(t *testing.T) {
	assert.Equal(t, 8-2, Rlo(8))  // floor(sqrt(8)) == 2
	assert.Equal(t, 16-4, Rlo(16))
	assert.Equal(t, 0, Rlo(0))
}

func straightLine(n int, yOffset float64) trajectory.Trajectory {
	pts := make([]trajectory.Point, n)
	for i := range pts {
		pts[i] = trajectory.Point{X: float64(i), Y: yOffset}
	}
	return trajectory.New(pts)
}

func TestFilterAcceptsWithinRloWithoutFrechetCheck(t *testing.T) {
	dataset := vcode.NewSketchArray[uint32](2)
	dataset.Append(vcode.Sketch[uint32]{0, 0})

	queries := vcode.NewSketchArray[uint32](2)
	queries.Append(vcode.Sketch[uint32]{0, 0}) // identical sketch, ham = 0

	trajectories := trajectory.NewDataset([]trajectory.Trajectory{straightLine(3, 0)})
	querySet := trajectory.NewDataset([]trajectory.Trajectory{straightLine(3, 1000)}) // would fail a Fréchet check

	candidates := []Candidate{{Query: 0, Candidate: 0}}
	res := Filter(candidates, dataset, queries, trajectories, querySet, 8, 8, 0.01)

	assert.Equal(t, 1, res.PartialVerificationCount)
	assert.Equal(t, 0, res.FullVerificationCount)
	assert.Len(t, res.Candidates, 1)
}

func TestFilterRejectsBeyondRadius(t *testing.T) {
	// At bitsPerLevel=8 each 2-word sketch packs to 2 bytes, so the
	// vertical-word distance counts how many of those 2 byte positions
	// differ: both do here, for the maximum possible distance of 2.
	dataset := vcode.NewSketchArray[uint32](2)
	dataset.Append(vcode.Sketch[uint32]{0xFF, 0xFF})

	queries := vcode.NewSketchArray[uint32](2)
	queries.Append(vcode.Sketch[uint32]{0, 0})

	trajectories := trajectory.NewDataset([]trajectory.Trajectory{straightLine(3, 0)})
	querySet := trajectory.NewDataset([]trajectory.Trajectory{straightLine(3, 0)})

	candidates := []Candidate{{Query: 0, Candidate: 0}}
	res := Filter(candidates, dataset, queries, trajectories, querySet, 8, 1, 0.01)

	assert.Equal(t, 1, res.FilteredCount)
	assert.Empty(t, res.Candidates)
}

func TestFilterRunsFrechetCheckBetweenRloAndRadius(t *testing.T) {
	// ham = 2 (both packed byte positions differ), which sits above
	// Rlo(2)=1 but within radius=2, so this candidate needs the full
	// Fréchet check rather than being accepted or rejected on the
	// Hamming bound alone.
	dataset := vcode.NewSketchArray[uint32](2)
	dataset.Append(vcode.Sketch[uint32]{0xFF, 0xFF})

	queries := vcode.NewSketchArray[uint32](2)
	queries.Append(vcode.Sketch[uint32]{0, 0})

	close := trajectory.NewDataset([]trajectory.Trajectory{straightLine(3, 0)})
	closeQuery := trajectory.NewDataset([]trajectory.Trajectory{straightLine(3, 0)})

	candidates := []Candidate{{Query: 0, Candidate: 0}}
	res := Filter(candidates, dataset, queries, close, closeQuery, 8, 2, 0.01)

	assert.Equal(t, 1, res.FullVerificationCount)
	assert.Len(t, res.Candidates, 1)
}

func TestNoVerificationPassesCandidatesThrough(t *testing.T) {
	candidates := []Candidate{{Query: 0, Candidate: 1}, {Query: 2, Candidate: 3}}
	res := NoVerification(candidates)
	assert.Equal(t, candidates, res.Candidates)
	assert.Zero(t, res.PartialVerificationCount)
}

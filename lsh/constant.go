package lsh

import (
	"math/rand"

	"trajdyft/trajectory"
	"trajdyft/vcode"
)

// ConstantHash wraps a LinearHash with a per-point-position random
// perturbation applied before the inner grid snap, giving a hash whose
// collision probability depends only on trajectory shape, not on which
// absolute grid cell a trajectory happens to fall into.
//
// Two independent perturbation vectors are drawn, one data-side and one
// query-side. See DESIGN.md Open Question 1: HashQuery below reuses the
// data-side perturbations rather than the query-side ones, so Hash and
// HashQuery return the same value for the same trajectory. That is
// carried over verbatim from the system this one was modeled on, not
// fixed here, because both describe this as intended behavior rather
// than a defect.
type ConstantHash[W vcode.Word] struct {
	inner             *LinearHash[W]
	delta             float64
	dataPerturbations []trajectory.Point
	queryPerturbation []trajectory.Point
}

// NewConstantHash builds a ConstantHash for trajectories of up to maxLen
// points, snapping to a grid of the given resolution.
func NewConstantHash[W vcode.Word](resolution float64, maxLen int, seed uint64, rng *rand.Rand) *ConstantHash[W] {
	dataRng := newRand(seed, "constant-hash-data")
	queryRng := newRand(seed, "constant-hash-query")
	dataPert := make([]trajectory.Point, maxLen)
	queryPert := make([]trajectory.Point, maxLen)
	for i := 0; i < maxLen; i++ {
		dataPert[i] = randomPerturbation(resolution, dataRng)
		queryPert[i] = randomPerturbation(resolution, queryRng)
	}
	return &ConstantHash[W]{
		inner:             NewLinearHash[W](resolution, maxLen, rng),
		delta:             resolution,
		dataPerturbations: dataPert,
		queryPerturbation: queryPert,
	}
}

// Hash implements Hasher using the data-side perturbation vectors.
func (h *ConstantHash[W]) Hash(t trajectory.Trajectory) W {
	return h.inner.hash(h.perturb(t, h.dataPerturbations), trajectory.Point{})
}

// HashQuery implements Hasher. It reuses the data-side perturbation
// vectors, not the query-side ones stored in queryPerturbation; see the
// type-level comment.
func (h *ConstantHash[W]) HashQuery(t trajectory.Trajectory) W {
	return h.inner.hash(h.perturb(t, h.dataPerturbations), trajectory.Point{})
}

func (h *ConstantHash[W]) perturb(t trajectory.Trajectory, perturbations []trajectory.Point) []trajectory.Point {
	points := t.Points()
	out := make([]trajectory.Point, 0, len(points))
	havePrev := false
	var prevGX, prevGY int64
	for i, p := range points {
		pert := trajectory.Point{}
		if i < len(perturbations) {
			pert = perturbations[i]
		}
		shifted := trajectory.Point{X: p.X + pert.X, Y: p.Y + pert.Y}
		gx, gy := gridSnap(shifted, trajectory.Point{}, h.delta)
		if havePrev && gx == prevGX && gy == prevGY {
			continue
		}
		havePrev = true
		prevGX, prevGY = gx, gy
		out = append(out, trajectory.Point{X: float64(gx) * h.delta, Y: float64(gy) * h.delta})
	}
	return out
}

package lsh

import (
	"math/rand"

	"trajdyft/trajectory"
	"trajdyft/vcode"
)

// Hasher is satisfied by every trajectory-to-sketch-word hash in this
// package. HashQuery lets a hash behave differently for query-side
// trajectories than for data-side ones; most hashers don't need that and
// just alias Hash.
type Hasher[W vcode.Word] interface {
	Hash(t trajectory.Trajectory) W
	HashQuery(t trajectory.Trajectory) W
}

// LinearHash folds a trajectory down to one sketch word by snapping
// every point to a randomly-shifted grid, skipping consecutive points
// that land in the same cell, and wrapping-accumulating a random
// coefficient per surviving grid coordinate.
type LinearHash[W vcode.Word] struct {
	delta  float64
	shift  trajectory.Point
	coeffs []W // 2 per point position: x coefficient, y coefficient
}

// NewLinearHash builds a LinearHash for trajectories of up to maxLen
// points, snapping to a grid of the given resolution.
func NewLinearHash[W vcode.Word](resolution float64, maxLen int, rng *rand.Rand) *LinearHash[W] {
	return &LinearHash[W]{
		delta:  resolution,
		shift:  randomShiftGrid(resolution, rng),
		coeffs: randomCoefficients[W](maxLen, rng),
	}
}

// Hash implements Hasher.
func (h *LinearHash[W]) Hash(t trajectory.Trajectory) W {
	return h.hash(t.Points(), h.shift)
}

// HashQuery implements Hasher; LinearHash treats data and query
// trajectories identically.
func (h *LinearHash[W]) HashQuery(t trajectory.Trajectory) W {
	return h.hash(t.Points(), h.shift)
}

func (h *LinearHash[W]) hash(points []trajectory.Point, shift trajectory.Point) W {
	var acc W
	idx := 0
	havePrev := false
	var prevGX, prevGY int64
	for _, p := range points {
		gx, gy := gridSnap(p, shift, h.delta)
		if havePrev && gx == prevGX && gy == prevGY {
			continue
		}
		havePrev = true
		prevGX, prevGY = gx, gy
		if 2*idx+1 < len(h.coeffs) {
			acc += W(gx) * h.coeffs[2*idx]
			acc += W(gy) * h.coeffs[2*idx+1]
		}
		idx++
	}
	return acc >> uint(vcode.WordBits[W]()/2)
}

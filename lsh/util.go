// Package lsh implements locality-sensitive hashing of trajectories into
// fixed-width sketches: a grid-snapping linear hash, a perturbation-based
// variant used to get asymmetric data/query behavior, and a tensored
// combinator that builds L independent hashes out of many cheap k-wide
// sub-hashes.
package lsh

import (
	"math/rand"

	"github.com/zeebo/xxh3"
	"trajdyft/trajectory"
	"trajdyft/vcode"
)

// deriveSeed folds a master seed and a label into an independent
// uint64 seed, so a single configured seed can deterministically expand
// into several unrelated random streams (e.g. ConstantHash's data-side
// and query-side perturbation vectors) without those streams correlating
// with each other the way consecutive draws from one shared
// math/rand.Rand would.
func deriveSeed(seed uint64, label string) uint64 {
	h := xxh3.NewSeed(seed)
	_, _ = h.WriteString(label)
	return h.Sum64()
}

func newRand(seed uint64, label string) *rand.Rand {
	return rand.New(rand.NewSource(int64(deriveSeed(seed, label))))
}

// randomShiftGrid draws a random grid origin shift in [0, resolution)
// on each axis.
func randomShiftGrid(resolution float64, rng *rand.Rand) trajectory.Point {
	return trajectory.Point{
		X: rng.Float64() * resolution,
		Y: rng.Float64() * resolution,
	}
}

// randomPerturbation draws a random offset in [-resolution/2, resolution/2)
// on each axis.
func randomPerturbation(resolution float64, rng *rand.Rand) trajectory.Point {
	return trajectory.Point{
		X: rng.Float64()*resolution - resolution/2,
		Y: rng.Float64()*resolution - resolution/2,
	}
}

// randomCoefficients draws 2*n random words: an (x, y) coefficient pair
// for each of the n point-positions a hash fold may consume.
func randomCoefficients[W vcode.Word](n int, rng *rand.Rand) []W {
	out := make([]W, 2*n)
	for i := range out {
		out[i] = W(rng.Uint64())
	}
	return out
}

func gridSnap(p trajectory.Point, shift trajectory.Point, delta float64) (int64, int64) {
	gx := int64(roundHalfAwayFromZero((p.X + shift.X) / delta))
	gy := int64(roundHalfAwayFromZero((p.Y + shift.Y) / delta))
	return gx, gy
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return float64(int64(x - 0.5))
}

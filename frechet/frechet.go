// Package frechet computes the discrete Fréchet distance between two
// trajectories, and the cheap heuristics that let many pairs be decided
// without running the full O(n*m) dynamic program.
package frechet

import (
	"math"

	"trajdyft/trajectory"
)

func sqDist(a, b trajectory.Point) float64 {
	return a.Sub(b).NormSquared()
}

// exceedsBound reports whether the distance between a and b exceeds
// bound, comparing the squared distance against the squared bound so no
// square root is taken. Used only by the cheap heuristics below.
func exceedsBound(a, b trajectory.Point, bound float64) bool {
	return sqDist(a, b) > bound*bound
}

func startEndHeuristic(t1, t2 trajectory.Trajectory, bound float64) bool {
	return exceedsBound(t1.First(), t2.First(), bound) ||
		exceedsBound(t1.Last(), t2.Last(), bound)
}

type indexPair struct{ i, j int }

func boundaryPairs(t1, t2 trajectory.Trajectory) []indexPair {
	n, m := t1.Len(), t2.Len()
	pairs := make([]indexPair, 0, (n-2)+(m-2))
	for i := 1; i < n-1; i++ {
		pairs = append(pairs, indexPair{i, 0})
	}
	for j := 1; j < m-1; j++ {
		pairs = append(pairs, indexPair{n - 1, j})
	}
	return pairs
}

func reverseBoundaryPairs(t1, t2 trajectory.Trajectory) []indexPair {
	n, m := t1.Len(), t2.Len()
	pairs := make([]indexPair, 0, (m-2)+(n-2))
	for i := 1; i < m-1; i++ {
		pairs = append(pairs, indexPair{0, i})
	}
	for j := 1; j < n-1; j++ {
		pairs = append(pairs, indexPair{j, m - 1})
	}
	return pairs
}

func anyExceedsBound(pairs []indexPair, t1, t2 trajectory.Trajectory, bound float64) bool {
	for _, p := range pairs {
		if exceedsBound(t1.At(p.i), t2.At(p.j), bound) {
			return true
		}
	}
	return false
}

// Within reports whether the discrete Fréchet distance between t1 and
// t2 is at most bound. It rejects the pair cheaply when their endpoints
// are too far apart, and accepts it cheaply when either boundary
// coupling (down t1 while holding t2's start, then along t2 while
// holding t1's end, or the reverse) stays within bound; only when those
// are inconclusive does it run the full dynamic program.
func Within(t1, t2 trajectory.Trajectory, bound float64) bool {
	if startEndHeuristic(t1, t2, bound) {
		return false
	}
	if !anyExceedsBound(boundaryPairs(t1, t2), t1, t2, bound) {
		return true
	}
	if !anyExceedsBound(reverseBoundaryPairs(t1, t2), t1, t2, bound) {
		return true
	}
	return Distance(t1, t2) <= bound
}

// Distance computes the exact discrete Fréchet distance between t1 and
// t2 via the classic dynamic program, using only two rolling rows of
// the (n x m) coupling matrix rather than materializing it in full.
func Distance(t1, t2 trajectory.Trajectory) float64 {
	n, m := t1.Len(), t2.Len()
	prev := make([]float64, n)
	cur := make([]float64, n)

	cur[0] = math.Sqrt(sqDist(t1.At(0), t2.At(0)))
	for i := 1; i < n; i++ {
		cur[i] = math.Max(math.Sqrt(sqDist(t1.At(i), t2.At(0))), cur[i-1])
	}

	for j := 1; j < m; j++ {
		prev, cur = cur, prev
		cur[0] = math.Max(math.Sqrt(sqDist(t1.At(0), t2.At(j))), prev[0])
		for i := 1; i < n; i++ {
			d := math.Sqrt(sqDist(t1.At(i), t2.At(j)))
			cur[i] = math.Max(d, math.Min(cur[i-1], math.Min(prev[i], prev[i-1])))
		}
	}

	return cur[n-1]
}

package frechet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"trajdyft/trajectory"
)

func line(points ...trajectory.Point) trajectory.Trajectory {
	return trajectory.New(points)
}

func TestDistanceIdenticalTrajectoriesIsZero(t *testing.T) {
	t1 := line(trajectory.Point{X: 0, Y: 0}, trajectory.Point{X: 1, Y: 0}, trajectory.Point{X: 2, Y: 0})
	assert.InDelta(t, 0.0, Distance(t1, t1), 1e-9)
}

func TestDistanceParallelOffsetLines(t *testing.T) {
	t1 := line(trajectory.Point{X: 0, Y: 0}, trajectory.Point{X: 1, Y: 0}, trajectory.Point{X: 2, Y: 0})
	t2 := line(trajectory.Point{X: 0, Y: 1}, trajectory.Point{X: 1, Y: 1}, trajectory.Point{X: 2, Y: 1})
	assert.InDelta(t, 1.0, Distance(t1, t2), 1e-9)
}

func TestWithinMatchesDistanceWhenHeuristicsInconclusive(t *testing.T) {
	t1 := line(trajectory.Point{X: 0, Y: 0}, trajectory.Point{X: 1, Y: 0}, trajectory.Point{X: 2, Y: 0})
	t2 := line(trajectory.Point{X: 0, Y: 0.5}, trajectory.Point{X: 1, Y: 0.5}, trajectory.Point{X: 2, Y: 0.5})

	d := Distance(t1, t2)
	assert.True(t, Within(t1, t2, d+1e-6))
	assert.False(t, Within(t1, t2, d-1e-6))
}

func TestWithinRejectsOnStartEndHeuristic(t *testing.T) {
	t1 := line(trajectory.Point{X: 0, Y: 0}, trajectory.Point{X: 1, Y: 0})
	t2 := line(trajectory.Point{X: 100, Y: 100}, trajectory.Point{X: 101, Y: 100})
	assert.False(t, Within(t1, t2, 1.0))
}

func TestDistanceUnequalLengthsIsFiniteAndNonNegative(t *testing.T) {
	t1 := line(trajectory.Point{X: 0, Y: 0}, trajectory.Point{X: 3, Y: 4})
	t2 := line(trajectory.Point{X: 0, Y: 0}, trajectory.Point{X: 3, Y: 4}, trajectory.Point{X: 6, Y: 8})
	got := Distance(t1, t2)
	assert.True(t, got >= 0)
	assert.False(t, math.IsNaN(got))
}

// Package trajectory holds the in-memory data model for polygonal
// curves: ordered sequences of 2D points, and the datasets of them that
// get hashed and indexed.
package trajectory

import "trajdyft/errutil"

// Point is a single 2D sample of a trajectory.
type Point struct {
	X, Y float64
}

// Sub returns p minus q, component-wise.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// NormSquared returns the squared Euclidean norm of p.
func (p Point) NormSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Trajectory is an ordered, non-empty sequence of points.
type Trajectory struct {
	points []Point
}

// New builds a Trajectory from a slice of points. pts must not be empty:
// a trajectory with zero points has no start or end and every
// downstream operation (hashing, Fréchet distance) assumes at least one.
// The check is an errutil.BugOn, so it panics only in debug builds.
func New(pts []Point) Trajectory {
	errutil.BugOn(len(pts) == 0, "trajectory.New: empty point slice")
	cp := make([]Point, len(pts))
	copy(cp, pts)
	return Trajectory{points: cp}
}

// Len returns the number of points.
func (t Trajectory) Len() int { return len(t.points) }

// At returns the i-th point.
func (t Trajectory) At(i int) Point { return t.points[i] }

// Points returns the underlying point slice. Callers must not mutate it.
func (t Trajectory) Points() []Point { return t.points }

// First returns the trajectory's first point.
func (t Trajectory) First() Point { return t.points[0] }

// Last returns the trajectory's last point.
func (t Trajectory) Last() Point { return t.points[len(t.points)-1] }

// AppendPoint returns a new Trajectory with p appended.
func (t Trajectory) AppendPoint(p Point) Trajectory {
	cp := make([]Point, len(t.points)+1)
	copy(cp, t.points)
	cp[len(t.points)] = p
	return Trajectory{points: cp}
}

// ID identifies a trajectory within a Dataset by its position.
type ID int

// Dataset is a collection of trajectories with ids, the unit that LSH
// hashing and indexing operate over.
type Dataset struct {
	ids   []ID
	items []Trajectory
}

// NewDataset builds a Dataset assigning sequential ids 0..len(items)-1.
func NewDataset(items []Trajectory) Dataset {
	ids := make([]ID, len(items))
	for i := range items {
		ids[i] = ID(i)
	}
	return Dataset{ids: ids, items: items}
}

// Len returns the number of trajectories in the dataset.
func (d Dataset) Len() int { return len(d.items) }

// Trajectories returns the dataset's trajectories in id order.
func (d Dataset) Trajectories() []Trajectory { return d.items }

// IDs returns the dataset's ids in the same order as Trajectories.
func (d Dataset) IDs() []ID { return d.ids }

// At returns the trajectory with the given id.
func (d Dataset) At(id ID) Trajectory { return d.items[id] }

// MaxLength returns the length, in points, of the longest trajectory in
// the dataset. LSH hasher initialization needs this to size its
// coefficient tables.
func (d Dataset) MaxLength() int {
	max := 0
	for _, t := range d.items {
		if t.Len() > max {
			max = t.Len()
		}
	}
	return max
}

// Take returns the first n trajectories of the dataset as a new Dataset,
// preserving original ids. It is a no-op if n >= d.Len().
func (d Dataset) Take(n int) Dataset {
	if n >= len(d.items) {
		return d
	}
	return Dataset{ids: append([]ID(nil), d.ids[:n]...), items: append([]Trajectory(nil), d.items[:n]...)}
}

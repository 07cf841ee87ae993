package vcode

import "trajdyft/errutil"

// SketchArray is a flat store of many equal-length sketches, the unit a
// dataset is hashed into before indexing or querying.
type SketchArray[W Word] struct {
	dims  int // words per sketch
	words []W
}

// NewSketchArray creates an empty array for sketches of the given
// dimensionality (words per sketch, i.e. the LSH repetition count L).
func NewSketchArray[W Word](dims int) *SketchArray[W] {
	errutil.BugOn(dims <= 0, "vcode.NewSketchArray: dims must be positive")
	return &SketchArray[W]{dims: dims}
}

// FromSketches builds a SketchArray out of a sequence of already-hashed
// sketches, as when hashing an entire dataset up front.
func FromSketches[W Word](sketches []Sketch[W], dims int) *SketchArray[W] {
	a := NewSketchArray[W](dims)
	for _, s := range sketches {
		a.Append(s)
	}
	return a
}

// Append adds one sketch to the array. Its length must equal the
// array's dimensionality.
func (a *SketchArray[W]) Append(s Sketch[W]) {
	errutil.BugOn(len(s) != a.dims, "vcode.SketchArray.Append: expected %d words, got %d", a.dims, len(s))
	a.words = append(a.words, s...)
}

// Dims returns the words-per-sketch of every entry in the array.
func (a *SketchArray[W]) Dims() int { return a.dims }

// Size returns the number of sketches stored.
func (a *SketchArray[W]) Size() int {
	if a.dims == 0 {
		return 0
	}
	return len(a.words) / a.dims
}

// Access returns the id-th sketch. The returned slice aliases the
// array's backing storage; callers must not mutate it.
func (a *SketchArray[W]) Access(id int) Sketch[W] {
	start := id * a.dims
	return Sketch[W](a.words[start : start+a.dims])
}

// HamDistRadius reports the Hamming distance between the id-th stored
// sketch and the query sketch, with the same early-exit semantics as the
// package-level HamDistRadius.
func (a *SketchArray[W]) HamDistRadius(id int, query Sketch[W], bitsPerLevel, radius int) (int, bool) {
	return HamDistRadius(a.Access(id), query, bitsPerLevel, radius)
}

// LinearSearch returns every (i, j) pair with i < a.Size(), j < b.Size(),
// whose Hamming distance is at most radius. It is a brute-force scan
// over every pair, usable on its own for small datasets: every pair is
// independent, so it parallelizes trivially if a caller wants to shard it.
func LinearSearch[W Word](a, b *SketchArray[W], bitsPerLevel, radius int) [][2]int {
	var out [][2]int
	for i := 0; i < a.Size(); i++ {
		si := a.Access(i)
		for j := 0; j < b.Size(); j++ {
			if _, ok := HamDistRadius(si, b.Access(j), bitsPerLevel, radius); ok {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

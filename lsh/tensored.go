package lsh

import (
	"math"
	"math/rand"

	"trajdyft/trajectory"
	"trajdyft/vcode"
)

// HasherCtor builds one sub-hasher of the given grid resolution, sized
// for trajectories up to maxLen points, drawing its randomness from rng.
type HasherCtor[W vcode.Word] func(resolution float64, maxLen int, rng *rand.Rand) Hasher[W]

// LinearHasherCtor builds LinearHash sub-hashers.
func LinearHasherCtor[W vcode.Word]() HasherCtor[W] {
	return func(resolution float64, maxLen int, rng *rand.Rand) Hasher[W] {
		return NewLinearHash[W](resolution, maxLen, rng)
	}
}

// ConstantHasherCtor builds ConstantHash sub-hashers, deriving each
// instance's perturbation seed from the shared random stream.
func ConstantHasherCtor[W vcode.Word]() HasherCtor[W] {
	return func(resolution float64, maxLen int, rng *rand.Rand) Hasher[W] {
		return NewConstantHash[W](resolution, maxLen, rng.Uint64(), rng)
	}
}

func repetitions(l int) int {
	return int(math.Ceil(math.Sqrt(float64(l))))
}

func kCoefficients[W vcode.Word](n int, rng *rand.Rand) []W {
	out := make([]W, n)
	for i := range out {
		out[i] = W(rng.Uint64())
	}
	return out
}

// TensoredHasher combines many cheap k-wide sub-hashes into L
// independent sketch words: k is split into a left half and a right
// half, R = ceil(sqrt(L)) independent rows of each half are built, and
// the L outputs are the first L entries (row-major) of the R x R cross
// product of left-row-hash x right-row-hash.
//
// This lets L grow quadratically in R while only needing O(R) sub-hash
// evaluations per half per trajectory, instead of O(L).
type TensoredHasher[W vcode.Word] struct {
	l                  int
	repetitions        int
	leftRows           [][]Hasher[W]
	rightRows          [][]Hasher[W]
	blockCoeffsLeft    []W
	blockCoeffsRight   []W
	combineCoefficient [2]W
}

// NewTensoredHasher builds a TensoredHasher producing l sketch words out
// of k-wide sub-hash blocks, for trajectories up to maxLen points, using
// ctor to build each individual sub-hasher.
func NewTensoredHasher[W vcode.Word](l, k int, resolution float64, maxLen int, seed uint64, ctor HasherCtor[W]) *TensoredHasher[W] {
	rng := rand.New(rand.NewSource(int64(seed)))
	r := repetitions(l)
	kLeft := (k + 1) / 2
	kRight := k / 2

	leftRows := make([][]Hasher[W], r)
	rightRows := make([][]Hasher[W], r)
	for i := 0; i < r; i++ {
		leftRows[i] = make([]Hasher[W], kLeft)
		for j := 0; j < kLeft; j++ {
			leftRows[i][j] = ctor(resolution, maxLen, rng)
		}
		rightRows[i] = make([]Hasher[W], kRight)
		for j := 0; j < kRight; j++ {
			rightRows[i][j] = ctor(resolution, maxLen, rng)
		}
	}

	return &TensoredHasher[W]{
		l:                  l,
		repetitions:        r,
		leftRows:           leftRows,
		rightRows:          rightRows,
		blockCoeffsLeft:    kCoefficients[W](kLeft, rng),
		blockCoeffsRight:   kCoefficients[W](kRight, rng),
		combineCoefficient: [2]W{W(rng.Uint64()), W(rng.Uint64())},
	}
}

func (h *TensoredHasher[W]) blockHash(row []Hasher[W], coeffs []W, t trajectory.Trajectory, query bool) W {
	var acc W
	for idx, sub := range row {
		var v W
		if query {
			v = sub.HashQuery(t)
		} else {
			v = sub.Hash(t)
		}
		acc += coeffs[idx] * v
	}
	return acc >> uint(vcode.WordBits[W]()/2)
}

func (h *TensoredHasher[W]) multiHash(t trajectory.Trajectory, query bool) []W {
	left := make([]W, h.repetitions)
	right := make([]W, h.repetitions)
	for i := 0; i < h.repetitions; i++ {
		left[i] = h.blockHash(h.leftRows[i], h.blockCoeffsLeft, t, query)
		right[i] = h.blockHash(h.rightRows[i], h.blockCoeffsRight, t, query)
	}

	out := make([]W, 0, h.l)
	for i := 0; i < h.repetitions && len(out) < h.l; i++ {
		for j := 0; j < h.repetitions && len(out) < h.l; j++ {
			v := left[i]*h.combineCoefficient[0] + right[j]*h.combineCoefficient[1]
			v >>= uint(vcode.WordBits[W]()/2)
			out = append(out, v)
		}
	}
	return out
}

// MultiHash produces the L-word sketch for a data-side trajectory.
func (h *TensoredHasher[W]) MultiHash(t trajectory.Trajectory) vcode.Sketch[W] {
	return vcode.Sketch[W](h.multiHash(t, false))
}

// MultiHashQuery produces the L-word sketch for a query-side trajectory.
func (h *TensoredHasher[W]) MultiHashQuery(t trajectory.Trajectory) vcode.Sketch[W] {
	return vcode.Sketch[W](h.multiHash(t, true))
}

// L returns the sketch width this hasher produces.
func (h *TensoredHasher[W]) L() int { return h.l }

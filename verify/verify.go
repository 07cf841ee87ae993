// Package verify turns trie candidates into confirmed matches. A trie
// query returns everything whose packed path lies within an error
// budget of the query's path: a superset of the true answer that still
// needs a distance check. Filter applies that check in three tiers, so
// the expensive one (discrete Fréchet distance on the original
// trajectories) only runs on the candidates a cheap Hamming bound
// couldn't already decide.
package verify

import (
	"math"

	"trajdyft/frechet"
	"trajdyft/trajectory"
	"trajdyft/vcode"
)

// Candidate is one (query index, dataset index) pair the trie's search
// produced.
type Candidate struct {
	Query     int
	Candidate int
}

// Result holds the filtered candidate set plus a breakdown of how many
// candidates were decided at each tier, so callers can judge how much
// work the Hamming bound saved.
type Result struct {
	Candidates []Candidate

	// PartialVerificationCount counts candidates accepted on the cheap
	// Hamming bound alone (distance <= Rlo), without touching the
	// original trajectories.
	PartialVerificationCount int

	// FullVerificationCount counts candidates that needed the discrete
	// Fréchet distance check (Rlo < Hamming distance <= Radius).
	FullVerificationCount int

	// FilteredCount counts candidates rejected outright (Hamming
	// distance > Radius).
	FilteredCount int
}

// Rlo is the lowered Hamming radius the cheap first tier accepts on:
// radius minus the floor of its square root. Within Rlo, the
// tensored-LSH false-positive rate is low enough that a full Fréchet
// check isn't worth paying for; between Rlo and radius, it is.
func Rlo(radius int) int {
	return radius - int(math.Floor(math.Sqrt(float64(radius))))
}

// Filter verifies every trie candidate, for whichever query produced it,
// against the dataset, using sketches for the cheap Hamming tiers and trajectories
// for the Fréchet tier. distance is the discrete Fréchet distance
// threshold; candidates whose Hamming distance exceeds radius are
// rejected without computing it.
func Filter[W vcode.Word](
	candidates []Candidate,
	dataset *vcode.SketchArray[W],
	queries *vcode.SketchArray[W],
	trajectories trajectory.Dataset,
	querySet trajectory.Dataset,
	bitsPerLevel int,
	radius int,
	distance float64,
) Result {
	rlo := Rlo(radius)
	var res Result
	res.Candidates = make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		q := queries.Access(c.Query)
		d := dataset.Access(c.Candidate)

		ham, within := vcode.HamDistRadius(d, q, bitsPerLevel, rlo)
		if within {
			res.PartialVerificationCount++
			res.Candidates = append(res.Candidates, c)
			continue
		}
		if ham <= radius {
			// the early-exit accumulator may have stopped short of
			// the true distance once it crossed rlo; rerun without a
			// bound to get the exact count against radius.
			ham = vcode.HamDist(d, q, bitsPerLevel)
		}
		if ham > radius {
			res.FilteredCount++
			continue
		}
		res.FullVerificationCount++
		if frechet.Within(querySet.At(trajectory.ID(c.Query)), trajectories.At(trajectory.ID(c.Candidate)), distance) {
			res.Candidates = append(res.Candidates, c)
		}
	}
	return res
}

// NoVerification wraps raw trie candidates into a Result without
// touching distances at all, for callers that trust the trie's error
// budget alone (e.g. exploratory queries, or radius-0 exact search).
func NoVerification(candidates []Candidate) Result {
	return Result{Candidates: candidates}
}

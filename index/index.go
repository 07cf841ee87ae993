// Package index wires the tensored LSH front-end and the DyFT trie
// back-end into one facade: hash a dataset, build or incrementally grow
// the trie over its sketches, and query it with or without distance
// verification.
package index

import (
	"trajdyft/config"
	"trajdyft/dyft"
	"trajdyft/lsh"
	"trajdyft/trajectory"
	"trajdyft/vcode"
	"trajdyft/verify"
)

// Index couples a tensored hasher with a trie over the sketches it
// produces. W is the sketch word type (uint8/16/32/64); the ctor passed
// to New selects which per-block sub-hasher family (LinearHash or
// ConstantHash) the tensored hasher is built from.
type Index[W vcode.Word] struct {
	hasher       *lsh.TensoredHasher[W]
	trie         *dyft.Trie[W]
	bitsPerLevel int
	radius       int
	distance     *float64
}

// New builds an empty index for trajectories up to maxLen points long,
// from the given configuration. ctor selects the LSH sub-hasher family.
func New[W vcode.Word](cfg config.IndexConfig[config.DyftConfig], maxLen int, ctor lsh.HasherCtor[W]) *Index[W] {
	lshCfg := cfg.LshParams()
	dyftCfg := cfg.IndexParams()

	hasher := lsh.NewTensoredHasher[W](lshCfg.L, lshCfg.K, lshCfg.Resolution, maxLen, lshCfg.Seed, ctor)
	trie := dyft.NewTrie[W](dyft.Params{
		BitsPerLevel:   dyftCfg.BitsPerLevel,
		Dims:           hasher.L(),
		ErrorBudget:    dyftCfg.ErrorBudget,
		Radius:         dyftCfg.Radius,
		InWeight:       dyftCfg.InWeight,
		SplitThreshold: dyftCfg.SplitThreshold,
	})

	return &Index[W]{
		hasher:       hasher,
		trie:         trie,
		bitsPerLevel: dyftCfg.BitsPerLevel,
		radius:       dyftCfg.Radius,
		distance:     dyftCfg.Distance,
	}
}

// HashDataset hashes every trajectory in the dataset with the index's
// data-side hash.
func (idx *Index[W]) HashDataset(dataset trajectory.Dataset) *vcode.SketchArray[W] {
	return idx.hashAll(dataset, false)
}

// HashQuerySet hashes every trajectory in the dataset with the index's
// query-side hash, which for some hasher families (ConstantHash) differs
// from the data-side hash.
func (idx *Index[W]) HashQuerySet(dataset trajectory.Dataset) *vcode.SketchArray[W] {
	return idx.hashAll(dataset, true)
}

func (idx *Index[W]) hashAll(dataset trajectory.Dataset, query bool) *vcode.SketchArray[W] {
	sketches := vcode.NewSketchArray[W](idx.hasher.L())
	for _, t := range dataset.Trajectories() {
		var s vcode.Sketch[W]
		if query {
			s = idx.hasher.MultiHashQuery(t)
		} else {
			s = idx.hasher.MultiHash(t)
		}
		sketches.Append(s)
	}
	return sketches
}

// Build indexes the first n sketches of database from scratch.
func (idx *Index[W]) Build(database *vcode.SketchArray[W], n int) {
	idx.trie.Build(database, n)
}

// Append indexes the most recently appended sketch of database.
func (idx *Index[W]) Append(database *vcode.SketchArray[W]) {
	idx.trie.Append(database)
}

// Query returns every candidate (query index, dataset index) pair the
// trie's error-budgeted search produces, for every query sketch, with no
// distance verification applied.
func (idx *Index[W]) Query(queries *vcode.SketchArray[W]) []verify.Candidate {
	var out []verify.Candidate
	for q := 0; q < queries.Size(); q++ {
		for _, candidate := range idx.trie.Query(queries.Access(q)) {
			out = append(out, verify.Candidate{Query: q, Candidate: candidate})
		}
	}
	return out
}

// QueryWithVerification runs Query and then filters the candidates
// through verify.Filter using the index's configured radius and
// Fréchet distance threshold, against the original trajectories. When
// no distance is configured, it returns Query's candidates unfiltered
// via verify.NoVerification; no Hamming-radius check is applied then.
func (idx *Index[W]) QueryWithVerification(
	database, queries *vcode.SketchArray[W],
	dataset, querySet trajectory.Dataset,
) verify.Result {
	candidates := idx.Query(queries)
	if idx.distance == nil {
		return verify.NoVerification(candidates)
	}
	return verify.Filter(candidates, database, queries, dataset, querySet, idx.bitsPerLevel, idx.radius, *idx.distance)
}

// Trie exposes the underlying trie, for callers that want its structural
// statistics (see internal/stats.FromTrie).
func (idx *Index[W]) Trie() *dyft.Trie[W] { return idx.trie }

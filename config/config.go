// Package config bundles the parameters that select an index's behavior:
// how its tensored LSH front-end is built, and how its trie back-end
// splits, searches, and verifies. Both halves compose into one
// IndexConfig so a caller only has one value to pass around and persist.
package config

// LshConfig parameterizes the tensored LSH front-end: how many base hash
// functions are concatenated (K), how many are tensored together (L),
// the grid resolution they snap trajectory points to, and the seed that
// makes the whole derivation deterministic.
type LshConfig struct {
	K          int
	L          int
	Resolution float64
	Seed       uint64
}

// DefaultLshConfig mirrors the reference system's defaults.
func DefaultLshConfig() LshConfig {
	return LshConfig{K: 2, L: 8, Resolution: 0.0, Seed: 0}
}

func (c LshConfig) WithK(k int) LshConfig              { c.K = k; return c }
func (c LshConfig) WithL(l int) LshConfig              { c.L = l; return c }
func (c LshConfig) WithResolution(r float64) LshConfig { c.Resolution = r; return c }
func (c LshConfig) WithSeed(seed uint64) LshConfig     { c.Seed = seed; return c }

// DyftConfig parameterizes the trie back-end: the byte-packing width
// (BitsPerLevel), an optional explicit leaf split threshold overriding
// the depth/radius table, the weight applied to that table when no
// override is given, the Hamming radius used at verification time, the
// error budget tolerated while walking the trie during a query, and an
// optional discrete Fréchet distance threshold for a second
// verification pass.
type DyftConfig struct {
	BitsPerLevel   int
	SplitThreshold *int
	InWeight       float64
	Radius         int
	ErrorBudget    int
	Distance       *float64
}

// DefaultDyftConfig mirrors the reference system's MART defaults.
func DefaultDyftConfig() DyftConfig {
	return DyftConfig{
		BitsPerLevel: 8,
		InWeight:     1.0,
		Radius:       8,
		ErrorBudget:  8,
	}
}

func (c DyftConfig) WithBitsPerLevel(bits int) DyftConfig { c.BitsPerLevel = bits; return c }

func (c DyftConfig) WithSplitThreshold(t int) DyftConfig {
	c.SplitThreshold = &t
	return c
}

func (c DyftConfig) WithInWeight(w float64) DyftConfig { c.InWeight = w; return c }
func (c DyftConfig) WithRadius(r int) DyftConfig       { c.Radius = r; return c }
func (c DyftConfig) WithErrorBudget(e int) DyftConfig  { c.ErrorBudget = e; return c }

func (c DyftConfig) WithDistance(d float64) DyftConfig {
	c.Distance = &d
	return c
}

// IndexConfig composes the shared LSH front-end configuration with an
// index-specific back-end configuration (DyftConfig, or any other index
// family's own config type).
type IndexConfig[T any] struct {
	Lsh   LshConfig
	Index T
}

// NewIndexConfig pairs an LSH configuration with a back-end configuration.
func NewIndexConfig[T any](lsh LshConfig, index T) IndexConfig[T] {
	return IndexConfig[T]{Lsh: lsh, Index: index}
}

func (c IndexConfig[T]) WithK(k int) IndexConfig[T] {
	c.Lsh = c.Lsh.WithK(k)
	return c
}

func (c IndexConfig[T]) WithL(l int) IndexConfig[T] {
	c.Lsh = c.Lsh.WithL(l)
	return c
}

func (c IndexConfig[T]) WithResolution(r float64) IndexConfig[T] {
	c.Lsh = c.Lsh.WithResolution(r)
	return c
}

func (c IndexConfig[T]) WithSeed(seed uint64) IndexConfig[T] {
	c.Lsh = c.Lsh.WithSeed(seed)
	return c
}

// LshParams returns the LSH half of the configuration.
func (c IndexConfig[T]) LshParams() LshConfig { return c.Lsh }

// IndexParams returns the back-end half of the configuration.
func (c IndexConfig[T]) IndexParams() T { return c.Index }

// DefaultDyftIndexConfig mirrors the reference system's default
// IndexConfig<MartConfig>.
func DefaultDyftIndexConfig() IndexConfig[DyftConfig] {
	return NewIndexConfig(DefaultLshConfig(), DefaultDyftConfig())
}

package dyft

import (
	"math/bits"
	"sort"

	"trajdyft/dyft/postings"
	"trajdyft/errutil"
	"trajdyft/vcode"
)

// nodeArena is the set of operations every tiered arena provides, so
// the trie's insert/search/promote logic can stay tier-agnostic.
type nodeArena interface {
	MakeNode() Pointer
	MakeNodeWithEdges(edges []Edge) Pointer
	FindChild(id uint32, label byte) (Pointer, bool)
	// InsertPtr rewrites label's pointer in place if the node already has
	// an edge for it (Found), appends a new edge if there's room
	// (Inserted), or returns false if the node is already full and label
	// is new (NeedsExpand).
	InsertPtr(id uint32, label byte, ptr Pointer) bool
	ExtractEdges(id uint32) []Edge
	Edges(id uint32) []Edge
	Free(id uint32)
}

// Trie is the dynamic radix trie indexing fixed-width sketches under
// Hamming distance. Every insertion walks the trie along the byte-packed
// form of a sketch, growing nodes as needed; every query walks the same
// structure within a bounded number of label mismatches, collecting the
// posting lists of every leaf it reaches.
type Trie[W vcode.Word] struct {
	bitsPerLevel int
	maxDepth     int
	errorBudget  int
	radius       int
	inWeight     float64
	explicitSplitThreshold *int

	root     Pointer
	sparse   [5]*sparseArena
	dense    [2]*denseArena
	full     *fullArena
	postings *postings.Table

	leafCount  int
	splitCount int
}

// Params bundles the trie's construction parameters, mirroring the
// index-specific half of the configuration composition (config.DyftConfig).
type Params struct {
	BitsPerLevel   int
	Dims           int // words per sketch (L)
	ErrorBudget    int // max label mismatches tolerated along a search path
	Radius         int // Hamming-distance radius used by verification
	InWeight       float64
	SplitThreshold *int // explicit override; nil means use the depth/radius table
}

// NewTrie builds an empty trie for sketches of p.Dims words packed at
// p.BitsPerLevel bits per trie level.
func NewTrie[W vcode.Word](p Params) *Trie[W] {
	ValidateParams(p.BitsPerLevel, p.Radius)
	errutil.BugOn(p.Dims <= 0, "dyft.NewTrie: dims must be positive")

	t := &Trie[W]{
		bitsPerLevel:           p.BitsPerLevel,
		maxDepth:               vcode.NumBytes(p.Dims, p.BitsPerLevel),
		errorBudget:            p.ErrorBudget,
		radius:                 p.Radius,
		inWeight:               p.InWeight,
		explicitSplitThreshold: p.SplitThreshold,
		postings:               &postings.Table{},
	}
	for i, tier := range sparseTiers {
		t.sparse[i] = newSparseArena(tier)
	}
	for i, tier := range denseTiers {
		t.dense[i] = newDenseArena(tier)
	}
	t.full = newFullArena()
	t.root = t.full.MakeNode()
	return t
}

func (t *Trie[W]) arenaFor(tier Tier) nodeArena {
	switch tier {
	case Tier2:
		return t.sparse[0]
	case Tier4:
		return t.sparse[1]
	case Tier8:
		return t.sparse[2]
	case Tier16:
		return t.sparse[3]
	case Tier32:
		return t.sparse[4]
	case Tier64:
		return t.dense[0]
	case Tier128:
		return t.dense[1]
	case Tier256:
		return t.full
	default:
		errutil.Bug("dyft: no arena for tier %v", tier)
		return nil
	}
}

func (t *Trie[W]) findChild(ptr Pointer, label byte) (Pointer, bool) {
	return t.arenaFor(ptr.Tier).FindChild(ptr.ID, label)
}

func (t *Trie[W]) threshold(depth int) float64 {
	if t.explicitSplitThreshold != nil {
		return float64(*t.explicitSplitThreshold)
	}
	return splitThreshold(depth, t.radius, t.inWeight)
}

// Build indexes the first n sketches of database from scratch.
func (t *Trie[W]) Build(database *vcode.SketchArray[W], n int) {
	for id := 0; id < n; id++ {
		t.insert(id, database)
	}
}

// Append indexes the most recently stored sketch in database (the one
// at index database.Size()-1).
func (t *Trie[W]) Append(database *vcode.SketchArray[W]) {
	t.insert(database.Size()-1, database)
}

func (t *Trie[W]) insert(id int, database *vcode.SketchArray[W]) {
	packed := vcode.Pack(database.Access(id), t.bitsPerLevel)

	cur := t.root
	var parent Pointer
	var parentLabel byte
	for depth := 0; depth < len(packed); depth++ {
		label := packed[depth]
		child, ok := t.findChild(cur, label)
		if !ok {
			leaf := LeafPointer(t.postings.PushNew([]uint32{uint32(id)}))
			t.leafCount++
			t.insertEdge(cur, label, leaf, parent, parentLabel)
			return
		}
		if child.IsLeaf() {
			t.insertIntoOrSplitLeaf(cur, label, child, depth+1, id, database)
			return
		}
		errutil.BugOn(depth == len(packed)-1, "dyft: internal node at max depth")
		parent, parentLabel = cur, label
		cur = child
	}
}

// insertEdge adds a brand new labeled edge to an existing node,
// promoting it to the next tier first if it's already full.
func (t *Trie[W]) insertEdge(node Pointer, label byte, newPtr Pointer, parent Pointer, parentLabel byte) {
	arena := t.arenaFor(node.Tier)
	if arena.InsertPtr(node.ID, label, newPtr) {
		return
	}
	edges := arena.ExtractEdges(node.ID)
	arena.Free(node.ID)

	grown := t.arenaFor(node.Tier.next())
	bigger := grown.MakeNodeWithEdges(edges)
	ok := t.arenaFor(bigger.Tier).InsertPtr(bigger.ID, label, newPtr)
	errutil.BugOn(!ok, "dyft: insert failed immediately after promotion")

	if parent.IsNil() {
		t.root = bigger
		return
	}
	t.updateSrcPtr(parent, parentLabel, bigger)
}

// updateSrcPtr repoints an existing edge of parent at newPtr, after the
// child it used to reference was promoted or split into a new node.
// label already has an edge in parent, so this relies on InsertPtr's
// Found case rewriting that edge's pointer in place rather than
// appending a duplicate.
func (t *Trie[W]) updateSrcPtr(parent Pointer, label byte, newPtr Pointer) {
	ok := t.arenaFor(parent.Tier).InsertPtr(parent.ID, label, newPtr)
	errutil.BugOn(!ok, "dyft: updateSrcPtr: parent has no room to rewrite its own edge")
}

// insertIntoOrSplitLeaf either grows an existing leaf's posting list or,
// once that list would cross its depth-indexed size threshold, replaces
// the leaf with a fresh internal node distinguishing its members by
// their next packed byte.
func (t *Trie[W]) insertIntoOrSplitLeaf(parent Pointer, parentLabel byte, leaf Pointer, depth, newID int, database *vcode.SketchArray[W]) {
	slot := int(leaf.ID)
	curSize := t.postings.Size(slot)

	if depth >= t.maxDepth || float64(curSize+1) <= t.threshold(depth) {
		t.postings.Insert(slot, uint32(newID))
		return
	}

	t.splitCount++
	oldIDs := t.postings.Extract(slot)
	allIDs := append(append([]uint32(nil), oldIDs...), uint32(newID))

	buckets := make(map[byte][]uint32)
	var order []byte
	for _, id := range allIDs {
		b := vcode.PackByte(database.Access(int(id)), t.bitsPerLevel, depth)
		if _, seen := buckets[b]; !seen {
			order = append(order, b)
		}
		buckets[b] = append(buckets[b], id)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	edges := make([]Edge, 0, len(order))
	for _, b := range order {
		newSlot := t.postings.PushNew(buckets[b])
		t.leafCount++
		edges = append(edges, Edge{Label: b, Ptr: LeafPointer(newSlot)})
	}
	t.leafCount-- // the split leaf itself is gone

	tier := smallestFitting(len(edges))
	newNode := t.arenaFor(tier).MakeNodeWithEdges(edges)
	t.updateSrcPtr(parent, parentLabel, newNode)
}

// Query returns every stored id whose packed path lies within the
// trie's configured error budget of query's packed path. This is a
// candidate set, not a verified result: verify.Filter narrows it to
// a true Hamming- or Fréchet-bounded match set.
func (t *Trie[W]) Query(query vcode.Sketch[W]) []int {
	packed := vcode.Pack(query, t.bitsPerLevel)
	var out []int
	t.search(t.root, 0, packed, t.errorBudget, &out)
	return out
}

func (t *Trie[W]) search(ptr Pointer, depth int, packed []byte, budget int, out *[]int) {
	if ptr.IsNil() {
		return
	}
	if ptr.IsLeaf() {
		for _, id := range t.postings.Access(int(ptr.ID)) {
			*out = append(*out, int(id))
		}
		return
	}
	queryLabel := byte(0)
	if depth < len(packed) {
		queryLabel = packed[depth]
	}
	for _, e := range t.arenaFor(ptr.Tier).Edges(ptr.ID) {
		// cost is the bit-level Hamming distance between the two packed
		// labels, not a byte-equality check: a multi-bit label can still
		// be within budget if only some of its bits differ.
		cost := bits.OnesCount8(e.Label ^ queryLabel)
		if cost > budget {
			continue
		}
		t.search(e.Ptr, depth+1, packed, budget-cost, out)
	}
}

// LeafCount returns the number of live leaves (posting-list slots
// currently reachable from the root).
func (t *Trie[W]) LeafCount() int { return t.leafCount }

// SplitCount returns the number of times a leaf has been split into an
// internal node since the trie was created.
func (t *Trie[W]) SplitCount() int { return t.splitCount }

// MaxDepth returns the maximum number of packed bytes any path through
// the trie can have, i.e. the sketch's packed length.
func (t *Trie[W]) MaxDepth() int { return t.maxDepth }

// TierPopulation describes the occupancy of every live node of one tier:
// its capacity, and the edge count of each allocated node.
type TierPopulation struct {
	Tier  Tier
	Nodes []int
}

// Sum returns the total number of edges stored across every node of the
// tier.
func (p TierPopulation) Sum() int {
	s := 0
	for _, n := range p.Nodes {
		s += n
	}
	return s
}

// Empty returns how many of the tier's live nodes currently hold no
// edges at all (the root, before anything has been inserted).
func (p TierPopulation) Empty() int {
	e := 0
	for _, n := range p.Nodes {
		if n == 0 {
			e++
		}
	}
	return e
}

// PopulationStats returns the occupancy of every tier, in promotion
// order, for reporting how the trie's memory is spread across tiers.
func (t *Trie[W]) PopulationStats() []TierPopulation {
	var out []TierPopulation
	for _, a := range t.sparse {
		out = append(out, TierPopulation{Tier: a.tier, Nodes: a.Population()})
	}
	for _, a := range t.dense {
		out = append(out, TierPopulation{Tier: a.tier, Nodes: a.Population()})
	}
	out = append(out, TierPopulation{Tier: Tier256, Nodes: t.full.Population()})
	return out
}

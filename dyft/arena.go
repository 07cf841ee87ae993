package dyft

import "trajdyft/errutil"

// sparseNode holds a node's edges as a parallel label array and pointer
// array, scanned linearly on lookup. This is the right layout for small
// fan-out: no space wasted on an index, and a handful of comparisons is
// cheaper than computing one.
type sparseNode struct {
	count  int
	labels []byte
	ptrs   []Pointer
}

// sparseArena stores every node of one sparse tier (2, 4, 8, 16 or 32
// children).
type sparseArena struct {
	tier     Tier
	cap      int
	nodes    []*sparseNode
	freeList []uint32
}

func newSparseArena(tier Tier) *sparseArena {
	return &sparseArena{tier: tier, cap: tier.Cap()}
}

func (a *sparseArena) alloc() uint32 {
	if n := len(a.freeList); n > 0 {
		id := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		a.nodes[id] = &sparseNode{labels: make([]byte, 0, a.cap), ptrs: make([]Pointer, 0, a.cap)}
		return id
	}
	a.nodes = append(a.nodes, &sparseNode{labels: make([]byte, 0, a.cap), ptrs: make([]Pointer, 0, a.cap)})
	return uint32(len(a.nodes) - 1)
}

// MakeNode allocates a fresh, empty node and returns a pointer to it.
func (a *sparseArena) MakeNode() Pointer {
	return Pointer{ID: a.alloc(), Tier: a.tier}
}

// MakeNodeWithEdges allocates a node pre-populated with edges, stored in
// the order given: ascending label after a split, insertion order after
// a promotion. Lookup scans linearly, so the order does not matter.
func (a *sparseArena) MakeNodeWithEdges(edges []Edge) Pointer {
	errutil.BugOn(len(edges) > a.cap, "dyft.sparseArena: %d edges do not fit tier cap %d", len(edges), a.cap)
	id := a.alloc()
	n := a.nodes[id]
	for _, e := range edges {
		n.labels = append(n.labels, e.Label)
		n.ptrs = append(n.ptrs, e.Ptr)
	}
	n.count = len(edges)
	return Pointer{ID: id, Tier: a.tier}
}

// FindChild returns the edge for label, if any.
func (a *sparseArena) FindChild(id uint32, label byte) (Pointer, bool) {
	n := a.nodes[id]
	for i := 0; i < n.count; i++ {
		if n.labels[i] == label {
			return n.ptrs[i], true
		}
	}
	return NilPointer, false
}

// InsertPtr implements the Found/Inserted/NeedsExpand tri-state as a
// bool: if label already has an edge, its pointer is rewritten in place
// (Found) and InsertPtr always succeeds; otherwise a new edge is
// appended (Inserted) if there's room, or InsertPtr returns false
// (NeedsExpand) so the caller promotes the node to the next tier.
func (a *sparseArena) InsertPtr(id uint32, label byte, ptr Pointer) bool {
	n := a.nodes[id]
	for i := 0; i < n.count; i++ {
		if n.labels[i] == label {
			n.ptrs[i] = ptr
			return true
		}
	}
	if n.count >= a.cap {
		return false
	}
	n.labels = append(n.labels, label)
	n.ptrs = append(n.ptrs, ptr)
	n.count++
	return true
}

// ExtractEdges returns a copy of every edge of the node, in insertion
// order. The node itself is left unchanged; Free releases it.
func (a *sparseArena) ExtractEdges(id uint32) []Edge {
	n := a.nodes[id]
	out := make([]Edge, n.count)
	for i := 0; i < n.count; i++ {
		out[i] = Edge{Label: n.labels[i], Ptr: n.ptrs[i]}
	}
	return out
}

// Edges returns every edge of the node without removing them.
func (a *sparseArena) Edges(id uint32) []Edge {
	return a.ExtractEdges(id)
}

// Free returns the node's storage to the arena's free list.
func (a *sparseArena) Free(id uint32) {
	a.nodes[id] = nil
	a.freeList = append(a.freeList, id)
}

// Population returns the edge count of every live node in the arena, for
// the internal/stats package's per-tier occupancy report.
func (a *sparseArena) Population() []int {
	out := make([]int, 0, len(a.nodes)-len(a.freeList))
	for _, n := range a.nodes {
		if n != nil {
			out = append(out, n.count)
		}
	}
	return out
}

const nilSlot = 0xFF

// denseNode holds a 256-entry label-to-slot index alongside a compact
// pointer array, so lookup is one indexed read instead of a scan.
type denseNode struct {
	count int
	index [256]byte
	ptrs  []Pointer
}

// denseArena stores every node of one dense tier (64 or 128 children).
type denseArena struct {
	tier     Tier
	cap      int
	nodes    []*denseNode
	freeList []uint32
}

func newDenseArena(tier Tier) *denseArena {
	return &denseArena{tier: tier, cap: tier.Cap()}
}

func newDenseNode(cap int) *denseNode {
	n := &denseNode{ptrs: make([]Pointer, 0, cap)}
	for i := range n.index {
		n.index[i] = nilSlot
	}
	return n
}

func (a *denseArena) alloc() uint32 {
	if k := len(a.freeList); k > 0 {
		id := a.freeList[k-1]
		a.freeList = a.freeList[:k-1]
		a.nodes[id] = newDenseNode(a.cap)
		return id
	}
	a.nodes = append(a.nodes, newDenseNode(a.cap))
	return uint32(len(a.nodes) - 1)
}

func (a *denseArena) MakeNode() Pointer {
	return Pointer{ID: a.alloc(), Tier: a.tier}
}

func (a *denseArena) MakeNodeWithEdges(edges []Edge) Pointer {
	errutil.BugOn(len(edges) > a.cap, "dyft.denseArena: %d edges do not fit tier cap %d", len(edges), a.cap)
	id := a.alloc()
	n := a.nodes[id]
	for i, e := range edges {
		n.index[e.Label] = byte(i)
		n.ptrs = append(n.ptrs, e.Ptr)
	}
	n.count = len(edges)
	return Pointer{ID: id, Tier: a.tier}
}

func (a *denseArena) FindChild(id uint32, label byte) (Pointer, bool) {
	n := a.nodes[id]
	slot := n.index[label]
	if slot == nilSlot {
		return NilPointer, false
	}
	return n.ptrs[slot], true
}

// InsertPtr rewrites label's existing slot in place if it has one
// (Found), otherwise appends a new slot (Inserted) if there's room, or
// reports NeedsExpand by returning false.
func (a *denseArena) InsertPtr(id uint32, label byte, ptr Pointer) bool {
	n := a.nodes[id]
	if slot := n.index[label]; slot != nilSlot {
		n.ptrs[slot] = ptr
		return true
	}
	if n.count >= a.cap {
		return false
	}
	n.index[label] = byte(n.count)
	n.ptrs = append(n.ptrs, ptr)
	n.count++
	return true
}

func (a *denseArena) ExtractEdges(id uint32) []Edge {
	n := a.nodes[id]
	out := make([]Edge, 0, n.count)
	for label := 0; label < 256; label++ {
		slot := n.index[label]
		if slot != nilSlot {
			out = append(out, Edge{Label: byte(label), Ptr: n.ptrs[slot]})
		}
	}
	return out
}

func (a *denseArena) Edges(id uint32) []Edge {
	return a.ExtractEdges(id)
}

func (a *denseArena) Free(id uint32) {
	a.nodes[id] = nil
	a.freeList = append(a.freeList, id)
}

// Population returns the edge count of every live node in the arena.
func (a *denseArena) Population() []int {
	out := make([]int, 0, len(a.nodes)-len(a.freeList))
	for _, n := range a.nodes {
		if n != nil {
			out = append(out, n.count)
		}
	}
	return out
}

// fullNode holds a direct 256-entry pointer array indexed by label: no
// index indirection needed since there's exactly one slot per label.
type fullNode struct {
	ptrs [256]Pointer
}

// fullArena stores every node of the top tier (all 256 children).
type fullArena struct {
	nodes    []*fullNode
	freeList []uint32
}

func newFullArena() *fullArena { return &fullArena{} }

func (a *fullArena) alloc() uint32 {
	if k := len(a.freeList); k > 0 {
		id := a.freeList[k-1]
		a.freeList = a.freeList[:k-1]
		n := &fullNode{}
		for i := range n.ptrs {
			n.ptrs[i] = NilPointer
		}
		a.nodes[id] = n
		return id
	}
	n := &fullNode{}
	for i := range n.ptrs {
		n.ptrs[i] = NilPointer
	}
	a.nodes = append(a.nodes, n)
	return uint32(len(a.nodes) - 1)
}

func (a *fullArena) MakeNode() Pointer {
	return Pointer{ID: a.alloc(), Tier: Tier256}
}

func (a *fullArena) MakeNodeWithEdges(edges []Edge) Pointer {
	id := a.alloc()
	n := a.nodes[id]
	for _, e := range edges {
		n.ptrs[e.Label] = e.Ptr
	}
	return Pointer{ID: id, Tier: Tier256}
}

func (a *fullArena) FindChild(id uint32, label byte) (Pointer, bool) {
	p := a.nodes[id].ptrs[label]
	return p, !p.IsNil()
}

// InsertPtr always succeeds for the full tier: every label already has a
// reserved slot.
func (a *fullArena) InsertPtr(id uint32, label byte, ptr Pointer) bool {
	a.nodes[id].ptrs[label] = ptr
	return true
}

func (a *fullArena) ExtractEdges(id uint32) []Edge {
	n := a.nodes[id]
	out := make([]Edge, 0, 256)
	for label := 0; label < 256; label++ {
		if !n.ptrs[label].IsNil() {
			out = append(out, Edge{Label: byte(label), Ptr: n.ptrs[label]})
		}
	}
	return out
}

func (a *fullArena) Edges(id uint32) []Edge {
	return a.ExtractEdges(id)
}

func (a *fullArena) Free(id uint32) {
	a.nodes[id] = nil
	a.freeList = append(a.freeList, id)
}

// Population returns the edge count of every live node in the arena.
func (a *fullArena) Population() []int {
	out := make([]int, 0, len(a.nodes)-len(a.freeList))
	for _, n := range a.nodes {
		if n == nil {
			continue
		}
		count := 0
		for _, p := range n.ptrs {
			if !p.IsNil() {
				count++
			}
		}
		out = append(out, count)
	}
	return out
}

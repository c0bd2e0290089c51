package gfase

// edgeKey is the canonical, order-independent key for an edge between two
// node ids: lo is always <= hi (spec invariant I1).
type edgeKey struct {
	lo, hi int32
}

func canonicalEdge(a, b int32) edgeKey {
	return edgeKey{lo: min32(a, b), hi: max32(a, b)}
}

// MultiNode is a single node record in a MultiContactGraph: its partition
// label, adjacency, coverage/length scalars, and its alt set. It mirrors
// gfase::MultiNode from the original C++ implementation.
type MultiNode struct {
	Partition int8
	Neighbors map[int32]struct{}
	Coverage  int64
	Length    int32
	Alts      map[int32]struct{}
}

func newMultiNode(partition int8) *MultiNode {
	return &MultiNode{
		Partition: partition,
		Neighbors: make(map[int32]struct{}),
		Alts:      make(map[int32]struct{}),
	}
}

// HasAlt reports whether this node belongs to an alt component.
func (n *MultiNode) HasAlt() bool {
	return len(n.Alts) > 0
}

// Graph is the node & edge store (L1) plus the alt-component engine (L2)
// and the scoring/optimization surface (L3) that are layered on top of it
// in altgraph.go, score.go and optimize.go. It corresponds to GFAse's
// MultiContactGraph.
type Graph struct {
	nodes   map[int32]*MultiNode
	weights map[edgeKey]int32
	maxID   int32
}

// NewGraph returns an empty contact graph, with MaxID() = -1 per spec I6.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[int32]*MultiNode),
		weights: make(map[edgeKey]int32),
		maxID:   -1,
	}
}

// Clone returns a deep copy suitable for a worker's private working copy
// (spec §5: L1/L2 are not thread-safe and are single-owner per worker).
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		nodes:   make(map[int32]*MultiNode, len(g.nodes)),
		weights: make(map[edgeKey]int32, len(g.weights)),
		maxID:   g.maxID,
	}
	for id, n := range g.nodes {
		cn := newMultiNode(n.Partition)
		cn.Coverage = n.Coverage
		cn.Length = n.Length
		for nb := range n.Neighbors {
			cn.Neighbors[nb] = struct{}{}
		}
		for alt := range n.Alts {
			cn.Alts[alt] = struct{}{}
		}
		clone.nodes[id] = cn
	}
	for e, w := range g.weights {
		clone.weights[e] = w
	}
	return clone
}

// Size returns the number of nodes.
func (g *Graph) Size() int {
	return len(g.nodes)
}

// MaxID returns max(keys(nodes)), or -1 if the graph is empty (spec I6).
func (g *Graph) MaxID() int32 {
	return g.maxID
}

// HasNode reports whether id is present.
func (g *Graph) HasNode(id int32) bool {
	_, ok := g.nodes[id]
	return ok
}

// InsertNode creates a node with the given partition, default 0.
// Returns ErrInvalidPartition if partition is outside {-1,0,1}.
func (g *Graph) InsertNode(id int32, partition int8) error {
	if partition < -1 || partition > 1 {
		return invalidPartitionError(partition)
	}
	g.nodes[id] = newMultiNode(partition)
	if id > g.maxID {
		g.maxID = id
	}
	return nil
}

// TryInsertNode inserts id with partition 0 only if absent (idempotent, B1).
func (g *Graph) TryInsertNode(id int32) {
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = newMultiNode(0)
	}
	if id > g.maxID {
		g.maxID = id
	}
}

// TryInsertNodeWithPartition inserts id with the given partition only if
// absent.
func (g *Graph) TryInsertNodeWithPartition(id int32, partition int8) error {
	if partition < -1 || partition > 1 {
		return invalidPartitionError(partition)
	}
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = newMultiNode(partition)
	}
	if id > g.maxID {
		g.maxID = id
	}
	return nil
}

// RemoveNode removes id, every edge incident on it, and clears every
// reverse alt reference (spec P7). Recomputes MaxID if id was the max.
func (g *Graph) RemoveNode(id int32) error {
	n, ok := g.nodes[id]
	if !ok {
		return unknownNodeError(id)
	}

	for nb := range n.Neighbors {
		g.removeEdgeUnchecked(id, nb)
	}

	for alt := range n.Alts {
		if altNode, ok := g.nodes[alt]; ok {
			delete(altNode.Alts, id)
		}
	}

	delete(g.nodes, id)

	if id == g.maxID {
		newMax := int32(-1)
		for other := range g.nodes {
			if other > newMax {
				newMax = other
			}
		}
		g.maxID = newMax
	}
	return nil
}

// insertEdge is the unsafe internal constructor: callers must already
// know both nodes exist and the edge does not.
func (g *Graph) insertEdge(a, b int32, weight int32) {
	e := canonicalEdge(a, b)
	g.weights[e] = weight
	if a != b {
		g.nodes[a].Neighbors[b] = struct{}{}
		g.nodes[b].Neighbors[a] = struct{}{}
	}
}

// TryInsertEdge inserts an edge with the given default weight if one does
// not already exist between a and b; a no-op otherwise.
func (g *Graph) TryInsertEdge(a, b int32, defaultWeight int32) error {
	if !g.HasNode(a) {
		return unknownNodeError(a)
	}
	if _, ok := g.nodes[b]; !ok {
		return unknownNodeError(b)
	}
	e := canonicalEdge(a, b)
	if _, exists := g.weights[e]; !exists {
		g.insertEdge(a, b, defaultWeight)
	}
	return nil
}

// IncrementEdgeWeight adds delta to the weight of (a,b). A no-op, not a
// failure, if the edge does not exist (spec B3).
func (g *Graph) IncrementEdgeWeight(a, b int32, delta int32) error {
	if !g.HasNode(a) {
		return unknownNodeError(a)
	}
	if !g.HasNode(b) {
		return unknownNodeError(b)
	}
	e := canonicalEdge(a, b)
	if w, ok := g.weights[e]; ok {
		g.weights[e] = w + delta
	}
	return nil
}

func (g *Graph) removeEdgeUnchecked(a, b int32) {
	e := canonicalEdge(a, b)
	if _, ok := g.weights[e]; ok {
		delete(g.weights, e)
		if a != b {
			delete(g.nodes[a].Neighbors, b)
			delete(g.nodes[b].Neighbors, a)
		}
	}
}

// RemoveEdge removes the edge between a and b, if present.
func (g *Graph) RemoveEdge(a, b int32) {
	g.removeEdgeUnchecked(a, b)
}

// HasEdge reports whether an edge exists between a and b.
func (g *Graph) HasEdge(a, b int32) bool {
	if !g.HasNode(a) || !g.HasNode(b) {
		return false
	}
	_, ok := g.weights[canonicalEdge(a, b)]
	return ok
}

// GetEdgeWeight returns the weight of (a,b), or 0 if the edge is absent.
func (g *Graph) GetEdgeWeight(a, b int32) int32 {
	return g.weights[canonicalEdge(a, b)]
}

// EdgeCount returns the total number of stored edges.
func (g *Graph) EdgeCount() int {
	return len(g.weights)
}

// NodeEdgeCount returns the degree of id.
func (g *Graph) NodeEdgeCount(id int32) (int, error) {
	n, ok := g.nodes[id]
	if !ok {
		return 0, unknownNodeError(id)
	}
	return len(n.Neighbors), nil
}

// GetNode returns the node record for id, for read-only inspection.
func (g *Graph) GetNode(id int32) (*MultiNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// SetNodeCoverage sets the coverage accumulator on id.
func (g *Graph) SetNodeCoverage(id int32, value int64) error {
	n, ok := g.nodes[id]
	if !ok {
		return unknownNodeError(id)
	}
	n.Coverage = value
	return nil
}

// IncrementCoverage adds delta to the coverage accumulator on id.
func (g *Graph) IncrementCoverage(id int32, delta int64) error {
	n, ok := g.nodes[id]
	if !ok {
		return unknownNodeError(id)
	}
	n.Coverage += delta
	return nil
}

// SetNodeLength sets the sequence length on id.
func (g *Graph) SetNodeLength(id int32, length int32) error {
	n, ok := g.nodes[id]
	if !ok {
		return unknownNodeError(id)
	}
	n.Length = length
	return nil
}

// ForEachNode visits every (id, node) pair. The visitor must not mutate
// the graph. Iteration order is unspecified.
func (g *Graph) ForEachNode(f func(id int32, n *MultiNode)) {
	for id, n := range g.nodes {
		f(id, n)
	}
}

// ForEachNodeID visits every node id. Iteration order is unspecified.
func (g *Graph) ForEachNodeID(f func(id int32)) {
	for id := range g.nodes {
		f(id)
	}
}

// ForEachNodeNeighbor visits every (neighborID, neighborNode) pair
// adjacent to id.
func (g *Graph) ForEachNodeNeighbor(id int32, f func(idOther int32, n *MultiNode)) error {
	n, ok := g.nodes[id]
	if !ok {
		return unknownNodeError(id)
	}
	for other := range n.Neighbors {
		f(other, g.nodes[other])
	}
	return nil
}

// ForEachEdge visits every stored (edgeKey, weight) pair, unordered.
func (g *Graph) ForEachEdge(f func(a, b int32, weight int32)) {
	for e, w := range g.weights {
		f(e.lo, e.hi, w)
	}
}

// NodeIDs returns a snapshot of every node id.
func (g *Graph) NodeIDs() []int32 {
	ids := make([]int32, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}


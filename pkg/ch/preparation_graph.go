package ch

// PreparationEdge is a single directed edge as tracked during contraction.
// Center is InvalidNode for an original edge; otherwise the edge is a
// shortcut standing in for a two-hop path through Center, and ReplacedIn /
// ReplacedOut are arena indices (see FastGraph) locating its two halves.
type PreparationEdge struct {
	AdjNode     NodeID
	Weight      Weight
	Center      NodeID
	ReplacedIn  int32
	ReplacedOut int32
}

// PreparationGraph holds the working out/in adjacency lists mutated during
// contraction: original edges to start, shortcuts added as nodes are
// contracted, with contracted nodes disconnected as they go.
type PreparationGraph struct {
	outEdges [][]PreparationEdge
	inEdges  [][]PreparationEdge
}

// NewPreparationGraph allocates an edgeless graph over numNodes nodes.
func NewPreparationGraph(numNodes int) *PreparationGraph {
	return &PreparationGraph{
		outEdges: make([][]PreparationEdge, numNodes),
		inEdges:  make([][]PreparationEdge, numNodes),
	}
}

// PreparationGraphFromInputGraph copies every input edge in with AddEdge,
// applying the same parallel-edge dedup rule a caller would get by adding
// them one at a time.
func PreparationGraphFromInputGraph(ig *InputGraph) *PreparationGraph {
	g := NewPreparationGraph(ig.NumNodes())
	for i := 0; i < ig.NumEdges(); i++ {
		from, to, w := ig.Edge(i)
		g.AddEdge(from, to, w)
	}
	return g
}

// NumNodes returns the number of nodes the graph was built over.
func (g *PreparationGraph) NumNodes() int {
	return len(g.outEdges)
}

// OutEdges returns node's current out-edges. The returned slice aliases the
// graph's internal storage and must not be retained across a mutating call.
func (g *PreparationGraph) OutEdges(node NodeID) []PreparationEdge {
	return g.outEdges[node]
}

// InEdges returns node's current in-edges, aliased the same way as OutEdges.
func (g *PreparationGraph) InEdges(node NodeID) []PreparationEdge {
	return g.inEdges[node]
}

func findByAdj(edges []PreparationEdge, adj NodeID) int {
	for i := range edges {
		if edges[i].AdjNode == adj {
			return i
		}
	}
	return -1
}

// AddEdge inserts an original edge. Self-loops are rejected outright. If an
// edge between the same pair already exists, the minimum of the two
// weights is kept and the surviving edge is always marked as an original
// edge (Center reset to InvalidNode), since add_edge never introduces a
// shortcut.
func (g *PreparationGraph) AddEdge(from, to NodeID, weight Weight) {
	if from == to {
		return
	}
	if idx := findByAdj(g.outEdges[from], to); idx >= 0 {
		e := &g.outEdges[from][idx]
		if weight < e.Weight {
			e.Weight = weight
		}
		e.Center, e.ReplacedIn, e.ReplacedOut = InvalidNode, -1, -1
		inIdx := findByAdj(g.inEdges[to], from)
		g.inEdges[to][inIdx] = PreparationEdge{AdjNode: from, Weight: e.Weight, Center: InvalidNode, ReplacedIn: -1, ReplacedOut: -1}
		return
	}
	g.outEdges[from] = append(g.outEdges[from], PreparationEdge{AdjNode: to, Weight: weight, Center: InvalidNode, ReplacedIn: -1, ReplacedOut: -1})
	g.inEdges[to] = append(g.inEdges[to], PreparationEdge{AdjNode: from, Weight: weight, Center: InvalidNode, ReplacedIn: -1, ReplacedOut: -1})
}

// AddShortcut inserts a shortcut edge from -> to of the given weight,
// standing in for from -> center -> to. The dedup rule mirrors AddEdge
// except that only a strict improvement updates the surviving edge's
// center/replaced-index bookkeeping; a tie or worse keeps the existing
// edge (original or shortcut) untouched.
func (g *PreparationGraph) AddShortcut(from, to NodeID, weight Weight, center NodeID, replacedIn, replacedOut int32) {
	if idx := findByAdj(g.outEdges[from], to); idx >= 0 {
		if weight >= g.outEdges[from][idx].Weight {
			return
		}
		e := PreparationEdge{AdjNode: to, Weight: weight, Center: center, ReplacedIn: replacedIn, ReplacedOut: replacedOut}
		g.outEdges[from][idx] = e
		inIdx := findByAdj(g.inEdges[to], from)
		g.inEdges[to][inIdx] = PreparationEdge{AdjNode: from, Weight: weight, Center: center, ReplacedIn: replacedIn, ReplacedOut: replacedOut}
		return
	}
	g.outEdges[from] = append(g.outEdges[from], PreparationEdge{AdjNode: to, Weight: weight, Center: center, ReplacedIn: replacedIn, ReplacedOut: replacedOut})
	g.inEdges[to] = append(g.inEdges[to], PreparationEdge{AdjNode: from, Weight: weight, Center: center, ReplacedIn: replacedIn, ReplacedOut: replacedOut})
}

// Disconnect removes node from every neighbor's opposite-direction list and
// clears node's own adjacency. It is idempotent: disconnecting an
// already-disconnected node is a no-op.
func (g *PreparationGraph) Disconnect(node NodeID) {
	for _, e := range g.outEdges[node] {
		g.inEdges[e.AdjNode] = removeByAdj(g.inEdges[e.AdjNode], node)
	}
	for _, e := range g.inEdges[node] {
		g.outEdges[e.AdjNode] = removeByAdj(g.outEdges[e.AdjNode], node)
	}
	g.outEdges[node] = nil
	g.inEdges[node] = nil
}

func removeByAdj(edges []PreparationEdge, adj NodeID) []PreparationEdge {
	for i := range edges {
		if edges[i].AdjNode == adj {
			edges[i] = edges[len(edges)-1]
			return edges[:len(edges)-1]
		}
	}
	return edges
}

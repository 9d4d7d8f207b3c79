package ch

// InputGraph is the raw, unprepared edge list a caller builds before
// calling Prepare. It is intentionally the thinnest possible collaborator:
// an edge list plus a derived node count, nothing more.
type InputGraph struct {
	edges    []inputEdge
	numNodes int
}

type inputEdge struct {
	from, to NodeID
	weight   Weight
}

// NewInputGraph returns an empty graph.
func NewInputGraph() *InputGraph {
	return &InputGraph{}
}

// AddEdge appends a directed edge. Node ids may be added out of order; the
// node count is derived from the highest id seen.
func (g *InputGraph) AddEdge(from, to NodeID, weight Weight) {
	g.edges = append(g.edges, inputEdge{from, to, weight})
	if n := int(from) + 1; n > g.numNodes {
		g.numNodes = n
	}
	if n := int(to) + 1; n > g.numNodes {
		g.numNodes = n
	}
}

// EnsureNumNodes raises the node count to n if it is not already at least
// that large. Needed when a caller's node space includes ids with no
// incident edges, which AddEdge alone would never see.
func (g *InputGraph) EnsureNumNodes(n int) {
	if n > g.numNodes {
		g.numNodes = n
	}
}

// NumNodes returns one past the highest node id added so far.
func (g *InputGraph) NumNodes() int {
	return g.numNodes
}

// NumEdges returns the number of edges added, including duplicates.
func (g *InputGraph) NumEdges() int {
	return len(g.edges)
}

// Edge returns the i-th added edge.
func (g *InputGraph) Edge(i int) (from, to NodeID, weight Weight) {
	e := g.edges[i]
	return e.from, e.to, e.weight
}

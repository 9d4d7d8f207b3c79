package ch

// FastGraphEdge is one edge in a FastGraph's forward or backward CSR
// array. BaseNode records the owning node of the CSR segment this edge
// lives in: the source for a forward edge, the target for a backward one.
// Center is InvalidNode for an original edge; otherwise ReplacedIn and
// ReplacedOut are arena indices, offset from the center node's own
// backward/forward CSR segment starts, locating the shortcut's two halves
// without any re-search over the edge arrays.
type FastGraphEdge struct {
	BaseNode    NodeID
	AdjNode     NodeID
	Weight      Weight
	Center      NodeID
	ReplacedIn  int32
	ReplacedOut int32
}

// FastGraph is the prepared, queryable contraction hierarchy: two CSR
// arrays (forward edges to higher-rank neighbors, backward edges from
// higher-rank neighbors) plus the node ordering that produced them.
type FastGraph struct {
	NumNodes uint32
	Ranks    []NodeID

	FwdFirstOut []uint32
	FwdEdges    []FastGraphEdge

	BwdFirstOut []uint32
	BwdEdges    []FastGraphEdge
}

// GetNodeOrdering returns the contraction order as a permutation: order[k]
// is the node contracted at step k, the inverse of Ranks. Feeding this into
// PrepareWithOrder reproduces the same FastGraph deterministically.
func (fg *FastGraph) GetNodeOrdering() []NodeID {
	order := make([]NodeID, len(fg.Ranks))
	for node, rank := range fg.Ranks {
		order[rank] = NodeID(node)
	}
	return order
}

// unpack recursively expands edge into the original (non-shortcut) edges
// it stands in for, visiting them left-to-right. isBwd tells the visitor
// whether edge (and therefore its "next node") comes from the backward
// array, where the next node in source-to-target order is BaseNode rather
// than AdjNode.
func (fg *FastGraph) unpack(edge FastGraphEdge, isBwd bool, depth int, visit func(e FastGraphEdge, isBwd bool)) {
	if edge.Center == InvalidNode || depth > maxUnpackDepth {
		visit(edge, isBwd)
		return
	}
	center := edge.Center
	inIdx := fg.BwdFirstOut[center] + uint32(edge.ReplacedIn)
	outIdx := fg.FwdFirstOut[center] + uint32(edge.ReplacedOut)
	fg.unpack(fg.BwdEdges[inIdx], true, depth+1, visit)
	fg.unpack(fg.FwdEdges[outIdx], false, depth+1, visit)
}

// maxUnpackDepth is a defensive recursion bound; a correctly built FastGraph
// never approaches it; shortcuts nest at most as deep as the contraction
// order is long.
const maxUnpackDepth = 1 << 20

// buildFastGraph assembles the two CSR arrays from each node's final
// out/in edge snapshot, captured at the moment each node was contracted.
// Those snapshots are already upward-only (a center's neighbors are always
// contracted after it) and already in the order the shortcut-creation loop
// assigned ReplacedIn/ReplacedOut indices against, so no filtering or
// re-indexing is needed: segment v of FwdEdges is exactly finalOut[v].
func buildFastGraph(numNodes int, rank []NodeID, finalOut, finalIn [][]PreparationEdge) *FastGraph {
	fwdFirstOut := make([]uint32, numNodes+1)
	bwdFirstOut := make([]uint32, numNodes+1)
	var fwdEdges, bwdEdges []FastGraphEdge

	for v := 0; v < numNodes; v++ {
		fwdFirstOut[v] = uint32(len(fwdEdges))
		for _, e := range finalOut[v] {
			fwdEdges = append(fwdEdges, FastGraphEdge{
				BaseNode: NodeID(v), AdjNode: e.AdjNode, Weight: e.Weight,
				Center: e.Center, ReplacedIn: e.ReplacedIn, ReplacedOut: e.ReplacedOut,
			})
		}
		bwdFirstOut[v] = uint32(len(bwdEdges))
		for _, e := range finalIn[v] {
			bwdEdges = append(bwdEdges, FastGraphEdge{
				BaseNode: NodeID(v), AdjNode: e.AdjNode, Weight: e.Weight,
				Center: e.Center, ReplacedIn: e.ReplacedIn, ReplacedOut: e.ReplacedOut,
			})
		}
	}
	fwdFirstOut[numNodes] = uint32(len(fwdEdges))
	bwdFirstOut[numNodes] = uint32(len(bwdEdges))

	return &FastGraph{
		NumNodes:    uint32(numNodes),
		Ranks:       rank,
		FwdFirstOut: fwdFirstOut,
		FwdEdges:    fwdEdges,
		BwdFirstOut: bwdFirstOut,
		BwdEdges:    bwdEdges,
	}
}

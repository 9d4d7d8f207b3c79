package ch

// unboundedHops disables the hop bound on a witness search: real
// contraction has a settled-node budget but, unlike the ordering-time
// witness search, no separate hop cap.
const unboundedHops = 1 << 30

// ContractionStats summarizes one contraction pass over a node, used both
// to drive the priority heuristic (simulated) and to report work actually
// done (real).
type ContractionStats struct {
	ShortcutsAdded int
	EdgesRemoved   int
}

// NodeContractor contracts nodes out of a PreparationGraph one at a time,
// in either simulated (read-only, for the priority heuristic) or real
// (mutating) mode.
type NodeContractor struct {
	g  *PreparationGraph
	ws *WitnessSearch
}

// NewNodeContractor builds a contractor over g, with witness-search scratch
// state sized to g's node count.
func NewNodeContractor(g *PreparationGraph) *NodeContractor {
	return &NodeContractor{g: g, ws: NewWitnessSearch(g.NumNodes())}
}

// Contract contracts node: for every (in-neighbor u, out-neighbor w) pair
// with u != w, a witness search from u (excluding node) decides whether
// the two-hop path through node is necessary as a shortcut. In real mode,
// necessary shortcuts are added, node's final out/in edge snapshots (which
// become its FastGraph CSR segments verbatim) are captured, and node is
// disconnected; in simulated mode nothing is mutated and the snapshots are
// nil.
func (nc *NodeContractor) Contract(node NodeID, real bool, maxSettled, maxHops int) (stats ContractionStats, finalOut, finalIn []PreparationEdge) {
	g := nc.g
	inEdges := g.InEdges(node)
	outEdges := g.OutEdges(node)
	stats.EdgesRemoved = len(inEdges) + len(outEdges)

	for inIdx := range inEdges {
		u := inEdges[inIdx].AdjNode
		inWeight := inEdges[inIdx].Weight
		for outIdx := range outEdges {
			w := outEdges[outIdx].AdjNode
			if u == w {
				continue
			}
			shortcutWeight := AddWeight(inWeight, outEdges[outIdx].Weight)
			nc.ws.Run(g, u, node, shortcutWeight, maxHops, maxSettled)
			if nc.ws.GetWeight(w) <= shortcutWeight {
				continue // a witness path already achieves this weight
			}
			stats.ShortcutsAdded++
			if real {
				g.AddShortcut(u, w, shortcutWeight, node, int32(inIdx), int32(outIdx))
			}
		}
	}

	if !real {
		return stats, nil, nil
	}
	finalOut = append([]PreparationEdge(nil), g.OutEdges(node)...)
	finalIn = append([]PreparationEdge(nil), g.InEdges(node)...)
	g.Disconnect(node)
	return stats, finalOut, finalIn
}

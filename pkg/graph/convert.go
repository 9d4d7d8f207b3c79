package graph

import "github.com/foyle-labs/pathkit/pkg/ch"

// ToInputGraph copies the CSR edge list into the form the contraction
// hierarchies builder consumes. Parallel edges and self-loops are left
// for the builder to resolve; this is a straight format conversion.
func (g *Graph) ToInputGraph() *ch.InputGraph {
	ig := ch.NewInputGraph()
	ig.EnsureNumNodes(int(g.NumNodes))
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for i := start; i < end; i++ {
			ig.AddEdge(ch.NodeID(u), ch.NodeID(g.Head[i]), ch.Weight(g.Weight[i]))
		}
	}
	return ig
}

// Prepare runs contraction hierarchies preprocessing over g and assembles a
// PreparedGraph ready for WriteBinary, combining the contracted query
// structure with the original CSR (needed for snapping and route geometry).
func (g *Graph) Prepare() *PreparedGraph {
	return g.prepare(ch.Prepare(g.ToInputGraph()))
}

// PrepareWithParams is Prepare with explicit ordering parameters.
func (g *Graph) PrepareWithParams(params ch.Params) *PreparedGraph {
	return g.prepare(ch.PrepareWithParams(g.ToInputGraph(), params))
}

func (g *Graph) prepare(fg *ch.FastGraph) *PreparedGraph {
	return &PreparedGraph{
		NumNodes:     g.NumNodes,
		NodeLat:      g.NodeLat,
		NodeLon:      g.NodeLon,
		FastGraph:    fg,
		OrigFirstOut: g.FirstOut,
		OrigHead:     g.Head,
		OrigWeight:   g.Weight,
		GeoFirstOut:  g.GeoFirstOut,
		GeoShapeLat:  g.GeoShapeLat,
		GeoShapeLon:  g.GeoShapeLon,
	}
}

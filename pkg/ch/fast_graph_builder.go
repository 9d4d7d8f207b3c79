package ch

import "math"

// priority heuristic coefficients: edge difference dominates, with a
// penalty for contracting near already-contracted nodes and a smaller one
// for contracting at a high hierarchy level. These aren't exposed via
// Params; road-network CH implementations converge on small integer
// weights like these rather than tuning them per graph.
const (
	priorityEdgeDiffCoeff = 1
	priorityNeighborCoeff = 2
	priorityLevelCoeff    = 1
)

func computePriority(stats ContractionStats, contractedNeighbors, level int) int {
	edgeDiff := stats.ShortcutsAdded - stats.EdgesRemoved
	return priorityEdgeDiffCoeff*edgeDiff + priorityNeighborCoeff*contractedNeighbors + priorityLevelCoeff*level
}

// exceedsSlack reports whether newPriority is worse than nextMin by more
// than the given fraction of nextMin's magnitude.
func exceedsSlack(newPriority, nextMin int64, slack float64) bool {
	threshold := float64(nextMin) + slack*math.Abs(float64(nextMin))
	return float64(newPriority) > threshold
}

// Build contracts every node of ig using DefaultParams.
func Build(ig *InputGraph) *FastGraph {
	return BuildWithParams(ig, DefaultParams())
}

// BuildWithParams contracts every node of ig, choosing the contraction
// order with the lazy-update priority heuristic described in this
// package's doc comments: every node's priority is computed once up
// front, then at each pop the priority is recomputed and the node is
// pushed back instead of contracted if it has fallen too far behind the
// heap's new minimum.
func BuildWithParams(ig *InputGraph, params Params) *FastGraph {
	n := ig.NumNodes()
	if n == 0 {
		return &FastGraph{}
	}
	g := PreparationGraphFromInputGraph(ig)
	nc := NewNodeContractor(g)

	contractedNeighbors := make([]int, n)
	level := make([]int, n)
	contracted := make([]bool, n)
	rank := make([]NodeID, n)
	finalOut := make([][]PreparationEdge, n)
	finalIn := make([][]PreparationEdge, n)

	pq := newMinHeap[NodeID](n)
	for v := 0; v < n; v++ {
		stats, _, _ := nc.Contract(NodeID(v), false,
			params.MaxSettledNodesDuringOrderingWitnessSearch, params.MaxHopsDuringOrderingWitnessSearch)
		pq.Push(int64(computePriority(stats, 0, 0)), NodeID(v))
	}

	order := 0
	for pq.Len() > 0 {
		_, node := pq.Pop()
		if contracted[node] {
			continue
		}

		stats, _, _ := nc.Contract(node, false,
			params.MaxSettledNodesDuringOrderingWitnessSearch, params.MaxHopsDuringOrderingWitnessSearch)
		newPriority := int64(computePriority(stats, contractedNeighbors[node], level[node]))
		if nextMin, _, hasNext := pq.Peek(); hasNext && exceedsSlack(newPriority, nextMin, params.OrderingSlack) {
			pq.Push(newPriority, node)
			continue
		}

		neighbors := collectNeighbors(g, node)

		_, fOut, fIn := nc.Contract(node, true,
			params.MaxSettledNodesDuringContractionWitnessSearch, unboundedHops)
		finalOut[node], finalIn[node] = fOut, fIn
		contracted[node] = true
		rank[node] = NodeID(order)
		order++

		for _, nb := range neighbors {
			if contracted[nb] {
				continue
			}
			contractedNeighbors[nb]++
			if level[node]+1 > level[nb] {
				level[nb] = level[node] + 1
			}
		}
	}

	return buildFastGraph(n, rank, finalOut, finalIn)
}

// collectNeighbors returns the distinct set of node's current out- and
// in-neighbors, for updating their contracted-neighbor and level counters
// once node is contracted.
func collectNeighbors(g *PreparationGraph, node NodeID) []NodeID {
	seen := make(map[NodeID]struct{})
	var out []NodeID
	add := func(n NodeID) {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	for _, e := range g.OutEdges(node) {
		add(e.AdjNode)
	}
	for _, e := range g.InEdges(node) {
		add(e.AdjNode)
	}
	return out
}

// BuildWithOrder contracts every node of ig in the given fixed order,
// using DefaultParamsWithOrder.
func BuildWithOrder(ig *InputGraph, order []NodeID) (*FastGraph, error) {
	return BuildWithOrderWithParams(ig, order, DefaultParamsWithOrder())
}

// BuildWithOrderWithParams contracts every node of ig in the given fixed
// order, skipping the priority heuristic. order must be a permutation of
// 0..ig.NumNodes()-1.
func BuildWithOrderWithParams(ig *InputGraph, order []NodeID, params ParamsWithOrder) (*FastGraph, error) {
	n := ig.NumNodes()
	if len(order) != n {
		return nil, ErrInvalidOrder
	}
	seen := make([]bool, n)
	for _, v := range order {
		if int(v) >= n || seen[v] {
			return nil, ErrInvalidOrder
		}
		seen[v] = true
	}
	if n == 0 {
		return &FastGraph{}, nil
	}

	g := PreparationGraphFromInputGraph(ig)
	nc := NewNodeContractor(g)
	rank := make([]NodeID, n)
	finalOut := make([][]PreparationEdge, n)
	finalIn := make([][]PreparationEdge, n)

	for step, v := range order {
		rank[v] = NodeID(step)
	}
	for _, v := range order {
		_, fOut, fIn := nc.Contract(v, true, params.MaxSettledNodesDuringContractionWitnessSearch, unboundedHops)
		finalOut[v], finalIn[v] = fOut, fIn
	}

	return buildFastGraph(n, rank, finalOut, finalIn), nil
}

package ch

// oracleDijkstra is a plain, unoptimized Dijkstra run directly over an
// InputGraph, independent of the contraction machinery, used only as a
// correctness reference in tests — the same role the reference oracle
// plays in the original crate's own test suite.
func oracleDijkstra(ig *InputGraph, source, target NodeID) *ShortestPath {
	n := ig.NumNodes()
	adj := make([][]inputEdge, n)
	for i := 0; i < ig.NumEdges(); i++ {
		from, to, w := ig.Edge(i)
		adj[from] = append(adj[from], inputEdge{from, to, w})
	}

	dist := make([]Weight, n)
	parent := make([]NodeID, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = WeightMax
		parent[i] = InvalidNode
	}
	dist[source] = 0

	h := newMinHeap[NodeID](n)
	h.Push(0, source)
	for h.Len() > 0 {
		key, u := h.Pop()
		d := Weight(key)
		if visited[u] || d > dist[u] {
			continue
		}
		visited[u] = true
		if u == target {
			break
		}
		for _, e := range adj[u] {
			nd := AddWeight(d, e.weight)
			if nd < dist[e.to] {
				dist[e.to] = nd
				parent[e.to] = u
				h.Push(int64(nd), e.to)
			}
		}
	}

	if source == target {
		return singularPath(source)
	}
	if dist[target] == WeightMax {
		return nil
	}
	var nodes []NodeID
	for cur := target; ; {
		nodes = append(nodes, cur)
		if cur == source {
			break
		}
		cur = parent[cur]
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return &ShortestPath{Source: source, Target: target, Weight: dist[target], Nodes: nodes}
}

// oracleFloydWarshall computes all-pairs shortest-path weights over ig with
// the textbook O(n^3) relaxation, independent of both the contraction
// machinery and oracleDijkstra — a second, structurally unrelated reference
// the original crate's own random-graph test cross-checks every query
// against in addition to its Dijkstra oracle (its FloydWarshall::new /
// .prepare / .calc_weight, exercised from lib.rs's random-graph test; the
// floyd_warshall module itself isn't part of this pack).
type oracleFloydWarshall struct {
	n    int
	dist []Weight
}

func newOracleFloydWarshall(ig *InputGraph) *oracleFloydWarshall {
	n := ig.NumNodes()
	dist := make([]Weight, n*n)
	for v := 0; v < n; v++ {
		for w := 0; w < n; w++ {
			if v == w {
				dist[v*n+w] = 0
			} else {
				dist[v*n+w] = WeightMax
			}
		}
	}
	for i := 0; i < ig.NumEdges(); i++ {
		from, to, w := ig.Edge(i)
		if idx := int(from)*n + int(to); w < dist[idx] {
			dist[idx] = w
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			dik := dist[i*n+k]
			if dik == WeightMax {
				continue
			}
			for j := 0; j < n; j++ {
				dkj := dist[k*n+j]
				if dkj == WeightMax {
					continue
				}
				if through := AddWeight(dik, dkj); through < dist[i*n+j] {
					dist[i*n+j] = through
				}
			}
		}
	}
	return &oracleFloydWarshall{n: n, dist: dist}
}

// calcWeight returns the shortest-path weight from source to target, or
// WeightMax if none exists.
func (fw *oracleFloydWarshall) calcWeight(source, target NodeID) Weight {
	return fw.dist[int(source)*fw.n+int(target)]
}

// randomInputGraph builds a deterministic pseudo-random directed graph of
// numNodes nodes and roughly numNodes*avgDegree edges, using a simple
// linear-congruential generator so the same seed always produces the same
// graph without pulling in math/rand's global state.
func randomInputGraph(numNodes, avgDegree int, seed uint64) *InputGraph {
	g := NewInputGraph()
	state := seed | 1
	next := func(bound uint64) uint64 {
		state = state*6364136223846793005 + 1442695040888963407
		return (state >> 33) % bound
	}
	for v := 0; v < numNodes; v++ {
		for k := 0; k < avgDegree; k++ {
			to := NodeID(next(uint64(numNodes)))
			w := Weight(1 + next(50))
			if NodeID(v) != to {
				g.AddEdge(NodeID(v), to, w)
			}
		}
	}
	return g
}

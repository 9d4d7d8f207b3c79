package ch

// witnessEntry is a witness-search heap payload: the node reached and how
// many hops it took to get there, since witness search is hop-bounded as
// well as settled-node-bounded.
type witnessEntry struct {
	node NodeID
	hops int
}

// WitnessSearch is a bounded Dijkstra used to decide whether a candidate
// shortcut is necessary: it asks whether some path from u to w, avoiding
// the node being contracted, is already at least as short as the
// shortcut's weight. One instance is created per contraction pass and
// reused across every (u, contracted node) pair in that pass via Run.
type WitnessSearch struct {
	dist    []Weight
	touched []NodeID
	heap    *minHeap[witnessEntry]
}

// NewWitnessSearch allocates search state over numNodes nodes.
func NewWitnessSearch(numNodes int) *WitnessSearch {
	dist := make([]Weight, numNodes)
	for i := range dist {
		dist[i] = WeightMax
	}
	return &WitnessSearch{dist: dist, heap: newMinHeap[witnessEntry](32)}
}

func (w *WitnessSearch) reset() {
	for _, n := range w.touched {
		w.dist[n] = WeightMax
	}
	w.touched = w.touched[:0]
	w.heap.Reset()
}

// Run searches forward from source, never relaxing through excluded (the
// node under contraction), stopping once a popped item's weight exceeds
// maxWeight, once maxSettled nodes have been popped, or once the search
// space is exhausted. Distances above maxWeight are never recorded.
// GetWeight then answers "what is the best known distance to w" for any w.
func (w *WitnessSearch) Run(g *PreparationGraph, source, excluded NodeID, maxWeight Weight, maxHops, maxSettled int) {
	w.reset()
	w.dist[source] = 0
	w.touched = append(w.touched, source)
	w.heap.Push(0, witnessEntry{source, 0})

	settled := 0
	for w.heap.Len() > 0 {
		key, cur := w.heap.Pop()
		d := Weight(key)
		if d > w.dist[cur.node] {
			continue // stale entry from an earlier, since-improved push
		}
		if d > maxWeight {
			break // no witness can beat the candidate shortcut from here on
		}
		settled++
		if settled > maxSettled {
			break // budget exhausted, give up: treat the shortcut as necessary
		}
		if cur.hops >= maxHops {
			continue
		}
		for _, e := range g.OutEdges(cur.node) {
			if e.AdjNode == excluded {
				continue
			}
			nd := AddWeight(d, e.Weight)
			if nd > maxWeight || nd >= w.dist[e.AdjNode] {
				continue
			}
			if w.dist[e.AdjNode] == WeightMax {
				w.touched = append(w.touched, e.AdjNode)
			}
			w.dist[e.AdjNode] = nd
			w.heap.Push(int64(nd), witnessEntry{e.AdjNode, cur.hops + 1})
		}
	}
}

// GetWeight returns the best distance found to node during the last Run, or
// WeightMax if node was not reached within maxWeight.
func (w *WitnessSearch) GetWeight(node NodeID) Weight {
	return w.dist[node]
}

package ch

// Endpoint pairs a node with the initial weight a query should seed it
// with: zero for a point query's exact endpoint, or the interpolated
// distance from a snapped location to each of an edge's two endpoints for
// a point-snapped query.
type Endpoint struct {
	Node   NodeID
	Weight Weight
}

// noParentEdge marks a seeded root in parentFwd/parentBwd: a node with no
// predecessor edge because it was a query endpoint itself, not relaxed
// from a neighbor.
const noParentEdge = -1

// PathCalculator runs bidirectional upward Dijkstra queries against a
// FastGraph. It owns its own scratch state (weight arrays, ValidFlags,
// parent-edge arrays, two search heaps) sized once at construction and
// reused across calls, following the one-instance-per-worker reuse
// pattern the teacher's own query engine uses for its per-request state.
type PathCalculator struct {
	numNodes int

	weightsFwd, weightsBwd []Weight
	vfFwd, vfBwd           *ValidFlags
	parentFwd, parentBwd   []int32

	heapFwd, heapBwd *minHeap[NodeID]
}

// NewPathCalculator allocates a calculator for a graph with numNodes
// nodes. It must match the NumNodes of every FastGraph passed to it.
func NewPathCalculator(numNodes int) *PathCalculator {
	return &PathCalculator{
		numNodes:   numNodes,
		weightsFwd: make([]Weight, numNodes),
		weightsBwd: make([]Weight, numNodes),
		vfFwd:      NewValidFlags(numNodes),
		vfBwd:      NewValidFlags(numNodes),
		parentFwd:  make([]int32, numNodes),
		parentBwd:  make([]int32, numNodes),
		heapFwd:    newMinHeap[NodeID](256),
		heapBwd:    newMinHeap[NodeID](256),
	}
}

func (pc *PathCalculator) reset() {
	pc.vfFwd.InvalidateAll()
	pc.vfBwd.InvalidateAll()
	pc.heapFwd.Reset()
	pc.heapBwd.Reset()
}

// CalcPath is the single-source, single-target case.
func (pc *PathCalculator) CalcPath(fg *FastGraph, source, target NodeID) (*ShortestPath, error) {
	if int(source) >= int(fg.NumNodes) || int(target) >= int(fg.NumNodes) {
		return nil, ErrNodeOutOfRange
	}
	if source == target {
		return singularPath(source), nil
	}
	return pc.CalcPathMultipleSourcesAndTargets(fg, []Endpoint{{source, 0}}, []Endpoint{{target, 0}})
}

// CalcPathMultipleSourcesAndTargets seeds the forward search from every
// source (at its given initial weight) and the backward search from every
// target, then runs one bidirectional search shared across all of them.
// Duplicate nodes on either side keep the minimum offered weight. A nil
// ShortestPath with a nil error means no path exists; a non-nil error
// means a node id was out of range.
func (pc *PathCalculator) CalcPathMultipleSourcesAndTargets(fg *FastGraph, sources, targets []Endpoint) (*ShortestPath, error) {
	for _, s := range sources {
		if int(s.Node) >= int(fg.NumNodes) {
			return nil, ErrNodeOutOfRange
		}
	}
	for _, t := range targets {
		if int(t.Node) >= int(fg.NumNodes) {
			return nil, ErrNodeOutOfRange
		}
	}

	pc.reset()

	haveSource := pc.seed(sources, pc.weightsFwd, pc.vfFwd, pc.parentFwd, pc.heapFwd)
	haveTarget := pc.seed(targets, pc.weightsBwd, pc.vfBwd, pc.parentBwd, pc.heapBwd)
	if !haveSource || !haveTarget {
		return nil, nil
	}

	bestWeight, meetingNode := pc.run(fg)
	if bestWeight >= WeightMax || meetingNode == InvalidNode {
		return nil, nil
	}

	nodes := pc.reconstruct(fg, meetingNode)
	return &ShortestPath{
		Source: nodes[0],
		Target: nodes[len(nodes)-1],
		Weight: bestWeight,
		Nodes:  nodes,
	}, nil
}

func (pc *PathCalculator) seed(endpoints []Endpoint, weights []Weight, vf *ValidFlags, parent []int32, heap *minHeap[NodeID]) bool {
	any := false
	for _, e := range endpoints {
		if e.Weight >= WeightMax {
			continue
		}
		any = true
		if !vf.IsValid(int(e.Node)) || e.Weight < weights[e.Node] {
			weights[e.Node] = e.Weight
			vf.SetValid(int(e.Node))
			parent[e.Node] = noParentEdge
			heap.Push(int64(e.Weight), e.Node)
		}
	}
	return any
}

// run repeatedly pops the globally smaller of the two heap tops (forward
// on a tie) until neither side can still improve on the best meeting
// weight found so far, then returns that weight and the node it met at.
func (pc *PathCalculator) run(fg *FastGraph) (Weight, NodeID) {
	bestWeight := WeightMax
	meetingNode := InvalidNode

	for {
		fwdKey, _, fwdOK := pc.heapFwd.Peek()
		bwdKey, _, bwdOK := pc.heapBwd.Peek()
		fwdOK = fwdOK && Weight(fwdKey) < bestWeight
		bwdOK = bwdOK && Weight(bwdKey) < bestWeight
		if !fwdOK && !bwdOK {
			break
		}

		if fwdOK && (!bwdOK || fwdKey <= bwdKey) {
			key, node := pc.heapFwd.Pop()
			d := Weight(key)
			if pc.vfFwd.IsValid(int(node)) && d <= pc.weightsFwd[node] {
				if pc.vfBwd.IsValid(int(node)) {
					if cand := AddWeight(d, pc.weightsBwd[node]); cand < bestWeight {
						bestWeight, meetingNode = cand, node
					}
				}
				start, end := fg.FwdFirstOut[node], fg.FwdFirstOut[node+1]
				for ei := start; ei < end; ei++ {
					e := fg.FwdEdges[ei]
					nd := AddWeight(d, e.Weight)
					if !pc.vfFwd.IsValid(int(e.AdjNode)) || nd < pc.weightsFwd[e.AdjNode] {
						pc.weightsFwd[e.AdjNode] = nd
						pc.vfFwd.SetValid(int(e.AdjNode))
						pc.parentFwd[e.AdjNode] = int32(ei)
						pc.heapFwd.Push(int64(nd), e.AdjNode)
					}
				}
			}
		} else {
			key, node := pc.heapBwd.Pop()
			d := Weight(key)
			if pc.vfBwd.IsValid(int(node)) && d <= pc.weightsBwd[node] {
				if pc.vfFwd.IsValid(int(node)) {
					if cand := AddWeight(pc.weightsFwd[node], d); cand < bestWeight {
						bestWeight, meetingNode = cand, node
					}
				}
				start, end := fg.BwdFirstOut[node], fg.BwdFirstOut[node+1]
				for ei := start; ei < end; ei++ {
					e := fg.BwdEdges[ei]
					nd := AddWeight(d, e.Weight)
					if !pc.vfBwd.IsValid(int(e.AdjNode)) || nd < pc.weightsBwd[e.AdjNode] {
						pc.weightsBwd[e.AdjNode] = nd
						pc.vfBwd.SetValid(int(e.AdjNode))
						pc.parentBwd[e.AdjNode] = int32(ei)
						pc.heapBwd.Push(int64(nd), e.AdjNode)
					}
				}
			}
		}
	}

	return bestWeight, meetingNode
}

// reconstruct walks the parent-edge chains on both sides from meetingNode
// back out to a seeded root, unpacking every shortcut edge along the way
// into its original edges, and returns the full node sequence from the
// chosen source to the chosen target.
func (pc *PathCalculator) reconstruct(fg *FastGraph, meetingNode NodeID) []NodeID {
	var fwdChain []FastGraphEdge
	node := meetingNode
	for pc.parentFwd[node] != noParentEdge {
		e := fg.FwdEdges[pc.parentFwd[node]]
		fwdChain = append(fwdChain, e)
		node = e.BaseNode
	}
	for i, j := 0, len(fwdChain)-1; i < j; i, j = i+1, j-1 {
		fwdChain[i], fwdChain[j] = fwdChain[j], fwdChain[i]
	}
	firstNode := node

	var bwdChain []FastGraphEdge
	node = meetingNode
	for pc.parentBwd[node] != noParentEdge {
		e := fg.BwdEdges[pc.parentBwd[node]]
		bwdChain = append(bwdChain, e)
		node = e.BaseNode
	}

	nodes := []NodeID{firstNode}
	appendNext := func(e FastGraphEdge, isBwd bool) {
		if isBwd {
			nodes = append(nodes, e.BaseNode)
		} else {
			nodes = append(nodes, e.AdjNode)
		}
	}
	for _, e := range fwdChain {
		fg.unpack(e, false, 0, appendNext)
	}
	for _, e := range bwdChain {
		fg.unpack(e, true, 0, appendNext)
	}
	return nodes
}

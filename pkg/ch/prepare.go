package ch

// Prepare builds a FastGraph from ig using DefaultParams.
func Prepare(ig *InputGraph) *FastGraph {
	return BuildWithParams(ig, DefaultParams())
}

// PrepareWithParams builds a FastGraph from ig using the given Params.
func PrepareWithParams(ig *InputGraph, params Params) *FastGraph {
	return BuildWithParams(ig, params)
}

// PrepareWithOrder builds a FastGraph from ig, contracting nodes in the
// given fixed order instead of computing one, using
// DefaultParamsWithOrder.
func PrepareWithOrder(ig *InputGraph, order []NodeID) (*FastGraph, error) {
	return BuildWithOrderWithParams(ig, order, DefaultParamsWithOrder())
}

// PrepareWithOrderWithParams builds a FastGraph from ig, contracting nodes
// in the given fixed order using the given ParamsWithOrder.
func PrepareWithOrderWithParams(ig *InputGraph, order []NodeID, params ParamsWithOrder) (*FastGraph, error) {
	return BuildWithOrderWithParams(ig, order, params)
}

// CalcPath runs a single-source, single-target query against fg. It
// allocates a fresh PathCalculator; callers issuing many queries should
// keep their own PathCalculator instead.
func CalcPath(fg *FastGraph, source, target NodeID) (*ShortestPath, error) {
	return NewPathCalculator(int(fg.NumNodes)).CalcPath(fg, source, target)
}

// CalcPathMultipleSourcesAndTargets runs a multi-source, multi-target query
// against fg. See CalcPath's note on allocation.
func CalcPathMultipleSourcesAndTargets(fg *FastGraph, sources, targets []Endpoint) (*ShortestPath, error) {
	return NewPathCalculator(int(fg.NumNodes)).CalcPathMultipleSourcesAndTargets(fg, sources, targets)
}

// GetNodeOrdering returns fg's contraction order, suitable for passing to
// PrepareWithOrder to reproduce the same FastGraph deterministically.
func GetNodeOrdering(fg *FastGraph) []NodeID {
	return fg.GetNodeOrdering()
}

package ch

// Params configures Prepare's node-ordering and witness-search behavior.
type Params struct {
	// OrderingSlack controls how eagerly a popped node's recomputed
	// priority is accepted versus pushed back for later re-evaluation: a
	// node is contracted immediately unless its recomputed priority
	// exceeds the heap's new minimum by more than this fraction of that
	// minimum's magnitude. Zero means always re-validate against the
	// latest minimum before accepting.
	OrderingSlack float64

	// MaxSettledNodesDuringOrderingWitnessSearch bounds the witness
	// searches run while computing and re-validating priorities.
	MaxSettledNodesDuringOrderingWitnessSearch int

	// MaxHopsDuringOrderingWitnessSearch bounds the same searches by hop
	// count, independent of the settled-node budget.
	MaxHopsDuringOrderingWitnessSearch int

	// MaxSettledNodesDuringContractionWitnessSearch bounds the witness
	// searches run during real contraction, once a node has been chosen.
	MaxSettledNodesDuringContractionWitnessSearch int
}

// DefaultParams returns the defaults used when Prepare is called without
// an explicit Params value.
func DefaultParams() Params {
	return Params{
		OrderingSlack: 0.1,
		MaxSettledNodesDuringOrderingWitnessSearch:    500,
		MaxHopsDuringOrderingWitnessSearch:            2,
		MaxSettledNodesDuringContractionWitnessSearch: 50,
	}
}

// ParamsWithOrder configures PrepareWithOrder, which skips the priority
// heuristic entirely and so needs only the real-contraction witness-search
// budget.
type ParamsWithOrder struct {
	MaxSettledNodesDuringContractionWitnessSearch int
}

// DefaultParamsWithOrder returns the defaults used when PrepareWithOrder is
// called without an explicit ParamsWithOrder value.
func DefaultParamsWithOrder() ParamsWithOrder {
	return ParamsWithOrder{MaxSettledNodesDuringContractionWitnessSearch: 50}
}

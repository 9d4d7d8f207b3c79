package ch

import (
	"reflect"
	"testing"
)

func TestBuildAgreesWithOracleOnRandomGraphs(t *testing.T) {
	for _, tc := range []struct {
		numNodes, avgDegree int
		seed                uint64
	}{
		{20, 3, 1},
		{50, 4, 2},
		{100, 2, 3},
	} {
		ig := randomInputGraph(tc.numNodes, tc.avgDegree, tc.seed)
		fg := Prepare(ig)
		pc := NewPathCalculator(tc.numNodes)
		fw := newOracleFloydWarshall(ig)

		for s := 0; s < tc.numNodes; s += 3 {
			for tgt := 0; tgt < tc.numNodes; tgt += 7 {
				want := oracleDijkstra(ig, NodeID(s), NodeID(tgt))
				got, err := pc.CalcPath(fg, NodeID(s), NodeID(tgt))
				if err != nil {
					t.Fatalf("seed %d: CalcPath(%d,%d) error: %v", tc.seed, s, tgt, err)
				}
				if (want == nil) != (got == nil) {
					t.Fatalf("seed %d: CalcPath(%d,%d) = %+v, oracle = %+v", tc.seed, s, tgt, got, want)
				}
				if want != nil && !want.Equal(got) {
					t.Fatalf("seed %d: CalcPath(%d,%d) = %+v, oracle = %+v", tc.seed, s, tgt, got, want)
				}

				wantWeight := WeightMax
				if want != nil {
					wantWeight = want.Weight
				}
				if fwWeight := fw.calcWeight(NodeID(s), NodeID(tgt)); fwWeight != wantWeight {
					t.Fatalf("seed %d: Floyd-Warshall weight(%d,%d) = %d, want %d (Dijkstra/CH agree on)",
						tc.seed, s, tgt, fwWeight, wantWeight)
				}
				gotWeight := WeightMax
				if got != nil {
					gotWeight = got.Weight
				}
				if fwWeight := fw.calcWeight(NodeID(s), NodeID(tgt)); fwWeight != gotWeight {
					t.Fatalf("seed %d: CalcPath(%d,%d) weight = %d, Floyd-Warshall = %d", tc.seed, s, tgt, gotWeight, fwWeight)
				}
			}
		}
	}
}

func TestBuildMultipleSourcesAndTargetsAgreesWithBestOfPairwise(t *testing.T) {
	ig := randomInputGraph(40, 3, 7)
	fg := Prepare(ig)
	pc := NewPathCalculator(ig.NumNodes())

	sources := []Endpoint{{2, 3}, {5, 0}, {9, 10}}
	targets := []Endpoint{{20, 0}, {25, 4}, {30, 1}}

	got, err := pc.CalcPathMultipleSourcesAndTargets(fg, sources, targets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fw := newOracleFloydWarshall(ig)
	var best Weight = WeightMax
	var bestFW Weight = WeightMax
	for _, s := range sources {
		for _, tgt := range targets {
			p := oracleDijkstra(ig, s.Node, tgt.Node)
			if p != nil {
				if total := AddWeight(AddWeight(s.Weight, p.Weight), tgt.Weight); total < best {
					best = total
				}
			}
			if fwWeight := fw.calcWeight(s.Node, tgt.Node); fwWeight != WeightMax {
				if total := AddWeight(AddWeight(s.Weight, fwWeight), tgt.Weight); total < bestFW {
					bestFW = total
				}
			}
		}
	}
	if best != bestFW {
		t.Fatalf("Dijkstra best-of-pairwise = %d, Floyd-Warshall best-of-pairwise = %d", best, bestFW)
	}

	if best == WeightMax {
		if got != nil {
			t.Fatalf("expected no path, got %+v", got)
		}
		return
	}
	if got == nil {
		t.Fatalf("expected a path of weight %d, got none", best)
	}
	if got.Weight != best {
		t.Fatalf("CalcPathMultipleSourcesAndTargets weight = %d, want %d", got.Weight, best)
	}
}

func TestBuildMultiSourceIdempotentOnDuplicates(t *testing.T) {
	ig := randomInputGraph(30, 3, 11)
	fg := Prepare(ig)
	pc := NewPathCalculator(ig.NumNodes())

	single, err := pc.CalcPathMultipleSourcesAndTargets(fg, []Endpoint{{1, 0}}, []Endpoint{{20, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup, err := pc.CalcPathMultipleSourcesAndTargets(fg,
		[]Endpoint{{1, 0}, {1, 0}, {1, 5}},
		[]Endpoint{{20, 0}, {20, 0}, {20, 9}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if (single == nil) != (dup == nil) {
		t.Fatalf("single=%+v dup=%+v differ in existence", single, dup)
	}
	if single != nil && !single.Equal(dup) {
		t.Fatalf("duplicate, worse-weighted endpoints changed the answer: single=%+v dup=%+v", single, dup)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	ig := randomInputGraph(60, 3, 42)
	fg1 := Prepare(ig)
	fg2 := Prepare(ig)
	if !reflect.DeepEqual(fg1.Ranks, fg2.Ranks) {
		t.Fatalf("Prepare is not deterministic: ranks differ between identical runs")
	}
	if !reflect.DeepEqual(fg1.FwdFirstOut, fg2.FwdFirstOut) || !reflect.DeepEqual(fg1.BwdFirstOut, fg2.BwdFirstOut) {
		t.Fatalf("Prepare is not deterministic: CSR offsets differ between identical runs")
	}
}

func TestPrepareWithOrderReproducesFastGraph(t *testing.T) {
	ig := randomInputGraph(35, 3, 99)
	fg := Prepare(ig)
	order := GetNodeOrdering(fg)

	reproduced, err := PrepareWithOrder(ig, order)
	if err != nil {
		t.Fatalf("PrepareWithOrder: unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fg.Ranks, reproduced.Ranks) {
		t.Fatalf("PrepareWithOrder did not reproduce the same ranks")
	}

	pcOrig := NewPathCalculator(ig.NumNodes())
	pcRepro := NewPathCalculator(ig.NumNodes())
	for s := 0; s < ig.NumNodes(); s += 4 {
		for tgt := 0; tgt < ig.NumNodes(); tgt += 5 {
			want, _ := pcOrig.CalcPath(fg, NodeID(s), NodeID(tgt))
			got, _ := pcRepro.CalcPath(reproduced, NodeID(s), NodeID(tgt))
			if (want == nil) != (got == nil) || (want != nil && !want.Equal(got)) {
				t.Fatalf("PrepareWithOrder diverged at (%d,%d): want %+v got %+v", s, tgt, want, got)
			}
		}
	}
}

func TestPrepareWithOrderRejectsNonPermutation(t *testing.T) {
	ig := randomInputGraph(5, 2, 1)
	if _, err := PrepareWithOrder(ig, []NodeID{0, 1, 2}); err != ErrInvalidOrder {
		t.Fatalf("expected ErrInvalidOrder for short order, got %v", err)
	}
	if _, err := PrepareWithOrder(ig, []NodeID{0, 1, 2, 3, 3}); err != ErrInvalidOrder {
		t.Fatalf("expected ErrInvalidOrder for duplicate entries, got %v", err)
	}
	if _, err := PrepareWithOrder(ig, []NodeID{0, 1, 2, 3, 99}); err != ErrInvalidOrder {
		t.Fatalf("expected ErrInvalidOrder for out-of-range entry, got %v", err)
	}
}

func TestCalcPathRejectsOutOfRangeNodes(t *testing.T) {
	ig := randomInputGraph(5, 2, 1)
	fg := Prepare(ig)
	if _, err := CalcPath(fg, 0, 999); err != ErrNodeOutOfRange {
		t.Fatalf("expected ErrNodeOutOfRange, got %v", err)
	}
}

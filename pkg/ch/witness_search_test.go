package ch

import "testing"

// Diamond graph: 0->1->3 (weight 2+2=4) and 0->2->3 (weight 1+1=2), plus the
// node under test, 4, contracted between 0 and 3 with a candidate shortcut
// of weight 5. The 0->2->3 path is a witness (weight 2 < 5), so no
// shortcut should be necessary.
func buildWitnessGraph() *PreparationGraph {
	g := NewPreparationGraph(5)
	g.AddEdge(0, 1, 2)
	g.AddEdge(1, 3, 2)
	g.AddEdge(0, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(0, 4, 3)
	g.AddEdge(4, 3, 2)
	return g
}

func TestWitnessSearchFindsCheaperWitness(t *testing.T) {
	g := buildWitnessGraph()
	ws := NewWitnessSearch(g.NumNodes())
	ws.Run(g, 0, 4, 5, 10, 100)
	if got := ws.GetWeight(3); got != 2 {
		t.Fatalf("expected witness weight 2, got %d", got)
	}
}

func TestWitnessSearchExcludesContractedNode(t *testing.T) {
	g := NewPreparationGraph(3)
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	ws := NewWitnessSearch(g.NumNodes())
	// The only path from 0 to 2 goes through 1; excluding 1 must leave 2
	// unreached.
	ws.Run(g, 0, 1, 100, 10, 100)
	if got := ws.GetWeight(2); got != WeightMax {
		t.Fatalf("expected node 2 unreached when excluding node 1, got weight %d", got)
	}
}

func TestWitnessSearchRespectsMaxWeight(t *testing.T) {
	g := buildWitnessGraph()
	ws := NewWitnessSearch(g.NumNodes())
	// maxWeight 1 stops before any path can reach node 3 (shortest is 2).
	ws.Run(g, 0, 4, 1, 10, 100)
	if got := ws.GetWeight(3); got != WeightMax {
		t.Fatalf("expected node 3 unreached under a too-tight max weight, got %d", got)
	}
}

func TestWitnessSearchRespectsMaxHops(t *testing.T) {
	g := buildWitnessGraph()
	ws := NewWitnessSearch(g.NumNodes())
	// maxHops 1 allows relaxing from the source but not from its
	// neighbors, so two-hop node 3 is never reached.
	ws.Run(g, 0, 4, 100, 1, 100)
	if got := ws.GetWeight(3); got != WeightMax {
		t.Fatalf("expected node 3 unreached under a 1-hop bound, got %d", got)
	}
	if got := ws.GetWeight(1); got != 2 {
		t.Fatalf("expected node 1 (one hop away) reached at weight 2, got %d", got)
	}
}

func TestWitnessSearchReusableAcrossCalls(t *testing.T) {
	g := buildWitnessGraph()
	ws := NewWitnessSearch(g.NumNodes())
	ws.Run(g, 0, 4, 5, 10, 100)
	if got := ws.GetWeight(3); got != 2 {
		t.Fatalf("first run: expected 2, got %d", got)
	}
	// A second run from a different source must not see stale state from
	// the first.
	ws.Run(g, 1, 4, 100, 10, 100)
	if got := ws.GetWeight(0); got != WeightMax {
		t.Fatalf("expected node 0 unreached from source 1, got %d", got)
	}
	if got := ws.GetWeight(3); got != 2 {
		t.Fatalf("expected node 3 reached at weight 2 from source 1, got %d", got)
	}
}

package ch

import (
	"reflect"
	"testing"
)

// These two graphs and their expected answers are the reference scenarios
// also used directly in spec.md's testable-properties section; they
// originate from the Dijkstra reference oracle's own test suite and are
// reused here unchanged to confirm the prepared FastGraph reproduces exact
// Dijkstra answers after shortcutting and unpacking.

func buildSimplePathGraph() *InputGraph {
	//      7 -> 8 -> 9
	//      |         |
	// 0 -> 5 -> 6 -  |
	// |         |  \ |
	// 1 -> 2 -> 3 -> 4
	g := NewInputGraph()
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(3, 4, 20)
	g.AddEdge(0, 5, 5)
	g.AddEdge(5, 6, 1)
	g.AddEdge(6, 4, 20)
	g.AddEdge(6, 3, 20)
	g.AddEdge(5, 7, 5)
	g.AddEdge(7, 8, 1)
	g.AddEdge(8, 9, 1)
	g.AddEdge(9, 4, 1)
	return g
}

func buildGoAroundGraph() *InputGraph {
	// 0 -> 1
	// |    |
	// 2 -> 3
	g := NewInputGraph()
	g.AddEdge(0, 1, 10)
	g.AddEdge(0, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(3, 1, 1)
	return g
}

func assertPath(t *testing.T, fg *FastGraph, source, target NodeID, weight Weight, nodes []NodeID) {
	t.Helper()
	pc := NewPathCalculator(int(fg.NumNodes))
	path, err := pc.CalcPath(fg, source, target)
	if err != nil {
		t.Fatalf("CalcPath(%d,%d): unexpected error %v", source, target, err)
	}
	if path == nil {
		t.Fatalf("CalcPath(%d,%d): expected a path, got none", source, target)
	}
	if path.Source != source || path.Target != target || path.Weight != weight {
		t.Fatalf("CalcPath(%d,%d) = %+v, want weight %d", source, target, path, weight)
	}
	if !reflect.DeepEqual(path.Nodes, nodes) {
		t.Fatalf("CalcPath(%d,%d) nodes = %v, want %v", source, target, path.Nodes, nodes)
	}
}

func assertNoPath(t *testing.T, fg *FastGraph, source, target NodeID) {
	t.Helper()
	pc := NewPathCalculator(int(fg.NumNodes))
	path, err := pc.CalcPath(fg, source, target)
	if err != nil {
		t.Fatalf("CalcPath(%d,%d): unexpected error %v", source, target, err)
	}
	if path != nil {
		t.Fatalf("CalcPath(%d,%d): expected no path, got %+v", source, target, path)
	}
}

func TestFastGraphSimplePathScenario(t *testing.T) {
	fg := Prepare(buildSimplePathGraph())
	assertNoPath(t, fg, 4, 0)
	assertPath(t, fg, 4, 4, 0, []NodeID{4})
	assertPath(t, fg, 6, 3, 20, []NodeID{6, 3})
	assertPath(t, fg, 1, 4, 22, []NodeID{1, 2, 3, 4})
	assertPath(t, fg, 0, 4, 13, []NodeID{0, 5, 7, 8, 9, 4})
}

func TestFastGraphGoAroundScenario(t *testing.T) {
	fg := Prepare(buildGoAroundGraph())
	assertPath(t, fg, 0, 1, 3, []NodeID{0, 2, 3, 1})
}

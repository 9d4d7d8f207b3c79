package ch

import "testing"

func TestCalcPathSourceEqualsTarget(t *testing.T) {
	fg := Prepare(buildSimplePathGraph())
	pc := NewPathCalculator(int(fg.NumNodes))
	path, err := pc.CalcPath(fg, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path == nil || path.Weight != 0 || len(path.Nodes) != 1 || path.Nodes[0] != 3 {
		t.Fatalf("expected a singular zero-weight path, got %+v", path)
	}
}

func TestCalcPathNoPathReturnsNilNil(t *testing.T) {
	fg := Prepare(buildSimplePathGraph())
	pc := NewPathCalculator(int(fg.NumNodes))
	path, err := pc.CalcPath(fg, 4, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != nil {
		t.Fatalf("expected no path, got %+v", path)
	}
}

func TestCalcPathMultipleSourcesAndTargetsRejectsOutOfRange(t *testing.T) {
	fg := Prepare(buildGoAroundGraph())
	pc := NewPathCalculator(int(fg.NumNodes))
	_, err := pc.CalcPathMultipleSourcesAndTargets(fg, []Endpoint{{99, 0}}, []Endpoint{{0, 0}})
	if err != ErrNodeOutOfRange {
		t.Fatalf("expected ErrNodeOutOfRange for bad source, got %v", err)
	}
	_, err = pc.CalcPathMultipleSourcesAndTargets(fg, []Endpoint{{0, 0}}, []Endpoint{{99, 0}})
	if err != ErrNodeOutOfRange {
		t.Fatalf("expected ErrNodeOutOfRange for bad target, got %v", err)
	}
}

func TestCalcPathMultipleSourcesAndTargetsAbsentEndpointsMeanNoPath(t *testing.T) {
	fg := Prepare(buildGoAroundGraph())
	pc := NewPathCalculator(int(fg.NumNodes))
	path, err := pc.CalcPathMultipleSourcesAndTargets(fg,
		[]Endpoint{{0, WeightMax}}, []Endpoint{{1, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != nil {
		t.Fatalf("a source offered at WeightMax should be treated as absent, got %+v", path)
	}
}

func TestCalcPathMultipleSourcesChoosesCheaperEndpoint(t *testing.T) {
	fg := Prepare(buildGoAroundGraph())
	pc := NewPathCalculator(int(fg.NumNodes))
	// Two candidate sources at node 0: a cheap one and an expensive one.
	// The cheap one should win.
	path, err := pc.CalcPathMultipleSourcesAndTargets(fg,
		[]Endpoint{{0, 100}, {0, 1}}, []Endpoint{{1, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path == nil || path.Weight != 4 { // 1 (seed) + 3 (0->2->3->1)
		t.Fatalf("expected weight 4 using the cheaper seed, got %+v", path)
	}
}

func TestPathCalculatorReusableAcrossQueries(t *testing.T) {
	fg := Prepare(buildSimplePathGraph())
	pc := NewPathCalculator(int(fg.NumNodes))
	first, err := pc.CalcPath(fg, 0, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := pc.CalcPath(fg, 6, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Weight != 13 || second.Weight != 20 {
		t.Fatalf("reused calculator gave wrong answers: first=%+v second=%+v", first, second)
	}
}

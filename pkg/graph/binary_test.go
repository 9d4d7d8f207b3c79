package graph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/osm"

	"github.com/foyle-labs/pathkit/pkg/graph"
	osmparser "github.com/foyle-labs/pathkit/pkg/osm"
)

func buildTestPrepared(t *testing.T) *graph.PreparedGraph {
	t.Helper()
	result := &osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 10, ToNodeID: 20, Weight: 100},
			{FromNodeID: 20, ToNodeID: 10, Weight: 100},
			{FromNodeID: 20, ToNodeID: 30, Weight: 200},
			{FromNodeID: 30, ToNodeID: 20, Weight: 200},
			{FromNodeID: 10, ToNodeID: 40, Weight: 300},
			{FromNodeID: 40, ToNodeID: 10, Weight: 300},
		},
		NodeLat: map[osm.NodeID]float64{10: 1.0, 20: 1.1, 30: 1.2, 40: 1.3},
		NodeLon: map[osm.NodeID]float64{10: 103.0, 20: 103.1, 30: 103.2, 40: 103.3},
	}
	g := graph.Build(result)
	return g.Prepare()
}

func TestBinaryRoundTrip(t *testing.T) {
	original := buildTestPrepared(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.graph.bin")

	if err := graph.WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	loaded, err := graph.ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	if loaded.NumNodes != original.NumNodes {
		t.Errorf("NumNodes: got %d, want %d", loaded.NumNodes, original.NumNodes)
	}

	for i := uint32(0); i < original.NumNodes; i++ {
		if loaded.NodeLat[i] != original.NodeLat[i] {
			t.Errorf("NodeLat[%d]: got %f, want %f", i, loaded.NodeLat[i], original.NodeLat[i])
		}
	}

	if len(loaded.OrigHead) != len(original.OrigHead) {
		t.Fatalf("OrigHead length: got %d, want %d", len(loaded.OrigHead), len(original.OrigHead))
	}
	for i := range original.OrigHead {
		if loaded.OrigHead[i] != original.OrigHead[i] {
			t.Errorf("OrigHead[%d]: got %d, want %d", i, loaded.OrigHead[i], original.OrigHead[i])
		}
		if loaded.OrigWeight[i] != original.OrigWeight[i] {
			t.Errorf("OrigWeight[%d]: got %d, want %d", i, loaded.OrigWeight[i], original.OrigWeight[i])
		}
	}

	if loaded.FastGraph.NumNodes != original.FastGraph.NumNodes {
		t.Fatalf("FastGraph.NumNodes: got %d, want %d", loaded.FastGraph.NumNodes, original.FastGraph.NumNodes)
	}
	if len(loaded.FastGraph.FwdEdges) != len(original.FastGraph.FwdEdges) {
		t.Fatalf("FwdEdges length: got %d, want %d", len(loaded.FastGraph.FwdEdges), len(original.FastGraph.FwdEdges))
	}
	if len(loaded.FastGraph.BwdEdges) != len(original.FastGraph.BwdEdges) {
		t.Fatalf("BwdEdges length: got %d, want %d", len(loaded.FastGraph.BwdEdges), len(original.FastGraph.BwdEdges))
	}
}

func TestBinaryInvalidMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.graph.bin")
	os.WriteFile(path, []byte("NOT_MPROUTER_HEADER_BLAH_BLAH_BLAH_MORE_DATA"), 0644)

	_, err := graph.ReadBinary(path)
	if err == nil {
		t.Fatal("expected error for invalid magic bytes")
	}
}

func TestBinaryTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated.graph.bin")
	os.WriteFile(path, []byte("MPROUTER"), 0644)

	_, err := graph.ReadBinary(path)
	if err == nil {
		t.Fatal("expected error for truncated file")
	}
}

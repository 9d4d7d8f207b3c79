package routing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/osm"

	"github.com/foyle-labs/pathkit/pkg/graph"
	osmparser "github.com/foyle-labs/pathkit/pkg/osm"
	"github.com/foyle-labs/pathkit/pkg/routing"
)

// A small square of four intersections, one-way around the loop, so a route
// from near one corner to near the opposite corner must actually use the
// road network rather than a straight line.
func buildSquareGraph(t *testing.T) *graph.Graph {
	t.Helper()
	result := &osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 1, ToNodeID: 2, Weight: 1000},
			{FromNodeID: 2, ToNodeID: 3, Weight: 1000},
			{FromNodeID: 3, ToNodeID: 4, Weight: 1000},
			{FromNodeID: 4, ToNodeID: 1, Weight: 1000},
		},
		NodeLat: map[osm.NodeID]float64{1: 0.0, 2: 0.0, 3: 0.01, 4: 0.01},
		NodeLon: map[osm.NodeID]float64{1: 0.0, 2: 0.01, 3: 0.01, 4: 0.0},
	}
	return graph.Build(result)
}

func TestEngineRouteFollowsLoop(t *testing.T) {
	g := buildSquareGraph(t)
	pg := g.Prepare()
	engine := routing.NewEngine(pg, 2)

	start := routing.LatLng{Lat: 0.0, Lng: 0.0}  // at node 1
	end := routing.LatLng{Lat: 0.01, Lng: 0.01} // at node 3

	result, err := engine.Route(context.Background(), start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalDistanceMeters <= 0 {
		t.Fatalf("expected a positive distance, got %v", result.TotalDistanceMeters)
	}
	if len(result.Segments) != 1 || len(result.Segments[0].Geometry) < 3 {
		t.Fatalf("expected a geometry with at least source/via/target, got %+v", result.Segments)
	}
}

func TestEngineRoutePointTooFar(t *testing.T) {
	g := buildSquareGraph(t)
	pg := g.Prepare()
	engine := routing.NewEngine(pg, 1)

	start := routing.LatLng{Lat: 50.0, Lng: 50.0}
	end := routing.LatLng{Lat: 0.01, Lng: 0.01}

	_, err := engine.Route(context.Background(), start, end)
	if !errors.Is(err, routing.ErrPointTooFar) {
		t.Fatalf("expected ErrPointTooFar, got %v", err)
	}
}

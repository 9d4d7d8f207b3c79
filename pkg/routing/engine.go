package routing

import (
	"context"
	"errors"
	"math"

	"github.com/foyle-labs/pathkit/pkg/ch"
	"github.com/foyle-labs/pathkit/pkg/graph"
)

// ErrNoRoute is returned when no route exists between the two points.
var ErrNoRoute = errors.New("no route found")

// LatLng represents a geographic coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

// Segment represents a road segment in the route result.
type Segment struct {
	DistanceMeters float64
	Geometry       []LatLng
}

// RouteResult is the output of a route query.
type RouteResult struct {
	TotalDistanceMeters float64
	Segments            []Segment
}

// Router is the interface for route queries.
type Router interface {
	Route(ctx context.Context, start, end LatLng) (*RouteResult, error)
}

// Engine implements Router over a prepared contraction hierarchies graph.
type Engine struct {
	pg      *graph.PreparedGraph
	snapper *Snapper
	pcPool  chan *ch.PathCalculator
}

// NewEngine creates a routing engine from a prepared graph. poolSize bounds
// the number of PathCalculator instances kept warm for concurrent requests;
// callers beyond that bound build (and discard) their own.
func NewEngine(pg *graph.PreparedGraph, poolSize int) *Engine {
	if poolSize <= 0 {
		poolSize = 1
	}
	return &Engine{
		pg:      pg,
		snapper: NewSnapper(origGraphView(pg)),
		pcPool:  make(chan *ch.PathCalculator, poolSize),
	}
}

// origGraphView reconstructs the *graph.Graph view Snapper needs out of the
// original-edge fields a PreparedGraph carries.
func origGraphView(pg *graph.PreparedGraph) *graph.Graph {
	return &graph.Graph{
		NumNodes:    pg.NumNodes,
		NumEdges:    uint32(len(pg.OrigHead)),
		FirstOut:    pg.OrigFirstOut,
		Head:        pg.OrigHead,
		Weight:      pg.OrigWeight,
		NodeLat:     pg.NodeLat,
		NodeLon:     pg.NodeLon,
		GeoFirstOut: pg.GeoFirstOut,
		GeoShapeLat: pg.GeoShapeLat,
		GeoShapeLon: pg.GeoShapeLon,
	}
}

func (e *Engine) getCalculator() *ch.PathCalculator {
	select {
	case pc := <-e.pcPool:
		return pc
	default:
		return ch.NewPathCalculator(int(e.pg.NumNodes))
	}
}

func (e *Engine) putCalculator(pc *ch.PathCalculator) {
	select {
	case e.pcPool <- pc:
	default:
	}
}

// Route computes the shortest path between two points.
func (e *Engine) Route(ctx context.Context, start, end LatLng) (*RouteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startSnap, err := e.snapper.Snap(start.Lat, start.Lng)
	if err != nil {
		return nil, err
	}
	endSnap, err := e.snapper.Snap(end.Lat, end.Lng)
	if err != nil {
		return nil, err
	}

	sources := snapEndpoints(e.pg, startSnap, false)
	targets := snapEndpoints(e.pg, endSnap, true)

	pc := e.getCalculator()
	defer e.putCalculator(pc)

	path, err := pc.CalcPathMultipleSourcesAndTargets(e.pg.FastGraph, sources, targets)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, ErrNoRoute
	}

	totalDistMeters := float64(path.Weight) / 1000.0
	geometry := buildGeometry(e.pg, path.Nodes)

	return &RouteResult{
		TotalDistanceMeters: totalDistMeters,
		Segments: []Segment{
			{
				DistanceMeters: totalDistMeters,
				Geometry:       geometry,
			},
		},
	}, nil
}

// snapEndpoints turns a snapped point into the two graph-node endpoints a
// bidirectional search should seed, weighted by the interpolated distance
// from the snap point to each. The weights are the same for a source snap
// and a target snap; forTarget does not change them.
func snapEndpoints(pg *graph.PreparedGraph, snap SnapResult, forTarget bool) []ch.Endpoint {
	weight := pg.OrigWeight[snap.EdgeIdx]
	toV := ch.Weight(math.Round(float64(weight) * (1 - snap.Ratio)))
	toU := ch.Weight(math.Round(float64(weight) * snap.Ratio))
	return []ch.Endpoint{
		{Node: ch.NodeID(snap.NodeU), Weight: toU},
		{Node: ch.NodeID(snap.NodeV), Weight: toV},
	}
}

// buildGeometry converts a sequence of original graph node IDs into lat/lng
// coordinates, including intermediate shape points from edge geometry.
func buildGeometry(pg *graph.PreparedGraph, nodes []ch.NodeID) []LatLng {
	if len(nodes) == 0 {
		return nil
	}

	geom := make([]LatLng, 0, len(nodes)*2)
	geom = append(geom, LatLng{Lat: pg.NodeLat[nodes[0]], Lng: pg.NodeLon[nodes[0]]})

	for i := 0; i < len(nodes)-1; i++ {
		u := uint32(nodes[i])
		v := uint32(nodes[i+1])

		if pg.GeoFirstOut != nil {
			edgeIdx := findEdge(pg.OrigFirstOut, pg.OrigHead, u, v)
			if edgeIdx != noNode && edgeIdx < uint32(len(pg.GeoFirstOut)-1) {
				geoStart := pg.GeoFirstOut[edgeIdx]
				geoEnd := pg.GeoFirstOut[edgeIdx+1]
				for k := geoStart; k < geoEnd; k++ {
					geom = append(geom, LatLng{
						Lat: pg.GeoShapeLat[k],
						Lng: pg.GeoShapeLon[k],
					})
				}
			}
		}

		geom = append(geom, LatLng{Lat: pg.NodeLat[v], Lng: pg.NodeLon[v]})
	}

	return geom
}

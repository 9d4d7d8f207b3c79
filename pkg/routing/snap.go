package routing

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"github.com/foyle-labs/pathkit/pkg/geo"
	"github.com/foyle-labs/pathkit/pkg/graph"
)

const maxSnapDistMeters = 500.0

// ErrPointTooFar is returned when the query point is too far from any road.
var ErrPointTooFar = errors.New("point too far from road")

// SnapResult represents a point snapped to a road segment.
type SnapResult struct {
	EdgeIdx uint32  // index into original edge arrays
	NodeU   uint32  // source node of the edge
	NodeV   uint32  // target node of the edge
	Ratio   float64 // 0.0 = at NodeU, 1.0 = at NodeV
	Dist    float64 // distance in meters from query point to snapped point
}

// degreesPerMeter is the meter-to-degree conversion for latitude (about
// 111 km per degree). Snap applies it to longitude too, where it is close
// only near the equator; at higher latitudes the longitude padding spans
// fewer than maxSnapDistMeters. The exact distance check below is what
// decides acceptance.
const degreesPerMeter = 1.0 / 111_000.0

// Snapper provides nearest-road snapping backed by an in-memory R-tree over
// original edge bounding boxes.
type Snapper struct {
	tree rtree.RTreeG[uint32] // data: original edge index
	g    *graph.Graph
}

// NewSnapper builds an R-tree spatial index from the original graph's edges.
func NewSnapper(g *graph.Graph) *Snapper {
	s := &Snapper{g: g}
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.Head[e]
			min, max := edgeBox(g, u, v)
			s.tree.Insert(min, max, e)
		}
	}
	return s
}

func edgeBox(g *graph.Graph, u, v uint32) (min, max [2]float64) {
	uLat, uLon := g.NodeLat[u], g.NodeLon[u]
	vLat, vLon := g.NodeLat[v], g.NodeLon[v]
	min = [2]float64{math.Min(uLat, vLat), math.Min(uLon, vLon)}
	max = [2]float64{math.Max(uLat, vLat), math.Max(uLon, vLon)}
	return min, max
}

// Snap finds the nearest road segment to the given lat/lng. It searches a
// bounding box sized to the max snap distance, padded enough to keep edges
// whose envelope extends past the query point but whose nearest point still
// falls within range.
func (s *Snapper) Snap(lat, lng float64) (SnapResult, error) {
	pad := maxSnapDistMeters * degreesPerMeter
	min := [2]float64{lat - pad, lng - pad}
	max := [2]float64{lat + pad, lng + pad}

	bestDist := math.Inf(1)
	var bestResult SnapResult
	found := false

	s.tree.Search(min, max, func(_, _ [2]float64, edgeIdx uint32) bool {
		u := edgeSource(s.g, edgeIdx)
		v := s.g.Head[edgeIdx]

		exactDist, ratio := geo.PointToSegmentDist(
			lat, lng,
			s.g.NodeLat[u], s.g.NodeLon[u],
			s.g.NodeLat[v], s.g.NodeLon[v],
		)

		if exactDist < bestDist {
			bestDist = exactDist
			found = true
			bestResult = SnapResult{
				EdgeIdx: edgeIdx,
				NodeU:   u,
				NodeV:   v,
				Ratio:   ratio,
				Dist:    exactDist,
			}
		}
		return true
	})

	if !found || bestDist > maxSnapDistMeters {
		return SnapResult{}, ErrPointTooFar
	}

	return bestResult, nil
}

// edgeSource finds the node an edge index originates from via binary search
// over FirstOut, since the R-tree only stores the flat edge index.
func edgeSource(g *graph.Graph, edgeIdx uint32) uint32 {
	lo, hi := uint32(0), g.NumNodes
	for lo < hi {
		mid := (lo + hi) / 2
		if g.FirstOut[mid+1] <= edgeIdx {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

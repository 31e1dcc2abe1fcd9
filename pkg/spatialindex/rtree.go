package spatialindex

import (
	"math"

	"github.com/fahrizal-w/parastar/pkg/datastructure"
	"github.com/fahrizal-w/parastar/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree indexes the network's vertices by coordinate so the HTTP
// surface can snap an arbitrary (lat, lon) query to the nearest graph
// vertex before running a search.
type Rtree struct {
	tr *rtree.RTreeG[VertexPoint]
}

type VertexPoint struct {
	id    int64
	coord geo.Coordinate
}

func (vp VertexPoint) GetID() int64 {
	return vp.id
}

func (vp VertexPoint) GetCoordinate() geo.Coordinate {
	return vp.coord
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[VertexPoint]
	return &Rtree{
		tr: &tr,
	}
}

func (rt *Rtree) Build(network *datastructure.RoadNetwork, log *zap.Logger) {
	log.Info("building R-tree spatial index...")
	network.ForEachVertex(func(id int64, coord geo.Coordinate) {
		p := [2]float64{coord.Lon, coord.Lat}
		rt.tr.Insert(p, p, VertexPoint{id: id, coord: coord})
	})
	log.Info("R-tree spatial index built", zap.Int("vertices", network.NumberOfVertices()))
}

// NearestVertex snaps (qLat, qLon) to the closest indexed vertex,
// searching an expanding bounding box. Returns false when the index is
// empty or nothing lies within maxRadiusKM.
func (rt *Rtree) NearestVertex(qLat, qLon, maxRadiusKM float64) (VertexPoint, bool) {
	radius := math.Min(0.1, maxRadiusKM)
	for {
		candidates := rt.searchWithinBox(qLat, qLon, radius)

		best := VertexPoint{}
		bestDist := math.Inf(1)
		for _, c := range candidates {
			d := geo.CalculateHaversineDistance(qLat, qLon, c.coord.Lat, c.coord.Lon)
			if d < bestDist {
				best = c
				bestDist = d
			}
		}
		if bestDist <= maxRadiusKM {
			return best, true
		}
		if radius >= maxRadiusKM {
			return VertexPoint{}, false
		}
		radius = math.Min(radius*4, maxRadiusKM)
	}
}

func (rt *Rtree) searchWithinBox(qLat, qLon, radiusKM float64) []VertexPoint {
	// ~111 km per degree of latitude; stretch longitude by cos(lat)
	dLat := radiusKM / 111.0
	dLon := dLat / math.Max(math.Cos(qLat*math.Pi/180.0), 0.01)

	results := make([]VertexPoint, 0, 16)
	rt.tr.Search([2]float64{qLon - dLon, qLat - dLat}, [2]float64{qLon + dLon, qLat + dLat},
		func(min, max [2]float64, data VertexPoint) bool {
			results = append(results, data)
			return len(results) < 64
		})
	return results
}

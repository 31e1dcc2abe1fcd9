package usecases

import (
	"fmt"

	"github.com/fahrizal-w/parastar/pkg/util"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialindex SpatialIndex,
	searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialindex,
		searchRadius: searchRadius,
	}
}

// ShortestPath snaps both coordinates to their nearest graph vertices and
// runs the shortest path search between them. It returns the path distance
// in km, the path as an encoded polyline, and the vertex ids along the path.
func (rs *RoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (float64, string, []int64, bool, error) {
	orig, ok := rs.spatialIndex.NearestVertex(origLat, origLon, rs.searchRadius)
	if !ok {
		return 0, "", nil, false, util.WrapErrorf(nil, util.ErrNotFound,
			fmt.Sprintf("no road vertex within %.1f km of origin %f,%f", rs.searchRadius, origLat, origLon))
	}
	dst, ok := rs.spatialIndex.NearestVertex(dstLat, dstLon, rs.searchRadius)
	if !ok {
		return 0, "", nil, false, util.WrapErrorf(nil, util.ErrNotFound,
			fmt.Sprintf("no road vertex within %.1f km of destination %f,%f", rs.searchRadius, dstLat, dstLon))
	}

	path, cost, found, err := rs.engine.GetRouter().Search(orig.GetID(), dst.GetID())
	if err != nil {
		return 0, "", nil, false, err
	}
	if !found {
		rs.log.Debug("no route between snapped vertices",
			zap.Int64("origin", orig.GetID()), zap.Int64("destination", dst.GetID()))
		return 0, "", nil, false, nil
	}

	return cost, rs.encodePath(path), path, true, nil
}

func (rs *RoutingService) encodePath(path []int64) string {
	network := rs.engine.GetNetwork()
	coords := make([][]float64, 0, len(path))
	for _, v := range path {
		c, ok := network.Coordinate(v)
		if !ok {
			continue
		}
		coords = append(coords, []float64{c.GetLat(), c.GetLon()})
	}
	return string(polyline.EncodeCoords(coords))
}

package usecases

import (
	"github.com/fahrizal-w/parastar/pkg/datastructure"
	"github.com/fahrizal-w/parastar/pkg/engine/routing"
	"github.com/fahrizal-w/parastar/pkg/spatialindex"
)

type RoutingEngine interface {
	GetNetwork() *datastructure.RoadNetwork
	GetRouter() routing.Router
}

type SpatialIndex interface {
	NearestVertex(qLat, qLon, maxRadiusKM float64) (spatialindex.VertexPoint, bool)
}

package usecases

import (
	"errors"
	"testing"

	"github.com/fahrizal-w/parastar/pkg/datastructure"
	"github.com/fahrizal-w/parastar/pkg/engine"
	"github.com/fahrizal-w/parastar/pkg/engine/routing"
	"github.com/fahrizal-w/parastar/pkg/geo"
	"github.com/fahrizal-w/parastar/pkg/spatialindex"
	"github.com/fahrizal-w/parastar/pkg/util"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *RoutingService {
	t.Helper()
	adjacency := map[int64][]datastructure.Edge{
		1: {datastructure.NewEdge(2, 1)},
		2: {datastructure.NewEdge(3, 1)},
	}
	coordinates := map[int64]geo.Coordinate{
		1: geo.NewCoordinate(-7.7956, 110.3695),
		2: geo.NewCoordinate(-7.7960, 110.3700),
		3: geo.NewCoordinate(-7.7964, 110.3705),
	}
	network, err := datastructure.NewRoadNetwork(adjacency, coordinates)
	require.NoError(t, err)

	routingEngine, err := engine.NewEngineFromNetwork(network, 2,
		routing.LifecyclePool, routing.BackendLibSync, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(routingEngine.Close)

	rtree := spatialindex.NewRtree()
	rtree.Build(network, zap.NewNop())

	return NewRoutingService(zap.NewNop(), routingEngine, rtree, 1.0)
}

func TestShortestPathSnapsAndRoutes(t *testing.T) {
	rs := newTestService(t)

	// near vertex 1 and vertex 3
	dist, encoded, vertices, found, err := rs.ShortestPath(-7.79561, 110.36951, -7.79641, 110.37051)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []int64{1, 2, 3}, vertices)
	require.InDelta(t, 2.0, dist, 1e-12)

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	require.NoError(t, err)
	require.Len(t, coords, 3)
	require.InDelta(t, -7.7956, coords[0][0], 1e-4)
	require.InDelta(t, 110.3695, coords[0][1], 1e-4)
}

func TestShortestPathNoVertexInRadius(t *testing.T) {
	rs := newTestService(t)

	// Jakarta is far outside the 1 km snap radius
	_, _, _, _, err := rs.ShortestPath(-6.2088, 106.8456, -7.79641, 110.37051)
	require.Error(t, err)

	var serviceErr *util.Error
	require.True(t, errors.As(err, &serviceErr))
	require.Equal(t, util.ErrNotFound, serviceErr.Code())
}

func TestShortestPathUnreachableDestination(t *testing.T) {
	rs := newTestService(t)

	// vertex 3 has no outgoing edges, so 3 -> 1 has no route
	_, _, _, found, err := rs.ShortestPath(-7.79641, 110.37051, -7.79561, 110.36951)
	require.NoError(t, err)
	require.False(t, found)
}

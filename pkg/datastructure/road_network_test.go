package datastructure

import (
	"errors"
	"testing"

	"github.com/fahrizal-w/parastar/pkg/geo"
	"github.com/stretchr/testify/require"
)

func testCoordinates() map[int64]geo.Coordinate {
	return map[int64]geo.Coordinate{
		1: geo.NewCoordinate(-7.7956, 110.3695),
		2: geo.NewCoordinate(-7.7829, 110.3671),
		3: geo.NewCoordinate(-7.8014, 110.3647),
	}
}

func TestNewRoadNetwork(t *testing.T) {
	testCases := []struct {
		name        string
		adjacency   map[int64][]Edge
		coordinates map[int64]geo.Coordinate
		wantErr     bool
	}{
		{
			name: "valid graph",
			adjacency: map[int64][]Edge{
				1: {NewEdge(2, 1.5)},
				2: {NewEdge(3, 2.0)},
			},
			coordinates: testCoordinates(),
			wantErr:     false,
		},
		{
			name: "negative edge weight",
			adjacency: map[int64][]Edge{
				1: {NewEdge(2, -1.0)},
			},
			coordinates: testCoordinates(),
			wantErr:     true,
		},
		{
			name: "edge endpoint without coordinate",
			adjacency: map[int64][]Edge{
				1: {NewEdge(99, 1.0)},
			},
			coordinates: testCoordinates(),
			wantErr:     true,
		},
		{
			name: "tail vertex without coordinate",
			adjacency: map[int64][]Edge{
				99: {NewEdge(1, 1.0)},
			},
			coordinates: testCoordinates(),
			wantErr:     true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoadNetwork(tt.adjacency, tt.coordinates)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrMalformedGraph))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRoadNetworkParallelEdgesCollapsed(t *testing.T) {
	adjacency := map[int64][]Edge{
		1: {NewEdge(2, 5.0), NewEdge(2, 1.5), NewEdge(2, 3.0)},
	}
	network, err := NewRoadNetwork(adjacency, testCoordinates())
	require.NoError(t, err)

	neighbors := network.Neighbors(1)
	require.Len(t, neighbors, 1)
	require.Equal(t, int64(2), neighbors[0].To)
	require.InDelta(t, 1.5, neighbors[0].Weight, 1e-12)
	require.Equal(t, 1, network.NumberOfEdges())
}

func TestRoadNetworkNeighborsSorted(t *testing.T) {
	adjacency := map[int64][]Edge{
		1: {NewEdge(3, 1.0), NewEdge(2, 1.0)},
	}
	network, err := NewRoadNetwork(adjacency, testCoordinates())
	require.NoError(t, err)

	neighbors := network.Neighbors(1)
	require.Len(t, neighbors, 2)
	require.Equal(t, int64(2), neighbors[0].To)
	require.Equal(t, int64(3), neighbors[1].To)
}

func TestRoadNetworkAccessors(t *testing.T) {
	adjacency := map[int64][]Edge{
		1: {NewEdge(2, 1.5)},
	}
	network, err := NewRoadNetwork(adjacency, testCoordinates())
	require.NoError(t, err)

	require.True(t, network.Contains(1))
	require.True(t, network.Contains(3))
	require.False(t, network.Contains(42))
	require.Equal(t, 3, network.NumberOfVertices())

	coord, ok := network.Coordinate(1)
	require.True(t, ok)
	require.InDelta(t, -7.7956, coord.GetLat(), 1e-9)

	_, ok = network.Coordinate(42)
	require.False(t, ok)

	require.Empty(t, network.Neighbors(3))
	require.Empty(t, network.Neighbors(42))
}

package datastructure

import (
	"path/filepath"
	"testing"

	"github.com/fahrizal-w/parastar/pkg/geo"
	"github.com/stretchr/testify/require"
)

func TestGraphWriteReadRoundTrip(t *testing.T) {
	adjacency := map[int64][]Edge{
		1: {NewEdge(2, 1.25), NewEdge(3, 4.5)},
		2: {NewEdge(3, 0.75)},
		3: {NewEdge(1, 2.0)},
	}
	coordinates := map[int64]geo.Coordinate{
		1: geo.NewCoordinate(-7.7956, 110.3695),
		2: geo.NewCoordinate(-7.7829, 110.3671),
		3: geo.NewCoordinate(-7.8014, 110.3647),
	}

	network, err := NewRoadNetwork(adjacency, coordinates)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "network.graph.bz2")
	require.NoError(t, network.WriteGraph(file))

	loaded, err := ReadGraph(file)
	require.NoError(t, err)

	require.Equal(t, network.NumberOfVertices(), loaded.NumberOfVertices())
	require.Equal(t, network.NumberOfEdges(), loaded.NumberOfEdges())

	for id, want := range coordinates {
		got, ok := loaded.Coordinate(id)
		require.True(t, ok)
		require.InDelta(t, want.GetLat(), got.GetLat(), 1e-12)
		require.InDelta(t, want.GetLon(), got.GetLon(), 1e-12)
	}

	for from := range adjacency {
		wantEdges := network.Neighbors(from)
		gotEdges := loaded.Neighbors(from)
		require.Len(t, gotEdges, len(wantEdges))
		for i := range wantEdges {
			require.Equal(t, wantEdges[i].To, gotEdges[i].To)
			require.InDelta(t, wantEdges[i].Weight, gotEdges[i].Weight, 1e-12)
		}
	}
}

func TestReadGraphMissingFile(t *testing.T) {
	_, err := ReadGraph(filepath.Join(t.TempDir(), "does-not-exist.graph.bz2"))
	require.Error(t, err)
}

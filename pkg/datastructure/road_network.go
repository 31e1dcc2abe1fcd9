package datastructure

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fahrizal-w/parastar/pkg/geo"
)

var (
	ErrMalformedGraph = errors.New("malformed graph")
)

// Edge is one directed adjacency entry: head vertex plus traversal cost.
// Weights are kilometers for OSM-derived networks but any non-negative
// cost works.
type Edge struct {
	To     int64
	Weight float64
}

func NewEdge(to int64, weight float64) Edge {
	return Edge{To: to, Weight: weight}
}

// RoadNetwork is an immutable weighted directed graph with per-vertex
// coordinates. After NewRoadNetwork returns, the network is read-only
// and safe for unsynchronized concurrent access from any number of
// searches.
type RoadNetwork struct {
	adjacency   map[int64][]Edge
	coordinates map[int64]geo.Coordinate
	numEdges    int
}

// NewRoadNetwork validates and normalizes the supplied adjacency lists.
// Construction fails with ErrMalformedGraph when an edge carries a
// negative weight or references a vertex that has no coordinate entry.
// Vertices with missing coordinates are rejected rather than pruned, so
// a malformed extract surfaces at build time instead of as asymmetric
// reachability during queries.
//
// Parallel edges between the same ordered vertex pair collapse to the
// minimum weight. Each neighbor list is sorted by head vertex id, which
// keeps expansion order deterministic for a fixed input.
func NewRoadNetwork(adjacency map[int64][]Edge, coordinates map[int64]geo.Coordinate) (*RoadNetwork, error) {
	normalized := make(map[int64][]Edge, len(adjacency))
	numEdges := 0

	for from, edges := range adjacency {
		if _, ok := coordinates[from]; !ok {
			return nil, fmt.Errorf("%w: vertex %d has outgoing edges but no coordinate", ErrMalformedGraph, from)
		}

		best := make(map[int64]float64, len(edges))
		for _, e := range edges {
			if e.Weight < 0 {
				return nil, fmt.Errorf("%w: edge %d->%d has negative weight %f", ErrMalformedGraph, from, e.To, e.Weight)
			}
			if _, ok := coordinates[e.To]; !ok {
				return nil, fmt.Errorf("%w: edge %d->%d references vertex without coordinate", ErrMalformedGraph, from, e.To)
			}
			if w, seen := best[e.To]; !seen || e.Weight < w {
				best[e.To] = e.Weight
			}
		}

		collapsed := make([]Edge, 0, len(best))
		for to, w := range best {
			collapsed = append(collapsed, NewEdge(to, w))
		}
		sort.Slice(collapsed, func(i, j int) bool {
			return collapsed[i].To < collapsed[j].To
		})

		normalized[from] = collapsed
		numEdges += len(collapsed)
	}

	coords := make(map[int64]geo.Coordinate, len(coordinates))
	for id, c := range coordinates {
		coords[id] = c
	}

	return &RoadNetwork{
		adjacency:   normalized,
		coordinates: coords,
		numEdges:    numEdges,
	}, nil
}

// Neighbors returns the outgoing edges of node, sorted by head vertex
// id. The returned slice is owned by the network and must not be
// mutated.
func (rn *RoadNetwork) Neighbors(node int64) []Edge {
	return rn.adjacency[node]
}

func (rn *RoadNetwork) Coordinate(node int64) (geo.Coordinate, bool) {
	c, ok := rn.coordinates[node]
	return c, ok
}

func (rn *RoadNetwork) Contains(node int64) bool {
	_, ok := rn.coordinates[node]
	return ok
}

func (rn *RoadNetwork) NumberOfVertices() int {
	return len(rn.coordinates)
}

func (rn *RoadNetwork) NumberOfEdges() int {
	return rn.numEdges
}

// ForEachVertex visits every vertex of the network in unspecified order.
func (rn *RoadNetwork) ForEachVertex(fn func(id int64, coord geo.Coordinate)) {
	for id, c := range rn.coordinates {
		fn(id, c)
	}
}

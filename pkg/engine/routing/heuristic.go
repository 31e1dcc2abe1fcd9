package routing

import (
	"github.com/fahrizal-w/parastar/pkg/datastructure"
	"github.com/fahrizal-w/parastar/pkg/geo"
)

// Heuristic estimates the remaining cost from node to goal. It must be
// admissible (never overestimate the true remaining cost) for the
// engines to return optimal paths.
type Heuristic func(node, goal int64) float64

// HaversineHeuristic estimates by great-circle distance in km, which is
// admissible when edge weights are real-world distances.
func HaversineHeuristic(network *datastructure.RoadNetwork) Heuristic {
	return func(node, goal int64) float64 {
		a, okA := network.Coordinate(node)
		b, okB := network.Coordinate(goal)
		if !okA || !okB {
			return 0
		}
		return geo.CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
	}
}

// SphericalHeuristic is HaversineHeuristic computed on the s2 unit
// sphere. Same admissibility, different floating-point path.
func SphericalHeuristic(network *datastructure.RoadNetwork) Heuristic {
	return func(node, goal int64) float64 {
		a, okA := network.Coordinate(node)
		b, okB := network.Coordinate(goal)
		if !okA || !okB {
			return 0
		}
		return geo.CalculateSphericalDistance(a.Lat, a.Lon, b.Lat, b.Lon)
	}
}

// ZeroHeuristic degrades A* to Dijkstra.
func ZeroHeuristic(node, goal int64) float64 {
	return 0
}

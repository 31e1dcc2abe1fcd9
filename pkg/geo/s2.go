package geo

import (
	"github.com/fahrizal-w/parastar/pkg"
	"github.com/golang/geo/s2"
)

// CalculateSphericalDistance. great-circle distance in km computed on
// the s2 unit sphere. Agrees with the haversine formula to well below
// edge-weight precision, so both are valid admissible heuristics.
func CalculateSphericalDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	p1 := s2.LatLngFromDegrees(latOne, longOne)
	p2 := s2.LatLngFromDegrees(latTwo, longTwo)
	return p1.Distance(p2).Radians() * pkg.EARTH_RADIUS_KM
}

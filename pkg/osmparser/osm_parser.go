package osmparser

import (
	"context"
	"os"

	"github.com/fahrizal-w/parastar/pkg/datastructure"
	"github.com/fahrizal-w/parastar/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

var acceptedHighway = map[string]struct{}{
	"motorway": {}, "trunk": {}, "primary": {}, "secondary": {},
	"tertiary": {}, "unclassified": {}, "residential": {}, "service": {},
	"motorway_link": {}, "trunk_link": {}, "primary_link": {},
	"secondary_link": {}, "tertiary_link": {}, "living_street": {},
	"road": {}, "track": {},
}

type OsmParser struct {
	wayNodeIDs map[int64]struct{}
}

func NewOSMParser() *OsmParser {
	return &OsmParser{
		wayNodeIDs: make(map[int64]struct{}),
	}
}

// Parse builds a RoadNetwork from an .osm.pbf extract. Two streaming
// passes: the first collects the node ids referenced by routable
// highway ways, the second reads those nodes' coordinates and emits one
// directed edge per consecutive node pair, weighted by haversine
// distance in km. Ways without oneway=yes get edges in both directions.
func (p *OsmParser) Parse(mapFile string, logger *zap.Logger) (*datastructure.RoadNetwork, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for _, node := range way.Nodes {
			p.wayNodeIDs[int64(node.ID)] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	coordinates := make(map[int64]geo.Coordinate, len(p.wayNodeIDs))
	adjacency := make(map[int64][]datastructure.Edge)

	scanner = osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()
	for scanner.Scan() {
		o := scanner.Object()

		switch o.ObjectID().Type() {
		case osm.TypeNode:
			node := o.(*osm.Node)
			if _, ok := p.wayNodeIDs[int64(node.ID)]; ok {
				coordinates[int64(node.ID)] = geo.NewCoordinate(node.Lat, node.Lon)
			}
		case osm.TypeWay:
			way := o.(*osm.Way)
			if len(way.Nodes) < 2 || !acceptOsmWay(way) {
				continue
			}
			oneway := way.Tags.Find("oneway") == "yes"
			for i := 0; i < len(way.Nodes)-1; i++ {
				fromID := int64(way.Nodes[i].ID)
				toID := int64(way.Nodes[i+1].ID)

				// node objects precede ways in a pbf; endpoints missing
				// here were clipped out of the extract
				from, okFrom := coordinates[fromID]
				to, okTo := coordinates[toID]
				if !okFrom || !okTo {
					continue
				}
				weight := geo.CalculateHaversineDistance(from.Lat, from.Lon, to.Lat, to.Lon)

				adjacency[fromID] = append(adjacency[fromID], datastructure.NewEdge(toID, weight))
				if !oneway {
					adjacency[toID] = append(adjacency[toID], datastructure.NewEdge(fromID, weight))
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.Info("openstreetmap extract scanned",
		zap.Int("ways", countWays),
		zap.Int("nodes", len(coordinates)))

	return datastructure.NewRoadNetwork(adjacency, coordinates)
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := acceptedHighway[highway]; ok {
			return true
		}
	} else if junction != "" {
		return true
	}
	return false
}

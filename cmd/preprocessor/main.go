package main

import (
	"flag"

	"github.com/fahrizal-w/parastar/pkg/logger"
	"github.com/fahrizal-w/parastar/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	mapFile = flag.String("map", "./data/washington.osm.pbf", "openstreetmap pbf extract to parse")
	outFile = flag.String("out", "./data/road_network.graph.bz2", "output road network file")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	osmParser := osmparser.NewOSMParser()
	network, err := osmParser.Parse(*mapFile, logger)
	if err != nil {
		panic(err)
	}

	err = network.WriteGraph(*outFile)
	if err != nil {
		panic(err)
	}

	logger.Info("preprocessing completed successfully",
		zap.Int("vertices", network.NumberOfVertices()),
		zap.Int("edges", network.NumberOfEdges()),
		zap.String("out", *outFile))
}

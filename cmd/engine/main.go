package main

import (
	"context"
	"flag"
	"runtime"
	"strings"

	"github.com/fahrizal-w/parastar/pkg/engine"
	"github.com/fahrizal-w/parastar/pkg/engine/routing"
	"github.com/fahrizal-w/parastar/pkg/http"
	"github.com/fahrizal-w/parastar/pkg/http/usecases"
	"github.com/fahrizal-w/parastar/pkg/logger"
	"github.com/fahrizal-w/parastar/pkg/spatialindex"
	"github.com/fahrizal-w/parastar/pkg/util"
	"go.uber.org/zap"
)

var (
	graphFile    = flag.String("graph", "./data/road_network.graph.bz2", "preprocessed road network file")
	numWorkers   = flag.Int("workers", runtime.GOMAXPROCS(0), "number of search worker goroutines")
	lifecycle    = flag.String("lifecycle", "pool", "worker lifecycle: pool or vector")
	backend      = flag.String("backend", "libsync", "frontier backend: libsync or finegrained")
	searchRadius = flag.Float64("search_radius", 0.5, "snap radius around query coordinates in km")
	useRateLimit = flag.Bool("rate_limit", false, "rate limit api requests per client ip")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
	}

	lc := routing.LifecyclePool
	if strings.EqualFold(*lifecycle, "vector") {
		lc = routing.LifecycleVector
	}
	be := routing.BackendLibSync
	if strings.EqualFold(*backend, "finegrained") {
		be = routing.BackendFineGrained
	}

	routingEngine, err := engine.NewEngine(*graphFile, *numWorkers, lc, be, logger)
	if err != nil {
		panic(err)
	}
	defer routingEngine.Close()

	rtree := spatialindex.NewRtree()
	rtree.Build(routingEngine.GetNetwork(), logger)

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine, rtree, *searchRadius)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, *useRateLimit, routingService)

	signal := http.GracefulShutdown()

	logger.Info("Routing Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}

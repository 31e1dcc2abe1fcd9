package engine

import (
	"github.com/fahrizal-w/parastar/pkg/datastructure"
	"github.com/fahrizal-w/parastar/pkg/engine/routing"
	"go.uber.org/zap"
)

// Engine owns the loaded road network plus one configured search
// engine. The network is shared read-only between the sequential
// reference and the parallel router.
type Engine struct {
	network    *datastructure.RoadNetwork
	sequential *routing.AStar
	parallel   *routing.ParallelAStar
	logger     *zap.Logger
}

func NewEngine(graphFilePath string, numWorkers int, lifecycle routing.Lifecycle,
	backend routing.Backend, logger *zap.Logger) (*Engine, error) {

	logger.Info("reading road network", zap.String("graphFilePath", graphFilePath))
	network, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	logger.Info("road network loaded",
		zap.Int("vertices", network.NumberOfVertices()),
		zap.Int("edges", network.NumberOfEdges()))

	return NewEngineFromNetwork(network, numWorkers, lifecycle, backend, logger)
}

func NewEngineFromNetwork(network *datastructure.RoadNetwork, numWorkers int,
	lifecycle routing.Lifecycle, backend routing.Backend, logger *zap.Logger) (*Engine, error) {

	heuristic := routing.HaversineHeuristic(network)
	parallel, err := routing.NewParallelAStar(network, heuristic, numWorkers, lifecycle, backend)
	if err != nil {
		return nil, err
	}

	return &Engine{
		network:    network,
		sequential: routing.NewAStar(network, heuristic),
		parallel:   parallel,
		logger:     logger,
	}, nil
}

func (e *Engine) GetNetwork() *datastructure.RoadNetwork {
	return e.network
}

// GetRouter returns the configured parallel engine.
func (e *Engine) GetRouter() routing.Router {
	return e.parallel
}

// GetSequentialRouter returns the single-threaded reference engine.
func (e *Engine) GetSequentialRouter() routing.Router {
	return e.sequential
}

func (e *Engine) Close() {
	e.parallel.Close()
}

package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/fahrizal-w/parastar/pkg/concurrent"
	"github.com/fahrizal-w/parastar/pkg/datastructure"
	"github.com/fahrizal-w/parastar/pkg/engine/routing"
	"github.com/fahrizal-w/parastar/pkg/geo"
	"github.com/fahrizal-w/parastar/pkg/logger"
	"go.uber.org/zap"
)

var (
	graphFile  = flag.String("graph", "./data/road_network.graph.bz2", "preprocessed road network file")
	numQueries = flag.Int("queries", 100, "number of random origin/destination pairs")
	outFile    = flag.String("out", "./data/benchmark.csv", "benchmark results csv")
	seed       = flag.Int64("seed", 42, "rng seed for query pairs")
)

type benchConfig struct {
	name      string
	lifecycle routing.Lifecycle
	backend   routing.Backend
}

var configs = []benchConfig{
	{"pool_libsync", routing.LifecyclePool, routing.BackendLibSync},
	{"pool_finegrained", routing.LifecyclePool, routing.BackendFineGrained},
	{"vector_libsync", routing.LifecycleVector, routing.BackendLibSync},
	{"vector_finegrained", routing.LifecycleVector, routing.BackendFineGrained},
}

var threadCounts = []int{2, 4, 6}

type queryPair struct {
	origin, destination int64
}

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	network, err := datastructure.ReadGraph(*graphFile)
	if err != nil {
		panic(err)
	}
	log.Info("road network loaded",
		zap.Int("vertices", network.NumberOfVertices()),
		zap.Int("edges", network.NumberOfEdges()))

	queries := randomQueries(network, *numQueries, *seed)

	out, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{"config", "threads", "queries", "found", "total_cost_km", "total_ms", "avg_ms"}); err != nil {
		panic(err)
	}

	sequential := routing.NewAStar(network, nil)
	writeRow(w, "sequential", 1, runQueries(log, sequential, queries))

	for _, cfg := range configs {
		for _, threads := range threadCounts {
			router, err := routing.NewParallelAStar(network, routing.HaversineHeuristic(network),
				threads, cfg.lifecycle, cfg.backend)
			if err != nil {
				panic(err)
			}
			writeRow(w, cfg.name, threads, runQueries(log, router, queries))
			router.Close()
		}
	}

	// throughput of independent sequential queries fanned over a worker pool,
	// as a baseline against the intra-query parallel configs above.
	for _, threads := range threadCounts {
		writeRow(w, "batch_sequential", threads, runBatch(network, queries, threads))
	}

	log.Info("benchmark finished", zap.String("out", *outFile))
}

func runBatch(network *datastructure.RoadNetwork, queries []queryPair, threads int) benchResult {
	router := routing.NewAStar(network, nil)
	pool := concurrent.NewWorkerPool[queryPair, float64](threads, len(queries))

	start := time.Now()
	pool.Start(func(q queryPair) float64 {
		_, cost, found, err := router.Search(q.origin, q.destination)
		if err != nil || !found {
			return -1
		}
		return cost
	})
	for _, q := range queries {
		pool.AddJob(q)
	}
	pool.Close()
	pool.Wait()

	var res benchResult
	res.queries = len(queries)
	for cost := range pool.CollectResults() {
		if cost >= 0 {
			res.found++
			res.totalCost += cost
		}
	}
	res.total = time.Since(start)
	return res
}

type benchResult struct {
	queries   int
	found     int
	totalCost float64
	total     time.Duration
}

func runQueries(log *zap.Logger, router routing.Router, queries []queryPair) benchResult {
	var res benchResult
	res.queries = len(queries)
	for _, q := range queries {
		start := time.Now()
		_, cost, found, err := router.Search(q.origin, q.destination)
		res.total += time.Since(start)
		if err != nil {
			log.Error("search failed", zap.Int64("origin", q.origin),
				zap.Int64("destination", q.destination), zap.Error(err))
			continue
		}
		if found {
			res.found++
			res.totalCost += cost
		}
	}
	return res
}

func writeRow(w *csv.Writer, config string, threads int, res benchResult) {
	avgMs := 0.0
	if res.queries > 0 {
		avgMs = float64(res.total.Milliseconds()) / float64(res.queries)
	}
	record := []string{
		config,
		strconv.Itoa(threads),
		strconv.Itoa(res.queries),
		strconv.Itoa(res.found),
		fmt.Sprintf("%.6f", res.totalCost),
		strconv.FormatInt(res.total.Milliseconds(), 10),
		fmt.Sprintf("%.3f", avgMs),
	}
	if err := w.Write(record); err != nil {
		panic(err)
	}
}

func randomQueries(network *datastructure.RoadNetwork, n int, seed int64) []queryPair {
	vertices := make([]int64, 0, network.NumberOfVertices())
	network.ForEachVertex(func(id int64, _ geo.Coordinate) {
		vertices = append(vertices, id)
	})

	rng := rand.New(rand.NewSource(seed))
	queries := make([]queryPair, 0, n)
	for i := 0; i < n; i++ {
		queries = append(queries, queryPair{
			origin:      vertices[rng.Intn(len(vertices))],
			destination: vertices[rng.Intn(len(vertices))],
		})
	}
	return queries
}

package routing

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fahrizal-w/parastar/pkg/concurrent"
	"github.com/fahrizal-w/parastar/pkg/datastructure"
	"github.com/fahrizal-w/parastar/pkg/util"
	"golang.org/x/sync/errgroup"
)

// Lifecycle selects how worker goroutines are managed across searches.
type Lifecycle uint8

const (
	// LifecyclePool keeps a fixed set of workers alive for the engine's
	// lifetime; between searches they park on a task channel.
	LifecyclePool Lifecycle = iota
	// LifecycleVector spawns the workers per search call and joins them
	// before the call returns.
	LifecycleVector
)

func (l Lifecycle) String() string {
	if l == LifecyclePool {
		return "pool"
	}
	return "vector"
}

// Backend selects the concurrency discipline of the shared frontier and
// closed set.
type Backend uint8

const (
	// BackendLibSync pairs the mutex+condition-variable heap with the
	// coarse-lock closed set.
	BackendLibSync Backend = iota
	// BackendFineGrained pairs the hand-over-hand sorted list with the
	// striped closed set.
	BackendFineGrained
)

func (b Backend) String() string {
	if b == BackendLibSync {
		return "libSync"
	}
	return "fineGrained"
}

type Option func(*ParallelAStar)

// WithStripeCount overrides the stripe count of the striped closed set
// and the cost table.
func WithStripeCount(n int) Option {
	return func(p *ParallelAStar) { p.stripeCount = n }
}

// ParallelAStar runs A* with numWorkers workers sharing one frontier,
// one closed set and one cost table per search call. Those three are
// created when Search begins and abandoned when it returns; the network
// itself is read-only and never locked.
type ParallelAStar struct {
	network     *datastructure.RoadNetwork
	heuristic   Heuristic
	numWorkers  int
	lifecycle   Lifecycle
	backend     Backend
	stripeCount int

	pool *concurrent.SearchPool // nil unless LifecyclePool
}

func NewParallelAStar(network *datastructure.RoadNetwork, heuristic Heuristic, numWorkers int,
	lifecycle Lifecycle, backend Backend, opts ...Option) (*ParallelAStar, error) {
	if numWorkers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreadCount, numWorkers)
	}
	if heuristic == nil {
		heuristic = HaversineHeuristic(network)
	}

	p := &ParallelAStar{
		network:    network,
		heuristic:  heuristic,
		numWorkers: numWorkers,
		lifecycle:  lifecycle,
		backend:    backend,
	}
	for _, opt := range opts {
		opt(p)
	}
	if lifecycle == LifecyclePool {
		p.pool = concurrent.NewSearchPool(numWorkers)
	}
	return p, nil
}

// Close releases the persistent worker pool. No-op for LifecycleVector.
func (p *ParallelAStar) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// searchState is the shared mutable state of one search call.
type searchState struct {
	frontier concurrent.Frontier
	closed   concurrent.VisitedSet[int64]
	costs    *concurrent.CostTable

	seq atomic.Uint64

	// pending counts frontier entries that are queued or currently held
	// by a worker mid-expansion. It reaches zero exactly when no worker
	// can produce more work: the permanent-empty signal.
	pending atomic.Int64
	done    atomic.Bool

	// found flips as soon as any worker pops the goal; afterwards
	// workers prune every entry that cannot beat the recorded cost, so
	// the remaining drain is short.
	found atomic.Bool

	mu        sync.Mutex
	goalCost  float64
	goalFound bool
}

func (st *searchState) recordGoal(cost float64) {
	st.mu.Lock()
	if !st.goalFound || cost < st.goalCost {
		st.goalFound = true
		st.goalCost = cost
	}
	st.mu.Unlock()
	// result is fully recorded before anyone can observe the flag
	st.found.Store(true)
}

func (st *searchState) goalBound() (float64, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.goalCost, st.goalFound
}

// finishItem retires one popped entry. The worker that retires the last
// outstanding entry declares termination and unparks everyone.
func (st *searchState) finishItem() {
	if st.pending.Add(-1) == 0 {
		st.done.Store(true)
		st.frontier.Wake()
	}
}

func (p *ParallelAStar) newSearchState() *searchState {
	st := &searchState{}
	switch p.backend {
	case BackendFineGrained:
		st.frontier = concurrent.NewFineList()
		st.closed = concurrent.NewStripedSet[int64](p.stripeCount)
	default:
		st.frontier = concurrent.NewSyncHeap()
		st.closed = concurrent.NewCoarseSet[int64]()
	}
	st.costs = concurrent.NewCostTable(p.stripeCount)
	return st
}

func (p *ParallelAStar) Search(start, goal int64) ([]int64, float64, bool, error) {
	if !p.network.Contains(start) {
		return nil, 0, false, fmt.Errorf("%w: start %d", ErrUnknownNode, start)
	}
	if !p.network.Contains(goal) {
		return nil, 0, false, fmt.Errorf("%w: goal %d", ErrUnknownNode, goal)
	}

	st := p.newSearchState()
	st.costs.UpdateIfBetter(start, 0, start)
	st.pending.Store(1)
	st.frontier.Push(concurrent.FrontierItem{
		Node:   start,
		FScore: p.heuristic(start, goal),
		Pred:   start,
	})

	loop := func(_ int) { p.workerLoop(st, goal) }

	if p.lifecycle == LifecyclePool {
		p.pool.RunSearch(loop)
	} else {
		g := errgroup.Group{}
		for i := 0; i < p.numWorkers; i++ {
			g.Go(func() error {
				p.workerLoop(st, goal)
				return nil
			})
		}
		_ = g.Wait()
	}

	cost, ok := st.goalBound()
	if !ok {
		return nil, 0, false, nil
	}
	return p.reconstruct(st, start, goal), cost, true, nil
}

// workerLoop is the loop body every worker runs: pop, goal-check,
// expand, push, until the shared state signals termination.
func (p *ParallelAStar) workerLoop(st *searchState, goal int64) {
	for {
		if st.done.Load() {
			return
		}

		item, ok := st.frontier.WaitPop()
		if !ok {
			// transient empty; termination is re-checked at the top
			continue
		}
		p.expand(st, item, goal)
	}
}

func (p *ParallelAStar) expand(st *searchState, item concurrent.FrontierItem, goal int64) {
	defer st.finishItem()

	best, ok := st.costs.Best(item.Node)
	if !ok || item.GScore > best {
		// a concurrent relax beat this entry while it was queued
		return
	}

	if st.found.Load() {
		if bound, _ := st.goalBound(); item.FScore >= bound {
			return
		}
	}

	if item.Node == goal {
		st.recordGoal(item.GScore)
		return
	}

	if st.closed.TestAndInsert(item.Node) {
		// expanded before; re-open only when this entry carries a
		// strictly better cost than the one it was expanded with
		if !st.costs.TryMarkExpanded(item.Node, item.GScore) {
			return
		}
	} else {
		st.costs.TryMarkExpanded(item.Node, item.GScore)
	}

	for _, edge := range p.network.Neighbors(item.Node) {
		tentative := item.GScore + edge.Weight
		if !st.costs.UpdateIfBetter(edge.To, tentative, item.Node) {
			continue
		}
		st.pending.Add(1)
		st.frontier.Push(concurrent.FrontierItem{
			Node:   edge.To,
			GScore: tentative,
			FScore: tentative + p.heuristic(edge.To, goal),
			Pred:   item.Node,
			Seq:    st.seq.Add(1),
		})
	}
}

// reconstruct walks the predecessor chain recorded in the cost table.
// Workers have quiesced by now, so the reads are uncontended.
func (p *ParallelAStar) reconstruct(st *searchState, start, goal int64) []int64 {
	path := []int64{goal}
	for cur := goal; cur != start; {
		pred, ok := st.costs.Pred(cur)
		if !ok {
			// unreachable when goalFound is set
			util.AssertPanic(false, "predecessor chain broken")
		}
		cur = pred
		path = append(path, cur)
	}
	return util.ReverseG(path)
}

// ParallelAStarSearch runs one search with a throwaway engine, closing
// the worker pool before returning.
func ParallelAStarSearch(network *datastructure.RoadNetwork, heuristic Heuristic, start, goal int64,
	numWorkers int, lifecycle Lifecycle, backend Backend) ([]int64, float64, bool, error) {
	engine, err := NewParallelAStar(network, heuristic, numWorkers, lifecycle, backend)
	if err != nil {
		return nil, 0, false, err
	}
	defer engine.Close()
	return engine.Search(start, goal)
}

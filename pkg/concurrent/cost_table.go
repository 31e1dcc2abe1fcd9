package concurrent

import (
	"math"
	"sync"

	"github.com/fahrizal-w/parastar/pkg"
)

type costRecord struct {
	g    float64
	pred int64

	// expandedG is the g-cost the vertex was last expanded with, or
	// +Inf before its first expansion. A vertex gets re-expanded only
	// when a strictly lower cost surfaces, which repairs orderings
	// where two workers popped entries out of global priority order.
	expandedG float64
}

type costStripe struct {
	mu      sync.Mutex
	records map[int64]costRecord
}

// CostTable holds the best-known g-cost and predecessor per vertex for
// one search call. UpdateIfBetter under the stripe lock is the
// happens-before edge between a relax and any later pop of the same
// vertex: a popped entry whose carried g exceeds the recorded best is
// stale and gets discarded instead of expanded.
type CostTable struct {
	stripes []costStripe
	mask    uint64
}

// NewCostTable. numStripes <= 0 selects pkg.DEFAULT_STRIPE_COUNT;
// the count is rounded up to a power of two.
func NewCostTable(numStripes int) *CostTable {
	if numStripes <= 0 {
		numStripes = pkg.DEFAULT_STRIPE_COUNT
	}
	n := 1
	for n < numStripes {
		n <<= 1
	}

	stripes := make([]costStripe, n)
	for i := range stripes {
		stripes[i].records = make(map[int64]costRecord)
	}
	return &CostTable{stripes: stripes, mask: uint64(n - 1)}
}

func (t *CostTable) stripe(node int64) *costStripe {
	h := uint64(node) * 0x9E3779B97F4A7C15
	return &t.stripes[(h>>32)&t.mask]
}

// UpdateIfBetter records (g, pred) for node when g improves on the
// best recorded cost, returning whether it did. A vertex's recorded
// cost only ever decreases.
func (t *CostTable) UpdateIfBetter(node int64, g float64, pred int64) bool {
	s := t.stripe(node)
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[node]
	if ok && rec.g <= g {
		return false
	}
	if !ok {
		rec.expandedG = math.Inf(1)
	}
	rec.g = g
	rec.pred = pred
	s.records[node] = rec
	return true
}

// TryMarkExpanded claims the expansion of node at cost g. It fails when
// the vertex was already expanded at g or better, which is how a popped
// duplicate entry is told apart from a genuine re-opening.
func (t *CostTable) TryMarkExpanded(node int64, g float64) bool {
	s := t.stripe(node)
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[node]
	if !ok || g >= rec.expandedG {
		return false
	}
	rec.expandedG = g
	s.records[node] = rec
	return true
}

// Best returns the lowest g-cost recorded for node.
func (t *CostTable) Best(node int64) (float64, bool) {
	s := t.stripe(node)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[node]
	return rec.g, ok
}

// Pred returns the predecessor recorded with node's best cost.
func (t *CostTable) Pred(node int64) (int64, bool) {
	s := t.stripe(node)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[node]
	return rec.pred, ok
}

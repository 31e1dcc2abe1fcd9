package concurrent

import (
	"sync"
	"sync/atomic"

	"github.com/fahrizal-w/parastar/pkg"
	"golang.org/x/exp/constraints"
)

// VisitedSet tracks vertices that have been finalized by a search.
// TestAndInsert is the linearization point that prevents two workers
// from expanding the same vertex: it reports whether the value was
// already present and inserts it as one indivisible step.
type VisitedSet[T constraints.Integer] interface {
	// TestAndInsert returns true when val was already a member. When it
	// returns false, the caller is the unique inserter of val.
	TestAndInsert(val T) bool
	Contains(val T) bool
	Size() int
}

// SequentialSet has no internal synchronization. Valid only for the
// single-threaded engine.
type SequentialSet[T constraints.Integer] struct {
	members map[T]struct{}
}

func NewSequentialSet[T constraints.Integer]() *SequentialSet[T] {
	return &SequentialSet[T]{members: make(map[T]struct{})}
}

func (s *SequentialSet[T]) TestAndInsert(val T) bool {
	if _, ok := s.members[val]; ok {
		return true
	}
	s.members[val] = struct{}{}
	return false
}

func (s *SequentialSet[T]) Contains(val T) bool {
	_, ok := s.members[val]
	return ok
}

func (s *SequentialSet[T]) Size() int {
	return len(s.members)
}

// CoarseSet serializes every operation behind one lock. Trivially
// correct; contention grows linearly with worker count.
type CoarseSet[T constraints.Integer] struct {
	mu      sync.RWMutex
	members map[T]struct{}
}

func NewCoarseSet[T constraints.Integer]() *CoarseSet[T] {
	return &CoarseSet[T]{members: make(map[T]struct{})}
}

func (s *CoarseSet[T]) TestAndInsert(val T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[val]; ok {
		return true
	}
	s.members[val] = struct{}{}
	return false
}

func (s *CoarseSet[T]) Contains(val T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[val]
	return ok
}

func (s *CoarseSet[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

type setStripe[T constraints.Integer] struct {
	mu      sync.Mutex
	members map[T]struct{}
}

// StripedSet partitions the key space over independently locked
// stripes, so TestAndInsert calls on different stripes proceed in
// parallel. Stripe count is rounded up to a power of two.
type StripedSet[T constraints.Integer] struct {
	stripes []setStripe[T]
	mask    uint64
	size    atomic.Int64
}

// NewStripedSet. numStripes <= 0 selects pkg.DEFAULT_STRIPE_COUNT.
func NewStripedSet[T constraints.Integer](numStripes int) *StripedSet[T] {
	if numStripes <= 0 {
		numStripes = pkg.DEFAULT_STRIPE_COUNT
	}
	n := 1
	for n < numStripes {
		n <<= 1
	}

	stripes := make([]setStripe[T], n)
	for i := range stripes {
		stripes[i].members = make(map[T]struct{})
	}
	return &StripedSet[T]{stripes: stripes, mask: uint64(n - 1)}
}

// fibonacci multiplicative hash; spreads consecutive ids across stripes.
func (s *StripedSet[T]) stripe(val T) *setStripe[T] {
	h := uint64(val) * 0x9E3779B97F4A7C15
	return &s.stripes[(h>>32)&s.mask]
}

func (s *StripedSet[T]) TestAndInsert(val T) bool {
	st := s.stripe(val)
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.members[val]; ok {
		return true
	}
	st.members[val] = struct{}{}
	s.size.Add(1)
	return false
}

func (s *StripedSet[T]) Contains(val T) bool {
	st := s.stripe(val)
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.members[val]
	return ok
}

func (s *StripedSet[T]) Size() int {
	return int(s.size.Load())
}

func (s *StripedSet[T]) NumStripes() int {
	return len(s.stripes)
}

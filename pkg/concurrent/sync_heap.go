package concurrent

import (
	"sync"

	"github.com/fahrizal-w/parastar/pkg/datastructure"
)

// SyncHeap is the library-synchronized frontier: a d-ary min-heap
// behind one mutex, with a condition variable so idle workers park
// instead of busy-spinning.
type SyncHeap struct {
	mu    sync.Mutex
	cond  *sync.Cond
	heap  *datastructure.MinHeap[FrontierItem]
	woken bool
}

func NewSyncHeap() *SyncHeap {
	h := datastructure.NewFourAryHeap[FrontierItem]()
	h.SetTieBreak(func(a, b FrontierItem) bool {
		return a.Less(b)
	})

	s := &SyncHeap{heap: h}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *SyncHeap) Push(item FrontierItem) {
	s.mu.Lock()
	s.heap.Insert(datastructure.NewPriorityQueueNode(item.FScore, item))
	s.mu.Unlock()
	s.cond.Signal()
}

func (s *SyncHeap) TryPop() (FrontierItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.popLocked()
}

func (s *SyncHeap) WaitPop() (FrontierItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.heap.IsEmpty() && !s.woken {
		s.cond.Wait()
	}
	return s.popLocked()
}

func (s *SyncHeap) popLocked() (FrontierItem, bool) {
	node, err := s.heap.ExtractMin()
	if err != nil {
		return FrontierItem{}, false
	}
	return node.GetItem(), true
}

func (s *SyncHeap) Wake() {
	s.mu.Lock()
	s.woken = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *SyncHeap) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Size()
}

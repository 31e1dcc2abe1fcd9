package concurrent

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/fahrizal-w/parastar/pkg"
)

// fineNode is one cell of the fine-grained frontier. The mutex guards
// the node's next pointer; list mutations hold at most three node locks
// at a time.
type fineNode struct {
	item FrontierItem
	next *fineNode
	mu   sync.Mutex
}

func (n *fineNode) lock()   { n.mu.Lock() }
func (n *fineNode) unlock() { n.mu.Unlock() }

// FineList is the fine-grained frontier: a sorted singly linked list
// with head and tail sentinels and hand-over-hand per-node locking.
// The minimum lives right after the head sentinel, so a pop touches two
// locks regardless of size, while pushes traverse with hand-over-hand
// locking and concurrent pushes landing in disjoint regions of the list
// do not serialize.
type FineList struct {
	head *fineNode
	tail *fineNode
	size atomic.Int64

	woken atomic.Bool
}

func NewFineList() *FineList {
	tail := &fineNode{}
	head := &fineNode{next: tail}
	return &FineList{head: head, tail: tail}
}

// Push inserts item keeping ascending FrontierItem order; equal
// priorities keep FIFO order because traversal stops at the first node
// that does not compare below item.
func (l *FineList) Push(item FrontierItem) {
	node := &fineNode{item: item}

	pred := l.head
	pred.lock()
	curr := pred.next
	curr.lock()

	for curr != l.tail && curr.item.Less(item) {
		pred.unlock()
		pred = curr
		curr = curr.next
		curr.lock()
	}

	node.next = curr
	pred.next = node

	l.size.Add(1)

	curr.unlock()
	pred.unlock()
}

// TryPop removes and returns the minimum entry. Holding the head
// sentinel lock and the first data node lock is enough: any concurrent
// push or pop must acquire the head lock first to reach this region.
func (l *FineList) TryPop() (FrontierItem, bool) {
	pred := l.head
	pred.lock()
	curr := pred.next
	curr.lock()

	if curr == l.tail {
		curr.unlock()
		pred.unlock()
		return FrontierItem{}, false
	}

	item := curr.item
	pred.next = curr.next

	l.size.Add(-1)

	curr.unlock()
	pred.unlock()
	return item, true
}

// WaitPop retries TryPop up to the spin budget, yielding the OS thread
// between rounds, and gives up early once Wake has been called.
func (l *FineList) WaitPop() (FrontierItem, bool) {
	for i := 0; i < pkg.FRONTIER_SPIN_BUDGET; i++ {
		if item, ok := l.TryPop(); ok {
			return item, true
		}
		if l.woken.Load() {
			return FrontierItem{}, false
		}
		runtime.Gosched()
	}
	return FrontierItem{}, false
}

func (l *FineList) Wake() {
	l.woken.Store(true)
}

func (l *FineList) Len() int {
	return int(l.size.Load())
}

// CheckInvariants walks the list asserting ascending order and size
// consistency. Quiescent use only; acquires no locks.
func (l *FineList) CheckInvariants() bool {
	count := int64(0)
	prev := l.head.next
	if prev == l.tail {
		return l.size.Load() == 0
	}
	count++
	for curr := prev.next; curr != l.tail; curr = curr.next {
		if curr.item.Less(prev.item) {
			return false
		}
		prev = curr
		count++
	}
	return count == l.size.Load()
}

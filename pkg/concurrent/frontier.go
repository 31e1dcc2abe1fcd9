package concurrent

// FrontierItem is one open-list entry of a best-first search. FScore is
// the ordering priority (g + heuristic), GScore the accumulated cost
// carried so the popping worker can detect staleness, Pred the vertex
// the entry was discovered from, and Seq a monotonic insertion counter
// that makes equal-priority ordering FIFO and deterministic.
type FrontierItem struct {
	Node   int64
	GScore float64
	FScore float64
	Pred   int64
	Seq    uint64
}

// Less orders by priority, then accumulated cost, then insertion order.
func (it FrontierItem) Less(other FrontierItem) bool {
	if it.FScore != other.FScore {
		return it.FScore < other.FScore
	}
	if it.GScore != other.GScore {
		return it.GScore < other.GScore
	}
	return it.Seq < other.Seq
}

// Frontier is the shared open list of one search call. An entry is
// owned by the frontier from Push until a pop hands it to exactly one
// worker.
//
// A false return from TryPop or WaitPop is a transient-empty signal:
// another worker may still be mid-expansion with pushes outstanding.
// Callers arbitrate permanent emptiness with their own idle accounting.
type Frontier interface {
	Push(item FrontierItem)
	// TryPop never blocks.
	TryPop() (FrontierItem, bool)
	// WaitPop parks the caller until an item arrives or Wake is called.
	// The fine-grained variant spins a bounded budget instead of
	// parking, then yields.
	WaitPop() (FrontierItem, bool)
	// Wake unparks every blocked WaitPop caller and stays in effect for
	// the rest of the frontier's lifetime.
	Wake()
	Len() int
}

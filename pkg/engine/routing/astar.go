package routing

import (
	"fmt"

	"github.com/fahrizal-w/parastar/pkg/concurrent"
	"github.com/fahrizal-w/parastar/pkg/datastructure"
	"github.com/fahrizal-w/parastar/pkg/util"
)

// AStar is the single-threaded best-first reference engine. The open
// list is a d-ary min-heap with lazy deletion: relaxing a vertex pushes
// a fresh entry instead of decreasing a key, and entries whose carried
// g-cost is beaten by the time they surface are discarded on pop.
// Tie-break on equal priority is lower g-cost, then insertion order, so
// repeated runs return the identical path.
type AStar struct {
	network   *datastructure.RoadNetwork
	heuristic Heuristic
}

func NewAStar(network *datastructure.RoadNetwork, heuristic Heuristic) *AStar {
	if heuristic == nil {
		heuristic = HaversineHeuristic(network)
	}
	return &AStar{network: network, heuristic: heuristic}
}

func (a *AStar) Search(start, goal int64) ([]int64, float64, bool, error) {
	if !a.network.Contains(start) {
		return nil, 0, false, fmt.Errorf("%w: start %d", ErrUnknownNode, start)
	}
	if !a.network.Contains(goal) {
		return nil, 0, false, fmt.Errorf("%w: goal %d", ErrUnknownNode, goal)
	}

	pq := datastructure.NewFourAryHeap[concurrent.FrontierItem]()
	pq.SetTieBreak(func(x, y concurrent.FrontierItem) bool {
		return x.Less(y)
	})

	gScore := map[int64]float64{start: 0}
	cameFrom := make(map[int64]int64)
	closed := concurrent.NewSequentialSet[int64]()

	seq := uint64(0)
	pq.Insert(datastructure.NewPriorityQueueNode(a.heuristic(start, goal), concurrent.FrontierItem{
		Node:   start,
		FScore: a.heuristic(start, goal),
		Pred:   start,
	}))

	for !pq.IsEmpty() {
		node, _ := pq.ExtractMin()
		item := node.GetItem()

		if item.GScore > gScore[item.Node] {
			// stale lazy-deletion entry
			continue
		}
		if item.Node == goal {
			return reconstructPath(cameFrom, start, goal), item.GScore, true, nil
		}
		if closed.TestAndInsert(item.Node) {
			continue
		}

		for _, edge := range a.network.Neighbors(item.Node) {
			tentative := item.GScore + edge.Weight
			if best, seen := gScore[edge.To]; seen && tentative >= best {
				continue
			}
			gScore[edge.To] = tentative
			cameFrom[edge.To] = item.Node

			seq++
			pq.Insert(datastructure.NewPriorityQueueNode(tentative+a.heuristic(edge.To, goal), concurrent.FrontierItem{
				Node:   edge.To,
				GScore: tentative,
				FScore: tentative + a.heuristic(edge.To, goal),
				Pred:   item.Node,
				Seq:    seq,
			}))
		}
	}

	return nil, 0, false, nil
}

func reconstructPath(cameFrom map[int64]int64, start, goal int64) []int64 {
	path := []int64{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	return util.ReverseG(path)
}

// SequentialAStar runs one single-threaded search over network.
func SequentialAStar(network *datastructure.RoadNetwork, heuristic Heuristic, start, goal int64) ([]int64, float64, bool, error) {
	return NewAStar(network, heuristic).Search(start, goal)
}

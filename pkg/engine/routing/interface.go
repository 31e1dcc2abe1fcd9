package routing

import (
	"errors"
)

var (
	// ErrUnknownNode marks a start or goal vertex that is not part of
	// the network. Distinct from a no-path result, which is a normal
	// found=false outcome.
	ErrUnknownNode = errors.New("unknown node")

	ErrInvalidThreadCount = errors.New("thread count must be >= 1")
)

// Router is the engines' common search surface. The returned path runs
// start to goal inclusive; found is false when goal is unreachable, in
// which case path is nil and cost is zero.
type Router interface {
	Search(start, goal int64) (path []int64, cost float64, found bool, err error)
}

package concurrent

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func concurrentSets() map[string]func() VisitedSet[int64] {
	return map[string]func() VisitedSet[int64]{
		"coarse":  func() VisitedSet[int64] { return NewCoarseSet[int64]() },
		"striped": func() VisitedSet[int64] { return NewStripedSet[int64](0) },
	}
}

func TestVisitedSetSemantics(t *testing.T) {
	sets := concurrentSets()
	sets["sequential"] = func() VisitedSet[int64] { return NewSequentialSet[int64]() }

	for name, newSet := range sets {
		t.Run(name, func(t *testing.T) {
			s := newSet()

			require.False(t, s.Contains(7))
			require.False(t, s.TestAndInsert(7))
			require.True(t, s.Contains(7))
			require.True(t, s.TestAndInsert(7))
			require.Equal(t, 1, s.Size())

			require.False(t, s.TestAndInsert(-3))
			require.True(t, s.Contains(-3))
			require.Equal(t, 2, s.Size())
		})
	}
}

// Every value must have exactly one goroutine observing the first insert.
func TestVisitedSetConcurrentExactlyOneWinner(t *testing.T) {
	const (
		numGoroutines = 8
		numValues     = 2000
	)

	for name, newSet := range concurrentSets() {
		t.Run(name, func(t *testing.T) {
			s := newSet()
			winners := make([]atomic.Int32, numValues)

			var wg sync.WaitGroup
			for g := 0; g < numGoroutines; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for v := int64(0); v < numValues; v++ {
						if !s.TestAndInsert(v) {
							winners[v].Add(1)
						}
					}
				}()
			}
			wg.Wait()

			for v := 0; v < numValues; v++ {
				require.Equal(t, int32(1), winners[v].Load(), "value %d", v)
			}
			require.Equal(t, numValues, s.Size())
		})
	}
}

func TestStripedSetStripeCount(t *testing.T) {
	require.Equal(t, 64, NewStripedSet[int64](0).NumStripes())
	require.Equal(t, 16, NewStripedSet[int64](16).NumStripes())
	// rounded up to the next power of two
	require.Equal(t, 32, NewStripedSet[int64](17).NumStripes())
}

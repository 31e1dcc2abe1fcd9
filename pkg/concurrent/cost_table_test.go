package concurrent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCostTableUpdateIfBetter(t *testing.T) {
	table := NewCostTable(0)

	require.True(t, table.UpdateIfBetter(1, 10.0, 0))
	require.False(t, table.UpdateIfBetter(1, 10.0, 5))
	require.False(t, table.UpdateIfBetter(1, 12.0, 5))
	require.True(t, table.UpdateIfBetter(1, 7.5, 5))

	g, ok := table.Best(1)
	require.True(t, ok)
	require.InDelta(t, 7.5, g, 1e-12)

	pred, ok := table.Pred(1)
	require.True(t, ok)
	require.Equal(t, int64(5), pred)

	_, ok = table.Best(99)
	require.False(t, ok)
}

func TestCostTableTryMarkExpanded(t *testing.T) {
	table := NewCostTable(0)

	// unknown vertex cannot be expanded
	require.False(t, table.TryMarkExpanded(1, 10.0))

	table.UpdateIfBetter(1, 10.0, 0)
	require.True(t, table.TryMarkExpanded(1, 10.0))

	// a second expansion needs a strictly better cost
	require.False(t, table.TryMarkExpanded(1, 10.0))
	require.False(t, table.TryMarkExpanded(1, 11.0))
	require.True(t, table.TryMarkExpanded(1, 8.0))
}

// The recorded cost per vertex must equal the minimum over all
// concurrent relaxations.
func TestCostTableConcurrentMonotone(t *testing.T) {
	const (
		numGoroutines = 8
		numNodes      = 500
	)
	table := NewCostTable(0)

	var wg sync.WaitGroup
	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for node := int64(0); node < numNodes; node++ {
				table.UpdateIfBetter(node, float64(g+1)*float64(node+1), int64(g))
			}
		}(g)
	}
	wg.Wait()

	for node := int64(0); node < numNodes; node++ {
		g, ok := table.Best(node)
		require.True(t, ok)
		require.InDelta(t, float64(node+1), g, 1e-12)
		pred, ok := table.Pred(node)
		require.True(t, ok)
		require.Equal(t, int64(0), pred)
	}
}

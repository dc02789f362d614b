// Package core_test verifies thread-safety of the gradient accumulator.
package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgrad/core"
)

// TestCell_Accumulate covers NewCell, AddGrad and SetGrad.
func TestCell_Accumulate(t *testing.T) {
	c := core.NewCell(2.5)
	require.Equal(t, 2.5, c.Data())
	require.Equal(t, 0.0, c.Grad())

	c.AddGrad(1)
	c.AddGrad(0.5)
	require.Equal(t, 1.5, c.Grad())

	c.SetGrad(1)
	require.Equal(t, 1.0, c.Grad())
}

// TestCell_ConcurrentAddGrad ensures concurrent AddGrad calls are not lost.
func TestCell_ConcurrentAddGrad(t *testing.T) {
	c := core.NewCell(0)
	const num = 200 // number of concurrent writers
	var wg sync.WaitGroup
	wg.Add(num)

	for i := 0; i < num; i++ {
		go func() {
			defer wg.Done()
			c.AddGrad(1)
			_ = c.Grad()
		}()
	}
	wg.Wait()

	require.Equal(t, float64(num), c.Grad())
}

// TestNode_ConcurrentConstruction ensures IDs stay unique under concurrent construction.
func TestNode_ConcurrentConstruction(t *testing.T) {
	const num = 100
	x := core.Value(1)
	nodes := make([]*core.Node, num)
	var wg sync.WaitGroup
	wg.Add(num)

	for i := 0; i < num; i++ {
		go func(i int) {
			defer wg.Done()
			nodes[i] = x.Add(core.Value(float64(i)))
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool, num)
	for _, n := range nodes {
		require.False(t, seen[n.ID()], "duplicate ID %d", n.ID())
		seen[n.ID()] = true
	}
}

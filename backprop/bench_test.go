package backprop_test

import (
	"testing"

	"github.com/katalvlaran/lvgrad/backprop"
	"github.com/katalvlaran/lvgrad/core"
)

// BenchmarkBackward_Chain10000 measures a pass over a linear chain of 10,000 adds.
// The graph is built once; each iteration resets, seeds and propagates.
func BenchmarkBackward_Chain10000(b *testing.B) {
	n := core.Value(1)
	for i := 0; i < 10000; i++ {
		n = n.Add(core.Value(float64(i)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = backprop.Backward(n)
	}
}

// BenchmarkBackward_Ladder measures a graph where every rung reuses the
// previous one twice, so each node has two consumers.
func BenchmarkBackward_Ladder(b *testing.B) {
	n := core.Value(0.1)
	for i := 0; i < 1000; i++ {
		n = n.Mul(n).Add(n).Tanh()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = backprop.Backward(n)
	}
}

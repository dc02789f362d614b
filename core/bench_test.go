package core_test

import (
	"testing"

	"github.com/katalvlaran/lvgrad/core"
)

// BenchmarkForward_Chain measures construction of a 1,000-step chain
// mixing binary and unary operations.
func BenchmarkForward_Chain(b *testing.B) {
	w := core.Value(0.5)
	for i := 0; i < b.N; i++ {
		n := core.Value(1)
		for j := 0; j < 1000; j++ {
			n = n.Mul(w).Add(w).Tanh()
		}
	}
}

// BenchmarkCell_AddGrad measures the locked accumulator.
func BenchmarkCell_AddGrad(b *testing.B) {
	c := core.NewCell(0)
	for i := 0; i < b.N; i++ {
		c.AddGrad(1)
	}
}

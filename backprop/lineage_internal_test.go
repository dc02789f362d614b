package backprop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgrad/core"
)

// TestCheck_RejectsBadLineage feeds check lineages that the core constructors
// never produce.
func TestCheck_RejectsBadLineage(t *testing.T) {
	one, zero := core.Value(1), core.Value(0)

	err := check(7, core.Binary{Op: core.OpDiv, Left: one, Right: zero})
	assert.ErrorIs(t, err, core.ErrDivisionByZero)
	assert.Contains(t, err.Error(), "node 7 (div)")

	err = check(8, core.Unary{Op: core.UnaryOp(42), Operand: one})
	assert.ErrorIs(t, err, core.ErrUnknownOp)

	err = check(9, core.Binary{Op: core.BinaryOp(99), Left: one, Right: one})
	assert.ErrorIs(t, err, core.ErrUnknownOp)

	err = check(10, nil)
	assert.ErrorIs(t, err, core.ErrUnknownOp)
	assert.Contains(t, err.Error(), "lineage <nil>")
}

// TestCheck_AcceptsCatalogue passes every lineage a constructor can build.
func TestCheck_AcceptsCatalogue(t *testing.T) {
	a, b := core.Value(2), core.Value(-3)
	q, err := a.Div(b)
	require.NoError(t, err)

	for _, n := range []*core.Node{a, a.Add(b), a.Sub(b), a.Mul(b), q, a.Neg(), a.Relu(), a.Tanh()} {
		assert.NoError(t, check(n.ID(), n.Lineage()), "node %s", n)
	}
}

// TestPropagate_RejectsBadLineage leaves operand gradients untouched on error.
func TestPropagate_RejectsBadLineage(t *testing.T) {
	one, zero := core.Value(1), core.Value(0)

	err := propagate(3, 1, core.Binary{Op: core.OpDiv, Left: one, Right: zero})
	assert.ErrorIs(t, err, core.ErrDivisionByZero)
	err = propagate(4, 1, core.Unary{Op: core.UnaryOp(42), Operand: one})
	assert.ErrorIs(t, err, core.ErrUnknownOp)
	err = propagate(5, 1, nil)
	assert.ErrorIs(t, err, core.ErrUnknownOp)

	assert.Equal(t, 0.0, one.Grad())
	assert.Equal(t, 0.0, zero.Grad())
}

// TestPropagate_Accumulates adds onto existing operand gradients.
func TestPropagate_Accumulates(t *testing.T) {
	a, b := core.Value(2), core.Value(5)
	a.Cell().SetGrad(1)

	require.NoError(t, propagate(1, 3, core.Binary{Op: core.OpMul, Left: a, Right: b}))
	assert.Equal(t, 1.0+3*5, a.Grad())
	assert.Equal(t, 3.0*2, b.Grad())
}

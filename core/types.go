// Package core defines the scalar Cell, the closed operation catalogue,
// and the Node type that records how each value was produced.
//
// A Node wraps one Cell and an immutable Lineage. Nodes are shared by
// pointer: the same *Node may be an operand of any number of downstream
// nodes (diamond dependencies). Only the gradient accumulator of a Cell
// ever changes after construction, and it is guarded by a sync.RWMutex.
//
// Errors:
//
//	ErrDivisionByZero   - Div with a divisor whose data is exactly zero.
//	ErrDivisionOverflow - Div of finite operands with an infinite quotient.
//	ErrNilNode          - a nil *Node was passed where an operand is required.
//	ErrUnknownOp        - an operation tag outside the catalogue.
package core

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Sentinel errors for node construction and gradient rules.
var (
	// ErrDivisionByZero indicates a Div whose divisor data is exactly zero.
	ErrDivisionByZero = errors.New("core: division by zero")

	// ErrDivisionOverflow indicates a Div of finite operands whose quotient
	// overflows to ±Inf (a divisor too close to zero).
	ErrDivisionOverflow = errors.New("core: division overflow")

	// ErrNilNode indicates a nil operand or root.
	ErrNilNode = errors.New("core: node is nil")

	// ErrUnknownOp indicates an operation tag that is not part of the catalogue.
	ErrUnknownOp = errors.New("core: unknown operation")
)

// nextNodeID is an atomic counter for unique Node.ID generation.
var nextNodeID atomic.Uint64

// Cell holds an immutable scalar payload and a mutable gradient accumulator.
//
// data is fixed at creation and may be read without locking.
// mu guards grad.
type Cell struct {
	mu   sync.RWMutex
	data float64
	grad float64
}

// Lineage records the operation that produced a Node, if any.
//
// It is a closed set of variants: Leaf, Unary and Binary. Code that
// consumes a Lineage switches on its concrete type.
type Lineage interface {
	// operands lists the operand nodes in left-to-right order.
	operands() []*Node

	// sealed prevents implementations outside this package.
	sealed()
}

// Leaf is the lineage of an input or constant: no producing operation.
type Leaf struct{}

// Unary is the lineage of a node produced by a one-operand operation.
type Unary struct {
	// Op is the producing operation.
	Op UnaryOp

	// Operand is the node the operation was applied to.
	Operand *Node
}

// Binary is the lineage of a node produced by a two-operand operation.
type Binary struct {
	// Op is the producing operation.
	Op BinaryOp

	// Left and Right are the operands, in the order they were passed.
	Left, Right *Node
}

func (Leaf) operands() []*Node     { return nil }
func (u Unary) operands() []*Node  { return []*Node{u.Operand} }
func (b Binary) operands() []*Node { return []*Node{b.Left, b.Right} }

func (Leaf) sealed()   {}
func (Unary) sealed()  {}
func (Binary) sealed() {}

// Node is a vertex of the computation graph: a Cell plus its Lineage.
//
// A Node is never mutated structurally after creation. Its lineage only
// references nodes created earlier, so the graph reachable from any node
// is acyclic.
type Node struct {
	id      uint64  // process-unique, monotonically increasing
	label   string  // optional, leaves only
	cell    *Cell   // value and gradient
	lineage Lineage // Leaf, Unary or Binary
}

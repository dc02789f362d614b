// File: methods.go
// Role: Node construction (forward pass) and read-only accessors.
//
// Determinism:
//   - Forward rules are pure; construction never reads or writes gradients.
//
// Concurrency:
//   - Constructors may run concurrently; IDs come from an atomic counter.
package core

import "fmt"

// newNode allocates a Node with a fresh ID and a zero gradient.
func newNode(data float64, lineage Lineage) *Node {
	return &Node{
		id:      nextNodeID.Add(1),
		cell:    NewCell(data),
		lineage: lineage,
	}
}

// Value returns a leaf node holding x.
// Complexity: O(1)
func Value(x float64) *Node {
	return newNode(x, Leaf{})
}

// Named returns a leaf node holding x, labelled for String and Format.
func Named(label string, x float64) *Node {
	n := newNode(x, Leaf{})
	n.label = label

	return n
}

// ApplyUnary builds the node op(a).
//
// Errors:
//   - ErrNilNode:   a is nil.
//   - ErrUnknownOp: op is outside the catalogue.
func ApplyUnary(op UnaryOp, a *Node) (*Node, error) {
	if a == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilNode)
	}
	out, err := op.Forward(a.Data())
	if err != nil {
		return nil, err
	}

	return newNode(out, Unary{Op: op, Operand: a}), nil
}

// ApplyBinary builds the node op(a, b). The lineage keeps a and b by
// reference; their cells are shared, not copied.
//
// Errors:
//   - ErrNilNode:          a or b is nil.
//   - ErrDivisionByZero:   op is OpDiv and b.Data() == 0; no node is produced.
//   - ErrDivisionOverflow: op is OpDiv and finite a over b is ±Inf; no node is produced.
//   - ErrUnknownOp:        op is outside the catalogue.
func ApplyBinary(op BinaryOp, a, b *Node) (*Node, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilNode)
	}
	out, err := op.Forward(a.Data(), b.Data())
	if err != nil {
		return nil, fmt.Errorf("%s(%g, %g): %w", op, a.Data(), b.Data(), err)
	}

	return newNode(out, Binary{Op: op, Left: a, Right: b}), nil
}

// must unwraps constructors whose only possible failure is a nil operand.
func must(n *Node, err error) *Node {
	if err != nil {
		panic(err)
	}

	return n
}

// Add returns a + b. It panics with ErrNilNode if either operand is nil.
func Add(a, b *Node) *Node { return must(ApplyBinary(OpAdd, a, b)) }

// Sub returns a - b. It panics with ErrNilNode if either operand is nil.
func Sub(a, b *Node) *Node { return must(ApplyBinary(OpSub, a, b)) }

// Mul returns a * b. It panics with ErrNilNode if either operand is nil.
func Mul(a, b *Node) *Node { return must(ApplyBinary(OpMul, a, b)) }

// Div returns a / b, or ErrDivisionByZero if b.Data() == 0, or
// ErrDivisionOverflow if finite a.Data() over b.Data() overflows to ±Inf.
// A NaN or infinite dividend still divides as IEEE 754 defines.
func Div(a, b *Node) (*Node, error) { return ApplyBinary(OpDiv, a, b) }

// Neg returns -a. It panics with ErrNilNode if a is nil.
func Neg(a *Node) *Node { return must(ApplyUnary(OpNeg, a)) }

// Relu returns max(0, a), or NaN for a NaN a. It panics with ErrNilNode if a is nil.
func Relu(a *Node) *Node { return must(ApplyUnary(OpRelu, a)) }

// Tanh returns tanh(a). It panics with ErrNilNode if a is nil.
func Tanh(a *Node) *Node { return must(ApplyUnary(OpTanh, a)) }

// Add returns n + o.
func (n *Node) Add(o *Node) *Node { return Add(n, o) }

// Sub returns n - o.
func (n *Node) Sub(o *Node) *Node { return Sub(n, o) }

// Mul returns n * o.
func (n *Node) Mul(o *Node) *Node { return Mul(n, o) }

// Div returns n / o; errors as for the package-level Div.
func (n *Node) Div(o *Node) (*Node, error) { return Div(n, o) }

// Neg returns -n.
func (n *Node) Neg() *Node { return Neg(n) }

// Relu returns max(0, n).
func (n *Node) Relu() *Node { return Relu(n) }

// Tanh returns tanh(n).
func (n *Node) Tanh() *Node { return Tanh(n) }

// ID returns the process-unique identifier of n.
// IDs increase with creation order, so every operand has a smaller ID
// than the nodes built from it.
func (n *Node) ID() uint64 { return n.id }

// Label returns the label given to Named, or "".
func (n *Node) Label() string { return n.label }

// Data returns the value computed for n by the forward pass.
func (n *Node) Data() float64 { return n.cell.Data() }

// Grad returns the gradient accumulated on n by the last backward pass.
func (n *Node) Grad() float64 { return n.cell.Grad() }

// Cell exposes the shared cell of n. Every holder of n sees the same cell.
func (n *Node) Cell() *Cell { return n.cell }

// Lineage returns how n was produced: Leaf, Unary or Binary.
// The returned value is a copy; changing it does not affect n.
func (n *Node) Lineage() Lineage { return n.lineage }

// IsLeaf reports whether n has no producing operation.
func (n *Node) IsLeaf() bool {
	_, ok := n.lineage.(Leaf)

	return ok
}

// Operands returns a fresh slice of the nodes n was computed from, left to
// right. A node built from the same operand twice lists it twice.
func (n *Node) Operands() []*Node { return n.lineage.operands() }

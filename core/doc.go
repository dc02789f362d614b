// Package core provides the building blocks of a scalar reverse-mode
// automatic-differentiation graph.
//
// Every arithmetic step creates a new *Node that remembers its operands,
// so evaluating an expression (the forward pass) also records the
// computation graph G = (V, E) that the backprop package later walks in
// reverse.
//
//	a := core.Named("a", 2)
//	b := core.Named("b", -3)
//	e := a.Mul(b)            // mul(a, b)
//	d := e.Add(core.Value(10))
//
// Layers:
//
//   - Cell: immutable data plus a sync.RWMutex-guarded gradient accumulator
//     (AddGrad, SetGrad).
//   - Operation catalogue: UnaryOp {Neg, Relu, Tanh} and BinaryOp
//     {Add, Sub, Mul, Div}, each with Forward and Local (derivative) rules.
//   - Node: a Cell plus a sealed Lineage (Leaf, Unary, Binary).
//
// Construction:
//
//	Value(x) / Named(label, x)           // leaves, O(1)
//	Add, Sub, Mul (a, b) *Node           // panic on nil operand
//	Div(a, b) (*Node, error)             // ErrDivisionByZero if b.Data() == 0,
//	                                     // ErrDivisionOverflow on a ±Inf quotient
//	Neg, Relu, Tanh (a) *Node
//	ApplyUnary / ApplyBinary             // error-returning forms for any op
//
// Sharing:
//
//	Operands are held by pointer, so the same node may feed several
//	consumers (x.Mul(x) is legal). The graph is acyclic because a lineage
//	can only reference nodes that already exist.
//
// Errors:
//
//	ErrDivisionByZero   – zero divisor in Div
//	ErrDivisionOverflow – Div of finite operands overflowing to ±Inf
//	ErrNilNode          – nil operand
//	ErrUnknownOp        – op tag outside the catalogue
package core

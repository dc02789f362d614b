// Package lvgrad is a minimal reverse-mode automatic-differentiation
// engine over scalar values.
//
// Evaluating an expression builds a DAG of nodes, each remembering the
// operation and operands that produced it. Backward then walks that DAG in
// reverse topological order and accumulates ∂root/∂n into every ancestor.
//
// Subpackages:
//
//	core/       — Cell, operation catalogue (Add, Sub, Mul, Div, Neg, Relu, Tanh), Node
//	backprop/   — TopologicalOrder, Backward, ZeroGrad
//	gradcheck/  — finite-difference verification of gradients (gonum diff/fd)
//	instrument/ — Backward with Prometheus metrics, OpenTelemetry spans and slog
//
// Quick example:
//
//	x := core.Value(3)
//	y := x.Mul(x)
//	_ = backprop.Backward(y)
//	x.Grad() // 6
//
// Run the demonstration in examples/expression:
//
//	go run ./examples/expression
package lvgrad

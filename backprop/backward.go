// Package backprop implements reverse-mode differentiation over the graph
// recorded by package core.
//
// Backward(root) stores ∂root/∂n in the gradient of every node n reachable
// from root. The pass is split into a read-only planning phase and a
// mutation phase:
//
//  1. Order:     reverse topological order of the reachable subgraph.
//  2. Validate:  every lineage must be computable (no zero divisor, no
//     unknown op). Cancellation is honored here.
//  3. Reset:     every reachable gradient is set to 0.
//  4. Seed:      root's gradient is set to 1.
//  5. Propagate: walk the order; each node's gradient is final when it is
//     reached, and its local-derivative contributions are added (never
//     assigned) onto its operands.
//
// Any error is returned before step 3, so a failed call changes nothing.
// core refuses to build a zero-divisor or unknown-op node, so step 2
// re-checks what construction already enforces; a failure there means a
// node was produced outside the core constructors.
//
// Concurrency:
//
//	Each Cell guards its gradient, so concurrent readers never observe a
//	torn value. A pass is not atomic as a whole: run at most one Backward
//	at a time over graphs that share nodes.
//
// Errors:
//
//   - core.ErrNilNode         root (or an operand) is nil.
//   - core.ErrDivisionByZero  a reachable Div has a zero divisor.
//   - core.ErrUnknownOp       a reachable lineage carries an unknown op.
//   - context.Canceled        the context was cancelled during planning.
package backprop

import (
	"fmt"

	"github.com/katalvlaran/lvgrad/core"
)

// Backward computes the gradient of root with respect to every node
// reachable from it. See the package documentation for the phases.
func Backward(root *core.Node, opts ...Option) error {
	// 1. Order (validates root, honors cancellation)
	order, err := TopologicalOrder(root, opts...)
	if err != nil {
		return err
	}
	o := apply(opts)

	// 2. Validate every lineage before touching any gradient
	for _, n := range order {
		select {
		case <-o.Ctx.Done():
			return o.Ctx.Err()
		default:
		}
		if err = check(n.ID(), n.Lineage()); err != nil {
			return err
		}
	}

	// 3. Reset stale state from earlier passes
	for _, n := range order {
		n.Cell().SetGrad(0)
	}

	// 4. Seed: d(root)/d(root) = 1
	root.Cell().SetGrad(1)

	// 5. Propagate in reverse topological order
	for _, n := range order {
		if err = propagate(n.ID(), n.Grad(), n.Lineage()); err != nil {
			// check already rejected every lineage that could fail here
			return err
		}
		if o.OnPropagate != nil {
			o.OnPropagate(n)
		}
	}

	return nil
}

// ZeroGrad sets the gradient of every node reachable from root to 0
// without running a pass.
func ZeroGrad(root *core.Node, opts ...Option) error {
	order, err := TopologicalOrder(root, opts...)
	if err != nil {
		return err
	}
	for _, n := range order {
		n.Cell().SetGrad(0)
	}

	return nil
}

// check reports whether the local-derivative rule of lineage, recorded
// for node id, can be evaluated.
func check(id uint64, lineage core.Lineage) error {
	switch lin := lineage.(type) {
	case core.Leaf:
		return nil
	case core.Unary:
		if _, err := lin.Op.Local(0, lin.Operand.Data()); err != nil {
			return fmt.Errorf("backprop: node %d: %w", id, err)
		}
	case core.Binary:
		if _, _, err := lin.Op.Local(0, lin.Left.Data(), lin.Right.Data()); err != nil {
			return fmt.Errorf("backprop: node %d (%s): %w", id, lin.Op, err)
		}
	default:
		return fmt.Errorf("backprop: node %d: %w: lineage %T", id, core.ErrUnknownOp, lin)
	}

	return nil
}

// propagate adds the contributions of node id onto the operands of its
// lineage, given its final gradient upstream.
func propagate(id uint64, upstream float64, lineage core.Lineage) error {
	switch lin := lineage.(type) {
	case core.Leaf:
		return nil
	case core.Unary:
		d, err := lin.Op.Local(upstream, lin.Operand.Data())
		if err != nil {
			return fmt.Errorf("backprop: node %d: %w", id, err)
		}
		lin.Operand.Cell().AddGrad(d)
	case core.Binary:
		da, db, err := lin.Op.Local(upstream, lin.Left.Data(), lin.Right.Data())
		if err != nil {
			return fmt.Errorf("backprop: node %d (%s): %w", id, lin.Op, err)
		}
		lin.Left.Cell().AddGrad(da)
		lin.Right.Cell().AddGrad(db)
	default:
		return fmt.Errorf("backprop: node %d: %w: lineage %T", id, core.ErrUnknownOp, lin)
	}

	return nil
}

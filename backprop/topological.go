// Package backprop provides the reverse topological ordering used by the
// backward pass.
//
// TopologicalOrder lists every node reachable from root through lineage
// edges such that each node appears before all of its operands. It is a
// depth-first post-order from root, reversed. A node reachable along
// several paths appears exactly once.
//
// Complexity:
//
//   - Time:   O(V + E) (each node and lineage edge visited once)
//   - Memory: O(V)     (recursion stack and visited set)
package backprop

import (
	"fmt"

	"github.com/katalvlaran/lvgrad/core"
)

// topoSorter encapsulates state for one ordering traversal.
// The visited set lives here, never in a package-level cache, so passes
// over different graphs stay independent.
type topoSorter struct {
	opts    Options         // traversal options (cancellation)
	visited map[uint64]bool // node ID -> finished
	order   []*core.Node    // recorded post-order sequence
}

// TopologicalOrder computes the reverse topological order of the graph
// reachable from root: root first, leaves last.
// If root is nil, returns core.ErrNilNode.
// You may pass WithContext(ctx) to enable cancellation.
func TopologicalOrder(root *core.Node, opts ...Option) ([]*core.Node, error) {
	// 1. Validate root pointer
	if root == nil {
		return nil, fmt.Errorf("backprop: root: %w", core.ErrNilNode)
	}
	// 2. Initialize sorter state
	sorter := &topoSorter{
		opts:    apply(opts),
		visited: make(map[uint64]bool),
	}
	// 3. Post-order DFS from root
	if err := sorter.visit(root); err != nil {
		return nil, err
	}
	// 4. Reverse post-order so consumers precede their operands
	for i, j := 0, len(sorter.order)-1; i < j; i, j = i+1, j-1 {
		sorter.order[i], sorter.order[j] = sorter.order[j], sorter.order[i]
	}

	return sorter.order, nil
}

// visit performs a DFS from n and records n after all of its operands.
// No Gray state is needed: lineage only points at older nodes, so the
// graph cannot contain a cycle.
func (t *topoSorter) visit(n *core.Node) error {
	// 1. Cancellation check at entry
	select {
	case <-t.opts.Ctx.Done():
		return t.opts.Ctx.Err()
	default:
	}
	// 2. Already recorded? then skip
	if t.visited[n.ID()] {
		return nil
	}
	t.visited[n.ID()] = true
	// 3. Recurse into operands; a repeated operand (x*x) is skipped on its second edge
	for _, op := range n.Operands() {
		if op == nil {
			return fmt.Errorf("backprop: node %d: %w", n.ID(), core.ErrNilNode)
		}
		if err := t.visit(op); err != nil {
			return err
		}
	}
	// 4. Record in post-order list
	t.order = append(t.order, n)

	return nil
}

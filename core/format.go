// File: format.go
// Role: Human-readable rendering of nodes and of the lineage they hang from.
package core

import (
	"fmt"
	"io"
	"strings"
)

// Kind returns "leaf" for leaves and the operation name otherwise.
func (n *Node) Kind() string {
	switch lin := n.lineage.(type) {
	case Unary:
		return lin.Op.String()
	case Binary:
		return lin.Op.String()
	default:
		return "leaf"
	}
}

// String renders n as kind[label](data=…, grad=…).
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	name := n.Kind()
	if n.label != "" {
		name += "[" + n.label + "]"
	}

	return fmt.Sprintf("%s(data=%g, grad=%g)", name, n.Data(), n.Grad())
}

// Format writes the lineage tree rooted at root to w, one node per line,
// operands indented under the node they feed. Nodes are numbered in
// pre-order; a node reachable along several paths is written once and
// later occurrences refer back to its number.
//
// Complexity: O(V+E) time, O(V) memory.
func Format(w io.Writer, root *Node) error {
	if root == nil {
		return ErrNilNode
	}
	f := &formatter{w: w, seen: make(map[*Node]int)}
	f.write(root, 0)

	return f.err
}

// formatter carries the state of one Format call.
type formatter struct {
	w    io.Writer
	seen map[*Node]int // node -> pre-order number
	err  error         // first write error
}

func (f *formatter) write(n *Node, depth int) {
	if f.err != nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if k, ok := f.seen[n]; ok {
		_, f.err = fmt.Fprintf(f.w, "%s#%d (shared)\n", indent, k)
		return
	}
	k := len(f.seen)
	f.seen[n] = k
	if _, f.err = fmt.Fprintf(f.w, "%s#%d %s\n", indent, k, n); f.err != nil {
		return
	}
	for _, op := range n.Operands() {
		f.write(op, depth+1)
	}
}

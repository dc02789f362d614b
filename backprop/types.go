// Package backprop defines options for the backward pass over a core.Node
// graph: cancellation of the read-only planning phase and an observation
// hook called once per propagated node.
package backprop

import (
	"context"

	"github.com/katalvlaran/lvgrad/core"
)

// Option configures optional behavior of Backward, ZeroGrad and
// TopologicalOrder.
type Option func(*Options)

// Options holds configurable parameters for a backward pass.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	// It is only consulted while the order is built and validated, so a
	// cancelled pass never leaves gradients half-updated.
	Ctx context.Context

	// OnPropagate, if non-nil, is invoked for every node in propagation
	// order, after the node's contributions were added to its operands.
	OnPropagate func(n *core.Node)
}

// DefaultOptions returns Options with a Background context and no hook.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		OnPropagate: nil,
	}
}

// WithContext returns an Option that sets the Context for the pass.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnPropagate returns an Option that installs fn as a propagation hook.
func WithOnPropagate(fn func(n *core.Node)) Option {
	return func(o *Options) {
		o.OnPropagate = fn
	}
}

// apply folds opts over the defaults.
func apply(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// Package gradcheck compares the gradients computed by backprop against
// central finite differences, computed with gonum's diff/fd.
//
// A Builder maps a slice of leaf nodes to an output node. Check builds the
// expression once at the given point and runs Backward for the analytic
// gradient, then re-evaluates the Builder at perturbed points for the
// numeric one.
//
//	report, err := gradcheck.Check(func(in []*core.Node) (*core.Node, error) {
//		return in[0].Mul(in[1]).Tanh(), nil
//	}, []float64{0.3, -1.2})
//
// Points near a Relu kink or a pole of Div give unreliable numeric
// gradients; choose points away from them.
package gradcheck

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/lvgrad/backprop"
	"github.com/katalvlaran/lvgrad/core"
)

var (
	// ErrNoInputs indicates Check was called with an empty point.
	ErrNoInputs = errors.New("gradcheck: no inputs")

	// ErrNilBuilder indicates Check was called without a Builder.
	ErrNilBuilder = errors.New("gradcheck: builder is nil")

	// ErrMismatch indicates analytic and numeric gradients disagree
	// beyond the configured tolerance.
	ErrMismatch = errors.New("gradcheck: gradient mismatch")
)

// Builder constructs an expression over the given leaves and returns its output.
type Builder func(inputs []*core.Node) (*core.Node, error)

// Options controls the finite-difference step and comparison tolerances.
type Options struct {
	Step   float64 // finite-difference step, default 1e-6
	AbsTol float64 // absolute tolerance, default 1e-6
	RelTol float64 // relative tolerance, default 1e-5
}

// Option configures Check.
type Option func(*Options)

// DefaultOptions returns the defaults listed on Options.
func DefaultOptions() Options {
	return Options{Step: 1e-6, AbsTol: 1e-6, RelTol: 1e-5}
}

// WithStep sets the finite-difference step. Non-positive values are ignored.
func WithStep(h float64) Option {
	return func(o *Options) {
		if h > 0 {
			o.Step = h
		}
	}
}

// WithTolerance sets the absolute and relative comparison tolerances.
// Negative values are ignored.
func WithTolerance(abs, rel float64) Option {
	return func(o *Options) {
		if abs >= 0 {
			o.AbsTol = abs
		}
		if rel >= 0 {
			o.RelTol = rel
		}
	}
}

// Report holds both gradients at the checked point.
type Report struct {
	Output   float64   // value of the expression at the point
	Analytic []float64 // gradients from backprop.Backward
	Numeric  []float64 // central finite differences
}

// MaxAbsDiff returns the largest absolute difference between the two gradients.
func (r *Report) MaxAbsDiff() float64 {
	return floats.Distance(r.Analytic, r.Numeric, math.Inf(1))
}

// Check evaluates build at the point at and compares analytic with numeric
// gradients. On ErrMismatch the Report is still returned for inspection.
func Check(build Builder, at []float64, opts ...Option) (*Report, error) {
	// 1. Validate input
	if build == nil {
		return nil, ErrNilBuilder
	}
	if len(at) == 0 {
		return nil, ErrNoInputs
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 2. Analytic gradient
	leaves := leavesAt(at)
	out, err := build(leaves)
	if err != nil {
		return nil, fmt.Errorf("gradcheck: build: %w", err)
	}
	if err = backprop.Backward(out); err != nil {
		return nil, fmt.Errorf("gradcheck: backward: %w", err)
	}
	report := &Report{
		Output:   out.Data(),
		Analytic: make([]float64, len(at)),
	}
	for i, l := range leaves {
		report.Analytic[i] = l.Grad()
	}

	// 3. Numeric gradient; errors at perturbed points cannot cross fd's
	// func signature, so the first one is kept and reported after the sweep
	var sampleErr error
	f := func(x []float64) float64 {
		n, err := build(leavesAt(x))
		if err != nil {
			if sampleErr == nil {
				sampleErr = err
			}
			return math.NaN()
		}
		return n.Data()
	}
	report.Numeric = fd.Gradient(nil, f, at, &fd.Settings{
		Formula: fd.Central,
		Step:    o.Step,
	})
	if sampleErr != nil {
		return report, fmt.Errorf("gradcheck: perturbed point: %w", sampleErr)
	}

	// 4. Compare element-wise
	for i := range at {
		if !scalar.EqualWithinAbsOrRel(report.Analytic[i], report.Numeric[i], o.AbsTol, o.RelTol) {
			return report, fmt.Errorf("%w: input %d: analytic %g, numeric %g",
				ErrMismatch, i, report.Analytic[i], report.Numeric[i])
		}
	}

	return report, nil
}

// leavesAt wraps each coordinate of x in a fresh leaf.
func leavesAt(x []float64) []*core.Node {
	leaves := make([]*core.Node, len(x))
	for i, v := range x {
		leaves[i] = core.Value(v)
	}

	return leaves
}

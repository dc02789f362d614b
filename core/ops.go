// File: ops.go
// Role: The closed operation catalogue. Each operation carries a forward
// rule and a local-derivative rule (vector-Jacobian product for a scalar
// upstream gradient).
//
// Catalogue:
//
//	Op    Arity   Forward      Local derivative
//	Add   binary  a + b        da = up,            db = up
//	Sub   binary  a - b        da = up,            db = -up
//	Mul   binary  a * b        da = up*b,          db = up*a
//	Div   binary  a / b        da = up/b,          db = -up*a/b²
//	Neg   unary   -a           da = -up
//	Relu  unary   max(0, a)    da = up if a > 0 else 0
//	Tanh  unary   tanh(a)      da = up * (1 - tanh(a)²)
//
// Adding an operation means adding a constant here and a case to every
// switch below; the default branches return ErrUnknownOp.
package core

import (
	"fmt"
	"math"
)

// UnaryOp tags a one-operand operation.
type UnaryOp uint8

// Unary operations.
const (
	OpNeg UnaryOp = iota + 1 // -a
	OpRelu                   // max(0, a)
	OpTanh                   // tanh(a)
)

// BinaryOp tags a two-operand operation.
type BinaryOp uint8

// Binary operations.
const (
	OpAdd BinaryOp = iota + 1 // a + b
	OpSub                     // a - b
	OpMul                     // a * b
	OpDiv                     // a / b
)

// String returns the lower-case operation name.
func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "neg"
	case OpRelu:
		return "relu"
	case OpTanh:
		return "tanh"
	default:
		return fmt.Sprintf("unary(%d)", uint8(op))
	}
}

// String returns the lower-case operation name.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	default:
		return fmt.Sprintf("binary(%d)", uint8(op))
	}
}

// Forward applies op to a.
// Returns ErrUnknownOp for a tag outside the catalogue.
func (op UnaryOp) Forward(a float64) (float64, error) {
	switch op {
	case OpNeg:
		return -a, nil
	case OpRelu:
		if a > 0 || math.IsNaN(a) {
			return a, nil
		}
		return 0, nil
	case OpTanh:
		return math.Tanh(a), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
}

// Local returns the contribution to the operand's gradient, given the
// upstream gradient of the produced node and the operand's data a.
//
// Relu blocks the gradient at a == 0. A NaN operand yields a NaN
// contribution, matching its NaN forward value.
func (op UnaryOp) Local(upstream, a float64) (float64, error) {
	switch op {
	case OpNeg:
		return -upstream, nil
	case OpRelu:
		if math.IsNaN(a) {
			return a, nil
		}
		if a > 0 {
			return upstream, nil
		}
		return 0, nil
	case OpTanh:
		t := math.Tanh(a)
		return upstream * (1 - t*t), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
}

// Forward applies op to (a, b).
// Returns ErrDivisionByZero for OpDiv with b == 0, ErrDivisionOverflow for
// OpDiv whose finite operands give an infinite quotient, ErrUnknownOp for a
// tag outside the catalogue.
func (op BinaryOp) Forward(a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		q := a / b
		if math.IsInf(q, 0) && !math.IsInf(a, 0) {
			return 0, ErrDivisionOverflow
		}
		return q, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
}

// Local returns the contributions (da, db) to the left and right operands'
// gradients, given the upstream gradient of the produced node and the
// operands' data a and b.
//
// The two contributions are independent even when both operands are the
// same node; the caller adds both.
func (op BinaryOp) Local(upstream, a, b float64) (da, db float64, err error) {
	switch op {
	case OpAdd:
		return upstream, upstream, nil
	case OpSub:
		return upstream, -upstream, nil
	case OpMul:
		return upstream * b, upstream * a, nil
	case OpDiv:
		if b == 0 {
			return 0, 0, ErrDivisionByZero
		}
		// (a/b)/b instead of a/(b*b): b*b underflows to 0 for |b| < 1e-162
		return upstream / b, -upstream * (a / b) / b, nil
	default:
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
}

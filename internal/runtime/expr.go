package runtime

import (
	"fmt"

	"github.com/aretw0/marionette/pkg/domain"
)

// Operators accepted by Arithmetic.
var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}

// Operators accepted by Logical.
var logicalOps = map[string]bool{"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true, "isset": true}

// IsArithmeticOp reports whether op is an arithmetic operator.
func IsArithmeticOp(op string) bool { return arithmeticOps[op] }

// IsLogicalOp reports whether op is a logical operator.
func IsLogicalOp(op string) bool { return logicalOps[op] }

// Arithmetic evaluates "left op right" with both operands resolved through Value.
// Integer division truncates toward zero.
func (v *Variables) Arithmetic(left, op, right string) (int, error) {
	if !arithmeticOps[op] {
		return 0, domain.NewSyntaxError("unknown arithmetic operator %q", op)
	}
	l, err := v.Value(left)
	if err != nil {
		return 0, err
	}
	r, err := v.Value(right)
	if err != nil {
		return 0, err
	}

	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, fmt.Errorf("%w: division by zero (%s / %s)", domain.ErrArithmetic, left, right)
		}
		return l / r, nil
	default:
		if r == 0 {
			return 0, fmt.Errorf("%w: modulo by zero (%s %% %s)", domain.ErrArithmetic, left, right)
		}
		return l % r, nil
	}
}

// Logical evaluates "left op right".
// For isset, left is a variable name and right is the expected presence (nonzero = set).
func (v *Variables) Logical(left, op, right string) (bool, error) {
	if !logicalOps[op] {
		return false, domain.NewSyntaxError("unknown logical operator %q", op)
	}

	if op == "isset" {
		want, err := v.Value(right)
		if err != nil {
			return false, err
		}
		return v.Contains(left) == (want != 0), nil
	}

	l, err := v.Value(left)
	if err != nil {
		return false, err
	}
	r, err := v.Value(right)
	if err != nil {
		return false, err
	}

	switch op {
	case "==":
		return l == r, nil
	case "!=":
		return l != r, nil
	case "<":
		return l < r, nil
	case ">":
		return l > r, nil
	case "<=":
		return l <= r, nil
	default:
		return l >= r, nil
	}
}

// Evaluate dispatches to Arithmetic or Logical depending on op.
// Logical results are returned as 1 (true) or 0 (false).
func (v *Variables) Evaluate(left, op, right string) (int, error) {
	if arithmeticOps[op] {
		return v.Arithmetic(left, op, right)
	}
	ok, err := v.Logical(left, op, right)
	if err != nil {
		return 0, err
	}
	if ok {
		return 1, nil
	}
	return 0, nil
}

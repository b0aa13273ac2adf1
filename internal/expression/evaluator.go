package expression

import (
	"fmt"

	"github.com/karupanerura/exprsuite/internal/types"
)

type Evaluator struct {
	SymbolTable *types.SymbolTable
}

// Evaluate walks the tree in strict post-order and returns the root
// value. As a side effect every visited node gets its decoration slot
// written; re-evaluating against an unchanged table writes identical
// values. The symbol table is only read, never mutated.
func (e *Evaluator) Evaluate(node Node) (any, error) {
	switch n := node.(type) {
	case *NumberLiteral:
		n.decorate(n.Value)
		return n.Value, nil

	case *Identifier:
		sym, ok := e.SymbolTable.Get(n.Name)
		if !ok {
			return nil, &types.Error{
				Tag:   types.UndefinedIdentifierTag,
				Err:   fmt.Errorf("undefined identifier: %s", n.Name),
				Extra: map[string]any{"name": n.Name},
			}
		}
		n.decorate(sym.Value)
		return sym.Value, nil

	case *BinaryOp:
		// both children are evaluated unconditionally, no short-circuit
		left, err := e.Evaluate(n.Left)
		if err != nil {
			return nil, fmt.Errorf("left of operator %q: %w", n.Operator, err)
		}
		right, err := e.Evaluate(n.Right)
		if err != nil {
			return nil, fmt.Errorf("right of operator %q: %w", n.Operator, err)
		}

		v, err := applyOperator(n.Operator, left, right)
		if err != nil {
			return nil, err
		}
		n.decorate(v)
		return v, nil

	default:
		return nil, &types.Error{
			Tag: types.InvariantViolationTag,
			Err: fmt.Errorf("unknown node type: %T", node),
		}
	}
}

// applyOperator performs the arithmetic with the int64/float64
// promotion policy: '+', '-' and '*' stay int64 on int64 operands,
// '/' always yields float64.
func applyOperator(op Operator, left, right any) (any, error) {
	switch lhs := left.(type) {
	case int64:
		switch rhs := right.(type) {
		case int64:
			switch op {
			case OpAdd:
				return lhs + rhs, nil
			case OpSub:
				return lhs - rhs, nil
			case OpMul:
				return lhs * rhs, nil
			case OpDiv:
				if rhs == 0 {
					return nil, createDivisionByZeroError()
				}
				return float64(lhs) / float64(rhs), nil
			default:
				return nil, createUnknownOperatorError(op)
			}

		case float64:
			switch op {
			case OpAdd:
				return float64(lhs) + rhs, nil
			case OpSub:
				return float64(lhs) - rhs, nil
			case OpMul:
				return float64(lhs) * rhs, nil
			case OpDiv:
				if rhs == 0 {
					return nil, createDivisionByZeroError()
				}
				return float64(lhs) / rhs, nil
			default:
				return nil, createUnknownOperatorError(op)
			}

		default:
			return nil, createInvalidOperandError(op, right)
		}

	case float64:
		switch rhs := right.(type) {
		case int64:
			switch op {
			case OpAdd:
				return lhs + float64(rhs), nil
			case OpSub:
				return lhs - float64(rhs), nil
			case OpMul:
				return lhs * float64(rhs), nil
			case OpDiv:
				if rhs == 0 {
					return nil, createDivisionByZeroError()
				}
				return lhs / float64(rhs), nil
			default:
				return nil, createUnknownOperatorError(op)
			}

		case float64:
			switch op {
			case OpAdd:
				return lhs + rhs, nil
			case OpSub:
				return lhs - rhs, nil
			case OpMul:
				return lhs * rhs, nil
			case OpDiv:
				if rhs == 0 {
					return nil, createDivisionByZeroError()
				}
				return lhs / rhs, nil
			default:
				return nil, createUnknownOperatorError(op)
			}

		default:
			return nil, createInvalidOperandError(op, right)
		}

	default:
		return nil, createInvalidOperandError(op, left)
	}
}

func createDivisionByZeroError() error {
	return &types.Error{
		Tag: types.DivisionByZeroTag,
		Err: fmt.Errorf("division by zero"),
	}
}

// createUnknownOperatorError is unreachable through the parser's
// grammar, it guards future grammar extensions.
func createUnknownOperatorError(op Operator) error {
	return &types.Error{
		Tag: types.InvariantViolationTag,
		Err: fmt.Errorf("unknown operator: %q", op),
	}
}

func createInvalidOperandError(op Operator, v any) error {
	return &types.Error{
		Tag: types.InvariantViolationTag,
		Err: fmt.Errorf("unknown value type for operator %q: %T", op, v),
	}
}

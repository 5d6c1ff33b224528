package mython

import "fmt"

// Equal is the primitive behind == and !=.
func (exec *Execution) Equal(lhs, rhs Value, pos Position) (bool, error) {
	switch {
	case lhs.Kind() == KindString && rhs.Kind() == KindString:
		return lhs.String() == rhs.String(), nil
	case lhs.Kind() == KindNumber && rhs.Kind() == KindNumber:
		return lhs.Number() == rhs.Number(), nil
	case lhs.Kind() == KindBool && rhs.Kind() == KindBool:
		return lhs.Bool() == rhs.Bool(), nil
	case lhs.Kind() == KindNone && rhs.Kind() == KindNone:
		return true, nil
	case lhs.Kind() == KindInstance && lhs.Instance().HasMethod(eqMethod, 1):
		return exec.dunderTruth(lhs.Instance(), eqMethod, rhs, pos)
	default:
		return false, exec.operandMismatch("==", lhs, rhs, pos)
	}
}

// Less is the primitive behind every ordering comparison.
func (exec *Execution) Less(lhs, rhs Value, pos Position) (bool, error) {
	switch {
	case lhs.Kind() == KindString && rhs.Kind() == KindString:
		return lhs.String() < rhs.String(), nil
	case lhs.Kind() == KindNumber && rhs.Kind() == KindNumber:
		return lhs.Number() < rhs.Number(), nil
	case lhs.Kind() == KindBool && rhs.Kind() == KindBool:
		return !lhs.Bool() && rhs.Bool(), nil
	case lhs.Kind() == KindInstance && lhs.Instance().HasMethod(ltMethod, 1):
		return exec.dunderTruth(lhs.Instance(), ltMethod, rhs, pos)
	default:
		return false, exec.operandMismatch("<", lhs, rhs, pos)
	}
}

func (exec *Execution) NotEqual(lhs, rhs Value, pos Position) (bool, error) {
	eq, err := exec.Equal(lhs, rhs, pos)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

func (exec *Execution) Greater(lhs, rhs Value, pos Position) (bool, error) {
	less, err := exec.Less(lhs, rhs, pos)
	if err != nil {
		return false, err
	}
	if less {
		return false, nil
	}
	eq, err := exec.Equal(lhs, rhs, pos)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

func (exec *Execution) LessOrEqual(lhs, rhs Value, pos Position) (bool, error) {
	less, err := exec.Less(lhs, rhs, pos)
	if err != nil {
		return false, err
	}
	if less {
		return true, nil
	}
	return exec.Equal(lhs, rhs, pos)
}

func (exec *Execution) GreaterOrEqual(lhs, rhs Value, pos Position) (bool, error) {
	less, err := exec.Less(lhs, rhs, pos)
	if err != nil {
		return false, err
	}
	return !less, nil
}

func (exec *Execution) compare(op CompareOp, lhs, rhs Value, pos Position) (bool, error) {
	switch op {
	case CmpEqual:
		return exec.Equal(lhs, rhs, pos)
	case CmpNotEqual:
		return exec.NotEqual(lhs, rhs, pos)
	case CmpLess:
		return exec.Less(lhs, rhs, pos)
	case CmpGreater:
		return exec.Greater(lhs, rhs, pos)
	case CmpLessOrEqual:
		return exec.LessOrEqual(lhs, rhs, pos)
	case CmpGreaterOrEqual:
		return exec.GreaterOrEqual(lhs, rhs, pos)
	default:
		return false, exec.errorAt(pos, ErrTypeMismatch, "unknown comparison %s", op)
	}
}

// dunderTruth calls a one-argument comparison dunder and narrows its
// result through the truth test.
func (exec *Execution) dunderTruth(inst *Instance, method string, rhs Value, pos Position) (bool, error) {
	result, err := exec.CallMethod(inst, method, []Value{rhs}, pos)
	if err != nil {
		return false, err
	}
	ok, err := IsTrue(result)
	if err != nil {
		return false, exec.errorAt(pos, ErrTypeMismatch, "%s.%s must return a truth value, got %s", inst.Class.Name, method, describeValue(result))
	}
	return ok, nil
}

func (exec *Execution) arithmetic(op ArithmeticOp, lhs, rhs Value, pos Position) (Value, error) {
	switch op {
	case OpAdd:
		return exec.add(lhs, rhs, pos)
	case OpSub, OpMul, OpDiv:
		if lhs.Kind() != KindNumber || rhs.Kind() != KindNumber {
			return NewNone(), exec.operandMismatch(op.String(), lhs, rhs, pos)
		}
		return exec.numberOp(op, lhs.Number(), rhs.Number(), pos)
	default:
		return NewNone(), exec.errorAt(pos, ErrTypeMismatch, "unknown operator %s", op)
	}
}

func (exec *Execution) add(lhs, rhs Value, pos Position) (Value, error) {
	switch {
	case lhs.Kind() == KindString && rhs.Kind() == KindString:
		return NewString(lhs.String() + rhs.String()), nil
	case lhs.Kind() == KindNumber && rhs.Kind() == KindNumber:
		return NewNumber(lhs.Number() + rhs.Number()), nil
	case lhs.Kind() == KindInstance && lhs.Instance().HasMethod(addMethod, 1):
		return exec.CallMethod(lhs.Instance(), addMethod, []Value{rhs}, pos)
	default:
		return NewNone(), exec.operandMismatch("+", lhs, rhs, pos)
	}
}

func (exec *Execution) numberOp(op ArithmeticOp, a, b int64, pos Position) (Value, error) {
	switch op {
	case OpSub:
		return NewNumber(a - b), nil
	case OpMul:
		return NewNumber(a * b), nil
	default:
		q, err := Div(a, b)
		if err != nil {
			return NewNone(), exec.wrapError(err, pos)
		}
		return NewNumber(q), nil
	}
}

func (exec *Execution) truth(v Value, pos Position) (bool, error) {
	ok, err := IsTrue(v)
	if err != nil {
		return false, exec.wrapError(err, pos)
	}
	return ok, nil
}

func (exec *Execution) operandMismatch(op string, lhs, rhs Value, pos Position) error {
	return exec.errorAt(pos, ErrTypeMismatch, "unsupported operands for %s: %s and %s", op, describeValue(lhs), describeValue(rhs))
}

// Div is integer division truncating toward zero.
func Div(a, b int64) (int64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %d / 0", ErrDivisionByZero, a)
	}
	return a / b, nil
}

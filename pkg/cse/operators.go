package cse

import "github.com/fernandonpa/cs3513-rpal/pkg/rerr"

// applyUnary implements "not" and "neg", grounded on
// _examples/original_source/src/cse_machine/machine.py's
// _apply_unary_operation.
func applyUnary(op string, v Value) (Value, error) {
	switch op {
	case "not":
		b, ok := v.(BoolValue)
		if !ok {
			return nil, &rerr.TypeMismatch{Operation: "not", Detail: "operand must be a truth value"}
		}
		return !b, nil
	case "neg":
		i, ok := v.(IntValue)
		if !ok {
			return nil, &rerr.TypeMismatch{Operation: "neg", Detail: "operand must be an integer"}
		}
		return -i, nil
	default:
		return nil, &rerr.UnknownBuiltin{Name: op}
	}
}

// applyBinary implements the arithmetic, comparison, boolean and aug
// operators. op1/op2 are popped in source order (left operand first),
// grounded on machine.py's _apply_binary_operation together with the
// reference's preorder/pop-from-tail control-stack convention, which
// delivers operands to the operator in that same left-to-right order.
func applyBinary(op string, op1, op2 Value) (Value, error) {
	switch op {
	case "+", "-", "*", "/", "**":
		a, aok := op1.(IntValue)
		b, bok := op2.(IntValue)
		if !aok || !bok {
			return nil, &rerr.TypeMismatch{Operation: op, Detail: "both operands must be integers"}
		}
		switch op {
		case "+":
			return a + b, nil
		case "-":
			return a - b, nil
		case "*":
			return a * b, nil
		case "/":
			if b == 0 {
				return nil, &rerr.DivisionByZero{}
			}
			return a / b, nil
		case "**":
			return intPow(a, b)
		}

	case "&":
		a, aok := op1.(BoolValue)
		b, bok := op2.(BoolValue)
		if !aok || !bok {
			return nil, &rerr.TypeMismatch{Operation: "&", Detail: "both operands must be truth values"}
		}
		return a && b, nil

	case "or":
		a, aok := op1.(BoolValue)
		b, bok := op2.(BoolValue)
		if !aok || !bok {
			return nil, &rerr.TypeMismatch{Operation: "or", Detail: "both operands must be truth values"}
		}
		return a || b, nil

	case "gr", "ge", "ls", "le":
		a, aok := op1.(IntValue)
		b, bok := op2.(IntValue)
		if !aok || !bok {
			return nil, &rerr.TypeMismatch{Operation: op, Detail: "both operands must be integers"}
		}
		switch op {
		case "gr":
			return a > b, nil
		case "ge":
			return a >= b, nil
		case "ls":
			return a < b, nil
		case "le":
			return a <= b, nil
		}

	case "eq", "ne":
		eq, err := valuesEqual(op1, op2)
		if err != nil {
			return nil, err
		}
		if op == "eq" {
			return eq, nil
		}
		return !eq, nil

	case "aug":
		return applyAug(op1, op2)
	}
	return nil, &rerr.UnknownBuiltin{Name: op}
}

func intPow(base, exp IntValue) (Value, error) {
	if exp < 0 {
		return nil, &rerr.TypeMismatch{Operation: "**", Detail: "negative exponent is not supported"}
	}
	result := IntValue(1)
	for i := IntValue(0); i < exp; i++ {
		result *= base
	}
	return result, nil
}

func valuesEqual(a, b Value) (BoolValue, error) {
	switch av := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		return BoolValue(ok && av == bv), nil
	case StringValue:
		bv, ok := b.(StringValue)
		return BoolValue(ok && av == bv), nil
	case BoolValue:
		bv, ok := b.(BoolValue)
		return BoolValue(ok && av == bv), nil
	case DummyValue:
		_, ok := b.(DummyValue)
		return BoolValue(ok), nil
	default:
		return false, &rerr.TypeMismatch{Operation: "eq", Detail: "operands are not comparable"}
	}
}

// applyAug implements RPAL's "aug" list-augmentation operator as a pure,
// non-mutating build of a fresh tuple whose elements are left's elements
// followed by right, per spec.md §4.5 exactly. The reference (machine.py,
// op == "aug") both mutates operand1's element slice in place and, when
// operand2 is itself a tuple, flattens its elements into the result rather
// than nesting it; spec.md calls out the former as not to be relied on and
// is unambiguous that the latter never happens either ("followed by
// right", not "followed by right's elements"), so right is always appended
// as a single element regardless of its type.
func applyAug(op1, op2 Value) (Value, error) {
	t1, ok := op1.(*TupleValue)
	if !ok {
		return nil, &rerr.TypeMismatch{Operation: "aug", Detail: "left operand must be a tuple"}
	}
	elems := make([]Value, 0, len(t1.Elements)+1)
	elems = append(elems, t1.Elements...)
	elems = append(elems, op2)
	return &TupleValue{Elements: elems}, nil
}

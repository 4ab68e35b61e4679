package cse

import "github.com/fernandonpa/cs3513-rpal/pkg/rerr"

// builtinNames lists every identifier applyGamma treats as a builtin when
// it reaches Gamma with no user binding shadowing it. Stem/Stern/Conc/Order/
// Isinteger/Isstring/Istuple/Isdummy/Istruthvalue/Isfunction are grounded
// on _examples/original_source/src/cse_machine/machine.py's builtin
// dispatch (the long if/elif chain keyed on the applied identifier's
// name); Print there is a literal no-op, matching spec.md's "identity"
// definition directly (there is no separate output channel — the CLI
// prints whatever value is left on top of the stack when the program
// finishes). Null and Itos have no counterpart in machine.py; they are
// added fresh from spec.md's own definitions, following the naming and
// single-argument shape of their siblings above.
var builtinNames = map[string]bool{
	"Print": true, "Stem": true, "Stern": true, "Conc": true, "Order": true,
	"Null": true, "Isinteger": true, "Isstring": true, "Istuple": true,
	"Isdummy": true, "Istruthvalue": true, "Isfunction": true, "Itos": true,
}

// applyBuiltin runs one builtin's logic against the value stack, popping
// exactly the arguments it needs and pushing exactly one result.
//
// Conc pops two arguments in a single step even though "Conc s1 s2" parses
// as two nested applications (gamma(gamma(Conc, s1), s2)): spec.md leaves
// the choice between a partial-application closure and a single two-pop
// step up to the implementation, and this matches the reference, which
// greedily consumes both values as soon as the identifier resolves during
// the inner application's Gamma, then drops the outer application's
// Gamma from the control stack. Conc is therefore not curry-able in
// practice; calling it with one argument is a type error (the second pop
// fails to find a string).
func (m *Machine) applyBuiltin(name string) error {
	switch name {
	case "Print":
		v, err := m.value.Pop()
		if err != nil {
			return err
		}
		m.value.Push(v)
		return nil

	case "Stem":
		s, err := m.popString("Stem")
		if err != nil {
			return err
		}
		if len(s) == 0 {
			m.value.Push(StringValue(""))
			return nil
		}
		m.value.Push(StringValue(s[:1]))
		return nil

	case "Stern":
		s, err := m.popString("Stern")
		if err != nil {
			return err
		}
		if len(s) == 0 {
			m.value.Push(StringValue(""))
			return nil
		}
		m.value.Push(StringValue(s[1:]))
		return nil

	case "Conc":
		s1, err := m.popString("Conc")
		if err != nil {
			return err
		}
		s2, err := m.popString("Conc")
		if err != nil {
			return err
		}
		// Both arguments are consumed here, so the outer application's
		// Gamma (next on the control stack) has nothing left to apply.
		next, err := m.control.Pop()
		if err != nil {
			return err
		}
		if _, ok := next.(*GammaSym); !ok {
			return &rerr.TypeMismatch{Operation: "Conc", Detail: "expects two arguments"}
		}
		m.value.Push(StringValue(string(s1) + string(s2)))
		return nil

	case "Order":
		t, err := m.popTuple("Order")
		if err != nil {
			return err
		}
		m.value.Push(IntValue(len(t.Elements)))
		return nil

	case "Null":
		v, err := m.value.Pop()
		if err != nil {
			return err
		}
		t, ok := v.(*TupleValue)
		m.value.Push(BoolValue(ok && len(t.Elements) == 0))
		return nil

	case "Isinteger":
		return m.pushTypeCheck(func(v Value) bool { _, ok := v.(IntValue); return ok })
	case "Isstring":
		return m.pushTypeCheck(func(v Value) bool { _, ok := v.(StringValue); return ok })
	case "Istuple":
		return m.pushTypeCheck(func(v Value) bool { _, ok := v.(*TupleValue); return ok })
	case "Isdummy":
		return m.pushTypeCheck(func(v Value) bool { _, ok := v.(DummyValue); return ok })
	case "Istruthvalue":
		return m.pushTypeCheck(func(v Value) bool { _, ok := v.(BoolValue); return ok })
	case "Isfunction":
		return m.pushTypeCheck(func(v Value) bool {
			switch v.(type) {
			case *Closure, *EtaValue, BuiltinValue:
				return true
			default:
				return false
			}
		})

	case "Itos":
		v, err := m.value.Pop()
		if err != nil {
			return err
		}
		i, ok := v.(IntValue)
		if !ok {
			return &rerr.TypeMismatch{Operation: "Itos", Detail: "argument must be an integer"}
		}
		m.value.Push(StringValue(Format(i)))
		return nil

	default:
		return &rerr.UnknownBuiltin{Name: name}
	}
}

func (m *Machine) popString(op string) (string, error) {
	v, err := m.value.Pop()
	if err != nil {
		return "", err
	}
	s, ok := v.(StringValue)
	if !ok {
		return "", &rerr.TypeMismatch{Operation: op, Detail: "argument must be a string"}
	}
	return string(s), nil
}

func (m *Machine) popTuple(op string) (*TupleValue, error) {
	v, err := m.value.Pop()
	if err != nil {
		return nil, err
	}
	t, ok := v.(*TupleValue)
	if !ok {
		return nil, &rerr.TypeMismatch{Operation: op, Detail: "argument must be a tuple"}
	}
	return t, nil
}

func (m *Machine) pushTypeCheck(pred func(Value) bool) error {
	v, err := m.value.Pop()
	if err != nil {
		return err
	}
	m.value.Push(BoolValue(pred(v)))
	return nil
}

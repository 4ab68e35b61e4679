package cse

import (
	"context"

	"github.com/fernandonpa/cs3513-rpal/pkg/rerr"
	"github.com/fernandonpa/cs3513-rpal/pkg/utils"
)

// Machine executes the control structures a Factory builds: a control
// stack of Symbols, a value stack of Values and the current Environment,
// following the classic CSE (control/stack/environment) evaluation loop.
// Grounded on
// _examples/original_source/src/cse_machine/machine.py (CSEMachine), with
// two deliberate simplifications over the reference (see Run and step):
// environment restore uses an explicit LIFO rather than a mark-and-rescan
// over every environment ever created, and no synthetic placeholder value
// is threaded through the value stack to drive that restore.
type Machine struct {
	control utils.Stack[Symbol]
	value   utils.Stack[Value]

	current    *Environment
	prevEnv    []*Environment
	envCounter int
}

// NewMachine prepares a fresh machine over root, the outermost control
// structure a Factory built.
func NewMachine(root *DeltaSym) *Machine {
	m := &Machine{
		current:    &Environment{Index: 0, Bindings: map[string]Value{}},
		envCounter: 1,
	}
	m.control.Push(root)
	return m
}

// Run drives the control stack to completion and returns the single value
// left on the value stack, or an error (including context cancellation,
// surfaced as rerr.Timeout).
func (m *Machine) Run(ctx context.Context) (Value, error) {
	for m.control.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, &rerr.Timeout{}
		default:
		}
		sym, err := m.control.Pop()
		if err != nil {
			return nil, err
		}
		if err := m.step(sym); err != nil {
			return nil, err
		}
	}
	if m.value.Len() == 0 {
		return nil, &rerr.MalformedTree{Rule: "cse", Message: "no result left on the value stack"}
	}
	return m.value.Pop()
}

func (m *Machine) step(sym Symbol) error {
	switch s := sym.(type) {
	case *IdentSym:
		// Per spec.md: an unbound name is not itself an error; it resolves
		// to an opaque symbol (here, BuiltinValue) that a following Gamma
		// either recognizes as a builtin or rejects as unbound.
		if v, ok := m.current.Lookup(s.Name); ok {
			m.value.Push(v)
			return nil
		}
		m.value.Push(BuiltinValue{Name: s.Name})
		return nil

	case *LambdaSym:
		m.value.Push(&Closure{Params: s.Params, Body: s.Body, Env: m.current})
		return nil

	case *GammaSym:
		return m.applyGamma()

	case *envMarker:
		if len(m.prevEnv) == 0 {
			return &rerr.MalformedTree{Rule: "cse", Message: "environment marker with no saved environment to restore"}
		}
		m.current = m.prevEnv[len(m.prevEnv)-1]
		m.prevEnv = m.prevEnv[:len(m.prevEnv)-1]
		return nil

	case *UnarySym:
		operand, err := m.value.Pop()
		if err != nil {
			return err
		}
		result, err := applyUnary(s.Op, operand)
		if err != nil {
			return err
		}
		m.value.Push(result)
		return nil

	case *BinarySym:
		// by the preorder/pop-from-tail convention the right operand's code
		// runs first and the left operand ends on top, so op1 is the left
		// operand.
		op1, err := m.value.Pop()
		if err != nil {
			return err
		}
		op2, err := m.value.Pop()
		if err != nil {
			return err
		}
		result, err := applyBinary(s.Op, op1, op2)
		if err != nil {
			return err
		}
		m.value.Push(result)
		return nil

	case *BetaSym:
		return m.applyBeta()

	case *TauSym:
		elems := make([]Value, s.Size)
		for i := 0; i < s.Size; i++ {
			v, err := m.value.Pop()
			if err != nil {
				return err
			}
			elems[i] = v
		}
		m.value.Push(&TupleValue{Elements: elems})
		return nil

	case *DeltaSym:
		for _, child := range s.Symbols {
			m.control.Push(child)
		}
		return nil

	default:
		v, err := symbolToValue(sym)
		if err != nil {
			return err
		}
		m.value.Push(v)
		return nil
	}
}

// applyBeta picks the conditional branch matching the value the
// condition's own code just left on top of the value stack. By
// construction (see Factory.preorder's "->" case) the control stack's two
// topmost entries at this point are always the else-Delta (on top) and the
// then-Delta beneath it.
func (m *Machine) applyBeta() error {
	condVal, err := m.value.Pop()
	if err != nil {
		return err
	}
	cond, ok := condVal.(BoolValue)
	if !ok {
		return &rerr.TypeMismatch{Operation: "->", Detail: "condition must evaluate to a truth value"}
	}
	elseDelta, err := m.control.Pop()
	if err != nil {
		return err
	}
	thenDelta, err := m.control.Pop()
	if err != nil {
		return err
	}
	if cond {
		m.control.Push(thenDelta)
	} else {
		m.control.Push(elseDelta)
	}
	return nil
}

// applyGamma dispatches function application, tuple indexing, Y*
// unfolding and builtin calls on the value just popped off the value
// stack, mirroring machine.py's Gamma branch (isinstance(Lambda) /
// isinstance(Tuple) / isinstance(Ystar) / isinstance(Eta) / else).
func (m *Machine) applyGamma() error {
	top, err := m.value.Pop()
	if err != nil {
		return err
	}
	switch fn := top.(type) {
	case *Closure:
		return m.callClosure(fn)

	case *TupleValue:
		idxVal, err := m.value.Pop()
		if err != nil {
			return err
		}
		idx, ok := idxVal.(IntValue)
		if !ok {
			return &rerr.TypeMismatch{Operation: "gamma", Detail: "tuple index must be an integer"}
		}
		if int(idx) < 1 || int(idx) > len(fn.Elements) {
			return &rerr.IndexOutOfBounds{Index: int(idx), Arity: len(fn.Elements)}
		}
		m.value.Push(fn.Elements[idx-1])
		return nil

	case YstarSym:
		lambdaVal, err := m.value.Pop()
		if err != nil {
			return err
		}
		closure, ok := lambdaVal.(*Closure)
		if !ok {
			return &rerr.TypeMismatch{Operation: "<Y*>", Detail: "operand must be a function"}
		}
		m.value.Push(&EtaValue{Closure: closure})
		return nil

	case *EtaValue:
		// Unfolding trick: apply the wrapped closure with the Eta itself
		// bound as its own parameter (so a recursive call inside the body
		// resolves back to this same Eta), then re-trigger Gamma so the
		// closure the body produces is applied to the real argument still
		// waiting underneath on the value stack.
		m.control.Push(&GammaSym{})
		m.control.Push(&GammaSym{})
		m.value.Push(fn)
		m.value.Push(fn.Closure)
		return nil

	case BuiltinValue:
		if !builtinNames[fn.Name] {
			return &rerr.UnboundIdentifier{Name: fn.Name}
		}
		return m.applyBuiltin(fn.Name)

	default:
		return &rerr.TypeMismatch{Operation: "gamma", Detail: "attempt to apply a non-function value"}
	}
}

func (m *Machine) callClosure(fn *Closure) error {
	newEnv := &Environment{Index: m.envCounter, Parent: fn.Env, Bindings: map[string]Value{}}
	m.envCounter++

	if len(fn.Params) == 1 {
		arg, err := m.value.Pop()
		if err != nil {
			return err
		}
		newEnv.Bindings[fn.Params[0]] = arg
	} else {
		arg, err := m.value.Pop()
		if err != nil {
			return err
		}
		tup, ok := arg.(*TupleValue)
		if !ok || len(tup.Elements) != len(fn.Params) {
			return &rerr.ArityMismatch{Expected: len(fn.Params), Actual: tupleArity(arg)}
		}
		for i, p := range fn.Params {
			newEnv.Bindings[p] = tup.Elements[i]
		}
	}

	m.prevEnv = append(m.prevEnv, m.current)
	m.current = newEnv
	m.control.Push(&envMarker{})
	for _, sym := range fn.Body.Symbols {
		m.control.Push(sym)
	}
	return nil
}

// symbolToValue converts a literal/structural control symbol into the
// value it represents, for the symbols the main step() switch does not
// special-case: these simply mean "a literal, push it" (machine.py's
// trailing else branch).
func symbolToValue(sym Symbol) (Value, error) {
	switch s := sym.(type) {
	case *IntSym:
		return IntValue(s.Value), nil
	case *StrSym:
		return StringValue(s.Value), nil
	case *BoolSym:
		return BoolValue(s.Value), nil
	case *DummySym:
		return DummyValue{}, nil
	case *NilTupleSym:
		return &TupleValue{}, nil
	case YstarSym:
		return s, nil
	default:
		return nil, &rerr.MalformedTree{Rule: "cse", Message: "unexpected control symbol reached the value position"}
	}
}

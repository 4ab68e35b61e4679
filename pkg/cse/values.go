package cse

import "fmt"

// Value is anything that can live on the machine's value stack: the result
// of evaluating a control structure, or an operand waiting to be consumed
// by the next operator/Gamma.
type Value interface{ isValue() }

type (
	IntValue    int64
	StringValue string
	BoolValue   bool
	DummyValue  struct{}
)

// TupleValue is RPAL's tuple; Order/Null/aug/Gamma-indexing all operate on
// its Elements slice directly, 1-based from the language's point of view.
type TupleValue struct{ Elements []Value }

// Closure is a Lambda paired with the environment captured at the moment
// its control symbol was reached; applying it (via Gamma) creates a child
// environment binding Params against the supplied argument(s).
type Closure struct {
	Params []string
	Body   *DeltaSym
	Env    *Environment
}

// EtaValue is the self-referential wrapper Y* produces: applying it
// re-applies the wrapped Closure with itself available as the recursive
// binding, which is what lets "rec f = ..." call f inside its own body.
type EtaValue struct{ Closure *Closure }

// BuiltinValue is the opaque value the machine pushes for any identifier
// Environment.Lookup finds no binding for; applyGamma runs it as a builtin
// if its name is one, and reports UnboundIdentifier otherwise.
type BuiltinValue struct{ Name string }

func (IntValue) isValue()      {}
func (StringValue) isValue()   {}
func (BoolValue) isValue()     {}
func (DummyValue) isValue()    {}
func (*TupleValue) isValue()   {}
func (*Closure) isValue()      {}
func (*EtaValue) isValue()     {}
func (BuiltinValue) isValue()  {}
func (YstarSym) isValue()      {}

// Environment is one binding frame, append-only and parent-linked; lookups
// walk toward the outermost frame. Grounded on the shape
// _examples/original_source/src/cse_machine/nodes/e.py gives an
// environment (an index, a parent and a name/value map), with the
// mark-for-deletion/linear-rescan restore mechanism replaced by a plain
// LIFO restore stack in Machine (see machine.go): CSE-machine control
// structures nest strictly, so environments are always entered and left in
// proper stack order and no rescan is ever needed.
type Environment struct {
	Index    int
	Parent   *Environment
	Bindings map[string]Value
}

// Lookup walks from e toward the root environment, returning the first
// binding found for name. An unbound name is not reported as an error
// here: per spec.md, it resolves to an opaque symbol the caller wraps as
// a BuiltinValue, which a following Gamma either recognizes as a builtin
// or rejects with UnboundIdentifier.
func (e *Environment) Lookup(name string) (Value, bool) {
	for cur := e; cur != nil; cur = cur.Parent {
		if v, ok := cur.Bindings[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func tupleArity(v Value) int {
	if t, ok := v.(*TupleValue); ok {
		return len(t.Elements)
	}
	return -1
}

func (v *TupleValue) String() string {
	return fmt.Sprintf("tuple(%d)", len(v.Elements))
}

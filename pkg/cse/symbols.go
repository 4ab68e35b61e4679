// Package cse implements the control-structure factory and the CSE
// (control/stack/environment) abstract machine that executes a standardized
// RPAL tree: the external collaborator spec.md describes only by the
// operations it must perform (control-structure flattening, Gamma/Beta/
// Tau/Delta dispatch, Lambda/Eta/Ystar closures, operators, builtins).
//
// Control-structure construction (the Delta segments and the symbols that
// make them up) is grounded on
// _examples/original_source/src/cse_machine/factory.py
// (CSEMachineFactory.get_symbol/get_lambda/get_pre_order_traverse/
// get_delta); the execution loop is grounded on
// _examples/original_source/src/cse_machine/machine.py (CSEMachine.evaluate
// and its helpers), adapted to Go idiom (typed Value/Symbol interfaces and
// explicit errors in place of isinstance chains and silent fallbacks).
package cse

// Symbol is one entry in a control-structure's code stream: either a
// static instruction produced by the Factory (an operator, a literal, a
// Gamma/Beta/Tau marker, a Lambda or Delta) or, at runtime, the dynamic
// environment-restore marker pushed by the machine itself when a function
// call begins.
type Symbol interface{ isSymbol() }

// IdentSym looks up a name in the current environment and pushes its bound
// value (or resolves to a builtin name, see Machine.applyGamma).
type IdentSym struct{ Name string }

// IntSym, StrSym, BoolSym, DummySym and NilTupleSym are literal operands:
// encountered on the control stream they are pushed to the value stack
// as-is (see symbolToValue).
type (
	IntSym      struct{ Value int64 }
	StrSym      struct{ Value string }
	BoolSym     struct{ Value bool }
	DummySym    struct{}
	NilTupleSym struct{}
)

// UnarySym and BinarySym are operator tokens: "not"/"neg" and the
// arithmetic/logical/comparison/aug operators respectively.
type (
	UnarySym  struct{ Op string }
	BinarySym struct{ Op string }
)

// GammaSym triggers function application / tuple selection / Y* unfolding
// / builtin dispatch, branching on the dynamic type of the applied value.
type GammaSym struct{}

// TauSym builds a tuple from the Size values on top of the value stack.
type TauSym struct{ Size int }

// YstarSym is RPAL's Y* fixed-point combinator; implements both Symbol (it
// can sit unevaluated on the control stream) and Value (once popped there
// it is pushed verbatim to the value stack until a Gamma consumes it).
type YstarSym struct{}

// BetaSym selects between the two control-structure branches pushed just
// below it, based on the boolean left on top of the value stack by the
// condition's own code.
type BetaSym struct{}

// LambdaSym is a function abstraction: when the control stream reaches it,
// the machine closes over the current environment, producing a Closure
// value (see Machine.step).
type LambdaSym struct {
	Index  int
	Params []string
	Body   *DeltaSym
}

// DeltaSym is a numbered control-structure segment: the flattened,
// pre-order code for one subtree, to be appended wholesale to the control
// stack when reached (the function body of a Lambda, or the two branches
// of a conditional).
type DeltaSym struct {
	Index   int
	Symbols []Symbol
}

// envMarker is pushed onto the control stack (never produced by the
// Factory) right before a function call's body runs; when it is reached,
// every control symbol belonging to that call has been consumed and the
// machine restores the caller's environment.
type envMarker struct{}

func (*IdentSym) isSymbol()    {}
func (*IntSym) isSymbol()      {}
func (*StrSym) isSymbol()      {}
func (*BoolSym) isSymbol()     {}
func (*DummySym) isSymbol()    {}
func (*NilTupleSym) isSymbol() {}
func (*UnarySym) isSymbol()    {}
func (*BinarySym) isSymbol()   {}
func (*GammaSym) isSymbol()    {}
func (*TauSym) isSymbol()      {}
func (YstarSym) isSymbol()     {}
func (*BetaSym) isSymbol()     {}
func (*LambdaSym) isSymbol()   {}
func (*DeltaSym) isSymbol()    {}
func (*envMarker) isSymbol()   {}

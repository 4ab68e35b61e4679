// Package rerr holds the named error kinds produced across the RPAL
// pipeline (lexing, parsing, standardization, CSE execution). Each kind is
// its own type so a caller can tell them apart with errors.As instead of
// string-matching a message.
package rerr

import "fmt"

// LexicalError signals an unmatched character or an unterminated string
// literal while tokenizing.
type LexicalError struct {
	Pos     int
	Snippet string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d", e.Snippet, e.Pos)
}

// ParseError signals an unexpected token while building the AST.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// MalformedTree signals that a standardizer rewrite rule's precondition
// (child count/shape) was violated.
type MalformedTree struct {
	Rule    string
	Message string
}

func (e *MalformedTree) Error() string {
	return fmt.Sprintf("malformed tree for %s: %s", e.Rule, e.Message)
}

// UnboundIdentifier signals that an identifier could not be resolved in the
// live environment chain and is not consumed as a builtin name either.
type UnboundIdentifier struct {
	Name string
}

func (e *UnboundIdentifier) Error() string {
	return fmt.Sprintf("unbound identifier: %s", e.Name)
}

// TypeMismatch signals that an operator or builtin received a value of the
// wrong kind.
type TypeMismatch struct {
	Operation string
	Detail    string
}

func (e *TypeMismatch) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("type mismatch in %s", e.Operation)
	}
	return fmt.Sprintf("type mismatch in %s: %s", e.Operation, e.Detail)
}

// DivisionByZero signals integer division by a zero divisor.
type DivisionByZero struct{}

func (e *DivisionByZero) Error() string { return "division by zero" }

// IndexOutOfBounds signals a tuple index outside [1, arity].
type IndexOutOfBounds struct {
	Index, Arity int
}

func (e *IndexOutOfBounds) Error() string {
	return fmt.Sprintf("tuple index %d out of bounds for tuple of arity %d", e.Index, e.Arity)
}

// ArityMismatch signals a lambda expecting N tuple elements but receiving a
// tuple (or non-tuple) of a different arity.
type ArityMismatch struct {
	Expected, Actual int
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("arity mismatch: lambda expects %d argument(s), got %d", e.Expected, e.Actual)
}

// UnknownBuiltin signals a builtin or operator name that the machine's
// dispatch has no implementation for. (An unbound, non-builtin identifier
// reaching Gamma is reported as UnboundIdentifier instead.)
type UnknownBuiltin struct {
	Name string
}

func (e *UnknownBuiltin) Error() string {
	return fmt.Sprintf("unknown builtin: %s", e.Name)
}

// Timeout signals that the process-wide execution deadline elapsed before
// the CSE machine reached a result.
type Timeout struct{}

func (e *Timeout) Error() string { return "execution timed out" }

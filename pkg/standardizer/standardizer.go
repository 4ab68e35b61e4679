// Package standardizer rewrites a parsed RPAL tree into its standardized
// form: the eight syntactic constructs (let, where, function_form, lambda
// with more than one parameter, within, @, and, rec) are each reduced to a
// combination of the canonical constructs (gamma, lambda, =, tau, comma,
// <Y*>) that the control-structure factory knows how to flatten.
//
// Rules and their before/after shapes are grounded on the reference
// implementation's node rewrites
// (_examples/original_source/src/tree_normalizer/syntax_node.py,
// Node._transform_*); the traversal order (children first, bottom-up, once
// each) mirrors that file's Node.standardize.
package standardizer

import (
	"github.com/fernandonpa/cs3513-rpal/pkg/ast"
	"github.com/fernandonpa/cs3513-rpal/pkg/rerr"
)

// Standardize rewrites 'n' and its subtree in place, bottom-up. Safe to
// call more than once on the same tree: already-standardized nodes (and any
// node produced fresh by a rewrite, which starts out already in canonical
// form) are left untouched.
func Standardize(n *ast.Node) error {
	if n.Standardized {
		return nil
	}
	for _, child := range n.Children {
		if err := Standardize(child); err != nil {
			return err
		}
	}
	if err := apply(n); err != nil {
		return err
	}
	n.Standardized = true
	return nil
}

func apply(n *ast.Node) error {
	switch n.Tag {
	case "let":
		return transformLet(n)
	case "where":
		return transformWhere(n)
	case "function_form":
		return transformFunctionForm(n)
	case "lambda":
		return transformLambda(n)
	case "within":
		return transformWithin(n)
	case "@":
		return transformAt(n)
	case "and":
		return transformAnd(n)
	case "rec":
		return transformRec(n)
	default:
		return nil
	}
}

// transformLet rewrites "let X = E in P" (AST: let(=(X,E), P)) into
// gamma(lambda(X, P), E). By the time this runs, the "=" child is
// guaranteed present: if the original definition was rec/and/within it has
// already been reduced to "=" by its own (already applied) rule.
func transformLet(n *ast.Node) error {
	if len(n.Children) != 2 || n.Children[0].Tag != "=" {
		return &rerr.MalformedTree{Rule: "let", Message: "expected children (=, P)"}
	}
	eq, p := n.Children[0], n.Children[1]
	if len(eq.Children) != 2 {
		return &rerr.MalformedTree{Rule: "let", Message: "'=' child must have exactly 2 children"}
	}
	e := eq.Children[1]

	eq.Tag = "lambda"
	eq.Children[1] = p
	p.Parent = eq

	n.Children[1] = e
	e.Parent = n
	n.Tag = "gamma"
	n.Restamp()
	return nil
}

// transformWhere rewrites "P where X = E" into "let X = E in P" and
// re-applies the let rule.
func transformWhere(n *ast.Node) error {
	if len(n.Children) != 2 {
		return &rerr.MalformedTree{Rule: "where", Message: "expected exactly 2 children"}
	}
	n.Children[0], n.Children[1] = n.Children[1], n.Children[0]
	n.Tag = "let"
	return transformLet(n)
}

// transformFunctionForm rewrites "name V1 ... Vn = E" into
// "name = lambda(V1, lambda(V2, ... lambda(Vn, E)))".
func transformFunctionForm(n *ast.Node) error {
	if len(n.Children) < 3 {
		return &rerr.MalformedTree{Rule: "function_form", Message: "expected a name, at least one parameter and a body"}
	}
	name := n.Children[0]
	body := n.Children[len(n.Children)-1]
	params := n.Children[1 : len(n.Children)-1]

	lam := nestLambdas(params, body)
	n.Children = []*ast.Node{name, lam}
	name.Parent = n
	lam.Parent = n
	n.Tag = "="
	n.Restamp()
	return nil
}

// transformLambda flattens a multi-parameter lambda ("lambda(V1..Vn, E)",
// n>1) into right-nested single-parameter lambdas. A lambda with a single
// parameter is already canonical and is left untouched.
func transformLambda(n *ast.Node) error {
	if len(n.Children) <= 2 {
		return nil
	}
	body := n.Children[len(n.Children)-1]
	params := n.Children[:len(n.Children)-1]

	rest := nestLambdas(params[1:], body)
	n.Children = []*ast.Node{params[0], rest}
	params[0].Parent = n
	rest.Parent = n
	n.Restamp()
	return nil
}

// nestLambdas builds lambda(params[0], lambda(params[1], ... body)),
// right-nested over the remaining parameters.
func nestLambdas(params []*ast.Node, body *ast.Node) *ast.Node {
	lam := ast.New("lambda", 0)
	lam.AddChild(params[0])
	if len(params) == 1 {
		lam.AddChild(body)
		return lam
	}
	lam.AddChild(nestLambdas(params[1:], body))
	return lam
}

// transformWithin rewrites "(X1 = E1) within (X2 = E2)" into
// "X2 = gamma(lambda(X1, E2), E1)": E2 (the inner definition's value) is
// evaluated with X1 bound to E1.
func transformWithin(n *ast.Node) error {
	if len(n.Children) != 2 || n.Children[0].Tag != "=" || n.Children[1].Tag != "=" {
		return &rerr.MalformedTree{Rule: "within", Message: "expected two '=' children"}
	}
	eq1, eq2 := n.Children[0], n.Children[1]
	if len(eq1.Children) != 2 || len(eq2.Children) != 2 {
		return &rerr.MalformedTree{Rule: "within", Message: "'=' children must each have exactly 2 children"}
	}
	x1, e1 := eq1.Children[0], eq1.Children[1]
	x2, e2 := eq2.Children[0], eq2.Children[1]

	lam := ast.New("lambda", 0)
	lam.AddChild(x1)
	lam.AddChild(e2)
	gamma := ast.New("gamma", 0)
	gamma.AddChild(lam)
	gamma.AddChild(e1)

	n.Children = []*ast.Node{x2, gamma}
	x2.Parent = n
	gamma.Parent = n
	n.Tag = "="
	n.Restamp()
	return nil
}

// transformAt rewrites the infix application "E1 @ N E2" (AST: @(E1, N,
// E2)) into gamma(gamma(N, E1), E2).
func transformAt(n *ast.Node) error {
	if len(n.Children) != 3 {
		return &rerr.MalformedTree{Rule: "@", Message: "expected exactly 3 children (E1, N, E2)"}
	}
	e1, ident, e2 := n.Children[0], n.Children[1], n.Children[2]

	inner := ast.New("gamma", 0)
	inner.AddChild(ident)
	inner.AddChild(e1)

	n.Children = []*ast.Node{inner, e2}
	inner.Parent = n
	e2.Parent = n
	n.Tag = "gamma"
	n.Restamp()
	return nil
}

// transformAnd rewrites simultaneous definitions "X1 = E1 and ... and Xn =
// En" into "(X1, ..., Xn) = tau(E1, ..., En)".
func transformAnd(n *ast.Node) error {
	if len(n.Children) == 0 {
		return &rerr.MalformedTree{Rule: "and", Message: "expected at least one '=' child"}
	}
	comma := ast.New(",", 0)
	tau := ast.New("tau", 0)
	for _, eq := range n.Children {
		if eq.Tag != "=" || len(eq.Children) != 2 {
			return &rerr.MalformedTree{Rule: "and", Message: "every child must be a 2-child '=' node"}
		}
		comma.AddChild(eq.Children[0])
		tau.AddChild(eq.Children[1])
	}
	n.Children = []*ast.Node{comma, tau}
	comma.Parent = n
	tau.Parent = n
	n.Tag = "="
	n.Restamp()
	return nil
}

// transformRec rewrites "rec X = E" into "X = gamma(<Y*>, lambda(X, E))",
// tying the recursive knot through the Y* fixed-point combinator.
func transformRec(n *ast.Node) error {
	if len(n.Children) != 1 || n.Children[0].Tag != "=" {
		return &rerr.MalformedTree{Rule: "rec", Message: "expected a single '=' child"}
	}
	eq := n.Children[0]
	if len(eq.Children) != 2 {
		return &rerr.MalformedTree{Rule: "rec", Message: "'=' child must have exactly 2 children"}
	}
	x, e := eq.Children[0], eq.Children[1]

	f := ast.New(x.Tag, 0)
	xCopy := ast.New(x.Tag, 0)
	lam := ast.New("lambda", 0)
	lam.AddChild(xCopy)
	lam.AddChild(e)
	y := ast.New("<Y*>", 0)
	gamma := ast.New("gamma", 0)
	gamma.AddChild(y)
	gamma.AddChild(lam)

	n.Children = []*ast.Node{f, gamma}
	f.Parent = n
	gamma.Parent = n
	n.Tag = "="
	n.Restamp()
	return nil
}

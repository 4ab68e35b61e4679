package standardizer_test

import (
	"testing"

	"github.com/fernandonpa/cs3513-rpal/pkg/ast"
	"github.com/fernandonpa/cs3513-rpal/pkg/standardizer"
)

func ident(name string) *ast.Node { return ast.New("<IDENTIFIER:"+name+">", 0) }

func TestTransformLet(t *testing.T) {
	// let x = 5 in x  =>  gamma(lambda(x, x), 5)
	eq := ast.New("=", 0)
	eq.AddChild(ident("x"))
	eq.AddChild(ast.New("<INTEGER:5>", 0))
	n := ast.New("let", 0)
	n.AddChild(eq)
	n.AddChild(ident("x"))

	if err := standardizer.Standardize(n); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n.Tag != "gamma" || len(n.Children) != 2 {
		t.Fatalf("got tag %q with %d children, want gamma/2", n.Tag, len(n.Children))
	}
	lam := n.Children[0]
	if lam.Tag != "lambda" || len(lam.Children) != 2 {
		t.Fatalf("expected lambda/2 as first child, got %q/%d", lam.Tag, len(lam.Children))
	}
	if n.Children[1].Tag != "<INTEGER:5>" {
		t.Fatalf("expected E (5) as second child, got %q", n.Children[1].Tag)
	}
}

func TestTransformWhereDelegatesToLet(t *testing.T) {
	// (x + 1) where x = 5  =>  let x = 5 in (x+1)  =>  gamma(lambda(x, x+1), 5)
	body := ast.New("+", 0)
	body.AddChild(ident("x"))
	body.AddChild(ast.New("<INTEGER:1>", 0))

	eq := ast.New("=", 0)
	eq.AddChild(ident("x"))
	eq.AddChild(ast.New("<INTEGER:5>", 0))

	n := ast.New("where", 0)
	n.AddChild(body)
	n.AddChild(eq)

	if err := standardizer.Standardize(n); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n.Tag != "gamma" {
		t.Fatalf("got tag %q, want gamma", n.Tag)
	}
}

func TestTransformFunctionForm(t *testing.T) {
	// f x y = x  =>  f = lambda(x, lambda(y, x))
	n := ast.New("function_form", 0)
	n.AddChild(ident("f"))
	n.AddChild(ident("x"))
	n.AddChild(ident("y"))
	n.AddChild(ident("x"))

	if err := standardizer.Standardize(n); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n.Tag != "=" || len(n.Children) != 2 {
		t.Fatalf("got tag %q/%d children, want =/2", n.Tag, len(n.Children))
	}
	outer := n.Children[1]
	if outer.Tag != "lambda" || outer.Children[0].Tag != "<IDENTIFIER:x>" {
		t.Fatalf("expected outer lambda over x, got %+v", outer)
	}
	inner := outer.Children[1]
	if inner.Tag != "lambda" || inner.Children[0].Tag != "<IDENTIFIER:y>" {
		t.Fatalf("expected inner lambda over y, got %+v", inner)
	}
}

func TestTransformLambdaFlattensMultipleParams(t *testing.T) {
	// lambda(x, y, body) => lambda(x, lambda(y, body))
	n := ast.New("lambda", 0)
	n.AddChild(ident("x"))
	n.AddChild(ident("y"))
	n.AddChild(ident("body"))

	if err := standardizer.Standardize(n); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(n.Children) != 2 || n.Children[0].Tag != "<IDENTIFIER:x>" {
		t.Fatalf("expected lambda/2 over x, got %+v", n)
	}
	inner := n.Children[1]
	if inner.Tag != "lambda" || inner.Children[0].Tag != "<IDENTIFIER:y>" {
		t.Fatalf("expected nested lambda over y, got %+v", inner)
	}
}

func TestTransformWithin(t *testing.T) {
	// (x1 = e1) within (x2 = e2) => x2 = gamma(lambda(x1, e2), e1)
	eq1 := ast.New("=", 0)
	eq1.AddChild(ident("x1"))
	eq1.AddChild(ident("e1"))
	eq2 := ast.New("=", 0)
	eq2.AddChild(ident("x2"))
	eq2.AddChild(ident("e2"))

	n := ast.New("within", 0)
	n.AddChild(eq1)
	n.AddChild(eq2)

	if err := standardizer.Standardize(n); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n.Tag != "=" || n.Children[0].Tag != "<IDENTIFIER:x2>" {
		t.Fatalf("expected '=' over x2, got %+v", n)
	}
	gamma := n.Children[1]
	if gamma.Tag != "gamma" || gamma.Children[0].Tag != "lambda" || gamma.Children[1].Tag != "<IDENTIFIER:e1>" {
		t.Fatalf("expected gamma(lambda, e1), got %+v", gamma)
	}
}

func TestTransformAt(t *testing.T) {
	// e1 @ n e2 => gamma(gamma(n, e1), e2)
	n := ast.New("@", 0)
	n.AddChild(ident("e1"))
	n.AddChild(ident("n"))
	n.AddChild(ident("e2"))

	if err := standardizer.Standardize(n); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n.Tag != "gamma" || n.Children[1].Tag != "<IDENTIFIER:e2>" {
		t.Fatalf("expected outer gamma(.., e2), got %+v", n)
	}
	inner := n.Children[0]
	if inner.Tag != "gamma" || inner.Children[0].Tag != "<IDENTIFIER:n>" || inner.Children[1].Tag != "<IDENTIFIER:e1>" {
		t.Fatalf("expected inner gamma(n, e1), got %+v", inner)
	}
}

func TestTransformAnd(t *testing.T) {
	// x1 = e1 and x2 = e2 => (x1,x2) = tau(e1,e2)
	eq1 := ast.New("=", 0)
	eq1.AddChild(ident("x1"))
	eq1.AddChild(ident("e1"))
	eq2 := ast.New("=", 0)
	eq2.AddChild(ident("x2"))
	eq2.AddChild(ident("e2"))

	n := ast.New("and", 0)
	n.AddChild(eq1)
	n.AddChild(eq2)

	if err := standardizer.Standardize(n); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n.Tag != "=" {
		t.Fatalf("got tag %q, want =", n.Tag)
	}
	comma, tau := n.Children[0], n.Children[1]
	if comma.Tag != "," || len(comma.Children) != 2 {
		t.Fatalf("expected comma/2, got %+v", comma)
	}
	if tau.Tag != "tau" || len(tau.Children) != 2 {
		t.Fatalf("expected tau/2, got %+v", tau)
	}
}

func TestTransformRec(t *testing.T) {
	// rec f = e => f = gamma(<Y*>, lambda(f, e))
	eq := ast.New("=", 0)
	eq.AddChild(ident("f"))
	eq.AddChild(ident("e"))
	n := ast.New("rec", 0)
	n.AddChild(eq)

	if err := standardizer.Standardize(n); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n.Tag != "=" || n.Children[0].Tag != "<IDENTIFIER:f>" {
		t.Fatalf("expected '=' over f, got %+v", n)
	}
	gamma := n.Children[1]
	if gamma.Tag != "gamma" || gamma.Children[0].Tag != "<Y*>" {
		t.Fatalf("expected gamma(<Y*>, ..), got %+v", gamma)
	}
	lam := gamma.Children[1]
	if lam.Tag != "lambda" || lam.Children[0].Tag != "<IDENTIFIER:f>" {
		t.Fatalf("expected lambda(f, e), got %+v", lam)
	}
}

func TestStandardizeIsIdempotent(t *testing.T) {
	eq := ast.New("=", 0)
	eq.AddChild(ident("x"))
	eq.AddChild(ast.New("<INTEGER:5>", 0))
	n := ast.New("let", 0)
	n.AddChild(eq)
	n.AddChild(ident("x"))

	if err := standardizer.Standardize(n); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	before := ast.Print(n)
	if err := standardizer.Standardize(n); err != nil {
		t.Fatalf("unexpected error on second pass: %s", err)
	}
	if after := ast.Print(n); before != after {
		t.Fatalf("standardize is not idempotent:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestTransformLetRejectsMissingEquals(t *testing.T) {
	n := ast.New("let", 0)
	n.AddChild(ident("not-an-equals"))
	n.AddChild(ident("body"))

	if err := standardizer.Standardize(n); err == nil {
		t.Fatalf("expected a MalformedTree error, got none")
	}
}

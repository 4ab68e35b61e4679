package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fernandonpa/cs3513-rpal/pkg/parser"
	"github.com/fernandonpa/cs3513-rpal/pkg/rerr"
)

func TestParseSimpleLet(t *testing.T) {
	p := parser.NewParser(strings.NewReader("let x = 5 in x + 3"))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tree.Tag != "let" || len(tree.Children) != 2 {
		t.Fatalf("got tag %q/%d children, want let/2", tree.Tag, len(tree.Children))
	}
	eq := tree.Children[0]
	if eq.Tag != "=" || eq.Children[0].Tag != "<IDENTIFIER:x>" || eq.Children[1].Tag != "<INTEGER:5>" {
		t.Fatalf("unexpected Def shape: %+v", eq)
	}
	body := tree.Children[1]
	if body.Tag != "+" || body.Children[0].Tag != "<IDENTIFIER:x>" || body.Children[1].Tag != "<INTEGER:3>" {
		t.Fatalf("unexpected body shape: %+v", body)
	}
}

func TestParseLambda(t *testing.T) {
	p := parser.NewParser(strings.NewReader("fn x y . x + y"))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tree.Tag != "lambda" || len(tree.Children) != 3 {
		t.Fatalf("got tag %q/%d children, want lambda/3 (two params + body)", tree.Tag, len(tree.Children))
	}
	if tree.Children[0].Tag != "<IDENTIFIER:x>" || tree.Children[1].Tag != "<IDENTIFIER:y>" {
		t.Fatalf("unexpected formal parameters: %+v / %+v", tree.Children[0], tree.Children[1])
	}
}

func TestParseConditional(t *testing.T) {
	p := parser.NewParser(strings.NewReader("x eq 1 -> 2 | 3"))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tree.Tag != "->" || len(tree.Children) != 3 {
		t.Fatalf("got tag %q/%d children, want ->/3", tree.Tag, len(tree.Children))
	}
	cond := tree.Children[0]
	if cond.Tag != "eq" {
		t.Fatalf("expected condition tagged eq, got %q", cond.Tag)
	}
}

func TestParseTuple(t *testing.T) {
	p := parser.NewParser(strings.NewReader("(1, 'two', true)"))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tree.Tag != "tau" || len(tree.Children) != 3 {
		t.Fatalf("got tag %q/%d children, want tau/3", tree.Tag, len(tree.Children))
	}
	if tree.Children[0].Tag != "<INTEGER:1>" {
		t.Fatalf("unexpected first element: %+v", tree.Children[0])
	}
	if tree.Children[1].Tag != "<STRING:two>" {
		t.Fatalf("unexpected second element: %+v", tree.Children[1])
	}
	if tree.Children[2].Tag != "<TRUE_VALUE:true>" {
		t.Fatalf("unexpected third element: %+v", tree.Children[2])
	}
}

func TestParseRecWhere(t *testing.T) {
	p := parser.NewParser(strings.NewReader("Psum(T,N) where rec Psum(T,N) = N"))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tree.Tag != "where" || len(tree.Children) != 2 {
		t.Fatalf("got tag %q/%d children, want where/2", tree.Tag, len(tree.Children))
	}
	def := tree.Children[1]
	if def.Tag != "rec" {
		t.Fatalf("expected the definition to be wrapped in 'rec', got %q", def.Tag)
	}
}

func TestParseAndChain(t *testing.T) {
	p := parser.NewParser(strings.NewReader("let x = 1 and y = 2 in x + y"))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	def := tree.Children[0]
	if def.Tag != "and" || len(def.Children) != 2 {
		t.Fatalf("got tag %q/%d children, want and/2", def.Tag, len(def.Children))
	}
}

func TestParseAtOperator(t *testing.T) {
	p := parser.NewParser(strings.NewReader("s @ Stem 't'"))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tree.Tag != "@" || len(tree.Children) != 3 {
		t.Fatalf("got tag %q/%d children, want @/3", tree.Tag, len(tree.Children))
	}
	if tree.Children[1].Tag != "<IDENTIFIER:Stem>" {
		t.Fatalf("expected the infix function to be <IDENTIFIER:Stem>, got %q", tree.Children[1].Tag)
	}
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2 => 2 ** (3 ** 2), i.e. outer node's right child is itself "**"
	p := parser.NewParser(strings.NewReader("2 ** 3 ** 2"))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tree.Tag != "**" {
		t.Fatalf("got tag %q, want **", tree.Tag)
	}
	if tree.Children[1].Tag != "**" {
		t.Fatalf("expected right-associative nesting, got right child tag %q", tree.Children[1].Tag)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	p := parser.NewParser(strings.NewReader("let let let"))
	_, err := p.Parse()
	if err == nil {
		t.Fatalf("expected a parse error for malformed input, got none")
	}
	var parseErr *rerr.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a *rerr.ParseError, got %T: %s", err, err)
	}
}

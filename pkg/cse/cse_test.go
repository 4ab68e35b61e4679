package cse_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fernandonpa/cs3513-rpal/pkg/cse"
	"github.com/fernandonpa/cs3513-rpal/pkg/parser"
	"github.com/fernandonpa/cs3513-rpal/pkg/standardizer"
)

// run lexes, parses, standardizes and executes 'source', returning the
// formatted final value. Mirrors the full pipeline cmd/rpal drives.
func run(t *testing.T, source string) string {
	t.Helper()
	p := parser.NewParser(bytes.NewReader([]byte(source)))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	if err := standardizer.Standardize(tree); err != nil {
		t.Fatalf("standardize error: %s", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	result, err := cse.Evaluate(ctx, tree)
	if err != nil {
		t.Fatalf("execution error: %s", err)
	}
	return cse.Format(result)
}

// TestEndToEndScenarios exercises spec.md §8's end-to-end scenario table.
func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name, source, want string
	}{
		{"simple let", "let x = 5 in x + 3", "8"},
		{"rec factorial", "let rec F n = n eq 0 -> 1 | n * F(n-1) in F 5", "120"},
		{
			"where + rec + tuple index",
			"let Sum(A) = Psum(A, Order A) where rec Psum(T,N) = N eq 0 -> 0 | Psum(T,N-1) + T N in Sum(1,2,3,4,5)",
			"15",
		},
		{
			"string recursion with Conc/Stem/Stern",
			"let rec rev s = s eq '' -> '' | Conc (rev (Stern s)) (Stem s) in rev 'abc'",
			"cba",
		},
		{"tuple Order", "let t = (1, 'two', true) in Order t", "3"},
		{"aug non-mutating", "(1,2,3) aug 4", "(1, 2, 3, 4)"},
		{"aug nests a tuple-typed right operand", "(1,2) aug (3,4)", "(1, 2, (3, 4))"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := run(t, tc.source)
			if got != tc.want {
				t.Fatalf("source %q: got %q, want %q", tc.source, got, tc.want)
			}
		})
	}
}

func TestArithmeticAndComparisons(t *testing.T) {
	cases := map[string]string{
		"2 + 3 * 4":      "14",
		"(2 + 3) * 4":    "20",
		"2 ** 10":        "1024",
		"7 / 2":          "3",
		"not (3 gr 5)":   "true",
		"3 ls 5":         "true",
		"3 eq 3":         "true",
		"3 ne 3":         "false",
		"true & false":   "false",
		"true or false":  "true",
		"-5 + 2":         "-3",
	}
	for source, want := range cases {
		t.Run(source, func(t *testing.T) {
			got := run(t, source)
			if got != want {
				t.Fatalf("source %q: got %q, want %q", source, got, want)
			}
		})
	}
}

func TestTypePredicatesAndBuiltins(t *testing.T) {
	cases := map[string]string{
		"Isinteger 3":         "true",
		"Isstring 'a'":        "true",
		"Istuple (1,2)":       "true",
		"Isdummy dummy":       "true",
		"Istruthvalue true":   "true",
		"Null nil":            "true",
		"Null (1,2)":          "false",
		"Itos 42":             "42",
		"Stem 'hello'":        "h",
		"Stern 'hello'":       "ello",
		"Conc 'foo' 'bar'":    "foobar",
	}
	for source, want := range cases {
		t.Run(source, func(t *testing.T) {
			got := run(t, source)
			if got != want {
				t.Fatalf("source %q: got %q, want %q", source, got, want)
			}
		})
	}
}

func TestConditionalBranchesExecuteOnce(t *testing.T) {
	got := run(t, "1 eq 1 -> 'then' | 'else'")
	if got != "then" {
		t.Fatalf("got %q, want %q", got, "then")
	}
	got = run(t, "1 eq 2 -> 'then' | 'else'")
	if got != "else" {
		t.Fatalf("got %q, want %q", got, "else")
	}
}

func TestTupleIndexOutOfBounds(t *testing.T) {
	p := parser.NewParser(bytes.NewReader([]byte("let t = (1,2,3) in t 5")))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	if err := standardizer.Standardize(tree); err != nil {
		t.Fatalf("standardize error: %s", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	if _, err := cse.Evaluate(ctx, tree); err == nil {
		t.Fatalf("expected an IndexOutOfBounds error, got none")
	}
}

func TestUnboundIdentifierApplied(t *testing.T) {
	p := parser.NewParser(bytes.NewReader([]byte("ThisIsNotABuiltin 1")))
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	if err := standardizer.Standardize(tree); err != nil {
		t.Fatalf("standardize error: %s", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	if _, err := cse.Evaluate(ctx, tree); err == nil {
		t.Fatalf("expected an UnboundIdentifier error, got none")
	}
}

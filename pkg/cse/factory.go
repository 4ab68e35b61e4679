package cse

import (
	"strconv"
	"strings"

	"github.com/fernandonpa/cs3513-rpal/pkg/ast"
	"github.com/fernandonpa/cs3513-rpal/pkg/rerr"
)

// Factory flattens a standardized tree into control structures: a tree of
// numbered Delta segments, each holding the pre-order prefix symbol stream
// for one subtree. Grounded on
// _examples/original_source/src/cse_machine/factory.py
// (CSEMachineFactory), with the Lambda/Delta counters (i, j) kept as
// Factory fields in place of the reference's instance attributes.
type Factory struct {
	lambdaIndex int
	deltaIndex  int
}

// NewFactory returns a Factory ready to build the outermost (index 0)
// Delta; lambda indices start at 1, matching the reference numbering.
func NewFactory() *Factory {
	return &Factory{lambdaIndex: 1, deltaIndex: 0}
}

// Build flattens a fully standardized tree into its root control structure.
func (f *Factory) Build(root *ast.Node) (*DeltaSym, error) {
	return f.delta(root)
}

func (f *Factory) delta(n *ast.Node) (*DeltaSym, error) {
	d := &DeltaSym{Index: f.deltaIndex}
	f.deltaIndex++
	symbols, err := f.preorder(n)
	if err != nil {
		return nil, err
	}
	d.Symbols = symbols
	return d, nil
}

// preorder returns the flattened pre-order prefix symbol stream for n: the
// node's own symbol followed, left to right, by each child's own stream.
// "lambda" and "->" get dedicated handling since their children are not
// flattened inline: a lambda's body becomes its own Delta, and a
// conditional's branches become two Deltas guarded by a Beta marker.
func (f *Factory) preorder(n *ast.Node) ([]Symbol, error) {
	switch n.Tag {
	case "lambda":
		lam, err := f.lambda(n)
		if err != nil {
			return nil, err
		}
		return []Symbol{lam}, nil

	case "->":
		if len(n.Children) != 3 {
			return nil, &rerr.MalformedTree{Rule: "->", Message: "expected 3 children (cond, then, else)"}
		}
		thenDelta, err := f.delta(n.Children[1])
		if err != nil {
			return nil, err
		}
		elseDelta, err := f.delta(n.Children[2])
		if err != nil {
			return nil, err
		}
		condSymbols, err := f.preorder(n.Children[0])
		if err != nil {
			return nil, err
		}
		out := []Symbol{thenDelta, elseDelta, &BetaSym{}}
		out = append(out, condSymbols...)
		return out, nil

	default:
		sym, err := f.symbol(n)
		if err != nil {
			return nil, err
		}
		out := []Symbol{sym}
		for _, child := range n.Children {
			childSymbols, err := f.preorder(child)
			if err != nil {
				return nil, err
			}
			out = append(out, childSymbols...)
		}
		return out, nil
	}
}

// lambda builds a LambdaSym from a standardized "lambda(X, E)" node: X is
// either a plain identifier or a comma-list produced by transformAnd's
// tuple-parameter shape.
func (f *Factory) lambda(n *ast.Node) (*LambdaSym, error) {
	if len(n.Children) != 2 {
		return nil, &rerr.MalformedTree{Rule: "lambda", Message: "expected exactly 2 children"}
	}
	idx := f.lambdaIndex
	f.lambdaIndex++

	body, err := f.delta(n.Children[1])
	if err != nil {
		return nil, err
	}

	paramNode := n.Children[0]
	var params []string
	if paramNode.Tag == "," {
		for _, c := range paramNode.Children {
			name, err := identifierName(c.Tag)
			if err != nil {
				return nil, err
			}
			params = append(params, name)
		}
	} else {
		name, err := identifierName(paramNode.Tag)
		if err != nil {
			return nil, err
		}
		params = append(params, name)
	}
	return &LambdaSym{Index: idx, Params: params, Body: body}, nil
}

// binaryOps and unaryOps list the operator tags that become Bop/Uop
// symbols; everything else is either a literal or a structural marker.
var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "**": true, "&": true,
	"or": true, "aug": true,
	"gr": true, "ge": true, "ls": true, "le": true, "eq": true, "ne": true,
}

var unaryOps = map[string]bool{"not": true, "neg": true}

func (f *Factory) symbol(n *ast.Node) (Symbol, error) {
	switch {
	case strings.HasPrefix(n.Tag, "<IDENTIFIER:"):
		name, err := identifierName(n.Tag)
		if err != nil {
			return nil, err
		}
		return &IdentSym{Name: name}, nil

	case strings.HasPrefix(n.Tag, "<INTEGER:"):
		raw := strings.TrimSuffix(strings.TrimPrefix(n.Tag, "<INTEGER:"), ">")
		val, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &rerr.MalformedTree{Rule: "<INTEGER>", Message: "not a valid integer literal: " + raw}
		}
		return &IntSym{Value: val}, nil

	case strings.HasPrefix(n.Tag, "<STRING:"):
		raw := strings.TrimSuffix(strings.TrimPrefix(n.Tag, "<STRING:"), ">")
		return &StrSym{Value: raw}, nil

	case strings.HasPrefix(n.Tag, "<TRUE_VALUE:"):
		raw := strings.TrimSuffix(strings.TrimPrefix(n.Tag, "<TRUE_VALUE:"), ">")
		return &BoolSym{Value: raw == "true"}, nil

	case n.Tag == "<NIL>":
		return &NilTupleSym{}, nil

	case n.Tag == "<dummy>":
		return &DummySym{}, nil

	case n.Tag == "<Y*>":
		return YstarSym{}, nil

	case n.Tag == "gamma":
		return &GammaSym{}, nil

	case n.Tag == "tau":
		return &TauSym{Size: len(n.Children)}, nil

	case unaryOps[n.Tag]:
		return &UnarySym{Op: n.Tag}, nil

	case binaryOps[n.Tag]:
		return &BinarySym{Op: n.Tag}, nil

	default:
		return nil, &rerr.MalformedTree{Rule: n.Tag, Message: "unexpected node in a standardized tree"}
	}
}

func identifierName(tag string) (string, error) {
	if !strings.HasPrefix(tag, "<IDENTIFIER:") || !strings.HasSuffix(tag, ">") {
		return "", &rerr.MalformedTree{Rule: tag, Message: "expected an <IDENTIFIER:...> leaf"}
	}
	return strings.TrimSuffix(strings.TrimPrefix(tag, "<IDENTIFIER:"), ">"), nil
}

// Package parser turns a token stream into the raw AST that the
// standardizer consumes: the external collaborator spec.md describes only
// by its node vocabulary (section 4.1/4.2). Grammar and node shapes are
// grounded on the reference grammar embedded in
// _examples/original_source/src/lexer/tokenizer.py and the standard RPAL
// BNF, built with the same goparsec combinator style as the teacher's
// pkg/vm and pkg/jack parsers (_examples/its-hmny-nand2tetris/code/pkg/vm
// and .../pkg/jack): package-level And/OrdChoice/Kleene/Maybe combinators,
// a Parser struct with FromSource/FromAST, here generalized to RPAL's
// mutually-recursive E/D grammar via a lazy-parser indirection.
package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fernandonpa/cs3513-rpal/pkg/ast"
	"github.com/fernandonpa/cs3513-rpal/pkg/lexer"
	"github.com/fernandonpa/cs3513-rpal/pkg/rerr"
	pc "github.com/prataprc/goparsec"
)

// Parser reads RPAL source text and produces the raw (pre-standardization)
// syntax tree.
type Parser struct{ reader io.Reader }

// NewParser wraps 'r' in a Parser. 'r' must be valid and readable.
func NewParser(r io.Reader) Parser { return Parser{reader: r} }

// Parse runs both parsing phases: source bytes to goparsec AST, then
// goparsec AST to the internal *ast.Node tree.
func (p *Parser) Parse() (*ast.Node, error) {
	content, err := io.ReadAll(p.reader)
	if err != nil {
		return nil, fmt.Errorf("cannot read from 'io.Reader': %s", err)
	}

	root, success := p.FromSource(content)
	if !success {
		return nil, &rerr.ParseError{Message: "failed to parse AST from input content"}
	}

	return p.FromAST(root)
}

// FromSource scans the textual input into a traversable goparsec AST.
func (p *Parser) FromSource(source []byte) (pc.Queryable, bool) {
	if os.Getenv("PARSEC_DEBUG") != "" {
		treeAST.SetDebug()
	}

	root, matched := treeAST.Parsewith(pProgram, pc.NewScanner(source))

	if os.Getenv("PRINT_AST") != "" {
		treeAST.Prettyprint()
	}
	return root, matched
}

// FromAST walks the goparsec tree into the internal *ast.Node shape the
// standardizer and control-structure factory operate on.
func (p *Parser) FromAST(root pc.Queryable) (*ast.Node, error) {
	if root.GetName() != "program" {
		return nil, &rerr.ParseError{Message: fmt.Sprintf("expected node 'program', found %s", root.GetName())}
	}
	if len(root.GetChildren()) == 0 {
		return nil, &rerr.ParseError{Message: "empty program"}
	}
	return convertExpr(root.GetChildren()[0])
}

// ----------------------------------------------------------------------------
// Expression family

func convertExpr(node pc.Queryable) (*ast.Node, error) {
	switch node.GetName() {
	case "let_expr":
		return convertLet(node)
	case "fn_expr":
		return convertFn(node)
	case "where_expr":
		return convertWhere(node)
	default:
		return nil, &rerr.ParseError{Message: fmt.Sprintf("parser: unexpected expression node %q", node.GetName())}
	}
}

// let_expr: [LET, Def, IN, E]
func convertLet(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	if len(children) != 4 {
		return nil, &rerr.ParseError{Message: fmt.Sprintf("parser: malformed let_expr (got %d children)", len(children))}
	}
	def, err := convertDef(children[1])
	if err != nil {
		return nil, err
	}
	body, err := convertExpr(children[3])
	if err != nil {
		return nil, err
	}
	n := ast.New("let", 0)
	n.AddChild(def)
	n.AddChild(body)
	return n, nil
}

// fn_expr: [FN, formals, DOT, E] where formals is the "formals" node built
// by pVbPlus, itself [Vb, formals_tail].
func convertFn(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	if len(children) != 4 {
		return nil, &rerr.ParseError{Message: fmt.Sprintf("parser: malformed fn_expr (got %d children)", len(children))}
	}
	formalsNode := children[1]
	formalChildren := formalsNode.GetChildren()

	n := ast.New("lambda", 0)
	firstVb, err := convertVb(formalChildren[0])
	if err != nil {
		return nil, err
	}
	n.AddChild(firstVb)
	for _, f := range formalChildren[1].GetChildren() {
		v, err := convertVb(f)
		if err != nil {
			return nil, err
		}
		n.AddChild(v)
	}
	bodyNode, err := convertExpr(children[3])
	if err != nil {
		return nil, err
	}
	n.AddChild(bodyNode)
	return n, nil
}

func convertWhere(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	tExpr, err := convertTupleExpr(children[0])
	if err != nil {
		return nil, err
	}
	if len(children) == 1 {
		return tExpr, nil
	}

	// where_tail: [WHERE token, Def]
	tail := children[1].GetChildren()
	def, err := convertDef(tail[1])
	if err != nil {
		return nil, err
	}
	n := ast.New("where", 0)
	n.AddChild(tExpr)
	n.AddChild(def)
	return n, nil
}

// T: tuple_expr
func convertTupleExpr(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	first, err := convertAugExpr(children[0])
	if err != nil {
		return nil, err
	}
	if len(children) == 1 || len(children[1].GetChildren()) == 0 {
		return first, nil
	}

	n := ast.New("tau", 0)
	n.AddChild(first)
	for _, item := range children[1].GetChildren() { // tuple_tail -> []tuple_item
		itemChildren := item.GetChildren() // [COMMA, Ta]
		elem, err := convertAugExpr(itemChildren[1])
		if err != nil {
			return nil, err
		}
		n.AddChild(elem)
	}
	return n, nil
}

// Ta: aug_expr
func convertAugExpr(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	left, err := convertCondExpr(children[0])
	if err != nil {
		return nil, err
	}
	if len(children) == 1 {
		return left, nil
	}
	for _, item := range children[1].GetChildren() { // aug_tail -> []aug_item [AUG, Tc]
		itemChildren := item.GetChildren()
		right, err := convertCondExpr(itemChildren[1])
		if err != nil {
			return nil, err
		}
		parent := ast.New("aug", 0)
		parent.AddChild(left)
		parent.AddChild(right)
		left = parent
	}
	return left, nil
}

// Tc: cond_expr, B -> Tc | Tc
func convertCondExpr(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	cond, err := convertOrExpr(children[0])
	if err != nil {
		return nil, err
	}
	if len(children) == 1 || len(children[1].GetChildren()) == 0 {
		return cond, nil
	}

	tail := children[1].GetChildren() // cond_tail -> [ARROW, E, BAR, E]
	thenExpr, err := convertExpr(tail[1])
	if err != nil {
		return nil, err
	}
	elseExpr, err := convertExpr(tail[3])
	if err != nil {
		return nil, err
	}
	n := ast.New("->", 0)
	n.AddChild(cond)
	n.AddChild(thenExpr)
	n.AddChild(elseExpr)
	return n, nil
}

// B: or_expr
func convertOrExpr(node pc.Queryable) (*ast.Node, error) {
	return foldLeftTail(node, "or", convertAndExpr, 1)
}

// Bt: amp_expr (RPAL "&")
func convertAndExpr(node pc.Queryable) (*ast.Node, error) {
	return foldLeftTail(node, "&", convertNotExpr, 1)
}

// Bs: not_expr
func convertNotExpr(node pc.Queryable) (*ast.Node, error) {
	if node.GetName() == "not_item" {
		operand, err := convertCmpExpr(node.GetChildren()[1])
		if err != nil {
			return nil, err
		}
		n := ast.New("not", 0)
		n.AddChild(operand)
		return n, nil
	}
	return convertCmpExpr(node)
}

// Bp: cmp_expr
func convertCmpExpr(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	left, err := convertAddExpr(children[0])
	if err != nil {
		return nil, err
	}
	if len(children) == 1 || len(children[1].GetChildren()) == 0 {
		return left, nil
	}

	tail := children[1].GetChildren() // cmp_tail -> [cmp_op, A]
	opTag := strings.ToLower(tail[0].GetName())
	right, err := convertAddExpr(tail[1])
	if err != nil {
		return nil, err
	}
	n := ast.New(opTag, 0)
	n.AddChild(left)
	n.AddChild(right)
	return n, nil
}

// A: add_expr, with optional leading unary sign.
func convertAddExpr(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren() // [sign(Maybe), mul_expr, add_tail]
	first, err := convertMulExpr(children[1])
	if err != nil {
		return nil, err
	}
	if sign := children[0]; len(sign.GetChildren()) > 0 && sign.GetChildren()[0].GetName() == "MINUS" {
		neg := ast.New("neg", 0)
		neg.AddChild(first)
		first = neg
	}

	left := first
	for _, item := range children[2].GetChildren() { // add_tail -> []add_item [add_op, mul_expr]
		itemChildren := item.GetChildren()
		right, err := convertMulExpr(itemChildren[1])
		if err != nil {
			return nil, err
		}
		op := "+"
		if itemChildren[0].GetName() == "MINUS" {
			op = "-"
		}
		parent := ast.New(op, 0)
		parent.AddChild(left)
		parent.AddChild(right)
		left = parent
	}
	return left, nil
}

// At: mul_expr
func convertMulExpr(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	left, err := convertPowExpr(children[0])
	if err != nil {
		return nil, err
	}
	for _, item := range children[1].GetChildren() {
		itemChildren := item.GetChildren()
		right, err := convertPowExpr(itemChildren[1])
		if err != nil {
			return nil, err
		}
		op := "*"
		if itemChildren[0].GetName() == "SLASH" {
			op = "/"
		}
		parent := ast.New(op, 0)
		parent.AddChild(left)
		parent.AddChild(right)
		left = parent
	}
	return left, nil
}

// Af: pow_expr, right-associative "**"
func convertPowExpr(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	base, err := convertAtExpr(children[0])
	if err != nil {
		return nil, err
	}
	tail := children[1].GetChildren()
	if len(tail) == 0 {
		return base, nil
	}

	operands := []*ast.Node{base}
	for _, item := range tail {
		operand, err := convertAtExpr(item.GetChildren()[1])
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	result := operands[len(operands)-1]
	for i := len(operands) - 2; i >= 0; i-- {
		parent := ast.New("**", 0)
		parent.AddChild(operands[i])
		parent.AddChild(result)
		result = parent
	}
	return result, nil
}

// Ap: at_expr, RPAL's infix "@" function-application operator. Left as the
// syntactic "@" node (E1, N, E2): the '@' standardizer rule is the one that
// rewrites it into gamma(gamma(N, E1), E2), not the parser.
func convertAtExpr(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	left, err := convertApplyChain(children[0])
	if err != nil {
		return nil, err
	}
	for _, item := range children[1].GetChildren() { // at_tail -> []at_item [AT, IDENT, apply_chain]
		itemChildren := item.GetChildren()
		fnIdent := ast.New(fmt.Sprintf("<IDENTIFIER:%s>", itemChildren[1].GetValue()), 0)
		right, err := convertApplyChain(itemChildren[2])
		if err != nil {
			return nil, err
		}
		at := ast.New("@", 0)
		at.AddChild(left)
		at.AddChild(fnIdent)
		at.AddChild(right)
		left = at
	}
	return left, nil
}

// R: apply_chain, a run of Rn in a row folds left into nested 'gamma' nodes.
func convertApplyChain(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	left, err := convertRn(children[0])
	if err != nil {
		return nil, err
	}
	for _, rn := range children[1].GetChildren() {
		right, err := convertRn(rn)
		if err != nil {
			return nil, err
		}
		parent := ast.New("gamma", 0)
		parent.AddChild(left)
		parent.AddChild(right)
		left = parent
	}
	return left, nil
}

// Rn: atoms
func convertRn(node pc.Queryable) (*ast.Node, error) {
	switch node.GetName() {
	case "IDENT":
		return ast.New(fmt.Sprintf("<IDENTIFIER:%s>", node.GetValue()), 0), nil
	case "INTEGER":
		return ast.New(fmt.Sprintf("<INTEGER:%s>", node.GetValue()), 0), nil
	case "STRING":
		return ast.New(fmt.Sprintf("<STRING:%s>", lexer.Unquote(node.GetValue())), 0), nil
	case "TRUE":
		return ast.New("<TRUE_VALUE:true>", 0), nil
	case "FALSE":
		return ast.New("<TRUE_VALUE:false>", 0), nil
	case "NIL":
		return ast.New("<NIL>", 0), nil
	case "DUMMY":
		return ast.New("<dummy>", 0), nil
	case "paren_expr":
		return convertExpr(node.GetChildren()[1])
	default:
		return nil, &rerr.ParseError{Message: fmt.Sprintf("parser: unexpected atom node %q", node.GetName())}
	}
}

// foldLeftTail folds a "head, Kleene(tail)" shaped node into a left nested
// binary chain tagged 'opTag', used for B's "or" and Bt's "&" (both have a
// single operator spelling, unlike the comparison/arithmetic tiers).
func foldLeftTail(node pc.Queryable, opTag string, convertOperand func(pc.Queryable) (*ast.Node, error), operandIndexInItem int) (*ast.Node, error) {
	children := node.GetChildren()
	left, err := convertOperand(children[0])
	if err != nil {
		return nil, err
	}
	for _, item := range children[1].GetChildren() {
		right, err := convertOperand(item.GetChildren()[operandIndexInItem])
		if err != nil {
			return nil, err
		}
		parent := ast.New(opTag, 0)
		parent.AddChild(left)
		parent.AddChild(right)
		left = parent
	}
	return left, nil
}

// ----------------------------------------------------------------------------
// Formal parameters

func convertVb(node pc.Queryable) (*ast.Node, error) {
	switch node.GetName() {
	case "IDENT":
		return ast.New(fmt.Sprintf("<IDENTIFIER:%s>", node.GetValue()), 0), nil
	case "tuple_param":
		return convertVl(node.GetChildren()[1])
	default:
		return nil, &rerr.ParseError{Message: fmt.Sprintf("parser: unexpected formal parameter node %q", node.GetName())}
	}
}

func convertVl(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren() // [IDENT, var_list_tail]
	idents := []*ast.Node{ast.New(fmt.Sprintf("<IDENTIFIER:%s>", children[0].GetValue()), 0)}
	for _, item := range children[1].GetChildren() {
		idents = append(idents, ast.New(fmt.Sprintf("<IDENTIFIER:%s>", item.GetChildren()[1].GetValue()), 0))
	}
	if len(idents) == 1 {
		return idents[0], nil
	}
	n := ast.New(",", 0)
	for _, id := range idents {
		n.AddChild(id)
	}
	return n, nil
}

// ----------------------------------------------------------------------------
// Definition family (D)

func convertDef(node pc.Queryable) (*ast.Node, error) {
	if node.GetName() != "within_def" {
		return nil, &rerr.ParseError{Message: fmt.Sprintf("parser: expected node 'within_def', found %s", node.GetName())}
	}
	children := node.GetChildren()
	left, err := convertAndChain(children[0])
	if err != nil {
		return nil, err
	}
	if len(children) == 1 || len(children[1].GetChildren()) == 0 {
		return left, nil
	}

	tail := children[1].GetChildren() // within_tail -> [WITHIN, Def]
	right, err := convertDef(tail[1])
	if err != nil {
		return nil, err
	}
	n := ast.New("within", 0)
	n.AddChild(left)
	n.AddChild(right)
	return n, nil
}

// Da: and_chain, one or more Dr joined by 'and'.
func convertAndChain(node pc.Queryable) (*ast.Node, error) {
	children := node.GetChildren()
	first, err := convertDr(children[0])
	if err != nil {
		return nil, err
	}
	tail := children[1].GetChildren()
	if len(tail) == 0 {
		return first, nil
	}

	n := ast.New("and", 0)
	n.AddChild(first)
	for _, item := range tail { // and_item -> [AND, Dr]
		dr, err := convertDr(item.GetChildren()[1])
		if err != nil {
			return nil, err
		}
		n.AddChild(dr)
	}
	return n, nil
}

func convertDr(node pc.Queryable) (*ast.Node, error) {
	if node.GetName() == "rec_def" {
		db, err := convertDb(node.GetChildren()[1])
		if err != nil {
			return nil, err
		}
		n := ast.New("rec", 0)
		n.AddChild(db)
		return n, nil
	}
	return convertDb(node)
}

func convertDb(node pc.Queryable) (*ast.Node, error) {
	switch node.GetName() {
	case "function_form":
		children := node.GetChildren() // [IDENT, formals, EQUALS, E]
		name := ast.New(fmt.Sprintf("<IDENTIFIER:%s>", children[0].GetValue()), 0)
		body, err := convertExpr(children[len(children)-1])
		if err != nil {
			return nil, err
		}
		n := ast.New("function_form", 0)
		n.AddChild(name)
		formalsNode := children[1] // "formals" -> [Vb, formals_tail]
		formalChildren := formalsNode.GetChildren()
		firstVb, err := convertVb(formalChildren[0])
		if err != nil {
			return nil, err
		}
		n.AddChild(firstVb)
		for _, f := range formalChildren[1].GetChildren() {
			vb, err := convertVb(f)
			if err != nil {
				return nil, err
			}
			n.AddChild(vb)
		}
		n.AddChild(body)
		return n, nil

	case "simple_def":
		children := node.GetChildren() // [var_list, EQUALS, E]
		vl, err := convertVl(children[0])
		if err != nil {
			return nil, err
		}
		body, err := convertExpr(children[len(children)-1])
		if err != nil {
			return nil, err
		}
		n := ast.New("=", 0)
		n.AddChild(vl)
		n.AddChild(body)
		return n, nil

	case "paren_def":
		return convertDef(node.GetChildren()[1])

	default:
		return nil, &rerr.ParseError{Message: fmt.Sprintf("parser: unexpected definition node %q", node.GetName())}
	}
}

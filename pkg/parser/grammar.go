package parser

import (
	"strings"

	pc "github.com/prataprc/goparsec"
)

// ----------------------------------------------------------------------------
// Parser Combinator(s)

// This section defines the Parser Combinator for the full RPAL grammar, in
// the same style as the teacher's pkg/vm and pkg/jack grammars: package
// level pc.Parser variables built from ast.And/ast.OrdChoice/ast.Kleene/
// pc.Maybe, bottom tokens built from pc.Atom/pc.Token.
//
// RPAL's grammar has two genuinely mutually-recursive families: expressions
// (E) embed definitions (D, via "let D in E") and definitions embed
// expressions (D, via "Db = E"); expressions also embed themselves (via
// parenthesization). goparsec builds each combinator eagerly when the
// package-level var initializer runs, so a direct two-way var reference
// would be an initialization cycle. We tie the knot with 'lazy': a stable
// wrapper Parser that only dereferences the pointed-at Parser once actual
// parsing starts, by which time init() has filled it in.
var treeAST = pc.NewAST("rpal_program", 0)

func lazy(target *pc.Parser) pc.Parser {
	return func(s pc.Scanner) (pc.ParsecNode, pc.Scanner) {
		return (*target)(s)
	}
}

var (
	pExpr pc.Parser // E,  assigned in init()
	pDef  pc.Parser // D,  assigned in init()
)

// identifier matches the reference tokenizer's identifier shape but rejects
// RPAL's reserved words, which the IDENT regex alone would also accept
// (e.g. "eq" in "x eq 1" would otherwise extend the application chain).
func identifier() pc.Parser {
	token := pc.Token(`[a-zA-Z][a-zA-Z0-9_]*`, "IDENT")
	reserved := " let in fn where within and rec aug or not gr ge ls le eq ne true false nil dummy "
	return func(s pc.Scanner) (pc.ParsecNode, pc.Scanner) {
		node, next := token(s)
		if q, ok := node.(pc.Queryable); ok && strings.Contains(reserved, " "+q.GetValue()+" ") {
			return nil, s
		}
		return node, next
	}
}

var (
	// Generic identifier, reserved words excluded.
	pIdent = identifier()

	pKwLet    = pc.Atom("let", "LET")
	pKwIn     = pc.Atom("in", "IN")
	pKwFn     = pc.Atom("fn", "FN")
	pKwWhere  = pc.Atom("where", "WHERE")
	pKwWithin = pc.Atom("within", "WITHIN")
	pKwAnd    = pc.Atom("and", "AND")
	pKwRec    = pc.Atom("rec", "REC")
	pKwAug    = pc.Atom("aug", "AUG")
	pKwOr     = pc.Atom("or", "OR")
	pKwNot    = pc.Atom("not", "NOT")
	pKwGr     = pc.Atom("gr", "GR")
	pKwGe     = pc.Atom("ge", "GE")
	pKwLs     = pc.Atom("ls", "LS")
	pKwLe     = pc.Atom("le", "LE")
	pKwEq     = pc.Atom("eq", "EQ")
	pKwNe     = pc.Atom("ne", "NE")
	pKwTrue   = pc.Atom("true", "TRUE")
	pKwFalse  = pc.Atom("false", "FALSE")
	pKwNil    = pc.Atom("nil", "NIL")
	pKwDummy  = pc.Atom("dummy", "DUMMY")

	pDot    = pc.Atom(".", "DOT")
	pComma  = pc.Atom(",", "COMMA")
	pLParen = pc.Atom("(", "LPAREN")
	pRParen = pc.Atom(")", "RPAREN")
	pEquals = pc.Atom("=", "EQUALS")
	pBar    = pc.Atom("|", "BAR")
	pArrow  = pc.Atom("->", "ARROW")
	pAt     = pc.Atom("@", "AT")

	pPlus  = pc.Atom("+", "PLUS")
	pMinus = pc.Atom("-", "MINUS")
	pStar  = pc.Atom("*", "STAR")
	pSlash = pc.Atom("/", "SLASH")
	pPow   = pc.Atom("**", "POW")
	pAmp   = pc.Atom("&", "AMP")
)

// ----------------------------------------------------------------------------
// Rn: atoms (identifiers, literals, parenthesized expressions)

var (
	pIntLit    = pc.Token(`[0-9]+`, "INTEGER")
	pStringLit = pc.Token(`'(?:\\'|[^'])*'`, "STRING")

	pParenExpr = treeAST.And("paren_expr", nil, pLParen, lazy(&pExpr), pRParen)

	pRn = treeAST.OrdChoice("rn", nil,
		pStringLit, pIntLit, pKwTrue, pKwFalse, pKwNil, pKwDummy, pParenExpr, pIdent,
	)

	// R: one or more Rn in a row, left-associative application (juxtaposition
	// is the RPAL equivalent of "gamma" function application).
	pR = treeAST.And("apply_chain", nil, pRn, treeAST.Kleene("apply_tail", nil, pRn))
)

// ----------------------------------------------------------------------------
// Ap / Af / At / A: arithmetic precedence chain

var (
	pAp = treeAST.And("at_expr", nil, pR, treeAST.Kleene("at_tail", nil, treeAST.And("at_item", nil, pAt, pIdent, pR)))

	pAf = treeAST.And("pow_expr", nil, pAp, treeAST.Kleene("pow_tail", nil, treeAST.And("pow_item", nil, pPow, pAp)))

	pAt_ = treeAST.And("mul_expr", nil, pAf,
		treeAST.Kleene("mul_tail", nil, treeAST.And("mul_item", nil, treeAST.OrdChoice("mul_op", nil, pStar, pSlash), pAf)))

	pSign = pc.Maybe(nil, treeAST.OrdChoice("sign", nil, pPlus, pMinus))

	pA = treeAST.And("add_expr", nil, pSign, pAt_,
		treeAST.Kleene("add_tail", nil, treeAST.And("add_item", nil, treeAST.OrdChoice("add_op", nil, pPlus, pMinus), pAt_)))
)

// ----------------------------------------------------------------------------
// Bp / Bs / Bt / B: boolean precedence chain

var (
	pCmpOp = treeAST.OrdChoice("cmp_op", nil, pKwGe, pKwGr, pKwLe, pKwLs, pKwEq, pKwNe)

	pBp = treeAST.And("cmp_expr", nil, pA, pc.Maybe(nil, treeAST.And("cmp_tail", nil, pCmpOp, pA)))

	pBs = treeAST.OrdChoice("not_expr", nil, treeAST.And("not_item", nil, pKwNot, pBp), pBp)

	pBt = treeAST.And("amp_expr", nil, pBs, treeAST.Kleene("amp_tail", nil, treeAST.And("amp_item", nil, pAmp, pBs)))

	pB = treeAST.And("or_expr", nil, pBt, treeAST.Kleene("or_tail", nil, treeAST.And("or_item", nil, pKwOr, pBt)))
)

// ----------------------------------------------------------------------------
// Tc / Ta / T: conditional, aug, tuple

var (
	pTc = treeAST.And("cond_expr", nil, pB,
		pc.Maybe(nil, treeAST.And("cond_tail", nil, pArrow, lazy(&pExpr), pBar, lazy(&pExpr))))

	pTa = treeAST.And("aug_expr", nil, pTc, treeAST.Kleene("aug_tail", nil, treeAST.And("aug_item", nil, pKwAug, pTc)))

	pT = treeAST.And("tuple_expr", nil, pTa, treeAST.Kleene("tuple_tail", nil, treeAST.And("tuple_item", nil, pComma, pTa)))
)

// ----------------------------------------------------------------------------
// Ew: where clause

var pEw = treeAST.And("where_expr", nil, pT, pc.Maybe(nil, treeAST.And("where_tail", nil, pKwWhere, lazy(&pDef))))

// ----------------------------------------------------------------------------
// Vb / Vl: formal parameters

var (
	pVl = treeAST.And("var_list", nil, pIdent, treeAST.Kleene("var_list_tail", nil, treeAST.And("var_list_item", nil, pComma, pIdent)))

	pVb = treeAST.OrdChoice("formal_param", nil, pIdent, treeAST.And("tuple_param", nil, pLParen, pVl, pRParen))

	// one-or-more Vb, space separated (no separator token between them).
	pVbPlus = treeAST.And("formals", nil, pVb, treeAST.Kleene("formals_tail", nil, pVb))
)

// ----------------------------------------------------------------------------
// D: definitions (mutually recursive with E)

var (
	pDbFunctionForm = treeAST.And("function_form", nil, pIdent, pVbPlus, pEquals, lazy(&pExpr))
	pDbSimple       = treeAST.And("simple_def", nil, pVl, pEquals, lazy(&pExpr))
	pDbParen        = treeAST.And("paren_def", nil, pLParen, lazy(&pDef), pRParen)

	pDb = treeAST.OrdChoice("db", nil, pDbFunctionForm, pDbSimple, pDbParen)
	pDr = treeAST.OrdChoice("dr", nil, treeAST.And("rec_def", nil, pKwRec, pDb), pDb)
	pDa = treeAST.And("and_chain", nil, pDr, treeAST.Kleene("and_tail", nil, treeAST.And("and_item", nil, pKwAnd, pDr)))
)

func initGrammar() {
	pDef = treeAST.And("within_def", nil, pDa, pc.Maybe(nil, treeAST.And("within_tail", nil, pKwWithin, lazy(&pDef))))

	pExpr = treeAST.OrdChoice("expr", nil,
		treeAST.And("let_expr", nil, pKwLet, lazy(&pDef), pKwIn, lazy(&pExpr)),
		treeAST.And("fn_expr", nil, pKwFn, pVbPlus, pDot, lazy(&pExpr)),
		pEw,
	)
}

func init() { initGrammar() }

// pProgram is the whole-input entry point: an expression followed by EOF.
var pProgram = treeAST.And("program", nil, lazy(&pExpr), pc.End())

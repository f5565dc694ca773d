package kern

import (
	"math"
	"strings"
)

// Expr = num | Neg | Sqrt | Add | Sub | Mul | Div
// Neg  = '-' Expr
// Sqrt = 'sqrt' Expr
// Add  = Expr '+' Expr
// Sub  = Expr '-' Expr
// Mul  = Expr '*' Expr
// Div  = Expr '/' Expr
//
// There is no fixed precedence ladder. An operator binds as tightly as the
// whitespace around it is narrow, and the usual algebraic ranking only breaks
// ties between operators with equal spacing.

// Expr is a parsed expression that can be rendered with String or evaluated
// with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression. The expression must span the entire input;
// input remaining after a complete expression is an error. Errors satisfy
// InputError.
func Parse(src string) (*Expr, error) {
	scan := lex(src)
	n, err := parseexpr(scan, exprprec)
	if err != nil {
		return nil, err
	}
	tok, err := scan.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenEOF {
		return nil, &TrailingTokenError{Col: tok.pos, Token: tok.text}
	}
	return &Expr{n: n}, nil
}

// String creates the canonical representation of the parsed expression, with
// round brackets grouping every operation so that the chosen binding is
// visible.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

// parseexpr parses a complete subexpression: one term followed by every
// operation that binds at least as tightly as until.
func parseexpr(scan *lexer, until precedence) (*node, error) {
	lhs, err := parselhs(scan)
	if err != nil {
		return nil, err
	}
	return parseterm(scan, lhs, until)
}

// parselhs parses the leading term of a subexpression: a number, or a unary
// operation and its argument.
func parselhs(scan *lexer) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, val: tok.num}, nil
	case tokenSym:
		if tok.text != "-" {
			return nil, &TermError{Col: tok.pos, Token: tok.text}
		}
		return parseunary(scan, nodeNeg)
	case tokenWord:
		if tok.text != "sqrt" {
			return nil, &TermError{Col: tok.pos, Token: tok.text}
		}
		return parseunary(scan, nodeSqrt)
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	default:
		panic("kern: unknown token: " + tok.String())
	}
}

// parseunary parses the argument of a unary operator that has just been
// consumed. The whitespace between the operator and the start of its argument
// sets the floor: the argument absorbs every following operation that binds
// at least that tightly, so "sqrt 1 + 1" takes the square root of 1 while
// "sqrt  1 + 1" takes the square root of the sum.
func parseunary(scan *lexer, kind nodeKind) (*node, error) {
	next, err := scan.peek()
	if err != nil {
		return nil, err
	}
	if next.kind == tokenEOF {
		return nil, &EmptyExpressionError{Col: next.pos}
	}
	until := precedence{spacing: next.spacing, algebraic: 0}
	arg, err := parseexpr(scan, until)
	if err != nil {
		return nil, err
	}
	return &node{kind: kind, left: arg}, nil
}

// parseterm parses binary operations onto an already parsed lhs while they
// bind at least as tightly as until. If the lhs is not followed by an
// operator, it is returned unchanged.
func parseterm(scan *lexer, lhs *node, until precedence) (*node, error) {
	for {
		cur, err := peekop(scan)
		if err != nil {
			return nil, err
		}
		if cur.op == nodeNone || !cur.prec.atLeast(until) {
			return lhs, nil
		}
		scan.must()

		// The spacing between the operator and its right operand is the
		// precedence a later operator has to beat to steal the operand.
		next, err := scan.peek()
		if err != nil {
			return nil, err
		}
		if next.kind == tokenEOF {
			return nil, &EmptyExpressionError{Col: next.pos}
		}
		rhsprec := precedence{spacing: next.spacing, algebraic: cur.prec.algebraic}
		rhs, err := parselhs(scan)
		if err != nil {
			return nil, err
		}
		for {
			sub, err := peekop(scan)
			if err != nil {
				return nil, err
			}
			if sub.op == nodeNone || !sub.prec.tighter(rhsprec) {
				break
			}
			rhs, err = parseterm(scan, rhs, rhsprec)
			if err != nil {
				return nil, err
			}
		}
		lhs = &node{kind: cur.op, left: lhs, right: rhs}
	}
}

// precedence ranks how tightly an operator binds its operands, on two axes.
// Spacing dominates: an operator hugging its operands binds before one with
// air around it, whatever their algebraic classes. The algebraic class breaks
// ties between operators with equal spacing. On both axes, lower values bind
// more tightly.
type precedence struct {
	spacing   int
	algebraic int
}

// tighter reports whether p binds more tightly than q.
func (p precedence) tighter(q precedence) bool {
	if p.spacing != q.spacing {
		return p.spacing < q.spacing
	}
	return p.algebraic < q.algebraic
}

// atLeast reports whether p binds at least as tightly as q.
func (p precedence) atLeast(q precedence) bool {
	return !q.tighter(p)
}

// exprprec is the loosest precedence. Every operator binds at least this
// tightly, so parsing with it consumes a whole expression.
var exprprec = precedence{spacing: math.MaxInt, algebraic: math.MaxInt}

// operator is a binary operator candidate peeked from the input.
type operator struct {
	prec precedence
	op   nodeKind
}

// peekop reads the next token without consuming it and interprets it as a
// binary operator. If the next token is not an operator symbol, the result
// has an op of nodeNone.
func peekop(scan *lexer) (operator, error) {
	tok, err := scan.peek()
	if err != nil {
		return operator{}, err
	}
	if tok.kind != tokenSym {
		return operator{}, nil
	}
	alg, kind := binop(tok.text)
	if kind == nodeNone {
		return operator{}, nil
	}
	return operator{prec: precedence{spacing: tok.spacing, algebraic: alg}, op: kind}, nil
}

// binop gets the algebraic precedence class and node kind for a binary
// operator symbol. If there is no such binary operator, then the kind is
// nodeNone.
func binop(text string) (int, nodeKind) {
	switch text {
	case "+":
		return 2, nodeAdd
	case "-":
		return 2, nodeSub
	case "*":
		return 1, nodeMul
	case "/":
		return 1, nodeDiv
	default:
		return 0, nodeNone
	}
}

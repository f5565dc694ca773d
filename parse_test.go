package kern

import (
	"fmt"
	"reflect"
	"regexp"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if n.val != m.val {
			return n, m
		}
	case nodeNeg, nodeSqrt:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestOperatorClasses(t *testing.T) {
	for _, sym := range []string{"+", "-", "*", "/"} {
		if _, kind := binop(sym); kind == nodeNone {
			t.Errorf("no operator for %s", sym)
		}
	}
	add, _ := binop("+")
	sub, _ := binop("-")
	mul, _ := binop("*")
	div, _ := binop("/")
	if add != sub {
		t.Errorf("+ and - have different classes: %d and %d", add, sub)
	}
	if mul != div {
		t.Errorf("* and / have different classes: %d and %d", mul, div)
	}
	if !(precedence{3, mul}).tighter(precedence{3, add}) {
		t.Error("* does not bind before + at equal spacing")
	}
	if !(precedence{3, 0}).tighter(precedence{3, mul}) {
		t.Error("unary arguments do not bind before * at equal spacing")
	}
}

func TestPrecedenceOrder(t *testing.T) {
	cases := []struct {
		p, q    precedence
		tighter bool
	}{
		{precedence{0, 1}, precedence{0, 2}, true},
		{precedence{0, 2}, precedence{0, 1}, false},
		{precedence{0, 2}, precedence{1, 1}, true},
		{precedence{1, 1}, precedence{0, 2}, false},
		{precedence{2, 1}, precedence{2, 1}, false},
		{precedence{0, 0}, exprprec, true},
		{exprprec, precedence{0, 0}, false},
	}
	for _, c := range cases {
		if got := c.p.tighter(c.q); got != c.tighter {
			t.Errorf("%v.tighter(%v) = %t, want %t", c.p, c.q, got, c.tighter)
		}
		// atLeast is the negation with the arguments swapped.
		if got := c.p.atLeast(c.q); got != !c.q.tighter(c.p) {
			t.Errorf("%v.atLeast(%v) = %t disagrees with tighter", c.p, c.q, got)
		}
	}
	if !exprprec.atLeast(exprprec) {
		t.Error("exprprec does not bind at least as tightly as itself")
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "1"},
		{"numfrac", "10.25", "10.25"},
		{"numleadingdot", ".5", "0.5"},
		{"add", "1.2 + 3.4", "(1.2 + 3.4)"},
		{"sub", "4 - 2", "(4 - 2)"},
		{"mul", "4 * 2", "(4 * 2)"},
		{"div", "4 / 2", "(4 / 2)"},

		// Uniform spacing leaves the algebraic ranking in charge.
		{"alg-mul-last", "1+2*3", "(1 + (2 * 3))"},
		{"alg-mul-first", "1*2+3", "((1 * 2) + 3)"},
		{"alg-both", "2*2 + 3*3", "((2 * 2) + (3 * 3))"},
		{"alg-spaced", "1 * 2 + 3", "((1 * 2) + 3)"},
		{"assoc-add", "1+2+3", "((1 + 2) + 3)"},
		{"assoc-sub", "1-2-3", "((1 - 2) - 3)"},
		{"assoc-div", "1 / 2 / 3", "((1 / 2) / 3)"},

		// Narrow spacing binds before wide, whatever the operators.
		{"tight-add", "1 * 2+3", "(1 * (2 + 3))"},
		{"tight-add-partial", "1* 2+ 3", "(1 * (2 + 3))"},
		{"wide-mul", "2 + 3  *  4", "((2 + 3) * 4)"},
		{"lean-right", "1+ 2- 3", "(1 + (2 - 3))"},
		{"uneven-sides", "1 +2", "(1 + 2)"},
		{"chain-narrower", "1*    3+4   -   5/6", "(1 * ((3 + 4) - (5 / 6)))"},
		{"chain-wider", "1*    3+4    -   5/6", "((1 * (3 + 4)) - (5 / 6))"},

		// Unary operators reach as far as their own spacing lets them.
		{"neg", "-1", "(- 1)"},
		{"negneg", "--1", "(- (- 1))"},
		{"neg-add", "-1 + 2", "((- 1) + 2)"},
		{"neg-add-spaced", "-  1 + 2", "(- (1 + 2))"},
		{"neg-mul", "-1*2", "((- 1) * 2)"},
		{"neg-mul-spaced", "- 1*2", "(- (1 * 2))"},
		{"neg-rhs", "1 - -2", "(1 - (- 2))"},
		{"sqrt", "sqrt 1", "(sqrt 1)"},
		{"sqrt-tight", "sqrt2", "(sqrt 2)"},
		{"sqrt-neg", "sqrt -1", "(sqrt (- 1))"},
		{"sqrt-mul", "sqrt 2 * 2", "((sqrt 2) * 2)"},
		{"sqrt-mul-tight", "sqrt 2*2", "(sqrt (2 * 2))"},
		{"sqrt-sqrt", "sqrt sqrt 1 + 1", "((sqrt (sqrt 1)) + 1)"},
		{"sqrt-sqrt-inner", "sqrt sqrt  1 + 1", "(sqrt (sqrt (1 + 1)))"},
		{"sqrt-sqrt-outer", "sqrt   sqrt 1 + 1", "(sqrt ((sqrt 1) + 1))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.src, err)
			}
			if s := a.String(); s != c.want {
				t.Errorf("%q parsed to %s, want %s", c.src, s, c.want)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{
			name: "num",
			src:  "1.5",
			n:    &node{kind: nodeNum, val: 1.5},
		},
		{
			name: "neg",
			src:  "-2",
			n: &node{
				kind: nodeNeg,
				left: &node{kind: nodeNum, val: 2},
			},
		},
		{
			name: "sqrt-add",
			src:  "sqrt  1 + 1",
			n: &node{
				kind: nodeSqrt,
				left: &node{
					kind:  nodeAdd,
					left:  &node{kind: nodeNum, val: 1},
					right: &node{kind: nodeNum, val: 1},
				},
			},
		},
		{
			name: "tight-add",
			src:  "1 * 2+3",
			n: &node{
				kind: nodeMul,
				left: &node{kind: nodeNum, val: 1},
				right: &node{
					kind:  nodeAdd,
					left:  &node{kind: nodeNum, val: 2},
					right: &node{kind: nodeNum, val: 3},
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.n, d, c.src)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		pos  int
		res  []string
		excl []string
	}{
		{"empty", "", new(EmptyExpressionError), 1, []string{`(?i)\bno expression\b`}, []string{`(?i)\bend\b`}},
		{"spaces", "   ", new(EmptyExpressionError), 4, []string{`(?i)\bno expression\b`}, nil},
		{"operand-eof", "1+", new(EmptyExpressionError), 3, []string{`(?i)\bend\b`}, nil},
		{"operand-eof-spaced", "1 + ", new(EmptyExpressionError), 5, []string{`(?i)\bend\b`}, nil},
		{"unary-eof", "-", new(EmptyExpressionError), 2, []string{`(?i)\bend\b`}, nil},
		{"sqrt-eof", "sqrt", new(EmptyExpressionError), 5, []string{`(?i)\bend\b`}, nil},
		{"sqrt-eof-spaced", "sqrt   ", new(EmptyExpressionError), 8, []string{`(?i)\bend\b`}, nil},
		{"word", "foo", new(TermError), 1, []string{`(?i)\bterm\b`, `"foo"`}, nil},
		{"word-prefix", "sqrtx 1", new(TermError), 1, []string{`"sqrtx"`}, nil},
		{"word-rhs", "1+x", new(TermError), 3, []string{`"x"`}, nil},
		{"sym", "(1)", new(TermError), 1, []string{`"\("`}, nil},
		{"sym-star", "*1", new(TermError), 1, []string{`"\*"`}, nil},
		{"sym-plus", "+1", new(TermError), 1, []string{`"\+"`}, nil},
		{"trailing-num", "1 2", new(TrailingTokenError), 3, []string{`(?i)\btrailing\b`, `"2"`}, nil},
		{"trailing-word", "1 sqrt", new(TrailingTokenError), 3, []string{`"sqrt"`}, nil},
		{"trailing-sym", "1)", new(TrailingTokenError), 2, []string{`"\)"`}, nil},
		{"trailing-exponent", "1e1", new(TrailingTokenError), 2, []string{`"e"`}, nil},
		{"lex", "1.2.3", new(LexError), 1, []string{`(?i)\bnumber\b`, `1\.2\.3`}, nil},
		{"lex-rhs", "1+2..3", new(LexError), 3, []string{`2\.\.3`}, nil},
		{"lex-after-term", "1 2..3", new(LexError), 3, []string{`2\.\.3`}, nil},
		{"lex-unary", "- .", new(LexError), 3, []string{`(?i)\bnumber\b`}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			if err == nil {
				return
			}
			ie, ok := err.(InputError)
			if !ok {
				t.Fatalf("error %#v does not implement InputError", err)
			}
			if ie.Pos() != c.pos {
				t.Errorf("error at %d, want %d: %v", ie.Pos(), c.pos, err)
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
			for _, re := range c.excl {
				if regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q matches %s", msg, re)
				}
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"flat", "1+2+3+4+5+6+7+8"},
		{"alg", "1*2+3*4+5*6+7*8"},
		{"spaced", "1*    3+4   -   5/6"},
		{"unary", "sqrt sqrt  - 1 + 1"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Parse(c.src)
			}
		})
	}
}

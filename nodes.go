package kern

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// val is the value of a Num node.
	val float64

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // push val

	// Unary operations evaluate left, then operate in place.
	nodeNeg
	nodeSqrt

	// Binary operations evaluate left, then right, then combine.
	nodeAdd
	nodeSub
	nodeMul
	nodeDiv
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeNeg:
		return "Neg"
	case nodeSqrt:
		return "Sqrt"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the fully parenthesized form of the subtree rooted at n. Number
// nodes are written bare; every operation is wrapped in round brackets with a
// single space between elements, so the grouping chosen by the parser is
// always visible.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.val, 'g', -1, 64))
	case nodeNeg:
		b.WriteString("(- ")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeSqrt:
		b.WriteString("(sqrt ")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAdd:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(" + ")
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeSub:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(" - ")
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeMul:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(" * ")
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeDiv:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(" / ")
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("kern: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

package model

import (
	"math"
	"strconv"
	"strings"
)

// Binding strength used when deciding where parentheses are required.
const (
	precSum = iota + 1
	precProduct
	precUnary
	precPower
	precAtom
)

// FormatNumber renders a float without trailing zero padding. The output is
// always accepted back by the parser.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}

	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	if math.Abs(v) >= 1e-6 && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n *Number) String() string   { return FormatNumber(n.Value) }
func (v *Variable) String() string { return v.Name }

func (u *UnaryOp) String() string {
	return string(u.Op) + wrap(u.Operand, precedence(u.Operand) < precPower)
}

func (c *Call) String() string {
	switch c.Name {
	case VectorCall:
		return "[" + joinArgs(c.Args, ", ") + "]"
	case MatrixCall:
		if rows, ok := matrixRows(c); ok {
			return "[" + strings.Join(rows, "; ") + "]"
		}
	}

	return c.Name + "(" + joinArgs(c.Args, ", ") + ")"
}

func (b *BinaryOp) String() string {
	left, right := precedence(b.Left), precedence(b.Right)

	switch b.Op {
	case OpAdd:
		if IsNegativeTerm(b.Right) {
			flipped := NegateTerm(b.Right)
			fp := precedence(flipped)

			return b.Left.String() + " - " + wrap(flipped, fp <= precSum || fp == precUnary)
		}

		return b.Left.String() + " + " + wrap(b.Right, right == precUnary)
	case OpSub:
		return b.Left.String() + " - " + wrap(b.Right, right <= precSum || right == precUnary)
	case OpMul:
		return wrap(b.Left, left < precProduct) + "*" + wrap(b.Right, right < precProduct || right == precUnary)
	case OpDiv:
		return wrap(b.Left, left < precProduct) + "/" + wrap(b.Right, right <= precUnary)
	case OpPow:
		return wrap(b.Left, left < precAtom) + "^" + wrap(b.Right, right < precPower)
	}

	return wrap(b.Left, true) + " " + string(b.Op) + " " + wrap(b.Right, true)
}

// IsNegativeTerm reports whether e reads as a term with a leading minus sign:
// a negative number, a negation, or a product/quotient whose leftmost factor is one.
func IsNegativeTerm(e Expr) bool {
	switch n := e.(type) {
	case *Number:
		return n.Value < 0
	case *UnaryOp:
		return n.Op == OpNeg
	case *BinaryOp:
		if n.Op == OpMul || n.Op == OpDiv {
			return IsNegativeTerm(n.Left)
		}
	}

	return false
}

// NegateTerm flips the leading sign of a term accepted by IsNegativeTerm.
// Any other expression is wrapped in a negation.
func NegateTerm(e Expr) Expr {
	switch n := e.(type) {
	case *Number:
		return Num(-n.Value)
	case *UnaryOp:
		if n.Op == OpNeg {
			return n.Operand
		}
	case *BinaryOp:
		if (n.Op == OpMul || n.Op == OpDiv) && IsNegativeTerm(n.Left) {
			return Bin(n.Op, NegateTerm(n.Left), n.Right)
		}
	}

	return Neg(e)
}

func precedence(e Expr) int {
	switch n := e.(type) {
	case *Number:
		if n.Value < 0 {
			return precUnary
		}

		return precAtom
	case *UnaryOp:
		return precUnary
	case *BinaryOp:
		switch n.Op {
		case OpAdd, OpSub:
			return precSum
		case OpMul, OpDiv:
			return precProduct
		case OpPow:
			return precPower
		}
	}

	return precAtom
}

func wrap(e Expr, parens bool) string {
	if parens {
		return "(" + e.String() + ")"
	}

	return e.String()
}

func joinArgs(args []Expr, sep string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}

	return strings.Join(parts, sep)
}

func matrixRows(c *Call) ([]string, bool) {
	rows := make([]string, 0, len(c.Args))

	for _, arg := range c.Args {
		row, ok := arg.(*Call)
		if !ok || row.Name != VectorCall {
			return nil, false
		}

		rows = append(rows, joinArgs(row.Args, ", "))
	}

	return rows, true
}

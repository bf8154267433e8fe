// Package model defines the data structures shared by the stepcalc engine and CLI.
package model

// Expr is a node of an expression tree. Nodes are never mutated once built:
// every rewrite returns a new tree, so callers may keep older trees around.
type Expr interface {
	String() string
	exprNode()
}

// UnaryOperator is a prefix operator.
type UnaryOperator string

// BinaryOperator is an infix operator.
type BinaryOperator string

const (
	OpNeg UnaryOperator = "-"

	OpAdd BinaryOperator = "+"
	OpSub BinaryOperator = "-"
	OpMul BinaryOperator = "*"
	OpDiv BinaryOperator = "/"
	OpPow BinaryOperator = "^"
)

// Names of the calls produced by bracket literals.
const (
	VectorCall = "vector"
	MatrixCall = "matrix"
)

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Variable is a free name.
type Variable struct {
	Name string
}

// UnaryOp applies a prefix operator to its operand.
type UnaryOp struct {
	Op      UnaryOperator
	Operand Expr
}

// BinaryOp applies an infix operator to two operands.
type BinaryOp struct {
	Op    BinaryOperator
	Left  Expr
	Right Expr
}

// Call is a named function application.
type Call struct {
	Name string
	Args []Expr
}

func (*Number) exprNode()   {}
func (*Variable) exprNode() {}
func (*UnaryOp) exprNode()  {}
func (*BinaryOp) exprNode() {}
func (*Call) exprNode()     {}

// Num builds a Number node.
func Num(v float64) *Number { return &Number{Value: v} }

// Var builds a Variable node.
func Var(name string) *Variable { return &Variable{Name: name} }

// Neg builds a negation node.
func Neg(e Expr) *UnaryOp { return &UnaryOp{Op: OpNeg, Operand: e} }

// Bin builds a binary node.
func Bin(op BinaryOperator, left, right Expr) *BinaryOp {
	return &BinaryOp{Op: op, Left: left, Right: right}
}

func Add(left, right Expr) *BinaryOp { return Bin(OpAdd, left, right) }
func Sub(left, right Expr) *BinaryOp { return Bin(OpSub, left, right) }
func Mul(left, right Expr) *BinaryOp { return Bin(OpMul, left, right) }
func Div(left, right Expr) *BinaryOp { return Bin(OpDiv, left, right) }
func Pow(left, right Expr) *BinaryOp { return Bin(OpPow, left, right) }

// Fn builds a call node. The argument slice is copied.
func Fn(name string, args ...Expr) *Call {
	cp := make([]Expr, len(args))
	copy(cp, args)

	return &Call{Name: name, Args: cp}
}

// IsNumber reports whether e is a Number with the given value.
func IsNumber(e Expr, v float64) bool {
	n, ok := e.(*Number)
	return ok && n.Value == v
}

// Contains reports whether the variable name occurs anywhere in e.
func Contains(e Expr, name string) bool {
	switch n := e.(type) {
	case *Variable:
		return n.Name == name
	case *UnaryOp:
		return Contains(n.Operand, name)
	case *BinaryOp:
		return Contains(n.Left, name) || Contains(n.Right, name)
	case *Call:
		for _, arg := range n.Args {
			if Contains(arg, name) {
				return true
			}
		}
	}

	return false
}

// FreeVariables returns the distinct variable names of e in order of first appearance.
func FreeVariables(e Expr) []string {
	var names []string

	seen := map[string]bool{}

	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case *Variable:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case *UnaryOp:
			walk(n.Operand)
		case *BinaryOp:
			walk(n.Left)
			walk(n.Right)
		case *Call:
			for _, arg := range n.Args {
				walk(arg)
			}
		}
	}
	walk(e)

	return names
}

// Equal reports structural equality of two trees.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *UnaryOp:
		y, ok := b.(*UnaryOp)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Call:
		y, ok := b.(*Call)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}

		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}

		return true
	}

	return false
}

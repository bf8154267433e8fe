package domain

import (
	"math"

	m "github.com/synnheal/stepcalc/internal/model"
)

const maxSimplifyPasses = 32

// Simplify rewrites e into canonical form. It never fails: a subexpression
// whose folding would raise a domain error is kept as written.
//
// Passes run bottom-up until a pass returns a structurally equal tree or the
// pass ceiling is reached. Trees that only render alike are not a fixed point:
// -(y - 1)*z prints like its distributed form but rewrites further.
func Simplify(e m.Expr) m.Expr {
	current := e

	for range maxSimplifyPasses {
		next := simplifyNode(current)
		if m.Equal(next, current) {
			break
		}

		current = next
	}

	return current
}

func simplifyNode(e m.Expr) m.Expr {
	switch n := e.(type) {
	case *m.UnaryOp:
		operand := simplifyNode(n.Operand)
		if num, ok := operand.(*m.Number); ok {
			return m.Num(-num.Value)
		}

		if isArrayValued(operand) {
			return m.Neg(operand)
		}

		return simplifySum(m.Neg(operand))
	case *m.BinaryOp:
		left, right := simplifyNode(n.Left), simplifyNode(n.Right)
		if folded, ok := foldBinary(n.Op, left, right); ok {
			return folded
		}

		node := m.Bin(n.Op, left, right)
		if isArrayValued(node) {
			return node
		}

		switch n.Op {
		case m.OpAdd, m.OpSub:
			return simplifySum(node)
		case m.OpMul, m.OpDiv:
			return simplifyProduct(node)
		case m.OpPow:
			return simplifyPower(left, right)
		}

		return node
	case *m.Call:
		args := make([]m.Expr, len(n.Args))
		for i, arg := range n.Args {
			args[i] = simplifyNode(arg)
		}

		call := m.Fn(n.Name, args...)
		if folded, ok := foldCall(call); ok {
			return folded
		}

		return call
	}

	return e
}

func foldBinary(op m.BinaryOperator, left, right m.Expr) (m.Expr, bool) {
	l, lok := left.(*m.Number)
	r, rok := right.(*m.Number)

	if !lok || !rok {
		return nil, false
	}

	v, err := scalarBinary(op, l.Value, r.Value)
	if err != nil {
		return nil, false
	}

	return m.Num(v), true
}

// foldCall replaces a builtin call on literal arguments by its value when the
// value is an integer, so sqrt(4) folds but sin(1) stays symbolic.
func foldCall(call *m.Call) (m.Expr, bool) {
	fn, ok := lookupFunction(call.Name)
	if !ok || !fn.accepts(len(call.Args)) {
		return nil, false
	}

	args := make([]m.Value, len(call.Args))

	for i, arg := range call.Args {
		num, ok := arg.(*m.Number)
		if !ok {
			return nil, false
		}

		args[i] = m.Scalar(num.Value)
	}

	v, err := fn.apply(args)
	if err != nil || v.Kind != m.ScalarValue || v.Scalar != math.Trunc(v.Scalar) {
		return nil, false
	}

	return m.Num(v.Scalar), true
}

func simplifyPower(base, exp m.Expr) m.Expr {
	switch {
	case m.IsNumber(exp, 1):
		return base
	case m.IsNumber(exp, 0), m.IsNumber(base, 1):
		return m.Num(1)
	}

	n, ok := exp.(*m.Number)
	if !ok {
		return m.Pow(base, exp)
	}

	if m.IsNumber(base, 0) && n.Value > 0 {
		return m.Num(0)
	}

	// (b^a)^n is b^(a*n) for integer n only; (x^2)^0.5 is |x|, not x.
	if inner, ok := base.(*m.BinaryOp); ok && inner.Op == m.OpPow && n.Value == math.Trunc(n.Value) {
		if a, ok := inner.Right.(*m.Number); ok {
			return simplifyPower(inner.Left, m.Num(a.Value*n.Value))
		}
	}

	if _, isNum := base.(*m.Number); !isNum && n.Value < 0 {
		return buildProduct(1, []factor{{base: base, exp: n.Value}})
	}

	return m.Pow(base, exp)
}

// factor is base^exp inside a product. Factors with equal rendered bases combine.
type factor struct {
	base m.Expr
	exp  float64
}

type product struct {
	coef    float64
	factors []factor
}

func simplifyProduct(e m.Expr) m.Expr {
	p, ok := flattenProduct(e)
	if !ok {
		return e
	}

	return buildProduct(p.coef, p.factors)
}

// flattenProduct reads e as coefficient * factors. It fails on a literal zero
// denominator or a non-finite coefficient.
func flattenProduct(e m.Expr) (product, bool) {
	p := product{coef: 1}
	if !p.collect(e, 1) {
		return product{}, false
	}

	if math.IsInf(p.coef, 0) || math.IsNaN(p.coef) {
		return product{}, false
	}

	kept := p.factors[:0]
	for _, f := range p.factors {
		if f.exp != 0 {
			kept = append(kept, f)
		}
	}

	p.factors = kept

	return p, true
}

func (p *product) collect(e m.Expr, sign float64) bool {
	switch n := e.(type) {
	case *m.Number:
		if sign > 0 {
			p.coef *= n.Value
			return true
		}

		if n.Value == 0 {
			return false
		}

		p.coef /= n.Value

		return true
	case *m.UnaryOp:
		p.coef = -p.coef
		return p.collect(n.Operand, sign)
	case *m.BinaryOp:
		switch n.Op {
		case m.OpMul:
			return p.collect(n.Left, sign) && p.collect(n.Right, sign)
		case m.OpDiv:
			return p.collect(n.Left, sign) && p.collect(n.Right, -sign)
		case m.OpPow:
			exp, ok := n.Right.(*m.Number)
			if _, numericBase := n.Left.(*m.Number); ok && !numericBase {
				p.add(n.Left, sign*exp.Value)
				return true
			}
		}
	}

	p.add(e, sign)

	return true
}

func (p *product) add(base m.Expr, exp float64) {
	key := base.String()

	for i := range p.factors {
		if p.factors[i].base.String() == key {
			p.factors[i].exp += exp
			return
		}
	}

	p.factors = append(p.factors, factor{base: base, exp: exp})
}

// buildProduct renders coefficient first, positive powers in the numerator
// and negative powers in the denominator. A coefficient 1/n becomes a
// division by n.
func buildProduct(coef float64, factors []factor) m.Expr {
	if coef == 0 {
		return m.Num(0)
	}

	var num, den m.Expr

	for _, f := range factors {
		switch {
		case f.exp > 0:
			num = mulChain(num, raise(f.base, f.exp))
		case f.exp < 0:
			den = mulChain(den, raise(f.base, -f.exp))
		}
	}

	numCoef, denCoef := coef, 1.0
	if inv := 1 / math.Abs(coef); math.Abs(coef) < 1 && inv == math.Trunc(inv) {
		numCoef, denCoef = math.Copysign(1, coef), inv
	}

	top := withCoefficient(numCoef, num)

	switch {
	case den == nil && denCoef == 1:
		return top
	case den == nil:
		return m.Div(top, m.Num(denCoef))
	case denCoef == 1:
		return m.Div(top, den)
	default:
		return m.Div(top, m.Mul(m.Num(denCoef), den))
	}
}

func raise(base m.Expr, exp float64) m.Expr {
	if exp == 1 {
		return base
	}

	return m.Pow(base, m.Num(exp))
}

func mulChain(acc, f m.Expr) m.Expr {
	if acc == nil {
		return f
	}

	return m.Mul(acc, f)
}

func withCoefficient(coef float64, e m.Expr) m.Expr {
	switch {
	case e == nil:
		return m.Num(coef)
	case coef == 1:
		return e
	case coef == -1:
		return negateLeading(e)
	default:
		return m.Mul(m.Num(coef), e)
	}
}

// negateLeading puts the minus sign on the leftmost factor: -x*y, not -(x*y).
func negateLeading(e m.Expr) m.Expr {
	if b, ok := e.(*m.BinaryOp); ok && b.Op == m.OpMul {
		return m.Mul(negateLeading(b.Left), b.Right)
	}

	return m.Neg(e)
}

type term struct {
	coef    float64
	factors []factor
}

// simplifySum collects like terms in order of first appearance with the
// numeric constant last.
func simplifySum(e m.Expr) m.Expr {
	var (
		terms    []*term
		index    = map[string]*term{}
		constant float64
	)

	var collect func(e m.Expr, sign float64)
	collect = func(e m.Expr, sign float64) {
		switch n := e.(type) {
		case *m.Number:
			constant += sign * n.Value
			return
		case *m.UnaryOp:
			collect(n.Operand, -sign)
			return
		case *m.BinaryOp:
			switch n.Op {
			case m.OpAdd:
				collect(n.Left, sign)
				collect(n.Right, sign)

				return
			case m.OpSub:
				collect(n.Left, sign)
				collect(n.Right, -sign)

				return
			}
		}

		p, ok := flattenProduct(e)
		if !ok {
			p = product{coef: 1, factors: []factor{{base: e, exp: 1}}}
		}

		if len(p.factors) == 0 {
			constant += sign * p.coef
			return
		}

		key := buildProduct(1, p.factors).String()
		if t, seen := index[key]; seen {
			t.coef += sign * p.coef
			return
		}

		t := &term{coef: sign * p.coef, factors: p.factors}
		index[key] = t
		terms = append(terms, t)
	}
	collect(e, 1)

	if math.IsInf(constant, 0) || math.IsNaN(constant) {
		return e
	}

	var out m.Expr

	for _, t := range terms {
		if math.IsInf(t.coef, 0) || math.IsNaN(t.coef) {
			return e
		}

		if t.coef != 0 {
			out = addChain(out, buildProduct(t.coef, t.factors))
		}
	}

	if constant != 0 || out == nil {
		out = addChain(out, m.Num(constant))
	}

	return out
}

func addChain(acc, t m.Expr) m.Expr {
	if acc == nil {
		return t
	}

	return m.Add(acc, t)
}

// isArrayValued reports whether e may evaluate to a vector or matrix. Such
// subtrees are not reordered or combined since matrix products do not commute.
func isArrayValued(e m.Expr) bool {
	switch n := e.(type) {
	case *m.UnaryOp:
		return isArrayValued(n.Operand)
	case *m.BinaryOp:
		return isArrayValued(n.Left) || isArrayValued(n.Right)
	case *m.Call:
		switch n.Name {
		case m.VectorCall, m.MatrixCall, "range":
			return true
		case "sum", "mean", "std", "min", "max", "det", "dot", "norm":
			return false
		}

		for _, arg := range n.Args {
			if isArrayValued(arg) {
				return true
			}
		}
	}

	return false
}

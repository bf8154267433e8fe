package domain

import (
	"fmt"

	m "github.com/synnheal/stepcalc/internal/model"
)

// Differentiate returns the first derivative of e with respect to wrt.
// The result is not simplified.
func Differentiate(e m.Expr, wrt string) (m.Expr, error) {
	switch n := e.(type) {
	case *m.Number:
		return m.Num(0), nil
	case *m.Variable:
		if n.Name == wrt {
			return m.Num(1), nil
		}

		return m.Num(0), nil
	case *m.UnaryOp:
		du, err := Differentiate(n.Operand, wrt)
		if err != nil {
			return nil, err
		}

		return m.Neg(du), nil
	case *m.BinaryOp:
		return diffBinary(n, wrt)
	case *m.Call:
		return diffCall(n, wrt)
	}

	return nil, fmt.Errorf("%w: cannot differentiate %T", ErrUnsupportedOperation, e)
}

func diffBinary(b *m.BinaryOp, wrt string) (m.Expr, error) {
	// a constant power has no rule output worth tracing, and n*c^(n-1) may
	// not even evaluate (0^-1)
	if b.Op == m.OpPow && !m.Contains(b, wrt) {
		return m.Num(0), nil
	}

	u, v := b.Left, b.Right

	du, err := Differentiate(u, wrt)
	if err != nil {
		return nil, err
	}

	dv, err := Differentiate(v, wrt)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case m.OpAdd, m.OpSub:
		return m.Bin(b.Op, du, dv), nil
	case m.OpMul:
		return m.Add(m.Mul(du, v), m.Mul(u, dv)), nil
	case m.OpDiv:
		return m.Div(m.Sub(m.Mul(du, v), m.Mul(u, dv)), m.Pow(v, m.Num(2))), nil
	case m.OpPow:
		switch {
		case !m.Contains(v, wrt):
			// f^n -> n*f^(n-1)*f'
			return m.Mul(m.Mul(v, m.Pow(u, m.Sub(v, m.Num(1)))), du), nil
		case !m.Contains(u, wrt):
			// c^g -> c^g*ln(c)*g'
			return m.Mul(m.Mul(m.Pow(u, v), m.Fn("ln", u)), dv), nil
		default:
			// f^g -> f^g*(g'*ln(f) + g*f'/f)
			return m.Mul(m.Pow(u, v), m.Add(m.Mul(dv, m.Fn("ln", u)), m.Div(m.Mul(v, du), u))), nil
		}
	}

	return nil, fmt.Errorf("%w: operator %s", ErrUnsupportedOperation, b.Op)
}

// outerDerivatives maps a function name to f'(u).
var outerDerivatives = map[string]func(u m.Expr) m.Expr{
	"sin": func(u m.Expr) m.Expr { return m.Fn("cos", u) },
	"cos": func(u m.Expr) m.Expr { return m.Neg(m.Fn("sin", u)) },
	"tan": func(u m.Expr) m.Expr { return m.Div(m.Num(1), m.Pow(m.Fn("cos", u), m.Num(2))) },
	"exp": func(u m.Expr) m.Expr { return m.Fn("exp", u) },
	"ln":  func(u m.Expr) m.Expr { return m.Div(m.Num(1), u) },
	"log": func(u m.Expr) m.Expr { return m.Div(m.Num(1), u) },
	"log10": func(u m.Expr) m.Expr {
		return m.Div(m.Num(1), m.Mul(u, m.Fn("ln", m.Num(10))))
	},
	"log2": func(u m.Expr) m.Expr {
		return m.Div(m.Num(1), m.Mul(u, m.Fn("ln", m.Num(2))))
	},
	"sqrt": func(u m.Expr) m.Expr { return m.Div(m.Num(1), m.Mul(m.Num(2), m.Fn("sqrt", u))) },
	"asin": func(u m.Expr) m.Expr {
		return m.Div(m.Num(1), m.Fn("sqrt", m.Sub(m.Num(1), m.Pow(u, m.Num(2)))))
	},
	"acos": func(u m.Expr) m.Expr {
		return m.Neg(m.Div(m.Num(1), m.Fn("sqrt", m.Sub(m.Num(1), m.Pow(u, m.Num(2))))))
	},
	"atan": func(u m.Expr) m.Expr { return m.Div(m.Num(1), m.Add(m.Num(1), m.Pow(u, m.Num(2)))) },
	"sinh": func(u m.Expr) m.Expr { return m.Fn("cosh", u) },
	"cosh": func(u m.Expr) m.Expr { return m.Fn("sinh", u) },
	"tanh": func(u m.Expr) m.Expr { return m.Div(m.Num(1), m.Pow(m.Fn("cosh", u), m.Num(2))) },
	"abs":  func(u m.Expr) m.Expr { return m.Fn("sign", u) },
}

// diffCall applies the chain rule. log(u, b) with a constant base is
// differentiated as ln(u)/ln(b).
func diffCall(c *m.Call, wrt string) (m.Expr, error) {
	outer, ok := outerDerivatives[c.Name]
	if !ok {
		return nil, fmt.Errorf("%w: cannot differentiate %s", ErrUnsupportedOperation, c.Name)
	}

	if c.Name == "log" && len(c.Args) == 2 {
		if m.Contains(c.Args[1], wrt) {
			return nil, fmt.Errorf("%w: log with a variable base", ErrUnsupportedOperation)
		}

		return Differentiate(m.Div(m.Fn("ln", c.Args[0]), m.Fn("ln", c.Args[1])), wrt)
	}

	if len(c.Args) != 1 {
		return nil, fmt.Errorf("%w: %s with %d arguments", ErrUnsupportedOperation, c.Name, len(c.Args))
	}

	du, err := Differentiate(c.Args[0], wrt)
	if err != nil {
		return nil, err
	}

	return m.Mul(outer(c.Args[0]), du), nil
}

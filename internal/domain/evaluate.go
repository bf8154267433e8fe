package domain

import (
	"fmt"
	"math"
	"strings"

	m "github.com/synnheal/stepcalc/internal/model"
)

// constants are bound during evaluation unless the caller binds the same name.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Eval folds an expression into a value. It never modifies e. Every
// unbound name is reported before any arithmetic runs.
func Eval(e m.Expr, bindings map[string]float64) (m.Value, error) {
	if missing := unboundVariables(e, bindings); len(missing) > 0 {
		return m.Value{}, fmt.Errorf("%w: %s", ErrUnboundVariable, strings.Join(missing, ", "))
	}

	return evaluator{bindings: bindings}.eval(e)
}

func unboundVariables(e m.Expr, bindings map[string]float64) []string {
	var missing []string

	for _, name := range m.FreeVariables(e) {
		_, bound := bindings[name]
		_, constant := constants[name]

		if !bound && !constant {
			missing = append(missing, name)
		}
	}

	return missing
}

// EvalScalar evaluates e and requires a scalar result.
func EvalScalar(e m.Expr, bindings map[string]float64) (float64, error) {
	v, err := Eval(e, bindings)
	if err != nil {
		return 0, err
	}

	if v.Kind != m.ScalarValue {
		return 0, fmt.Errorf("%w: expected a scalar, got %s", ErrUnsupportedOperation, v)
	}

	return v.Scalar, nil
}

type evaluator struct {
	bindings map[string]float64
}

func (ev evaluator) eval(e m.Expr) (m.Value, error) {
	switch n := e.(type) {
	case *m.Number:
		return m.Scalar(n.Value), nil
	case *m.Variable:
		return ev.lookup(n.Name)
	case *m.UnaryOp:
		operand, err := ev.eval(n.Operand)
		if err != nil {
			return m.Value{}, err
		}

		return mapValue(operand, func(x float64) (float64, error) { return -x, nil })
	case *m.BinaryOp:
		left, err := ev.eval(n.Left)
		if err != nil {
			return m.Value{}, err
		}

		right, err := ev.eval(n.Right)
		if err != nil {
			return m.Value{}, err
		}

		return applyBinary(n.Op, left, right)
	case *m.Call:
		return ev.call(n)
	}

	return m.Value{}, fmt.Errorf("%w: cannot evaluate %T", ErrUnsupportedOperation, e)
}

func (ev evaluator) lookup(name string) (m.Value, error) {
	if v, ok := ev.bindings[name]; ok {
		return m.Scalar(v), nil
	}

	if v, ok := constants[name]; ok {
		return m.Scalar(v), nil
	}

	return m.Value{}, fmt.Errorf("%w: %s", ErrUnboundVariable, name)
}

func (ev evaluator) call(c *m.Call) (m.Value, error) {
	args := make([]m.Value, len(c.Args))

	for i, arg := range c.Args {
		v, err := ev.eval(arg)
		if err != nil {
			return m.Value{}, err
		}

		args[i] = v
	}

	switch c.Name {
	case m.VectorCall:
		return vectorLiteral(args)
	case m.MatrixCall:
		return matrixLiteral(args)
	}

	fn, ok := lookupFunction(c.Name)
	if !ok {
		return m.Value{}, fmt.Errorf("%w: unknown function %s", ErrUnsupportedOperation, c.Name)
	}

	if !fn.accepts(len(args)) {
		return m.Value{}, fmt.Errorf("%w: %s expects %s, got %d", ErrSyntax, c.Name, fn.arity(), len(args))
	}

	return fn.apply(args)
}

func vectorLiteral(args []m.Value) (m.Value, error) {
	out := make([]float64, len(args))

	for i, arg := range args {
		if arg.Kind != m.ScalarValue {
			return m.Value{}, fmt.Errorf("%w: nested vectors are not supported", ErrUnsupportedOperation)
		}

		out[i] = arg.Scalar
	}

	return m.Vector(out), nil
}

func matrixLiteral(args []m.Value) (m.Value, error) {
	rows := make([][]float64, len(args))

	for i, arg := range args {
		if arg.Kind != m.VectorValue {
			return m.Value{}, fmt.Errorf("%w: matrix rows must be vectors", ErrUnsupportedOperation)
		}

		if i > 0 && len(arg.Vector) != len(rows[0]) {
			return m.Value{}, domainErrorf("matrix rows have different lengths")
		}

		rows[i] = arg.Vector
	}

	return m.Matrix(rows), nil
}

// applyBinary dispatches an operator on the shapes of its operands.
func applyBinary(op m.BinaryOperator, a, b m.Value) (m.Value, error) {
	if a.Kind == m.ScalarValue && b.Kind == m.ScalarValue {
		v, err := scalarBinary(op, a.Scalar, b.Scalar)
		if err != nil {
			return m.Value{}, err
		}

		return m.Scalar(v), nil
	}

	switch op {
	case m.OpAdd, m.OpSub:
		return zipValues(a, b, func(x, y float64) (float64, error) { return scalarBinary(op, x, y) })
	case m.OpMul:
		return multiplyValues(a, b)
	case m.OpDiv:
		if b.Kind == m.ScalarValue {
			return mapValue(a, func(x float64) (float64, error) { return scalarBinary(m.OpDiv, x, b.Scalar) })
		}
	case m.OpPow:
		if a.Kind == m.MatrixValue && b.Kind == m.ScalarValue {
			return matrixPower(a.Matrix, b.Scalar)
		}
	}

	return m.Value{}, fmt.Errorf("%w: %s between %s and %s", ErrUnsupportedOperation, op, kindName(a), kindName(b))
}

func scalarBinary(op m.BinaryOperator, x, y float64) (float64, error) {
	var r float64

	switch op {
	case m.OpAdd:
		r = x + y
	case m.OpSub:
		r = x - y
	case m.OpMul:
		r = x * y
	case m.OpDiv:
		if y == 0 {
			return 0, domainErrorf("division by zero")
		}

		r = x / y
	case m.OpPow:
		if x == 0 && y < 0 {
			return 0, domainErrorf("division by zero in %s^%s", m.FormatNumber(x), m.FormatNumber(y))
		}

		r = math.Pow(x, y)
		if math.IsNaN(r) {
			return 0, domainErrorf("%s^%s is not a real number", m.FormatNumber(x), m.FormatNumber(y))
		}
	default:
		return 0, fmt.Errorf("%w: operator %s", ErrUnsupportedOperation, op)
	}

	return finite(r)
}

func finite(r float64) (float64, error) {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, domainErrorf("result is not a finite real number")
	}

	return r, nil
}

func multiplyValues(a, b m.Value) (m.Value, error) {
	switch {
	case a.Kind == m.ScalarValue:
		return mapValue(b, func(x float64) (float64, error) { return finite(a.Scalar * x) })
	case b.Kind == m.ScalarValue:
		return mapValue(a, func(x float64) (float64, error) { return finite(x * b.Scalar) })
	case a.Kind == m.VectorValue && b.Kind == m.VectorValue:
		d, err := dotProduct(a.Vector, b.Vector)
		if err != nil {
			return m.Value{}, err
		}

		return m.Scalar(d), nil
	case a.Kind == m.MatrixValue && b.Kind == m.MatrixValue:
		p, err := matMul(a.Matrix, b.Matrix)
		if err != nil {
			return m.Value{}, err
		}

		return m.Matrix(p), nil
	case a.Kind == m.MatrixValue && b.Kind == m.VectorValue:
		p, err := matMul(a.Matrix, columnOf(b.Vector))
		if err != nil {
			return m.Value{}, err
		}

		return m.Vector(flattenRows(p)), nil
	default:
		p, err := matMul([][]float64{a.Vector}, b.Matrix)
		if err != nil {
			return m.Value{}, err
		}

		return m.Vector(p[0]), nil
	}
}

// mapValue applies fn to every element of v, keeping its shape.
func mapValue(v m.Value, fn func(float64) (float64, error)) (m.Value, error) {
	switch v.Kind {
	case m.VectorValue:
		out, err := mapRow(v.Vector, fn)
		if err != nil {
			return m.Value{}, err
		}

		return m.Vector(out), nil
	case m.MatrixValue:
		out := make([][]float64, len(v.Matrix))

		for i, row := range v.Matrix {
			mapped, err := mapRow(row, fn)
			if err != nil {
				return m.Value{}, err
			}

			out[i] = mapped
		}

		return m.Matrix(out), nil
	default:
		r, err := fn(v.Scalar)
		if err != nil {
			return m.Value{}, err
		}

		return m.Scalar(r), nil
	}
}

func mapRow(row []float64, fn func(float64) (float64, error)) ([]float64, error) {
	out := make([]float64, len(row))

	for i, x := range row {
		r, err := fn(x)
		if err != nil {
			return nil, err
		}

		out[i] = r
	}

	return out, nil
}

// zipValues combines two values element-wise, broadcasting scalars.
func zipValues(a, b m.Value, fn func(x, y float64) (float64, error)) (m.Value, error) {
	if a.Kind == m.ScalarValue {
		return mapValue(b, func(y float64) (float64, error) { return fn(a.Scalar, y) })
	}

	if b.Kind == m.ScalarValue {
		return mapValue(a, func(x float64) (float64, error) { return fn(x, b.Scalar) })
	}

	if a.Kind != b.Kind {
		return m.Value{}, domainErrorf("cannot combine %s with %s", kindName(a), kindName(b))
	}

	if a.Kind == m.VectorValue {
		if len(a.Vector) != len(b.Vector) {
			return m.Value{}, domainErrorf("dimension mismatch: %d vs %d", len(a.Vector), len(b.Vector))
		}

		out := make([]float64, len(a.Vector))

		for i := range a.Vector {
			r, err := fn(a.Vector[i], b.Vector[i])
			if err != nil {
				return m.Value{}, err
			}

			out[i] = r
		}

		return m.Vector(out), nil
	}

	if len(a.Matrix) != len(b.Matrix) || len(a.Matrix[0]) != len(b.Matrix[0]) {
		return m.Value{}, domainErrorf("dimension mismatch: %s vs %s", dims(a.Matrix), dims(b.Matrix))
	}

	out := make([][]float64, len(a.Matrix))

	for i := range a.Matrix {
		out[i] = make([]float64, len(a.Matrix[i]))

		for j := range a.Matrix[i] {
			r, err := fn(a.Matrix[i][j], b.Matrix[i][j])
			if err != nil {
				return m.Value{}, err
			}

			out[i][j] = r
		}
	}

	return m.Matrix(out), nil
}

func kindName(v m.Value) string {
	switch v.Kind {
	case m.VectorValue:
		return "vector"
	case m.MatrixValue:
		return "matrix"
	default:
		return "scalar"
	}
}

package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	m "github.com/synnheal/stepcalc/internal/model"
)

// maxRangeLength bounds range() so a typo cannot allocate unbounded memory.
const maxRangeLength = 1_000_000

// function is a named builtin. maxArgs < 0 means variadic.
type function struct {
	minArgs int
	maxArgs int
	apply   func(args []m.Value) (m.Value, error)
}

func (f function) accepts(n int) bool {
	return n >= f.minArgs && (f.maxArgs < 0 || n <= f.maxArgs)
}

func (f function) arity() string {
	switch {
	case f.maxArgs < 0:
		return fmt.Sprintf("at least %d %s", f.minArgs, plural(f.minArgs, "argument"))
	case f.minArgs == f.maxArgs:
		return fmt.Sprintf("%d %s", f.minArgs, plural(f.minArgs, "argument"))
	default:
		return fmt.Sprintf("%d to %d arguments", f.minArgs, f.maxArgs)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}

	return word + "s"
}

var functions map[string]function

func init() {
	functions = map[string]function{
		"sin":   elementwise(unchecked(math.Sin)),
		"cos":   elementwise(unchecked(math.Cos)),
		"tan":   elementwise(unchecked(math.Tan)),
		"asin":  elementwise(bounded("asin", math.Asin)),
		"acos":  elementwise(bounded("acos", math.Acos)),
		"atan":  elementwise(unchecked(math.Atan)),
		"sinh":  elementwise(unchecked(math.Sinh)),
		"cosh":  elementwise(unchecked(math.Cosh)),
		"tanh":  elementwise(unchecked(math.Tanh)),
		"exp":   elementwise(unchecked(math.Exp)),
		"ln":    elementwise(positive("ln", math.Log)),
		"log10": elementwise(positive("log10", math.Log10)),
		"log2":  elementwise(positive("log2", math.Log2)),
		"sqrt":  elementwise(sqrt),
		"abs":   elementwise(unchecked(math.Abs)),
		"floor": elementwise(unchecked(math.Floor)),
		"ceil":  elementwise(unchecked(math.Ceil)),
		"round": elementwise(unchecked(math.Round)),
		"sign":  elementwise(unchecked(sign)),

		"factorial": elementwise(factorial),
		"log":       {minArgs: 1, maxArgs: 2, apply: logBase},

		"sum":  aggregate(1, sum),
		"mean": aggregate(1, mean),
		"std":  aggregate(2, stddev),
		"min":  aggregate(1, minimum),
		"max":  aggregate(1, maximum),

		"det":       {minArgs: 1, maxArgs: 1, apply: det},
		"transpose": {minArgs: 1, maxArgs: 1, apply: transposeValue},
		"inv":       {minArgs: 1, maxArgs: 1, apply: inv},
		"dot":       {minArgs: 2, maxArgs: 2, apply: dot},
		"norm":      {minArgs: 1, maxArgs: 1, apply: norm},
		"range":     {minArgs: 2, maxArgs: 3, apply: rangeOf},
	}
}

func lookupFunction(name string) (function, bool) {
	fn, ok := functions[name]
	return fn, ok
}

type scalarFunc func(float64) (float64, error)

// elementwise lifts a one-argument scalar function over vectors and matrices.
func elementwise(fn scalarFunc) function {
	return function{minArgs: 1, maxArgs: 1, apply: func(args []m.Value) (m.Value, error) {
		return mapValue(args[0], func(x float64) (float64, error) {
			r, err := fn(x)
			if err != nil {
				return 0, err
			}

			return finite(r)
		})
	}}
}

func unchecked(fn func(float64) float64) scalarFunc {
	return func(x float64) (float64, error) { return fn(x), nil }
}

func bounded(name string, fn func(float64) float64) scalarFunc {
	return func(x float64) (float64, error) {
		if x < -1 || x > 1 {
			return 0, domainErrorf("%s(%s) is outside [-1, 1]", name, m.FormatNumber(x))
		}

		return fn(x), nil
	}
}

func positive(name string, fn func(float64) float64) scalarFunc {
	return func(x float64) (float64, error) {
		if x <= 0 {
			return 0, domainErrorf("%s of non-positive number %s", name, m.FormatNumber(x))
		}

		return fn(x), nil
	}
}

func sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, domainErrorf("square root of negative number %s", m.FormatNumber(x))
	}

	return math.Sqrt(x), nil
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func factorial(x float64) (float64, error) {
	if x < 0 || x != math.Trunc(x) {
		return 0, domainErrorf("factorial of %s is undefined", m.FormatNumber(x))
	}

	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
		if math.IsInf(r, 0) {
			return 0, domainErrorf("factorial of %s overflows", m.FormatNumber(x))
		}
	}

	return r, nil
}

func logBase(args []m.Value) (m.Value, error) {
	ln := positive("log", math.Log)
	if len(args) == 1 {
		return elementwise(ln).apply(args)
	}

	if args[1].Kind != m.ScalarValue {
		return m.Value{}, fmt.Errorf("%w: log base must be a scalar", ErrUnsupportedOperation)
	}

	base := args[1].Scalar
	if base <= 0 || base == 1 {
		return m.Value{}, domainErrorf("log base %s is invalid", m.FormatNumber(base))
	}

	return mapValue(args[0], func(x float64) (float64, error) {
		r, err := ln(x)
		if err != nil {
			return 0, err
		}

		return finite(r / math.Log(base))
	})
}

// aggregate reduces either one vector/matrix argument or several scalars.
func aggregate(minElems int, fn func([]float64) float64) function {
	return function{minArgs: 1, maxArgs: -1, apply: func(args []m.Value) (m.Value, error) {
		var xs []float64

		for _, arg := range args {
			switch arg.Kind {
			case m.VectorValue:
				xs = append(xs, arg.Vector...)
			case m.MatrixValue:
				xs = append(xs, flattenRows(arg.Matrix)...)
			default:
				xs = append(xs, arg.Scalar)
			}
		}

		if len(xs) < minElems {
			return m.Value{}, domainErrorf("need at least %d %s, got %d", minElems, plural(minElems, "value"), len(xs))
		}

		r, err := finite(fn(xs))
		if err != nil {
			return m.Value{}, err
		}

		return m.Scalar(r), nil
	}}
}

func sum(xs []float64) float64 {
	return floats.Sum(xs)
}

func mean(xs []float64) float64 {
	return stat.Mean(xs, nil)
}

// stddev is the sample standard deviation.
func stddev(xs []float64) float64 {
	return stat.StdDev(xs, nil)
}

func minimum(xs []float64) float64 {
	return floats.Min(xs)
}

func maximum(xs []float64) float64 {
	return floats.Max(xs)
}

func matrixArg(name string, v m.Value) ([][]float64, error) {
	switch v.Kind {
	case m.MatrixValue:
		return v.Matrix, nil
	case m.ScalarValue:
		return [][]float64{{v.Scalar}}, nil
	default:
		return nil, fmt.Errorf("%w: %s needs a matrix, got a vector", ErrUnsupportedOperation, name)
	}
}

func det(args []m.Value) (m.Value, error) {
	a, err := matrixArg("det", args[0])
	if err != nil {
		return m.Value{}, err
	}

	d, err := determinant(a)
	if err != nil {
		return m.Value{}, err
	}

	return m.Scalar(d), nil
}

func inv(args []m.Value) (m.Value, error) {
	a, err := matrixArg("inv", args[0])
	if err != nil {
		return m.Value{}, err
	}

	out, err := inverse(a)
	if err != nil {
		return m.Value{}, err
	}

	if args[0].Kind == m.ScalarValue {
		return m.Scalar(out[0][0]), nil
	}

	return m.Matrix(out), nil
}

func transposeValue(args []m.Value) (m.Value, error) {
	if args[0].Kind != m.MatrixValue {
		return args[0], nil
	}

	return m.Matrix(transpose(args[0].Matrix)), nil
}

func dot(args []m.Value) (m.Value, error) {
	if args[0].Kind != m.VectorValue || args[1].Kind != m.VectorValue {
		return m.Value{}, fmt.Errorf("%w: dot needs two vectors", ErrUnsupportedOperation)
	}

	d, err := dotProduct(args[0].Vector, args[1].Vector)
	if err != nil {
		return m.Value{}, err
	}

	return m.Scalar(d), nil
}

// norm is the Euclidean norm of a vector or the Frobenius norm of a matrix.
func norm(args []m.Value) (m.Value, error) {
	var xs []float64

	switch args[0].Kind {
	case m.VectorValue:
		xs = args[0].Vector
	case m.MatrixValue:
		xs = flattenRows(args[0].Matrix)
	default:
		return m.Scalar(math.Abs(args[0].Scalar)), nil
	}

	r, err := finite(floats.Norm(xs, 2))
	if err != nil {
		return m.Value{}, err
	}

	return m.Scalar(r), nil
}

// rangeOf returns start, start+step, ... up to but excluding end.
func rangeOf(args []m.Value) (m.Value, error) {
	bounds := make([]float64, len(args))

	for i, arg := range args {
		if arg.Kind != m.ScalarValue {
			return m.Value{}, fmt.Errorf("%w: range bounds must be scalars", ErrUnsupportedOperation)
		}

		bounds[i] = arg.Scalar
	}

	start, end, step := bounds[0], bounds[1], 1.0
	if len(bounds) == 3 {
		step = bounds[2]
	}

	if step == 0 {
		return m.Value{}, domainErrorf("range step must not be zero")
	}

	n := math.Ceil((end - start) / step)
	if n <= 0 || math.IsNaN(n) {
		// vectors have no empty literal to print
		return m.Value{}, domainErrorf("range(%s, %s) is empty", m.FormatNumber(start), m.FormatNumber(end))
	}

	if n > maxRangeLength {
		return m.Value{}, domainErrorf("range of %s elements is too large", m.FormatNumber(n))
	}

	out := []float64{}
	for i := 0.0; i < n; i++ {
		out = append(out, start+i*step)
	}

	return m.Vector(out), nil
}

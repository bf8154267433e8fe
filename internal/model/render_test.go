package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: math.Copysign(0, -1), want: "0"},
		{in: 5, want: "5"},
		{in: -2, want: "-2"},
		{in: 0.5, want: "0.5"},
		{in: 1.0 / 3, want: "0.3333333333333333"},
		{in: 1e20, want: "1e+20"},
		{in: 1e-7, want: "1e-07"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestExprString(t *testing.T) {
	x, y, z := Var("x"), Var("y"), Var("z")

	tests := []struct {
		expr Expr
		want string
	}{
		{expr: Add(x, Mul(Num(2), y)), want: "x + 2*y"},
		{expr: Sub(x, Add(y, z)), want: "x - (y + z)"},
		{expr: Add(x, Num(-3)), want: "x - 3"},
		{expr: Add(x, Mul(Num(-2), y)), want: "x - 2*y"},
		{expr: Mul(Num(-2), x), want: "-2*x"},
		{expr: Pow(Pow(x, Num(2)), Num(3)), want: "(x^2)^3"},
		{expr: Pow(x, Pow(y, z)), want: "x^y^z"},
		{expr: Neg(Add(x, Num(1))), want: "-(x + 1)"},
		{expr: Neg(Pow(x, Num(2))), want: "-x^2"},
		{expr: Div(x, Mul(Num(2), y)), want: "x/(2*y)"},
		{expr: Mul(Add(x, Num(1)), Sub(x, Num(1))), want: "(x + 1)*(x - 1)"},
		{expr: Fn("log", x, Num(2)), want: "log(x, 2)"},
		{expr: Fn(VectorCall, Num(1), Num(2)), want: "[1, 2]"},
		{expr: Fn(MatrixCall, Fn(VectorCall, Num(1), Num(2)), Fn(VectorCall, Num(3), Num(4))), want: "[1, 2; 3, 4]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestNegateTerm(t *testing.T) {
	x := Var("x")

	assert.Equal(t, "3", NegateTerm(Num(-3)).String())
	assert.Equal(t, "x", NegateTerm(Neg(x)).String())
	assert.Equal(t, "2*x", NegateTerm(Mul(Num(-2), x)).String())
	assert.Equal(t, "-x", NegateTerm(x).String())
	assert.False(t, IsNegativeTerm(Mul(x, Num(-2))))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "2.5", Scalar(2.5).String())
	assert.Equal(t, "[1, -2, 0.5]", Vector([]float64{1, -2, 0.5}).String())
	assert.Equal(t, "[1, 2; 3, 4]", Matrix([][]float64{{1, 2}, {3, 4}}).String())
}

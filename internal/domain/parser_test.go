package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/synnheal/stepcalc/internal/model"
)

func TestParse_Render(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "2*x + 3", want: "2*x + 3"},
		{input: "2x", want: "2*x"},
		{input: "2(x+1)", want: "2*(x + 1)"},
		{input: "(a)(b)", want: "a*b"},
		{input: "-x^2", want: "-x^2"},
		{input: "2^-1", want: "2^(-1)"},
		{input: "x^2^3", want: "x^2^3"},
		{input: "(x^2)^3", want: "(x^2)^3"},
		{input: "a - (b - c)", want: "a - (b - c)"},
		{input: "a - b - c", want: "a - b - c"},
		{input: "x/(2*y)", want: "x/(2*y)"},
		{input: "-(x + 1)", want: "-(x + 1)"},
		{input: "+x", want: "x"},
		{input: "sin(x)*cos(x)", want: "sin(x)*cos(x)"},
		{input: "log(x, 2)", want: "log(x, 2)"},
		{input: "[1,2,3]", want: "[1, 2, 3]"},
		{input: "[1, 2; 3, 4]", want: "[1, 2; 3, 4]"},
		{input: "[x+1, sin(y)]", want: "[x + 1, sin(y)]"},
		{input: "1.50", want: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}

func TestParse_Structure(t *testing.T) {
	t.Run("unary minus binds looser than power", func(t *testing.T) {
		expr, err := Parse("-x^2")
		require.NoError(t, err)
		assert.True(t, m.Equal(m.Neg(m.Pow(m.Var("x"), m.Num(2))), expr))
	})

	t.Run("power is right associative", func(t *testing.T) {
		expr, err := Parse("2^3^2")
		require.NoError(t, err)
		assert.True(t, m.Equal(m.Pow(m.Num(2), m.Pow(m.Num(3), m.Num(2))), expr))
	})

	t.Run("subtraction is left associative", func(t *testing.T) {
		expr, err := Parse("a - b - c")
		require.NoError(t, err)
		assert.True(t, m.Equal(m.Sub(m.Sub(m.Var("a"), m.Var("b")), m.Var("c")), expr))
	})

	t.Run("matrix rows are vector calls", func(t *testing.T) {
		expr, err := Parse("[1, 2; 3, 4]")
		require.NoError(t, err)

		want := m.Fn(m.MatrixCall,
			m.Fn(m.VectorCall, m.Num(1), m.Num(2)),
			m.Fn(m.VectorCall, m.Num(3), m.Num(4)),
		)
		assert.True(t, m.Equal(want, expr))
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty", input: "", wantMsg: "empty expression"},
		{name: "blank", input: "   ", wantMsg: "empty expression"},
		{name: "trailing operator", input: "2*x +", wantMsg: "unexpected end of input"},
		{name: "unclosed paren", input: "(2", wantMsg: "unbalanced parenthesis"},
		{name: "extra close paren", input: "2)", wantMsg: "unbalanced parenthesis"},
		{name: "empty parens", input: "()", wantMsg: "unbalanced parenthesis"},
		{name: "unknown character", input: "x $", wantMsg: "unexpected character"},
		{name: "arity", input: "sin(x, y)", wantMsg: "sin expects 1 argument, got 2"},
		{name: "ragged matrix", input: "[1, 2; 3]", wantMsg: "different lengths"},
		{name: "empty matrix", input: "[]", wantMsg: "empty matrix literal"},
		{name: "empty cell", input: "[1, , 3]", wantMsg: "empty matrix cell"},
		{name: "bad cell", input: "[1, 2 +]", wantMsg: "unexpected end of input"},
		{name: "number out of range", input: "1e999", wantMsg: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"x^2 + 2*x + 1",
		"x + -1",
		"-2*x - (y - 3)",
		"2x(y+1)/3",
		"-(x - y)^2",
		"x/y/2",
		"x^-2",
		"sqrt(x^2 + y^2)",
		"log(x, 2) - ln(y)",
		"1.5e-3*x",
		"1e20*x",
		"-x/-y",
	}
	bindings := map[string]float64{"x": 1.7, "y": 0.3}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(input)
			require.NoError(t, err)

			second, err := Parse(first.String())
			require.NoError(t, err, "rendered %q does not parse", first.String())
			assert.Equal(t, first.String(), second.String())

			want, err := EvalScalar(first, bindings)
			require.NoError(t, err)

			got, err := EvalScalar(second, bindings)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9)
		})
	}
}

package domain

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/synnheal/stepcalc/internal/model"
)

func TestEngine_Evaluate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  m.OperationKind
		opts  []EvaluateOption
		want  []m.Step
	}{
		{
			name:  "evaluate",
			input: "2 + 3",
			kind:  m.OperationEvaluate,
			want: []m.Step{
				{Description: StepInitialExpression, Expression: "2 + 3"},
				{Description: StepEvaluate, Expression: "5"},
			},
		},
		{
			name:  "evaluate with bindings",
			input: "x*y",
			kind:  m.OperationEvaluate,
			opts:  []EvaluateOption{WithBindings(map[string]float64{"x": 3, "y": 4})},
			want: []m.Step{
				{Description: StepInitialExpression, Expression: "x*y"},
				{Description: StepEvaluate, Expression: "12"},
			},
		},
		{
			name:  "simplify",
			input: "x + x",
			kind:  m.OperationSimplify,
			want: []m.Step{
				{Description: StepInitialExpression, Expression: "x + x"},
				{Description: StepSimplify, Expression: "2*x"},
			},
		},
		{
			name:  "derivative",
			input: "x^2 + 2*x + 1",
			kind:  m.OperationDerivative,
			want: []m.Step{
				{Description: StepInitialExpression, Expression: "x^2 + 2*x + 1"},
				{Description: StepDifferentiate, Expression: "2*x^(2 - 1)*1 + 0*x + 2*1 + 0"},
				{Description: StepSimplify, Expression: "2*x + 2"},
			},
		},
		{
			name:  "derivative with respect to y",
			input: "x*y^2",
			kind:  m.OperationDerivative,
			opts:  []EvaluateOption{WithRespectTo("y")},
			want: []m.Step{
				{Description: StepInitialExpression, Expression: "x*y^2"},
				{Description: StepDifferentiate, Expression: "0*y^2 + x*2*y^(2 - 1)*1"},
				{Description: StepSimplify, Expression: "2*x*y"},
			},
		},
		{
			name:  "matrix",
			input: "[1, 2; 3, 4]*[1, 0; 0, 1]",
			kind:  m.OperationMatrix,
			want: []m.Step{
				{Description: StepInitialExpression, Expression: "[1, 2; 3, 4]*[1, 0; 0, 1]"},
				{Description: StepEvaluate, Expression: "[1, 2; 3, 4]"},
			},
		},
		{
			name:  "vector",
			input: "[1,2,3]*[4,5,6]",
			kind:  m.OperationVector,
			want: []m.Step{
				{Description: StepInitialExpression, Expression: "[1, 2, 3]*[4, 5, 6]"},
				{Description: StepEvaluate, Expression: "32"},
			},
		},
	}

	en := NewEngine()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := en.Evaluate(tt.input, tt.kind, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Steps)
			assert.Equal(t, tt.want[len(tt.want)-1].Expression, got.FinalResult)
		})
	}
}

func TestEngine_EvaluateLinear(t *testing.T) {
	got, err := NewEngine().Evaluate("2*x + y = 10", m.OperationLinear)
	require.NoError(t, err)

	require.Len(t, got.Steps, 4)
	assert.Equal(t, "x = 5.00, y = 0.00", got.FinalResult)
	assert.Equal(t, map[string]float64{"x": 5, "y": 0}, got.Variables)
}

func TestEngine_EvaluateErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    m.OperationKind
		wantErr error
	}{
		{name: "division by zero", input: "1/0", kind: m.OperationEvaluate, wantErr: ErrDomain},
		{name: "unbound", input: "x + 1", kind: m.OperationEvaluate, wantErr: ErrUnboundVariable},
		{name: "syntax", input: "2*x +", kind: m.OperationSimplify, wantErr: ErrSyntax},
		{name: "blank", input: " ", kind: m.OperationLinear, wantErr: ErrSyntax},
		{name: "no rule", input: "floor(x)", kind: m.OperationDerivative, wantErr: ErrUnsupportedOperation},
		{name: "unknown kind", input: "x", kind: m.OperationKind("integral"), wantErr: ErrUnsupportedOperation},
		{name: "format", input: "x + y", kind: m.OperationLinear, wantErr: ErrFormat},
	}

	en := NewEngine()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := en.Evaluate(tt.input, tt.kind)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, got.Steps)

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.input, inputErr.Input)
			assert.Equal(t, tt.kind, inputErr.Kind)
		})
	}
}

func TestEngine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    m.OperationKind
		wantErr error
	}{
		{name: "valid expression", input: "sin(x) + 2", kind: m.OperationEvaluate},
		{name: "free variables are fine", input: "x + y", kind: m.OperationEvaluate},
		{name: "valid equation", input: "2*x + y = 10", kind: m.OperationLinear},
		{name: "domain errors are not detected", input: "1/0", kind: m.OperationEvaluate},
		{name: "trailing operator", input: "2*x +", kind: m.OperationEvaluate, wantErr: ErrSyntax},
		{name: "equation without equals", input: "x + y", kind: m.OperationLinear, wantErr: ErrFormat},
		{name: "bad equation side", input: "x + = y", kind: m.OperationLinear, wantErr: ErrSyntax},
		{name: "unknown kind", input: "x", kind: m.OperationKind("integral"), wantErr: ErrUnsupportedOperation},
	}

	en := NewEngine()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := en.Validate(tt.input, tt.kind)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEngine_ValidateBlankInputForEveryKind(t *testing.T) {
	en := NewEngine()

	for _, kind := range append(m.OperationKinds, m.OperationKind("integral")) {
		for _, input := range []string{"", "   ", "\t\n"} {
			t.Run(string(kind), func(t *testing.T) {
				require.ErrorIs(t, en.Validate(input, kind), ErrSyntax)
			})
		}
	}
}

func TestEngine_ConcurrentUse(t *testing.T) {
	en := NewEngine()

	var wg sync.WaitGroup

	results := make([]string, 16)

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			got, err := en.Evaluate("x^2 + 2*x + 1", m.OperationDerivative)
			if err == nil {
				results[i] = got.FinalResult
			}
		}()
	}

	wg.Wait()

	for _, got := range results {
		assert.Equal(t, "2*x + 2", got)
	}
}

func TestEngine_EvaluateResultReparses(t *testing.T) {
	inputs := []string{
		"range(1, 4)",
		"range(4, 1, -1)",
		"[1, 2; 3, 4]^2",
		"transpose([1, 2, 3])",
		"-[1.5, 2]",
		"1/3",
		"2^-30",
	}

	en := NewEngine()

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			solution, err := en.Evaluate(input, m.OperationEvaluate)
			require.NoError(t, err)

			_, err = Parse(solution.FinalResult)
			require.NoError(t, err, "result %q", solution.FinalResult)
		})
	}

	_, err := en.Evaluate("range(5, 1)", m.OperationEvaluate)
	require.ErrorIs(t, err, ErrDomain)
}

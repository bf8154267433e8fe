package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/synnheal/stepcalc/internal/domain"
	domainmocks "github.com/synnheal/stepcalc/internal/domain/mocks"
	m "github.com/synnheal/stepcalc/internal/model"
)

func TestEvalCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.SolveArgs
	}{
		{
			name: "defaults",
			args: []string{"eval", "2 + 3"},
			want: domain.SolveArgs{Input: "2 + 3", Operation: m.OperationEvaluate, WithRespectTo: "x"},
		},
		{
			name: "arguments are joined",
			args: []string{"eval", "2", "+", "3"},
			want: domain.SolveArgs{Input: "2 + 3", Operation: m.OperationEvaluate, WithRespectTo: "x"},
		},
		{
			name: "derivative with respect to y",
			args: []string{"eval", "--op", "derivative", "--wrt", "y", "x*y^2"},
			want: domain.SolveArgs{Input: "x*y^2", Operation: m.OperationDerivative, WithRespectTo: "y"},
		},
		{
			name: "alias and short flag",
			args: []string{"eval", "-k", "linear-equation", "2*x + y = 10"},
			want: domain.SolveArgs{Input: "2*x + y = 10", Operation: m.OperationLinear, WithRespectTo: "x"},
		},
		{
			name: "bindings",
			args: []string{"eval", "--set", "x=3", "--set", "y = -4.5", "x*y"},
			want: domain.SolveArgs{
				Input:         "x*y",
				Operation:     m.OperationEvaluate,
				WithRespectTo: "x",
				Variables:     map[string]float64{"x": 3, "y": -4.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := domainmocks.NewMockWorkflow(t)

			cmd := newRootCmd()
			cmd.AddCommand(newEvalCmd())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			originalWorkflow := workflow
			workflow = mockWorkflow
			defer func() { workflow = originalWorkflow }()

			mockWorkflow.On("Solve", mock.Anything, tt.want).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestEvalCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing expression", args: []string{"eval"}, wantErr: "requires at least 1 arg"},
		{name: "unknown operation", args: []string{"eval", "--op", "integral", "x"}, wantErr: "unknown operation"},
		{name: "bad binding", args: []string{"eval", "--set", "x", "x"}, wantErr: "expected name=value"},
		{name: "bad binding value", args: []string{"eval", "--set", "x=abc", "x"}, wantErr: "invalid --set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := domainmocks.NewMockWorkflow(t)

			cmd := newRootCmd()
			cmd.AddCommand(newEvalCmd())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			originalWorkflow := workflow
			workflow = mockWorkflow
			defer func() { workflow = originalWorkflow }()

			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEvalCmd_ReturnsEngineError(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newEvalCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Solve", mock.Anything, mock.Anything).Return(domain.ErrDomain)

	cmd.SetArgs([]string{"eval", "1/0"})
	require.ErrorIs(t, cmd.Execute(), domain.ErrDomain)
}

func TestParseBindings(t *testing.T) {
	got, err := parseBindings(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseBindings([]string{"a=1", " b = 2e3 ", "a=5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 5, "b": 2000}, got)

	_, err = parseBindings([]string{"=1"})
	require.Error(t, err)
}

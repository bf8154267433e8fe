package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/synnheal/stepcalc/internal/domain"
	domainmocks "github.com/synnheal/stepcalc/internal/domain/mocks"
	m "github.com/synnheal/stepcalc/internal/model"
)

func TestValidateCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.ValidateArgs
	}{
		{
			name: "default operation",
			args: []string{"validate", "sin(x) + 2"},
			want: domain.ValidateArgs{Input: "sin(x) + 2", Operation: m.OperationEvaluate},
		},
		{
			name: "linear equation",
			args: []string{"validate", "--op", "linear", "2*x + y = 10"},
			want: domain.ValidateArgs{Input: "2*x + y = 10", Operation: m.OperationLinear},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := domainmocks.NewMockWorkflow(t)

			cmd := newRootCmd()
			cmd.AddCommand(newValidateCmd())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			originalWorkflow := workflow
			workflow = mockWorkflow
			defer func() { workflow = originalWorkflow }()

			mockWorkflow.On("Validate", mock.Anything, tt.want).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestValidateCmd_InvalidInputFails(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newValidateCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Validate", mock.Anything, mock.Anything).Return(domain.ErrSyntax)

	cmd.SetArgs([]string{"validate", "2*x +"})
	require.ErrorIs(t, cmd.Execute(), domain.ErrSyntax)
}
